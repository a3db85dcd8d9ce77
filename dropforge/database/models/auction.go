package models

import (
	"time"

	"github.com/uptrace/bun"
)

type AuctionStatus string

const (
	AuctionStatusPending     AuctionStatus = "pending"
	AuctionStatusActive      AuctionStatus = "active"
	AuctionStatusEndedNoBids AuctionStatus = "ended_no_bids"
	AuctionStatusFinalized   AuctionStatus = "finalized"
)

// Auction is a time-boxed English auction over a single reserved item.
// CurrentBidCents is monotonically non-decreasing and starts at the reserve
// price. LastExtendedBidID records the bid that triggered the most recent
// anti-snipe extension so the extension sweep stays idempotent per tick.
type Auction struct {
	bun.BaseModel `bun:"table:auctions,alias:a"`

	ID                int64         `bun:"id,pk,autoincrement"`
	Code              string        `bun:"code,notnull,unique"`
	ItemID            int64         `bun:"item_id,notnull"`
	StartPriceCents   int64         `bun:"start_price_cents,notnull"`
	CurrentBidCents   int64         `bun:"current_bid_cents,notnull"`
	TopBidderID       string        `bun:"top_bidder_id"`
	Status            AuctionStatus `bun:"status,notnull"`
	StartTime         time.Time     `bun:"start_time,notnull"`
	EndTime           time.Time     `bun:"end_time,notnull"`
	LastBidTime       time.Time     `bun:"last_bid_time"`
	BidCount          int           `bun:"bid_count"`
	LastExtendedBidID int64         `bun:"last_extended_bid_id"`
	ExtensionCount    int           `bun:"extension_count"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// AuctionBid is an append-only ledger entry. Rows are never updated or
// deleted.
type AuctionBid struct {
	bun.BaseModel `bun:"table:auction_bids,alias:ab"`

	ID          int64     `bun:"id,pk,autoincrement"`
	AuctionID   int64     `bun:"auction_id,notnull"`
	BidderID    string    `bun:"bidder_id,notnull"`
	AmountCents int64     `bun:"amount_cents,notnull"`
	Timestamp   time.Time `bun:"timestamp,notnull"`

	CreatedAt time.Time `bun:"created_at,notnull"`
}
