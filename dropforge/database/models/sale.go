package models

import (
	"time"

	"github.com/uptrace/bun"
)

type SaleSource string

const (
	SaleSourceAuction SaleSource = "auction"
	SaleSourceFixed   SaleSource = "fixed"
)

// SaleRecord is the append-only settlement ledger. The revenue split is
// computed once at settlement time and stored, not re-derived.
type SaleRecord struct {
	bun.BaseModel `bun:"table:sales,alias:s"`

	ID                 string     `bun:"id,pk"`
	ItemID             int64      `bun:"item_id,notnull"`
	AuctionID          *int64     `bun:"auction_id"`
	BuyerID            string     `bun:"buyer_id,notnull"`
	PriceCents         int64      `bun:"price_cents,notnull"`
	CreatorShareCents  int64      `bun:"creator_share_cents,notnull"`
	PlatformShareCents int64      `bun:"platform_share_cents,notnull"`
	Source             SaleSource `bun:"source,notnull"`
	MintTxRef          string     `bun:"mint_tx_ref"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// SchedulerLease is a TTL row granting one service instance the right to run
// scheduler ticks. Losing the lease means another instance has taken over.
type SchedulerLease struct {
	bun.BaseModel `bun:"table:scheduler_leases,alias:sl"`

	Name      string    `bun:"name,pk"`
	Holder    string    `bun:"holder,notnull"`
	ExpiresAt time.Time `bun:"expires_at,notnull"`
}
