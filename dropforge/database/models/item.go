package models

import (
	"time"

	"github.com/uptrace/bun"
)

type ItemStatus string

const (
	ItemStatusAvailable       ItemStatus = "available"
	ItemStatusReserved        ItemStatus = "reserved"
	ItemStatusAuctionReserved ItemStatus = "auction_reserved"
	ItemStatusAuctioned       ItemStatus = "auctioned"
	ItemStatusSold            ItemStatus = "sold"
	ItemStatusMinted          ItemStatus = "minted"
	ItemStatusMintFailed      ItemStatus = "mint_failed"
)

// Item is one collectible in the fixed catalog. Score is the composite of the
// five weighted sub-scores and stays in [0, 500]. PriceCents is derived from the
// score and the active tier; only the tier scheduler rewrites it.
type Item struct {
	bun.BaseModel `bun:"table:items,alias:i"`

	ID         int64              `bun:"id,pk,autoincrement"`
	Name       string             `bun:"name,notnull,unique"`
	Score      int                `bun:"score,notnull"`
	SubScores  map[string]float64 `bun:"sub_scores,type:jsonb"`
	PriceCents int64              `bun:"price_cents,notnull"`
	Status     ItemStatus         `bun:"status,notnull"`
	OwnerID    string             `bun:"owner_id"`
	MintTxHash string             `bun:"mint_tx_hash"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}
