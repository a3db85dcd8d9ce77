package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Tier is one time-boxed pricing step of the fixed-price sale. At most one
// tier row has Active set at any instant; phases activate strictly in
// increasing order. StartTime is rewritten to the activation instant, not the
// originally planned time.
type Tier struct {
	bun.BaseModel `bun:"table:tiers,alias:t"`

	ID                int64     `bun:"id,pk,autoincrement"`
	Phase             int       `bun:"phase,notnull,unique"`
	QuantityAvailable int64     `bun:"quantity_available,notnull"`
	QuantitySold      int64     `bun:"quantity_sold,notnull,default:0"`
	StartTime         time.Time `bun:"start_time"`
	DurationSeconds   int64     `bun:"duration_seconds,notnull"`
	Active            bool      `bun:"active,notnull,default:false"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

func (t *Tier) Duration() time.Duration {
	return time.Duration(t.DurationSeconds) * time.Second
}

// EndTime is the instant the tier expires given its last activation.
func (t *Tier) EndTime() time.Time {
	return t.StartTime.Add(t.Duration())
}
