package pricing

import (
	"math"
)

// Config holds the knobs of the phased pricing curve.
type Config struct {
	BasePricePerPointCents int64   // price per score point at phase 1
	MultiplierBase         float64 // compounding step applied per phase
	MinPriceCents          int64   // absolute floor per item
	MaxPriceCents          int64   // absolute ceiling per item
}

// DefaultConfig matches the launch economics: 10 cents per score point and a
// 7.5% compounding step per phase.
func DefaultConfig() Config {
	return Config{
		BasePricePerPointCents: 10,
		MultiplierBase:         1.075,
		MinPriceCents:          100,
		MaxPriceCents:          50_000_000,
	}
}

// Calculator derives fixed-sale prices from item scores. It is pure; all
// state lives in the config.
type Calculator struct {
	cfg Config
}

func NewCalculator(cfg Config) *Calculator {
	if cfg.BasePricePerPointCents <= 0 {
		cfg.BasePricePerPointCents = DefaultConfig().BasePricePerPointCents
	}
	if cfg.MultiplierBase <= 1.0 {
		cfg.MultiplierBase = DefaultConfig().MultiplierBase
	}
	return &Calculator{cfg: cfg}
}

// TierMultiplier returns the compounded multiplier for the given phase.
// Phase 1 is the identity.
func (c *Calculator) TierMultiplier(phase int) float64 {
	if phase < 1 {
		phase = 1
	}
	return math.Pow(c.cfg.MultiplierBase, float64(phase-1))
}

// PriceFor computes the catalog price of an item at the given phase:
// score × basePricePerPoint × multiplierBase^(phase−1), rounded to the
// nearest cent and clamped to the configured bounds.
func (c *Calculator) PriceFor(score int, phase int) int64 {
	raw := float64(score) * float64(c.cfg.BasePricePerPointCents) * c.TierMultiplier(phase)
	price := int64(math.Round(raw))

	if c.cfg.MinPriceCents > 0 && price < c.cfg.MinPriceCents {
		price = c.cfg.MinPriceCents
	}
	if c.cfg.MaxPriceCents > 0 && price > c.cfg.MaxPriceCents {
		price = c.cfg.MaxPriceCents
	}
	return price
}
