package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceFor(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	tests := []struct {
		name  string
		score int
		phase int
		want  int64
	}{
		{
			name:  "phase 1 is score times base",
			score: 300,
			phase: 1,
			want:  3000,
		},
		{
			name:  "phase 2 compounds once",
			score: 300,
			phase: 2,
			want:  3225,
		},
		{
			name:  "phase 3 compounds twice",
			score: 300,
			phase: 3,
			want:  3467,
		},
		{
			name:  "zero score clamps to floor",
			score: 0,
			phase: 1,
			want:  100,
		},
		{
			name:  "phase below 1 treated as phase 1",
			score: 300,
			phase: 0,
			want:  3000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calc.PriceFor(tt.score, tt.phase))
		})
	}
}

func TestPriceForClampsToCeiling(t *testing.T) {
	calc := NewCalculator(Config{
		BasePricePerPointCents: 10,
		MultiplierBase:         1.075,
		MaxPriceCents:          2000,
	})

	assert.Equal(t, int64(2000), calc.PriceFor(500, 10))
}

func TestTierMultiplier(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	assert.Equal(t, 1.0, calc.TierMultiplier(1))
	assert.InDelta(t, 1.075, calc.TierMultiplier(2), 1e-9)
	assert.InDelta(t, 1.075*1.075, calc.TierMultiplier(3), 1e-9)
}

func TestNewCalculatorRejectsBrokenConfig(t *testing.T) {
	calc := NewCalculator(Config{BasePricePerPointCents: -5, MultiplierBase: 0.5})

	// Broken knobs fall back to the defaults instead of producing free or
	// shrinking prices.
	assert.Equal(t, int64(3000), calc.PriceFor(300, 1))
	assert.Equal(t, int64(3225), calc.PriceFor(300, 2))
}
