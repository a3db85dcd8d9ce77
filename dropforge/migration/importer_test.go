package migration

import (
	"testing"

	"github.com/dropforge/dropforge/dropforge/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertLegacyItem(t *testing.T) {
	item := convertLegacyItem(LegacyItem{
		Name: "Shadow Relic",
		SubScores: map[string]float64{
			"rarity":     80,
			"condition":  70,
			"provenance": 60,
			"demand":     50,
			"aesthetics": 40,
		},
	})

	require.NotNil(t, item)
	assert.Equal(t, "Shadow Relic", item.Name)
	// 80×.30 + 70×.25 + 60×.20 + 50×.15 + 40×.10 = 65, rescaled to 325.
	assert.Equal(t, 325, item.Score)
	assert.Equal(t, models.ItemStatusAvailable, item.Status)
}

func TestConvertLegacyItemPartialScores(t *testing.T) {
	item := convertLegacyItem(LegacyItem{
		Name: "Ember Crown",
		SubScores: map[string]float64{
			"rarity": 90,
			"demand": 60,
		},
	})

	require.NotNil(t, item)
	// Renormalized over the present weights: (90×.30 + 60×.15) / .45 = 80,
	// rescaled to 400.
	assert.Equal(t, 400, item.Score)
}

func TestConvertLegacyItemFeaturedReservesForAuction(t *testing.T) {
	item := convertLegacyItem(LegacyItem{
		Name:      "Shadow Relic",
		SubScores: map[string]float64{"rarity": 50},
		Featured:  true,
	})

	require.NotNil(t, item)
	assert.Equal(t, models.ItemStatusAuctionReserved, item.Status)
}

func TestConvertLegacyItemRejectsUnusableDocuments(t *testing.T) {
	assert.Nil(t, convertLegacyItem(LegacyItem{Name: ""}))
	assert.Nil(t, convertLegacyItem(LegacyItem{
		Name:      "Mystery",
		SubScores: map[string]float64{"vibes": 100},
	}))
}
