package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildEvent(t *testing.T) {
	event := buildEvent(EventTypeOutbid, "bidder-1", "Shadow Relic", 60_000, "")

	assert.Equal(t, EventTypeOutbid, event.Type)
	assert.Equal(t, "bidder-1", event.Recipient)
	assert.Equal(t, "Shadow Relic", event.ItemName)
	assert.Equal(t, int64(60_000), event.AmountCents)
	assert.Empty(t, event.TxRef)
	assert.False(t, event.Timestamp.IsZero())
}

func TestBuildEventCarriesTxRef(t *testing.T) {
	event := buildEvent(EventTypeAuctionWon, "bidder-1", "Shadow Relic", 100_000, "0xabc")

	assert.Equal(t, EventTypeAuctionWon, event.Type)
	assert.Equal(t, "0xabc", event.TxRef)
}
