package auction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dropforge/dropforge/dropforge/database/models"
	"github.com/dropforge/dropforge/dropforge/database/repositories/mock"
	"github.com/dropforge/dropforge/dropforge/sale/salerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type recordingNotifier struct {
	outbidRecipient string
	outbidAmount    int64
	wonRecipient    string
}

func (r *recordingNotifier) NotifyOutbid(_ context.Context, recipient, _ string, newAmountCents int64) error {
	r.outbidRecipient = recipient
	r.outbidAmount = newAmountCents
	return nil
}

func (r *recordingNotifier) NotifyAuctionWon(_ context.Context, recipient, _ string, _ int64, _ string) error {
	r.wonRecipient = recipient
	return nil
}

func TestMinimumBid(t *testing.T) {
	tests := []struct {
		name    string
		current int64
		want    int64
	}{
		{name: "floor dominates small bids", current: 10_000, want: 12_500},
		{name: "boundary where floor equals percent", current: 50_000, want: 52_500},
		{name: "percent dominates large bids", current: 100_000, want: 105_000},
		{name: "integer division truncates", current: 100_010, want: 105_010},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MinimumBid(tt.current))
		})
	}
}

func newTestManager(t *testing.T) (*Manager, *mock.MockAuctionRepository, *mock.MockItemRepository, *recordingNotifier) {
	ctrl := gomock.NewController(t)
	auctions := mock.NewMockAuctionRepository(ctrl)
	items := mock.NewMockItemRepository(ctrl)
	notifier := &recordingNotifier{}
	m := NewManager(auctions, items, notifier)
	return m, auctions, items, notifier
}

func activeAuction(now time.Time) *models.Auction {
	return &models.Auction{
		ID:              1,
		Code:            "SH1AB",
		ItemID:          7,
		StartPriceCents: 50_000,
		CurrentBidCents: 50_000,
		Status:          models.AuctionStatusActive,
		StartTime:       now.Add(-time.Hour),
		EndTime:         now.Add(time.Hour),
	}
}

func TestPlaceBidRejectsBelowMinimum(t *testing.T) {
	m, auctions, _, _ := newTestManager(t)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	auctions.EXPECT().GetByID(gomock.Any(), int64(1)).Return(activeAuction(now), nil)

	_, err := m.PlaceBid(context.Background(), 1, "bidder-2", 52_499)

	var tooLow *salerrors.BidTooLowError
	require.ErrorAs(t, err, &tooLow)
	assert.Equal(t, int64(52_499), tooLow.OfferedCents)
	assert.Equal(t, int64(52_500), tooLow.MinimumCents)
}

func TestPlaceBidAcceptsExactMinimum(t *testing.T) {
	m, auctions, _, _ := newTestManager(t)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	auctions.EXPECT().GetByID(gomock.Any(), int64(1)).Return(activeAuction(now), nil)
	auctions.EXPECT().
		RecordBid(gomock.Any(), gomock.Any(), int64(50_000)).
		DoAndReturn(func(_ context.Context, bid *models.AuctionBid, _ int64) error {
			assert.Equal(t, int64(52_500), bid.AmountCents)
			assert.Equal(t, "bidder-2", bid.BidderID)
			assert.Equal(t, now, bid.Timestamp)
			return nil
		})

	bid, err := m.PlaceBid(context.Background(), 1, "bidder-2", 52_500)
	require.NoError(t, err)
	assert.Equal(t, int64(52_500), bid.AmountCents)
}

func TestPlaceBidRejectsEndedAuction(t *testing.T) {
	m, auctions, _, _ := newTestManager(t)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	ended := activeAuction(now)
	ended.EndTime = now.Add(-time.Minute)
	auctions.EXPECT().GetByID(gomock.Any(), int64(1)).Return(ended, nil)

	_, err := m.PlaceBid(context.Background(), 1, "bidder-2", 60_000)
	assert.ErrorIs(t, err, salerrors.ErrAuctionEnded)
}

func TestPlaceBidRejectsFinalizedAuction(t *testing.T) {
	m, auctions, _, _ := newTestManager(t)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	finalized := activeAuction(now)
	finalized.Status = models.AuctionStatusFinalized
	auctions.EXPECT().GetByID(gomock.Any(), int64(1)).Return(finalized, nil)

	_, err := m.PlaceBid(context.Background(), 1, "bidder-2", 60_000)
	assert.ErrorIs(t, err, salerrors.ErrAuctionNotActive)
}

func TestPlaceBidRetriesAfterLostRace(t *testing.T) {
	m, auctions, items, _ := newTestManager(t)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	first := activeAuction(now)
	auctions.EXPECT().GetByID(gomock.Any(), int64(1)).Return(first, nil)
	auctions.EXPECT().
		RecordBid(gomock.Any(), gomock.Any(), int64(50_000)).
		Return(salerrors.ErrBidConflict)

	// A concurrent bidder pushed the head to 52,500 during the first attempt.
	second := activeAuction(now)
	second.CurrentBidCents = 52_500
	second.TopBidderID = "bidder-3"
	auctions.EXPECT().GetByID(gomock.Any(), int64(1)).Return(second, nil)
	auctions.EXPECT().
		RecordBid(gomock.Any(), gomock.Any(), int64(52_500)).
		Return(nil)
	items.EXPECT().GetByID(gomock.Any(), int64(7)).Return(&models.Item{ID: 7, Name: "Shadow Relic"}, nil)

	bid, err := m.PlaceBid(context.Background(), 1, "bidder-2", 60_000)
	require.NoError(t, err)
	assert.Equal(t, int64(60_000), bid.AmountCents)
}

func TestPlaceBidGivesUpAfterRepeatedConflicts(t *testing.T) {
	m, auctions, _, _ := newTestManager(t)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	auctions.EXPECT().GetByID(gomock.Any(), int64(1)).Return(activeAuction(now), nil).Times(placeBidMaxAttempts)
	auctions.EXPECT().
		RecordBid(gomock.Any(), gomock.Any(), int64(50_000)).
		Return(salerrors.ErrBidConflict).
		Times(placeBidMaxAttempts)

	_, err := m.PlaceBid(context.Background(), 1, "bidder-2", 500_000)
	assert.True(t, errors.Is(err, salerrors.ErrBidConflict))
}

func TestPlaceBidNotifiesPreviousTopBidder(t *testing.T) {
	m, auctions, items, notifier := newTestManager(t)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	current := activeAuction(now)
	current.TopBidderID = "bidder-1"
	auctions.EXPECT().GetByID(gomock.Any(), int64(1)).Return(current, nil)
	auctions.EXPECT().RecordBid(gomock.Any(), gomock.Any(), int64(50_000)).Return(nil)
	items.EXPECT().GetByID(gomock.Any(), int64(7)).Return(&models.Item{ID: 7, Name: "Shadow Relic"}, nil)

	_, err := m.PlaceBid(context.Background(), 1, "bidder-2", 60_000)
	require.NoError(t, err)
	assert.Equal(t, "bidder-1", notifier.outbidRecipient)
	assert.Equal(t, int64(60_000), notifier.outbidAmount)
}

func TestPlaceBidDoesNotNotifySelfOutbid(t *testing.T) {
	m, auctions, _, notifier := newTestManager(t)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	current := activeAuction(now)
	current.TopBidderID = "bidder-2"
	auctions.EXPECT().GetByID(gomock.Any(), int64(1)).Return(current, nil)
	auctions.EXPECT().RecordBid(gomock.Any(), gomock.Any(), int64(50_000)).Return(nil)

	_, err := m.PlaceBid(context.Background(), 1, "bidder-2", 60_000)
	require.NoError(t, err)
	assert.Empty(t, notifier.outbidRecipient)
}
