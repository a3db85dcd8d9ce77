package auction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dropforge/dropforge/dropforge/database/models"
	"github.com/dropforge/dropforge/dropforge/database/repositories/mock"
	"github.com/dropforge/dropforge/dropforge/sale/mint"
	"github.com/dropforge/dropforge/dropforge/sale/salerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type stubMinter struct {
	receipt *mint.Receipt
	err     error
	calls   int
}

func (s *stubMinter) Mint(_ context.Context, _ []int64, _ string, _ string) (*mint.Receipt, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.receipt, nil
}

type finalizerMocks struct {
	auctions *mock.MockAuctionRepository
	items    *mock.MockItemRepository
	sales    *mock.MockSaleRepository
	minter   *stubMinter
	notifier *recordingNotifier
}

func newTestFinalizer(t *testing.T) (*Finalizer, *finalizerMocks) {
	ctrl := gomock.NewController(t)
	m := &finalizerMocks{
		auctions: mock.NewMockAuctionRepository(ctrl),
		items:    mock.NewMockItemRepository(ctrl),
		sales:    mock.NewMockSaleRepository(ctrl),
		minter:   &stubMinter{receipt: &mint.Receipt{TxHash: "0xabc"}},
		notifier: &recordingNotifier{},
	}
	f := NewFinalizer(m.auctions, m.items, m.sales, m.minter, m.notifier)
	return f, m
}

func endedAuctionWithWinner(now time.Time) *models.Auction {
	return &models.Auction{
		ID:              1,
		Code:            "SH1AB",
		ItemID:          7,
		StartPriceCents: 50_000,
		CurrentBidCents: 100_000,
		TopBidderID:     "bidder-1",
		Status:          models.AuctionStatusActive,
		StartTime:       now.Add(-8 * 24 * time.Hour),
		EndTime:         now.Add(-time.Minute),
	}
}

func TestFinalizeAuctionSettlesWinner(t *testing.T) {
	f, m := newTestFinalizer(t)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	f.now = func() time.Time { return now }

	auction := endedAuctionWithWinner(now)
	m.auctions.EXPECT().GetByID(gomock.Any(), int64(1)).Return(auction, nil)
	m.auctions.EXPECT().
		FinalizeWinner(gomock.Any(), int64(1), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, sale *models.SaleRecord) error {
			assert.Equal(t, int64(100_000), sale.PriceCents)
			assert.Equal(t, int64(70_000), sale.CreatorShareCents)
			assert.Equal(t, int64(30_000), sale.PlatformShareCents)
			assert.Equal(t, "bidder-1", sale.BuyerID)
			assert.Equal(t, models.SaleSourceAuction, sale.Source)
			require.NotNil(t, sale.AuctionID)
			assert.Equal(t, int64(1), *sale.AuctionID)
			return nil
		})
	m.items.EXPECT().GetByID(gomock.Any(), int64(7)).Return(&models.Item{ID: 7, Name: "Shadow Relic"}, nil)
	m.items.EXPECT().SetMintResult(gomock.Any(), int64(7), models.ItemStatusMinted, "0xabc").Return(nil)
	m.sales.EXPECT().SetMintTxRef(gomock.Any(), gomock.Any(), "0xabc").Return(nil)

	sale, err := f.FinalizeAuction(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, sale)
	assert.Equal(t, 1, m.minter.calls)
	assert.Equal(t, "bidder-1", m.notifier.wonRecipient)
}

func TestFinalizeAuctionSplitsOddAmounts(t *testing.T) {
	f, m := newTestFinalizer(t)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	f.now = func() time.Time { return now }

	auction := endedAuctionWithWinner(now)
	auction.CurrentBidCents = 99_999
	m.auctions.EXPECT().GetByID(gomock.Any(), int64(1)).Return(auction, nil)
	m.auctions.EXPECT().
		FinalizeWinner(gomock.Any(), int64(1), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, sale *models.SaleRecord) error {
			// The leftover cent from truncation stays on the platform side.
			assert.Equal(t, int64(69_999), sale.CreatorShareCents)
			assert.Equal(t, int64(30_000), sale.PlatformShareCents)
			assert.Equal(t, sale.PriceCents, sale.CreatorShareCents+sale.PlatformShareCents)
			return nil
		})
	m.items.EXPECT().GetByID(gomock.Any(), int64(7)).Return(&models.Item{ID: 7, Name: "Shadow Relic"}, nil)
	m.items.EXPECT().SetMintResult(gomock.Any(), int64(7), models.ItemStatusMinted, "0xabc").Return(nil)
	m.sales.EXPECT().SetMintTxRef(gomock.Any(), gomock.Any(), "0xabc").Return(nil)

	_, err := f.FinalizeAuction(context.Background(), 1)
	require.NoError(t, err)
}

func TestFinalizeAuctionRejectsStillRunning(t *testing.T) {
	f, m := newTestFinalizer(t)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	f.now = func() time.Time { return now }

	auction := endedAuctionWithWinner(now)
	auction.EndTime = now.Add(time.Hour)
	m.auctions.EXPECT().GetByID(gomock.Any(), int64(1)).Return(auction, nil)

	_, err := f.FinalizeAuction(context.Background(), 1)
	assert.ErrorIs(t, err, salerrors.ErrAuctionNotEnded)
}

func TestFinalizeAuctionSecondCallReturnsPriorSale(t *testing.T) {
	f, m := newTestFinalizer(t)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	f.now = func() time.Time { return now }

	auction := endedAuctionWithWinner(now)
	auction.Status = models.AuctionStatusFinalized
	prior := &models.SaleRecord{ID: "sale-1", PriceCents: 100_000}
	m.auctions.EXPECT().GetByID(gomock.Any(), int64(1)).Return(auction, nil)
	m.sales.EXPECT().GetByAuctionID(gomock.Any(), int64(1)).Return(prior, nil)

	sale, err := f.FinalizeAuction(context.Background(), 1)
	require.NoError(t, err)
	assert.Same(t, prior, sale)
	// No new settlement, no second mint.
	assert.Zero(t, m.minter.calls)
}

func TestFinalizeAuctionLostSettlementRace(t *testing.T) {
	f, m := newTestFinalizer(t)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	f.now = func() time.Time { return now }

	auction := endedAuctionWithWinner(now)
	prior := &models.SaleRecord{ID: "sale-1"}
	m.auctions.EXPECT().GetByID(gomock.Any(), int64(1)).Return(auction, nil)
	m.auctions.EXPECT().
		FinalizeWinner(gomock.Any(), int64(1), gomock.Any()).
		Return(salerrors.ErrAlreadyFinalized)
	m.sales.EXPECT().GetByAuctionID(gomock.Any(), int64(1)).Return(prior, nil)

	sale, err := f.FinalizeAuction(context.Background(), 1)
	require.NoError(t, err)
	assert.Same(t, prior, sale)
	assert.Zero(t, m.minter.calls)
}

func TestFinalizeAuctionNoBidsReturnsItem(t *testing.T) {
	f, m := newTestFinalizer(t)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	f.now = func() time.Time { return now }

	auction := endedAuctionWithWinner(now)
	auction.TopBidderID = ""
	auction.CurrentBidCents = auction.StartPriceCents
	m.auctions.EXPECT().GetByID(gomock.Any(), int64(1)).Return(auction, nil)
	m.auctions.EXPECT().EndNoBids(gomock.Any(), int64(1)).Return(nil)

	sale, err := f.FinalizeAuction(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, sale)
	assert.Zero(t, m.minter.calls)
}

func TestFinalizeAuctionMintFailureMarksItem(t *testing.T) {
	f, m := newTestFinalizer(t)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	f.now = func() time.Time { return now }
	m.minter.err = errors.New("mint service unreachable")

	auction := endedAuctionWithWinner(now)
	m.auctions.EXPECT().GetByID(gomock.Any(), int64(1)).Return(auction, nil)
	m.auctions.EXPECT().FinalizeWinner(gomock.Any(), int64(1), gomock.Any()).Return(nil)
	m.items.EXPECT().GetByID(gomock.Any(), int64(7)).Return(&models.Item{ID: 7, Name: "Shadow Relic"}, nil)
	m.items.EXPECT().SetMintResult(gomock.Any(), int64(7), models.ItemStatusMintFailed, "").Return(nil)

	// The settled sale survives the mint failure.
	sale, err := f.FinalizeAuction(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, sale)
	assert.Empty(t, m.notifier.wonRecipient)
}

func TestSweepEndedAuctionsIsolatesFailures(t *testing.T) {
	f, m := newTestFinalizer(t)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	f.now = func() time.Time { return now }

	broken := endedAuctionWithWinner(now)
	broken.ID = 1
	healthy := endedAuctionWithWinner(now)
	healthy.ID = 2
	healthy.TopBidderID = ""

	m.auctions.EXPECT().GetExpiredActive(gomock.Any(), now).Return([]*models.Auction{broken, healthy}, nil)
	m.auctions.EXPECT().GetByID(gomock.Any(), int64(1)).Return(nil, context.DeadlineExceeded)
	m.auctions.EXPECT().GetByID(gomock.Any(), int64(2)).Return(healthy, nil)
	m.auctions.EXPECT().EndNoBids(gomock.Any(), int64(2)).Return(nil)

	require.NoError(t, f.SweepEndedAuctions(context.Background()))
}
