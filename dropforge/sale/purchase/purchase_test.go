package purchase

import (
	"context"
	"testing"

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
}

func (s *stubMinter) Mint(_ context.Context, _ []int64, _ string, _ string) (*mint.Receipt, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.receipt, nil
}

type purchaseMocks struct {
	items *mock.MockItemRepository
	tiers *mock.MockTierRepository
	sales *mock.MockSaleRepository
}

func newTestService(t *testing.T) (*Service, *purchaseMocks) {
	ctrl := gomock.NewController(t)
	m := &purchaseMocks{
		items: mock.NewMockItemRepository(ctrl),
		tiers: mock.NewMockTierRepository(ctrl),
		sales: mock.NewMockSaleRepository(ctrl),
	}
	s := NewService(m.items, m.tiers, m.sales, &stubMinter{receipt: &mint.Receipt{TxHash: "0xabc"}})
	return s, m
}

func TestConfirmPurchaseSettlesReservedItem(t *testing.T) {
	s, m := newTestService(t)

	m.items.EXPECT().GetByID(gomock.Any(), int64(7)).Return(&models.Item{
		ID:         7,
		Name:       "Shadow Relic",
		PriceCents: 3225,
		Status:     models.ItemStatusReserved,
		OwnerID:    "buyer-1",
	}, nil)
	m.items.EXPECT().
		MarkSold(gomock.Any(), int64(7), "buyer-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, _ string, sale *models.SaleRecord) error {
			assert.Equal(t, int64(3225), sale.PriceCents)
			assert.Equal(t, int64(2257), sale.CreatorShareCents)
			assert.Equal(t, int64(968), sale.PlatformShareCents)
			assert.Equal(t, models.SaleSourceFixed, sale.Source)
			assert.Nil(t, sale.AuctionID)
			return nil
		})
	m.tiers.EXPECT().GetActive(gomock.Any()).Return(&models.Tier{ID: 1, Phase: 2}, nil)
	m.tiers.EXPECT().IncrementSold(gomock.Any(), int64(1)).Return(nil)
	m.items.EXPECT().SetMintResult(gomock.Any(), int64(7), models.ItemStatusMinted, "0xabc").Return(nil)
	m.sales.EXPECT().SetMintTxRef(gomock.Any(), gomock.Any(), "0xabc").Return(nil)

	sale, err := s.ConfirmPurchase(context.Background(), 7, "buyer-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3225), sale.PriceCents)
}

func TestConfirmPurchaseRejectsUnreservedItem(t *testing.T) {
	s, m := newTestService(t)

	m.items.EXPECT().GetByID(gomock.Any(), int64(7)).Return(&models.Item{
		ID:     7,
		Status: models.ItemStatusAvailable,
	}, nil)

	_, err := s.ConfirmPurchase(context.Background(), 7, "buyer-1")
	assert.ErrorIs(t, err, salerrors.ErrItemNotReserved)
}

func TestConfirmPurchaseRejectsWrongBuyer(t *testing.T) {
	s, m := newTestService(t)

	m.items.EXPECT().GetByID(gomock.Any(), int64(7)).Return(&models.Item{
		ID:      7,
		Status:  models.ItemStatusReserved,
		OwnerID: "buyer-1",
	}, nil)

	_, err := s.ConfirmPurchase(context.Background(), 7, "buyer-2")
	assert.ErrorIs(t, err, salerrors.ErrItemNotReserved)
}

func TestReserveItemRequiresBuyer(t *testing.T) {
	s, _ := newTestService(t)

	err := s.ReserveItem(context.Background(), 7, "")
	assert.Error(t, err)
}

func TestConfirmPurchaseMintFailureMarksItem(t *testing.T) {
	s, m := newTestService(t)
	s.minter = &stubMinter{err: context.DeadlineExceeded}

	m.items.EXPECT().GetByID(gomock.Any(), int64(7)).Return(&models.Item{
		ID:         7,
		PriceCents: 1000,
		Status:     models.ItemStatusReserved,
		OwnerID:    "buyer-1",
	}, nil)
	m.items.EXPECT().MarkSold(gomock.Any(), int64(7), "buyer-1", gomock.Any()).Return(nil)
	m.tiers.EXPECT().GetActive(gomock.Any()).Return(nil, salerrors.ErrNoActiveTier)
	m.items.EXPECT().SetMintResult(gomock.Any(), int64(7), models.ItemStatusMintFailed, "").Return(nil)

	// The sale stands even when the mint fails.
	sale, err := s.ConfirmPurchase(context.Background(), 7, "buyer-1")
	require.NoError(t, err)
	require.NotNil(t, sale)
}
