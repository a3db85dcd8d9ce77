package sale

import (
	"context"
	"testing"
	"time"

	"github.com/dropforge/dropforge/dropforge/database/models"
	"github.com/dropforge/dropforge/dropforge/database/repositories/mock"
	"github.com/dropforge/dropforge/dropforge/sale/auction"
	"github.com/dropforge/dropforge/dropforge/sale/pricing"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type schedulerMocks struct {
	leases   *mock.MockLeaseRepository
	tiers    *mock.MockTierRepository
	items    *mock.MockItemRepository
	auctions *mock.MockAuctionRepository
	sales    *mock.MockSaleRepository
}

func newTestScheduler(t *testing.T) (*Scheduler, *schedulerMocks) {
	ctrl := gomock.NewController(t)
	m := &schedulerMocks{
		leases:   mock.NewMockLeaseRepository(ctrl),
		tiers:    mock.NewMockTierRepository(ctrl),
		items:    mock.NewMockItemRepository(ctrl),
		auctions: mock.NewMockAuctionRepository(ctrl),
		sales:    mock.NewMockSaleRepository(ctrl),
	}

	tierScheduler := pricing.NewTierScheduler(m.tiers, m.items, pricing.NewCalculator(pricing.DefaultConfig()))
	manager := auction.NewManager(m.auctions, m.items, nil)
	finalizer := auction.NewFinalizer(m.auctions, m.items, m.sales, nil, nil)
	extensions := auction.NewExtensionSweeper(m.auctions)
	deployer := auction.NewDeployer(manager, m.auctions, m.items, m.tiers, nil)

	s := NewScheduler(m.leases, tierScheduler, deployer, finalizer, extensions, time.Minute)
	return s, m
}

// expectQuietTick wires the expectations for a tick where every phase finds
// nothing to do.
func expectQuietTick(m *schedulerMocks) {
	m.tiers.EXPECT().GetActive(gomock.Any()).Return(&models.Tier{
		ID:              1,
		Phase:           1,
		Active:          true,
		StartTime:       time.Now(),
		DurationSeconds: 86_400,
	}, nil)
	m.auctions.EXPECT().GetExpiredActive(gomock.Any(), gomock.Any()).Return(nil, nil)
	m.auctions.EXPECT().GetActiveEndingBefore(gomock.Any(), gomock.Any()).Return(nil, nil)
}

func TestTickRunsAllPhasesWhenLeaseHeld(t *testing.T) {
	s, m := newTestScheduler(t)

	m.leases.EXPECT().
		Acquire(gomock.Any(), leaseName, s.holderID, 2*time.Minute).
		Return(true, nil)
	expectQuietTick(m)

	s.Tick(context.Background())
}

func TestTickSkipsWhenLeaseDenied(t *testing.T) {
	s, m := newTestScheduler(t)

	// Another instance holds the lease; no phase expectations are set, so any
	// phase call would fail the test.
	m.leases.EXPECT().
		Acquire(gomock.Any(), leaseName, s.holderID, 2*time.Minute).
		Return(false, nil)

	s.Tick(context.Background())
}

func TestTickSkipsWhilePreviousTickRuns(t *testing.T) {
	s, _ := newTestScheduler(t)

	// Simulate an in-flight tick. Acquire is never expected, so a second
	// concurrent entry must return without touching the lease.
	require.True(t, s.ticking.CompareAndSwap(false, true))
	s.Tick(context.Background())
}

func TestShutdownWithoutRunReturnsImmediately(t *testing.T) {
	s, m := newTestScheduler(t)

	m.leases.EXPECT().
		Release(gomock.Any(), leaseName, s.holderID).
		Return(nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
}
