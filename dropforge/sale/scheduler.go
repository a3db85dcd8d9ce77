package sale

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dropforge/dropforge/dropforge/database/repositories"
	"github.com/dropforge/dropforge/dropforge/logger"
	"github.com/dropforge/dropforge/dropforge/sale/auction"
	"github.com/dropforge/dropforge/dropforge/sale/pricing"
	"github.com/google/uuid"
)

const (
	defaultTickInterval = time.Minute
	leaseName           = "sale-scheduler"
)

// Scheduler drives the periodic transitions of the sale engine: tier
// advancement, calendar auction deployment, auction completion, and
// anti-snipe extensions. Every transition is idempotent, so overlapping
// instances or repeated ticks converge on the same state; the lease just
// keeps redundant work down when multiple instances run.
type Scheduler struct {
	leases     repositories.LeaseRepository
	tiers      *pricing.TierScheduler
	deployer   *auction.Deployer
	finalizer  *auction.Finalizer
	extensions *auction.ExtensionSweeper

	interval time.Duration
	holderID string
	ticking  atomic.Bool
	started  atomic.Bool
	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func NewScheduler(
	leases repositories.LeaseRepository,
	tiers *pricing.TierScheduler,
	deployer *auction.Deployer,
	finalizer *auction.Finalizer,
	extensions *auction.ExtensionSweeper,
	interval time.Duration,
) *Scheduler {
	if interval <= 0 {
		interval = defaultTickInterval
	}
	return &Scheduler{
		leases:     leases,
		tiers:      tiers,
		deployer:   deployer,
		finalizer:  finalizer,
		extensions: extensions,
		interval:   interval,
		holderID:   uuid.NewString(),
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Run ticks until the context is cancelled or Shutdown is called. The first
// tick fires immediately so a fresh deployment converges without waiting a
// full interval.
func (s *Scheduler) Run(ctx context.Context) {
	s.started.Store(true)
	defer close(s.doneCh)

	logger.LogSystem("Sale scheduler started",
		slog.String("holder", s.holderID),
		slog.Duration("interval", s.interval))

	s.Tick(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.releaseLease()
			return
		case <-s.stopCh:
			s.releaseLease()
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick runs one full scheduler pass. It is reentrancy-guarded: a tick that
// starts while the previous one still runs is skipped, not queued. Safe to
// call manually for operational backfills.
func (s *Scheduler) Tick(ctx context.Context) {
	if !s.ticking.CompareAndSwap(false, true) {
		slog.Warn("Skipping tick, previous tick still running",
			slog.String("type", "tick"),
			slog.String("holder", s.holderID))
		return
	}
	defer s.ticking.Store(false)

	acquired, err := s.leases.Acquire(ctx, leaseName, s.holderID, 2*s.interval)
	if err != nil {
		logger.LogError("Failed to acquire scheduler lease", err)
		return
	}
	if !acquired {
		slog.Debug("Scheduler lease held by another instance, skipping tick",
			slog.String("type", "tick"),
			slog.String("holder", s.holderID))
		return
	}

	s.runPhase(ctx, "tier_advance", s.tiers.AdvanceTierIfExpired)
	s.runPhase(ctx, "auction_deploy", s.deployer.RunAuctionDeploymentCheck)
	s.runPhase(ctx, "auction_complete", s.finalizer.SweepEndedAuctions)
	s.runPhase(ctx, "auction_extend", s.extensions.SweepExtensions)
}

func (s *Scheduler) runPhase(ctx context.Context, name string, fn func(context.Context) error) {
	start := time.Now()
	err := fn(ctx)
	logger.LogTick(name, time.Since(start), err)
}

// Shutdown stops the ticker loop and waits for an in-flight tick to finish.
// A scheduler that never ran shuts down immediately.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.stopCh) })
	if !s.started.Load() {
		s.releaseLease()
		return nil
	}
	select {
	case <-s.doneCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) releaseLease() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.leases.Release(ctx, leaseName, s.holderID); err != nil {
		logger.LogError("Failed to release scheduler lease", err)
	}
}
