package pricing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dropforge/dropforge/dropforge/database/models"
	"github.com/dropforge/dropforge/dropforge/database/repositories"
	"github.com/dropforge/dropforge/dropforge/sale/salerrors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const (
	defaultChunkSize    = 200
	maxConcurrentChunks = 4
	recomputeTimeout    = 60 * time.Second
)

// TierScheduler owns the single-active-tier invariant. Each tick it checks
// whether the active tier's window has expired and, if so, advances to the
// next phase and recomputes every available item's price.
type TierScheduler struct {
	tiers     repositories.TierRepository
	items     repositories.ItemRepository
	calc      *Calculator
	chunkSize int
	sem       *semaphore.Weighted
	now       func() time.Time
}

func NewTierScheduler(tiers repositories.TierRepository, items repositories.ItemRepository, calc *Calculator) *TierScheduler {
	if tiers == nil || items == nil || calc == nil {
		panic("tier scheduler dependencies cannot be nil")
	}
	return &TierScheduler{
		tiers:     tiers,
		items:     items,
		calc:      calc,
		chunkSize: defaultChunkSize,
		sem:       semaphore.NewWeighted(maxConcurrentChunks),
		now:       time.Now,
	}
}

// AdvanceTierIfExpired is the tick entry point. It is safe to invoke
// manually; a tier that has not expired is left untouched.
func (s *TierScheduler) AdvanceTierIfExpired(ctx context.Context) error {
	now := s.now()

	tier, err := s.tiers.GetActive(ctx)
	if errors.Is(err, salerrors.ErrNoActiveTier) {
		return s.bootstrap(ctx, now)
	}
	if err != nil {
		return fmt.Errorf("failed to load active tier: %w", err)
	}

	if now.Before(tier.EndTime()) {
		return nil
	}

	next, err := s.tiers.GetByPhase(ctx, tier.Phase+1)
	if errors.Is(err, salerrors.ErrTierNotFound) {
		// Final tier runs indefinitely.
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load next tier: %w", err)
	}

	updates, err := s.recomputePrices(ctx, next.Phase)
	if err != nil {
		return fmt.Errorf("failed to recompute prices for phase %d: %w", next.Phase, err)
	}

	if err := s.tiers.AdvanceTier(ctx, tier.ID, next.Phase, now, updates, s.chunkSize); err != nil {
		if errors.Is(err, salerrors.ErrBidConflict) {
			slog.Info("Tier already advanced by another instance",
				slog.String("type", "tick"),
				slog.Int("phase", tier.Phase))
			return nil
		}
		return err
	}

	s.items.PurgePriceCache()

	slog.Info("Advanced pricing tier",
		slog.String("type", "tick"),
		slog.Int("from_phase", tier.Phase),
		slog.Int("to_phase", next.Phase),
		slog.Int("repriced_items", len(updates)),
		slog.Float64("multiplier", s.calc.TierMultiplier(next.Phase)))

	return nil
}

// bootstrap activates phase 1 when no tier is live yet. Repeated calls are
// no-ops once a tier is active.
func (s *TierScheduler) bootstrap(ctx context.Context, now time.Time) error {
	first, err := s.tiers.GetByPhase(ctx, 1)
	if err != nil {
		return fmt.Errorf("failed to load phase 1: %w", err)
	}

	updates, err := s.recomputePrices(ctx, 1)
	if err != nil {
		return fmt.Errorf("failed to compute launch prices: %w", err)
	}

	if err := s.tiers.Activate(ctx, first.Phase, now, updates, s.chunkSize); err != nil {
		return fmt.Errorf("failed to activate phase 1: %w", err)
	}

	s.items.PurgePriceCache()

	slog.Info("Activated launch tier",
		slog.String("type", "tick"),
		slog.Int("phase", first.Phase),
		slog.Int("priced_items", len(updates)))

	return nil
}

// recomputePrices derives the new catalog price for every available item at
// the given phase. Computation runs in bounded parallel chunks; the writes
// happen later inside the tier-flip transaction.
func (s *TierScheduler) recomputePrices(ctx context.Context, phase int) ([]repositories.PriceUpdate, error) {
	ctx, cancel := context.WithTimeout(ctx, recomputeTimeout)
	defer cancel()

	items, err := s.items.GetByStatus(ctx, models.ItemStatusAvailable)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	updates := make([]repositories.PriceUpdate, len(items))
	g, gctx := errgroup.WithContext(ctx)

	for start := 0; start < len(items); start += s.chunkSize {
		end := start + s.chunkSize
		if end > len(items) {
			end = len(items)
		}
		start, end := start, end

		g.Go(func() error {
			if err := s.sem.Acquire(gctx, 1); err != nil {
				return err
			}
			defer s.sem.Release(1)

			for i := start; i < end; i++ {
				updates[i] = repositories.PriceUpdate{
					ItemID:     items[i].ID,
					PriceCents: s.calc.PriceFor(items[i].Score, phase),
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return updates, nil
}
