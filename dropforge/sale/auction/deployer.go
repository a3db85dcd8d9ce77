package auction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dropforge/dropforge/dropforge/database/models"
	"github.com/dropforge/dropforge/dropforge/database/repositories"
	"github.com/dropforge/dropforge/dropforge/sale/salerrors"
)

const (
	weekDuration            = 7 * 24 * time.Hour
	deployedAuctionDuration = 7 * 24 * time.Hour
)

// ScheduleEntry pins an item to a launch week in the auction calendar. The
// calendar is static configuration; weeks count from the activation of the
// first pricing tier.
type ScheduleEntry struct {
	ItemName         string `toml:"item_name"`
	Week             int    `toml:"week"`
	StartingBidCents int64  `toml:"starting_bid_cents"`
}

// Deployer opens calendar auctions when their week arrives.
type Deployer struct {
	manager  *Manager
	auctions repositories.AuctionRepository
	items    repositories.ItemRepository
	tiers    repositories.TierRepository
	schedule []ScheduleEntry
	now      func() time.Time
}

func NewDeployer(
	manager *Manager,
	auctions repositories.AuctionRepository,
	items repositories.ItemRepository,
	tiers repositories.TierRepository,
	schedule []ScheduleEntry,
) *Deployer {
	return &Deployer{
		manager:  manager,
		auctions: auctions,
		items:    items,
		tiers:    tiers,
		schedule: schedule,
		now:      time.Now,
	}
}

// RunAuctionDeploymentCheck opens every calendar auction scheduled for the
// current week that is not already open. Re-running within the same week is a
// no-op; entries pointing at missing or unprepared items are logged and
// skipped without blocking the rest of the calendar.
func (d *Deployer) RunAuctionDeploymentCheck(ctx context.Context) error {
	if len(d.schedule) == 0 {
		return nil
	}

	week, err := d.currentWeek(ctx)
	if err != nil {
		if errors.Is(err, salerrors.ErrTierNotFound) || errors.Is(err, salerrors.ErrNoActiveTier) {
			// Calendar starts counting once the launch tier activates.
			return nil
		}
		return err
	}
	if week < 1 {
		return nil
	}

	var opened int
	for _, entry := range d.schedule {
		if entry.Week != week {
			continue
		}
		ok, err := d.deployEntry(ctx, entry)
		if err != nil {
			slog.Warn("Skipping calendar auction entry",
				slog.String("type", "tick"),
				slog.String("item", entry.ItemName),
				slog.Int("week", entry.Week),
				slog.String("reason", err.Error()))
			continue
		}
		if ok {
			opened++
		}
	}

	if opened > 0 {
		slog.Info("Deployed calendar auctions",
			slog.String("type", "tick"),
			slog.Int("week", week),
			slog.Int("opened", opened))
	}
	return nil
}

// currentWeek is 1-based: week 1 starts at the phase 1 activation instant.
func (d *Deployer) currentWeek(ctx context.Context) (int, error) {
	first, err := d.tiers.GetByPhase(ctx, 1)
	if err != nil {
		return 0, err
	}
	if first.StartTime.IsZero() {
		return 0, salerrors.ErrNoActiveTier
	}

	elapsed := d.now().Sub(first.StartTime)
	if elapsed < 0 {
		return 0, nil
	}
	return int(elapsed/weekDuration) + 1, nil
}

// deployEntry returns (true, nil) when a new auction was opened, (false, nil)
// when the entry is already covered, and an error when the entry cannot be
// deployed at all.
func (d *Deployer) deployEntry(ctx context.Context, entry ScheduleEntry) (bool, error) {
	item, err := d.items.GetByName(ctx, entry.ItemName)
	if errors.Is(err, salerrors.ErrItemNotFound) {
		suggestion, sErr := d.items.SuggestClosestName(ctx, entry.ItemName)
		if sErr == nil && suggestion != "" {
			return false, fmt.Errorf("item %q not found in catalog, did you mean %q", entry.ItemName, suggestion)
		}
		return false, fmt.Errorf("item %q not found in catalog", entry.ItemName)
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up item %q: %w", entry.ItemName, err)
	}

	open, err := d.auctions.HasOpenAuctionForItem(ctx, item.ID)
	if err != nil {
		return false, fmt.Errorf("failed to check open auctions for %q: %w", entry.ItemName, err)
	}
	if open {
		return false, nil
	}

	switch item.Status {
	case models.ItemStatusAuctionReserved:
	case models.ItemStatusSold, models.ItemStatusMinted, models.ItemStatusMintFailed:
		// Auction for this entry already settled earlier in the week.
		return false, nil
	default:
		return false, fmt.Errorf("item %q is in status %q, expected %q",
			entry.ItemName, item.Status, models.ItemStatusAuctionReserved)
	}

	if entry.StartingBidCents <= 0 {
		return false, fmt.Errorf("entry for %q has non-positive starting bid %d", entry.ItemName, entry.StartingBidCents)
	}

	if _, err := d.manager.CreateAuction(ctx, item.ID, entry.StartingBidCents, deployedAuctionDuration); err != nil {
		if errors.Is(err, salerrors.ErrItemUnavailable) {
			// Another instance deployed this entry between our checks.
			return false, nil
		}
		return false, fmt.Errorf("failed to open auction for %q: %w", entry.ItemName, err)
	}
	return true, nil
}
