package auction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dropforge/dropforge/dropforge/database/repositories"
	"github.com/dropforge/dropforge/dropforge/sale/salerrors"
)

const (
	// extensionWindow selects auctions close enough to their end to be
	// snipe candidates.
	extensionWindow = time.Hour
	// recentBidWindow is how fresh the latest bid must be to count as a
	// snipe attempt.
	recentBidWindow = 5 * time.Minute
	// extensionAmount is added to the end time per qualifying extension.
	extensionAmount = time.Hour
)

// ExtensionSweeper implements anti-snipe protection: auctions in their final
// hour that just received a bid get pushed out another hour, giving other
// bidders time to respond.
type ExtensionSweeper struct {
	auctions repositories.AuctionRepository
	now      func() time.Time
}

func NewExtensionSweeper(auctions repositories.AuctionRepository) *ExtensionSweeper {
	return &ExtensionSweeper{
		auctions: auctions,
		now:      time.Now,
	}
}

// SweepExtensions scans active auctions ending within the next hour and
// extends those whose latest bid landed within the last five minutes. Each
// bid triggers at most one extension regardless of how many ticks observe
// it, and one failing auction never blocks the rest of the sweep.
func (s *ExtensionSweeper) SweepExtensions(ctx context.Context) error {
	now := s.now()

	candidates, err := s.auctions.GetActiveEndingBefore(ctx, now.Add(extensionWindow))
	if err != nil {
		return fmt.Errorf("failed to list extension candidates: %w", err)
	}

	var extended, failed int
	for _, auction := range candidates {
		ok, err := s.extendIfSniped(ctx, auction.ID, auction.EndTime, now)
		if err != nil {
			failed++
			slog.Error("Failed to process anti-snipe extension",
				slog.String("type", "tick"),
				slog.String("code", auction.Code),
				slog.String("error", err.Error()))
			continue
		}
		if ok {
			extended++
		}
	}

	if extended > 0 || failed > 0 {
		slog.Info("Anti-snipe sweep complete",
			slog.String("type", "tick"),
			slog.Int("candidates", len(candidates)),
			slog.Int("extended", extended),
			slog.Int("failed", failed))
	}
	return nil
}

func (s *ExtensionSweeper) extendIfSniped(ctx context.Context, auctionID int64, endTime, now time.Time) (bool, error) {
	latest, err := s.auctions.GetLatestBid(ctx, auctionID)
	if errors.Is(err, salerrors.ErrNoBids) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load latest bid: %w", err)
	}

	if now.Sub(latest.Timestamp) > recentBidWindow {
		return false, nil
	}

	err = s.auctions.Extend(ctx, auctionID, endTime.Add(extensionAmount), latest.ID)
	if errors.Is(err, salerrors.ErrBidConflict) {
		// This bid already earned its extension on a previous tick.
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to extend auction: %w", err)
	}

	slog.Info("Extended auction under snipe pressure",
		slog.String("type", "tick"),
		slog.Int64("auction_id", auctionID),
		slog.Int64("triggering_bid_id", latest.ID),
		slog.Time("new_end_time", endTime.Add(extensionAmount)))
	return true, nil
}
