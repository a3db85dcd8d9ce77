package auction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dropforge/dropforge/dropforge/database/models"
	"github.com/dropforge/dropforge/dropforge/database/repositories"
	"github.com/dropforge/dropforge/dropforge/sale/notify"
	"github.com/dropforge/dropforge/dropforge/sale/salerrors"
)

const (
	// minIncrementPercent and minIncrementFloorCents define the minimum raise
	// over the current bid: 5% or $25, whichever is larger.
	minIncrementPercent    = 5
	minIncrementFloorCents = 2500

	// placeBidMaxAttempts bounds the optimistic retry loop when concurrent
	// bidders race on the same auction.
	placeBidMaxAttempts = 3
)

// MinimumBid returns the lowest acceptable next bid given the current high
// bid.
func MinimumBid(currentCents int64) int64 {
	increment := currentCents * minIncrementPercent / 100
	if increment < minIncrementFloorCents {
		increment = minIncrementFloorCents
	}
	return currentCents + increment
}

// Manager owns auction creation and the bidding path.
type Manager struct {
	auctions repositories.AuctionRepository
	items    repositories.ItemRepository
	codes    *CodeGenerator
	notifier notify.Notifier
	now      func() time.Time
}

func NewManager(auctions repositories.AuctionRepository, items repositories.ItemRepository, notifier notify.Notifier) *Manager {
	if notifier == nil {
		notifier = notify.NewLogNotifier()
	}
	return &Manager{
		auctions: auctions,
		items:    items,
		codes:    NewCodeGenerator(auctions),
		notifier: notifier,
		now:      time.Now,
	}
}

// CreateAuction opens an auction over an item currently held for auction. The
// item must be in auction_reserved status; the repository flips it to
// auctioned atomically with the insert.
func (m *Manager) CreateAuction(ctx context.Context, itemID int64, startingBidCents int64, duration time.Duration) (*models.Auction, error) {
	if startingBidCents <= 0 {
		return nil, fmt.Errorf("starting bid must be positive, got %d", startingBidCents)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("auction duration must be positive, got %s", duration)
	}

	item, err := m.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load item %d: %w", itemID, err)
	}

	code, err := m.codes.Generate(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to generate auction code: %w", err)
	}

	now := m.now()
	auction := &models.Auction{
		Code:            code,
		ItemID:          item.ID,
		StartPriceCents: startingBidCents,
		CurrentBidCents: startingBidCents,
		Status:          models.AuctionStatusActive,
		StartTime:       now,
		EndTime:         now.Add(duration),
	}

	if err := m.auctions.Create(ctx, auction); err != nil {
		return nil, fmt.Errorf("failed to create auction for item %d: %w", itemID, err)
	}

	slog.Info("Auction opened",
		slog.String("type", "auction"),
		slog.String("code", auction.Code),
		slog.Int64("item_id", item.ID),
		slog.Int64("starting_bid_cents", startingBidCents),
		slog.Time("ends_at", auction.EndTime))

	return auction, nil
}

// PlaceBid validates and records a bid. Concurrent bids on the same auction
// are resolved optimistically: the repository's compare-and-swap rejects a
// stale expectation and the loop re-validates against the fresh head, so a
// losing racer either clears the new minimum or gets a BidTooLowError with
// the amount it actually needs.
func (m *Manager) PlaceBid(ctx context.Context, auctionID int64, bidderID string, amountCents int64) (*models.AuctionBid, error) {
	if bidderID == "" {
		return nil, fmt.Errorf("bidder id is required")
	}

	var lastErr error
	for attempt := 0; attempt < placeBidMaxAttempts; attempt++ {
		auction, err := m.auctions.GetByID(ctx, auctionID)
		if err != nil {
			return nil, err
		}

		now := m.now()
		if auction.Status != models.AuctionStatusActive {
			return nil, salerrors.ErrAuctionNotActive
		}
		if !now.Before(auction.EndTime) {
			return nil, salerrors.ErrAuctionEnded
		}

		minimum := MinimumBid(auction.CurrentBidCents)
		if amountCents < minimum {
			return nil, &salerrors.BidTooLowError{
				OfferedCents: amountCents,
				MinimumCents: minimum,
			}
		}

		bid := &models.AuctionBid{
			AuctionID:   auction.ID,
			BidderID:    bidderID,
			AmountCents: amountCents,
			Timestamp:   now,
		}

		err = m.auctions.RecordBid(ctx, bid, auction.CurrentBidCents)
		if err == nil {
			m.notifyOutbid(ctx, auction, bidderID, amountCents)
			return bid, nil
		}
		if !errors.Is(err, salerrors.ErrBidConflict) {
			return nil, fmt.Errorf("failed to record bid: %w", err)
		}
		lastErr = err
	}

	return nil, fmt.Errorf("bid lost %d consecutive races on auction %d: %w", placeBidMaxAttempts, auctionID, lastErr)
}

// notifyOutbid tells the previous top bidder they lost the lead. Delivery
// failures are logged, never surfaced to the new bidder.
func (m *Manager) notifyOutbid(ctx context.Context, auction *models.Auction, newBidderID string, newAmountCents int64) {
	previous := auction.TopBidderID
	if previous == "" || previous == newBidderID {
		return
	}

	item, err := m.items.GetByID(ctx, auction.ItemID)
	itemName := ""
	if err == nil {
		itemName = item.Name
	}

	if err := m.notifier.NotifyOutbid(ctx, previous, itemName, newAmountCents); err != nil {
		slog.Error("Failed to send outbid notification",
			slog.String("type", "auction"),
			slog.String("code", auction.Code),
			slog.String("recipient", previous),
			slog.String("error", err.Error()))
	}
}
