package auction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dropforge/dropforge/dropforge/database/models"
	"github.com/dropforge/dropforge/dropforge/database/repositories"
	"github.com/dropforge/dropforge/dropforge/sale/mint"
	"github.com/dropforge/dropforge/dropforge/sale/notify"
	"github.com/dropforge/dropforge/dropforge/sale/salerrors"
	"github.com/google/uuid"
)

// creatorSharePercent is the creator's cut of every auction settlement; the
// platform keeps the remainder, so rounding cents always land on the
// platform side.
const creatorSharePercent = 70

// Finalizer settles ended auctions: winner payout split, item transfer, sale
// history, and the post-commit mint and notification.
type Finalizer struct {
	auctions repositories.AuctionRepository
	items    repositories.ItemRepository
	sales    repositories.SaleRepository
	minter   mint.Minter
	notifier notify.Notifier
	now      func() time.Time
}

func NewFinalizer(
	auctions repositories.AuctionRepository,
	items repositories.ItemRepository,
	sales repositories.SaleRepository,
	minter mint.Minter,
	notifier notify.Notifier,
) *Finalizer {
	if minter == nil {
		minter = mint.NewLogMinter()
	}
	if notifier == nil {
		notifier = notify.NewLogNotifier()
	}
	return &Finalizer{
		auctions: auctions,
		items:    items,
		sales:    sales,
		minter:   minter,
		notifier: notifier,
		now:      time.Now,
	}
}

// FinalizeAuction settles one auction. Calling it again after settlement is a
// soft no-op that returns the already-recorded sale, never a duplicate. An
// auction still inside its bidding window is rejected with
// ErrAuctionNotEnded.
func (f *Finalizer) FinalizeAuction(ctx context.Context, auctionID int64) (*models.SaleRecord, error) {
	auction, err := f.auctions.GetByID(ctx, auctionID)
	if err != nil {
		return nil, err
	}

	switch auction.Status {
	case models.AuctionStatusFinalized:
		return f.priorSale(ctx, auction)
	case models.AuctionStatusEndedNoBids:
		return nil, nil
	case models.AuctionStatusActive:
	default:
		return nil, salerrors.ErrAuctionNotActive
	}

	if f.now().Before(auction.EndTime) {
		return nil, salerrors.ErrAuctionNotEnded
	}

	if auction.TopBidderID == "" {
		return nil, f.settleNoBids(ctx, auction)
	}

	sale := buildSale(auction)
	err = f.auctions.FinalizeWinner(ctx, auction.ID, sale)
	if errors.Is(err, salerrors.ErrAlreadyFinalized) {
		// Lost the settlement race to another instance or a concurrent call.
		return f.priorSale(ctx, auction)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to finalize auction %s: %w", auction.Code, err)
	}

	slog.Info("Auction finalized",
		slog.String("type", "auction"),
		slog.String("code", auction.Code),
		slog.String("winner", auction.TopBidderID),
		slog.Int64("price_cents", sale.PriceCents),
		slog.Int64("creator_share_cents", sale.CreatorShareCents),
		slog.Int64("platform_share_cents", sale.PlatformShareCents))

	f.mintAndNotify(ctx, auction, sale)
	return sale, nil
}

// SweepEndedAuctions finalizes every active auction whose end time has
// passed. Failures are isolated per auction; the sweep returns an error only
// when the candidate query itself fails.
func (f *Finalizer) SweepEndedAuctions(ctx context.Context) error {
	expired, err := f.auctions.GetExpiredActive(ctx, f.now())
	if err != nil {
		return fmt.Errorf("failed to list expired auctions: %w", err)
	}
	if len(expired) == 0 {
		return nil
	}

	var settled, failed int
	for _, auction := range expired {
		if _, err := f.FinalizeAuction(ctx, auction.ID); err != nil {
			failed++
			slog.Error("Failed to finalize expired auction",
				slog.String("type", "tick"),
				slog.String("code", auction.Code),
				slog.String("error", err.Error()))
			continue
		}
		settled++
	}

	slog.Info("Auction completion sweep finished",
		slog.String("type", "tick"),
		slog.Int("expired", len(expired)),
		slog.Int("settled", settled),
		slog.Int("failed", failed))
	return nil
}

func (f *Finalizer) settleNoBids(ctx context.Context, auction *models.Auction) error {
	err := f.auctions.EndNoBids(ctx, auction.ID)
	if errors.Is(err, salerrors.ErrAlreadyFinalized) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to settle no-bid auction %s: %w", auction.Code, err)
	}

	slog.Info("Auction ended without bids, item returned to catalog",
		slog.String("type", "auction"),
		slog.String("code", auction.Code),
		slog.Int64("item_id", auction.ItemID))
	return nil
}

func (f *Finalizer) priorSale(ctx context.Context, auction *models.Auction) (*models.SaleRecord, error) {
	sale, err := f.sales.GetByAuctionID(ctx, auction.ID)
	if errors.Is(err, salerrors.ErrSaleNotFound) {
		// Finalized status without a sale row should be impossible; the
		// settlement transaction writes both together.
		slog.Warn("Finalized auction has no sale record",
			slog.String("type", "auction"),
			slog.String("code", auction.Code))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load prior sale for auction %s: %w", auction.Code, err)
	}
	return sale, nil
}

func buildSale(auction *models.Auction) *models.SaleRecord {
	price := auction.CurrentBidCents
	creatorShare := price * creatorSharePercent / 100
	auctionID := auction.ID

	return &models.SaleRecord{
		ID:                 uuid.NewString(),
		ItemID:             auction.ItemID,
		AuctionID:          &auctionID,
		BuyerID:            auction.TopBidderID,
		PriceCents:         price,
		CreatorShareCents:  creatorShare,
		PlatformShareCents: price - creatorShare,
		Source:             models.SaleSourceAuction,
	}
}

// mintAndNotify runs after the settlement transaction committed. A mint
// failure marks the item mint_failed for the recovery job but never unwinds
// the sale.
func (f *Finalizer) mintAndNotify(ctx context.Context, auction *models.Auction, sale *models.SaleRecord) {
	item, err := f.items.GetByID(ctx, auction.ItemID)
	itemName := ""
	if err == nil {
		itemName = item.Name
	}

	receipt, err := f.minter.Mint(ctx, []int64{auction.ItemID}, sale.BuyerID, sale.ID)
	if err != nil {
		slog.Error("Mint failed after settlement",
			slog.String("type", "auction"),
			slog.String("code", auction.Code),
			slog.String("sale_id", sale.ID),
			slog.String("error", err.Error()))
		if err := f.items.SetMintResult(ctx, auction.ItemID, models.ItemStatusMintFailed, ""); err != nil {
			slog.Error("Failed to mark item mint_failed",
				slog.Int64("item_id", auction.ItemID),
				slog.String("error", err.Error()))
		}
		return
	}

	if err := f.items.SetMintResult(ctx, auction.ItemID, models.ItemStatusMinted, receipt.TxHash); err != nil {
		slog.Error("Failed to record mint result",
			slog.Int64("item_id", auction.ItemID),
			slog.String("error", err.Error()))
	}
	if err := f.sales.SetMintTxRef(ctx, sale.ID, receipt.TxHash); err != nil {
		slog.Error("Failed to record mint tx ref on sale",
			slog.String("sale_id", sale.ID),
			slog.String("error", err.Error()))
	}

	if err := f.notifier.NotifyAuctionWon(ctx, sale.BuyerID, itemName, sale.PriceCents, receipt.TxHash); err != nil {
		slog.Error("Failed to send auction won notification",
			slog.String("code", auction.Code),
			slog.String("recipient", sale.BuyerID),
			slog.String("error", err.Error()))
	}
}
