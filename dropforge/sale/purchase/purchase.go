package purchase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dropforge/dropforge/dropforge/database/models"
	"github.com/dropforge/dropforge/dropforge/database/repositories"
	"github.com/dropforge/dropforge/dropforge/sale/mint"
	"github.com/dropforge/dropforge/dropforge/sale/salerrors"
	"github.com/google/uuid"
)

const creatorSharePercent = 70

// Service runs the fixed-price purchase flow: reserve, confirm, mint. The
// price charged is the catalog price at confirmation time, which tracks the
// active pricing tier.
type Service struct {
	items  repositories.ItemRepository
	tiers  repositories.TierRepository
	sales  repositories.SaleRepository
	minter mint.Minter
}

func NewService(
	items repositories.ItemRepository,
	tiers repositories.TierRepository,
	sales repositories.SaleRepository,
	minter mint.Minter,
) *Service {
	if minter == nil {
		minter = mint.NewLogMinter()
	}
	return &Service{
		items:  items,
		tiers:  tiers,
		sales:  sales,
		minter: minter,
	}
}

// ReserveItem holds an available item for a buyer while payment is in
// flight. Items already reserved, auctioned, or sold are rejected with
// ErrItemUnavailable.
func (s *Service) ReserveItem(ctx context.Context, itemID int64, buyerID string) error {
	if buyerID == "" {
		return fmt.Errorf("buyer id is required")
	}
	if err := s.items.Reserve(ctx, itemID, buyerID); err != nil {
		return err
	}

	slog.Info("Item reserved",
		slog.String("type", "sale"),
		slog.Int64("item_id", itemID),
		slog.String("buyer", buyerID))
	return nil
}

// ReleaseReservation returns a reserved item to the catalog, used when
// payment falls through or times out.
func (s *Service) ReleaseReservation(ctx context.Context, itemID int64) error {
	return s.items.Release(ctx, itemID)
}

// ConfirmPurchase settles a reserved item: the item flips to sold and the
// sale record lands in one transaction, then tier inventory and the mint run
// after the commit.
func (s *Service) ConfirmPurchase(ctx context.Context, itemID int64, buyerID string) (*models.SaleRecord, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.Status != models.ItemStatusReserved {
		return nil, salerrors.ErrItemNotReserved
	}
	if item.OwnerID != buyerID {
		return nil, fmt.Errorf("item %d is reserved for a different buyer: %w", itemID, salerrors.ErrItemNotReserved)
	}

	price := item.PriceCents
	creatorShare := price * creatorSharePercent / 100
	sale := &models.SaleRecord{
		ID:                 uuid.NewString(),
		ItemID:             item.ID,
		BuyerID:            buyerID,
		PriceCents:         price,
		CreatorShareCents:  creatorShare,
		PlatformShareCents: price - creatorShare,
		Source:             models.SaleSourceFixed,
	}

	if err := s.items.MarkSold(ctx, item.ID, buyerID, sale); err != nil {
		return nil, fmt.Errorf("failed to settle purchase of item %d: %w", itemID, err)
	}

	slog.Info("Purchase settled",
		slog.String("type", "sale"),
		slog.Int64("item_id", item.ID),
		slog.String("buyer", buyerID),
		slog.Int64("price_cents", price))

	s.recordTierSale(ctx)
	s.mintPurchase(ctx, item.ID, sale)
	return sale, nil
}

// recordTierSale bumps the active tier's sold counter. Inventory accounting
// is advisory, so a failure only logs.
func (s *Service) recordTierSale(ctx context.Context) {
	tier, err := s.tiers.GetActive(ctx)
	if errors.Is(err, salerrors.ErrNoActiveTier) {
		return
	}
	if err != nil {
		slog.Error("Failed to load active tier for sale accounting", slog.String("error", err.Error()))
		return
	}
	if err := s.tiers.IncrementSold(ctx, tier.ID); err != nil {
		slog.Error("Failed to increment tier sold counter",
			slog.Int("phase", tier.Phase),
			slog.String("error", err.Error()))
	}
}

func (s *Service) mintPurchase(ctx context.Context, itemID int64, sale *models.SaleRecord) {
	receipt, err := s.minter.Mint(ctx, []int64{itemID}, sale.BuyerID, sale.ID)
	if err != nil {
		slog.Error("Mint failed after purchase settlement",
			slog.Int64("item_id", itemID),
			slog.String("sale_id", sale.ID),
			slog.String("error", err.Error()))
		if err := s.items.SetMintResult(ctx, itemID, models.ItemStatusMintFailed, ""); err != nil {
			slog.Error("Failed to mark item mint_failed",
				slog.Int64("item_id", itemID),
				slog.String("error", err.Error()))
		}
		return
	}

	if err := s.items.SetMintResult(ctx, itemID, models.ItemStatusMinted, receipt.TxHash); err != nil {
		slog.Error("Failed to record mint result",
			slog.Int64("item_id", itemID),
			slog.String("error", err.Error()))
	}
	if err := s.sales.SetMintTxRef(ctx, sale.ID, receipt.TxHash); err != nil {
		slog.Error("Failed to record mint tx ref on sale",
			slog.String("sale_id", sale.ID),
			slog.String("error", err.Error()))
	}
}
