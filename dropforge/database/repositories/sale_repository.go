package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dropforge/dropforge/dropforge/database/models"
	"github.com/dropforge/dropforge/dropforge/sale/salerrors"
	"github.com/uptrace/bun"
)

type SaleRepository interface {
	Create(ctx context.Context, sale *models.SaleRecord) error
	GetByAuctionID(ctx context.Context, auctionID int64) (*models.SaleRecord, error)
	GetByItemID(ctx context.Context, itemID int64) ([]*models.SaleRecord, error)
	SetMintTxRef(ctx context.Context, saleID string, txRef string) error
}

type saleRepository struct {
	db *bun.DB
}

func NewSaleRepository(db *bun.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *models.SaleRecord) error {
	sale.CreatedAt = time.Now()
	if _, err := r.db.NewInsert().Model(sale).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create sale record: %w", err)
	}
	return nil
}

func (r *saleRepository) GetByAuctionID(ctx context.Context, auctionID int64) (*models.SaleRecord, error) {
	sale := new(models.SaleRecord)
	err := r.db.NewSelect().
		Model(sale).
		Where("auction_id = ?", auctionID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, salerrors.ErrSaleNotFound
		}
		return nil, fmt.Errorf("failed to get sale by auction: %w", err)
	}
	return sale, nil
}

func (r *saleRepository) GetByItemID(ctx context.Context, itemID int64) ([]*models.SaleRecord, error) {
	var sales []*models.SaleRecord
	err := r.db.NewSelect().
		Model(&sales).
		Where("item_id = ?", itemID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get sales by item: %w", err)
	}
	return sales, nil
}

func (r *saleRepository) SetMintTxRef(ctx context.Context, saleID string, txRef string) error {
	res, err := r.db.NewUpdate().
		Model((*models.SaleRecord)(nil)).
		Set("mint_tx_ref = ?", txRef).
		Where("id = ?", saleID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set mint tx ref: %w", err)
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return salerrors.ErrSaleNotFound
	}
	return nil
}
