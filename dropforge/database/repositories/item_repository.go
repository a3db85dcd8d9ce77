package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dropforge/dropforge/dropforge/database/models"
	"github.com/dropforge/dropforge/dropforge/sale/salerrors"
	lru "github.com/hashicorp/golang-lru"
	"github.com/sahilm/fuzzy"
	"github.com/uptrace/bun"
)

const (
	priceCacheSize   = 4096
	priceCacheExpiry = time.Minute
)

type ItemRepository interface {
	Create(ctx context.Context, item *models.Item) error
	BulkCreate(ctx context.Context, items []*models.Item) (int, error)
	GetByID(ctx context.Context, id int64) (*models.Item, error)
	GetByName(ctx context.Context, name string) (*models.Item, error)
	GetByStatus(ctx context.Context, status models.ItemStatus) ([]*models.Item, error)
	CurrentPrice(ctx context.Context, id int64) (int64, error)
	SuggestClosestName(ctx context.Context, name string) (string, error)
	Reserve(ctx context.Context, id int64, buyerID string) error
	Release(ctx context.Context, id int64) error
	MarkSold(ctx context.Context, id int64, buyerID string, sale *models.SaleRecord) error
	SetMintResult(ctx context.Context, id int64, status models.ItemStatus, txHash string) error
	PurgePriceCache()
}

type cachedPrice struct {
	price     int64
	timestamp time.Time
}

type itemRepository struct {
	db         *bun.DB
	priceCache *lru.Cache
}

func NewItemRepository(db *bun.DB) ItemRepository {
	cache, _ := lru.New(priceCacheSize)
	return &itemRepository{db: db, priceCache: cache}
}

func (r *itemRepository) Create(ctx context.Context, item *models.Item) error {
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()
	if item.Status == "" {
		item.Status = models.ItemStatusAvailable
	}

	if _, err := r.db.NewInsert().Model(item).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

func (r *itemRepository) BulkCreate(ctx context.Context, items []*models.Item) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	now := time.Now()
	for _, item := range items {
		item.CreatedAt = now
		item.UpdatedAt = now
		if item.Status == "" {
			item.Status = models.ItemStatusAvailable
		}
	}

	res, err := r.db.NewInsert().
		Model(&items).
		On("CONFLICT (name) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk create items: %w", err)
	}

	inserted, _ := res.RowsAffected()
	return int(inserted), nil
}

func (r *itemRepository) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	item := new(models.Item)
	err := r.db.NewSelect().
		Model(item).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, salerrors.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

func (r *itemRepository) GetByName(ctx context.Context, name string) (*models.Item, error) {
	item := new(models.Item)
	err := r.db.NewSelect().
		Model(item).
		Where("name = ?", name).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, salerrors.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item by name: %w", err)
	}
	return item, nil
}

func (r *itemRepository) GetByStatus(ctx context.Context, status models.ItemStatus) ([]*models.Item, error) {
	var items []*models.Item
	err := r.db.NewSelect().
		Model(&items).
		Where("status = ?", status).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get items by status: %w", err)
	}
	return items, nil
}

// CurrentPrice serves the read path for price displays; entries expire after
// a minute so a tier flip is visible promptly without hitting the database on
// every lookup.
func (r *itemRepository) CurrentPrice(ctx context.Context, id int64) (int64, error) {
	if v, ok := r.priceCache.Get(id); ok {
		cached := v.(cachedPrice)
		if time.Since(cached.timestamp) < priceCacheExpiry {
			return cached.price, nil
		}
		r.priceCache.Remove(id)
	}

	item, err := r.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}

	r.priceCache.Add(id, cachedPrice{price: item.PriceCents, timestamp: time.Now()})
	return item.PriceCents, nil
}

func (r *itemRepository) PurgePriceCache() {
	r.priceCache.Purge()
}

// SuggestClosestName returns the catalog name closest to the given one, used
// to make data-setup errors in the auction calendar actionable.
func (r *itemRepository) SuggestClosestName(ctx context.Context, name string) (string, error) {
	var names []string
	err := r.db.NewSelect().
		Model((*models.Item)(nil)).
		Column("name").
		Scan(ctx, &names)
	if err != nil {
		return "", fmt.Errorf("failed to list item names: %w", err)
	}

	matches := fuzzy.Find(name, names)
	if len(matches) == 0 {
		return "", nil
	}
	return matches[0].Str, nil
}

func (r *itemRepository) Reserve(ctx context.Context, id int64, buyerID string) error {
	res, err := r.db.NewUpdate().
		Model((*models.Item)(nil)).
		Set("status = ?", models.ItemStatusReserved).
		Set("owner_id = ?", buyerID).
		Set("updated_at = ?", time.Now()).
		Where("id = ? AND status = ?", id, models.ItemStatusAvailable).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to reserve item: %w", err)
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return salerrors.ErrItemUnavailable
	}
	return nil
}

func (r *itemRepository) Release(ctx context.Context, id int64) error {
	res, err := r.db.NewUpdate().
		Model((*models.Item)(nil)).
		Set("status = ?", models.ItemStatusAvailable).
		Set("owner_id = ''").
		Set("updated_at = ?", time.Now()).
		Where("id = ? AND status = ?", id, models.ItemStatusReserved).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to release item: %w", err)
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return salerrors.ErrItemNotReserved
	}
	return nil
}

// MarkSold settles a fixed-price purchase: the item flips to sold and the
// sale record lands in the same transaction.
func (r *itemRepository) MarkSold(ctx context.Context, id int64, buyerID string, sale *models.SaleRecord) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.NewUpdate().
		Model((*models.Item)(nil)).
		Set("status = ?", models.ItemStatusSold).
		Set("owner_id = ?", buyerID).
		Set("updated_at = ?", time.Now()).
		Where("id = ? AND status = ?", id, models.ItemStatusReserved).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to mark item sold: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return salerrors.ErrItemNotReserved
	}

	sale.CreatedAt = time.Now()
	if _, err := tx.NewInsert().Model(sale).Exec(ctx); err != nil {
		return fmt.Errorf("failed to record sale: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit sale: %w", err)
	}

	r.priceCache.Remove(id)
	return nil
}

func (r *itemRepository) SetMintResult(ctx context.Context, id int64, status models.ItemStatus, txHash string) error {
	res, err := r.db.NewUpdate().
		Model((*models.Item)(nil)).
		Set("status = ?", status).
		Set("mint_tx_hash = ?", txHash).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set mint result: %w", err)
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return salerrors.ErrItemNotFound
	}
	return nil
}
