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

// PriceUpdate is one precomputed catalog price for a tier transition.
type PriceUpdate struct {
	ItemID     int64
	PriceCents int64
}

type TierRepository interface {
	GetActive(ctx context.Context) (*models.Tier, error)
	GetByPhase(ctx context.Context, phase int) (*models.Tier, error)
	Activate(ctx context.Context, phase int, now time.Time, updates []PriceUpdate, chunkSize int) error
	AdvanceTier(ctx context.Context, currentID int64, nextPhase int, now time.Time, updates []PriceUpdate, chunkSize int) error
	IncrementSold(ctx context.Context, tierID int64) error
}

type tierRepository struct {
	db *bun.DB
}

func NewTierRepository(db *bun.DB) TierRepository {
	return &tierRepository{db: db}
}

func (r *tierRepository) GetActive(ctx context.Context) (*models.Tier, error) {
	tier := new(models.Tier)
	err := r.db.NewSelect().
		Model(tier).
		Where("active = TRUE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, salerrors.ErrNoActiveTier
		}
		return nil, fmt.Errorf("failed to get active tier: %w", err)
	}
	return tier, nil
}

func (r *tierRepository) GetByPhase(ctx context.Context, phase int) (*models.Tier, error) {
	tier := new(models.Tier)
	err := r.db.NewSelect().
		Model(tier).
		Where("phase = ?", phase).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, salerrors.ErrTierNotFound
		}
		return nil, fmt.Errorf("failed to get tier by phase: %w", err)
	}
	return tier, nil
}

// Activate bootstraps the given phase. The activation and the initial catalog
// prices commit together so readers never see the tier live with stale
// prices.
func (r *tierRepository) Activate(ctx context.Context, phase int, now time.Time, updates []PriceUpdate, chunkSize int) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.NewUpdate().
		Model((*models.Tier)(nil)).
		Set("active = TRUE").
		Set("start_time = ?", now).
		Set("updated_at = ?", now).
		Where("phase = ? AND active = FALSE", phase).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to activate tier: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return salerrors.ErrTierNotFound
	}

	if err := applyPriceUpdates(ctx, tx, updates, chunkSize); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tier activation: %w", err)
	}
	return nil
}

// AdvanceTier deactivates the current tier, activates the next phase with its
// start time reset to now, and rewrites catalog prices, all in one
// transaction. The guard on the deactivation keeps the single-active-tier
// invariant when two instances race.
func (r *tierRepository) AdvanceTier(ctx context.Context, currentID int64, nextPhase int, now time.Time, updates []PriceUpdate, chunkSize int) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.NewUpdate().
		Model((*models.Tier)(nil)).
		Set("active = FALSE").
		Set("updated_at = ?", now).
		Where("id = ? AND active = TRUE", currentID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to deactivate tier: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		// Another instance already advanced this tier.
		return salerrors.ErrBidConflict
	}

	res, err = tx.NewUpdate().
		Model((*models.Tier)(nil)).
		Set("active = TRUE").
		Set("start_time = ?", now).
		Set("updated_at = ?", now).
		Where("phase = ? AND active = FALSE", nextPhase).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to activate next tier: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return salerrors.ErrTierNotFound
	}

	if err := applyPriceUpdates(ctx, tx, updates, chunkSize); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tier advance: %w", err)
	}
	return nil
}

// applyPriceUpdates writes the recomputed prices in bounded chunks so a large
// catalog never produces a single oversized statement.
func applyPriceUpdates(ctx context.Context, tx bun.Tx, updates []PriceUpdate, chunkSize int) error {
	if chunkSize <= 0 {
		chunkSize = 200
	}

	now := time.Now()
	for start := 0; start < len(updates); start += chunkSize {
		end := start + chunkSize
		if end > len(updates) {
			end = len(updates)
		}

		chunk := make([]*models.Item, 0, end-start)
		for _, u := range updates[start:end] {
			chunk = append(chunk, &models.Item{
				ID:         u.ItemID,
				PriceCents: u.PriceCents,
				UpdatedAt:  now,
			})
		}

		_, err := tx.NewUpdate().
			Model(&chunk).
			Column("price_cents", "updated_at").
			Bulk().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to update prices (chunk %d-%d): %w", start, end, err)
		}
	}
	return nil
}

func (r *tierRepository) IncrementSold(ctx context.Context, tierID int64) error {
	_, err := r.db.NewUpdate().
		Model((*models.Tier)(nil)).
		Set("quantity_sold = quantity_sold + 1").
		Set("quantity_available = quantity_available - 1").
		Set("updated_at = ?", time.Now()).
		Where("id = ? AND quantity_available > 0", tierID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to increment tier sales: %w", err)
	}
	return nil
}
