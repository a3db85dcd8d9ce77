package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/dropforge/dropforge/dropforge/database/models"
	"github.com/uptrace/bun"
)

// LeaseRepository hands out TTL leases so exactly one service instance runs
// scheduler transitions for a given tick window. A lease renews implicitly
// when the same holder re-acquires before expiry.
type LeaseRepository interface {
	Acquire(ctx context.Context, name, holder string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, name, holder string) error
}

type leaseRepository struct {
	db *bun.DB
}

func NewLeaseRepository(db *bun.DB) LeaseRepository {
	return &leaseRepository{db: db}
}

func (r *leaseRepository) Acquire(ctx context.Context, name, holder string, ttl time.Duration) (bool, error) {
	now := time.Now()
	lease := &models.SchedulerLease{
		Name:      name,
		Holder:    holder,
		ExpiresAt: now.Add(ttl),
	}

	res, err := r.db.NewInsert().
		Model(lease).
		On("CONFLICT (name) DO UPDATE").
		Set("holder = EXCLUDED.holder").
		Set("expires_at = EXCLUDED.expires_at").
		Where("sl.expires_at < ? OR sl.holder = ?", now, holder).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to acquire lease %q: %w", name, err)
	}

	affected, _ := res.RowsAffected()
	return affected > 0, nil
}

func (r *leaseRepository) Release(ctx context.Context, name, holder string) error {
	_, err := r.db.NewDelete().
		Model((*models.SchedulerLease)(nil)).
		Where("name = ? AND holder = ?", name, holder).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to release lease %q: %w", name, err)
	}
	return nil
}
