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

type AuctionRepository interface {
	Create(ctx context.Context, auction *models.Auction) error
	GetByID(ctx context.Context, id int64) (*models.Auction, error)
	GetByCode(ctx context.Context, code string) (*models.Auction, error)
	GetActive(ctx context.Context) ([]*models.Auction, error)
	GetActiveEndingBefore(ctx context.Context, t time.Time) ([]*models.Auction, error)
	GetExpiredActive(ctx context.Context, now time.Time) ([]*models.Auction, error)
	HasOpenAuctionForItem(ctx context.Context, itemID int64) (bool, error)
	RecordBid(ctx context.Context, bid *models.AuctionBid, expectedBidCents int64) error
	GetLatestBid(ctx context.Context, auctionID int64) (*models.AuctionBid, error)
	Extend(ctx context.Context, auctionID int64, newEnd time.Time, triggeringBidID int64) error
	FinalizeWinner(ctx context.Context, auctionID int64, sale *models.SaleRecord) error
	EndNoBids(ctx context.Context, auctionID int64) error
}

type auctionRepository struct {
	db *bun.DB
}

func NewAuctionRepository(db *bun.DB) AuctionRepository {
	return &auctionRepository{db: db}
}

// Create inserts the auction and flips its item from auction_reserved to
// auctioned in one transaction, so an item can never sit in both the
// fixed-price sale and a live auction.
func (r *auctionRepository) Create(ctx context.Context, auction *models.Auction) error {
	auction.CreatedAt = time.Now()
	auction.UpdatedAt = time.Now()

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.NewUpdate().
		Model((*models.Item)(nil)).
		Set("status = ?", models.ItemStatusAuctioned).
		Set("updated_at = ?", time.Now()).
		Where("id = ? AND status = ?", auction.ItemID, models.ItemStatusAuctionReserved).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to flip item to auctioned: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return salerrors.ErrItemUnavailable
	}

	if _, err := tx.NewInsert().Model(auction).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create auction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit auction creation: %w", err)
	}
	return nil
}

func (r *auctionRepository) GetByID(ctx context.Context, id int64) (*models.Auction, error) {
	auction := new(models.Auction)
	err := r.db.NewSelect().
		Model(auction).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, salerrors.ErrAuctionNotFound
		}
		return nil, fmt.Errorf("failed to get auction: %w", err)
	}
	return auction, nil
}

func (r *auctionRepository) GetByCode(ctx context.Context, code string) (*models.Auction, error) {
	auction := new(models.Auction)
	err := r.db.NewSelect().
		Model(auction).
		Where("code = ?", code).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, salerrors.ErrAuctionNotFound
		}
		return nil, fmt.Errorf("failed to get auction by code: %w", err)
	}
	return auction, nil
}

func (r *auctionRepository) GetActive(ctx context.Context) ([]*models.Auction, error) {
	var auctions []*models.Auction
	err := r.db.NewSelect().
		Model(&auctions).
		Where("status = ?", models.AuctionStatusActive).
		Order("end_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get active auctions: %w", err)
	}
	return auctions, nil
}

func (r *auctionRepository) GetActiveEndingBefore(ctx context.Context, t time.Time) ([]*models.Auction, error) {
	var auctions []*models.Auction
	err := r.db.NewSelect().
		Model(&auctions).
		Where("status = ?", models.AuctionStatusActive).
		Where("end_time <= ?", t).
		Order("end_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get auctions ending before %s: %w", t, err)
	}
	return auctions, nil
}

func (r *auctionRepository) GetExpiredActive(ctx context.Context, now time.Time) ([]*models.Auction, error) {
	var auctions []*models.Auction
	err := r.db.NewSelect().
		Model(&auctions).
		Where("status = ?", models.AuctionStatusActive).
		Where("end_time < ?", now).
		Order("end_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get expired auctions: %w", err)
	}
	return auctions, nil
}

func (r *auctionRepository) HasOpenAuctionForItem(ctx context.Context, itemID int64) (bool, error) {
	count, err := r.db.NewSelect().
		Model((*models.Auction)(nil)).
		Where("item_id = ?", itemID).
		Where("status IN (?)", bun.In([]models.AuctionStatus{
			models.AuctionStatusPending,
			models.AuctionStatusActive,
		})).
		Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check open auctions for item: %w", err)
	}
	return count > 0, nil
}

// RecordBid appends the bid and advances the auction head in one serializable
// transaction. The update is a compare-and-swap against the bid amount the
// caller validated with; a stale expectation means a concurrent bid won the
// race and the caller gets ErrBidConflict instead of silently overwriting a
// higher bid.
func (r *auctionRepository) RecordBid(ctx context.Context, bid *models.AuctionBid, expectedBidCents int64) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	bid.CreatedAt = time.Now()
	if _, err := tx.NewInsert().Model(bid).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create bid: %w", err)
	}

	res, err := tx.NewUpdate().
		Model((*models.Auction)(nil)).
		Set("current_bid_cents = ?", bid.AmountCents).
		Set("top_bidder_id = ?", bid.BidderID).
		Set("last_bid_time = ?", bid.Timestamp).
		Set("bid_count = bid_count + 1").
		Set("updated_at = ?", time.Now()).
		Where("id = ?", bid.AuctionID).
		Where("status = ?", models.AuctionStatusActive).
		Where("current_bid_cents = ?", expectedBidCents).
		Where("end_time > ?", bid.Timestamp).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update auction: %w", err)
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return salerrors.ErrBidConflict
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit bid transaction: %w", err)
	}
	return nil
}

func (r *auctionRepository) GetLatestBid(ctx context.Context, auctionID int64) (*models.AuctionBid, error) {
	bid := new(models.AuctionBid)
	err := r.db.NewSelect().
		Model(bid).
		Where("auction_id = ?", auctionID).
		Order("id DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, salerrors.ErrNoBids
		}
		return nil, fmt.Errorf("failed to get latest bid: %w", err)
	}
	return bid, nil
}

// Extend pushes the end time out and records which bid triggered it. The
// guard on last_extended_bid_id makes repeated sweeps for the same bid
// no-ops.
func (r *auctionRepository) Extend(ctx context.Context, auctionID int64, newEnd time.Time, triggeringBidID int64) error {
	res, err := r.db.NewUpdate().
		Model((*models.Auction)(nil)).
		Set("end_time = ?", newEnd).
		Set("last_extended_bid_id = ?", triggeringBidID).
		Set("extension_count = extension_count + 1").
		Set("updated_at = ?", time.Now()).
		Where("id = ?", auctionID).
		Where("status = ?", models.AuctionStatusActive).
		Where("last_extended_bid_id < ?", triggeringBidID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to extend auction: %w", err)
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return salerrors.ErrBidConflict
	}
	return nil
}

// FinalizeWinner settles a won auction: status flip, item ownership, and the
// sale-history record commit together. The status guard makes a second call
// surface ErrAlreadyFinalized instead of a duplicate sale.
func (r *auctionRepository) FinalizeWinner(ctx context.Context, auctionID int64, sale *models.SaleRecord) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.NewUpdate().
		Model((*models.Auction)(nil)).
		Set("status = ?", models.AuctionStatusFinalized).
		Set("updated_at = ?", time.Now()).
		Where("id = ? AND status = ?", auctionID, models.AuctionStatusActive).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to finalize auction: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return salerrors.ErrAlreadyFinalized
	}

	res, err = tx.NewUpdate().
		Model((*models.Item)(nil)).
		Set("status = ?", models.ItemStatusSold).
		Set("owner_id = ?", sale.BuyerID).
		Set("updated_at = ?", time.Now()).
		Where("id = ? AND status = ?", sale.ItemID, models.ItemStatusAuctioned).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to transfer item to winner: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("item %d was not in auctioned status", sale.ItemID)
	}

	sale.CreatedAt = time.Now()
	if _, err := tx.NewInsert().Model(sale).Exec(ctx); err != nil {
		return fmt.Errorf("failed to record sale: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit auction finalization: %w", err)
	}
	return nil
}

// EndNoBids settles an auction that attracted no bids and returns its item to
// the fixed-price catalog.
func (r *auctionRepository) EndNoBids(ctx context.Context, auctionID int64) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	auction := new(models.Auction)
	err = tx.NewSelect().
		Model(auction).
		Where("id = ?", auctionID).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return salerrors.ErrAuctionNotFound
		}
		return fmt.Errorf("failed to get auction for update: %w", err)
	}

	if auction.Status != models.AuctionStatusActive {
		return salerrors.ErrAlreadyFinalized
	}

	_, err = tx.NewUpdate().
		Model((*models.Auction)(nil)).
		Set("status = ?", models.AuctionStatusEndedNoBids).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", auctionID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to end auction: %w", err)
	}

	_, err = tx.NewUpdate().
		Model((*models.Item)(nil)).
		Set("status = ?", models.ItemStatusAvailable).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", auction.ItemID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to return item to catalog: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit no-bid completion: %w", err)
	}
	return nil
}
