package dropforge

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dropforge/dropforge/dropforge/database"
	"github.com/dropforge/dropforge/dropforge/database/models"
	"github.com/dropforge/dropforge/dropforge/database/repositories"
	"github.com/dropforge/dropforge/dropforge/sale"
	"github.com/dropforge/dropforge/dropforge/sale/auction"
	"github.com/dropforge/dropforge/dropforge/sale/mint"
	"github.com/dropforge/dropforge/dropforge/sale/notify"
	"github.com/dropforge/dropforge/dropforge/sale/pricing"
	"github.com/dropforge/dropforge/dropforge/sale/purchase"
)

func New(cfg Config, version string, commit string) *App {
	return &App{
		Cfg:     cfg,
		Version: version,
		Commit:  commit,
	}
}

// App wires the sale engine together: database, repositories, domain
// services, and the scheduler.
type App struct {
	Cfg     Config
	Version string
	Commit  string

	DB                *database.DB
	ItemRepository    repositories.ItemRepository
	TierRepository    repositories.TierRepository
	AuctionRepository repositories.AuctionRepository
	SaleRepository    repositories.SaleRepository
	LeaseRepository   repositories.LeaseRepository

	Calculator       *pricing.Calculator
	TierScheduler    *pricing.TierScheduler
	AuctionManager   *auction.Manager
	Finalizer        *auction.Finalizer
	Deployer         *auction.Deployer
	ExtensionSweeper *auction.ExtensionSweeper
	PurchaseService  *purchase.Service
	Scheduler        *sale.Scheduler

	notifier interface{ Close() }
}

// Setup connects to the database, initializes schema and seed data, and
// builds every service. It does not start the scheduler; the caller decides
// when ticking begins.
func (a *App) Setup(ctx context.Context) error {
	db, err := database.New(ctx, a.Cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	a.DB = db

	if err := db.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	if err := db.InitializeSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	if err := db.InitializeTierData(ctx, a.tierSeeds()); err != nil {
		return fmt.Errorf("failed to seed tiers: %w", err)
	}

	bunDB := db.BunDB()
	a.ItemRepository = repositories.NewItemRepository(bunDB)
	a.TierRepository = repositories.NewTierRepository(bunDB)
	a.AuctionRepository = repositories.NewAuctionRepository(bunDB)
	a.SaleRepository = repositories.NewSaleRepository(bunDB)
	a.LeaseRepository = repositories.NewLeaseRepository(bunDB)

	a.Calculator = pricing.NewCalculator(pricing.Config{
		BasePricePerPointCents: a.Cfg.Sale.BasePricePerPointCents,
		MultiplierBase:         a.Cfg.Sale.TierMultiplierBase,
		MinPriceCents:          a.Cfg.Sale.MinPriceCents,
		MaxPriceCents:          a.Cfg.Sale.MaxPriceCents,
	})
	a.TierScheduler = pricing.NewTierScheduler(a.TierRepository, a.ItemRepository, a.Calculator)

	notifier := a.buildNotifier()
	minter := a.buildMinter()

	a.AuctionManager = auction.NewManager(a.AuctionRepository, a.ItemRepository, notifier)
	a.Finalizer = auction.NewFinalizer(a.AuctionRepository, a.ItemRepository, a.SaleRepository, minter, notifier)
	a.ExtensionSweeper = auction.NewExtensionSweeper(a.AuctionRepository)
	a.Deployer = auction.NewDeployer(a.AuctionManager, a.AuctionRepository, a.ItemRepository, a.TierRepository, a.Cfg.AuctionSchedule)
	a.PurchaseService = purchase.NewService(a.ItemRepository, a.TierRepository, a.SaleRepository, minter)

	interval := time.Duration(a.Cfg.Sale.TickIntervalSeconds) * time.Second
	a.Scheduler = sale.NewScheduler(
		a.LeaseRepository,
		a.TierScheduler,
		a.Deployer,
		a.Finalizer,
		a.ExtensionSweeper,
		interval,
	)

	return nil
}

func (a *App) buildNotifier() notify.Notifier {
	if a.Cfg.Notify.NATSURL == "" {
		return notify.NewLogNotifier()
	}

	n, err := notify.NewNATSNotifier(a.Cfg.Notify.NATSURL, a.Cfg.Notify.SubjectPrefix)
	if err != nil {
		slog.Error("Failed to connect notifier, falling back to log output",
			slog.String("url", a.Cfg.Notify.NATSURL),
			slog.Any("error", err))
		return notify.NewLogNotifier()
	}
	a.notifier = n
	return n
}

func (a *App) buildMinter() mint.Minter {
	if a.Cfg.Mint.Endpoint == "" {
		return mint.NewLogMinter()
	}
	return mint.NewHTTPMinter(a.Cfg.Mint.Endpoint, a.Cfg.Mint.APIKey)
}

func (a *App) tierSeeds() []*models.Tier {
	tiers := make([]*models.Tier, 0, len(a.Cfg.Tiers))
	for _, seed := range a.Cfg.Tiers {
		tiers = append(tiers, &models.Tier{
			Phase:             seed.Phase,
			QuantityAvailable: int64(seed.QuantityAvailable),
			DurationSeconds:   int64(seed.DurationSeconds),
		})
	}
	return tiers
}

func (a *App) Shutdown(ctx context.Context) error {
	var err error
	if a.Scheduler != nil {
		err = a.Scheduler.Shutdown(ctx)
	}
	if a.notifier != nil {
		a.notifier.Close()
	}
	if a.DB != nil {
		a.DB.Close()
	}
	return err
}
