package dropforge

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dropforge/dropforge/dropforge/database"
	"github.com/dropforge/dropforge/dropforge/sale/auction"
	"github.com/pelletier/go-toml/v2"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type Config struct {
	Log             LogConfig               `toml:"log"`
	DB              database.DBConfig       `toml:"db"`
	Sale            SaleConfig              `toml:"sale"`
	Mint            MintConfig              `toml:"mint"`
	Notify          NotifyConfig            `toml:"notify"`
	Tiers           []TierSeed              `toml:"tiers"`
	AuctionSchedule []auction.ScheduleEntry `toml:"auction_schedule"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type SaleConfig struct {
	BasePricePerPointCents int64   `toml:"base_price_per_point_cents"`
	TierMultiplierBase     float64 `toml:"tier_multiplier_base"`
	MinPriceCents          int64   `toml:"min_price_cents"`
	MaxPriceCents          int64   `toml:"max_price_cents"`
	TickIntervalSeconds    int     `toml:"tick_interval_seconds"`
	PriceChunkSize         int     `toml:"price_chunk_size"`
}

type MintConfig struct {
	Endpoint string `toml:"endpoint"`
	APIKey   string `toml:"api_key"`
}

type NotifyConfig struct {
	NATSURL       string `toml:"nats_url"`
	SubjectPrefix string `toml:"subject_prefix"`
}

// TierSeed describes a pricing phase for first-start seeding. Quantities are
// advisory inventory counts; duration drives the scheduler's advancement.
type TierSeed struct {
	Phase             int `toml:"phase"`
	QuantityAvailable int `toml:"quantity_available"`
	DurationSeconds   int `toml:"duration_seconds"`
}
