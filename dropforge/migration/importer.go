package migration

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/dropforge/dropforge/dropforge/database/models"
	"github.com/dropforge/dropforge/dropforge/database/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultBatchSize = 500

// LegacyItem mirrors a catalog document in the legacy Mongo database. The
// five sub-scores were judged by the curation team; the composite score
// drives pricing after import.
type LegacyItem struct {
	Name      string             `bson:"name"`
	SubScores map[string]float64 `bson:"sub_scores"`
	Featured  bool               `bson:"featured"`
}

// subScoreWeights turns the legacy judging dimensions into one composite
// score. Weights sum to 1; unknown dimensions are ignored.
var subScoreWeights = map[string]float64{
	"rarity":     0.30,
	"condition":  0.25,
	"provenance": 0.20,
	"demand":     0.15,
	"aesthetics": 0.10,
}

// Importer copies the legacy Mongo catalog into the Postgres item table.
// Re-running is safe: the unique name constraint skips items already
// imported.
type Importer struct {
	items     repositories.ItemRepository
	mongoDB   *mongo.Database
	collName  string
	batchSize int
}

func NewImporter(items repositories.ItemRepository, mongoDB *mongo.Database) *Importer {
	return &Importer{
		items:     items,
		mongoDB:   mongoDB,
		collName:  "catalog_items",
		batchSize: defaultBatchSize,
	}
}

func (i *Importer) SetBatchSize(size int) {
	if size > 0 {
		i.batchSize = size
	}
}

func (i *Importer) SetCollectionName(name string) {
	if name != "" {
		i.collName = name
	}
}

// Run streams the legacy catalog and inserts items in batches. Featured
// items land as auction_reserved so the calendar can pick them up; everything
// else enters the fixed-price pool.
func (i *Importer) Run(ctx context.Context) error {
	start := time.Now()

	cursor, err := i.mongoDB.Collection(i.collName).Find(ctx, bson.D{}, options.Find().SetBatchSize(int32(i.batchSize)))
	if err != nil {
		return fmt.Errorf("failed to open legacy catalog cursor: %w", err)
	}
	defer cursor.Close(ctx)

	var (
		batch    []*models.Item
		scanned  int
		inserted int
	)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := i.items.BulkCreate(ctx, batch)
		if err != nil {
			return fmt.Errorf("failed to insert item batch: %w", err)
		}
		inserted += n
		batch = batch[:0]
		return nil
	}

	for cursor.Next(ctx) {
		var legacy LegacyItem
		if err := cursor.Decode(&legacy); err != nil {
			slog.Warn("Skipping undecodable legacy document",
				slog.String("type", "db"),
				slog.String("error", err.Error()))
			continue
		}
		scanned++

		item := convertLegacyItem(legacy)
		if item == nil {
			slog.Warn("Skipping legacy item with no usable scores",
				slog.String("type", "db"),
				slog.String("name", legacy.Name))
			continue
		}

		batch = append(batch, item)
		if len(batch) >= i.batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := cursor.Err(); err != nil {
		return fmt.Errorf("legacy catalog cursor failed: %w", err)
	}
	if err := flush(); err != nil {
		return err
	}

	slog.Info("Legacy catalog import complete",
		slog.String("type", "db"),
		slog.Int("scanned", scanned),
		slog.Int("inserted", inserted),
		slog.Duration("took", time.Since(start)))
	return nil
}

// convertLegacyItem maps a legacy document to an item row, or nil when the
// document carries no recognizable sub-scores.
func convertLegacyItem(legacy LegacyItem) *models.Item {
	if legacy.Name == "" {
		return nil
	}

	var weighted, totalWeight float64
	for dim, weight := range subScoreWeights {
		if v, ok := legacy.SubScores[dim]; ok {
			weighted += v * weight
			totalWeight += weight
		}
	}
	if totalWeight == 0 {
		return nil
	}

	status := models.ItemStatusAvailable
	if legacy.Featured {
		status = models.ItemStatusAuctionReserved
	}

	// Sub-scores sit in [0, 100]; the composite is rescaled to [0, 500] so
	// partial documents still land on the same scale.
	return &models.Item{
		Name:      legacy.Name,
		Score:     int(math.Round(weighted / totalWeight * 5)),
		SubScores: legacy.SubScores,
		Status:    status,
	}
}
