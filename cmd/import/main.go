package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/dropforge/dropforge/dropforge"
	"github.com/dropforge/dropforge/dropforge/database"
	"github.com/dropforge/dropforge/dropforge/database/repositories"
	"github.com/dropforge/dropforge/dropforge/logger"
	"github.com/dropforge/dropforge/dropforge/migration"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config")
	mongoURI := flag.String("mongo-uri", "mongodb://localhost:27017", "legacy MongoDB connection URI")
	mongoDatabase := flag.String("mongo-db", "legacy_catalog", "legacy MongoDB database name")
	collection := flag.String("collection", "catalog_items", "legacy catalog collection")
	batchSize := flag.Int("batch-size", 500, "insert batch size")
	flag.Parse()

	slog.SetDefault(slog.New(logger.NewHandler(slog.LevelInfo)))

	cfg, err := dropforge.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		slog.Error("Failed to connect to Postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize schema", slog.Any("error", err))
		os.Exit(1)
	}

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(*mongoURI))
	if err != nil {
		slog.Error("Failed to connect to legacy MongoDB", slog.Any("error", err))
		os.Exit(1)
	}
	defer mongoClient.Disconnect(ctx)

	importer := migration.NewImporter(
		repositories.NewItemRepository(db.BunDB()),
		mongoClient.Database(*mongoDatabase),
	)
	importer.SetCollectionName(*collection)
	importer.SetBatchSize(*batchSize)

	if err := importer.Run(ctx); err != nil {
		slog.Error("Legacy catalog import failed", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("Legacy catalog import finished")
}
