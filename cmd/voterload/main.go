package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/homeboardhq/homeboard-backend/internal/voters"
	"github.com/homeboardhq/homeboard-backend/pkg/config"
	"github.com/homeboardhq/homeboard-backend/pkg/db"
	"github.com/homeboardhq/homeboard-backend/pkg/logger"
	"github.com/homeboardhq/homeboard-backend/pkg/metrics"
)

// voterload bulk-loads a voter registration CSV export into Postgres.
// Malformed rows are logged and skipped; the load never aborts mid-file.
func main() {
	logg := logger.New(logger.Options{ServiceName: "voterload"})

	_ = godotenv.Load()

	file := flag.String("file", "", "path to the voter CSV export (defaults to HOMEBOARD_VOTER_CSV_PATH)")
	batchSize := flag.Int("batch-size", 0, "insert batch size (defaults to HOMEBOARD_VOTER_LOAD_BATCH_SIZE)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "voterload",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	path := *file
	if path == "" {
		path = cfg.VoterLoad.FilePath
	}
	batch := *batchSize
	if batch <= 0 {
		batch = cfg.VoterLoad.BatchSize
	}

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	registry := prometheus.NewRegistry()
	loader, err := voters.NewLoader(voters.NewRepository(dbClient.DB()), logg, metrics.NewLoaderMetrics(registry), batch)
	if err != nil {
		logg.Error(context.Background(), "failed to create loader", err)
		os.Exit(1)
	}

	ctx := logg.WithFields(context.Background(), map[string]any{
		"file":       path,
		"batch_size": batch,
	})
	logg.Info(ctx, "starting voter load")

	report, err := loader.LoadFile(ctx, path)
	if err != nil {
		logg.Error(ctx, "voter load failed", err)
		os.Exit(1)
	}

	ctx = logg.WithFields(ctx, map[string]any{
		"created": report.Created,
		"skipped": report.Skipped,
	})
	logg.Info(ctx, "voter load complete")
}
