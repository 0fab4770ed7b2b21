package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/tanmayd/user_platform_app/internal/adapters/database/pgsql"
	"github.com/tanmayd/user_platform_app/internal/etl"
	"github.com/tanmayd/user_platform_app/internal/etl/apod"
	"github.com/tanmayd/user_platform_app/internal/platform/config"
	"github.com/tanmayd/user_platform_app/pkg/database"
)

// apod_etl runs one unit of the daily ETL chain and exits. Scheduling stays
// external (cron or an orchestrator); a non-zero exit signals task failure to
// whatever triggered the run.
func main() {
	date := flag.String("date", time.Now().Format("2006-01-02"), "APOD date to fetch (YYYY-MM-DD)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()

	logger.Info("Running database migrations...")
	applied, err := database.RunMigrations(cfg.DatabaseURL, "file://migrations")
	if err != nil {
		logger.Error("Migrations failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if applied {
		logger.Info("Database migrations applied successfully.")
	} else {
		logger.Info("No new migrations to apply.")
	}

	csvPath := filepath.Join(cfg.DataRepoDir, cfg.APODCSVPath)
	pipeline := etl.NewPipeline(
		apod.NewClient(cfg.APODAPIURL, cfg.APODAPIKey),
		pgsql.NewAPODRepository(dbPool),
		etl.NewCSVSink(csvPath),
		etl.NewVersioner(cfg.DataRepoDir, cfg.APODCSVPath, cfg.ETLCommandTimeout, logger),
		etl.NewRunLock(csvPath+".lock"),
		logger,
	)

	if err := pipeline.Run(ctx, *date); err != nil {
		logger.Error("Pipeline run failed", slog.String("date", *date), slog.String("error", err.Error()))
		os.Exit(1)
	}
}
