package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"animeapi/core/config"
	"animeapi/core/database"
	"animeapi/core/logger"
	"animeapi/core/storage"
	"animeapi/feature/generator"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// generateCmd runs the full dataset pipeline once.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the dataset generator pipeline",
	Long: `Fetches every upstream source, links them into the anchor set and
writes the artifacts (animeapi.json, animeapi.tsv, per-platform files,
status.json). Scraped sources fall back to the raw cache when the
upstream is unreachable.`,
	RunE: runGenerate,
}

func init() {
	RootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer logg.Sync()
	zap.ReplaceGlobals(logg)

	// The run-history database is optional: a missing sqlite file only
	// costs the history row.
	var db *gorm.DB
	if conn, err := database.Connect(cfg.Database); err != nil {
		logg.Warn("Run-history database unavailable", zap.Error(err))
	} else {
		db = conn
	}

	var store storage.Client
	if cfg.Generator.Publish {
		store, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("create storage client: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return generator.NewService(cfg, logg, db, store).Run(ctx)
}
