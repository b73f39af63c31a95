package cmd

import (
	"fmt"

	"animeapi/core/config"
	"animeapi/core/logger"
	"animeapi/feature/generator"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// validateCmd checks the emitted artifacts for structural violations.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the generated artifacts",
	Long: `Checks the exported dataset for structural violations: missing
fields, a broken Shikimori mirror, inconsistent trakt triples, missing
season-one aliases, or counts that disagree with the array files.`,
	RunE: runValidate,
}

func init() {
	RootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer logg.Sync()

	v := generator.NewValidator(cfg.Generator.DataDir, cfg.Generator.APIDir, logg)
	violations, err := v.Validate()
	if err != nil {
		return err
	}
	if len(violations) > 0 {
		return fmt.Errorf("%d artifact violations found", len(violations))
	}
	logg.Info("Artifacts are consistent", zap.String("data_dir", cfg.Generator.DataDir))
	return nil
}
