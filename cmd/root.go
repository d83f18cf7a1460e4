package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/mlpipe/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "mlpipe",
	Short: "Churn preprocessing and statement classification pipeline",
	Long:  "Preprocesses raw churn CSVs into model-ready splits, evaluates trained classifiers against an AUC gate, and serves statement predictions over HTTP.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
