package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/mlpipe/internal/text"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Inspect the statement classifier lookup tables",
}

var tablesVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that the lookup tables carry their required fallback entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		tables, err := text.LoadTables(cfg.Tables.CategoryPath, cfg.Tables.CategoryNumPath, cfg.Tables.SourceNumPath)
		if err != nil {
			return err
		}
		if err := tables.Verify(); err != nil {
			return err
		}

		zap.L().Info("lookup tables verified",
			zap.String("category_path", cfg.Tables.CategoryPath),
			zap.String("category_num_path", cfg.Tables.CategoryNumPath),
			zap.String("source_num_path", cfg.Tables.SourceNumPath),
		)
		return nil
	},
}

func init() {
	tablesCmd.AddCommand(tablesVerifyCmd)
	rootCmd.AddCommand(tablesCmd)
}
