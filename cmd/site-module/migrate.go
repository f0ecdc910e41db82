package main

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply record store migrations and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		if err := migrateBackend(cfg, logger); err != nil {
			return err
		}
		logger.Info("Миграции применены")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
