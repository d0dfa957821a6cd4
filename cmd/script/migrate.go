package main

import (
	"factorlab/internal/db"
	"factorlab/internal/logger"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create any missing tables",
	RunE: func(c *cobra.Command, args []string) error {
		deps, err := loadDependencies()
		if err != nil {
			return err
		}
		defer deps.Close()

		if err := db.Migrate(c.Context(), deps.Db); err != nil {
			return err
		}
		logger.FromContext(c.Context()).Info("schema up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
