package main

import (
	"factorlab/internal/logger"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	universeFile        string
	universeName        string
	universeDisplayName string
)

var seedUniverseCmd = &cobra.Command{
	Use:   "seed-universe",
	Short: "Create an asset universe from a symbol,name csv",
	RunE: func(c *cobra.Command, args []string) error {
		f, err := os.Open(universeFile)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", universeFile, err)
		}
		defer f.Close()

		deps, err := loadDependencies()
		if err != nil {
			return err
		}
		defer deps.Close()

		n, err := deps.AssetUniverseService.SeedFromCsv(c.Context(), universeName, universeDisplayName, f)
		if err != nil {
			return err
		}
		logger.FromContext(c.Context()).Infof("universe %s has %d assets from %s", universeName, n, universeFile)
		return nil
	},
}

func init() {
	seedUniverseCmd.Flags().StringVar(&universeFile, "file", "", "csv with symbol,name columns (required)")
	seedUniverseCmd.Flags().StringVar(&universeName, "name", "", "universe code, e.g. SPY_TOP_80 (required)")
	seedUniverseCmd.Flags().StringVar(&universeDisplayName, "display-name", "", "name shown in the ui")
	seedUniverseCmd.MarkFlagRequired("file")
	seedUniverseCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(seedUniverseCmd)
}
