package main

import (
	"context"
	"factorlab/cmd"
	"factorlab/internal/config"
	"factorlab/internal/logger"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "script",
	Short: "factorlab maintenance scripts",
	Long: `Operational commands for factorlab: schema migration, price and
fundamentals ingestion, universe seeding and strategy publishing.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "secrets file path (defaults to the ALPHA_ENV file)")
}

// loadDependencies is called by each command so --help works without a
// database.
func loadDependencies() (*cmd.Dependencies, error) {
	path := cfgFile
	if path == "" {
		path = config.SecretsPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return cmd.InitializeDependencies(cfg)
}

func main() {
	log := logger.New()
	defer log.Sync()

	ctx := logger.NewContext(context.Background(), log)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
