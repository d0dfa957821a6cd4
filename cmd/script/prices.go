package main

import (
	"factorlab/internal/domain"
	"factorlab/internal/logger"
	"factorlab/internal/repository"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	ingestUniverse string
	ingestStart    string
	seedPricesFile string
)

var ingestPricesCmd = &cobra.Command{
	Use:   "ingest-prices [symbols...]",
	Short: "Fetch daily closes from the price provider",
	Long:  "Fetch daily closes from --start to today for the given symbols, or every asset in --universe when none are given, and upsert them.",
	RunE: func(c *cobra.Command, args []string) error {
		ctx := c.Context()
		log := logger.FromContext(ctx)

		start, err := domain.ParseDate(ingestStart)
		if err != nil {
			return err
		}

		deps, err := loadDependencies()
		if err != nil {
			return err
		}
		defer deps.Close()

		symbols := []string{}
		for _, s := range args {
			if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
				symbols = append(symbols, s)
			}
		}
		if len(symbols) == 0 {
			tickers, err := deps.AssetUniverseRepository.GetAssets(ctx, deps.Db, ingestUniverse)
			if err != nil {
				return err
			}
			for _, t := range tickers {
				symbols = append(symbols, t.Symbol)
			}
		}
		if len(symbols) == 0 {
			return fmt.Errorf("universe %s has no assets", ingestUniverse)
		}

		result, err := deps.PriceService.IngestPrices(ctx, symbols, start)
		if err != nil {
			return err
		}
		log.Infow("ingested prices", "prices", result.NumPrices, "symbols", len(symbols), "failed", len(result.Failed))
		if len(result.Failed) > 0 {
			return fmt.Errorf("failed to ingest %d of %d symbols", len(result.Failed), len(symbols))
		}
		return nil
	},
}

var seedPricesCmd = &cobra.Command{
	Use:   "seed-prices",
	Short: "Load prices from a date,symbol,price csv",
	RunE: func(c *cobra.Command, args []string) error {
		f, err := os.Open(seedPricesFile)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", seedPricesFile, err)
		}
		defer f.Close()

		deps, err := loadDependencies()
		if err != nil {
			return err
		}
		defer deps.Close()

		n, err := deps.PriceService.SeedPricesFromCsv(c.Context(), f)
		if err != nil {
			return err
		}
		logger.FromContext(c.Context()).Infof("seeded %d prices from %s", n, seedPricesFile)
		return nil
	},
}

func init() {
	ingestPricesCmd.Flags().StringVar(&ingestUniverse, "universe", repository.AllAssetsUniverse, "universe to ingest when no symbols are given")
	ingestPricesCmd.Flags().StringVar(&ingestStart, "start", "2010-01-01", "first date to fetch, YYYY-MM-DD")

	seedPricesCmd.Flags().StringVar(&seedPricesFile, "file", "", "csv with date,symbol,price columns (required)")
	seedPricesCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(ingestPricesCmd)
	rootCmd.AddCommand(seedPricesCmd)
}
