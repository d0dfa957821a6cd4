package main

import (
	"factorlab/internal/logger"
	"factorlab/internal/repository"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var fundamentalsUniverse string

var ingestFundamentalsCmd = &cobra.Command{
	Use:   "ingest-fundamentals [symbols...]",
	Short: "Fetch quarterly fundamentals for the given symbols or a whole universe",
	RunE: func(c *cobra.Command, args []string) error {
		ctx := c.Context()
		log := logger.FromContext(ctx)

		deps, err := loadDependencies()
		if err != nil {
			return err
		}
		defer deps.Close()

		symbols := []string{}
		for _, s := range args {
			symbols = append(symbols, strings.ToUpper(s))
		}
		if len(symbols) == 0 {
			tickers, err := deps.AssetUniverseRepository.GetAssets(ctx, deps.Db, fundamentalsUniverse)
			if err != nil {
				return err
			}
			for _, t := range tickers {
				symbols = append(symbols, t.Symbol)
			}
		}

		failed, err := deps.FundamentalsService.IngestFundamentals(ctx, symbols)
		if err != nil {
			return err
		}
		for symbol, err := range failed {
			log.Warnf("failed to ingest fundamentals for %s: %v", symbol, err)
		}
		log.Infow("ingested fundamentals", "symbols", len(symbols), "failed", len(failed))
		if len(failed) > 0 {
			return fmt.Errorf("failed to ingest %d of %d symbols", len(failed), len(symbols))
		}
		return nil
	},
}

func init() {
	ingestFundamentalsCmd.Flags().StringVar(&fundamentalsUniverse, "universe", repository.AllAssetsUniverse, "universe to fetch when no symbols are given")
	rootCmd.AddCommand(ingestFundamentalsCmd)
}
