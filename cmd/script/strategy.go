package main

import (
	"encoding/json"
	"factorlab/internal"
	"factorlab/internal/domain"
	"factorlab/internal/logger"
	l3_service "factorlab/internal/service/l3"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var publishStrategyID string

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Backtest a saved strategy and list it publicly",
	RunE: func(c *cobra.Command, args []string) error {
		strategyID, err := uuid.Parse(publishStrategyID)
		if err != nil {
			return fmt.Errorf("invalid strategy id: %w", err)
		}

		deps, err := loadDependencies()
		if err != nil {
			return err
		}
		defer deps.Close()

		stats, err := deps.StrategyService.Publish(c.Context(), strategyID)
		if err != nil {
			return err
		}
		logger.FromContext(c.Context()).Infow("published strategy", "strategyId", strategyID.String(), "totalReturn", stats.TotalReturn)
		return nil
	},
}

var (
	backtestExpression string
	backtestName       string
	backtestStart      string
	backtestEnd        string
	backtestInterval   string
	backtestUniverse   string
	backtestNumSymbols int
	backtestStartCash  float64
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run a factor backtest and print the snapshots as json",
	RunE: func(c *cobra.Command, args []string) error {
		start, err := domain.ParseDate(backtestStart)
		if err != nil {
			return err
		}
		end, err := domain.ParseDate(backtestEnd)
		if err != nil {
			return err
		}
		interval, err := domain.ParseRebalanceInterval(backtestInterval)
		if err != nil {
			return err
		}

		deps, err := loadDependencies()
		if err != nil {
			return err
		}
		defer deps.Close()

		result, err := deps.BacktestService.Backtest(c.Context(), l3_service.BacktestInput{
			FactorExpression:  backtestExpression,
			FactorName:        backtestName,
			BacktestStart:     start,
			BacktestEnd:       end,
			RebalanceInterval: interval,
			AssetUniverse:     backtestUniverse,
			StartCash:         backtestStartCash,
			Mode:              internal.AssetSelectionMode_NumTickers,
			NumSymbols:        backtestNumSymbols,
		})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Snapshots())
	},
}

func init() {
	publishCmd.Flags().StringVar(&publishStrategyID, "strategy-id", "", "strategy to publish (required)")
	publishCmd.MarkFlagRequired("strategy-id")

	backtestCmd.Flags().StringVar(&backtestExpression, "expression", "", "factor expression (required)")
	backtestCmd.Flags().StringVar(&backtestName, "name", "cli", "factor name")
	backtestCmd.Flags().StringVar(&backtestStart, "start", "", "start date YYYY-MM-DD (required)")
	backtestCmd.Flags().StringVar(&backtestEnd, "end", "", "end date YYYY-MM-DD (required)")
	backtestCmd.Flags().StringVar(&backtestInterval, "interval", "monthly", "daily, weekly, monthly or yearly")
	backtestCmd.Flags().StringVar(&backtestUniverse, "universe", "SPY_TOP_80", "asset universe")
	backtestCmd.Flags().IntVar(&backtestNumSymbols, "num-symbols", 10, "assets held per rebalance")
	backtestCmd.Flags().Float64Var(&backtestStartCash, "start-cash", 10000, "starting cash")
	backtestCmd.MarkFlagRequired("expression")
	backtestCmd.MarkFlagRequired("start")
	backtestCmd.MarkFlagRequired("end")

	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(backtestCmd)
}
