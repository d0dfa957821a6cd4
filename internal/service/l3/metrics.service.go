package l3_service

import (
	"factorlab/internal/domain"
	l1_service "factorlab/internal/service/l1"
	"fmt"
	"math"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

// CalculateMetrics marks the backtest's holdings to market on every trading
// day and summarizes the daily returns. It assumes the samples cover a
// reasonable range, a year or more; shorter runs leave the annualized
// fields empty rather than extrapolating.
func CalculateMetrics(samples []BacktestSample, tradingDays []time.Time, prices *l1_service.PriceCache) (*domain.StrategyRunStats, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("cannot calculate metrics without backtest samples")
	}

	returns, endValue, endDate, err := calculateReturns(samples, tradingDays, prices)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate returns: %w", err)
	}

	startValue := samples[0].Snapshot.Value
	if startValue <= 0 {
		return nil, fmt.Errorf("backtest started with value %f", startValue)
	}
	out := &domain.StrategyRunStats{
		TotalReturn: endValue/startValue - 1,
	}

	numYears := endDate.Sub(samples[0].Snapshot.Date).Hours() / (365 * 24)
	if numYears > 0 {
		annualizedReturn := math.Pow(endValue/startValue, 1/numYears) - 1
		out.AnnualizedReturn = &annualizedReturn
	}

	if len(returns) >= 2 {
		stdev, err := stats.StandardDeviationSample(returns)
		if err != nil {
			return nil, err
		}
		annualizedStdev := stdev * math.Sqrt(252)
		out.AnnualizedStdev = &annualizedStdev

		if out.AnnualizedReturn != nil && annualizedStdev > 0 {
			sharpeRatio := *out.AnnualizedReturn / annualizedStdev
			out.SharpeRatio = &sharpeRatio
		}
	}

	return out, nil
}

// calculateReturns holds each sample's portfolio until the next sample date
// and returns the daily fractional returns, plus the value and date of the
// last day marked.
func calculateReturns(samples []BacktestSample, tradingDays []time.Time, prices *l1_service.PriceCache) ([]float64, float64, time.Time, error) {
	first := samples[0]
	currentPortfolio := first.Portfolio
	lastValue := decimal.NewFromFloat(first.Snapshot.Value)
	lastDate := first.Snapshot.Date

	// a held asset without a close on some day keeps its previous price
	lastPrices := map[string]decimal.Decimal{}
	for symbol, p := range first.Prices {
		lastPrices[symbol] = p
	}

	returns := []float64{}
	nextSample := 1
	for _, t := range tradingDays {
		t = domain.Day(t)
		if !t.After(first.Snapshot.Date) {
			continue
		}
		for nextSample < len(samples) && !t.Before(samples[nextSample].Snapshot.Date) {
			currentPortfolio = samples[nextSample].Portfolio
			for symbol, p := range samples[nextSample].Prices {
				lastPrices[symbol] = p
			}
			nextSample++
		}

		priceMap := map[string]decimal.Decimal{}
		for _, symbol := range currentPortfolio.HeldSymbols() {
			p, err := prices.Get(symbol, t)
			if err == nil {
				lastPrices[symbol] = decimal.NewFromFloat(p)
			}
			price, ok := lastPrices[symbol]
			if !ok {
				return nil, 0, time.Time{}, fmt.Errorf("no price for %s on or before %s", symbol, t.Format(domain.DateLayout))
			}
			priceMap[symbol] = price
		}

		value, err := currentPortfolio.TotalValue(priceMap)
		if err != nil {
			return nil, 0, time.Time{}, fmt.Errorf("failed to calculate portfolio value on %s: %w", t.Format(domain.DateLayout), err)
		}
		if lastValue.IsZero() {
			return nil, 0, time.Time{}, fmt.Errorf("portfolio value reached zero before %s", t.Format(domain.DateLayout))
		}

		returns = append(returns, value.Sub(lastValue).Div(lastValue).InexactFloat64())
		lastValue = value
		lastDate = t
	}

	return returns, lastValue.InexactFloat64(), lastDate, nil
}
