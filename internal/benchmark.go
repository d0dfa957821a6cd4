package internal

import (
	"context"
	"database/sql"
	"factorlab/internal/domain"
	"factorlab/internal/repository"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

type BenchmarkHandler struct {
	Db              *sql.DB
	PriceRepository repository.AdjustedPriceRepository
}

// GetIntraPeriodChange gets historic prices for an asset and converts them
// to % change from the first available close.
func (h BenchmarkHandler) GetIntraPeriodChange(
	ctx context.Context,
	symbol string,
	start,
	end time.Time,
	granularity domain.RebalanceInterval,
) (map[time.Time]float64, error) {
	if end.Before(start) {
		return nil, domain.NewValidationError("end date cannot be before start date")
	}
	prices, err := h.PriceRepository.List(ctx, h.Db, []string{symbol}, start, end)
	if err != nil {
		return nil, err
	}
	if len(prices) == 0 {
		return nil, fmt.Errorf("no prices found for symbol %s between %s and %s: %w", symbol, start.Format(domain.DateLayout), end.Format(domain.DateLayout), domain.ErrNotFound)
	}
	if prices[0].Price == 0 {
		return nil, fmt.Errorf("first price of %s is zero", symbol)
	}
	return intraPeriodChangeIterator(prices, end, granularity), nil
}

// intraPeriodChangeIterator samples the first close on or after each step
// from the first close. prices must not be empty.
func intraPeriodChangeIterator(
	prices []domain.AssetPrice,
	end time.Time,
	granularity domain.RebalanceInterval,
) map[time.Time]float64 {
	sort.Slice(prices, func(i, j int) bool {
		return prices[i].Date.Before(prices[j].Date)
	})

	first := domain.Day(prices[0].Date)
	base := decimal.NewFromFloat(prices[0].Price)
	out := map[time.Time]float64{
		first: 0,
	}

	step := 1
	nextTarget := granularity.Offset(first, step)
	for _, p := range prices[1:] {
		date := domain.Day(p.Date)
		if date.After(domain.Day(end)) {
			break
		}
		if date.Before(nextTarget) {
			continue
		}
		out[date] = decimal.NewFromInt(100).Mul(decimal.NewFromFloat(p.Price).Sub(base)).Div(base).InexactFloat64()
		for !granularity.Offset(first, step).After(date) {
			step++
		}
		nextTarget = granularity.Offset(first, step)
	}

	return out
}
