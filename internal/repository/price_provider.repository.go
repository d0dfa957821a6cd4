package repository

import (
	"context"
	"factorlab/internal/db/models/postgres/public/model"
	"factorlab/internal/domain"
	"fmt"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
)

// PriceProviderRepository fetches daily adjusted closes from the Yahoo
// chart API.
type PriceProviderRepository interface {
	GetDailyPrices(ctx context.Context, symbol string, start, end time.Time) ([]model.AdjustedPrice, error)
}

type yahooPriceProviderHandler struct{}

func NewPriceProviderRepository() PriceProviderRepository {
	return yahooPriceProviderHandler{}
}

func (h yahooPriceProviderHandler) GetDailyPrices(ctx context.Context, symbol string, start, end time.Time) ([]model.AdjustedPrice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	params := &chart.Params{
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Symbol:   symbol,
		Interval: datetime.OneDay,
	}
	iter := chart.Get(params)

	models := []model.AdjustedPrice{}
	for iter.Next() {
		bar := iter.Bar()
		if bar.AdjClose.IsZero() {
			continue
		}
		models = append(models, model.AdjustedPrice{
			Symbol: symbol,
			Date:   domain.Day(time.Unix(int64(bar.Timestamp), 0).UTC()),
			Price:  bar.AdjClose,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to get prices for %s: %w", symbol, err)
	}

	return models, nil
}
