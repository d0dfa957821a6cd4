package repository

import (
	"context"
	"factorlab/internal/db/models/postgres/public/model"
	"factorlab/internal/db/models/postgres/public/table"
	"fmt"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

type TickerRepository interface {
	List(ctx context.Context, tx qrm.Queryable) ([]model.Ticker, error)
	GetBySymbols(ctx context.Context, tx qrm.Queryable, symbols []string) ([]model.Ticker, error)
	GetOrCreate(ctx context.Context, tx qrm.Queryable, t model.Ticker) (*model.Ticker, error)
}

type tickerRepositoryHandler struct{}

func NewTickerRepository() TickerRepository {
	return tickerRepositoryHandler{}
}

func (h tickerRepositoryHandler) List(ctx context.Context, tx qrm.Queryable) ([]model.Ticker, error) {
	query := table.Ticker.
		SELECT(table.Ticker.AllColumns).
		ORDER_BY(table.Ticker.Symbol.ASC())

	result := []model.Ticker{}
	err := query.QueryContext(ctx, tx, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickers: %w", err)
	}

	return result, nil
}

func (h tickerRepositoryHandler) GetBySymbols(ctx context.Context, tx qrm.Queryable, symbols []string) ([]model.Ticker, error) {
	if len(symbols) == 0 {
		return []model.Ticker{}, nil
	}
	symbolExpressions := make([]postgres.Expression, 0, len(symbols))
	for _, s := range symbols {
		symbolExpressions = append(symbolExpressions, postgres.String(s))
	}

	query := table.Ticker.
		SELECT(table.Ticker.AllColumns).
		WHERE(table.Ticker.Symbol.IN(symbolExpressions...)).
		ORDER_BY(table.Ticker.Symbol.ASC())

	result := []model.Ticker{}
	err := query.QueryContext(ctx, tx, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to get tickers by symbol: %w", err)
	}

	return result, nil
}

// GetOrCreate inserts the ticker, refreshing its name when the symbol
// already exists.
func (h tickerRepositoryHandler) GetOrCreate(ctx context.Context, tx qrm.Queryable, t model.Ticker) (*model.Ticker, error) {
	query := table.Ticker.
		INSERT(table.Ticker.MutableColumns).
		MODEL(t).
		ON_CONFLICT(table.Ticker.Symbol).DO_UPDATE(
		postgres.SET(
			table.Ticker.Name.SET(table.Ticker.EXCLUDED.Name),
		),
	).RETURNING(table.Ticker.AllColumns)

	out := model.Ticker{}
	err := query.QueryContext(ctx, tx, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to insert ticker %s: %w", t.Symbol, err)
	}

	return &out, nil
}
