package repository

import (
	"context"
	"fmt"
	"time"

	"factorlab/internal/db/models/postgres/public/model"
	"factorlab/internal/db/models/postgres/public/table"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InvestmentHoldingsRepository interface {
	AddMany(ctx context.Context, tx qrm.Executable, holdings []model.InvestmentHoldings) error
	List(ctx context.Context, tx qrm.Queryable, investmentIDs []uuid.UUID) ([]HoldingWithTicker, error)
}

type HoldingWithTicker struct {
	model.InvestmentHoldings
	model.Ticker
}

type investmentHoldingsRepositoryHandler struct{}

func NewInvestmentHoldingsRepository() InvestmentHoldingsRepository {
	return investmentHoldingsRepositoryHandler{}
}

func (h investmentHoldingsRepositoryHandler) AddMany(ctx context.Context, tx qrm.Executable, holdings []model.InvestmentHoldings) error {
	if len(holdings) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range holdings {
		if holdings[i].Quantity.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("failed to insert investment holding: quantity must be > 0, got %s", holdings[i].Quantity.String())
		}
		holdings[i].CreatedAt = now
	}

	query := table.InvestmentHoldings.
		INSERT(
			table.InvestmentHoldings.MutableColumns,
		).
		MODELS(holdings)

	_, err := query.ExecContext(ctx, tx)
	if err != nil {
		return fmt.Errorf("failed to insert %d investment holdings: %w", len(holdings), err)
	}

	return nil
}

func (h investmentHoldingsRepositoryHandler) List(ctx context.Context, tx qrm.Queryable, investmentIDs []uuid.UUID) ([]HoldingWithTicker, error) {
	if len(investmentIDs) == 0 {
		return []HoldingWithTicker{}, nil
	}
	ids := make([]postgres.Expression, 0, len(investmentIDs))
	for _, id := range investmentIDs {
		ids = append(ids, postgres.UUID(id))
	}

	query := postgres.SELECT(
		table.InvestmentHoldings.AllColumns,
		table.Ticker.AllColumns,
	).FROM(
		table.InvestmentHoldings.INNER_JOIN(
			table.Ticker,
			table.Ticker.TickerID.EQ(table.InvestmentHoldings.TickerID),
		),
	).WHERE(
		table.InvestmentHoldings.InvestmentID.IN(ids...),
	).ORDER_BY(
		table.InvestmentHoldings.InvestmentID.ASC(),
		table.Ticker.Symbol.ASC(),
	)

	out := []HoldingWithTicker{}
	err := query.QueryContext(ctx, tx, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to list investment holdings: %w", err)
	}

	return out, nil
}
