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
)

const (
	TradeSide_Buy  = "BUY"
	TradeSide_Sell = "SELL"

	TradeStatus_Pending   = "PENDING"
	TradeStatus_Completed = "COMPLETED"
)

type InvestmentTradeRepository interface {
	AddMany(ctx context.Context, tx qrm.Executable, trades []model.InvestmentTrade) error
	List(ctx context.Context, tx qrm.Queryable, investmentIDs []uuid.UUID) ([]TradeWithTicker, error)
}

type TradeWithTicker struct {
	model.InvestmentTrade
	model.Ticker
}

type investmentTradeRepositoryHandler struct{}

func NewInvestmentTradeRepository() InvestmentTradeRepository {
	return investmentTradeRepositoryHandler{}
}

func (h investmentTradeRepositoryHandler) AddMany(ctx context.Context, tx qrm.Executable, trades []model.InvestmentTrade) error {
	if len(trades) == 0 {
		return nil
	}

	now := time.Now().UTC()
	for i := range trades {
		trades[i].CreatedAt = now
	}
	query := table.InvestmentTrade.
		INSERT(table.InvestmentTrade.MutableColumns).
		MODELS(trades)

	_, err := query.ExecContext(ctx, tx)
	if err != nil {
		return fmt.Errorf("failed to insert %d investment trades: %w", len(trades), err)
	}

	return nil
}

func (h investmentTradeRepositoryHandler) List(ctx context.Context, tx qrm.Queryable, investmentIDs []uuid.UUID) ([]TradeWithTicker, error) {
	if len(investmentIDs) == 0 {
		return []TradeWithTicker{}, nil
	}
	ids := make([]postgres.Expression, 0, len(investmentIDs))
	for _, id := range investmentIDs {
		ids = append(ids, postgres.UUID(id))
	}

	query := postgres.SELECT(
		table.InvestmentTrade.AllColumns,
		table.Ticker.AllColumns,
	).FROM(
		table.InvestmentTrade.INNER_JOIN(
			table.Ticker,
			table.Ticker.TickerID.EQ(table.InvestmentTrade.TickerID),
		),
	).WHERE(
		table.InvestmentTrade.InvestmentID.IN(ids...),
	).ORDER_BY(
		table.InvestmentTrade.CreatedAt.ASC(),
		table.Ticker.Symbol.ASC(),
	)

	out := []TradeWithTicker{}
	err := query.QueryContext(ctx, tx, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to list investment trades: %w", err)
	}

	return out, nil
}
