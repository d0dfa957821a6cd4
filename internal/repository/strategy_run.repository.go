package repository

import (
	"context"
	"factorlab/internal/db/models/postgres/public/model"
	"factorlab/internal/db/models/postgres/public/table"
	"fmt"
	"time"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type StrategyRunRepository interface {
	Add(ctx context.Context, tx qrm.Queryable, m model.StrategyRun) (*model.StrategyRun, error)
	// Latest returns the most recent run of each strategy that has one.
	Latest(ctx context.Context, tx qrm.Queryable, strategyIDs []uuid.UUID) (map[uuid.UUID]model.StrategyRun, error)
}

type strategyRunRepositoryHandler struct{}

func NewStrategyRunRepository() StrategyRunRepository {
	return strategyRunRepositoryHandler{}
}

func (h strategyRunRepositoryHandler) Add(ctx context.Context, tx qrm.Queryable, m model.StrategyRun) (*model.StrategyRun, error) {
	m.CreatedAt = time.Now().UTC()
	query := table.StrategyRun.
		INSERT(table.StrategyRun.MutableColumns).
		MODEL(m).
		RETURNING(table.StrategyRun.AllColumns)

	out := model.StrategyRun{}
	err := query.QueryContext(ctx, tx, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to insert strategy run: %w", err)
	}

	return &out, nil
}

const latestRunsQuery = `
SELECT DISTINCT ON (strategy_id)
	strategy_run_id, strategy_id, start_date, end_date,
	annualized_return, annualized_stdev, sharpe_ratio, total_return, created_at
FROM strategy_run
WHERE strategy_id = ANY($1)
ORDER BY strategy_id, created_at DESC`

func (h strategyRunRepositoryHandler) Latest(ctx context.Context, tx qrm.Queryable, strategyIDs []uuid.UUID) (map[uuid.UUID]model.StrategyRun, error) {
	out := map[uuid.UUID]model.StrategyRun{}
	if len(strategyIDs) == 0 {
		return out, nil
	}
	ids := make([]string, 0, len(strategyIDs))
	for _, id := range strategyIDs {
		ids = append(ids, id.String())
	}

	rows, err := tx.QueryContext(ctx, latestRunsQuery, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to query latest strategy runs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		r := model.StrategyRun{}
		err := rows.Scan(
			&r.StrategyRunID,
			&r.StrategyID,
			&r.StartDate,
			&r.EndDate,
			&r.AnnualizedReturn,
			&r.AnnualizedStdev,
			&r.SharpeRatio,
			&r.TotalReturn,
			&r.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan strategy run: %w", err)
		}
		out[r.StrategyID] = r
	}

	return out, rows.Err()
}
