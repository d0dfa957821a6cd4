package repository

import (
	"context"
	"fmt"

	"github.com/go-jet/jet/v2/qrm"
)

type UsageStats struct {
	UniqueUsers      int `json:"uniqueUsers"`
	BacktestsRun     int `json:"backtests"`
	StrategiesTested int `json:"strategies"`
}

type StatsRepository interface {
	GetUsageStats(ctx context.Context, db qrm.Queryable) (*UsageStats, error)
}

type statsRepositoryHandler struct{}

func NewStatsRepository() StatsRepository {
	return statsRepositoryHandler{}
}

// anonymous visitors are identified by their cookie id, signed-in
// users by their account
const usageStatsQuery = `select
	(select count(distinct coalesce(user_account_id, user_id)) from user_strategy) as "distinct_users",
	(select count(*) from user_strategy) as "num_backtests_run",
	(select count(distinct factor_expression_hash) from user_strategy) as "distinct_strategies";`

func (h statsRepositoryHandler) GetUsageStats(ctx context.Context, db qrm.Queryable) (*UsageStats, error) {
	rows, err := db.QueryContext(ctx, usageStatsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to get usage stats: %w", err)
	}
	defer rows.Close()

	out := UsageStats{}
	if !rows.Next() {
		return &out, rows.Err()
	}
	err = rows.Scan(&out.UniqueUsers, &out.BacktestsRun, &out.StrategiesTested)
	if err != nil {
		return nil, fmt.Errorf("failed to scan usage stats: %w", err)
	}

	return &out, nil
}
