package repository

import (
	"strings"
	"testing"
	"time"

	"factorlab/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestTradingDaysQuery(t *testing.T) {
	sql := tradingDaysQuery(
		domain.NewDate(2020, 1, 1),
		domain.NewDate(2020, 12, 31),
		10,
	).DebugSql()

	require.Contains(t, sql, "'2020-01-01'")
	require.Contains(t, sql, "'2020-12-31'")
	require.Contains(t, sql, "GROUP BY")
	require.Contains(t, sql, "COUNT(*) >= 10")
}

func TestListPricesQuery(t *testing.T) {
	sql := listPricesQuery(
		[]string{"AAPL", "MSFT"},
		domain.NewDate(2020, 1, 1),
		domain.NewDate(2020, 2, 1),
	).DebugSql()

	require.Contains(t, sql, "'AAPL'")
	require.Contains(t, sql, "'MSFT'")
	require.Contains(t, sql, "BETWEEN")
	require.Contains(t, sql, "ORDER BY adjusted_price.symbol ASC, adjusted_price.date ASC")
}

func TestAssetsQuery(t *testing.T) {
	t.Run("named universe joins membership", func(t *testing.T) {
		sql := assetsQuery("SPY_TOP_80").DebugSql()
		require.Contains(t, sql, "asset_universe_ticker")
		require.Contains(t, sql, "'SPY_TOP_80'")
	})

	t.Run("ALL reads every ticker", func(t *testing.T) {
		sql := assetsQuery(AllAssetsUniverse).DebugSql()
		require.NotContains(t, sql, "asset_universe_ticker")
		require.NotContains(t, sql, "'ALL'")
	})
}

func TestListStrategiesQuery(t *testing.T) {
	userID := uuid.MustParse("7b3e4c1f-6a77-4f0e-9a43-1b8a3b2c9d10")
	bookmarked := true

	t.Run("filters", func(t *testing.T) {
		sql := listStrategiesQuery(StrategyListFilter{
			UserAccountID: &userID,
			Bookmarked:    &bookmarked,
		}).DebugSql()

		require.Contains(t, sql, userID.String())
		require.Contains(t, sql, "strategy.bookmarked")
		require.NotContains(t, sql, "strategy.published =")
		require.Contains(t, sql, "strategy.modified_at DESC")
	})

	t.Run("by ids", func(t *testing.T) {
		a := uuid.MustParse("11111111-2222-3333-4444-555555555555")
		b := uuid.MustParse("66666666-7777-8888-9999-000000000000")
		sql := listStrategiesQuery(StrategyListFilter{StrategyIDs: []uuid.UUID{a, b}}).DebugSql()
		require.Contains(t, sql, "strategy.strategy_id IN")
		require.Contains(t, sql, a.String())
		require.Contains(t, sql, b.String())
	})

	t.Run("no filter", func(t *testing.T) {
		sql := listStrategiesQuery(StrategyListFilter{}).DebugSql()
		require.NotContains(t, sql, userID.String())
		require.False(t, strings.Contains(sql, "strategy.bookmarked ="))
	})
}

func TestListInvestmentsQuery(t *testing.T) {
	userID := uuid.MustParse("0d4f1a9e-2b6c-4d3a-8e5f-7a1b2c3d4e5f")

	sql := listInvestmentsQuery(InvestmentListFilter{
		UserAccountIDs: []uuid.UUID{userID},
		ActiveOnly:     true,
	}).DebugSql()
	require.Contains(t, sql, userID.String())
	require.Contains(t, sql, "investment.paused_at IS NULL")
	require.Contains(t, sql, "investment.end_date IS NULL")

	sql = listInvestmentsQuery(InvestmentListFilter{}).DebugSql()
	require.NotContains(t, sql, "IS NULL")
}

func TestFactorScoresQuery(t *testing.T) {
	tickerID := uuid.MustParse("5c2d9a1e-3f4b-4a6c-9d8e-1f2a3b4c5d6e")
	sql := factorScoresQuery(FactorScoreGetManyInput{
		FactorExpressionHash: "abc123",
		TickerIDs:            []uuid.UUID{tickerID},
		Dates:                []time.Time{domain.NewDate(2021, 1, 4)},
	}).DebugSql()

	require.Contains(t, sql, "'abc123'")
	require.Contains(t, sql, tickerID.String())
	require.Contains(t, sql, "'2021-01-04'")
}
