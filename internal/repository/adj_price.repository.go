package repository

import (
	"context"
	"factorlab/internal/db/models/postgres/public/model"
	. "factorlab/internal/db/models/postgres/public/table"
	"factorlab/internal/domain"
	"fmt"
	"time"

	. "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type AdjustedPriceRepository interface {
	Add(ctx context.Context, tx qrm.Executable, prices []model.AdjustedPrice) error
	List(ctx context.Context, tx qrm.Queryable, symbols []string, start, end time.Time) ([]domain.AssetPrice, error)
	LatestPrices(ctx context.Context, tx qrm.Queryable, symbols []string) (map[string]LatestPrice, error)
	ListTradingDays(ctx context.Context, tx qrm.Queryable, start, end time.Time, minSymbols int) ([]time.Time, error)
}

type LatestPrice struct {
	Price decimal.Decimal
	Date  time.Time
}

type adjustedPriceRepositoryHandler struct{}

func NewAdjustedPriceRepository() AdjustedPriceRepository {
	return adjustedPriceRepositoryHandler{}
}

func (h adjustedPriceRepositoryHandler) Add(ctx context.Context, tx qrm.Executable, prices []model.AdjustedPrice) error {
	if len(prices) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range prices {
		prices[i].CreatedAt = now
		prices[i].Date = domain.Day(prices[i].Date)
	}

	query := AdjustedPrice.
		INSERT(AdjustedPrice.MutableColumns).
		MODELS(prices).
		ON_CONFLICT(
			AdjustedPrice.Symbol, AdjustedPrice.Date,
		).DO_UPDATE(
		SET(
			AdjustedPrice.Price.SET(AdjustedPrice.EXCLUDED.Price),
		),
	)

	_, err := query.ExecContext(ctx, tx)
	if err != nil {
		return fmt.Errorf("failed to add adjusted prices to db: %w", err)
	}

	return nil
}

func listPricesQuery(symbols []string, start, end time.Time) SelectStatement {
	symbolExpressions := make([]Expression, 0, len(symbols))
	for _, s := range symbols {
		symbolExpressions = append(symbolExpressions, String(s))
	}

	return AdjustedPrice.
		SELECT(AdjustedPrice.AllColumns).
		WHERE(
			AND(
				AdjustedPrice.Symbol.IN(symbolExpressions...),
				AdjustedPrice.Date.BETWEEN(DateT(start), DateT(end)),
			),
		).
		ORDER_BY(AdjustedPrice.Symbol.ASC(), AdjustedPrice.Date.ASC())
}

// List returns every stored price for symbols in [start, end], ordered by
// symbol then date.
func (h adjustedPriceRepositoryHandler) List(ctx context.Context, tx qrm.Queryable, symbols []string, start, end time.Time) ([]domain.AssetPrice, error) {
	if len(symbols) == 0 {
		return []domain.AssetPrice{}, nil
	}

	result := []model.AdjustedPrice{}
	err := listPricesQuery(symbols, start, end).QueryContext(ctx, tx, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to list prices for %d symbols: %w", len(symbols), err)
	}

	out := make([]domain.AssetPrice, 0, len(result))
	for _, p := range result {
		out = append(out, domain.AssetPrice{
			Symbol: p.Symbol,
			Date:   domain.Day(p.Date),
			Price:  p.Price.InexactFloat64(),
		})
	}

	return out, nil
}

const latestPricesQuery = `
SELECT DISTINCT ON (symbol) symbol, price, date
FROM adjusted_price
WHERE symbol = ANY($1)
ORDER BY symbol, date DESC`

// LatestPrices returns the most recent stored close for each symbol.
func (h adjustedPriceRepositoryHandler) LatestPrices(ctx context.Context, tx qrm.Queryable, symbols []string) (map[string]LatestPrice, error) {
	rows, err := tx.QueryContext(ctx, latestPricesQuery, pq.Array(symbols))
	if err != nil {
		return nil, fmt.Errorf("failed to query latest prices: %w", err)
	}
	defer rows.Close()

	out := map[string]LatestPrice{}
	for rows.Next() {
		var (
			symbol string
			price  decimal.Decimal
			date   time.Time
		)
		if err := rows.Scan(&symbol, &price, &date); err != nil {
			return nil, fmt.Errorf("failed to scan latest price: %w", err)
		}
		out[symbol] = LatestPrice{Price: price, Date: domain.Day(date)}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read latest prices: %w", err)
	}

	return out, nil
}

func tradingDaysQuery(start, end time.Time, minSymbols int) SelectStatement {
	return AdjustedPrice.
		SELECT(AdjustedPrice.Date).
		WHERE(
			AdjustedPrice.Date.BETWEEN(DateT(start), DateT(end)),
		).
		GROUP_BY(AdjustedPrice.Date).
		HAVING(COUNT(STAR).GT_EQ(Int(int64(minSymbols)))).
		ORDER_BY(AdjustedPrice.Date.ASC())
}

// ListTradingDays returns dates in [start, end] with prices for at least
// minSymbols symbols.
func (h adjustedPriceRepositoryHandler) ListTradingDays(ctx context.Context, tx qrm.Queryable, start, end time.Time, minSymbols int) ([]time.Time, error) {
	q, args := tradingDaysQuery(start, end, minSymbols).Sql()

	rows, err := tx.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list trading days: %w", err)
	}
	defer rows.Close()

	out := []time.Time{}
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, domain.Day(d))
	}

	return out, rows.Err()
}
