package repository

import (
	"context"
	"factorlab/internal/db/models/postgres/public/model"
	"factorlab/internal/db/models/postgres/public/table"
	"factorlab/internal/domain"
	"fmt"
	"time"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

type InterestRateRepository interface {
	// List returns the stored yield curves in [start, end] keyed by date.
	List(ctx context.Context, tx qrm.Queryable, start, end time.Time) (map[string]domain.InterestRateMap, error)
	Add(ctx context.Context, tx qrm.Executable, date time.Time, rates domain.InterestRateMap) error
}

type interestRateRepositoryHandler struct{}

func NewInterestRateRepository() InterestRateRepository {
	return interestRateRepositoryHandler{}
}

func (r interestRateRepositoryHandler) List(ctx context.Context, tx qrm.Queryable, start, end time.Time) (map[string]domain.InterestRateMap, error) {
	query := table.InterestRate.SELECT(table.InterestRate.AllColumns).
		WHERE(
			table.InterestRate.Date.BETWEEN(postgres.DateT(start), postgres.DateT(end)),
		).
		ORDER_BY(table.InterestRate.Date.ASC(), table.InterestRate.DurationMonths.ASC())

	rows := []model.InterestRate{}
	err := query.QueryContext(ctx, tx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list interest rates: %w", err)
	}

	out := map[string]domain.InterestRateMap{}
	for _, row := range rows {
		key := row.Date.Format(domain.DateLayout)
		if _, ok := out[key]; !ok {
			out[key] = domain.InterestRateMap{Rates: map[int]float64{}}
		}
		out[key].Rates[int(row.DurationMonths)] = row.InterestRate
	}

	return out, nil
}

func (r interestRateRepositoryHandler) Add(ctx context.Context, tx qrm.Executable, date time.Time, m domain.InterestRateMap) error {
	if len(m.Rates) == 0 {
		return nil
	}
	now := time.Now().UTC()
	models := []model.InterestRate{}
	for _, duration := range domain.SortedIntKeys(m.Rates) {
		models = append(models, model.InterestRate{
			Date:           domain.Day(date),
			DurationMonths: int32(duration),
			InterestRate:   m.Rates[duration],
			CreatedAt:      now,
		})
	}
	query := table.InterestRate.
		INSERT(table.InterestRate.MutableColumns).
		MODELS(models).
		ON_CONFLICT(table.InterestRate.Date, table.InterestRate.DurationMonths).
		DO_UPDATE(
			postgres.SET(
				table.InterestRate.InterestRate.SET(table.InterestRate.EXCLUDED.InterestRate),
			),
		)

	_, err := query.ExecContext(ctx, tx)
	if err != nil {
		return fmt.Errorf("failed to add interest rates for %s: %w", date.Format(domain.DateLayout), err)
	}

	return nil
}
