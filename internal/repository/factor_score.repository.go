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
	"github.com/google/uuid"
)

type FactorScoreRepository interface {
	GetMany(ctx context.Context, tx qrm.Queryable, in FactorScoreGetManyInput) ([]model.FactorScore, error)
	AddMany(ctx context.Context, tx qrm.Executable, in []model.FactorScore) error
}

type FactorScoreGetManyInput struct {
	FactorExpressionHash string
	TickerIDs            []uuid.UUID
	Dates                []time.Time
}

type factorScoreRepositoryHandler struct{}

func NewFactorScoreRepository() FactorScoreRepository {
	return factorScoreRepositoryHandler{}
}

// AddMany upserts scores keyed on (ticker, expression hash, date).
func (h factorScoreRepositoryHandler) AddMany(ctx context.Context, tx qrm.Executable, in []model.FactorScore) error {
	if len(in) == 0 {
		return nil
	}

	now := time.Now().UTC()
	for i := range in {
		in[i].CreatedAt = now
		in[i].UpdatedAt = now
		in[i].Date = domain.Day(in[i].Date)
	}
	query := table.FactorScore.INSERT(table.FactorScore.MutableColumns).
		MODELS(in).
		ON_CONFLICT(
			table.FactorScore.TickerID,
			table.FactorScore.FactorExpressionHash,
			table.FactorScore.Date,
		).
		DO_UPDATE(
			postgres.SET(
				table.FactorScore.Score.SET(table.FactorScore.EXCLUDED.Score),
				table.FactorScore.Error.SET(table.FactorScore.EXCLUDED.Error),
				table.FactorScore.UpdatedAt.SET(table.FactorScore.EXCLUDED.UpdatedAt),
			),
		)

	_, err := query.ExecContext(ctx, tx)
	if err != nil {
		return fmt.Errorf("failed to insert %d factor scores: %w", len(in), err)
	}

	return nil
}

func factorScoresQuery(in FactorScoreGetManyInput) postgres.SelectStatement {
	tickerIDs := make([]postgres.Expression, 0, len(in.TickerIDs))
	for _, id := range in.TickerIDs {
		tickerIDs = append(tickerIDs, postgres.UUID(id))
	}
	dates := make([]postgres.Expression, 0, len(in.Dates))
	for _, d := range in.Dates {
		dates = append(dates, postgres.DateT(d))
	}

	return table.FactorScore.
		SELECT(table.FactorScore.AllColumns).
		WHERE(
			postgres.AND(
				table.FactorScore.FactorExpressionHash.EQ(postgres.String(in.FactorExpressionHash)),
				table.FactorScore.TickerID.IN(tickerIDs...),
				table.FactorScore.Date.IN(dates...),
			),
		)
}

func (h factorScoreRepositoryHandler) GetMany(ctx context.Context, tx qrm.Queryable, in FactorScoreGetManyInput) ([]model.FactorScore, error) {
	if len(in.TickerIDs) == 0 || len(in.Dates) == 0 {
		return []model.FactorScore{}, nil
	}

	out := []model.FactorScore{}
	err := factorScoresQuery(in).QueryContext(ctx, tx, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to get factor scores: %w", err)
	}

	return out, nil
}
