package repository

import (
	"context"
	"factorlab/internal/db/models/postgres/public/model"
	"factorlab/internal/db/models/postgres/public/table"
	"fmt"
	"time"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/google/uuid"
)

type StrategyRepository interface {
	// Upsert inserts the strategy or, when the user already has one with the
	// same hash, overwrites its bookmark flag. The stored row is returned.
	Upsert(ctx context.Context, tx qrm.Queryable, m model.Strategy) (*model.Strategy, error)
	Get(ctx context.Context, tx qrm.Queryable, id uuid.UUID) (*model.Strategy, error)
	GetByHash(ctx context.Context, tx qrm.Queryable, userAccountID uuid.UUID, hash string) (*model.Strategy, error)
	List(ctx context.Context, tx qrm.Queryable, filter StrategyListFilter) ([]model.Strategy, error)
	SetPublished(ctx context.Context, tx qrm.Executable, id uuid.UUID, published bool) error
}

type StrategyListFilter struct {
	StrategyIDs   []uuid.UUID
	UserAccountID *uuid.UUID
	Bookmarked    *bool
	Published     *bool
}

type strategyRepositoryHandler struct{}

func NewStrategyRepository() StrategyRepository {
	return strategyRepositoryHandler{}
}

func (h strategyRepositoryHandler) Upsert(ctx context.Context, tx qrm.Queryable, m model.Strategy) (*model.Strategy, error) {
	now := time.Now().UTC()
	m.CreatedAt = now
	m.ModifiedAt = now

	query := table.Strategy.
		INSERT(table.Strategy.MutableColumns).
		MODEL(m).
		ON_CONFLICT(
			table.Strategy.UserAccountID,
			table.Strategy.StrategyHash,
		).
		DO_UPDATE(
			postgres.SET(
				table.Strategy.Bookmarked.SET(table.Strategy.EXCLUDED.Bookmarked),
				table.Strategy.ModifiedAt.SET(table.Strategy.EXCLUDED.ModifiedAt),
			),
		).
		RETURNING(table.Strategy.AllColumns)

	out := model.Strategy{}
	err := query.QueryContext(ctx, tx, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert strategy: %w", err)
	}

	return &out, nil
}

func (h strategyRepositoryHandler) Get(ctx context.Context, tx qrm.Queryable, id uuid.UUID) (*model.Strategy, error) {
	query := table.Strategy.SELECT(table.Strategy.AllColumns).
		WHERE(table.Strategy.StrategyID.EQ(postgres.UUID(id)))

	out := model.Strategy{}
	err := query.QueryContext(ctx, tx, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to get strategy %s: %w", id.String(), err)
	}

	return &out, nil
}

func (h strategyRepositoryHandler) GetByHash(ctx context.Context, tx qrm.Queryable, userAccountID uuid.UUID, hash string) (*model.Strategy, error) {
	query := table.Strategy.SELECT(table.Strategy.AllColumns).
		WHERE(
			postgres.AND(
				table.Strategy.UserAccountID.EQ(postgres.UUID(userAccountID)),
				table.Strategy.StrategyHash.EQ(postgres.String(hash)),
			),
		)

	out := model.Strategy{}
	err := query.QueryContext(ctx, tx, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to get strategy by hash: %w", err)
	}

	return &out, nil
}

func listStrategiesQuery(filter StrategyListFilter) postgres.SelectStatement {
	conditions := []postgres.BoolExpression{postgres.Bool(true)}
	if len(filter.StrategyIDs) > 0 {
		ids := make([]postgres.Expression, 0, len(filter.StrategyIDs))
		for _, id := range filter.StrategyIDs {
			ids = append(ids, postgres.UUID(id))
		}
		conditions = append(conditions, table.Strategy.StrategyID.IN(ids...))
	}
	if filter.UserAccountID != nil {
		conditions = append(conditions, table.Strategy.UserAccountID.EQ(postgres.UUID(*filter.UserAccountID)))
	}
	if filter.Bookmarked != nil {
		conditions = append(conditions, table.Strategy.Bookmarked.EQ(postgres.Bool(*filter.Bookmarked)))
	}
	if filter.Published != nil {
		conditions = append(conditions, table.Strategy.Published.EQ(postgres.Bool(*filter.Published)))
	}

	return table.Strategy.
		SELECT(table.Strategy.AllColumns).
		WHERE(postgres.AND(conditions...)).
		ORDER_BY(
			table.Strategy.ModifiedAt.DESC(),
			table.Strategy.StrategyID.ASC(),
		)
}

// List returns matching strategies, most recently modified first.
func (h strategyRepositoryHandler) List(ctx context.Context, tx qrm.Queryable, filter StrategyListFilter) ([]model.Strategy, error) {
	out := []model.Strategy{}
	err := listStrategiesQuery(filter).QueryContext(ctx, tx, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to list strategies: %w", err)
	}

	return out, nil
}

func (h strategyRepositoryHandler) SetPublished(ctx context.Context, tx qrm.Executable, id uuid.UUID, published bool) error {
	query := table.Strategy.
		UPDATE(table.Strategy.Published, table.Strategy.ModifiedAt).
		SET(postgres.Bool(published), postgres.TimestampT(time.Now().UTC())).
		WHERE(table.Strategy.StrategyID.EQ(postgres.UUID(id)))

	_, err := query.ExecContext(ctx, tx)
	if err != nil {
		return fmt.Errorf("failed to update strategy %s: %w", id.String(), err)
	}

	return nil
}
