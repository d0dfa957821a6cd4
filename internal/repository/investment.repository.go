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

type InvestmentRepository interface {
	Add(ctx context.Context, tx qrm.Queryable, m model.Investment) (*model.Investment, error)
	Get(ctx context.Context, tx qrm.Queryable, id uuid.UUID) (*model.Investment, error)
	List(ctx context.Context, tx qrm.Queryable, filter InvestmentListFilter) ([]model.Investment, error)
}

type InvestmentListFilter struct {
	UserAccountIDs []uuid.UUID
	ActiveOnly     bool
}

type investmentRepositoryHandler struct{}

func NewInvestmentRepository() InvestmentRepository {
	return investmentRepositoryHandler{}
}

func (h investmentRepositoryHandler) Add(ctx context.Context, tx qrm.Queryable, m model.Investment) (*model.Investment, error) {
	now := time.Now().UTC()
	m.CreatedAt = now
	m.ModifiedAt = now
	query := table.Investment.
		INSERT(
			table.Investment.MutableColumns,
		).
		MODEL(m).
		RETURNING(table.Investment.AllColumns)

	out := model.Investment{}
	err := query.QueryContext(ctx, tx, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to insert investment: %w", err)
	}

	return &out, nil
}

func (h investmentRepositoryHandler) Get(ctx context.Context, tx qrm.Queryable, id uuid.UUID) (*model.Investment, error) {
	query := table.Investment.
		SELECT(table.Investment.AllColumns).
		WHERE(table.Investment.InvestmentID.EQ(postgres.UUID(id)))

	result := model.Investment{}
	err := query.QueryContext(ctx, tx, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to get investment: %w", err)
	}

	return &result, nil
}

func listInvestmentsQuery(filter InvestmentListFilter) postgres.SelectStatement {
	whereClauses := []postgres.BoolExpression{postgres.Bool(true)}
	if filter.ActiveOnly {
		whereClauses = append(whereClauses,
			table.Investment.PausedAt.IS_NULL(),
			table.Investment.EndDate.IS_NULL(),
		)
	}
	if len(filter.UserAccountIDs) > 0 {
		ids := []postgres.Expression{}
		for _, id := range filter.UserAccountIDs {
			ids = append(ids, postgres.UUID(id))
		}
		whereClauses = append(whereClauses, table.Investment.UserAccountID.IN(ids...))
	}

	return table.Investment.
		SELECT(table.Investment.AllColumns).
		WHERE(postgres.AND(whereClauses...)).
		ORDER_BY(table.Investment.StartDate.ASC(), table.Investment.CreatedAt.ASC())
}

func (h investmentRepositoryHandler) List(ctx context.Context, tx qrm.Queryable, filter InvestmentListFilter) ([]model.Investment, error) {
	results := []model.Investment{}
	err := listInvestmentsQuery(filter).QueryContext(ctx, tx, &results)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}

	return results, nil
}
