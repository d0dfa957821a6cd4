package repository

import (
	"context"
	"factorlab/internal/db/models/postgres/public/model"
	. "factorlab/internal/db/models/postgres/public/table"
	"fmt"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/google/uuid"
)

type ApiRequestRepository interface {
	Add(ctx context.Context, db qrm.Queryable, ar model.APIRequest) (*model.APIRequest, error)
	Update(ctx context.Context, db qrm.Executable, ar model.APIRequest) error
}

type apiRequestRepositoryHandler struct{}

func NewApiRequestRepository() ApiRequestRepository {
	return apiRequestRepositoryHandler{}
}

// Add records the start of a request. A zero RequestID is replaced with a
// fresh one so callers may pick the id up front.
func (h apiRequestRepositoryHandler) Add(ctx context.Context, db qrm.Queryable, ar model.APIRequest) (*model.APIRequest, error) {
	if ar.RequestID == uuid.Nil {
		ar.RequestID = uuid.New()
	}

	query := APIRequest.
		INSERT(APIRequest.AllColumns).
		MODEL(ar).
		RETURNING(APIRequest.AllColumns)

	out := &model.APIRequest{}
	err := query.QueryContext(ctx, db, out)
	if err != nil {
		return nil, fmt.Errorf("failed to insert API request: %w", err)
	}

	return out, nil
}

func (h apiRequestRepositoryHandler) Update(ctx context.Context, db qrm.Executable, ar model.APIRequest) error {
	query := APIRequest.
		UPDATE(APIRequest.UserAccountID, APIRequest.DurationMs, APIRequest.StatusCode, APIRequest.ResponseBody).
		MODEL(ar).
		WHERE(APIRequest.RequestID.EQ(postgres.UUID(ar.RequestID)))

	_, err := query.ExecContext(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to update API request %s: %w", ar.RequestID.String(), err)
	}

	return nil
}
