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

const (
	UserAccountProvider_Google   = "GOOGLE"
	UserAccountProvider_Supabase = "SUPABASE"
)

type UserAccountRepository interface {
	// GetOrCreate resolves an identity from an auth provider to its
	// account, refreshing the profile fields on every login.
	GetOrCreate(ctx context.Context, tx qrm.Queryable, m model.UserAccount) (*model.UserAccount, error)
	Get(ctx context.Context, tx qrm.Queryable, id uuid.UUID) (*model.UserAccount, error)
}

type userAccountRepositoryHandler struct{}

func NewUserAccountRepository() UserAccountRepository {
	return userAccountRepositoryHandler{}
}

func (h userAccountRepositoryHandler) GetOrCreate(ctx context.Context, tx qrm.Queryable, m model.UserAccount) (*model.UserAccount, error) {
	if m.Provider == "" || m.ProviderID == "" {
		return nil, fmt.Errorf("failed to get user account: provider and provider id are required")
	}
	t := table.UserAccount
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	query := t.INSERT(t.MutableColumns).
		MODEL(m).
		ON_CONFLICT(t.Provider, t.ProviderID).
		DO_UPDATE(
			postgres.SET(
				t.Email.SET(postgres.StringExp(postgres.COALESCE(t.EXCLUDED.Email, t.Email))),
				t.FirstName.SET(postgres.StringExp(postgres.COALESCE(t.EXCLUDED.FirstName, t.FirstName))),
				t.LastName.SET(postgres.StringExp(postgres.COALESCE(t.EXCLUDED.LastName, t.LastName))),
				t.UpdatedAt.SET(t.EXCLUDED.UpdatedAt),
			),
		).
		RETURNING(t.AllColumns)

	out := model.UserAccount{}
	err := query.QueryContext(ctx, tx, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user account: %w", err)
	}

	return &out, nil
}

func (h userAccountRepositoryHandler) Get(ctx context.Context, tx qrm.Queryable, id uuid.UUID) (*model.UserAccount, error) {
	query := table.UserAccount.
		SELECT(table.UserAccount.AllColumns).
		WHERE(table.UserAccount.UserAccountID.EQ(postgres.UUID(id)))

	out := model.UserAccount{}
	err := query.QueryContext(ctx, tx, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to get user account: %w", err)
	}

	return &out, nil
}
