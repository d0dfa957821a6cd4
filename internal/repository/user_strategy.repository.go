package repository

import (
	"context"
	"factorlab/internal/db/models/postgres/public/model"
	. "factorlab/internal/db/models/postgres/public/table"
	"fmt"
	"time"

	"github.com/go-jet/jet/v2/qrm"
)

type UserStrategyRepository interface {
	// use db here rather than the request tx; the record
	// should survive a failed backtest
	Add(ctx context.Context, db qrm.Executable, us model.UserStrategy) error
}

type userStrategyRepositoryHandler struct{}

func NewUserStrategyRepository() UserStrategyRepository {
	return userStrategyRepositoryHandler{}
}

func (h userStrategyRepositoryHandler) Add(ctx context.Context, db qrm.Executable, us model.UserStrategy) error {
	us.CreatedAt = time.Now().UTC()
	query := UserStrategy.
		INSERT(UserStrategy.MutableColumns).
		MODEL(us)

	_, err := query.ExecContext(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to insert user strategy: %w", err)
	}

	return nil
}
