package repository

import (
	"context"
	"factorlab/internal/db/models/postgres/public/model"
	"factorlab/internal/db/models/postgres/public/table"
	"factorlab/internal/domain"
	"fmt"
	"time"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/google/uuid"
)

type LatencyTrackingRepository interface {
	Add(ctx context.Context, db qrm.Executable, profile *domain.Profile, requestID *uuid.UUID) error
}

type latencyTrackingRepositoryHandler struct{}

func NewLatencyTrackingRepository() LatencyTrackingRepository {
	return latencyTrackingRepositoryHandler{}
}

func (h latencyTrackingRepositoryHandler) Add(ctx context.Context, db qrm.Executable, profile *domain.Profile, requestID *uuid.UUID) error {
	bytes, err := profile.ToJsonBytes()
	if err != nil {
		return fmt.Errorf("failed to serialize profile: %w", err)
	}

	m := model.LatencyTracking{
		ProcessingTimes: string(bytes),
		RequestID:       requestID,
		CreatedAt:       time.Now().UTC(),
	}
	query := table.LatencyTracking.INSERT(table.LatencyTracking.MutableColumns).MODEL(m)

	_, err = query.ExecContext(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to insert latency tracking: %w", err)
	}

	return nil
}
