package repository

import (
	"context"
	"factorlab/internal/db/models/postgres/public/model"
	. "factorlab/internal/db/models/postgres/public/table"
	"fmt"
	"time"

	"github.com/go-jet/jet/v2/qrm"
)

type ContactRepository interface {
	Add(ctx context.Context, db qrm.Queryable, c model.ContactMessage) (*model.ContactMessage, error)
}

type contactRepositoryHandler struct{}

func NewContactRepository() ContactRepository {
	return contactRepositoryHandler{}
}

func (h contactRepositoryHandler) Add(ctx context.Context, db qrm.Queryable, c model.ContactMessage) (*model.ContactMessage, error) {
	c.CreatedAt = time.Now().UTC()
	query := ContactMessage.
		INSERT(ContactMessage.MutableColumns).
		MODEL(c).
		RETURNING(ContactMessage.AllColumns)

	out := &model.ContactMessage{}
	err := query.QueryContext(ctx, db, out)
	if err != nil {
		return nil, fmt.Errorf("failed to insert contact message: %w", err)
	}

	return out, nil
}
