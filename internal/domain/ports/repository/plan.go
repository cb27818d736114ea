package repository

import (
	"context"

	"subscription-billing-ledger/internal/domain/model"
)

// PlanRepository is the port for the plan catalog.
type PlanRepository interface {
	// Create assigns plan.ID from the global plan counter (starting at 1)
	// and stores the plan immutably.
	Create(ctx context.Context, tx Tx, plan *model.Plan) error
	// FindByID returns the plan or domain.ErrNotFound.
	FindByID(ctx context.Context, tx Tx, id int64) (*model.Plan, error)
	// ListAll returns every plan in id order.
	ListAll(ctx context.Context, tx Tx) ([]*model.Plan, error)
}
