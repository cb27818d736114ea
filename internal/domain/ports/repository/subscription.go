package repository

import (
	"context"

	"subscription-billing-ledger/internal/domain/model"
)

// SubscriptionRepository is the port for the single current subscription
// record per account.
type SubscriptionRepository interface {
	// Save upserts the record for sub.Account, replacing any prior one.
	Save(ctx context.Context, tx Tx, sub *model.Subscription) error
	// FindByAccount returns the current record or domain.ErrNotFound.
	FindByAccount(ctx context.Context, tx Tx, account string) (*model.Subscription, error)
}
