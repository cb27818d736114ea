package memory

import (
	"context"

	"subscription-billing-ledger/internal/domain"
	"subscription-billing-ledger/internal/domain/model"
	"subscription-billing-ledger/internal/domain/ports/repository"
)

var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

// SubscriptionRepo keeps the single current window per account.
type SubscriptionRepo struct {
	store *Store
}

func NewSubscriptionRepo(store *Store) *SubscriptionRepo {
	return &SubscriptionRepo{store: store}
}

func (r *SubscriptionRepo) Save(ctx context.Context, tx repository.Tx, sub *model.Subscription) error {
	release := r.store.enter(tx)
	defer release()
	cp := *sub
	r.store.subscriptions[sub.Account] = &cp
	return nil
}

func (r *SubscriptionRepo) FindByAccount(ctx context.Context, tx repository.Tx, account string) (*model.Subscription, error) {
	release := r.store.enter(tx)
	defer release()
	s, ok := r.store.subscriptions[account]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}
