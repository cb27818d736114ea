package memory

import (
	"context"

	"subscription-billing-ledger/internal/domain"
	"subscription-billing-ledger/internal/domain/ports/repository"
)

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// BalanceRepo keeps per-account balances. Records exist implicitly at 0.
type BalanceRepo struct {
	store *Store
}

func NewBalanceRepo(store *Store) *BalanceRepo {
	return &BalanceRepo{store: store}
}

func (r *BalanceRepo) Credit(ctx context.Context, tx repository.Tx, account string, amount int64) error {
	if amount < 0 {
		return domain.ErrInvalidArgument
	}
	release := r.store.enter(tx)
	defer release()
	r.store.balances[account] += amount
	return nil
}

func (r *BalanceRepo) Amount(ctx context.Context, tx repository.Tx, account string) (int64, error) {
	release := r.store.enter(tx)
	defer release()
	return r.store.balances[account], nil
}

func (r *BalanceRepo) Debit(ctx context.Context, tx repository.Tx, account string, amount int64) error {
	if amount < 0 {
		return domain.ErrInvalidArgument
	}
	release := r.store.enter(tx)
	defer release()
	if r.store.balances[account] < amount {
		return domain.ErrInsufficientBalance
	}
	r.store.balances[account] -= amount
	return nil
}
