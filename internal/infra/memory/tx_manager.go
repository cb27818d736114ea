package memory

import (
	"context"

	"subscription-billing-ledger/internal/domain/ports/repository"
)

var _ repository.TransactionManager = (*TxManager)(nil)

// TxManager implements repository.TransactionManager over the in-memory
// store: it holds the store lock for the whole callback and restores a
// snapshot if the callback fails, so a rejected payment leaves no partial
// effects.
type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

func (m *TxManager) WithTx(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	snap := m.store.take()
	if err := fn(ctx, &txToken{s: m.store}); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}
