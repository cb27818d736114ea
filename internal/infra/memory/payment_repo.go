package memory

import (
	"context"

	"subscription-billing-ledger/internal/domain"
	"subscription-billing-ledger/internal/domain/model"
	"subscription-billing-ledger/internal/domain/ports/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo keeps the append-only receipt log and the global payment
// counter.
type PaymentRepo struct {
	store *Store
}

func NewPaymentRepo(store *Store) *PaymentRepo {
	return &PaymentRepo{store: store}
}

func (r *PaymentRepo) NextID(ctx context.Context, tx repository.Tx) (int64, error) {
	release := r.store.enter(tx)
	defer release()
	r.store.lastPaymentID++
	return r.store.lastPaymentID, nil
}

func (r *PaymentRepo) Save(ctx context.Context, tx repository.Tx, receipt *model.PaymentReceipt) error {
	release := r.store.enter(tx)
	defer release()
	byID := r.store.receipts[receipt.Account]
	if byID == nil {
		byID = make(map[int64]*model.PaymentReceipt)
		r.store.receipts[receipt.Account] = byID
	}
	if _, exists := byID[receipt.ID]; exists {
		// Receipts are immutable; a duplicate id means a counter bug.
		return domain.ErrOperationFailed
	}
	cp := *receipt
	byID[receipt.ID] = &cp
	return nil
}

func (r *PaymentRepo) Find(ctx context.Context, tx repository.Tx, account string, paymentID int64) (*model.PaymentReceipt, error) {
	release := r.store.enter(tx)
	defer release()
	rcpt, ok := r.store.receipts[account][paymentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *rcpt
	return &cp, nil
}
