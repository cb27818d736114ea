package repository

import (
	"context"

	"subscription-billing-ledger/internal/domain/model"
)

// PaymentRepository is the port for the append-only receipt log and the
// global payment counter.
type PaymentRepository interface {
	// NextID advances the global payment counter and returns the new value.
	// Must be called inside the same transaction as Save so a rolled-back
	// payment leaves the counter untouched (ids stay gapless).
	NextID(ctx context.Context, tx Tx) (int64, error)
	// Save inserts a receipt under (receipt.Account, receipt.ID). Receipts
	// are immutable; Save never overwrites.
	Save(ctx context.Context, tx Tx, receipt *model.PaymentReceipt) error
	// Find returns the receipt at the composite key or domain.ErrNotFound.
	Find(ctx context.Context, tx Tx, account string, paymentID int64) (*model.PaymentReceipt, error)
}
