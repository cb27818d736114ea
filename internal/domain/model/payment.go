package model

import "subscription-billing-ledger/internal/domain"

// PaymentReceipt is the immutable record of one completed payment, keyed by
// (account, payment id). Payment ids come from a single process-wide
// monotonic counter shared across all accounts, so the composite key is
// globally unique. Receipts are never updated or deleted.
type PaymentReceipt struct {
	Account   string
	ID        int64
	Amount    int64
	Timestamp int64 // unix seconds at commit time
	PlanID    int64
}

// NewPaymentReceipt validates and constructs a receipt. The ID is assigned by
// the payment ledger inside the commit transaction.
func NewPaymentReceipt(account string, amount, timestamp, planID int64) (*PaymentReceipt, error) {
	if account == "" || amount < 0 || timestamp < 0 || planID <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	return &PaymentReceipt{
		Account:   account,
		Amount:    amount,
		Timestamp: timestamp,
		PlanID:    planID,
	}, nil
}
