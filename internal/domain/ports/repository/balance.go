package repository

import "context"

// BalanceRepository is the port for per-account prepaid balances. A balance
// record exists implicitly with amount 0 until first credited; no operation
// may leave it negative.
type BalanceRepository interface {
	// Credit adds amount to the account's balance, creating the record at 0
	// first if absent. amount must be non-negative.
	Credit(ctx context.Context, tx Tx, account string, amount int64) error
	// Amount returns the current balance, 0 for unknown accounts.
	Amount(ctx context.Context, tx Tx, account string) (int64, error)
	// Debit subtracts amount from the balance. Returns
	// domain.ErrInsufficientBalance (and changes nothing) when amount exceeds
	// the current balance.
	Debit(ctx context.Context, tx Tx, account string, amount int64) error
}
