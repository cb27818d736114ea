package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"subscription-billing-ledger/internal/domain"
	"subscription-billing-ledger/internal/domain/ports/repository"
)

// Ensure interface compliance
var _ repository.BalanceRepository = (*PostgresBalanceRepo)(nil)

type PostgresBalanceRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresBalanceRepo(pool *pgxpool.Pool) *PostgresBalanceRepo {
	return &PostgresBalanceRepo{pool: pool}
}

func (r *PostgresBalanceRepo) Credit(ctx context.Context, tx repository.Tx, account string, amount int64) error {
	if amount < 0 {
		return domain.ErrInvalidArgument
	}
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	const sql = `
INSERT INTO balances (account, amount)
VALUES ($1, $2)
ON CONFLICT (account) DO UPDATE
  SET amount = balances.amount + EXCLUDED.amount;
`
	if _, err := ex.Exec(ctx, sql, account, amount); err != nil {
		return fmt.Errorf("credit balance: %w", err)
	}
	return nil
}

func (r *PostgresBalanceRepo) Amount(ctx context.Context, tx repository.Tx, account string) (int64, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return 0, err
	}
	const sql = `SELECT amount FROM balances WHERE account = $1;`
	var amount int64
	if err := ex.QueryRow(ctx, sql, account).Scan(&amount); err != nil {
		if err == pgx.ErrNoRows {
			// Balance records exist implicitly at 0.
			return 0, nil
		}
		return 0, fmt.Errorf("read balance: %w", err)
	}
	return amount, nil
}

func (r *PostgresBalanceRepo) Debit(ctx context.Context, tx repository.Tx, account string, amount int64) error {
	if amount < 0 {
		return domain.ErrInvalidArgument
	}
	if amount == 0 {
		// A zero debit always covers; the implicit 0 record stays implicit.
		return nil
	}
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	// Guarded update: the WHERE clause enforces amount >= 0 after the debit,
	// so an uncovered debit touches no rows.
	const sql = `
UPDATE balances
   SET amount = amount - $2
 WHERE account = $1 AND amount >= $2;
`
	ct, err := ex.Exec(ctx, sql, account, amount)
	if err != nil {
		return fmt.Errorf("debit balance: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrInsufficientBalance
	}
	return nil
}
