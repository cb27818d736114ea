package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"subscription-billing-ledger/internal/domain"
	"subscription-billing-ledger/internal/domain/model"
	"subscription-billing-ledger/internal/domain/ports/repository"
)

var _ repository.PaymentRepository = (*PostgresPaymentRepo)(nil)

type PostgresPaymentRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresPaymentRepo(pool *pgxpool.Pool) *PostgresPaymentRepo {
	return &PostgresPaymentRepo{pool: pool}
}

// NextID advances the payment counter row. The caller must pass the payment
// transaction handle: a rollback then also rolls the counter back, keeping
// ids gapless.
func (r *PostgresPaymentRepo) NextID(ctx context.Context, tx repository.Tx) (int64, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return 0, err
	}
	const sql = `
UPDATE counters SET value = value + 1
 WHERE name = 'payment_id'
RETURNING value;
`
	var id int64
	if err := ex.QueryRow(ctx, sql).Scan(&id); err != nil {
		return 0, fmt.Errorf("next payment id: %w", err)
	}
	return id, nil
}

func (r *PostgresPaymentRepo) Save(ctx context.Context, tx repository.Tx, receipt *model.PaymentReceipt) error {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	// No ON CONFLICT clause: receipts are immutable, a duplicate key is a bug
	// and should surface as an error.
	const sql = `
INSERT INTO payments (account, payment_id, amount, paid_at, plan_id)
VALUES ($1, $2, $3, $4, $5);
`
	if _, err := ex.Exec(ctx, sql, receipt.Account, receipt.ID, receipt.Amount, receipt.Timestamp, receipt.PlanID); err != nil {
		return fmt.Errorf("save receipt: %w", err)
	}
	return nil
}

func (r *PostgresPaymentRepo) Find(ctx context.Context, tx repository.Tx, account string, paymentID int64) (*model.PaymentReceipt, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	const sql = `
SELECT account, payment_id, amount, paid_at, plan_id
  FROM payments
 WHERE account = $1 AND payment_id = $2;
`
	var p model.PaymentReceipt
	row := ex.QueryRow(ctx, sql, account, paymentID)
	if err := row.Scan(&p.Account, &p.ID, &p.Amount, &p.Timestamp, &p.PlanID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find receipt: %w", err)
	}
	return &p, nil
}
