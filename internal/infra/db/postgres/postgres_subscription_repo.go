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

var _ repository.SubscriptionRepository = (*PostgresSubscriptionRepo)(nil)

type PostgresSubscriptionRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresSubscriptionRepo(pool *pgxpool.Pool) *PostgresSubscriptionRepo {
	return &PostgresSubscriptionRepo{pool: pool}
}

// Save upserts the single record per account; a new subscribe replaces the
// prior window.
func (r *PostgresSubscriptionRepo) Save(ctx context.Context, tx repository.Tx, sub *model.Subscription) error {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	const sql = `
INSERT INTO subscriptions (account, plan_id, start_time, end_time)
VALUES ($1, $2, $3, $4)
ON CONFLICT (account) DO UPDATE
  SET plan_id    = EXCLUDED.plan_id,
      start_time = EXCLUDED.start_time,
      end_time   = EXCLUDED.end_time;
`
	if _, err := ex.Exec(ctx, sql, sub.Account, sub.PlanID, sub.StartTime, sub.EndTime); err != nil {
		return fmt.Errorf("save subscription: %w", err)
	}
	return nil
}

func (r *PostgresSubscriptionRepo) FindByAccount(ctx context.Context, tx repository.Tx, account string) (*model.Subscription, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	const sql = `
SELECT account, plan_id, start_time, end_time
  FROM subscriptions
 WHERE account = $1;
`
	var s model.Subscription
	row := ex.QueryRow(ctx, sql, account)
	if err := row.Scan(&s.Account, &s.PlanID, &s.StartTime, &s.EndTime); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find subscription: %w", err)
	}
	return &s, nil
}
