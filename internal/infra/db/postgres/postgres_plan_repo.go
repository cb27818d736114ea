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

// Ensure interface compliance
var _ repository.PlanRepository = (*PostgresPlanRepo)(nil)

type PostgresPlanRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresPlanRepo(pool *pgxpool.Pool) *PostgresPlanRepo {
	return &PostgresPlanRepo{pool: pool}
}

// Create assigns the next plan id from the counters row and inserts the plan
// in the same transaction, so ids stay gapless even if the insert fails.
func (r *PostgresPlanRepo) Create(ctx context.Context, tx repository.Tx, plan *model.Plan) error {
	run := func(ex executor) error {
		const nextSQL = `
UPDATE counters SET value = value + 1
 WHERE name = 'plan_id'
RETURNING value;
`
		var id int64
		if err := ex.QueryRow(ctx, nextSQL).Scan(&id); err != nil {
			return fmt.Errorf("next plan id: %w", err)
		}
		const insertSQL = `
INSERT INTO plans (id, name, price, duration_days, features, created_at)
VALUES ($1, $2, $3, $4, $5, $6);
`
		if _, err := ex.Exec(ctx, insertSQL, id, plan.Name, plan.Price, plan.DurationDays, plan.Features, plan.CreatedAt); err != nil {
			return fmt.Errorf("save plan: %w", err)
		}
		plan.ID = id
		return nil
	}

	if tx != nil {
		ex, err := getExecutor(r.pool, tx)
		if err != nil {
			return err
		}
		return run(ex)
	}
	// No caller transaction: open one so counter and insert commit together.
	dbTx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = dbTx.Rollback(ctx) }()
	if err := run(dbTx); err != nil {
		return err
	}
	return dbTx.Commit(ctx)
}

func (r *PostgresPlanRepo) FindByID(ctx context.Context, tx repository.Tx, id int64) (*model.Plan, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	const sql = `
SELECT id, name, price, duration_days, features, created_at
  FROM plans
 WHERE id = $1;
`
	row := ex.QueryRow(ctx, sql, id)
	var p model.Plan
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.DurationDays, &p.Features, &p.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find plan: %w", err)
	}
	return &p, nil
}

func (r *PostgresPlanRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Plan, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	const sql = `
SELECT id, name, price, duration_days, features, created_at
  FROM plans
 ORDER BY id;
`
	rows, err := ex.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()
	var out []*model.Plan
	for rows.Next() {
		var p model.Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.DurationDays, &p.Features, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
