package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
)

// schemaSQL bootstraps the four keyspaces plus the counters table. The
// counters rows back the gapless payment_id and plan_id sequences; a plain
// Postgres SEQUENCE would leave gaps on rollback.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS balances (
    account TEXT   PRIMARY KEY,
    amount  BIGINT NOT NULL DEFAULT 0 CHECK (amount >= 0)
);

CREATE TABLE IF NOT EXISTS payments (
    account    TEXT   NOT NULL,
    payment_id BIGINT NOT NULL,
    amount     BIGINT NOT NULL,
    paid_at    BIGINT NOT NULL,
    plan_id    BIGINT NOT NULL,
    PRIMARY KEY (account, payment_id)
);

CREATE TABLE IF NOT EXISTS plans (
    id            BIGINT      PRIMARY KEY,
    name          TEXT        NOT NULL,
    price         BIGINT      NOT NULL CHECK (price >= 0),
    duration_days INT         NOT NULL CHECK (duration_days > 0),
    features      TEXT[]      NOT NULL DEFAULT '{}',
    created_at    TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS subscriptions (
    account    TEXT   PRIMARY KEY,
    plan_id    BIGINT NOT NULL,
    start_time BIGINT NOT NULL,
    end_time   BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS counters (
    name  TEXT   PRIMARY KEY,
    value BIGINT NOT NULL
);

INSERT INTO counters (name, value) VALUES ('payment_id', 0), ('plan_id', 0)
ON CONFLICT (name) DO NOTHING;
`

// EnsureSchema creates any missing tables and counter rows. Idempotent.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schemaSQL)
	return err
}
