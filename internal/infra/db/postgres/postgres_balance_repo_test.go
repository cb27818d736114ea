//go:build integration

package postgres

import (
	"context"
	"errors"
	"testing"

	"subscription-billing-ledger/internal/domain"
)

func TestBalanceRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode.")
	}

	ctx := context.Background()
	repo := NewPostgresBalanceRepo(testPool)

	t.Run("should report zero for an account never credited", func(t *testing.T) {
		cleanup(t)

		amount, err := repo.Amount(ctx, nil, "never-seen")
		if err != nil {
			t.Fatalf("Amount failed: %v", err)
		}
		if amount != 0 {
			t.Errorf("expected 0 for unknown account, got %d", amount)
		}
	})

	t.Run("should accumulate credits via upsert", func(t *testing.T) {
		cleanup(t)

		if err := repo.Credit(ctx, nil, "acct-1", 1000); err != nil {
			t.Fatalf("first Credit failed: %v", err)
		}
		if err := repo.Credit(ctx, nil, "acct-1", 1000); err != nil {
			t.Fatalf("second Credit failed: %v", err)
		}

		amount, err := repo.Amount(ctx, nil, "acct-1")
		if err != nil {
			t.Fatalf("Amount failed: %v", err)
		}
		if amount != 2000 {
			t.Errorf("expected balance 2000, got %d", amount)
		}
	})

	t.Run("should reject an uncovered debit and leave the balance untouched", func(t *testing.T) {
		cleanup(t)

		if err := repo.Credit(ctx, nil, "acct-1", 500); err != nil {
			t.Fatalf("Credit failed: %v", err)
		}

		err := repo.Debit(ctx, nil, "acct-1", 501)
		if !errors.Is(err, domain.ErrInsufficientBalance) {
			t.Fatalf("expected ErrInsufficientBalance, got %v", err)
		}

		amount, _ := repo.Amount(ctx, nil, "acct-1")
		if amount != 500 {
			t.Errorf("rejected debit must not change the balance, got %d", amount)
		}
	})

	t.Run("should debit down to exactly zero", func(t *testing.T) {
		cleanup(t)

		if err := repo.Credit(ctx, nil, "acct-1", 500); err != nil {
			t.Fatalf("Credit failed: %v", err)
		}
		if err := repo.Debit(ctx, nil, "acct-1", 500); err != nil {
			t.Fatalf("Debit failed: %v", err)
		}

		amount, _ := repo.Amount(ctx, nil, "acct-1")
		if amount != 0 {
			t.Errorf("expected 0 after full debit, got %d", amount)
		}
	})

	t.Run("should reject a debit against an account with no record", func(t *testing.T) {
		cleanup(t)

		err := repo.Debit(ctx, nil, "no-record", 1)
		if !errors.Is(err, domain.ErrInsufficientBalance) {
			t.Fatalf("expected ErrInsufficientBalance, got %v", err)
		}
	})
}
