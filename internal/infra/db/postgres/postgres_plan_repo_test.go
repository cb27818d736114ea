//go:build integration

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"subscription-billing-ledger/internal/domain"
	"subscription-billing-ledger/internal/domain/model"
)

func TestPlanRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode.")
	}

	ctx := context.Background()
	repo := NewPostgresPlanRepo(testPool)

	newPlan := func(t *testing.T, name string, price int64, days int, features []string) *model.Plan {
		t.Helper()
		p, err := model.NewPlan(name, price, days, features, time.Now().UTC().Truncate(time.Millisecond))
		if err != nil {
			t.Fatalf("NewPlan failed: %v", err)
		}
		return p
	}

	t.Run("should assign sequential ids starting at 1", func(t *testing.T) {
		cleanup(t)

		first := newPlan(t, "Basic", 1000, 30, []string{"feature1"})
		if err := repo.Create(ctx, nil, first); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if first.ID != 1 {
			t.Errorf("expected first plan id 1, got %d", first.ID)
		}

		second := newPlan(t, "Premium", 2000, 60, nil)
		if err := repo.Create(ctx, nil, second); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if second.ID != 2 {
			t.Errorf("expected second plan id 2, got %d", second.ID)
		}
	})

	t.Run("should round-trip the feature list", func(t *testing.T) {
		cleanup(t)

		features := []string{"feature1", "feature2", "feature3"}
		plan := newPlan(t, "Gold", 3000, 90, features)
		if err := repo.Create(ctx, nil, plan); err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		found, err := repo.FindByID(ctx, nil, plan.ID)
		if err != nil {
			t.Fatalf("FindByID failed: %v", err)
		}
		if found.Name != "Gold" || found.Price != 3000 || found.DurationDays != 90 {
			t.Errorf("plan did not round-trip, got %+v", found)
		}
		if len(found.Features) != len(features) {
			t.Fatalf("expected %d features, got %d", len(features), len(found.Features))
		}
		for i, f := range features {
			if found.Features[i] != f {
				t.Errorf("feature order lost at %d: expected %q got %q", i, f, found.Features[i])
			}
		}
	})

	t.Run("should store an empty feature list as empty, not null", func(t *testing.T) {
		cleanup(t)

		plan := newPlan(t, "Bare", 100, 7, nil)
		if err := repo.Create(ctx, nil, plan); err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		found, err := repo.FindByID(ctx, nil, plan.ID)
		if err != nil {
			t.Fatalf("FindByID failed: %v", err)
		}
		if found.Features == nil || len(found.Features) != 0 {
			t.Errorf("expected empty feature slice, got %#v", found.Features)
		}
	})

	t.Run("should fail with NotFound for a missing plan", func(t *testing.T) {
		cleanup(t)

		if _, err := repo.FindByID(ctx, nil, 999); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("should list all plans in id order", func(t *testing.T) {
		cleanup(t)

		for _, name := range []string{"Basic", "Premium", "Gold"} {
			if err := repo.Create(ctx, nil, newPlan(t, name, 1000, 30, nil)); err != nil {
				t.Fatalf("Create %s failed: %v", name, err)
			}
		}

		list, err := repo.ListAll(ctx, nil)
		if err != nil {
			t.Fatalf("ListAll failed: %v", err)
		}
		if len(list) != 3 {
			t.Fatalf("expected 3 plans, got %d", len(list))
		}
		for i, p := range list {
			if p.ID != int64(i+1) {
				t.Errorf("expected list in id order, got id %d at %d", p.ID, i)
			}
		}
	})
}
