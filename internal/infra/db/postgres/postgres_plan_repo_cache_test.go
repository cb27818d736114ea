package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subscription-billing-ledger/internal/domain/model"
	"subscription-billing-ledger/internal/domain/ports/repository"
)

func TestPlanRepoCacheDecorator(t *testing.T) {
	ctx := context.Background()
	plan := &model.Plan{ID: 1, Name: "Basic", Price: 1000, DurationDays: 30, Features: []string{"f1"}}
	planJSON, err := json.Marshal(plan)
	require.NoError(t, err)

	t.Run("FindByID returns from cache on hit", func(t *testing.T) {
		mockRedis := &mockRedisClient{
			GetFunc: func(ctx context.Context, key string) (string, error) {
				return string(planJSON), nil
			},
		}
		innerCalled := false
		inner := &mockInnerPlanRepo{
			FindByIDFunc: func(ctx context.Context, tx repository.Tx, id int64) (*model.Plan, error) {
				innerCalled = true
				return nil, nil
			},
		}

		decorator := NewPlanRepoCacheDecorator(inner, mockRedis, time.Hour)

		got, err := decorator.FindByID(ctx, nil, 1)
		require.NoError(t, err)
		assert.False(t, innerCalled, "inner repository should not be called on a cache hit")
		require.NotNil(t, got)
		assert.Equal(t, int64(1000), got.Price)
	})

	t.Run("FindByID falls through and populates cache on miss", func(t *testing.T) {
		var setKey string
		mockRedis := &mockRedisClient{
			SetFunc: func(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
				setKey = key
				return nil
			},
		}
		inner := &mockInnerPlanRepo{
			FindByIDFunc: func(ctx context.Context, tx repository.Tx, id int64) (*model.Plan, error) {
				return plan, nil
			},
		}

		decorator := NewPlanRepoCacheDecorator(inner, mockRedis, time.Hour)

		got, err := decorator.FindByID(ctx, nil, 1)
		require.NoError(t, err)
		assert.Equal(t, "Basic", got.Name)
		assert.Equal(t, "plan:1", setKey, "miss should populate the cache")
	})

	t.Run("Create invalidates the list key", func(t *testing.T) {
		var deleted []string
		mockRedis := &mockRedisClient{
			DelFunc: func(ctx context.Context, keys ...string) error {
				deleted = append(deleted, keys...)
				return nil
			},
		}
		inner := &mockInnerPlanRepo{
			CreateFunc: func(ctx context.Context, tx repository.Tx, p *model.Plan) error {
				p.ID = 2
				return nil
			},
		}

		decorator := NewPlanRepoCacheDecorator(inner, mockRedis, time.Hour)

		p := &model.Plan{Name: "Premium", Price: 2000, DurationDays: 60}
		require.NoError(t, decorator.Create(ctx, nil, p))
		assert.Equal(t, int64(2), p.ID)
		assert.Contains(t, deleted, "plans:all")
	})

	t.Run("ListAll caches the full catalog", func(t *testing.T) {
		listJSON, err := json.Marshal([]*model.Plan{plan})
		require.NoError(t, err)

		mockRedis := &mockRedisClient{
			GetFunc: func(ctx context.Context, key string) (string, error) {
				return string(listJSON), nil
			},
		}
		inner := &mockInnerPlanRepo{
			ListAllFunc: func(ctx context.Context, tx repository.Tx) ([]*model.Plan, error) {
				t.Fatal("inner ListAll should not run on a cache hit")
				return nil, nil
			},
		}

		decorator := NewPlanRepoCacheDecorator(inner, mockRedis, time.Hour)

		plans, err := decorator.ListAll(ctx, nil)
		require.NoError(t, err)
		require.Len(t, plans, 1)
		assert.Equal(t, int64(1), plans[0].ID)
	})
}
