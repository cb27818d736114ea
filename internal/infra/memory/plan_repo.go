package memory

import (
	"context"
	"sort"

	"subscription-billing-ledger/internal/domain"
	"subscription-billing-ledger/internal/domain/model"
	"subscription-billing-ledger/internal/domain/ports/repository"
)

var _ repository.PlanRepository = (*PlanRepo)(nil)

// PlanRepo keeps the plan catalog and the global plan counter.
type PlanRepo struct {
	store *Store
}

func NewPlanRepo(store *Store) *PlanRepo {
	return &PlanRepo{store: store}
}

func (r *PlanRepo) Create(ctx context.Context, tx repository.Tx, plan *model.Plan) error {
	release := r.store.enter(tx)
	defer release()
	r.store.lastPlanID++
	plan.ID = r.store.lastPlanID
	cp := clonePlan(plan)
	r.store.plans[plan.ID] = cp
	return nil
}

func (r *PlanRepo) FindByID(ctx context.Context, tx repository.Tx, id int64) (*model.Plan, error) {
	release := r.store.enter(tx)
	defer release()
	p, ok := r.store.plans[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clonePlan(p), nil
}

func (r *PlanRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Plan, error) {
	release := r.store.enter(tx)
	defer release()
	out := make([]*model.Plan, 0, len(r.store.plans))
	for _, p := range r.store.plans {
		out = append(out, clonePlan(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func clonePlan(p *model.Plan) *model.Plan {
	cp := *p
	cp.Features = append([]string(nil), p.Features...)
	return &cp
}
