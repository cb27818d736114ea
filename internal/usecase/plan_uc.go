package usecase

import (
	"context"

	"subscription-billing-ledger/internal/domain/model"
	"subscription-billing-ledger/internal/domain/ports"
	"subscription-billing-ledger/internal/domain/ports/repository"
)

// PlanUseCase manages the plan catalog.
type PlanUseCase struct {
	repo  repository.PlanRepository
	clock ports.Clock
}

// NewPlanUseCase constructs a PlanUseCase.
func NewPlanUseCase(repo repository.PlanRepository, clock ports.Clock) *PlanUseCase {
	return &PlanUseCase{repo: repo, clock: clock}
}

// Create stores a new immutable plan and returns its assigned id. Succeeds
// for any well-formed input; duplicate names are not rejected.
func (uc *PlanUseCase) Create(ctx context.Context, name string, price int64, durationDays int, features []string) (int64, error) {
	plan, err := model.NewPlan(name, price, durationDays, features, uc.clock.Now())
	if err != nil {
		return 0, err
	}
	if err := uc.repo.Create(ctx, nil, plan); err != nil {
		return 0, err
	}
	return plan.ID, nil
}

// Get retrieves a plan by id.
func (uc *PlanUseCase) Get(ctx context.Context, id int64) (*model.Plan, error) {
	return uc.repo.FindByID(ctx, nil, id)
}

// List returns all plans.
func (uc *PlanUseCase) List(ctx context.Context) ([]*model.Plan, error) {
	return uc.repo.ListAll(ctx, nil)
}
