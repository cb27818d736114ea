package usecase

import (
	"context"

	"subscription-billing-ledger/internal/domain"
	"subscription-billing-ledger/internal/domain/model"
	"subscription-billing-ledger/internal/domain/ports"
	"subscription-billing-ledger/internal/domain/ports/repository"
)

// SubscriptionUseCase implements subscription window operations.
type SubscriptionUseCase struct {
	planRepo repository.PlanRepository
	subRepo  repository.SubscriptionRepository
	clock    ports.Clock
}

// NewSubscriptionUseCase constructs the usecase.
func NewSubscriptionUseCase(planRepo repository.PlanRepository, subRepo repository.SubscriptionRepository, clock ports.Clock) *SubscriptionUseCase {
	return &SubscriptionUseCase{planRepo: planRepo, subRepo: subRepo, clock: clock}
}

// Subscribe starts a new plan window for the account at the clock's current
// time and unconditionally replaces any prior record. There is no stacking
// and no extension: re-subscribing to a shorter plan can shorten the
// effective end time. Fails with domain.ErrNotFound when the plan does not
// exist.
func (uc *SubscriptionUseCase) Subscribe(ctx context.Context, account string, planID int64) (*model.Subscription, error) {
	if account == "" {
		return nil, domain.ErrInvalidArgument
	}
	plan, err := uc.planRepo.FindByID(ctx, nil, planID)
	if err != nil {
		return nil, err
	}
	sub, err := model.NewSubscription(account, plan, uc.clock.Now().Unix())
	if err != nil {
		return nil, err
	}
	if err := uc.subRepo.Save(ctx, nil, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Get returns the account's current subscription record.
func (uc *SubscriptionUseCase) Get(ctx context.Context, account string) (*model.Subscription, error) {
	if account == "" {
		return nil, domain.ErrInvalidArgument
	}
	return uc.subRepo.FindByAccount(ctx, nil, account)
}

// IsActive reports whether the account's window covers the current time.
// An account with no record fails with domain.ErrNotFound, which is distinct
// from an expired window returning false.
func (uc *SubscriptionUseCase) IsActive(ctx context.Context, account string) (bool, error) {
	sub, err := uc.Get(ctx, account)
	if err != nil {
		return false, err
	}
	return sub.ActiveAt(uc.clock.Now().Unix()), nil
}
