package model

import "subscription-billing-ledger/internal/domain"

const secondsPerDay = 86400

// Subscription is the single current plan window for an account. An account
// holds at most one record; a new subscribe call overwrites the prior one
// unconditionally, so this is not a history.
type Subscription struct {
	Account   string
	PlanID    int64
	StartTime int64 // unix seconds
	EndTime   int64 // unix seconds, StartTime + duration*86400
}

// NewSubscription computes the window for the given plan starting at
// startTime.
func NewSubscription(account string, plan *Plan, startTime int64) (*Subscription, error) {
	if account == "" || plan.IsZero() || startTime < 0 {
		return nil, domain.ErrInvalidArgument
	}
	return &Subscription{
		Account:   account,
		PlanID:    plan.ID,
		StartTime: startTime,
		EndTime:   startTime + int64(plan.DurationDays)*secondsPerDay,
	}, nil
}

// ActiveAt reports whether the window covers now. A timestamp exactly equal
// to EndTime counts as expired.
func (s *Subscription) ActiveAt(now int64) bool {
	return now < s.EndTime
}
