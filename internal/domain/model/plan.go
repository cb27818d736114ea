package model

import (
	"time"

	"subscription-billing-ledger/internal/domain"
)

// Plan is a purchasable subscription offering with a fixed duration in days,
// an integer price, and an ordered feature list. Plans are immutable once
// created; the catalog assigns IDs from a global monotonic counter starting
// at 1.
type Plan struct {
	ID           int64
	Name         string
	Price        int64
	DurationDays int
	Features     []string
	CreatedAt    time.Time
}

func (p *Plan) IsZero() bool { return p == nil || p.ID == 0 }

// NewPlan validates and constructs a plan. The ID is left zero; the catalog
// assigns it on save.
func NewPlan(name string, price int64, durationDays int, features []string, createdAt time.Time) (*Plan, error) {
	if name == "" || price < 0 || durationDays <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	fs := make([]string, len(features))
	copy(fs, features)
	return &Plan{
		Name:         name,
		Price:        price,
		DurationDays: durationDays,
		Features:     fs,
		CreatedAt:    createdAt,
	}, nil
}
