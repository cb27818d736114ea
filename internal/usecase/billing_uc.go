package usecase

import (
	"context"

	"subscription-billing-ledger/internal/domain"
	"subscription-billing-ledger/internal/domain/model"
	"subscription-billing-ledger/internal/domain/ports"
	"subscription-billing-ledger/internal/domain/ports/repository"
	"subscription-billing-ledger/internal/infra/logging"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ BillingUseCase = (*billingUC)(nil)

// BillingUseCase owns per-account prepaid balances and the receipt log, and
// executes purchases against the plan catalog.
type BillingUseCase interface {
	// AddFunds credits the caller's balance. Never fails for amount >= 0.
	AddFunds(ctx context.Context, account string, amount int64) error
	// GetBalance returns the balance, 0 for accounts never credited.
	GetBalance(ctx context.Context, account string) (int64, error)
	// ProcessPayment debits the plan's price and mints a receipt, returning
	// the new payment id. Fails with domain.ErrNotFound when the plan does
	// not exist and domain.ErrInsufficientBalance when the balance cannot
	// cover the price; either failure leaves all state unchanged.
	ProcessPayment(ctx context.Context, account string, planID int64) (int64, error)
	// GetPayment returns the receipt at (account, paymentID) or
	// domain.ErrNotFound.
	GetPayment(ctx context.Context, account string, paymentID int64) (*model.PaymentReceipt, error)
}

type billingUC struct {
	balances repository.BalanceRepository
	payments repository.PaymentRepository
	plans    repository.PlanRepository
	tm       repository.TransactionManager
	clock    ports.Clock
	log      *zerolog.Logger
}

func NewBillingUseCase(
	balances repository.BalanceRepository,
	payments repository.PaymentRepository,
	plans repository.PlanRepository,
	tm repository.TransactionManager,
	clock ports.Clock,
	logger *zerolog.Logger,
) *billingUC {
	return &billingUC{balances: balances, payments: payments, plans: plans, tm: tm, clock: clock, log: logger}
}

func (u *billingUC) AddFunds(ctx context.Context, account string, amount int64) error {
	defer logging.TraceDuration(u.log, "BillingUC.AddFunds")()

	if account == "" || amount < 0 {
		return domain.ErrInvalidArgument
	}
	return u.balances.Credit(ctx, nil, account, amount)
}

func (u *billingUC) GetBalance(ctx context.Context, account string) (int64, error) {
	if account == "" {
		return 0, domain.ErrInvalidArgument
	}
	return u.balances.Amount(ctx, nil, account)
}

// ProcessPayment runs the debit, the counter increment and the receipt
// insert in one transaction. The plan lookup happens first: a missing plan
// rejects the payment before any state is touched.
func (u *billingUC) ProcessPayment(ctx context.Context, account string, planID int64) (int64, error) {
	defer logging.TraceDuration(u.log, "BillingUC.ProcessPayment")()

	if account == "" || planID <= 0 {
		return 0, domain.ErrInvalidArgument
	}
	plan, err := u.plans.FindByID(ctx, nil, planID)
	if err != nil {
		return 0, err
	}

	var paymentID int64
	err = u.tm.WithTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		if err := u.balances.Debit(ctx, tx, account, plan.Price); err != nil {
			return err
		}
		id, err := u.payments.NextID(ctx, tx)
		if err != nil {
			return err
		}
		receipt, err := model.NewPaymentReceipt(account, plan.Price, u.clock.Now().Unix(), plan.ID)
		if err != nil {
			return err
		}
		receipt.ID = id
		if err := u.payments.Save(ctx, tx, receipt); err != nil {
			return err
		}
		paymentID = id
		return nil
	})
	if err != nil {
		return 0, err
	}
	return paymentID, nil
}

func (u *billingUC) GetPayment(ctx context.Context, account string, paymentID int64) (*model.PaymentReceipt, error) {
	if account == "" {
		return nil, domain.ErrInvalidArgument
	}
	if paymentID <= 0 {
		// Ids start at 1, so nothing can exist here.
		return nil, domain.ErrNotFound
	}
	return u.payments.Find(ctx, nil, account, paymentID)
}
