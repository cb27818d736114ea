package usecase

import (
	"context"
	"sync"
	"time"

	"subscription-billing-ledger/internal/domain"
	"subscription-billing-ledger/internal/domain/model"
	"subscription-billing-ledger/internal/domain/ports/repository"
)

// fakeClock returns a fixed instant that tests can move forward.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(unix int64) *fakeClock {
	return &fakeClock{now: time.Unix(unix, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// memBalanceRepo is a small in-memory implementation used by unit tests.
type memBalanceRepo struct {
	mu        sync.RWMutex
	store     map[string]int64
	creditErr error // used by tests to simulate storage failures
}

func newMemBalanceRepo() *memBalanceRepo {
	return &memBalanceRepo{store: make(map[string]int64)}
}

func (m *memBalanceRepo) Credit(ctx context.Context, tx repository.Tx, account string, amount int64) error {
	if m.creditErr != nil {
		return m.creditErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[account] += amount
	return nil
}

func (m *memBalanceRepo) Amount(ctx context.Context, tx repository.Tx, account string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store[account], nil
}

func (m *memBalanceRepo) Debit(ctx context.Context, tx repository.Tx, account string, amount int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.store[account] < amount {
		return domain.ErrInsufficientBalance
	}
	m.store[account] -= amount
	return nil
}

// memPaymentRepo keeps receipts keyed by account then payment id.
type memPaymentRepo struct {
	mu      sync.RWMutex
	store   map[string]map[int64]*model.PaymentReceipt
	lastID  int64
	saveErr error
}

func newMemPaymentRepo() *memPaymentRepo {
	return &memPaymentRepo{store: make(map[string]map[int64]*model.PaymentReceipt)}
}

func (m *memPaymentRepo) NextID(ctx context.Context, tx repository.Tx) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastID++
	return m.lastID, nil
}

func (m *memPaymentRepo) Save(ctx context.Context, tx repository.Tx, receipt *model.PaymentReceipt) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	byID := m.store[receipt.Account]
	if byID == nil {
		byID = make(map[int64]*model.PaymentReceipt)
		m.store[receipt.Account] = byID
	}
	cp := *receipt
	byID[receipt.ID] = &cp
	return nil
}

func (m *memPaymentRepo) Find(ctx context.Context, tx repository.Tx, account string, paymentID int64) (*model.PaymentReceipt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.store[account][paymentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

// memPlanRepo assigns ids from its own counter like the real catalog.
type memPlanRepo struct {
	mu     sync.RWMutex
	store  map[int64]*model.Plan
	lastID int64
}

func newMemPlanRepo() *memPlanRepo {
	return &memPlanRepo{store: make(map[int64]*model.Plan)}
}

func (m *memPlanRepo) Create(ctx context.Context, tx repository.Tx, plan *model.Plan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastID++
	plan.ID = m.lastID
	cp := *plan
	m.store[plan.ID] = &cp
	return nil
}

func (m *memPlanRepo) FindByID(ctx context.Context, tx repository.Tx, id int64) (*model.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memPlanRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Plan, 0, len(m.store))
	for _, p := range m.store {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

// memSubscriptionRepo keeps one record per account.
type memSubscriptionRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Subscription
}

func newMemSubscriptionRepo() *memSubscriptionRepo {
	return &memSubscriptionRepo{store: make(map[string]*model.Subscription)}
}

func (m *memSubscriptionRepo) Save(ctx context.Context, tx repository.Tx, sub *model.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *sub
	m.store[sub.Account] = &cp
	return nil
}

func (m *memSubscriptionRepo) FindByAccount(ctx context.Context, tx repository.Tx, account string) (*model.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.store[account]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

// memTxManager runs the callback directly; rollback behavior is covered by
// the infra store tests.
type memTxManager struct{}

func (memTxManager) WithTx(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	return fn(ctx, nil)
}
