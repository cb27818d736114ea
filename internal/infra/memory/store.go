package memory

import (
	"sync"

	"subscription-billing-ledger/internal/domain/model"
)

// Store holds the four keyspaces (balances, receipts, plans, subscriptions)
// plus the two global counters in process memory. It stands in for the
// host's transactional storage layer: one mutex serializes every call, so
// each operation is a single all-or-nothing unit, and WithTx rolls back to a
// snapshot on error. Useful for tests and for running the service without
// Postgres.
type Store struct {
	mu sync.Mutex

	balances      map[string]int64
	receipts      map[string]map[int64]*model.PaymentReceipt
	plans         map[int64]*model.Plan
	subscriptions map[string]*model.Subscription
	lastPaymentID int64
	lastPlanID    int64
}

func NewStore() *Store {
	return &Store{
		balances:      make(map[string]int64),
		receipts:      make(map[string]map[int64]*model.PaymentReceipt),
		plans:         make(map[int64]*model.Plan),
		subscriptions: make(map[string]*model.Subscription),
	}
}

// txToken marks calls running inside a WithTx callback, which already holds
// the store lock.
type txToken struct{ s *Store }

// enter acquires the store lock unless tx proves the caller already holds it.
// Returns the matching release func.
func (s *Store) enter(tx interface{}) func() {
	if t, ok := tx.(*txToken); ok && t.s == s {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type snapshot struct {
	balances      map[string]int64
	receipts      map[string]map[int64]*model.PaymentReceipt
	subscriptions map[string]*model.Subscription
	lastPaymentID int64
	lastPlanID    int64
}

// take copies the mutable keyspaces. Receipt and subscription values are
// immutable once stored, so sharing the pointers is safe; only the maps are
// cloned. Plans are never mutated or deleted, so the plan map is left out
// and restored by counter alone.
func (s *Store) take() snapshot {
	bals := make(map[string]int64, len(s.balances))
	for k, v := range s.balances {
		bals[k] = v
	}
	rcpts := make(map[string]map[int64]*model.PaymentReceipt, len(s.receipts))
	for acct, byID := range s.receipts {
		inner := make(map[int64]*model.PaymentReceipt, len(byID))
		for id, r := range byID {
			inner[id] = r
		}
		rcpts[acct] = inner
	}
	subs := make(map[string]*model.Subscription, len(s.subscriptions))
	for k, v := range s.subscriptions {
		subs[k] = v
	}
	return snapshot{
		balances:      bals,
		receipts:      rcpts,
		subscriptions: subs,
		lastPaymentID: s.lastPaymentID,
		lastPlanID:    s.lastPlanID,
	}
}

func (s *Store) restore(snap snapshot) {
	s.balances = snap.balances
	s.receipts = snap.receipts
	s.subscriptions = snap.subscriptions
	s.lastPaymentID = snap.lastPaymentID
	for id := range s.plans {
		if id > snap.lastPlanID {
			delete(s.plans, id)
		}
	}
	s.lastPlanID = snap.lastPlanID
}
