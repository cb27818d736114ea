package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"subscription-billing-ledger/internal/domain"
	"subscription-billing-ledger/internal/infra/metrics"
	"subscription-billing-ledger/internal/usecase"
)

// Server exposes the ledger operations over HTTP. Mutations act on the
// authenticated caller; reads take the account as a path parameter.
type Server struct {
	billing usecase.BillingUseCase
	plans   *usecase.PlanUseCase
	subs    *usecase.SubscriptionUseCase
	auth    *AuthManager
	log     *zerolog.Logger
}

func NewServer(
	billing usecase.BillingUseCase,
	plans *usecase.PlanUseCase,
	subs *usecase.SubscriptionUseCase,
	auth *AuthManager,
	logger *zerolog.Logger,
) *Server {
	return &Server{billing: billing, plans: plans, subs: subs, auth: auth, log: logger}
}

// Router builds the v1 API.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(TraceID, Recover(s.log), RequestLog(s.log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(s.auth.Authenticate)

		r.Post("/funds", s.handleAddFunds)
		r.Post("/payments", s.handleProcessPayment)
		r.Post("/subscriptions", s.handleSubscribe)

		r.With(RequireAdmin).Post("/plans", s.handleCreatePlan)
		r.Get("/plans", s.handleListPlans)
		r.Get("/plans/{planID}", s.handleGetPlan)

		r.Route("/accounts/{account}", func(r chi.Router) {
			r.Get("/balance", s.handleGetBalance)
			r.Get("/payments/{paymentID}", s.handleGetPayment)
			r.Get("/subscription", s.handleGetSubscription)
			r.Get("/subscription/active", s.handleIsActive)
		})
	})
	return r
}

type addFundsRequest struct {
	Amount int64 `json:"amount"`
}

func (s *Server) handleAddFunds(w http.ResponseWriter, r *http.Request) {
	account, ok := Caller(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var req addFundsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrInvalidArgument)
		return
	}
	if err := s.billing.AddFunds(r.Context(), account, req.Amount); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	account := chi.URLParam(r, "account")
	balance, err := s.billing.GetBalance(r.Context(), account)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"account": account, "balance": balance})
}

type processPaymentRequest struct {
	PlanID int64 `json:"plan_id"`
}

func (s *Server) handleProcessPayment(w http.ResponseWriter, r *http.Request) {
	account, ok := Caller(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var req processPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrInvalidArgument)
		return
	}
	paymentID, err := s.billing.ProcessPayment(r.Context(), account, req.PlanID)
	if err != nil {
		metrics.IncPayment("rejected")
		writeError(w, err)
		return
	}
	metrics.IncPayment("committed")
	if receipt, err := s.billing.GetPayment(r.Context(), account, paymentID); err == nil {
		metrics.AddPaymentRevenue(receipt.Amount)
	}
	writeJSON(w, http.StatusCreated, map[string]any{"payment_id": paymentID})
}

func (s *Server) handleGetPayment(w http.ResponseWriter, r *http.Request) {
	account := chi.URLParam(r, "account")
	paymentID, err := strconv.ParseInt(chi.URLParam(r, "paymentID"), 10, 64)
	if err != nil {
		writeError(w, domain.ErrInvalidArgument)
		return
	}
	receipt, err := s.billing.GetPayment(r.Context(), account, paymentID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"account":    receipt.Account,
		"payment_id": receipt.ID,
		"amount":     receipt.Amount,
		"timestamp":  receipt.Timestamp,
		"plan_id":    receipt.PlanID,
	})
}

type createPlanRequest struct {
	Name         string   `json:"name"`
	Price        int64    `json:"price"`
	DurationDays int      `json:"duration_days"`
	Features     []string `json:"features"`
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var req createPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrInvalidArgument)
		return
	}
	planID, err := s.plans.Create(r.Context(), req.Name, req.Price, req.DurationDays, req.Features)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"plan_id": planID})
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	planID, err := strconv.ParseInt(chi.URLParam(r, "planID"), 10, 64)
	if err != nil {
		writeError(w, domain.ErrInvalidArgument)
		return
	}
	plan, err := s.plans.Get(r.Context(), planID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, planBody(plan.ID, plan.Name, plan.Price, plan.DurationDays, plan.Features))
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.plans.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]map[string]any, 0, len(plans))
	for _, p := range plans {
		out = append(out, planBody(p.ID, p.Name, p.Price, p.DurationDays, p.Features))
	}
	writeJSON(w, http.StatusOK, map[string]any{"plans": out})
}

type subscribeRequest struct {
	PlanID int64 `json:"plan_id"`
}

func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	account, ok := Caller(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrInvalidArgument)
		return
	}
	sub, err := s.subs.Subscribe(r.Context(), account, req.PlanID)
	if err != nil {
		writeError(w, err)
		return
	}
	metrics.IncSubscriptionStarted()
	writeJSON(w, http.StatusCreated, subscriptionBody(sub.Account, sub.PlanID, sub.StartTime, sub.EndTime))
}

func (s *Server) handleGetSubscription(w http.ResponseWriter, r *http.Request) {
	account := chi.URLParam(r, "account")
	sub, err := s.subs.Get(r.Context(), account)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subscriptionBody(sub.Account, sub.PlanID, sub.StartTime, sub.EndTime))
}

func (s *Server) handleIsActive(w http.ResponseWriter, r *http.Request) {
	account := chi.URLParam(r, "account")
	active, err := s.subs.IsActive(r.Context(), account)
	if err != nil {
		writeError(w, err)
		return
	}
	metrics.IncSubscriptionCheck(active)
	writeJSON(w, http.StatusOK, map[string]any{"account": account, "active": active})
}

func planBody(id int64, name string, price int64, durationDays int, features []string) map[string]any {
	if features == nil {
		features = []string{}
	}
	return map[string]any{
		"plan_id":       id,
		"name":          name,
		"price":         price,
		"duration_days": durationDays,
		"features":      features,
	}
}

func subscriptionBody(account string, planID, start, end int64) map[string]any {
	return map[string]any{
		"account":    account,
		"plan_id":    planID,
		"start_time": start,
		"end_time":   end,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	var status int
	var code string
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrInsufficientBalance):
		status, code = http.StatusPaymentRequired, "insufficient_balance"
	case errors.Is(err, domain.ErrInvalidArgument):
		status, code = http.StatusBadRequest, "invalid_argument"
	default:
		status, code = http.StatusInternalServerError, "internal"
	}
	writeJSON(w, status, map[string]any{"error": code})
}
