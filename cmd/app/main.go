package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"subscription-billing-ledger/internal/config"
	"subscription-billing-ledger/internal/domain/ports/repository"
	"subscription-billing-ledger/internal/infra/api"
	"subscription-billing-ledger/internal/infra/clock"
	pg "subscription-billing-ledger/internal/infra/db/postgres"
	"subscription-billing-ledger/internal/infra/logging"
	"subscription-billing-ledger/internal/infra/memory"
	"subscription-billing-ledger/internal/infra/metrics"
	red "subscription-billing-ledger/internal/infra/redis"
	"subscription-billing-ledger/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "development mode (console logs)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()

	// ---- Storage ----
	var (
		balanceRepo repository.BalanceRepository
		paymentRepo repository.PaymentRepository
		planRepo    repository.PlanRepository
		subRepo     repository.SubscriptionRepository
		tm          repository.TransactionManager
	)
	switch cfg.Store.Backend {
	case "postgres":
		pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, cfg.Database.PoolSize)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		defer pool.Close()
		if err := pg.EnsureSchema(ctx, pool); err != nil {
			log.Fatalf("schema: %v", err)
		}
		balanceRepo = pg.NewPostgresBalanceRepo(pool)
		paymentRepo = pg.NewPostgresPaymentRepo(pool)
		subRepo = pg.NewPostgresSubscriptionRepo(pool)
		tm = pg.NewTxManager(pool)

		planRepo = pg.NewPostgresPlanRepo(pool)
		if cfg.Redis.Enabled {
			redisClient, err := red.NewClient(ctx, &cfg.Redis)
			if err != nil {
				log.Fatalf("redis: %v", err)
			}
			defer redisClient.Close()
			planRepo = pg.NewPlanRepoCacheDecorator(planRepo, redisClient, cfg.Redis.TTL)
		}
	case "memory":
		store := memory.NewStore()
		balanceRepo = memory.NewBalanceRepo(store)
		paymentRepo = memory.NewPaymentRepo(store)
		planRepo = memory.NewPlanRepo(store)
		subRepo = memory.NewSubscriptionRepo(store)
		tm = memory.NewTxManager(store)
	default:
		log.Fatalf("unknown store backend %q", cfg.Store.Backend)
	}
	logger.Info().Str("backend", cfg.Store.Backend).Msg("storage ready")

	// ---- Use cases ----
	clk := clock.System{}
	billingUC := usecase.NewBillingUseCase(balanceRepo, paymentRepo, planRepo, tm, clk, logger)
	planUC := usecase.NewPlanUseCase(planRepo, clk)
	subUC := usecase.NewSubscriptionUseCase(planRepo, subRepo, clk)

	// ---- HTTP API ----
	auth := api.NewAuthManager(cfg.API.JWTSecret, 24*time.Hour)
	server := api.NewServer(billingUC, planUC, subUC, auth, logger)

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.API.Port),
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info().Int("port", cfg.API.Port).Msg("api listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server stopped")
			cancel()
		}
	}()

	// ---- Shutdown ----
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
}
