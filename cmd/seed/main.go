package main

import (
	"context"
	"flag"
	"log"

	"subscription-billing-ledger/internal/config"
	"subscription-billing-ledger/internal/infra/clock"
	pg "subscription-billing-ledger/internal/infra/db/postgres"
	"subscription-billing-ledger/internal/usecase"
)

// Seeds the schema and a small demo catalog into Postgres.
func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig(*cfgPath, false)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Store.Backend != "postgres" {
		log.Fatalf("seed requires store.backend=postgres, got %q", cfg.Store.Backend)
	}

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 5)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	if err := pg.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("schema: %v", err)
	}
	log.Println("schema ensured")

	planUC := usecase.NewPlanUseCase(pg.NewPostgresPlanRepo(pool), clock.System{})

	existing, err := planUC.List(ctx)
	if err != nil {
		log.Fatalf("list plans: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("catalog already has %d plans, skipping seed", len(existing))
		return
	}

	seed := []struct {
		name     string
		price    int64
		days     int
		features []string
	}{
		{"Basic", 1000, 30, []string{"feature1"}},
		{"Premium", 2000, 60, []string{"feature1", "feature2", "feature3"}},
		{"Gold", 3000, 90, []string{"feature1", "feature2", "feature3", "feature4"}},
	}
	for _, p := range seed {
		id, err := planUC.Create(ctx, p.name, p.price, p.days, p.features)
		if err != nil {
			log.Fatalf("create plan %s: %v", p.name, err)
		}
		log.Printf("created plan %d (%s)", id, p.name)
	}
}
