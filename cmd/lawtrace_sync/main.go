package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/hyeonlab/lawtrace/internal/registry"
	"github.com/hyeonlab/lawtrace/internal/storage/pg"
	"github.com/hyeonlab/lawtrace/internal/sync"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// A run stops between statute iterations on interrupt, never mid-fetch.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pool, err := pg.NewPool(ctx, pg.PoolConfig{ConnStr: cfg.DatabaseURL})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	store := pg.NewStore(pool)
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		slog.Error("failed to apply schema", "error", err)
		os.Exit(1)
	}

	client := registry.NewHTTPClient(cfg.RegistryURL, cfg.RegistryKey,
		registry.WithTimeout(cfg.FetchTimeout),
	)

	source, err := newSource(cfg, client)
	if err != nil {
		slog.Error("failed to create sync source", "error", err)
		os.Exit(1)
	}

	orch := sync.NewOrchestrator(client, store, sync.WithDelay(cfg.Delay))

	report, err := orch.Run(ctx, source)
	if err != nil {
		slog.Error("sync run aborted", "error", err, "errored", report.Errored)
		os.Exit(1)
	}

	for _, warning := range report.Warnings {
		slog.Warn("data integrity warning", "detail", warning)
	}
	if report.Errored > 0 {
		os.Exit(2)
	}
}

func newSource(cfg *SyncConfig, client registry.Client) (sync.Source, error) {
	switch cfg.Mode {
	case "priority":
		file, err := os.Open(cfg.PlanPath)
		if err != nil {
			return nil, fmt.Errorf("open sync plan: %w", err)
		}
		defer file.Close()

		plan, err := sync.LoadPlan(file)
		if err != nil {
			return nil, err
		}
		return sync.NewPrioritySource(client, plan.Priority), nil
	case "recent":
		return sync.NewRecentSource(client, cfg.RecentDays), nil
	case "catalog":
		return sync.NewCatalogSource(client, cfg.PageSize), nil
	}
	return nil, fmt.Errorf("unknown sync mode %q", cfg.Mode)
}
