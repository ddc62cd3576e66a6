package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/hyeonlab/lawtrace/internal/registry"
	"github.com/hyeonlab/lawtrace/internal/router"
	"github.com/hyeonlab/lawtrace/internal/server"
	"github.com/hyeonlab/lawtrace/internal/storage/pg"
	"github.com/hyeonlab/lawtrace/internal/verify"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

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

	var svcOpts []verify.ServiceOption
	if cfg.RegistryKey != "" {
		client := registry.NewHTTPClient(cfg.RegistryURL, cfg.RegistryKey)
		svcOpts = append(svcOpts, verify.WithPrecedentSource(client))
	} else {
		slog.Info("REGISTRY_API_KEY not set, precedent checks answer from the store only")
	}
	svc := verify.NewService(store, svcOpts...)

	e := echo.New()
	srv := server.NewServer(e, cfg.Server)

	router.NewAuditRouter(e, svc).Bind()
	router.NewHealthRouter(e, store).Bind()

	slog.Info("Starting lawtrace API", "port", cfg.Server.Port)
	if err := srv.Start(); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}
