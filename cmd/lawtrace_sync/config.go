package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/hyeonlab/lawtrace/pkg/config/env"
)

type SyncConfig struct {
	DatabaseURL  string
	RegistryURL  string
	RegistryKey  string
	Mode         string // priority | recent | catalog
	PlanPath     string
	RecentDays   int
	PageSize     int
	Delay        time.Duration
	FetchTimeout time.Duration
}

func LoadConfig() (*SyncConfig, error) {
	if err := env.LoadDotEnv(os.Getenv("ENV"), "cmd/lawtrace_sync/.env"); err != nil {
		slog.Info("Skipping .env environment variables...", "error", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	registryURL := os.Getenv("REGISTRY_BASE_URL")
	if registryURL == "" {
		registryURL = "https://www.law.go.kr/DRF"
	}

	registryKey := os.Getenv("REGISTRY_API_KEY")
	if registryKey == "" {
		return nil, fmt.Errorf("REGISTRY_API_KEY environment variable is not set")
	}

	mode := os.Getenv("SYNC_MODE")
	switch mode {
	case "":
		mode = "priority"
	case "priority", "recent", "catalog":
	default:
		return nil, fmt.Errorf("unknown SYNC_MODE %q", mode)
	}

	planPath := os.Getenv("SYNC_PLAN_PATH")
	if mode == "priority" && planPath == "" {
		return nil, fmt.Errorf("SYNC_PLAN_PATH is required in priority mode")
	}

	return &SyncConfig{
		DatabaseURL:  dbURL,
		RegistryURL:  registryURL,
		RegistryKey:  registryKey,
		Mode:         mode,
		PlanPath:     planPath,
		RecentDays:   envInt("SYNC_RECENT_DAYS", 7),
		PageSize:     envInt("SYNC_PAGE_SIZE", 100),
		Delay:        time.Duration(envInt("SYNC_DELAY_MS", 500)) * time.Millisecond,
		FetchTimeout: time.Duration(envInt("FETCH_TIMEOUT_SEC", 15)) * time.Second,
	}, nil
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
