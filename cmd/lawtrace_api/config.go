package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hyeonlab/lawtrace/internal/server"
	"github.com/hyeonlab/lawtrace/pkg/config/env"
)

type APIConfig struct {
	DatabaseURL string
	RegistryURL string
	RegistryKey string
	Server      *server.Config
}

func LoadConfig() (*APIConfig, error) {
	if err := env.LoadDotEnv(os.Getenv("ENV"), "cmd/lawtrace_api/.env"); err != nil {
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

	srvCfg, err := server.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load server config: %w", err)
	}

	return &APIConfig{
		DatabaseURL: dbURL,
		RegistryURL: registryURL,
		RegistryKey: os.Getenv("REGISTRY_API_KEY"),
		Server:      srvCfg,
	}, nil
}
