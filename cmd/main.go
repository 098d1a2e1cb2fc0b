package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/solace-cli/solace/internal/client"
	"github.com/solace-cli/solace/internal/services"
	"github.com/solace-cli/solace/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	// .env can point at an alternate config via SOLACE_CONFIG and override
	// the backend target via SOLACE_DEV / SOLACE_BACKEND_HOST.
	godotenv.Load()

	configPath := resolveConfigPath()
	config := shared.DefaultConfig()
	if configPath != "" {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config, using defaults", "path", configPath, "error", err)
		}
	}
	applyEnvOverrides(config)

	tokens := shared.TokenStore(shared.NewMemoryTokenStore(nil))
	if store, err := shared.NewFileTokenStore(credentialsPath()); err == nil {
		tokens = store
	} else {
		logger.Warn("credential store unavailable, tokens will not persist", "error", err)
	}

	api := client.New(client.Opts{
		Policy: client.PolicyFromConfig(config.Backend),
		Tokens: tokens,
		Logger: logger,
		OnAuthExpired: func() {
			logger.Warn("session expired, run 'solace auth login' to sign in again")
		},
	})

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Services:   services.New(api, logger),
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "solace",
		Usage:    "Companion client for the grief-support backend",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}

// resolveConfigPath prefers SOLACE_CONFIG, then ./config.toml, then
// ~/.solace/config.toml. Returns "" when none exist.
func resolveConfigPath() string {
	if path := os.Getenv("SOLACE_CONFIG"); path != "" {
		return path
	}

	if _, err := os.Stat("config.toml"); err == nil {
		return "config.toml"
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(homeDir, ".solace", "config.toml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// applyEnvOverrides lets the environment steer the backend target without
// editing the config file.
func applyEnvOverrides(config *shared.Config) {
	if dev := os.Getenv("SOLACE_DEV"); dev != "" {
		config.Backend.Dev = dev == "1" || strings.EqualFold(dev, "true")
	}

	if host := os.Getenv("SOLACE_BACKEND_HOST"); host != "" {
		config.Backend.Host = host
	}
}

func credentialsPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".solace-token.json"
	}
	return filepath.Join(homeDir, ".solace", "token.json")
}
