package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/config"
)

// loadAppConfig loads the application configuration from the optional config
// and .env files plus TASKBOARD_* environment variables.
func loadAppConfig(configFile, envFile string) (*config.Config, error) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ConfigFile: configFile,
		EnvFile:    envFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return cfg, nil
}

// logAppConfig logs the effective configuration once the logger is set up.
func logAppConfig(logger *slog.Logger, cfg *config.Config) {
	logger.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Duration("shutdown_timeout", cfg.Server.ShutdownTimeout))

	logger.Debug("API configuration",
		slog.Int("default_page_limit", cfg.API.DefaultPageLimit),
		slog.Int("max_page_limit", cfg.API.MaxPageLimit),
		slog.Any("allowed_origins", cfg.Server.CORS.AllowedOrigins))
}
