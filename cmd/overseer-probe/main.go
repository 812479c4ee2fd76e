// Command overseer-probe replays a scripted gameplay session against an
// Overseer server to check that telemetry arrives.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/SebastienMelki/overseer/internal/observability"
	"github.com/SebastienMelki/overseer/internal/scenario"
	overseer "github.com/SebastienMelki/overseer/sdk/go"
)

// Config holds all probe configuration.
type Config struct {
	// LogLevel is the log level (debug, info, warn, error)
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// LogFormat is the log format (json, text)
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// MetricsAddr serves Prometheus metrics when set (e.g., ":9090")
	MetricsAddr string `env:"METRICS_ADDR"`

	// Scenario is a YAML scenario file; empty replays one event of each type
	Scenario string `env:"PROBE_SCENARIO"`

	// PlayerID is used by the built-in scenario
	PlayerID string `env:"PROBE_PLAYER_ID" envDefault:"overseer-probe"`

	// Telemetry client configuration
	Telemetry overseer.Config `envPrefix:""`
}

func main() {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Error("failed to parse config", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("probe failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg Config, logger *slog.Logger) error {
	sc, err := loadScenario(cfg)
	if err != nil {
		return err
	}

	obs, err := observability.New("overseer-probe", overseer.SDKVersion)
	if err != nil {
		return err
	}
	defer func() {
		if err := obs.Shutdown(context.Background()); err != nil {
			logger.Error("metrics shutdown error", "error", err)
		}
	}()

	if cfg.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           obs.MetricsHandler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server error", "error", err)
			}
		}()
		defer srv.Close()
		logger.Info("serving metrics", "addr", cfg.MetricsAddr)
	}

	client, err := overseer.New(cfg.Telemetry,
		overseer.WithLogger(logger),
		overseer.WithMeter(obs.Meter()),
	)
	if err != nil {
		return err
	}

	logger.Info("starting overseer probe",
		"endpoint", cfg.Telemetry.Endpoint,
		"player_id", sc.PlayerID,
		"steps", len(sc.Steps),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sent, err := scenario.Run(ctx, client, sc, logger)
	if errors.Is(err, context.Canceled) {
		logger.Info("received shutdown signal", "sent", sent)
		return nil
	}
	return err
}

// loadScenario reads the configured scenario or falls back to the built-in one.
func loadScenario(cfg Config) (*scenario.Scenario, error) {
	if cfg.Scenario == "" {
		return scenario.Builtin(cfg.PlayerID), nil
	}
	return scenario.Load(cfg.Scenario)
}

// setupLogger creates a logger based on configuration.
func setupLogger(level, format string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
