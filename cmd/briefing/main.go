package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/lueurxax/search-intel-brief/internal/app"
	"github.com/lueurxax/search-intel-brief/internal/platform/config"
	"github.com/lueurxax/search-intel-brief/internal/platform/observability"
)

func main() {
	simulate := flag.Bool("simulate", false, "Use canned narrative instead of calling providers")
	scheduled := flag.Bool("schedule", false, "Exit unless today is the bi-weekly slot")
	flag.BoolVar(scheduled, "cron", false, "Alias for -schedule")
	configPath := flag.String("config", "", "Path to the YAML catalogue (overrides CONFIG_PATH)")

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := newLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Output.HealthPort > 0 {
		health := observability.NewServer(cfg.Output.HealthPort, &logger)
		health.SetReady(true)

		go func() {
			if err := health.Start(ctx); err != nil {
				logger.Error().Err(err).Msg("health check server error")
			}
		}()
	}

	application := app.New(cfg, &logger)

	summary, err := application.Run(ctx, app.RunOptions{Simulate: *simulate, Schedule: *scheduled})
	if err != nil {
		if app.IsCanceled(err) {
			logger.Info().Msg("run canceled")
			return
		}

		logger.Fatal().Err(err).Msg("briefing run failed")
	}

	if summary.Skipped {
		return
	}

	for _, path := range summary.Paths {
		logger.Info().Str("path", path).Msg("generated")
	}
}

func newLogger(appEnv, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if appEnv == "local" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).Level(lvl).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}
