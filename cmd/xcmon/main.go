package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/kheteswar/f5-xc-create-bulk-http-monitor/internal/apps/xcmon"
	"github.com/kheteswar/f5-xc-create-bulk-http-monitor/internal/logging"
	"github.com/pkg/errors"
)

const (
	exitFailure         = 1
	exitMissingAPIToken = 2
)

func main() {
	// A .env file is optional; real environment variables win below.
	_ = godotenv.Load()

	bootstrapLogger, err := logging.NewLogger("")
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}

	cfg := xcmon.LoadFlag(bootstrapLogger)

	logger, err := logging.NewLogger(*cfg.LogDir)
	if err != nil {
		bootstrapLogger.Sugar().Fatalf("Error creating logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	app, err := xcmon.NewApp(xcmon.Options{
		Tenant:     *cfg.Tenant,
		Input:      *cfg.Input,
		Namespace:  *cfg.Namespace,
		APIToken:   *cfg.APIToken,
		BaseDomain: *cfg.BaseDomain,
		Insecure:   *cfg.Insecure,
		DryRun:     *cfg.DryRun,
	}, logger)
	if err != nil {
		logger.Sugar().Errorf("Error creating app: %v", err)
		if errors.Is(err, xcmon.ErrMissingAPIToken) {
			os.Exit(exitMissingAPIToken)
		}
		os.Exit(exitFailure)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		logger.Sugar().Errorf("Run failed: %v", err)
		_ = logger.Sync()
		os.Exit(exitFailure)
	}
}
