package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"emotiguide/internal/app"
	"emotiguide/internal/config"
	"emotiguide/internal/kv"
	"emotiguide/internal/logger"
)

// storeOpener returns the backing store and a function releasing it.
type storeOpener func(ctx context.Context, log *zap.SugaredLogger) (kv.Store, func() error, error)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	open := func(ctx context.Context, log *zap.SugaredLogger) (kv.Store, func() error, error) {
		return app.OpenStore(ctx, cfg, log)
	}
	if err := newRootCmd(open, log).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
