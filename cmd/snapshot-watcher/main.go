package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"partsimport/internal/catalog"
	"partsimport/internal/config"
	"partsimport/internal/listener"
	"partsimport/internal/logger"
	"partsimport/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	must(err)

	log := logger.NewLogger(cfg.LogLevel)
	cat, err := catalog.Load(cfg.CatalogPath)
	must(err)

	svc := listener.NewService(cfg, pipeline.NewProcessingService(cat, cfg, log), log)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Info("watching snapshots", "dir", cfg.SnapshotDir, "interval_sec", cfg.WatchIntervalSec)
	must(svc.Run(ctx))
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
