package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"partsimport/internal/catalog"
	"partsimport/internal/config"
	"partsimport/internal/logger"
	"partsimport/internal/pipeline"
	"partsimport/internal/scrape"
	"partsimport/internal/server"
)

func main() {
	cfg, err := config.Load()
	must(err)

	log := logger.NewLogger(cfg.LogLevel)
	cat, err := catalog.Load(cfg.CatalogPath)
	must(err)

	processor := pipeline.NewProcessingService(cat, cfg, log)
	source, err := scrape.NewDirSourceFromConfig(cfg)
	must(err)
	importer := scrape.NewImportService(source, processor, log).
		WithRateLimit(cfg.AcquirePerMinute, cfg.AcquireBurst)
	router := server.SetupRouter(cfg, server.NewHandler(importer, processor, log))

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.ServerEnv, "snapshots", cfg.SnapshotDir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	shutdownCtx, stop := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeout)*time.Second)
	defer stop()
	must(srv.Shutdown(shutdownCtx))
	log.Info("server stopped")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
