package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/canvasdoc/internal/api"
	"github.com/dgallion1/canvasdoc/internal/config"
	"github.com/dgallion1/canvasdoc/internal/export"
	"github.com/dgallion1/canvasdoc/internal/store"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open store", "error", err)
		os.Exit(1)
	}

	// Initialize export pipeline.
	exporter := export.NewExporter(st, log)
	orch := export.NewOrchestrator(exporter, log, cfg.WorkerCount, cfg.MaxQueueSize, cfg.JobTTL)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, st, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		st.Close()
	}()

	log.Info("starting canvasdoc", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
