package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/casgest/internal/api"
	"github.com/dgallion1/casgest/internal/config"
	"github.com/dgallion1/casgest/internal/extract"
	"github.com/dgallion1/casgest/internal/fetch"
	"github.com/dgallion1/casgest/internal/pathstore"
	"github.com/dgallion1/casgest/internal/pipeline"
	"github.com/dgallion1/casgest/internal/store"
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

	// Initialize clients.
	st, err := store.New(cfg.DataDir)
	if err != nil {
		log.Error("data directory", "error", err)
		os.Exit(1)
	}
	fetcher := fetch.NewClient(cfg.ListingURL, cfg.FetchTimeout, cfg.MaxFetchBytes, log.With("component", "fetch"))
	builder := extract.NewBuilder(cfg.BodyStartLine, log.With("component", "extract"))

	var (
		ps        *pathstore.Client
		publisher pipeline.Publisher
		records   api.Records
	)
	if cfg.PathstoreEnabled() {
		ps = pathstore.NewClient(cfg.PathstoreURL, cfg.PathstoreAPIKey)
		publisher, records = ps, ps
	}

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, builder, publisher, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, st, fetcher, records, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute, // month fetches run inside the request
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		orch.Stop()
		fetcher.Close()
		if ps != nil {
			ps.Close()
		}
	}()

	log.Info("starting casgest",
		"port", cfg.Port,
		"data_dir", st.Dir(),
		"pathstore", cfg.PathstoreEnabled(),
		"workers", cfg.WorkerCount,
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
