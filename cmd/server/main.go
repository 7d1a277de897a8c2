package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"tontine/internal/platform/config"
	"tontine/internal/platform/httpserver"
	"tontine/internal/platform/logger"
	"tontine/internal/platform/metrics"
	"tontine/internal/tontine/service"
	"tontine/internal/tontine/store"
	httptransport "tontine/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the service and engine
// packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	st := store.New(cfg.Settings)
	svc, err := service.New(st,
		service.WithLogger(log),
		service.WithMetrics(metrics.New()),
	)
	if err != nil {
		log.Error("service init failed", "error", err)
		os.Exit(1)
	}

	router := httptransport.NewRouter(httptransport.NewHandler(svc, log))
	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting tontine ledger", "addr", cfg.Addr, "currency", cfg.Settings.Currency)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
