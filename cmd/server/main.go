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

	"github.com/go-chi/chi/v5"

	httpadapter "neowatch/internal/adapters/http"
	"neowatch/internal/adapters/nasa"
	"neowatch/internal/cache"
	"neowatch/internal/config"
	"neowatch/internal/logging"
	"neowatch/internal/ports"
	neosvc "neowatch/internal/services/neo"
)

func main() {
	logging.Init("neowatch")

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("config", "warning", err)
	}

	feed := nasa.New(cfg.NasaBaseURL, cfg.NasaAPIKey, cfg.UpstreamTimeout)
	store := cache.New(cfg.CacheTTL, nil)

	// Wire adapters to the service through its ports.
	var _ ports.Feed = feed
	var _ ports.Cache = store

	neos := neosvc.New(feed, store, nil)
	srv := httpadapter.New(neos, cfg.AllowedOrigins)

	r := chi.NewRouter()
	r.Mount("/", srv.Routes())

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- server.ListenAndServe() }()
	slog.Info("listening", "addr", cfg.ListenAddr, "cache_ttl", cfg.CacheTTL.String())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		slog.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("shutdown", "error", err)
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}
}
