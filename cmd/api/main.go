// Package main is the entry point for the TripScout API server.
// It only wires dependencies together and starts the server.
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
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/tripscout/internal/config"
	"github.com/pkordes/tripscout/internal/handler"
	"github.com/pkordes/tripscout/internal/middleware"
	"github.com/pkordes/tripscout/internal/service"
	"github.com/pkordes/tripscout/internal/store"
	"github.com/pkordes/tripscout/spec"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Storage ----------------------------------------------------------
	ctx := context.Background()

	persister, closeStorage, err := openPersister(ctx, cfg, logger)
	if err != nil {
		slog.Error("failed to open storage", "backend", cfg.StorageBackend, "error", err)
		os.Exit(1)
	}
	defer closeStorage()

	st, err := store.Open(ctx, persister,
		store.WithLogger(logger),
		store.WithNamespace(cfg.StorageNamespace),
	)
	if err != nil {
		slog.Error("failed to restore snapshot", "namespace", cfg.StorageNamespace, "error", err)
		os.Exit(1)
	}

	// --- Services ---------------------------------------------------------
	srvHandler := handler.NewServer(handler.Deps{
		Trips:     service.NewTripService(st),
		Templates: service.NewTemplateService(st),
		Settings:  service.NewSettingsService(st),
		Session:   service.NewSessionService(st),
		Export:    service.NewExportService(st),
		Health:    st,
		OpenAPI:   spec.OpenAPI,
	})

	// --- Router -----------------------------------------------------------
	// RequestID → RealIP → SlogLogger → Recoverer → CORS → body limit.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	srvHandler.RegisterRoutes(r)

	// --- HTTP Server ------------------------------------------------------
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "storage", cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
