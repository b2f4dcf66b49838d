// Package main is the entry point for the GlobalTrotter API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
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
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/time/rate"

	"github.com/mittalpriyanshi/globaltrotter/internal/auth"
	"github.com/mittalpriyanshi/globaltrotter/internal/config"
	"github.com/mittalpriyanshi/globaltrotter/internal/handler"
	"github.com/mittalpriyanshi/globaltrotter/internal/middleware"
	"github.com/mittalpriyanshi/globaltrotter/internal/repo"
	"github.com/mittalpriyanshi/globaltrotter/internal/service"
)

// maxBodyBytes caps incoming request bodies. 1 MiB is generous for a JSON API.
const maxBodyBytes = 1 << 20

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger introduced in Go 1.21.
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Repositories and services ----------------------------------------
	trips := repo.NewTripRepo(pool)
	itineraries := repo.NewItineraryRepo(pool)
	events := repo.NewEventRepo(pool)
	journals := repo.NewJournalRepo(pool)
	budgets := repo.NewBudgetRepo(pool)
	expenses := repo.NewExpenseRepo(pool)
	users := repo.NewUserRepo(pool)
	notifications := repo.NewNotificationRepo(pool)

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, "globaltrotter", cfg.TokenTTL)
	if err != nil {
		slog.Error("token manager", "error", err)
		os.Exit(1)
	}

	server := handler.NewServer(handler.ServerDeps{
		Auth:          service.NewAuthService(users, tokens),
		Trips:         service.NewTripService(trips, notifications),
		Itineraries:   service.NewItineraryService(trips, itineraries, notifications),
		Events:        service.NewEventService(trips, events, notifications),
		Journals:      service.NewJournalService(trips, journals, notifications),
		Budgets:       service.NewBudgetService(trips, budgets, expenses),
		Expenses:      service.NewExpenseService(trips, expenses, budgets, notifications),
		Notifications: service.NewNotificationService(notifications),
		Search:        service.NewSearchService(trips, itineraries, events, journals),
		DB:            pool,
		Verifier:      tokens,
		Log:           logger,
	})

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body size cap → rate limiter. RealIP must precede the rate
	// limiter so clients behind a proxy are keyed by their real address.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodyBytes))
	r.Use(middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst))

	r.Mount("/", server.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
