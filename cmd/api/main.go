// Package main is the entry point for the Mappr API server.
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
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/AnthonysMotion/mappr/backend/internal/auth"
	"github.com/AnthonysMotion/mappr/backend/internal/avatar"
	"github.com/AnthonysMotion/mappr/backend/internal/config"
	"github.com/AnthonysMotion/mappr/backend/internal/gh"
	"github.com/AnthonysMotion/mappr/backend/internal/handler"
	"github.com/AnthonysMotion/mappr/backend/internal/middleware"
	"github.com/AnthonysMotion/mappr/backend/internal/places"
	"github.com/AnthonysMotion/mappr/backend/internal/realtime"
	"github.com/AnthonysMotion/mappr/backend/internal/repo"
	"github.com/AnthonysMotion/mappr/backend/internal/service"
)

func main() {
	// .env is a local development convenience; absence is not an error.
	_ = godotenv.Load()

	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
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

	// --- Realtime ---------------------------------------------------------
	// Redis is optional: without it, mutations still succeed but no change
	// events reach connected clients.
	var notifier realtime.Notifier = realtime.NoopNotifier{}
	var subscriber realtime.Subscriber
	if cfg.RedisURL != "" {
		broker, err := realtime.NewRedisBroker(context.Background(), redis.NewClient(&redis.Options{Addr: cfg.RedisURL}))
		if err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		notifier = broker
		subscriber = broker
		slog.Info("redis connection established")
	} else {
		slog.Warn("REDIS_URL not set; realtime updates disabled")
	}

	// --- Auth -------------------------------------------------------------
	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		slog.Error("failed to initialize token service", "error", err)
		os.Exit(1)
	}

	// --- Repos and services -----------------------------------------------
	trips := repo.NewTripRepo(pool)
	pins := repo.NewPinRepo(pool)
	cats := repo.NewCategoryRepo(pool)
	collabs := repo.NewCollaboratorRepo(pool)
	items := repo.NewListItemRepo(pool)
	users := repo.NewUserRepo(pool)

	access := service.NewAccess(trips, collabs)

	srv := handler.NewServer(handler.Deps{
		Trips:    service.NewTripService(trips, collabs, access, notifier),
		Pins:     service.NewPinService(pins, cats, access, notifier),
		Cats:     service.NewCategoryService(cats, access, notifier),
		Collabs:  service.NewCollaboratorService(collabs, users, access, notifier),
		Lists:    service.NewListItemService(items, pins, access, notifier),
		Timeline: service.NewTimelineService(pins, access),
		Export:   service.NewExportService(pins, cats, access),
		Users:    service.NewUserService(users, tokens),

		Places:  places.NewClient(cfg.GoogleMapsAPIKey, nil, ""),
		Stars:   gh.NewStarsClient(cfg.GitHubRepo, nil, ""),
		Avatars: avatarStore(cfg.Cloudinary),
		Events:  subscriber,

		Log: logger,
	})

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))

	// Request body limits are per route inside Routes; the avatar upload
	// takes a larger cap than the JSON endpoints.
	r.Mount("/", srv.Routes(auth.RequireAuth(tokens)))

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	// WriteTimeout is generous because the SSE stream holds its response
	// open; per-request work is still bounded by the client disconnecting.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// avatarStore returns a Cloudinary-backed store, or nil when the
// credentials are incomplete so avatar upload reports configuration-missing.
func avatarStore(cfg avatar.Config) handler.AvatarStorer {
	if !cfg.Configured() {
		return nil
	}
	return avatar.NewStore(cfg, nil, "")
}
