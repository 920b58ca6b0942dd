package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/liftledger/liftledger-backend/api/routes"
	"github.com/liftledger/liftledger-backend/internal/auth"
	"github.com/liftledger/liftledger-backend/internal/exercises"
	"github.com/liftledger/liftledger-backend/internal/users"
	"github.com/liftledger/liftledger-backend/internal/workouts"
	"github.com/liftledger/liftledger-backend/pkg/config"
	"github.com/liftledger/liftledger-backend/pkg/db"
	"github.com/liftledger/liftledger-backend/pkg/logger"
	"github.com/liftledger/liftledger-backend/pkg/metrics"
	"github.com/liftledger/liftledger-backend/pkg/migrate"
	"github.com/liftledger/liftledger-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "redis not configured, auth rate limiting disabled")
	}

	usersRepo := users.NewRepository(dbClient.DB())
	exercisesRepo := exercises.NewRepository(dbClient.DB())
	workoutsRepo := workouts.NewRepository(dbClient.DB())

	usersService, err := users.NewService(usersRepo, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}
	exercisesService, err := exercises.NewService(exercisesRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create exercises service", err)
		os.Exit(1)
	}
	workoutsService, err := workouts.NewService(dbClient, workoutsRepo, exercisesRepo, usersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create workouts service", err)
		os.Exit(1)
	}
	authService, err := auth.NewService(usersService, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			registry,
			httpMetrics,
			authService,
			exercisesService,
			usersService,
			workoutsService,
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-sigCh:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}

	var closeErr error
	closeErr = multierr.Append(closeErr, dbClient.Close())
	if redisClient != nil {
		closeErr = multierr.Append(closeErr, redisClient.Close())
	}
	if closeErr != nil {
		logg.Error(ctx, "error closing resources", closeErr)
		os.Exit(1)
	}
}
