package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"Tether/internal/api/middleware"
	"Tether/internal/api/routes"
	"Tether/internal/app"
	"Tether/internal/auth"
	"Tether/internal/config"
	"Tether/internal/db/memory"
	"Tether/internal/db/migrations"
)

// authRequestsPerWindow caps register and login attempts per client IP
const authRequestsPerWindow = 10

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	repos, closeStore, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	services := app.NewServices(repos, auth.NewBcryptHasher(0), logger)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)

	// Rate limiting: RATE_LIMIT_REQUESTS per RATE_LIMIT_WINDOW per IP
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	defer rateLimiter.Stop()
	authLimiter := middleware.NewRateLimiter(authRequestsPerWindow, time.Minute)
	defer authLimiter.Stop()

	router := routes.NewRouter(routes.RouterConfig{
		Logger:         logger,
		RateLimiter:    rateLimiter,
		AuthLimiter:    authLimiter,
		CORSOrigins:    cfg.CORSOrigins,
		RequestTimeout: cfg.RequestTimeout,
	}, services, tokens)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Tether starting",
			slog.String("port", cfg.Port),
			slog.String("storage", cfg.StorageDriver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore connects the configured storage backend and returns its repositories
func openStore(cfg config.Config, logger *slog.Logger) (app.Repositories, func(), error) {
	if cfg.StorageDriver == config.DriverMemory {
		logger.Warn("using in-memory storage; data is lost on exit")
		return app.MemoryRepositories(memory.NewStore()), func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return app.Repositories{}, nil, err
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", slog.String("error", err.Error()))
		}
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		closeDB()
		return app.Repositories{}, nil, err
	}
	logger.Info("connected to database")

	if cfg.RunMigrations {
		if err := migrations.Up(db); err != nil {
			closeDB()
			return app.Repositories{}, nil, err
		}
		logger.Info("migrations completed successfully")
	}

	return app.PostgresRepositories(db), closeDB, nil
}
