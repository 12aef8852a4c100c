package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/diewo77/go-shop/auth"
	"github.com/diewo77/go-shop/internal/api"
	"github.com/diewo77/go-shop/internal/config"
	"github.com/diewo77/go-shop/internal/db"
	applog "github.com/diewo77/go-shop/internal/log"
	"github.com/diewo77/go-shop/internal/middleware"
	"github.com/diewo77/go-shop/internal/session"
)

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Run session DB migrations and exit")

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger := applog.NewSlogLogger(cfg.Log)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	store, closeStore, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()
	if *migrateOnlyFlag {
		logger.Info("migrations completed")
		return nil
	}

	sealer, err := session.NewSealer(cfg.Session.Secret)
	if err != nil {
		return fmt.Errorf("session sealer: %w", err)
	}
	sessions := session.NewManager(store, sealer, cfg.Session.TTL, logger)
	auth.Configure(cfg.Session.Secret, cfg.Session.CookieSecure)

	client := api.New(cfg.Backend.BaseURL, api.WithTimeout(cfg.Backend.Timeout), api.WithLogger(logger))
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go sessions.RunPruner(ctx, cfg.Session.PruneEvery)
	go limiter.Run(ctx, time.Minute, 5*time.Minute)

	app := NewApp(Deps{
		Auth:          client.Auth(),
		Products:      client.Products(),
		Sessions:      sessions,
		Limiter:       limiter,
		Logger:        logger,
		SecureCookies: cfg.Session.CookieSecure,
		Dev:           cfg.App.Dev,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      app,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Server.Port, "backend", client.BaseURL(), "sessions", string(cfg.Session.Store), "dev", cfg.App.Dev)
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
	logger.Info("shutdown signal received")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped gracefully")
	return nil
}

// openStore builds the configured session store and its cleanup func.
func openStore(cfg *config.Config, logger *slog.Logger) (session.Store, func(), error) {
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return session.NewRedisStore(rdb), func() { _ = rdb.Close() }, nil
	case config.SessionStoreMemory:
		logger.Warn("sessions are kept in memory and lost on restart")
		return session.NewMemoryStore(), func() {}, nil
	default:
		conn, err := db.Connect(cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Database.Migrations || *migrateOnlyFlag {
			if err := db.Migrate(conn, cfg.Database); err != nil {
				return nil, nil, err
			}
		}
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, nil, err
		}
		return session.NewGormStore(conn), func() { _ = sqlDB.Close() }, nil
	}
}
