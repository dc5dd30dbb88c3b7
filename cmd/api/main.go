package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/barberpro/internal/audit"
	"github.com/BruksfildServices01/barberpro/internal/config"
	dbpkg "github.com/BruksfildServices01/barberpro/internal/db"
	"github.com/BruksfildServices01/barberpro/internal/logger"
	"github.com/BruksfildServices01/barberpro/internal/middleware"
	"github.com/BruksfildServices01/barberpro/internal/routes"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "barberpro-api",
	})

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", "err", err)
	}

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", "err", err)
	}
}

// run serves until a signal arrives or the listener fails. Cleanup always
// runs before it returns.
func run(cfg *config.Config, log *logger.Logger) error {
	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return fmt.Errorf("database unavailable: %w", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	rdb := newRedis(cfg, log)
	if rdb != nil {
		defer rdb.Close()
	}

	auditStore := audit.New(db)
	dispatcher := audit.NewDispatcher(auditStore, log)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(
		middleware.RequestLogger(log),
		middleware.CORSMiddleware(),
		gin.Recovery(),
	)

	if err := routes.RegisterRoutes(r, routes.Deps{
		DB:         db,
		Config:     cfg,
		AuditStore: auditStore,
		Audit:      dispatcher,
		Limiter: middleware.NewRateLimiter(
			rdb,
			cfg.RateLimitRequests,
			cfg.RateLimitWindow,
			"barberpro:bookings",
		),
	}); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, srv, cfg.ShutdownTimeout, dispatcher.Close, log)
}

// serve runs srv until ctx is done or the listener fails, then shuts the
// server down and calls drain within timeout. A listener failure is
// returned only after that cleanup has run.
func serve(
	ctx context.Context,
	srv *http.Server,
	timeout time.Duration,
	drain func(context.Context) error,
	log *logger.Logger,
) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server running", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), timeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "err", err)
	}
	if err := drain(shutdownCtx); err != nil {
		log.Error("audit drain", "err", err)
	}

	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	default:
		return nil
	}
}

// newRedis returns nil when REDIS_URL is unset or unreachable; the booking
// rate limit is then disabled.
func newRedis(cfg *config.Config, log *logger.Logger) *redis.Client {
	if cfg.RedisURL == "" {
		log.Info("redis disabled, booking rate limit off")
		return nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Warn("invalid REDIS_URL, booking rate limit off", "err", err)
		return nil
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, booking rate limit off", "err", err)
		_ = rdb.Close()
		return nil
	}

	return rdb
}
