package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geocoder89/accounthub/internal/account"
	"github.com/geocoder89/accounthub/internal/cache"
	"github.com/geocoder89/accounthub/internal/config"
	"github.com/geocoder89/accounthub/internal/db"
	httpx "github.com/geocoder89/accounthub/internal/http"
	"github.com/geocoder89/accounthub/internal/http/handlers"
	"github.com/geocoder89/accounthub/internal/http/middlewares"
	"github.com/geocoder89/accounthub/internal/observability"
	"github.com/geocoder89/accounthub/internal/redisclient"
	"github.com/geocoder89/accounthub/internal/repo/memory"
	"github.com/geocoder89/accounthub/internal/repo/postgres"
	"github.com/geocoder89/accounthub/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const serviceName = "accounthub-api"

func main() {
	// Load the config set up
	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "err", err)
		os.Exit(1)
	}

	if err := run(cfg, log); err != nil {
		log.Error("server failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx := context.Background()

	if cfg.OTLPEndpoint != "" {
		shutdownTracer, err := observability.InitTracer(ctx, serviceName, cfg.Env, cfg.OTLPEndpoint)
		if err != nil {
			return err
		}
		defer func() {
			sctx, cancel := config.WithTimeout(5 * time.Second)
			defer cancel()
			_ = shutdownTracer(sctx)
		}()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := observability.NewProm(reg)

	var (
		users  store.UserStore
		checks []handlers.Check
	)

	switch cfg.StoreDriver {
	case "memory":
		log.Warn("using in-memory user store, data is lost on restart")
		users = memory.NewUsersRepo()
	case "postgres":
		pool, err := db.NewPool(ctx, cfg.DBURL)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer pool.Close()

		if err := db.Migrate(ctx, cfg.DBURL, log); err != nil {
			return err
		}

		users = postgres.NewUsersRepo(pool, prom)
		checks = append(checks, handlers.Check{Name: "postgres", Ping: pool.Ping})
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	users = cache.NewUserStore(users, cfg.ProfileCacheTTL)

	var limiter middlewares.Limiter
	if cfg.RedisAddr != "" {
		rctx, cancel := config.WithTimeout(3 * time.Second)
		rdb, err := redisclient.Connect(rctx, redisclient.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		cancel()
		if err != nil {
			return err
		}
		defer rdb.Close()

		limiter = middlewares.NewRedisLimiter(rdb.Raw(), cfg.AuthRateLimit, time.Minute, log)
		checks = append(checks, handlers.Check{Name: "redis", Ping: rdb.Ping})
	} else {
		limiter = middlewares.NewMemoryLimiter(cfg.AuthRateLimit, time.Minute)
	}

	authSvc, err := account.NewAuthService(users, account.SessionConfig{
		Secret: cfg.SessionSecret(),
		TTL:    cfg.SessionTTL,
	}, log)
	if err != nil {
		return err
	}
	profileSvc := account.NewProfileService(users, log)

	router := httpx.NewRouter(log, httpx.Deps{
		Auth:           authSvc,
		Profiles:       profileSvc,
		Sessions:       authSvc,
		AuthLimiter:    limiter,
		Checks:         checks,
		Prom:           prom,
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		ServiceName:    serviceName,
		Tracing:        cfg.OTLPEndpoint != "",
		SecureCookie:   cfg.IsProduction(),
		CORSOrigins:    cfg.CORSOrigins,
		Release:        cfg.Env != config.EnvDev,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.StoreDriver)
		err := srv.ListenAndServe()

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		return err
	case <-stop:
	}

	log.Info("server shutting down")

	sctx, cancel := config.WithTimeout(10 * time.Second)
	defer cancel()

	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info("shutdown complete")
	return nil
}
