package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"cupstory/pkg/account"
	accountmem "cupstory/pkg/account/memory"
	accountpg "cupstory/pkg/account/postgres"
	"cupstory/pkg/api"
	"cupstory/pkg/cart"
	cartmem "cupstory/pkg/cart/memory"
	cartpg "cupstory/pkg/cart/postgres"
	cartredis "cupstory/pkg/cart/redis"
	"cupstory/pkg/config"
	"cupstory/pkg/contact"
	contactmem "cupstory/pkg/contact/memory"
	contactpg "cupstory/pkg/contact/postgres"
	"cupstory/pkg/logger"
	"cupstory/pkg/metrics"
	"cupstory/pkg/otel"
)

// @title Cupstory API
// @version 1.0
// @description Accounts, carts and contact messages for the Cupstory restaurant site
// @host localhost:3001
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(os.Stdout, logger.ParseLevel(cfg.LogLevel), cfg.ServiceName, otel.GetTraceID)
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Error(context.Background(), "api stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, shutdownTracing, err := otel.InitTracing(log, otel.Config{
		ServiceName: cfg.ServiceName,
		Host:        cfg.OtelHost,
		Probability: cfg.OtelSample,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer shutdownTracing(context.Background())

	var db *sql.DB
	if cfg.DatabaseURL != "" {
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("db connect: %w", err)
		}
		defer db.Close()
		for _, stmt := range []string{accountpg.Schema, cartpg.Schema, contactpg.Schema} {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("create table: %w", err)
			}
		}
	}

	carts, err := cartRepository(ctx, cfg, db)
	if err != nil {
		return err
	}
	var (
		accounts account.Repository = accountmem.New()
		contacts contact.Sink       = contactmem.New()
	)
	if db != nil {
		accounts = accountpg.New(db)
		contacts = contactpg.New(db)
	} else {
		log.Warn(ctx, "no DATABASE_URL, accounts and contact messages are kept in memory")
	}

	srv := api.New(api.Deps{
		Carts:          cart.NewService(carts),
		Accounts:       account.NewService(accounts),
		Contacts:       contacts,
		Log:            log,
		Tracer:         tp.Tracer(cfg.ServiceName),
		Metrics:        metrics.NewServerMetrics(prometheus.DefaultRegisterer, "api"),
		MetricsHandler: promhttp.Handler(),
		AllowedOrigin:  cfg.AllowedOrigin,
	})

	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Info(ctx, "listening", "addr", cfg.Addr, "tls", cfg.TLS(), "cart_store", cfg.CartStore)
		if cfg.TLS() {
			errc <- httpSrv.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			errc <- httpSrv.ListenAndServe()
		}
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutdown requested")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

func cartRepository(ctx context.Context, cfg config.Config, db *sql.DB) (cart.Repository, error) {
	switch cfg.CartStore {
	case config.StorePostgres:
		return cartpg.New(db), nil
	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		return cartredis.New(client), nil
	default:
		return cartmem.New(), nil
	}
}
