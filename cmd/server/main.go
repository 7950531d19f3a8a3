package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/dwikikusuma/shop-assist/internal/assistant/httpapi"
	"github.com/dwikikusuma/shop-assist/internal/assistant/ops"
	cartapp "github.com/dwikikusuma/shop-assist/internal/cart/app"
	"github.com/dwikikusuma/shop-assist/internal/cart/infra/adapter"
	cartmemory "github.com/dwikikusuma/shop-assist/internal/cart/infra/memory"
	cartredis "github.com/dwikikusuma/shop-assist/internal/cart/infra/redis"
	catalogapp "github.com/dwikikusuma/shop-assist/internal/catalog/app"
	cataloghttp "github.com/dwikikusuma/shop-assist/internal/catalog/infra/httpapi"
	"github.com/dwikikusuma/shop-assist/pkg/config"
	"github.com/dwikikusuma/shop-assist/pkg/logger"
	"github.com/dwikikusuma/shop-assist/pkg/shutdown"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{Service: "server", Env: cfg.AppEnv, Level: cfg.LogLevel, AddSource: true})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	// Catalog
	fetcher := cataloghttp.NewClient(cfg.CatalogBaseURL, cfg.CatalogTimeout)
	catalogSvc := catalogapp.NewService(fetcher, cfg.CatalogCacheTTL)

	// Cart
	store, err := newStore(ctx, cfg, log)
	if err != nil {
		log.Error("cart store init failed", slog.Any("err", err))
		os.Exit(1)
	}
	cartSvc := cartapp.NewService(store, adapter.NewCatalogServiceReader(catalogSvc), cfg.RequirePositiveQty)

	// Operations
	registry := ops.NewRegistry(log)
	ops.RegisterCommerce(registry, catalogSvc, cartSvc)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           httpapi.NewRouter(httpapi.NewHandler(registry, log)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server starting",
			slog.String("addr", addr),
			slog.String("catalog", cfg.CatalogBaseURL),
			slog.String("cart_backend", cfg.CartBackend),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutdown requested")

		stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer stopCancel()
		return server.Shutdown(stopCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("bye")
}

func newStore(ctx context.Context, cfg config.Config, log *slog.Logger) (cartapp.Store, error) {
	if cfg.CartBackend != config.BackendRedis {
		return cartmemory.NewStore(), nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
	}

	log.Info("using redis cart store", slog.String("addr", cfg.RedisAddr))
	return cartredis.NewStore(client, cfg.CartTTL), nil
}
