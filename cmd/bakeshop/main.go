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

	"github.com/creativesites/Destiny-Bakes-sub000/internal/config"
	"github.com/creativesites/Destiny-Bakes-sub000/internal/httpx"
	"github.com/creativesites/Destiny-Bakes-sub000/internal/order/lifecycle"
	"github.com/creativesites/Destiny-Bakes-sub000/internal/order/store/sqlite"
	"github.com/creativesites/Destiny-Bakes-sub000/internal/pkg/cache"
	"github.com/creativesites/Destiny-Bakes-sub000/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	telemetry.InitLogger(cfg.ServiceName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.TracingEnabled {
		shutdown, err := telemetry.SetupTracer(ctx, cfg.ServiceName)
		if err != nil {
			slog.Error("failed to set up tracing", "error", err)
			os.Exit(1)
		}
		defer shutdown(context.Background())
	}

	repo, err := sqlite.Open(cfg.SQLitePath)
	if err != nil {
		slog.Error("failed to open order store", "path", cfg.SQLitePath, "error", err)
		os.Exit(1)
	}
	defer repo.Close()

	var readCache cache.Cache
	if cfg.RedisAddr != "" {
		readCache = cache.NewRedisCache(cfg.RedisAddr, cfg.ServiceName)
	}

	orders := lifecycle.NewService(repo)
	handler := httpx.NewHandler(orders, readCache)
	router := httpx.NewRouter(handler)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("bakery order service listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
