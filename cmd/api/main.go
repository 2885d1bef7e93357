package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"expression-calculator/internal/config"
	"expression-calculator/internal/observability"
	"expression-calculator/internal/server"
)

func main() {

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Logger
	err = observability.InitLogger()
	if err != nil {
		panic(err)
	}
	defer observability.SyncLogger()

	// Tracing, metrics and optional OTLP log export
	shutdown, err := initTelemetry(ctx, cfg)
	if err != nil {
		observability.Logger.Fatal("init telemetry", zap.Error(err))
	}
	defer shutdown(ctx)

	// Router
	router := server.NewRouter(cfg.Calculator())

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		observability.Logger.Info("server started",
			zap.String("addr", cfg.HTTPAddr),
			zap.Int("max_depth", cfg.MaxDepth),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			observability.Logger.Fatal("server failed", zap.Error(err))
		}
	}()

	waitForShutdown(srv, cfg.ShutdownTimeout)
}

func waitForShutdown(srv *http.Server, timeout time.Duration) {

	stop := make(chan os.Signal, 1)

	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		observability.Logger.Error("shutdown", zap.Error(err))
	}
}
