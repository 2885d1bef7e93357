package main

import (
	"context"
	"errors"
	"fmt"

	"expression-calculator/internal/calculator"
	"expression-calculator/internal/config"
	"expression-calculator/internal/observability"
)

// initTelemetry starts the OTLP providers and the calculator's metric
// instruments. The returned function shuts the providers down in reverse
// order.
func initTelemetry(ctx context.Context, cfg config.Config) (func(context.Context) error, error) {
	var shutdowns []func(context.Context) error

	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	if cfg.OTLPLogs {
		logShutdown, err := observability.InitLogging(ctx)
		if err != nil {
			return nil, fmt.Errorf("init logging: %w", err)
		}
		shutdowns = append(shutdowns, logShutdown)
	}

	traceShutdown, err := observability.InitTracing(ctx)
	if err != nil {
		shutdown(ctx)
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	shutdowns = append(shutdowns, traceShutdown)

	metricShutdown, err := observability.InitMetrics(ctx)
	if err != nil {
		shutdown(ctx)
		return nil, fmt.Errorf("init metrics: %w", err)
	}
	shutdowns = append(shutdowns, metricShutdown)

	if err := calculator.InitMetrics(); err != nil {
		shutdown(ctx)
		return nil, err
	}

	return shutdown, nil
}
