package observability

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"expression-calculator/internal/handlers"
)

// Failure describes a failed request for RecordError.
type Failure struct {
	// Operation is the domain operation, e.g. "evaluate".
	Operation string
	// Kind classifies the error for metrics, e.g. "invalid_expression".
	Kind string
	// Message is returned to the client.
	Message string
	Err     error
	Status  int
}

// RecordError centralises error handling across all domains: records the error
// on the span, increments the provided error counter, logs with trace context,
// and writes a JSON error HTTP response. The request ID travels in the
// X-Request-ID header only.
func RecordError(ctx context.Context, span trace.Span, logger *zap.Logger, counter metric.Int64Counter, f Failure, w http.ResponseWriter) {
	span.RecordError(f.Err)
	span.SetStatus(codes.Error, f.Message)

	counter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", f.Operation),
		attribute.String("error.kind", f.Kind),
	))

	logger.Error(f.Message,
		zap.String("operation", f.Operation),
		zap.String("error_kind", f.Kind),
		zap.Error(f.Err),
		zap.String("request_id", RequestIDFromContext(ctx)),
	)

	handlers.WriteError(w, f.Status, f.Message)
}
