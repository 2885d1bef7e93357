package calculator

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metric instruments — initialized once via InitMetrics().
var (
	opsCounter      metric.Int64Counter
	opsHistogram    metric.Float64Histogram
	errorCounter    metric.Int64Counter
	resultGauge     metric.Float64Gauge
	lengthHistogram metric.Int64Histogram
)

// InitMetrics registers custom OTel metric instruments for the calculator domain.
// Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("calculator")

	var err error

	opsCounter, err = meter.Int64Counter("calculator.operations.total",
		metric.WithDescription("Total number of expressions evaluated successfully"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return fmt.Errorf("creating ops counter: %w", err)
	}

	opsHistogram, err = meter.Float64Histogram("calculator.operation.duration",
		metric.WithDescription("Duration of expression evaluation in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return fmt.Errorf("creating ops histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("calculator.errors.total",
		metric.WithDescription("Total number of rejected expressions by error kind"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	resultGauge, err = meter.Float64Gauge("calculator.last_result",
		metric.WithDescription("The result of the last evaluated expression"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("creating result gauge: %w", err)
	}

	lengthHistogram, err = meter.Int64Histogram("calculator.expression.length",
		metric.WithDescription("Length of evaluated expressions in bytes"),
		metric.WithUnit("By"),
		metric.WithExplicitBucketBoundaries(8, 32, 128, 512, 2048, 8192),
	)
	if err != nil {
		return fmt.Errorf("creating expression length histogram: %w", err)
	}

	return nil
}
