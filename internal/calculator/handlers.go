package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"expression-calculator/internal/expression"
	"expression-calculator/internal/handlers"
	"expression-calculator/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// MaxChainSteps bounds the number of steps of one chained calculation.
const MaxChainSteps = 100

// operators maps operation names to expression operators.
var operators = map[string]string{
	"add":      "+",
	"subtract": "-",
	"multiply": "*",
	"divide":   "/",
}

// Handlers serves the calculator endpoints with one shared Calculator.
type Handlers struct {
	calc *expression.Calculator
}

func NewHandlers(calc *expression.Calculator) *Handlers {
	return &Handlers{calc: calc}
}

// combine applies op to two operand expressions, keeping each one grouped.
func combine(a, op, b string) string {
	return "(" + a + ")" + op + "(" + b + ")"
}

// classify maps an evaluation error to a metric kind and HTTP status.
func classify(err error) (string, int) {
	switch {
	case errors.Is(err, expression.ErrDivisionByZero):
		return "division_by_zero", http.StatusUnprocessableEntity
	case errors.Is(err, expression.ErrOutOfRange):
		return "out_of_range", http.StatusUnprocessableEntity
	case errors.Is(err, expression.ErrInvalidExpression):
		return "invalid_expression", http.StatusBadRequest
	}
	return "internal", http.StatusInternalServerError
}

// ---------------------------------------------------------------------------
// Handler — free-form expressions
// ---------------------------------------------------------------------------

// Evaluate handles POST /calculator/evaluate
func (h *Handlers) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := startSpan(ctx, "evaluate")
	defer span.End()

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(ctx, span, logger, "evaluate", "invalid request body", err, w)
		return
	}

	res, ok := h.evaluate(ctx, span, logger, "evaluate", req.Expression, w)
	if !ok {
		return
	}

	handlers.WriteJSON(w, http.StatusOK, EvaluateResponse{
		Expression: req.Expression,
		Result:     res.Text,
		Value:      res.Value,
		Separator:  res.Separator.String(),
	})
}

// ---------------------------------------------------------------------------
// Handlers — binary operations
// ---------------------------------------------------------------------------

// Add handles POST /calculator/add
func (h *Handlers) Add(w http.ResponseWriter, r *http.Request) {
	h.handleBinaryOp(w, r, "add")
}

// Subtract handles POST /calculator/subtract
func (h *Handlers) Subtract(w http.ResponseWriter, r *http.Request) {
	h.handleBinaryOp(w, r, "subtract")
}

// Multiply handles POST /calculator/multiply
func (h *Handlers) Multiply(w http.ResponseWriter, r *http.Request) {
	h.handleBinaryOp(w, r, "multiply")
}

// Divide handles POST /calculator/divide
func (h *Handlers) Divide(w http.ResponseWriter, r *http.Request) {
	h.handleBinaryOp(w, r, "divide")
}

// handleBinaryOp evaluates "(a) op (b)" for the named operation.
func (h *Handlers) handleBinaryOp(w http.ResponseWriter, r *http.Request, opName string) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := startSpan(ctx, opName)
	defer span.End()

	var req CalcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(ctx, span, logger, opName, "invalid request body", err, w)
		return
	}

	if req.A == "" || req.B == "" {
		badRequest(ctx, span, logger, opName, "both operands are required", fmt.Errorf("a=%q b=%q", req.A, req.B), w)
		return
	}

	span.SetAttributes(
		attribute.String("calculator.operand.a", req.A),
		attribute.String("calculator.operand.b", req.B),
	)

	expr := combine(req.A, operators[opName], req.B)
	res, ok := h.evaluate(ctx, span, logger, opName, expr, w)
	if !ok {
		return
	}

	handlers.WriteJSON(w, http.StatusOK, CalcResponse{
		Operation:  opName,
		A:          req.A,
		B:          req.B,
		Expression: expr,
		Result:     res.Text,
		Value:      res.Value,
	})
}

// ---------------------------------------------------------------------------
// Handler — chained operations (demonstrates nested spans)
// ---------------------------------------------------------------------------

// Chain handles POST /calculator/chain — applies a sequence of operations to
// a running expression, creating a child span for every step. Each step
// evaluates the whole expression built so far, so no precision is lost to
// intermediate formatting.
func (h *Handlers) Chain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := startSpan(ctx, "chain")
	defer span.End()

	var req ChainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(ctx, span, logger, "chain", "invalid request body", err, w)
		return
	}

	if req.Initial == "" {
		badRequest(ctx, span, logger, "chain", "initial value is required", fmt.Errorf("initial is empty"), w)
		return
	}
	if len(req.Steps) == 0 {
		badRequest(ctx, span, logger, "chain", "no steps provided", fmt.Errorf("steps array is empty"), w)
		return
	}
	if len(req.Steps) > MaxChainSteps {
		badRequest(ctx, span, logger, "chain", fmt.Sprintf("at most %d steps allowed", MaxChainSteps), fmt.Errorf("%d steps", len(req.Steps)), w)
		return
	}

	span.SetAttributes(
		attribute.String("chain.initial", req.Initial),
		attribute.Int("chain.steps_count", len(req.Steps)),
	)

	logger.Info("starting chained calculation",
		zap.String("initial", req.Initial),
		zap.Int("steps", len(req.Steps)),
		zap.String("request_id", requestID),
	)

	expr := req.Initial
	var last expression.Result
	results := make([]ChainResult, 0, len(req.Steps))

	for i, step := range req.Steps {
		// --- Child span per step ---
		stepCtx, stepSpan := tracer.Start(ctx, fmt.Sprintf("calculator.chain.step.%d.%s", i, step.Op),
			trace.WithAttributes(
				attribute.Int("chain.step.index", i),
				attribute.String("chain.step.operation", step.Op),
				attribute.String("chain.step.value", step.Value),
			),
		)

		op, known := operators[step.Op]
		if !known || step.Value == "" {
			err := fmt.Errorf("unknown operation %q at step %d", step.Op, i)
			if known {
				err = fmt.Errorf("missing value at step %d", i)
			}
			stepSpan.RecordError(err)
			stepSpan.SetStatus(codes.Error, err.Error())
			stepSpan.End()

			badRequest(ctx, span, logger, "chain", err.Error(), err, w)
			return
		}

		expr = combine(expr, op, step.Value)
		res, err := h.run(stepCtx, expr)
		if err != nil {
			stepSpan.RecordError(err)
			stepSpan.SetStatus(codes.Error, err.Error())
			stepSpan.End()

			kind, status := classify(err)
			observability.RecordError(ctx, span, logger, errorCounter, observability.Failure{
				Operation: step.Op,
				Kind:      kind,
				Message:   fmt.Sprintf("step %d: %s", i, err.Error()),
				Err:       err,
				Status:    status,
			}, w)
			return
		}

		stepSpan.AddEvent("step.complete", trace.WithAttributes(
			attribute.String("expression", expr),
			attribute.String("result", res.Text),
		))
		stepSpan.SetAttributes(attribute.Float64("chain.step.result", res.Value))
		stepSpan.SetStatus(codes.Ok, "")
		stepSpan.End()

		logger.Info("chain step completed",
			zap.Int("step", i),
			zap.String("operation", step.Op),
			zap.String("value", step.Value),
			zap.String("result", res.Text),
		)

		last = res
		results = append(results, ChainResult{
			Op:         step.Op,
			Value:      step.Value,
			Expression: expr,
			Result:     res.Text,
		})
	}

	resultGauge.Record(ctx, last.Value, metric.WithAttributes(attribute.String("operation", "chain")))

	span.AddEvent("chain.complete", trace.WithAttributes(
		attribute.String("final_result", last.Text),
		attribute.Int("total_steps", len(req.Steps)),
	))
	span.SetAttributes(attribute.Float64("chain.result", last.Value))
	span.SetStatus(codes.Ok, "")

	logger.Info("chained calculation completed",
		zap.String("initial", req.Initial),
		zap.String("result", last.Text),
		zap.Int("steps", len(req.Steps)),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, ChainResponse{
		Initial:    req.Initial,
		Steps:      results,
		Expression: expr,
		Result:     last.Text,
		Value:      last.Value,
	})
}

// ---------------------------------------------------------------------------
// Shared evaluation path
// ---------------------------------------------------------------------------

func startSpan(ctx context.Context, opName string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "calculator."+opName,
		trace.WithAttributes(
			attribute.String("calculator.operation", opName),
			attribute.String("request.id", observability.RequestIDFromContext(ctx)),
		),
	)
}

// run evaluates expr and records the success metrics.
func (h *Handlers) run(ctx context.Context, expr string) (expression.Result, error) {
	start := time.Now()
	res, err := h.calc.Evaluate(expr)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		return res, err
	}

	attrs := metric.WithAttributes(attribute.String("separator", res.Separator.String()))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)
	lengthHistogram.Record(ctx, int64(len(expr)), attrs)
	return res, nil
}

// evaluate runs expr for a single-expression endpoint. On failure it writes
// the error response and returns false.
func (h *Handlers) evaluate(ctx context.Context, span trace.Span, logger *zap.Logger, opName, expr string, w http.ResponseWriter) (expression.Result, bool) {
	span.SetAttributes(attribute.String("calculator.expression", expr))

	start := time.Now()
	res, err := h.run(ctx, expr)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	if err != nil {
		kind, status := classify(err)
		observability.RecordError(ctx, span, logger, errorCounter, observability.Failure{
			Operation: opName,
			Kind:      kind,
			Message:   err.Error(),
			Err:       err,
			Status:    status,
		}, w)
		return res, false
	}

	resultGauge.Record(ctx, res.Value, metric.WithAttributes(attribute.String("operation", opName)))

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.String("result", res.Text),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.Float64("calculator.result", res.Value))
	span.SetStatus(codes.Ok, "")

	logger.Info("expression evaluated",
		zap.String("operation", opName),
		zap.String("expression", expr),
		zap.String("result", res.Text),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
		zap.Float64("duration_ms", elapsed),
	)

	return res, true
}

func badRequest(ctx context.Context, span trace.Span, logger *zap.Logger, opName, msg string, err error, w http.ResponseWriter) {
	observability.RecordError(ctx, span, logger, errorCounter, observability.Failure{
		Operation: opName,
		Kind:      "bad_request",
		Message:   msg,
		Err:       err,
		Status:    http.StatusBadRequest,
	}, w)
}
