// Package expression calculates textual arithmetic expressions such as
// "(1,5 + 2) * 3e2" and renders the result back to text.
//
// Multiplication and division bind tighter than addition and subtraction,
// parentheses group, a minus in operand position negates the number that
// follows it. Arithmetic is IEEE double precision.
package expression

import "math"

// DefaultMaxDepth is the parenthesis nesting limit of the default Calculator.
const DefaultMaxDepth = 1000

// Result is a calculated expression.
type Result struct {
	Value     float64
	Separator Separator
	// Text is Value rendered by Format with Separator.
	Text string
}

// Calculator evaluates expressions. The zero value has no nesting limit.
// A Calculator is immutable and safe for concurrent use.
type Calculator struct {
	maxDepth int
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithMaxDepth limits parenthesis nesting. Zero or a negative n removes the
// limit.
func WithMaxDepth(n int) Option {
	return func(c *Calculator) {
		if n < 0 {
			n = 0
		}
		c.maxDepth = n
	}
}

// New returns a Calculator limited to DefaultMaxDepth unless overridden.
func New(opts ...Option) *Calculator {
	c := &Calculator{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MaxDepth reports the nesting limit, 0 meaning unlimited.
func (c *Calculator) MaxDepth() int {
	return c.maxDepth
}

var defaultCalculator = New()

// Calculate evaluates expr with the default Calculator and returns the
// formatted result.
func Calculate(expr string) (string, error) {
	return defaultCalculator.Calculate(expr)
}

// Calculate evaluates expr and returns the formatted result.
func (c *Calculator) Calculate(expr string) (string, error) {
	res, err := c.Evaluate(expr)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// Evaluate evaluates expr. No partial result is returned on failure.
func (c *Calculator) Evaluate(expr string) (Result, error) {
	if err := checkEmpty(expr); err != nil {
		return Result{}, err
	}

	sep, err := DetectSeparator(expr)
	if err != nil {
		return Result{}, err
	}

	s, err := Preprocess(expr)
	if err != nil {
		return Result{}, err
	}

	sc := &scope{src: s, sep: byte(sep), maxDepth: c.maxDepth}
	v, err := sc.eval(0, len(s), 0)
	if err != nil {
		return Result{}, err
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return Result{}, &Error{Kind: ErrOutOfRange, Msg: "result is not a finite number", Pos: -1}
	}

	return Result{Value: v, Separator: sep, Text: Format(v, sep)}, nil
}
