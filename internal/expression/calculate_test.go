package expression

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{"add", "2 + 3", "5"},
		{"mul before add", "3 * 2 + 1", "7"},
		{"unary in product", "3 * -2 + 6", "0"},
		{"decimal add", "1.5 + 2", "3.5"},
		{"decimal sub", "1.5 - 2", "-0.5"},
		{"decimal mul", "1.5 * 2", "3"},
		{"decimal div", "1.5 / 2", "0.75"},
		{"integral quotient", "2 / 2", "1"},
		{"fractional quotient", "3 / 2", "1.5"},
		{"order", "3 + -2 * 6", "-9"},
		{"group first", "(3 + -2) * 6", "6"},
		{"group times", "(1+2)*3", "9"},
		{"double group", "((2)) + 1", "3"},
		{"nested group", "(2*(3+4))-9", "5"},
		{"unary first", "-1 + -2", "-3"},
		{"unary then add", "-1 + 2", "1"},
		{"add negative", "1 + -2", "-1"},
		{"minus negative", "1--2", "3"},
		{"unary after paren", "(-2)*3", "-6"},
		{"leading plus", "+2*3", "6"},
		{"leading separator", ".5+.5", "1"},
		{"empty group", "()+1", "1"},
		{"left to right division", "8/2/2", "2"},
		{"exponent then minus", "1e5-3", "99997"},
		{"negative exponent", "2e-3*1000", "2"},
		{"explicit positive exponent", "1e+5*2", "200000"},
		{"comma separator", "1,5 + 2", "3,5"},
		{"comma result", "1,25 * 2,5", "3,125"},
		{"zero", "0*5", "0"},
		{"negative zero", "-0*1", "0"},
		{"repeating", "1/3", "0.3333333333"},
		{"rounded up", "2/3", "0.6666666667"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Calculate(tc.expr)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCalculateScientific(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"1.5e3 * 1e5", "150000000"},
		{"1.5e3 * 1e6", "1500000000"},
		{"9999999999 + 1", "1e+10"},
		{"1.5e3 * 1e7", "1.5e+10"},
		{"3 * 2E2", "600"},
		{"3 * 2E10", "6e+10"},
		{"1.5 / 10", "0.15"},
		{"1.5 / 100", "0.015"},
		{"1.5 / 1000", "0.0015"},
		{"1.5 / 10000", "0.00015"},
		{"1 / 10000", "1e-4"},
		{"1.5 / 100000", "1.5e-5"},
		{"1.5 / 10000000000", "1.5e-10"},
		{"-1 / 10000", "-1e-4"},
		{"1e100 * 10", "1e+101"},
		{"1,5e3 * 1e7", "1,5e+10"},
	}

	for _, tc := range tests {
		t.Run(tc.expr, func(t *testing.T) {
			got, err := Calculate(tc.expr)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCalculateWhitespaceIsCosmetic(t *testing.T) {
	for _, expr := range []string{
		"123 + 12",
		"123 + 1 2",
		"12 3 + 12",
		"12 3 + 1 2",
		"1 23 + 12",
		"1 23 + 1 2",
		"1 2 3 + 12",
		"1 2 3 + 1 2",
		"123+12",
		"\t123\n+ 12 ",
	} {
		got, err := Calculate(expr)
		require.NoError(t, err, expr)
		assert.Equal(t, "135", got, expr)
	}
}

func TestCalculateErrors(t *testing.T) {
	tests := []struct {
		name string
		expr string
		kind error
		msg  string
	}{
		{"empty", "", ErrInvalidExpression, "empty expression"},
		{"blank", "   \t", ErrInvalidExpression, "empty expression"},
		{"mixed separators", "1.5 + 2,5", ErrInvalidExpression, "mixed decimal separators"},
		{"unclosed", "(1+2", ErrInvalidExpression, "unbalanced brackets"},
		{"unopened", "1+2)", ErrInvalidExpression, "unbalanced brackets"},
		{"negative balance", ")1+2(", ErrInvalidExpression, "unbalanced brackets"},
		{"single number", "42", ErrInvalidExpression, "only one number"},
		{"single ten", "10", ErrInvalidExpression, "only one number"},
		{"single negative", "-1", ErrInvalidExpression, "only one number"},
		{"single exponent", "1.5e3", ErrInvalidExpression, "only one number"},
		{"single comma", "1,5", ErrInvalidExpression, "only one number"},
		{"minus only", "-", ErrInvalidExpression, "no numbers"},
		{"plus only", "+", ErrInvalidExpression, "no numbers"},
		{"times only", "*", ErrInvalidExpression, "no numbers"},
		{"slash only", "/", ErrInvalidExpression, "no numbers"},
		{"power", "3 * -2 ^ 6", ErrInvalidExpression, "invalid character: ^"},
		{"power simple", "2^2", ErrInvalidExpression, "invalid character: ^"},
		{"letter", "2+x", ErrInvalidExpression, "invalid character: x"},
		{"non ascii", "2×3", ErrInvalidExpression, "invalid character: ×"},
		{"double separator", "1..5+1", ErrInvalidExpression, "invalid number format: 1..5"},
		{"dangling exponent", "2*1e", ErrInvalidExpression, "invalid number format: 1e"},
		{"negated group", "-(1+2)", ErrInvalidExpression, "invalid number format: -"},
		{"missing left operand", "*2+1", ErrInvalidExpression, "missing left operand"},
		{"division by zero", "1/0", ErrDivisionByZero, "division by zero"},
		{"division by zero group", "1/(2-2)", ErrDivisionByZero, "division by zero"},
		{"division by decimal zero", "1/0.0", ErrDivisionByZero, "division by zero"},
		{"huge literal", "1e999*2", ErrOutOfRange, "number out of range"},
		{"overflow", "1e200*1e200", ErrOutOfRange, "not a finite number"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Calculate(tc.expr)
			require.Error(t, err)
			assert.Empty(t, got)
			assert.ErrorIs(t, err, tc.kind)
			assert.Contains(t, err.Error(), tc.msg)

			var e *Error
			require.True(t, errors.As(err, &e))
			assert.Equal(t, tc.kind, e.Kind)
		})
	}
}

func TestCalculateErrorKindsAreDistinct(t *testing.T) {
	_, err := Calculate("1/0")
	assert.ErrorIs(t, err, ErrDivisionByZero)
	assert.NotErrorIs(t, err, ErrInvalidExpression)

	_, err = Calculate("1^0")
	assert.ErrorIs(t, err, ErrInvalidExpression)
	assert.NotErrorIs(t, err, ErrDivisionByZero)
}

func TestCalculateErrorPosition(t *testing.T) {
	_, err := Calculate("1 + 2 ^ 3")
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 3, e.Pos)
	assert.Equal(t, "invalid character: ^ at position 3", err.Error())

	_, err = Calculate("(1+1)*(3/0)")
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 9, e.Pos)

	_, err = Calculate("1.5 + 2,5")
	require.ErrorAs(t, err, &e)
	assert.Equal(t, -1, e.Pos)
	assert.Equal(t, "mixed decimal separators found", err.Error())
}

func TestCalculatorMaxDepth(t *testing.T) {
	shallow := New(WithMaxDepth(2))
	assert.Equal(t, 2, shallow.MaxDepth())

	got, err := shallow.Calculate("((1))+1")
	require.NoError(t, err)
	assert.Equal(t, "2", got)

	_, err = shallow.Calculate("(((1)))+1")
	require.ErrorIs(t, err, ErrInvalidExpression)
	assert.Contains(t, err.Error(), "nesting too deep")

	deep := strings.Repeat("(", 5000) + "1" + strings.Repeat(")", 5000) + "+1"
	_, err = Calculate(deep)
	require.ErrorIs(t, err, ErrInvalidExpression)

	got, err = New(WithMaxDepth(0)).Calculate(deep)
	require.NoError(t, err)
	assert.Equal(t, "2", got)

	assert.Equal(t, 0, New(WithMaxDepth(-3)).MaxDepth())
	assert.Equal(t, DefaultMaxDepth, New().MaxDepth())
}

func TestEvaluateResult(t *testing.T) {
	res, err := New().Evaluate("1,5 * 3")
	require.NoError(t, err)
	assert.Equal(t, 4.5, res.Value)
	assert.Equal(t, Comma, res.Separator)
	assert.Equal(t, "4,5", res.Text)

	res, err = New().Evaluate("7 - 10")
	require.NoError(t, err)
	assert.Equal(t, DefaultSeparator, res.Separator)
	assert.Equal(t, "-3", res.Text)
}

func TestCalculateIsPure(t *testing.T) {
	first, err := Calculate("(1.1 + 2.2) * 3")
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]string, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Calculate("(1.1 + 2.2) * 3")
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, first, got)
	}
}

func TestCalculateFixedRoundTrip(t *testing.T) {
	for _, expr := range []string{"1/7", "22/7", "-5/3", "123456.789*3", "0.001*7"} {
		res, err := New().Evaluate(expr)
		require.NoError(t, err, expr)

		back, err := strconv.ParseFloat(res.Text, 64)
		require.NoError(t, err, expr)
		assert.InDelta(t, res.Value, back, 1e-10, expr)
	}
}
