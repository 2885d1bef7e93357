package expression

import (
	"math"
	"strconv"
	"strings"
)

// Formatting policy.
const (
	// ExponentialThreshold is the magnitude from which results are written
	// in exponential form.
	ExponentialThreshold = 1e10
	// NearZeroThreshold is the magnitude up to which non-zero results are
	// written in exponential form.
	NearZeroThreshold = 1e-4

	FixedPrecision       = 10
	ExponentialPrecision = 6
)

// Format renders v in fixed or exponential notation with trailing zeros
// removed, using sep as the decimal separator.
func Format(v float64, sep Separator) string {
	if v == 0 {
		return "0"
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}

	var s string
	if useExponential(math.Abs(v)) {
		s = formatExponential(v)
	} else {
		s = formatFixed(v)
	}

	if sep != Dot {
		s = strings.ReplaceAll(s, ".", sep.String())
	}
	return s
}

func useExponential(abs float64) bool {
	if abs == 0 {
		return false
	}
	return abs >= ExponentialThreshold || abs <= NearZeroThreshold
}

func formatExponential(v float64) string {
	digits, point := shortestDigits(v)
	digits, point = roundHalfUp(digits, point, ExponentialPrecision+1)

	var b strings.Builder
	if v < 0 {
		b.WriteByte('-')
	}
	b.WriteByte(digits[0])
	if frac := trimZeros(digits[1:]); len(frac) > 0 {
		b.WriteByte('.')
		b.Write(frac)
	}
	b.WriteByte('e')
	exp := point - 1
	if exp < 0 {
		b.WriteByte('-')
		exp = -exp
	} else {
		b.WriteByte('+')
	}
	b.WriteString(strconv.Itoa(exp))
	return b.String()
}

func formatFixed(v float64) string {
	digits, point := shortestDigits(v)
	digits, point = roundHalfUp(digits, point, point+FixedPrecision)

	var b strings.Builder
	if v < 0 {
		b.WriteByte('-')
	}

	var frac []byte
	switch {
	case point <= 0:
		b.WriteByte('0')
		frac = append([]byte(strings.Repeat("0", -point)), digits...)
	case point >= len(digits):
		b.Write(digits)
		b.WriteString(strings.Repeat("0", point-len(digits)))
	default:
		b.Write(digits[:point])
		frac = digits[point:]
	}

	if frac = trimZeros(frac); len(frac) > 0 {
		b.WriteByte('.')
		b.Write(frac)
	}
	return b.String()
}

// shortestDigits returns the shortest decimal digits that round-trip |v|
// and the position of the decimal point relative to the first digit, so
// |v| = 0.d1d2... * 10^point.
func shortestDigits(v float64) ([]byte, int) {
	s := strconv.FormatFloat(math.Abs(v), 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	e, _ := strconv.Atoi(exp)
	return []byte(strings.Replace(mant, ".", "", 1)), e + 1
}

// roundHalfUp keeps the first n digits, rounding half away from zero.
func roundHalfUp(digits []byte, point, n int) ([]byte, int) {
	if n >= len(digits) {
		return digits, point
	}
	if n < 0 {
		return []byte{'0'}, point
	}

	up := digits[n] >= '5'
	out := append([]byte(nil), digits[:n]...)
	if !up {
		if len(out) == 0 {
			return []byte{'0'}, point
		}
		return out, point
	}

	i := n - 1
	for i >= 0 && out[i] == '9' {
		out[i] = '0'
		i--
	}
	if i < 0 {
		return append([]byte{'1'}, out...), point + 1
	}
	out[i]++
	return out, point
}

func trimZeros(b []byte) []byte {
	i := len(b)
	for i > 0 && b[i-1] == '0' {
		i--
	}
	return b[:i]
}
