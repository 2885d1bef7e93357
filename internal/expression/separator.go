package expression

import "strings"

// Separator is the character between the integer and fractional digits of a
// number.
type Separator byte

const (
	Dot   Separator = '.'
	Comma Separator = ','

	DefaultSeparator = Dot
)

func (s Separator) String() string {
	return string(rune(s))
}

// DetectSeparator decides the decimal separator of a whole expression. Dots
// and commas may not both appear.
func DetectSeparator(expr string) (Separator, error) {
	dots := strings.Count(expr, Dot.String())
	commas := strings.Count(expr, Comma.String())

	switch {
	case dots > 0 && commas > 0:
		return 0, invalid(-1, "mixed decimal separators found")
	case dots > 0:
		return Dot, nil
	case commas > 0:
		return Comma, nil
	}
	return DefaultSeparator, nil
}
