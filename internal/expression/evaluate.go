package expression

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var numberFormat = regexp.MustCompile(`^[+-]?([0-9]+([.,][0-9]*)?|[.,][0-9]+)([eE][+-]?[0-9]+)?$`)

// accumulator holds the additive terms of one (sub)expression. Addition and
// subtraction push a signed term, multiplication and division fold into the
// most recent one, so * and / bind tighter without a precedence table.
type accumulator []float64

func (acc *accumulator) apply(op byte, v float64, pos int) error {
	switch op {
	case '+':
		*acc = append(*acc, v)
	case '-':
		*acc = append(*acc, -v)
	case '*', '/':
		n := len(*acc)
		if n == 0 {
			return invalid(pos, "missing left operand for "+string(op))
		}
		if op == '*' {
			(*acc)[n-1] *= v
			return nil
		}
		if v == 0 {
			return &Error{Kind: ErrDivisionByZero, Msg: "division by zero", Pos: pos}
		}
		(*acc)[n-1] /= v
	}
	return nil
}

// sum drains the stack from the most recent term.
func (acc accumulator) sum() float64 {
	var total float64
	for i := len(acc) - 1; i >= 0; i-- {
		total += acc[i]
	}
	return total
}

func isOperator(c byte) bool {
	return c == '+' || c == '-' || c == '*' || c == '/'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// scope is the evaluation state shared by one call and its nested groups.
type scope struct {
	src      string
	sep      byte
	maxDepth int
}

// eval evaluates src[start:end]. depth counts the enclosing parentheses.
func (sc *scope) eval(start, end, depth int) (float64, error) {
	if sc.maxDepth > 0 && depth > sc.maxDepth {
		return 0, invalid(start-1, "nesting too deep")
	}

	var acc accumulator
	op := byte('+')
	s := sc.src

	for i := start; i < end; {
		c := s[i]

		switch {
		case c == '(':
			j, balance := i+1, 1
			for j < end && balance > 0 {
				switch s[j] {
				case '(':
					balance++
				case ')':
					balance--
				}
				j++
			}
			if balance != 0 {
				return 0, invalid(i, "unbalanced brackets")
			}
			v, err := sc.eval(i+1, j-1, depth+1)
			if err != nil {
				return 0, err
			}
			if err := acc.apply(op, v, i); err != nil {
				return 0, err
			}
			i = j

		case isDigit(c) || c == sc.sep:
			v, next, err := sc.number(i, i, end)
			if err != nil {
				return 0, err
			}
			if err := acc.apply(op, v, i); err != nil {
				return 0, err
			}
			i = next

		case c == '-' && (i == start || isOperator(s[i-1]) || s[i-1] == '('):
			v, next, err := sc.number(i, i+1, end)
			if err != nil {
				return 0, err
			}
			if err := acc.apply(op, v, i); err != nil {
				return 0, err
			}
			i = next

		case isOperator(c):
			op = c
			i++

		default:
			r, _ := utf8.DecodeRuneInString(s[i:end])
			return 0, invalid(i, "invalid character: "+string(r))
		}
	}

	return acc.sum(), nil
}

// number scans the token s[from:] and parses s[tok:i] where tok <= from
// covers an already consumed sign. It returns the value and the index after
// the token.
func (sc *scope) number(tok, from, end int) (float64, int, error) {
	s := sc.src
	i := from
	for i < end {
		c := s[i]
		if isDigit(c) || c == sc.sep || c == 'e' || c == 'E' {
			i++
			continue
		}
		if (c == '+' || c == '-') && i > from && (s[i-1] == 'e' || s[i-1] == 'E') {
			i++
			continue
		}
		break
	}

	text := s[tok:i]
	if !numberFormat.MatchString(text) {
		return 0, i, invalid(tok, "invalid number format: "+text)
	}
	if sc.sep != '.' {
		text = strings.ReplaceAll(text, string(sc.sep), ".")
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, i, &Error{Kind: ErrOutOfRange, Msg: "number out of range: " + s[tok:i], Pos: tok}
		}
		return 0, i, invalid(tok, "invalid number format: "+s[tok:i])
	}
	return v, i, nil
}
