package expression

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	singleNumber = regexp.MustCompile(`^[+-]?[0-9]+([.,][0-9]*)?([eE][+-]?[0-9]+)?$`)
	anyDigit     = regexp.MustCompile(`[0-9]`)
)

func checkEmpty(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return invalid(-1, "empty expression")
	}
	return nil
}

// Preprocess removes all whitespace from expr and rejects inputs that cannot
// be calculated: empty input, unbalanced brackets, a lone number and input
// without any digit.
func Preprocess(expr string) (string, error) {
	if err := checkEmpty(expr); err != nil {
		return "", err
	}

	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, expr)

	balance := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			balance++
		case ')':
			balance--
		}
		if balance < 0 {
			return "", invalid(i, "unbalanced brackets")
		}
	}
	if balance != 0 {
		return "", invalid(-1, "unbalanced brackets")
	}

	if singleNumber.MatchString(s) {
		return "", invalid(-1, "nothing to calculate - only one number provided")
	}
	if !anyDigit.MatchString(s) {
		return "", invalid(-1, "no numbers in expression")
	}

	return s, nil
}
