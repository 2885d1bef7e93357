package expression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreprocessStripsWhitespace(t *testing.T) {
	got, err := Preprocess(" 1 2 +\t( 3 *\n4 ) ")
	require.NoError(t, err)
	assert.Equal(t, "12+(3*4)", got)
}

func TestPreprocessKeepsParenthesizedNumber(t *testing.T) {
	got, err := Preprocess("(42)")
	require.NoError(t, err)
	assert.Equal(t, "(42)", got)
}

func TestPreprocessRejects(t *testing.T) {
	tests := []struct {
		name string
		expr string
		msg  string
		pos  int
	}{
		{"empty", "", "empty expression", -1},
		{"whitespace", " \n ", "empty expression", -1},
		{"unclosed", "((1+2)", "unbalanced brackets", -1},
		{"closed early", "(1+2))+(3", "unbalanced brackets", 5},
		{"reversed", ")(", "unbalanced brackets", 0},
		{"single number", "1 000", "only one number provided", -1},
		{"signed exponent", "+2.5E-3", "only one number provided", -1},
		{"no digits", "(+)", "no numbers in expression", -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Preprocess(tc.expr)
			require.ErrorIs(t, err, ErrInvalidExpression)

			var e *Error
			require.ErrorAs(t, err, &e)
			assert.Contains(t, e.Msg, tc.msg)
			assert.Equal(t, tc.pos, e.Pos)
		})
	}
}
