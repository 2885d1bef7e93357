package expression

import (
	"errors"
	"strconv"
)

// Error kinds. Every error returned by this package wraps exactly one of them.
var (
	ErrInvalidExpression = errors.New("invalid expression")
	ErrDivisionByZero    = errors.New("division by zero")
	ErrOutOfRange        = errors.New("number out of range")
)

// Error describes why an expression could not be calculated.
type Error struct {
	// Kind is one of the Err* sentinels.
	Kind error
	// Msg is the human-readable description.
	Msg string
	// Pos is the byte offset into the normalized (whitespace-free)
	// expression, or -1 if the failure has no single position.
	Pos int
}

func (err *Error) Error() string {
	if err.Pos < 0 {
		return err.Msg
	}
	return err.Msg + " at position " + strconv.Itoa(err.Pos)
}

func (err *Error) Unwrap() error {
	return err.Kind
}

func invalid(pos int, msg string) error {
	return &Error{Kind: ErrInvalidExpression, Msg: msg, Pos: pos}
}
