package main

import (
	"errors"
	"fmt"
	"os"

	"expression-calculator/internal/expression"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Expression errors have already been reported by evaluate.
		var exprErr *expression.Error
		if !errors.As(err, &exprErr) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}
