package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"expression-calculator/internal/expression"
	"expression-calculator/internal/observability"
)

type options struct {
	maxDepth int
	verbose  bool
}

func (o *options) calculator() *expression.Calculator {
	return expression.New(expression.WithMaxDepth(o.maxDepth))
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "calc [expression]",
		Short: "Evaluate arithmetic expressions",
		Long: `calc evaluates infix arithmetic expressions with + - * / and
parentheses. Numbers may use "." or "," as decimal separator (not both)
and scientific notation such as 1,5e3. The result keeps the separator
of the input.

Without arguments calc starts an interactive session.`,
		Example: `  calc "(1+2)*3"
  calc 1,5 + 2
  calc repl`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return observability.InitConsoleLogger(opts.verbose)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			observability.SyncLogger()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return startREPL(cmd, opts)
			}
			return evaluate(cmd, opts.calculator(), strings.Join(args, " "))
		},
	}

	root.PersistentFlags().IntVar(&opts.maxDepth, "max-depth", expression.DefaultMaxDepth, "parenthesis nesting limit (0 disables it)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log every evaluation")

	root.AddCommand(newREPLCmd(opts))
	return root
}

// evaluate prints the result of expr or returns its error after printing it.
func evaluate(cmd *cobra.Command, calc *expression.Calculator, expr string) error {
	res, err := calc.Evaluate(expr)
	if err != nil {
		observability.Logger.Debug("evaluation failed", zap.String("expression", expr), zap.Error(err))
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
		return err
	}

	observability.Logger.Debug("evaluated",
		zap.String("expression", expr),
		zap.String("result", res.Text),
		zap.String("separator", res.Separator.String()),
	)
	fmt.Fprintln(cmd.OutOrStdout(), res.Text)
	return nil
}
