package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"expression-calculator/internal/expression"
	"expression-calculator/internal/observability"
)

const prompt = "calc> "

// lineReader is the part of *readline.Instance the session loop uses.
type lineReader interface {
	Readline() (string, error)
	Close() error
}

func newREPLCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return startREPL(cmd, opts)
		},
	}
}

func historyFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "calc_history")
}

func startREPL(cmd *cobra.Command, opts *options) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile(),
		HistoryLimit:    1000,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("start line editor: %w", err)
	}

	return runREPL(cmd, opts.calculator(), rl)
}

// runREPL evaluates one expression per line until EOF or "exit". Failed
// expressions are reported and the session continues.
func runREPL(cmd *cobra.Command, calc *expression.Calculator, in lineReader) error {
	defer in.Close()

	for {
		line, err := in.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read line: %w", err)
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		if err := evaluate(cmd, calc, line); err != nil {
			observability.Logger.Debug("repl line rejected", zap.String("line", line))
		}
	}
}
