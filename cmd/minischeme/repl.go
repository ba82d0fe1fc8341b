package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/podhmo/minischeme"
	"github.com/podhmo/minischeme/ast"
	"github.com/podhmo/minischeme/internal/config"
	"github.com/podhmo/minischeme/object"
	"github.com/podhmo/minischeme/reader"
)

const helpText = `REPL commands:
  :env     List the names defined in the session
  :help    Show this help
  :quit    Exit the REPL
`

// lineReader is the part of *liner.State the REPL loop uses.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func runREPL(ctx context.Context, stdout, stderr io.Writer, interp *minischeme.Interpreter, p *printer, cfg *config.Config) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath, err := config.ExpandHome(cfg.HistoryFile)
	if err != nil {
		return fmt.Errorf("history file: %w", err)
	}
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	fmt.Fprintln(stdout, "minischeme REPL. Ctrl+D or :quit exits, :help lists commands.")
	repl(ctx, ln, stdout, stderr, interp, p, cfg.Prompt, cfg.ContinuationPrompt)
	return nil
}

// repl reads forms until EOF or :quit and prints the result of each one.
func repl(ctx context.Context, ln lineReader, stdout, stderr io.Writer, interp *minischeme.Interpreter, p *printer, prompt, cont string) {
	for ctx.Err() == nil {
		code, ok := readForm(ln, prompt, cont)
		if !ok {
			fmt.Fprintln(stdout)
			return
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return
			case ":help":
				fmt.Fprint(stdout, helpText)
			case ":env":
				fmt.Fprintln(stdout, strings.Join(interp.Env().Names(), " "))
			default:
				fmt.Fprintln(stdout, "unknown command. Type :help for a list.")
			}
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		// Ctrl+C while evaluating abandons the evaluation, not the session.
		evalCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
		err := interp.EvalEach(evalCtx, code, func(_ ast.Node, result object.Object) {
			fmt.Fprintln(stdout, p.formatValue(result))
		})
		stop()
		if err != nil {
			fmt.Fprintln(stderr, p.formatError(err))
		}
	}
}

// readForm reads lines until they make up complete forms. A Ctrl+C
// discards the pending input. It reports false at end of input.
func readForm(ln lineReader, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		current := prompt
		if b.Len() > 0 {
			current = cont
		}
		line, err := ln.Prompt(current)
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, err := reader.Parse(src); errors.Is(err, reader.ErrIncomplete) {
			continue
		}
		return src, true
	}
}
