package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/podhmo/minischeme"
	"github.com/podhmo/minischeme/ast"
	"github.com/podhmo/minischeme/object"
)

// runExprs evaluates each -e expression in one session and prints every result.
func runExprs(ctx context.Context, w io.Writer, interp *minischeme.Interpreter, p *printer, exprs []string) error {
	for _, expr := range exprs {
		err := interp.EvalEach(ctx, expr, func(_ ast.Node, result object.Object) {
			fmt.Fprintln(w, p.formatValue(result))
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// scriptResult is the buffered output of one script.
type scriptResult struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
	failed bool
}

// runScripts runs every file in a session of its own. Files are evaluated
// concurrently; their output is written in argument order once all are done.
func runScripts(ctx context.Context, stdout, stderr io.Writer, logger *slog.Logger, newInterpreter func() *minischeme.Interpreter, p *printer, files []string) error {
	results := make([]*scriptResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, filename := range files {
		results[i] = &scriptResult{}
		g.Go(func() error {
			src, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("reading %s: %w", filename, err)
			}
			logger.DebugContext(ctx, "run script", "file", filename, "size", len(src))

			r := results[i]
			err = newInterpreter().EvalEach(ctx, string(src), func(_ ast.Node, result object.Object) {
				fmt.Fprintln(&r.stdout, p.formatValue(result))
			})
			if err != nil {
				r.failed = true
				fmt.Fprintln(&r.stderr, p.formatError(fmt.Errorf("%s: %w", filename, err)))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for i, r := range results {
		if len(files) > 1 {
			fmt.Fprintf(stdout, "==> %s <==\n", files[i])
		}
		if _, err := r.stdout.WriteTo(stdout); err != nil {
			return err
		}
		if _, err := r.stderr.WriteTo(stderr); err != nil {
			return err
		}
		if r.failed {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d script(s) failed", failed, len(files))
	}
	return nil
}
