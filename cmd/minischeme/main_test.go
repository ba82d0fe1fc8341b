package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/peterh/liner"

	"github.com/podhmo/minischeme"
	"github.com/podhmo/minischeme/internal/config"
	"github.com/podhmo/minischeme/object"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeScript(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunExprs(t *testing.T) {
	cfg := config.Default()
	cfg.Color = false

	var stdout, stderr bytes.Buffer
	exprs := []string{"(define (sq x) (* x x))", "(sq 4) (< 1 2)", "()"}
	if err := run(context.Background(), &stdout, &stderr, discardLogger(), cfg, exprs, nil); err != nil {
		t.Fatalf("run() failed: %v", err)
	}
	want := "sq\n16\ntrue\nnil\n"
	if diff := cmp.Diff(want, stdout.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRunExprsError(t *testing.T) {
	cfg := config.Default()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), &stdout, &stderr, discardLogger(), cfg, []string{"(+ 1 true)"}, nil)
	if err == nil || !strings.Contains(err.Error(), "type error") {
		t.Fatalf("expected a type error, got %v", err)
	}
}

func TestRunScripts(t *testing.T) {
	dir := t.TempDir()
	fact := writeScript(t, dir, "fact.scm", `
; factorial
(define (fact n) (if (<= n 1) 1 (* n (fact (- n 1)))))
(fact 5)
`)
	adder := writeScript(t, dir, "adder.scm", `
(define (make-adder n) (lambda (x) (+ x n)))
(define add5 (make-adder 5))
(add5 10)
`)

	cfg := config.Default()
	cfg.Color = false
	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), &stdout, &stderr, discardLogger(), cfg, nil, []string{fact, adder}); err != nil {
		t.Fatalf("run() failed: %v\n%s", err, stderr.String())
	}

	want := "==> " + fact + " <==\nfact\n120\n==> " + adder + " <==\nmake-adder\n\n15\n"
	if diff := cmp.Diff(want, stdout.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRunScriptsIsolatedSessions(t *testing.T) {
	dir := t.TempDir()
	first := writeScript(t, dir, "first.scm", "(define shared 1)")
	second := writeScript(t, dir, "second.scm", "shared")

	cfg := config.Default()
	cfg.Color = false
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), &stdout, &stderr, discardLogger(), cfg, nil, []string{first, second})
	if err == nil {
		t.Fatal("second script must not see definitions of the first")
	}
	if !strings.Contains(stderr.String(), "unbound name: shared") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRunScriptsMissingFile(t *testing.T) {
	cfg := config.Default()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), &stdout, &stderr, discardLogger(), cfg, nil, []string{filepath.Join(t.TempDir(), "nope.scm")})
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestPrinter(t *testing.T) {
	plain := &printer{}
	colored := &printer{color: true}

	tests := []struct {
		obj     object.Object
		plain   string
		colored string
	}{
		{&object.Number{Value: 1.5}, "1.5", blue("1.5")},
		{object.TRUE, "true", yellow("true")},
		{object.NIL, "nil", bold("nil")},
		{&object.Builtin{Name: "+"}, "+", red("+")},
		{&object.Closure{Name: "f"}, "f", red("f")},
	}
	for _, tt := range tests {
		if got := plain.formatValue(tt.obj); got != tt.plain {
			t.Errorf("plain formatValue = %q, want %q", got, tt.plain)
		}
		if got := colored.formatValue(tt.obj); got != tt.colored {
			t.Errorf("colored formatValue = %q, want %q", got, tt.colored)
		}
	}
}

// fakeLiner replays canned lines, then reports end of input.
type fakeLiner struct {
	lines   []string
	prompts []string
	history []string
}

func (f *fakeLiner) Prompt(prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if len(f.lines) == 0 {
		return "", io.EOF
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	if line == "^C" {
		return "", liner.ErrPromptAborted
	}
	return line, nil
}

func (f *fakeLiner) AppendHistory(item string) {
	f.history = append(f.history, item)
}

func TestREPL(t *testing.T) {
	ln := &fakeLiner{lines: []string{
		"(define (fact n)",
		"  (if (<= n 1) 1 (* n (fact (- n 1)))))",
		"(fact 5)",
		"(fact",
		"^C",
		"",
		"(f 5)",
		"(define x 2) x",
		":help",
		":bogus",
		":quit",
		"(never reached)",
	}}

	var stdout, stderr bytes.Buffer
	interp := minischeme.New()
	repl(context.Background(), ln, &stdout, &stderr, interp, &printer{}, "> ", ".. ")

	wantOut := "fact\n120\n2\n2\n" + helpText + "unknown command. Type :help for a list.\n"
	if diff := cmp.Diff(wantOut, stdout.String()); diff != "" {
		t.Errorf("stdout mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("Error: unbound name: f\n", stderr.String()); diff != "" {
		t.Errorf("stderr mismatch (-want +got):\n%s", diff)
	}

	wantPrompts := []string{"> ", ".. ", "> ", "> ", ".. ", "> ", "> ", "> ", "> ", "> ", "> "}
	if diff := cmp.Diff(wantPrompts, ln.prompts); diff != "" {
		t.Errorf("prompts mismatch (-want +got):\n%s", diff)
	}
	wantHistory := []string{
		"(define (fact n)   (if (<= n 1) 1 (* n (fact (- n 1)))))",
		"(fact 5)",
		"(f 5)",
		"(define x 2) x",
	}
	if diff := cmp.Diff(wantHistory, ln.history); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
}

func TestREPLEndOfInput(t *testing.T) {
	ln := &fakeLiner{lines: []string{"(+ 1 2)"}}
	var stdout, stderr bytes.Buffer
	repl(context.Background(), ln, &stdout, &stderr, minischeme.New(), &printer{}, "> ", ".. ")
	if diff := cmp.Diff("3\n\n", stdout.String()); diff != "" {
		t.Errorf("stdout mismatch (-want +got):\n%s", diff)
	}
}
