// Package minischeme is a small interpreter for a Scheme-like expression language.
//
// An Interpreter owns one session: a root environment that accumulates
// definitions across calls to Eval and EvalString.
package minischeme

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/podhmo/minischeme/ast"
	"github.com/podhmo/minischeme/evaluator"
	"github.com/podhmo/minischeme/object"
	"github.com/podhmo/minischeme/reader"
)

// Interpreter is the main entry point for the language.
type Interpreter struct {
	eval      *evaluator.Evaluator
	globalEnv *object.Environment

	logger   *slog.Logger
	maxDepth int
	builtins []*object.Builtin
	globals  map[string]object.Object
}

// Option is a functional option for configuring the Interpreter.
type Option func(*Interpreter)

// WithLogger sets the logger used by the evaluator.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Interpreter) {
		i.logger = logger
	}
}

// WithMaxDepth bounds nested procedure calls. A negative value disables the limit.
func WithMaxDepth(n int) Option {
	return func(i *Interpreter) {
		i.maxDepth = n
	}
}

// WithBuiltin registers an extra native procedure. Like the standard
// builtins it is installed as a constant of the root environment.
// Implementations should report their own failures as *object.HostError.
func WithBuiltin(name string, fn object.BuiltinFunction) Option {
	return func(i *Interpreter) {
		i.builtins = append(i.builtins, &object.Builtin{Name: name, Fn: fn})
	}
}

// WithGlobals pre-defines ordinary (redefinable) bindings in the root environment.
// Names that are already constants (builtins, true, false) cannot be shadowed
// this way; such entries are skipped with a warning.
func WithGlobals(globals map[string]object.Object) Option {
	return func(i *Interpreter) {
		for name, value := range globals {
			i.globals[name] = value
		}
	}
}

// New creates a new interpreter with the builtins installed.
func New(options ...Option) *Interpreter {
	i := &Interpreter{
		globals: make(map[string]object.Object),
	}
	for _, opt := range options {
		opt(i)
	}

	i.eval = evaluator.New(evaluator.Config{
		Logger:   i.logger,
		MaxDepth: i.maxDepth,
	})

	i.globalEnv = evaluator.NewRootEnvironment()
	for _, b := range i.builtins {
		i.globalEnv.SetConstant(b.Name, b)
	}
	for name, value := range i.globals {
		if i.globalEnv.IsConstant(name) {
			if i.logger != nil {
				i.logger.Warn("global ignored, name is a builtin", "name", name)
			}
			continue
		}
		i.globalEnv.Define(name, value)
	}
	return i
}

// Env returns the session's root environment.
func (i *Interpreter) Env() *object.Environment {
	return i.globalEnv
}

// Eval evaluates a single syntax tree in the session's root environment.
func (i *Interpreter) Eval(ctx context.Context, node ast.Node) (object.Object, error) {
	return i.eval.Eval(ctx, node, i.globalEnv)
}

// EvalString evaluates every form in src in order and returns the value of
// the last one. Empty input evaluates to nil.
func (i *Interpreter) EvalString(ctx context.Context, src string) (object.Object, error) {
	var last object.Object = object.NIL
	err := i.EvalEach(ctx, src, func(_ ast.Node, result object.Object) {
		last = result
	})
	if err != nil {
		return nil, err
	}
	return last, nil
}

// EvalEach evaluates every form in src in order, passing each result to fn.
// Evaluation stops at the first error; forms evaluated before it keep their effects.
func (i *Interpreter) EvalEach(ctx context.Context, src string, fn func(node ast.Node, result object.Object)) error {
	nodes, err := reader.Parse(src)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	for _, node := range nodes {
		result, err := i.Eval(ctx, node)
		if err != nil {
			return err
		}
		fn(node, result)
	}
	return nil
}
