package evaluator

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/podhmo/minischeme/ast"
	"github.com/podhmo/minischeme/object"
)

// DefaultMaxDepth is the nesting limit for procedure calls when Config.MaxDepth is zero.
const DefaultMaxDepth = 10000

// Config holds the configuration for creating a new Evaluator.
type Config struct {
	Logger *slog.Logger
	// MaxDepth bounds nested closure applications. Zero means DefaultMaxDepth,
	// a negative value disables the check.
	MaxDepth int
}

// Evaluator walks syntax trees. It keeps no per-evaluation state, so one
// Evaluator may be shared by goroutines that each use their own environment.
type Evaluator struct {
	logger   *slog.Logger
	maxDepth int
}

// New creates a new Evaluator.
func New(cfg Config) *Evaluator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	}
	maxDepth := cfg.MaxDepth
	if maxDepth == 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Evaluator{logger: logger, maxDepth: maxDepth}
}

// Eval evaluates node in env. define forms mutate env; nothing else does.
// A nil node, typed or not, anywhere in the tree is an *object.InvalidSyntaxError.
func (e *Evaluator) Eval(ctx context.Context, node ast.Node, env *object.Environment) (object.Object, error) {
	return e.eval(ctx, node, env, 0)
}

// eval is the main dispatch. depth counts the closure applications on the current path.
func (e *Evaluator) eval(ctx context.Context, node ast.Node, env *object.Environment, depth int) (object.Object, error) {
	switch n := node.(type) {
	case *ast.Number:
		if n == nil {
			return nil, errMissingExpression()
		}
		return &object.Number{Value: n.Value}, nil
	case *ast.Symbol:
		if n == nil {
			return nil, errMissingExpression()
		}
		return env.Lookup(n.Name)
	case *ast.List:
		if n == nil {
			return nil, errMissingExpression()
		}
		if len(n.Elements) == 0 {
			return object.NIL, nil
		}
		return e.evalList(ctx, n, env, depth)
	case nil:
		return nil, errMissingExpression()
	}
	return nil, &object.InvalidSyntaxError{Node: node, Description: fmt.Sprintf("evaluation not implemented for %T", node)}
}

func errMissingExpression() *object.InvalidSyntaxError {
	return &object.InvalidSyntaxError{Description: "missing expression"}
}

// evalList recognizes the special forms by their head symbol; every other
// non-empty list is a procedure call.
func (e *Evaluator) evalList(ctx context.Context, list *ast.List, env *object.Environment, depth int) (object.Object, error) {
	if head, ok := list.Head(); ok {
		switch head {
		case "define":
			return e.evalDefine(ctx, list, env, depth)
		case "lambda":
			return e.evalLambda(list, env)
		case "and":
			return e.evalAnd(ctx, list, env, depth)
		case "or":
			return e.evalOr(ctx, list, env, depth)
		case "not":
			return e.evalNot(ctx, list, env, depth)
		case "if":
			return e.evalIf(ctx, list, env, depth)
		case "cond":
			return e.evalCond(ctx, list, env, depth)
		}
	}
	return e.evalCall(ctx, list, env, depth)
}

func (e *Evaluator) evalCall(ctx context.Context, call *ast.List, env *object.Environment, depth int) (object.Object, error) {
	fn, err := e.eval(ctx, call.Elements[0], env, depth)
	if err != nil {
		return nil, err
	}
	args, err := e.evalExpressions(ctx, call.Elements[1:], env, depth)
	if err != nil {
		return nil, err
	}
	return e.applyFunction(ctx, call, fn, args, depth)
}

func (e *Evaluator) evalExpressions(ctx context.Context, exps []ast.Node, env *object.Environment, depth int) ([]object.Object, error) {
	result := make([]object.Object, 0, len(exps))
	for _, exp := range exps {
		val, err := e.eval(ctx, exp, env, depth)
		if err != nil {
			return nil, err
		}
		result = append(result, val)
	}
	return result, nil
}

func (e *Evaluator) applyFunction(ctx context.Context, call *ast.List, fn object.Object, args []object.Object, depth int) (object.Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, &object.HostError{Message: "evaluation stopped", Err: err}
	}

	switch fn := fn.(type) {
	case *object.Builtin:
		e.logc(ctx, slog.LevelDebug, depth, "apply builtin", "name", fn.Name, "nargs", len(args))
		return fn.Fn(args, call)

	case *object.Closure:
		if len(fn.Params) != len(args) {
			return nil, &object.ArityMismatchError{Expected: len(fn.Params), Found: len(args), Site: call}
		}
		if e.maxDepth >= 0 && depth >= e.maxDepth {
			e.logc(ctx, slog.LevelWarn, depth, "call stack depth exceeded", "function", fn.Signature())
			return nil, &object.RecursionLimitError{Limit: e.maxDepth, Site: call}
		}
		e.logc(ctx, slog.LevelDebug, depth, "apply closure", "function", fn.Signature())
		return e.evalBody(ctx, fn.Body, extendFunctionEnv(fn, args), depth+1)

	default:
		return nil, &object.TypeError{Expected: "function", Found: fn, Site: call}
	}
}

// extendFunctionEnv creates the call frame: a child of the closure's
// captured frame holding one binding per parameter.
func extendFunctionEnv(fn *object.Closure, args []object.Object) *object.Environment {
	env := fn.Env.Child()
	for i, name := range fn.Params {
		env.Define(name, args[i])
	}
	return env
}

// evalBody evaluates the expressions of a procedure body in order and returns the last value.
func (e *Evaluator) evalBody(ctx context.Context, body []ast.Node, env *object.Environment, depth int) (object.Object, error) {
	var result object.Object = object.NIL
	for _, exp := range body {
		val, err := e.eval(ctx, exp, env, depth)
		if err != nil {
			return nil, err
		}
		result = val
	}
	return result, nil
}
