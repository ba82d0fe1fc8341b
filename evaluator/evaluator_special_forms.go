package evaluator

import (
	"context"
	"fmt"

	"github.com/podhmo/minischeme/ast"
	"github.com/podhmo/minischeme/object"
)

func invalidSyntax(node ast.Node, format string, args ...any) *object.InvalidSyntaxError {
	return &object.InvalidSyntaxError{Node: node, Description: fmt.Sprintf(format, args...)}
}

// (define name expr) or (define (name params...) body...)
func (e *Evaluator) evalDefine(ctx context.Context, list *ast.List, env *object.Environment, depth int) (object.Object, error) {
	if len(list.Elements) < 3 {
		return nil, invalidSyntax(list, "define requires 2 arguments")
	}

	switch target := list.Elements[1].(type) {
	case *ast.Symbol:
		if len(list.Elements) != 3 {
			return nil, invalidSyntax(list, "define requires 2 arguments")
		}
		if env.IsConstant(target.Name) {
			return nil, invalidSyntax(list, "cannot redefine builtin %q", target.Name)
		}
		val, err := e.eval(ctx, list.Elements[2], env, depth)
		if err != nil {
			return nil, err
		}
		env.Define(target.Name, val)
		return val, nil

	case *ast.List:
		if len(target.Elements) == 0 {
			return nil, invalidSyntax(list, "function name must be a symbol")
		}
		name, ok := target.Elements[0].(*ast.Symbol)
		if !ok {
			return nil, invalidSyntax(list, "function name must be a symbol")
		}
		if env.IsConstant(name.Name) {
			return nil, invalidSyntax(list, "cannot redefine builtin %q", name.Name)
		}
		params, err := parameterNames(list, target.Elements[1:])
		if err != nil {
			return nil, err
		}

		// The closure gets a frame of its own that binds its name, so the body
		// can call itself whatever later happens to the name in env.
		fnEnv := env.Child()
		fn := &object.Closure{
			Name:   name.Name,
			Params: params,
			Body:   list.Elements[2:],
			Env:    fnEnv,
		}
		fnEnv.Define(name.Name, fn)
		env.Define(name.Name, fn)
		return fn, nil

	default:
		return nil, invalidSyntax(list, "define requires a symbol or a list")
	}
}

// (lambda (params...) body)
func (e *Evaluator) evalLambda(list *ast.List, env *object.Environment) (object.Object, error) {
	if len(list.Elements) != 3 {
		return nil, invalidSyntax(list, "lambda requires 2 arguments")
	}
	paramList, ok := list.Elements[1].(*ast.List)
	if !ok {
		return nil, invalidSyntax(list, "lambda parameters must be a list")
	}
	params, err := parameterNames(list, paramList.Elements)
	if err != nil {
		return nil, err
	}
	return &object.Closure{Params: params, Body: list.Elements[2:3], Env: env}, nil
}

func parameterNames(form *ast.List, nodes []ast.Node) ([]string, error) {
	params := make([]string, 0, len(nodes))
	for _, p := range nodes {
		sym, ok := p.(*ast.Symbol)
		if !ok {
			return nil, invalidSyntax(form, "function parameters must be symbols, got %s", p)
		}
		params = append(params, sym.Name)
	}
	return params, nil
}

// evalBool evaluates node and requires a boolean result; form names the special form for the error.
func (e *Evaluator) evalBool(ctx context.Context, form *ast.List, node ast.Node, env *object.Environment, depth int) (bool, error) {
	val, err := e.eval(ctx, node, env, depth)
	if err != nil {
		return false, err
	}
	b, ok := val.(*object.Boolean)
	if !ok {
		head, _ := form.Head()
		return false, invalidSyntax(form, "%s requires boolean arguments, got %s", head, val.Type())
	}
	return b.Value, nil
}

func (e *Evaluator) evalAnd(ctx context.Context, list *ast.List, env *object.Environment, depth int) (object.Object, error) {
	if len(list.Elements) < 3 {
		return nil, invalidSyntax(list, "and requires at least 2 arguments")
	}
	for _, arg := range list.Elements[1:] {
		b, err := e.evalBool(ctx, list, arg, env, depth)
		if err != nil {
			return nil, err
		}
		if !b {
			return object.FALSE, nil
		}
	}
	return object.TRUE, nil
}

func (e *Evaluator) evalOr(ctx context.Context, list *ast.List, env *object.Environment, depth int) (object.Object, error) {
	if len(list.Elements) < 3 {
		return nil, invalidSyntax(list, "or requires at least 2 arguments")
	}
	for _, arg := range list.Elements[1:] {
		b, err := e.evalBool(ctx, list, arg, env, depth)
		if err != nil {
			return nil, err
		}
		if b {
			return object.TRUE, nil
		}
	}
	return object.FALSE, nil
}

func (e *Evaluator) evalNot(ctx context.Context, list *ast.List, env *object.Environment, depth int) (object.Object, error) {
	if len(list.Elements) != 2 {
		return nil, invalidSyntax(list, "not requires 1 argument")
	}
	b, err := e.evalBool(ctx, list, list.Elements[1], env, depth)
	if err != nil {
		return nil, err
	}
	return object.NativeBoolToBooleanObject(!b), nil
}

func (e *Evaluator) evalIf(ctx context.Context, list *ast.List, env *object.Environment, depth int) (object.Object, error) {
	if len(list.Elements) != 4 {
		return nil, invalidSyntax(list, "if requires 3 arguments")
	}
	cond, err := e.evalBool(ctx, list, list.Elements[1], env, depth)
	if err != nil {
		return nil, err
	}
	if cond {
		return e.eval(ctx, list.Elements[2], env, depth)
	}
	return e.eval(ctx, list.Elements[3], env, depth)
}

func (e *Evaluator) evalCond(ctx context.Context, list *ast.List, env *object.Environment, depth int) (object.Object, error) {
	if len(list.Elements) < 3 {
		return nil, invalidSyntax(list, "cond requires at least 2 clauses")
	}
	clauses := make([]*ast.List, 0, len(list.Elements)-1)
	for _, el := range list.Elements[1:] {
		clause, ok := el.(*ast.List)
		if !ok || len(clause.Elements) != 2 {
			return nil, invalidSyntax(list, "cond clauses must be (test result) pairs, got %s", el)
		}
		clauses = append(clauses, clause)
	}

	for _, clause := range clauses {
		test, result := clause.Elements[0], clause.Elements[1]
		if sym, ok := test.(*ast.Symbol); ok && sym.Name == "else" {
			return e.eval(ctx, result, env, depth)
		}
		val, err := e.eval(ctx, test, env, depth)
		if err != nil {
			return nil, err
		}
		b, ok := val.(*object.Boolean)
		if !ok {
			return nil, &object.TypeError{Expected: string(object.BOOLEAN_OBJ), Found: val, Site: clause}
		}
		if b.Value {
			return e.eval(ctx, result, env, depth)
		}
	}
	return nil, invalidSyntax(list, "no matching clause")
}
