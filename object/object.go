package object

import (
	"fmt"
	"strings"

	"github.com/podhmo/minischeme/ast"
)

// ObjectType is a string representation of an object's type.
type ObjectType string

const (
	NUMBER_OBJ  ObjectType = "NUMBER"
	BOOLEAN_OBJ ObjectType = "BOOLEAN"
	NIL_OBJ     ObjectType = "NIL"
	BUILTIN_OBJ ObjectType = "BUILTIN"
	CLOSURE_OBJ ObjectType = "CLOSURE"
)

// Object is the interface that every runtime value implements.
type Object interface {
	// Type returns the type of the object.
	Type() ObjectType
	// Inspect returns the display form of the object.
	Inspect() string
}

// --- Number Object ---

// Number is a 64-bit floating point value.
type Number struct {
	Value float64
}

func (n *Number) Type() ObjectType { return NUMBER_OBJ }
func (n *Number) Inspect() string  { return ast.FormatNumber(n.Value) }

// --- Boolean Object ---

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return fmt.Sprintf("%t", b.Value) }

// --- Nil Object ---

// Nil is the result of evaluating an empty list.
type Nil struct{}

func (n *Nil) Type() ObjectType { return NIL_OBJ }
func (n *Nil) Inspect() string  { return "nil" }

var (
	NIL   = &Nil{}
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

// NativeBoolToBooleanObject returns the TRUE or FALSE singleton.
func NativeBoolToBooleanObject(b bool) *Boolean {
	if b {
		return TRUE
	}
	return FALSE
}

// --- Builtin Object ---

// BuiltinFunction is the native implementation of a builtin procedure.
// site is the call expression, used only to attribute errors.
type BuiltinFunction func(args []Object, site ast.Node) (Object, error)

// Builtin is a native procedure registered under a name.
type Builtin struct {
	Name string
	Fn   BuiltinFunction
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return b.Name }

// --- Closure Object ---

// Closure is a user-defined procedure. Env is the frame the closure was
// created in and is shared with every call of the closure.
type Closure struct {
	Name   string // empty for lambdas
	Params []string
	Body   []ast.Node
	Env    *Environment
}

func (c *Closure) Type() ObjectType { return CLOSURE_OBJ }
func (c *Closure) Inspect() string  { return c.Name }

// Signature renders the closure as it was declared, e.g. "(fact n)".
// It is used in log output and error messages, where an empty name is unhelpful.
func (c *Closure) Signature() string {
	name := c.Name
	if name == "" {
		name = "lambda"
	}
	parts := append([]string{name}, c.Params...)
	return "(" + strings.Join(parts, " ") + ")"
}
