package object

import (
	"fmt"

	"github.com/podhmo/minischeme/ast"
)

// The evaluator only ever fails with one of the error types below.
// They are returned unchanged through every level of evaluation, so callers
// can match them with errors.As.

// UnboundNameError means a symbol was not found anywhere in the environment chain.
type UnboundNameError struct {
	Name string
}

func (e *UnboundNameError) Error() string {
	return fmt.Sprintf("unbound name: %s", e.Name)
}

// InvalidSyntaxError means a special form had the wrong shape, or no cond clause matched.
type InvalidSyntaxError struct {
	Node        ast.Node
	Description string
}

func (e *InvalidSyntaxError) Error() string {
	if e.Node == nil {
		return fmt.Sprintf("invalid syntax: %s", e.Description)
	}
	return fmt.Sprintf("invalid syntax: %s, in %s", e.Description, e.Node)
}

// TypeError means an operand or callee had the wrong runtime kind.
type TypeError struct {
	Expected string
	Found    Object
	Site     ast.Node
}

func (e *TypeError) Error() string {
	found := "<nothing>"
	if e.Found != nil {
		found = fmt.Sprintf("%s %q", e.Found.Type(), e.Found.Inspect())
	}
	msg := fmt.Sprintf("type error: expected %s, got %s", e.Expected, found)
	if e.Site != nil {
		msg += ", in " + e.Site.String()
	}
	return msg
}

// ArityMismatchError means a procedure received the wrong number of arguments.
// AtLeast is set for procedures that take Expected or more arguments.
type ArityMismatchError struct {
	Expected int
	Found    int
	AtLeast  bool
	Site     ast.Node
}

func (e *ArityMismatchError) Error() string {
	msg := fmt.Sprintf("wrong number of arguments. got=%d, want=%d", e.Found, e.Expected)
	if e.AtLeast {
		msg = fmt.Sprintf("wrong number of arguments. got=%d, want at least %d", e.Found, e.Expected)
	}
	if e.Site != nil {
		msg += ", in " + e.Site.String()
	}
	return msg
}

// RecursionLimitError means nested procedure calls went deeper than the configured limit.
type RecursionLimitError struct {
	Limit int
	Site  ast.Node
}

func (e *RecursionLimitError) Error() string {
	msg := fmt.Sprintf("recursion limit exceeded (max depth %d)", e.Limit)
	if e.Site != nil {
		msg += ", in " + e.Site.String()
	}
	return msg
}

// HostError carries failures that originate outside the language itself:
// host-registered builtins, or a cancelled context.
type HostError struct {
	Message string
	Err     error
}

func (e *HostError) Error() string {
	switch {
	case e.Err == nil:
		return e.Message
	case e.Message == "":
		return e.Err.Error()
	default:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
}

func (e *HostError) Unwrap() error { return e.Err }

// NewHostError formats a host error message, like fmt.Errorf without wrapping.
func NewHostError(format string, args ...any) *HostError {
	return &HostError{Message: fmt.Sprintf(format, args...)}
}
