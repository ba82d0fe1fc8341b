package ast

import (
	"strconv"
	"strings"
)

// Node is a single parsed unit of source: a symbol, a number, or a list.
// Nodes are never mutated after construction, so they can be shared freely.
type Node interface {
	// String returns the node in read syntax.
	String() string
	node()
}

// Symbol is an identifier reference.
type Symbol struct {
	Name string
}

func (s *Symbol) node()          {}
func (s *Symbol) String() string { return s.Name }

// Number is a numeric literal.
type Number struct {
	Value float64
}

func (n *Number) node()          {}
func (n *Number) String() string { return FormatNumber(n.Value) }

// List is a compound form. The empty list is valid.
type List struct {
	Elements []Node
}

func (l *List) node() {}

func (l *List) String() string {
	var out strings.Builder
	out.WriteString("(")
	for i, el := range l.Elements {
		if i > 0 {
			out.WriteString(" ")
		}
		out.WriteString(el.String())
	}
	out.WriteString(")")
	return out.String()
}

// Head returns the first element's symbol name, if the list starts with a symbol.
func (l *List) Head() (string, bool) {
	if len(l.Elements) == 0 {
		return "", false
	}
	sym, ok := l.Elements[0].(*Symbol)
	if !ok || sym == nil {
		return "", false
	}
	return sym.Name, true
}

// NewSymbol, NewNumber and NewList are shorthands used mostly by tests.
func NewSymbol(name string) *Symbol { return &Symbol{Name: name} }

func NewNumber(v float64) *Number { return &Number{Value: v} }

func NewList(elements ...Node) *List { return &List{Elements: elements} }

// FormatNumber renders a float in its shortest decimal form, e.g. 6, -5, 0.5.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
