package main

import (
	"github.com/podhmo/minischeme/object"
)

func red(s string) string    { return "\x1b[31m" + s + "\x1b[0m" }
func yellow(s string) string { return "\x1b[33m" + s + "\x1b[0m" }
func blue(s string) string   { return "\x1b[34m" + s + "\x1b[0m" }
func bold(s string) string   { return "\x1b[1m" + s + "\x1b[0m" }

// printer renders values and errors for the terminal.
type printer struct {
	color bool
}

func (p *printer) formatValue(obj object.Object) string {
	s := obj.Inspect()
	if !p.color {
		return s
	}
	switch obj.Type() {
	case object.NUMBER_OBJ:
		return blue(s)
	case object.BOOLEAN_OBJ:
		return yellow(s)
	case object.BUILTIN_OBJ, object.CLOSURE_OBJ:
		return red(s)
	case object.NIL_OBJ:
		return bold(s)
	default:
		return s
	}
}

func (p *printer) formatError(err error) string {
	s := "Error: " + err.Error()
	if !p.color {
		return s
	}
	return red(s)
}
