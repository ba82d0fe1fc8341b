package schemetest

import (
	"context"
	"fmt"

	"github.com/podhmo/minischeme"
	"github.com/podhmo/minischeme/object"
)

// Result provides access to the results of a script execution.
type Result struct {
	// Value is the value of the last form.
	Value object.Object
	env   *object.Environment
}

// Get retrieves a binding from the session's root environment.
func (r *Result) Get(name string) (object.Object, bool) {
	return r.env.Get(name)
}

// Inspect returns the display form of the last value.
func (r *Result) Inspect() string {
	return r.Value.Inspect()
}

// Runner is a test helper for running scripts, each in a fresh session.
type Runner struct {
	options []minischeme.Option
}

// NewRunner creates a new test runner. The options are applied to every interpreter it creates.
func NewRunner(options ...minischeme.Option) *Runner {
	return &Runner{options: options}
}

// Run evaluates the sources in order in a single new session.
func (r *Runner) Run(ctx context.Context, sources ...string) (*Result, error) {
	interp := minischeme.New(r.options...)
	var last object.Object = object.NIL
	for idx, src := range sources {
		v, err := interp.EvalString(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("evaluation of source #%d failed: %w", idx, err)
		}
		last = v
	}
	return &Result{Value: last, env: interp.Env()}, nil
}
