package schemetest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/podhmo/minischeme/object"
)

func TestRunSharesSessionAcrossSources(t *testing.T) {
	r := NewRunner()
	result, err := r.Run(context.Background(), "(define x 20)", "(define (add y) (+ x y))", "(add 22)")
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if got := result.Inspect(); got != "42" {
		t.Errorf("Inspect() = %q, want %q", got, "42")
	}
	if _, ok := result.Get("add"); !ok {
		t.Errorf("add is not bound in the session")
	}
}

func TestRunFreshSessionPerCall(t *testing.T) {
	r := NewRunner()
	if _, err := r.Run(context.Background(), "(define x 1)"); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	_, err := r.Run(context.Background(), "x")
	var unbound *object.UnboundNameError
	if !errors.As(err, &unbound) {
		t.Fatalf("expected UnboundNameError, got %v", err)
	}
	if !strings.Contains(err.Error(), "source #0") {
		t.Errorf("error does not name the failing source: %v", err)
	}
}

func TestRunEmpty(t *testing.T) {
	result, err := NewRunner().Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if result.Value != object.NIL {
		t.Errorf("Value = %v, want nil", result.Value)
	}
}
