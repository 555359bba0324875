package cli

import (
	gocontext "context"

	"github.com/example/schemadoc/internal/ctxutil"
)

// NewContext returns the context for a command run, carrying the operator
// name for the change log. Interrupts are left to the foreground program so
// an open editor receives them.
func NewContext() gocontext.Context {
	return ctxutil.WithOperator(gocontext.Background(), ctxutil.CurrentOperator())
}
