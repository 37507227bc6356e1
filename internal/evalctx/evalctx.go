// Package evalctx holds the one piece of process-wide mutable state the
// two evaluators (internal/treeeval, internal/stackeval) must share: the
// budget/env of whichever evaluator is currently driving a top-level
// Eval call. internal/prelude's higher-order builtins (map/filter/
// reduce/apply) need to invoke a user-supplied closure without
// internal/prelude importing either evaluator package (that would be an
// import cycle); this package is the late-binding seam that makes that
// possible regardless of which evaluator — tree or stack — is active.
package evalctx

import (
	"github.com/jsl-lang/jsl/internal/budget"
	"github.com/jsl-lang/jsl/internal/value"
)

var lastBudget *budget.Budget
var lastEnv *value.Env

// Enter installs b/env as current and returns a restore func to call on
// exit (typically deferred), so a nested evaluation sees its own budget
// and the outer pair is back in place once it returns. The state is
// process-wide, not per goroutine: evaluations running concurrently on
// different goroutines share it and are not isolated from each other.
func Enter(b *budget.Budget, env *value.Env) func() {
	prevBudget, prevEnv := lastBudget, lastEnv
	lastBudget, lastEnv = b, env
	return func() { lastBudget, lastEnv = prevBudget, prevEnv }
}

// Current returns the budget/env installed by the innermost Enter call.
func Current() (*budget.Budget, *value.Env) {
	return lastBudget, lastEnv
}
