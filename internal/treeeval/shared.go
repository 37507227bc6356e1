package treeeval

import (
	"github.com/jsl-lang/jsl/internal/budget"
	"github.com/jsl-lang/jsl/internal/value"
)

// EvalFunc is the shape both the tree evaluator and the stack evaluator's
// special-form sub-evaluator can supply to the shared where/transform
// helpers below, so this logic is implemented exactly once and both
// evaluators stay observably equivalent by construction (spec §8
// invariant 2).
type EvalFunc func(expr value.Value, env *value.Env, b *budget.Budget) (value.Value, error)
