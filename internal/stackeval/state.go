// Package stackeval is the postfix stack-machine evaluator (spec §4.4),
// compiled from the same AST as internal/treeeval via internal/compiler.
// Both evaluators must be observably equivalent (spec §8 invariant 2):
// where/transform are shared verbatim from internal/treeeval, and every
// other special form here reproduces the tree evaluator's semantics by
// compiling the relevant sub-expression and recursing into Eval rather
// than duplicating evaluation rules in a second, divergent form.
//
// Ported from _examples/original_source/jsl/stack_evaluator.py
// (StackEvaluator.eval/eval_partial) and stack_special_forms.py
// (SpecialFormEvaluator), translated from Python exceptions to Go's
// explicit (*langerr.Error) return convention and from the reference's
// ad hoc builtins dict to this repo's env-bound internal/prelude
// builtins (a name is "in builtins" here simply by being bound in env).
package stackeval

import (
	"github.com/jsl-lang/jsl/internal/budget"
	"github.com/jsl-lang/jsl/internal/serialize"
	"github.com/jsl-lang/jsl/internal/value"
)

// State is the self-contained record a step-bounded evaluation returns
// on exhaustion (spec §4.4): {stack, pc, instructions, env,
// budget_checkpoint}, sufficient to resume the computation given the
// same prelude.
type State struct {
	Stack        []value.Value
	PC           int
	Instructions value.List
	Env          *value.Env
	Checkpoint   budget.Checkpoint
}

// ToSuspended converts a State to the wire-level serialize.SuspendedState
// shape for encoding (spec §4.8).
func (s *State) ToSuspended() serialize.SuspendedState {
	return serialize.SuspendedState{
		Stack:        s.Stack,
		PC:           s.PC,
		Instructions: s.Instructions,
		Env:          s.Env,
		Checkpoint:   s.Checkpoint,
	}
}

// FromSuspended reconstructs a State from a decoded serialize.SuspendedState.
func FromSuspended(s serialize.SuspendedState) *State {
	return &State{
		Stack:        s.Stack,
		PC:           s.PC,
		Instructions: s.Instructions,
		Env:          s.Env,
		Checkpoint:   s.Checkpoint,
	}
}
