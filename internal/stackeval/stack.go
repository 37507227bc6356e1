package stackeval

import (
	"github.com/jsl-lang/jsl/internal/budget"
	"github.com/jsl-lang/jsl/internal/compiler"
	"github.com/jsl-lang/jsl/internal/evalctx"
	"github.com/jsl-lang/jsl/internal/langerr"
	"github.com/jsl-lang/jsl/internal/value"
)

// Eval runs instructions to completion, returning the single value left
// on the stack.
func Eval(instructions value.List, env *value.Env, b *budget.Budget) (value.Value, error) {
	defer evalctx.Enter(b, env)()
	result, state, err := run(nil, 0, instructions, env, b, -1)
	if err != nil {
		return nil, err
	}
	if state != nil {
		// Unbounded run with maxSteps=-1 never suspends; reaching here
		// would be an internal logic error in run's loop condition.
		return nil, langerr.New(langerr.InvalidProgram, "evaluation suspended unexpectedly")
	}
	return result, nil
}

// EvalPartial runs instructions for at most maxSteps dispatched
// instructions, returning (value, nil) on completion or (nil, state) on
// exhaustion (spec §4.4's step-bounded execution contract).
func EvalPartial(instructions value.List, env *value.Env, b *budget.Budget, maxSteps int) (value.Value, *State, error) {
	defer evalctx.Enter(b, env)()
	return run(nil, 0, instructions, env, b, maxSteps)
}

// Resume continues a previously suspended State for at most maxSteps
// further steps.
func Resume(s *State, b *budget.Budget, maxSteps int) (value.Value, *State, error) {
	b.Restore(s.Checkpoint)
	defer evalctx.Enter(b, s.Env)()
	return run(s.Stack, s.PC, s.Instructions, s.Env, b, maxSteps)
}

// EvalFunc adapts Eval to internal/treeeval's shared EvalFunc signature
// (expr, env, budget) -> (value, error), compiling expr to postfix first.
// Used to hand where/transform's per-item condition/operation expressions
// to this evaluator instead of duplicating their logic.
func EvalFunc(expr value.Value, env *value.Env, b *budget.Budget) (value.Value, error) {
	return Eval(compiler.Compile(expr), env, b)
}

// run is the shared dispatch loop behind Eval/EvalPartial/Resume. A
// negative maxSteps means unbounded (runs until instructions exhausted
// or an error/suspend-worthy limit is hit).
func run(initStack []value.Value, initPC int, instructions value.List, env *value.Env, b *budget.Budget, maxSteps int) (value.Value, *State, error) {
	stack := append([]value.Value(nil), initStack...)
	pc := initPC
	steps := 0

	suspend := func() *State {
		return &State{Stack: stack, PC: pc, Instructions: instructions, Env: env, Checkpoint: b.Checkpoint()}
	}

	for pc < len(instructions) {
		if maxSteps >= 0 && steps >= maxSteps {
			return nil, suspend(), nil
		}
		if err := b.CheckTime(); err != nil {
			return nil, nil, err
		}

		item := instructions[pc]

		if s, ok := item.(value.String); ok && string(s) == compiler.MarkerSpecialForm {
			if pc+1 >= len(instructions) {
				return nil, nil, langerr.New(langerr.InvalidProgram, "dangling special_form marker")
			}
			formExpr, ok := instructions[pc+1].(value.List)
			if !ok || len(formExpr) == 0 {
				return nil, nil, langerr.New(langerr.InvalidProgram, "invalid special form payload")
			}
			if err := b.ConsumeGas(budget.GasCall); err != nil {
				return nil, nil, err
			}
			formName, ok := formExpr[0].(value.String)
			if !ok {
				return nil, nil, langerr.New(langerr.SyntaxError, "special form head must be a string")
			}
			result, err := evalSpecialForm(string(formName), formExpr[1:], env, b)
			if err != nil {
				return nil, nil, err
			}
			stack = append(stack, result)
			pc += 2
			steps++
			continue
		}

		if n, ok := item.(value.Number); ok && pc+1 < len(instructions) {
			if opName, ok := instructions[pc+1].(value.String); ok && isOperatorPosition(string(opName), env) {
				arity := int(n)
				result, newStack, err := dispatchOperator(string(opName), arity, stack, env, b)
				if err != nil {
					return nil, nil, err
				}
				stack = append(newStack, result)
				pc += 2
				steps++
				continue
			}
		}

		v, err := pushLiteralOrVariable(item, env, b)
		if err != nil {
			return nil, nil, err
		}
		stack = append(stack, v)
		pc++
		steps++
	}

	if len(stack) != 1 {
		return nil, nil, langerr.New(langerr.InvalidProgram, "invalid program: expected 1 item on stack, have %d", len(stack))
	}
	return stack[0], nil, nil
}

// isOperatorPosition mirrors the reference's arity-detection guard: a
// number is an arity marker only when the following string names one of
// the three structural markers or an actually-bound name — never a bare
// literal/variable string the compiler happened to place there (spec
// §4.3's documented postfix ambiguity).
func isOperatorPosition(name string, env *value.Env) bool {
	switch name {
	case compiler.MarkerApply, compiler.MarkerDict, compiler.MarkerEmptyList:
		return true
	}
	_, ok := env.Get(name)
	return ok
}

func pushLiteralOrVariable(item value.Value, env *value.Env, b *budget.Budget) (value.Value, error) {
	switch t := item.(type) {
	case value.Null, value.Bool, value.Number:
		if err := b.ConsumeGas(budget.GasLiteral); err != nil {
			return nil, err
		}
		return t, nil
	case value.String:
		s := string(t)
		if len(s) > 0 && s[0] == '@' {
			if err := b.ConsumeGas(budget.GasLiteral); err != nil {
				return nil, err
			}
			lit := s[1:]
			if err := b.CheckStringLength(len(lit)); err != nil {
				return nil, err
			}
			return value.String(lit), nil
		}
		if err := b.ConsumeGas(budget.GasVariable); err != nil {
			return nil, err
		}
		v, ok := env.Get(s)
		if !ok {
			return nil, langerr.New(langerr.UndefinedSymbol, "undefined symbol: %s", s)
		}
		return v, nil
	case *value.Map:
		if err := b.ConsumeGas(budget.GasCollection + budget.GasPerItem*int64(t.Len())); err != nil {
			return nil, err
		}
		return t, nil
	default:
		if err := b.ConsumeGas(budget.GasLiteral); err != nil {
			return nil, err
		}
		return item, nil
	}
}

func dispatchOperator(name string, arity int, stack []value.Value, env *value.Env, b *budget.Budget) (value.Value, []value.Value, error) {
	switch name {
	case compiler.MarkerApply:
		if len(stack) < arity+1 {
			return nil, nil, langerr.New(langerr.InvalidProgram, "stack underflow: apply needs function + %d args, have %d", arity, len(stack))
		}
		args := append([]value.Value(nil), stack[len(stack)-arity:]...)
		fn := stack[len(stack)-arity-1]
		rest := stack[:len(stack)-arity-1]
		result, err := Apply(fn, args, b)
		return result, rest, err

	case compiler.MarkerEmptyList:
		if err := b.ConsumeGas(budget.GasCollection); err != nil {
			return nil, nil, err
		}
		return value.List{}, stack, nil

	case compiler.MarkerDict:
		if len(stack) < arity {
			return nil, nil, langerr.New(langerr.InvalidProgram, "stack underflow: __dict__ needs %d args, have %d", arity, len(stack))
		}
		args := stack[len(stack)-arity:]
		rest := stack[:len(stack)-arity]
		out := value.NewMap()
		for i := 0; i+1 < len(args); i += 2 {
			key, ok := args[i].(value.String)
			if !ok {
				return nil, nil, langerr.New(langerr.TypeError, "dict key must be a string, got %s", value.TypeName(args[i]))
			}
			out = out.Set(string(key), args[i+1])
		}
		if err := b.ConsumeGas(budget.GasCollection + budget.GasPerItem*int64(out.Len())); err != nil {
			return nil, nil, err
		}
		if err := b.CheckCollectionSize(out.Len()); err != nil {
			return nil, nil, err
		}
		return out, rest, nil

	default:
		if len(stack) < arity {
			return nil, nil, langerr.New(langerr.InvalidProgram, "stack underflow: %s needs %d args, have %d", name, arity, len(stack))
		}
		args := append([]value.Value(nil), stack[len(stack)-arity:]...)
		rest := stack[:len(stack)-arity]
		fn, ok := env.Get(name)
		if !ok {
			return nil, nil, langerr.New(langerr.UndefinedSymbol, "undefined function: %s", name)
		}
		result, err := Apply(fn, args, b)
		return result, rest, err
	}
}

// Apply invokes fn (a Closure or Builtin) with already-evaluated args,
// compiling and recursing into this package's own Eval for a closure's
// body rather than delegating to internal/treeeval — the stack evaluator
// must remain self-contained for spec §8 invariant 2 to mean anything.
func Apply(fn value.Value, args []value.Value, b *budget.Budget) (value.Value, error) {
	if err := b.ConsumeGas(budget.GasCall); err != nil {
		return nil, err
	}
	switch f := fn.(type) {
	case *value.Closure:
		if len(args) != len(f.Params) {
			return nil, langerr.New(langerr.ArityError, "arity mismatch: expected %d, got %d", len(f.Params), len(args))
		}
		if err := b.EnterCall(); err != nil {
			return nil, err
		}
		defer b.ExitCall()
		reattachPrelude(f.Env)
		callEnv := f.Env.ExtendPairs(f.Params, args)
		bodyInstructions := compiler.Compile(f.Body)
		return Eval(bodyInstructions, callEnv, b)
	case *value.Builtin:
		return f.Fn(args)
	default:
		return nil, langerr.New(langerr.TypeError, "cannot call non-callable value of type %s", value.TypeName(fn))
	}
}
