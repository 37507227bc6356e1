// Package treeeval is the direct recursive evaluator over the source AST
// (spec §4.2). It also hosts the where/transform implementations shared
// with internal/stackeval's special-form sub-evaluator, so both
// evaluators stay observably equivalent by construction.
//
// Ported from _examples/original_source/jsl/evaluator.py (eval_expr),
// with the Go idiom — a switch over the concrete value.Value kind
// returning (value.Value, error) — taken from
// internal/eval/eval_simple.go's SimpleEvaluator.evalExpr.
package treeeval

import (
	"github.com/jsl-lang/jsl/internal/budget"
	"github.com/jsl-lang/jsl/internal/evalctx"
	"github.com/jsl-lang/jsl/internal/langerr"
	"github.com/jsl-lang/jsl/internal/prelude"
	"github.com/jsl-lang/jsl/internal/serialize"
	"github.com/jsl-lang/jsl/internal/value"
)

func init() {
	prelude.SetApplier(applyViaContext)
}

// applyViaContext backs the prelude.Apply hook used by higher-order
// builtins (map/filter/reduce/apply): it always applies through the tree
// evaluator, whose Apply is observably equivalent to the stack
// evaluator's regardless of which evaluator is actually driving the
// surrounding program (spec §8 invariant 2) — the budget/env it needs
// come from internal/evalctx, set by whichever evaluator's Eval is
// currently on top.
func applyViaContext(fn value.Value, args []value.Value) (value.Value, error) {
	b, _ := evalctx.Current()
	return Apply(fn, args, b)
}

// Eval is the tree evaluator's entry point: eval(expr, env) -> Value,
// or a typed *langerr.Error (spec §4.2).
func Eval(expr value.Value, env *value.Env, b *budget.Budget) (value.Value, error) {
	defer evalctx.Enter(b, env)()
	return eval(expr, env, b)
}

func eval(expr value.Value, env *value.Env, b *budget.Budget) (value.Value, error) {
	if err := b.CheckTime(); err != nil {
		return nil, err
	}

	switch t := expr.(type) {
	case value.Null:
		return chargeGas(b, budget.GasLiteral, t)
	case value.Bool:
		return chargeGas(b, budget.GasLiteral, t)
	case value.Number:
		return chargeGas(b, budget.GasLiteral, t)

	case value.String:
		s := string(t)
		if len(s) > 0 && s[0] == '@' {
			return chargeGas(b, budget.GasLiteral, value.String(s[1:]))
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
		return evalDictLiteral(t, env, b)

	case value.List:
		return evalList(t, env, b)

	default:
		return nil, langerr.New(langerr.SyntaxError, "unrecognized expression shape")
	}
}

func chargeGas(b *budget.Budget, cost int64, v value.Value) (value.Value, error) {
	if err := b.ConsumeGas(cost); err != nil {
		return nil, err
	}
	return v, nil
}

func evalDictLiteral(m *value.Map, env *value.Env, b *budget.Budget) (value.Value, error) {
	out := value.NewMap()
	for _, k := range m.Keys() {
		keyVal, err := eval(value.String(k), env, b)
		if err != nil {
			return nil, err
		}
		keyStr, ok := keyVal.(value.String)
		if !ok {
			return nil, langerr.New(langerr.TypeError, "dict key must evaluate to a string, got %s", value.TypeName(keyVal))
		}
		v, _ := m.Get(k)
		valResult, err := eval(v, env, b)
		if err != nil {
			return nil, err
		}
		out = out.Set(string(keyStr), valResult)
	}
	if err := b.ConsumeGas(budget.GasCollection + budget.GasPerItem*int64(out.Len())); err != nil {
		return nil, err
	}
	if err := b.CheckCollectionSize(out.Len()); err != nil {
		return nil, err
	}
	return out, nil
}

func evalList(l value.List, env *value.Env, b *budget.Budget) (value.Value, error) {
	if len(l) == 0 {
		if err := b.ConsumeGas(budget.GasCollection); err != nil {
			return nil, err
		}
		return value.List{}, nil
	}

	head, isKeyword := l[0].(value.String)
	if isKeyword {
		switch string(head) {
		case "quote", "@":
			if len(l) != 2 {
				return nil, langerr.New(langerr.SyntaxError, "quote expects 1 argument")
			}
			return l[1], nil

		case "if":
			return evalIf(l, env, b)

		case "do":
			return evalDo(l, env, b)

		case "def":
			return evalDef(l, env, b)

		case "lambda":
			return evalLambda(l, env, b)

		case "let":
			return evalLet(l, env, b)

		case "try":
			return evalTry(l, env, b)

		case "host":
			return evalHost(l, env, b)

		case "where":
			if len(l) != 3 {
				return nil, langerr.New(langerr.SyntaxError, "where expects 2 arguments")
			}
			return EvalWhere(l[1], l[2], env, b, Eval)

		case "transform":
			if len(l) < 2 {
				return nil, langerr.New(langerr.SyntaxError, "transform expects a data argument")
			}
			return EvalTransform(l[1], l[2:], env, b, Eval)
		}
	}

	// Application: [head, arg1, ...]
	fn, err := eval(l[0], env, b)
	if err != nil {
		return nil, err
	}
	args := make([]value.Value, len(l)-1)
	for i, a := range l[1:] {
		v, err := eval(a, env, b)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return Apply(fn, args, b)
}

func evalIf(l value.List, env *value.Env, b *budget.Budget) (value.Value, error) {
	if len(l) != 4 {
		return nil, langerr.New(langerr.SyntaxError, "if expects 3 arguments, got %d", len(l)-1)
	}
	test, err := eval(l[1], env, b)
	if err != nil {
		return nil, err
	}
	if value.Truthy(test) {
		return eval(l[2], env, b)
	}
	return eval(l[3], env, b)
}

func evalDo(l value.List, env *value.Env, b *budget.Budget) (value.Value, error) {
	if len(l) == 1 {
		return value.NullValue, nil
	}
	var result value.Value = value.NullValue
	for _, e := range l[1:] {
		v, err := eval(e, env, b)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

func evalDef(l value.List, env *value.Env, b *budget.Budget) (value.Value, error) {
	if len(l) != 3 {
		return nil, langerr.New(langerr.SyntaxError, "def expects name and value, got %d args", len(l)-1)
	}
	name, ok := l[1].(value.String)
	if !ok {
		return nil, langerr.New(langerr.SyntaxError, "def name must be a literal string")
	}
	env.SetLocal(string(name), value.NullValue)
	v, err := eval(l[2], env, b)
	if err != nil {
		return nil, err
	}
	env.SetLocal(string(name), v)
	return v, nil
}

func evalLambda(l value.List, env *value.Env, b *budget.Budget) (value.Value, error) {
	if len(l) != 3 {
		return nil, langerr.New(langerr.SyntaxError, "lambda expects params and body, got %d args", len(l)-1)
	}
	paramList, ok := l[1].(value.List)
	if !ok {
		return nil, langerr.New(langerr.SyntaxError, "lambda parameters must be a list")
	}
	seen := map[string]bool{}
	params := make([]string, len(paramList))
	for i, p := range paramList {
		ps, ok := p.(value.String)
		if !ok {
			return nil, langerr.New(langerr.SyntaxError, "lambda parameter must be a string")
		}
		if seen[string(ps)] {
			return nil, langerr.New(langerr.SyntaxError, "duplicate lambda parameter %q", ps)
		}
		seen[string(ps)] = true
		params[i] = string(ps)
	}
	if err := b.ConsumeGas(budget.GasCollection); err != nil {
		return nil, err
	}
	return &value.Closure{Params: params, Body: l[2], Env: env}, nil
}

func evalLet(l value.List, env *value.Env, b *budget.Budget) (value.Value, error) {
	if len(l) != 3 {
		return nil, langerr.New(langerr.SyntaxError, "let expects bindings and body, got %d args", len(l)-1)
	}
	bindingList, ok := l[1].(value.List)
	if !ok {
		return nil, langerr.New(langerr.SyntaxError, "let bindings must be a list")
	}
	bindings := make(map[string]value.Value, len(bindingList))
	order := make([]string, 0, len(bindingList))
	for _, b2 := range bindingList {
		pair, ok := b2.(value.List)
		if !ok || len(pair) != 2 {
			return nil, langerr.New(langerr.SyntaxError, "let binding must be [name, valueExpr]")
		}
		name, ok := pair[0].(value.String)
		if !ok {
			return nil, langerr.New(langerr.SyntaxError, "let binding name must be a string")
		}
		v, err := eval(pair[1], env, b) // evaluated in the OUTER environment
		if err != nil {
			return nil, err
		}
		bindings[string(name)] = v
		order = append(order, string(name))
	}
	child := env.Extend(bindings, order)
	return eval(l[2], child, b)
}

func evalTry(l value.List, env *value.Env, b *budget.Budget) (value.Value, error) {
	if len(l) != 3 {
		return nil, langerr.New(langerr.SyntaxError, "try expects body and handler, got %d args", len(l)-1)
	}
	result, err := eval(l[1], env, b)
	if err == nil {
		return result, nil
	}
	le, ok := langerr.As(err)
	if !ok || !le.Catchable() {
		return nil, err
	}
	handler, herr := eval(l[2], env, b)
	if herr != nil {
		return nil, herr
	}
	errObj := value.NewMap().Set("type", value.String(le.Kind)).Set("message", value.String(le.Message))
	return Apply(handler, []value.Value{errObj}, b)
}

func evalHost(l value.List, env *value.Env, b *budget.Budget) (value.Value, error) {
	if len(l) < 2 {
		return nil, langerr.New(langerr.SyntaxError, "host expects a commandId")
	}
	cmdVal, err := eval(l[1], env, b)
	if err != nil {
		return nil, err
	}
	cmdID, ok := cmdVal.(value.String)
	if !ok {
		return nil, langerr.New(langerr.SyntaxError, "host commandId must evaluate to a string")
	}
	args := make([]value.Value, len(l)-2)
	for i, a := range l[2:] {
		v, err := eval(a, env, b)
		if err != nil {
			return nil, err
		}
		if err := serialize.ValidatePureValue(v); err != nil {
			return nil, langerr.New(langerr.TypeError, "host argument %d is not JSON-serializable: %v", i, err)
		}
		args[i] = v
	}
	if err := b.ConsumeHostGas(string(cmdID)); err != nil {
		return nil, err
	}
	return dispatchHost(string(cmdID), args)
}

// Apply invokes fn (a Closure or Builtin) with already-evaluated args,
// enforcing the arity check and stack-depth accounting (spec §4.2, §4.5,
// §4.6).
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
		return eval(f.Body, callEnv, b)
	case *value.Builtin:
		return f.Fn(args)
	default:
		return nil, langerr.New(langerr.TypeError, "cannot call non-callable value of type %s", value.TypeName(fn))
	}
}
