package stackeval

import (
	"github.com/jsl-lang/jsl/internal/budget"
	"github.com/jsl-lang/jsl/internal/host"
	"github.com/jsl-lang/jsl/internal/langerr"
	"github.com/jsl-lang/jsl/internal/serialize"
	"github.com/jsl-lang/jsl/internal/treeeval"
	"github.com/jsl-lang/jsl/internal/value"
)

// evalSpecialForm evaluates one of the non-flattenable forms (spec
// §4.4.1), given the already-extracted form name and its unevaluated
// argument expressions. where/transform delegate to internal/treeeval's
// shared implementation via the EvalFunc adapter so the two evaluators
// cannot silently diverge on those two forms; every other form is
// reimplemented here against this package's own Eval so closure bodies
// and nested special forms keep running on the stack machine.
func evalSpecialForm(form string, args value.List, env *value.Env, b *budget.Budget) (value.Value, error) {
	switch form {
	case "if":
		return evalIf(args, env, b)
	case "let":
		return evalLet(args, env, b)
	case "lambda":
		return evalLambda(args, env, b)
	case "def":
		return evalDef(args, env, b)
	case "do":
		return evalDo(args, env, b)
	case "quote", "@":
		if len(args) != 1 {
			return nil, langerr.New(langerr.SyntaxError, "quote expects 1 argument")
		}
		return args[0], nil
	case "try":
		return evalTry(args, env, b)
	case "host":
		return evalHost(args, env, b)
	case "where":
		if len(args) != 2 {
			return nil, langerr.New(langerr.SyntaxError, "where expects 2 arguments")
		}
		return treeeval.EvalWhere(args[0], args[1], env, b, EvalFunc)
	case "transform":
		if len(args) < 1 {
			return nil, langerr.New(langerr.SyntaxError, "transform expects a data argument")
		}
		return treeeval.EvalTransform(args[0], args[1:], env, b, EvalFunc)
	default:
		return nil, langerr.New(langerr.SyntaxError, "unknown special form: %s", form)
	}
}

func evalIf(args value.List, env *value.Env, b *budget.Budget) (value.Value, error) {
	if len(args) != 3 {
		return nil, langerr.New(langerr.SyntaxError, "if expects 3 arguments, got %d", len(args))
	}
	cond, err := EvalFunc(args[0], env, b)
	if err != nil {
		return nil, err
	}
	if value.Truthy(cond) {
		return EvalFunc(args[1], env, b)
	}
	return EvalFunc(args[2], env, b)
}

func evalLet(args value.List, env *value.Env, b *budget.Budget) (value.Value, error) {
	if len(args) != 2 {
		return nil, langerr.New(langerr.SyntaxError, "let expects bindings and body, got %d args", len(args))
	}
	bindingList, ok := args[0].(value.List)
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
		v, err := EvalFunc(pair[1], env, b) // evaluated in the OUTER environment
		if err != nil {
			return nil, err
		}
		bindings[string(name)] = v
		order = append(order, string(name))
	}
	child := env.Extend(bindings, order)
	return EvalFunc(args[1], child, b)
}

func evalLambda(args value.List, env *value.Env, b *budget.Budget) (value.Value, error) {
	if len(args) != 2 {
		return nil, langerr.New(langerr.SyntaxError, "lambda expects params and body, got %d args", len(args))
	}
	paramList, ok := args[0].(value.List)
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
	return &value.Closure{Params: params, Body: args[1], Env: env}, nil
}

func evalDef(args value.List, env *value.Env, b *budget.Budget) (value.Value, error) {
	if len(args) != 2 {
		return nil, langerr.New(langerr.SyntaxError, "def expects name and value, got %d args", len(args))
	}
	name, ok := args[0].(value.String)
	if !ok {
		return nil, langerr.New(langerr.SyntaxError, "def name must be a literal string")
	}
	env.SetLocal(string(name), value.NullValue)
	v, err := EvalFunc(args[1], env, b)
	if err != nil {
		return nil, err
	}
	env.SetLocal(string(name), v)
	return v, nil
}

func evalDo(args value.List, env *value.Env, b *budget.Budget) (value.Value, error) {
	if len(args) == 0 {
		return value.NullValue, nil
	}
	var result value.Value = value.NullValue
	for _, e := range args {
		v, err := EvalFunc(e, env, b)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

func evalTry(args value.List, env *value.Env, b *budget.Budget) (value.Value, error) {
	if len(args) != 2 {
		return nil, langerr.New(langerr.SyntaxError, "try expects body and handler, got %d args", len(args))
	}
	result, err := EvalFunc(args[0], env, b)
	if err == nil {
		return result, nil
	}
	le, ok := langerr.As(err)
	if !ok || !le.Catchable() {
		return nil, err
	}
	handler, herr := EvalFunc(args[1], env, b)
	if herr != nil {
		return nil, herr
	}
	errObj := value.NewMap().Set("type", value.String(le.Kind)).Set("message", value.String(le.Message))
	return Apply(handler, []value.Value{errObj}, b)
}

func evalHost(args value.List, env *value.Env, b *budget.Budget) (value.Value, error) {
	if len(args) < 1 {
		return nil, langerr.New(langerr.SyntaxError, "host expects a commandId")
	}
	cmdVal, err := EvalFunc(args[0], env, b)
	if err != nil {
		return nil, err
	}
	cmdID, ok := cmdVal.(value.String)
	if !ok {
		return nil, langerr.New(langerr.SyntaxError, "host commandId must evaluate to a string")
	}
	hostArgs := make([]value.Value, len(args)-1)
	for i, a := range args[1:] {
		v, err := EvalFunc(a, env, b)
		if err != nil {
			return nil, err
		}
		if err := serialize.ValidatePureValue(v); err != nil {
			return nil, langerr.New(langerr.TypeError, "host argument %d is not JSON-serializable: %v", i, err)
		}
		hostArgs[i] = v
	}
	if err := b.ConsumeHostGas(string(cmdID)); err != nil {
		return nil, err
	}
	return host.Dispatch(string(cmdID), hostArgs)
}
