package treeeval

import (
	"github.com/jsl-lang/jsl/internal/budget"
	"github.com/jsl-lang/jsl/internal/langerr"
	"github.com/jsl-lang/jsl/internal/prelude"
	"github.com/jsl-lang/jsl/internal/value"
)

// EvalTransform implements the transform special form (spec §4.1.2):
// applies a left-to-right sequence of record operations to a single
// record or to each record of a list. Ported from
// jsl/stack_special_forms.py eval_transform.
func EvalTransform(dataExpr value.Value, opExprs []value.Value, env *value.Env, b *budget.Budget, evalFn EvalFunc) (value.Value, error) {
	data, err := evalFn(dataExpr, env, b)
	if err != nil {
		return nil, err
	}

	if list, ok := data.(value.List); ok {
		out := make(value.List, 0, len(list))
		for _, item := range list {
			rec, ok := item.(*value.Map)
			if !ok {
				return nil, langerr.New(langerr.TypeError, "transform: list item is not a dict, got %s", value.TypeName(item))
			}
			result, err := applyTransformOps(rec, opExprs, env, b, evalFn)
			if err != nil {
				return nil, err
			}
			out = append(out, result)
		}
		return out, nil
	}

	rec, ok := data.(*value.Map)
	if !ok {
		return nil, langerr.New(langerr.TypeError, "transform: expected list or dict, got %s", value.TypeName(data))
	}
	return applyTransformOps(rec, opExprs, env, b, evalFn)
}

func applyTransformOps(rec *value.Map, opExprs []value.Value, env *value.Env, b *budget.Budget, evalFn EvalFunc) (*value.Map, error) {
	cur := rec
	for _, opExpr := range opExprs {
		opList, ok := opExpr.(value.List)
		if !ok || len(opList) == 0 {
			return nil, langerr.New(langerr.SyntaxError, "transform: malformed operation %v", opExpr)
		}
		opName, ok := opList[0].(value.String)
		if !ok {
			return nil, langerr.New(langerr.SyntaxError, "transform: operation name must be a literal string")
		}
		itemEnv := extendWithItem(env, cur)
		args := opList[1:]

		switch string(opName) {
		case "assign":
			if len(args) != 2 {
				return nil, langerr.New(langerr.ArityError, "assign expects 2 arguments, got %d", len(args))
			}
			k, err := evalKey(args[0], itemEnv, b, evalFn)
			if err != nil {
				return nil, err
			}
			v, err := evalFn(args[1], itemEnv, b)
			if err != nil {
				return nil, err
			}
			cur = cur.Set(k, v)

		case "pick":
			keys, err := evalKeys(args, itemEnv, b, evalFn)
			if err != nil {
				return nil, err
			}
			next := value.NewMap()
			for _, k := range keys {
				if v, ok := cur.Get(k); ok {
					next = next.Set(k, v)
				}
			}
			cur = next

		case "omit":
			keys, err := evalKeys(args, itemEnv, b, evalFn)
			if err != nil {
				return nil, err
			}
			next := cur
			for _, k := range keys {
				next = next.Without(k)
			}
			cur = next

		case "rename":
			if len(args) != 2 {
				return nil, langerr.New(langerr.ArityError, "rename expects 2 arguments, got %d", len(args))
			}
			oldKey, err := evalKey(args[0], itemEnv, b, evalFn)
			if err != nil {
				return nil, err
			}
			newKey, err := evalKey(args[1], itemEnv, b, evalFn)
			if err != nil {
				return nil, err
			}
			cur = cur.Renamed(oldKey, newKey)

		case "default":
			if len(args) != 2 {
				return nil, langerr.New(langerr.ArityError, "default expects 2 arguments, got %d", len(args))
			}
			k, err := evalKey(args[0], itemEnv, b, evalFn)
			if err != nil {
				return nil, err
			}
			if _, exists := cur.Get(k); !exists {
				v, err := evalFn(args[1], itemEnv, b)
				if err != nil {
					return nil, err
				}
				cur = cur.Set(k, v)
			}

		case "apply":
			if len(args) != 2 {
				return nil, langerr.New(langerr.ArityError, "apply expects 2 arguments, got %d", len(args))
			}
			k, err := evalKey(args[0], itemEnv, b, evalFn)
			if err != nil {
				return nil, err
			}
			fn, err := evalFn(args[1], itemEnv, b)
			if err != nil {
				return nil, err
			}
			curVal, ok := cur.Get(k)
			if !ok {
				curVal = value.NullValue
			}
			newVal, err := prelude.Apply(fn, []value.Value{curVal})
			if err != nil {
				return nil, err
			}
			cur = cur.Set(k, newVal)

		default:
			return nil, langerr.New(langerr.SyntaxError, "transform: unknown operation %q", opName)
		}
	}
	return cur, nil
}

func evalKey(expr value.Value, env *value.Env, b *budget.Budget, evalFn EvalFunc) (string, error) {
	v, err := evalFn(expr, env, b)
	if err != nil {
		return "", err
	}
	s, ok := v.(value.String)
	if !ok {
		return "", langerr.New(langerr.TypeError, "transform: key must evaluate to a string, got %s", value.TypeName(v))
	}
	return string(s), nil
}

func evalKeys(exprs []value.Value, env *value.Env, b *budget.Budget, evalFn EvalFunc) ([]string, error) {
	out := make([]string, len(exprs))
	for i, e := range exprs {
		k, err := evalKey(e, env, b, evalFn)
		if err != nil {
			return nil, err
		}
		out[i] = k
	}
	return out, nil
}
