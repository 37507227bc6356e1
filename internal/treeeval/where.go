package treeeval

import (
	"github.com/jsl-lang/jsl/internal/budget"
	"github.com/jsl-lang/jsl/internal/langerr"
	"github.com/jsl-lang/jsl/internal/value"
)

// EvalWhere implements the where special form (spec §4.1.1): filters a
// collection by evaluating condition in a per-item environment extended
// with the item's own fields (if it is a map) plus "$" bound to the whole
// item. Evaluation errors in the condition cause that item to be silently
// excluded, matching jsl/stack_special_forms.py eval_where's bare
// except-and-skip behavior — except resource-exhaustion errors, which are
// not catchable anywhere in this port (spec §7) and so are not swallowed
// here either; they propagate.
func EvalWhere(collectionExpr, conditionExpr value.Value, env *value.Env, b *budget.Budget, evalFn EvalFunc) (value.Value, error) {
	coll, err := evalFn(collectionExpr, env, b)
	if err != nil {
		return nil, err
	}
	items, err := asIterable(coll)
	if err != nil {
		return nil, err
	}

	var out value.List
	for _, item := range items {
		itemEnv := extendWithItem(env, item)
		keep, err := evalFn(conditionExpr, itemEnv, b)
		if err != nil {
			if le, ok := langerr.As(err); ok && !le.Catchable() {
				return nil, err
			}
			continue
		}
		if value.Truthy(keep) {
			out = append(out, item)
		}
	}
	if out == nil {
		out = value.List{}
	}
	return out, nil
}

// asIterable treats a List as itself and a Map as the list of its values,
// per spec §4.1.1.
func asIterable(v value.Value) (value.List, error) {
	switch t := v.(type) {
	case value.List:
		return t, nil
	case *value.Map:
		out := make(value.List, 0, t.Len())
		for _, k := range t.Keys() {
			val, _ := t.Get(k)
			out = append(out, val)
		}
		return out, nil
	default:
		return nil, langerr.New(langerr.TypeError, "where: expected list or dict, got %s", value.TypeName(v))
	}
}

// extendWithItem builds the per-item scope: each field of item (if it is
// a map) plus "$" bound to the whole item.
func extendWithItem(env *value.Env, item value.Value) *value.Env {
	bindings := map[string]value.Value{"$": item}
	order := []string{}
	if m, ok := item.(*value.Map); ok {
		for _, k := range m.Keys() {
			v, _ := m.Get(k)
			bindings[k] = v
			order = append(order, k)
		}
	}
	order = append(order, "$")
	return env.Extend(bindings, order)
}
