package serialize

import "github.com/jsl-lang/jsl/internal/value"

// FreeVars computes the set of free variable names in expr, respecting
// the binding effects of lambda, let, def, and do (a def within do binds
// its name for subsequent siblings, matching a letrec-by-mutation style).
// Lives here rather than internal/treeeval so encodeEnvRegistry/
// closureToMap can prune a closure's captured environment to exactly its
// free variables (spec §3, §4.8, §8 invariant 8) without an import cycle
// (internal/treeeval already imports internal/serialize for host-argument
// purity checks).
//
// Ported from _examples/original_source/jsl/evaluator.py
// find_free_variables.
func FreeVars(expr value.Value) map[string]bool {
	free := make(map[string]bool)
	collectFree(expr, map[string]bool{}, free)
	return free
}

func collectFree(expr value.Value, bound map[string]bool, free map[string]bool) {
	switch t := expr.(type) {
	case value.String:
		s := string(t)
		if len(s) > 0 && s[0] == '@' {
			return // string literal, not a reference
		}
		if !bound[s] {
			free[s] = true
		}
	case *value.Map:
		for _, k := range t.Keys() {
			collectFree(value.String(k), bound, free)
			v, _ := t.Get(k)
			collectFree(v, bound, free)
		}
	case value.List:
		if len(t) == 0 {
			return
		}
		head, isKeyword := t[0].(value.String)
		if isKeyword {
			switch string(head) {
			case "quote", "@":
				return
			case "if":
				for _, sub := range t[1:] {
					collectFree(sub, bound, free)
				}
				return
			case "do":
				inner := cloneBound(bound)
				for _, sub := range t[1:] {
					if isDefForm(sub) {
						collectFree(sub, inner, free)
						defName, _ := sub.(value.List)[1].(value.String)
						inner[string(defName)] = true
					} else {
						collectFree(sub, inner, free)
					}
				}
				return
			case "def":
				if len(t) >= 3 {
					name, _ := t[1].(value.String)
					inner := cloneBound(bound)
					inner[string(name)] = true
					collectFree(t[2], inner, free)
				}
				return
			case "lambda":
				if len(t) >= 3 {
					params, _ := t[1].(value.List)
					inner := cloneBound(bound)
					for _, p := range params {
						if ps, ok := p.(value.String); ok {
							inner[string(ps)] = true
						}
					}
					collectFree(t[2], inner, free)
				}
				return
			case "let":
				if len(t) >= 3 {
					bindings, _ := t[1].(value.List)
					inner := cloneBound(bound)
					for _, b := range bindings {
						pair, ok := b.(value.List)
						if !ok || len(pair) != 2 {
							continue
						}
						collectFree(pair[1], bound, free) // evaluated in OUTER scope
						if name, ok := pair[0].(value.String); ok {
							inner[string(name)] = true
						}
					}
					collectFree(t[2], inner, free)
				}
				return
			case "try":
				for _, sub := range t[1:] {
					collectFree(sub, bound, free)
				}
				return
			case "host":
				for _, sub := range t[1:] {
					collectFree(sub, bound, free)
				}
				return
			case "where":
				for _, sub := range t[1:] {
					collectFree(sub, bound, free)
				}
				return
			case "transform":
				for _, sub := range t[1:] {
					collectFree(sub, bound, free)
				}
				return
			}
		}
		// Regular application: head and args.
		collectFree(t[0], bound, free)
		for _, a := range t[1:] {
			collectFree(a, bound, free)
		}
	}
}

func isDefForm(v value.Value) bool {
	l, ok := v.(value.List)
	if !ok || len(l) < 2 {
		return false
	}
	head, ok := l[0].(value.String)
	return ok && string(head) == "def"
}

func cloneBound(b map[string]bool) map[string]bool {
	out := make(map[string]bool, len(b)+1)
	for k, v := range b {
		out[k] = v
	}
	return out
}

// closureFreeVars computes the free variables of a closure's own
// (params, body) pair, via the same lambda-binding rule FreeVars already
// applies to an inline ["lambda", params, body] form — params are bound,
// not free, for the purposes of deciding what the closure's captured
// environment needs to supply.
func closureFreeVars(params []string, body value.Value) map[string]bool {
	paramList := make(value.List, len(params))
	for i, p := range params {
		paramList[i] = value.String(p)
	}
	synthetic := value.List{value.String("lambda"), paramList, body}
	return FreeVars(synthetic)
}
