package serialize

import (
	"github.com/jsl-lang/jsl/internal/langerr"
	"github.com/jsl-lang/jsl/internal/value"
)

// encodeEnvRegistry walks env's parent chain, stopping at the prelude
// (which is reattached on decode rather than serialized — spec §4.8's
// "environments serialize without the prelude" rule, grounded on the
// same reattachment mechanic as treeeval/prelude_link.go), and builds a
// flat {id: {bindings, parent}} registry. The registry belongs to a single
// encoding: each encoded closure starts a fresh one, so a parent frame
// shared by several closures is written again in each closure's encoding.
//
// needed controls pruning: nil means write every OwnKeys binding in
// every frame (used for a suspended stackeval state, which has no
// single body expression to compute free variables from — any
// resumed instruction could reference any live binding). A non-nil
// needed restricts each frame to exactly the names it contains, and
// carries the unresolved remainder up the parent chain so an ancestor
// frame is only written at all if it still has something to supply
// (spec §8 invariant 8, via closureToMap's FreeVars computation).
func encodeEnvRegistry(env *value.Env, needed map[string]bool, registry *value.Map) (string, error) {
	if env == nil || env.IsPrelude() {
		return "", nil
	}
	if needed != nil && len(needed) == 0 {
		return "", nil
	}
	id := env.ID()
	if _, ok := registry.Get(id); ok {
		return id, nil
	}
	var remaining map[string]bool
	if needed != nil {
		remaining = make(map[string]bool, len(needed))
		for k := range needed {
			remaining[k] = true
		}
	}
	bindings := value.NewMap()
	for _, k := range env.OwnKeys() {
		if needed != nil && !needed[k] {
			continue
		}
		v, _ := env.Get(k)
		bindings = bindings.Set(k, v)
		if needed != nil {
			delete(remaining, k)
		}
	}
	parentID, err := encodeEnvRegistry(env.Parent(), remaining, registry)
	if err != nil {
		return "", err
	}
	if needed != nil && bindings.Len() == 0 && parentID == "" {
		return "", nil
	}
	entry := value.NewMap().Set("bindings", bindings)
	if parentID != "" {
		entry = entry.Set("parent", value.String(parentID))
	} else {
		entry = entry.Set("parent", value.NullValue)
	}
	registry.Set(id, entry)
	return id, nil
}

// decodeEnvRegistry rebuilds the Env chain from a registry produced by
// encodeEnvRegistry, reattaching prelude at the chain's root.
func decodeEnvRegistry(registry *value.Map, rootID string, prelude *value.Env) (*value.Env, error) {
	built := map[string]*value.Env{}
	var build func(id string) (*value.Env, error)
	build = func(id string) (*value.Env, error) {
		if id == "" {
			return prelude, nil
		}
		if e, ok := built[id]; ok {
			return e, nil
		}
		entryV, ok := registry.Get(id)
		if !ok {
			return nil, langerr.New(langerr.SyntaxError, "env registry missing id %q", id)
		}
		entry, ok := entryV.(*value.Map)
		if !ok {
			return nil, langerr.New(langerr.SyntaxError, "env registry entry %q is malformed", id)
		}
		bindingsV, _ := entry.Get("bindings")
		bindings, ok := bindingsV.(*value.Map)
		if !ok {
			return nil, langerr.New(langerr.SyntaxError, "env entry %q has no bindings map", id)
		}
		parentID := ""
		if parentV, ok := entry.Get("parent"); ok {
			if ps, ok := parentV.(value.String); ok {
				parentID = string(ps)
			}
		}
		parent, err := build(parentID)
		if err != nil {
			return nil, err
		}
		m := map[string]value.Value{}
		order := bindings.Keys()
		for _, k := range order {
			v, _ := bindings.Get(k)
			m[k] = v
		}
		child := parent.Extend(m, order)
		built[id] = child
		return child, nil
	}
	return build(rootID)
}
