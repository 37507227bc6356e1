// Package prelude builds the fixed, versioned set of built-in functions
// available in every JSL environment. Grounded on
// _examples/original_source/jsl/prelude.py (make_prelude), generalized
// from Python's dynamic typing to Go's explicit value.Value dispatch, and
// on internal/eval/eval_simple.go's NewSimple() for the Go idiom of
// registering builtins into a freshly constructed *value.Env.
package prelude

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"

	"github.com/jsl-lang/jsl/internal/langerr"
	"github.com/jsl-lang/jsl/internal/value"
)

// Version is the prelude's version string, part of its identity metadata
// (spec §3).
const Version = "0.1.0"

// ApplyFunc calls a Closure or Builtin with already-evaluated arguments.
// Higher-order builtins (map/filter/reduce/apply) need this to invoke
// user-supplied closures, but this package cannot import the evaluator
// packages without a cycle (they import prelude to build the root
// environment). Grounded on jsl/prelude.py's eval_closure_or_builtin,
// which solves the identical problem in Python via a late import; here
// the evaluator package registers its Apply implementation once at
// startup via SetApplier, the narrowest form of late binding that avoids
// the fully mutable global prelude pointer the reference relies on (spec
// §9 design notes) while still letting prelude.go stay free of an
// eval-package import.
type ApplyFunc func(fn value.Value, args []value.Value) (value.Value, error)

var applier ApplyFunc

// SetApplier installs the evaluator's Apply implementation. Called once
// from internal/treeeval's init(); internal/stackeval registers none, so
// higher-order builtins always apply through the tree evaluator.
func SetApplier(f ApplyFunc) {
	applier = f
}

// Apply invokes fn (a Closure or Builtin) with args, via whichever
// evaluator last registered itself.
func Apply(fn value.Value, args []value.Value) (value.Value, error) {
	if applier == nil {
		return nil, langerr.New(langerr.TypeError, "no evaluator registered to apply closures")
	}
	return applier(fn, args)
}

// registrar accumulates names for the content-derived prelude ID.
type registrar struct {
	env   *value.Env
	names []string
}

func (r *registrar) reg(name string, fn value.BuiltinFunc) {
	r.env.SetLocal(name, &value.Builtin{Name: name, Fn: fn})
	r.names = append(r.names, name)
}

// New constructs the prelude environment with every builtin registered,
// and returns it alongside its content-derived ID.
func New() (*value.Env, string) {
	env := value.NewPrelude()
	r := &registrar{env: env}

	registerArithmetic(r)
	registerList(r)
	registerDict(r)
	registerString(r)
	registerPredicates(r)
	registerHigherOrder(r)
	registerMath(r)
	registerConvert(r)

	return env, id(r.names)
}

// id computes the content-derived prelude ID: a hash over the sorted
// builtin name set and the version string (spec §3, §6.3).
func id(names []string) string {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	h := sha256.New()
	h.Write([]byte(Version))
	for _, n := range sorted {
		h.Write([]byte{0})
		h.Write([]byte(n))
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// Merge implements the out-of-scope "module file loader" contract's
// in-memory half (spec §1): merging a plain name→value map into an
// environment, returning a new child environment (never mutating env).
func Merge(env *value.Env, extra map[string]value.Value) *value.Env {
	order := make([]string, 0, len(extra))
	for k := range extra {
		order = append(order, k)
	}
	sort.Strings(order)
	return env.Extend(extra, order)
}
