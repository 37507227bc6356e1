// Package value defines the JSL value universe: the tagged sum of types
// that source expressions, runtime values, and wire documents all share.
package value

import (
	"fmt"
	"sort"
	"strconv"
)

// Kind names a concrete member of the Value sum, used for type predicates
// and error messages.
type Kind string

const (
	KindNull    Kind = "null"
	KindBool    Kind = "bool"
	KindNumber  Kind = "number"
	KindString  Kind = "string"
	KindList    Kind = "list"
	KindMap     Kind = "map"
	KindClosure Kind = "closure"
	KindBuiltin Kind = "builtin"
)

// Value is the common interface satisfied by every member of the JSL value
// sum. Source expressions and runtime values are the same type: a List used
// as code is an application or special form, a Map is always self-evaluating
// data.
type Value interface {
	Kind() Kind
	String() string
}

// Null is the single null value.
type Null struct{}

func (Null) Kind() Kind      { return KindNull }
func (Null) String() string  { return "null" }

// NullValue is the canonical Null instance.
var NullValue = Null{}

// Bool wraps a boolean.
type Bool bool

func (b Bool) Kind() Kind { return KindBool }
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Number is an IEEE-754 double; integers in range are exact.
type Number float64

func (Number) Kind() Kind { return KindNumber }
func (n Number) String() string {
	f := float64(n)
	if f == float64(int64(f)) && f < 1e15 && f > -1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// String is a JSL string value (the AST's "@text" literal evaluates to one
// of these with the marker stripped).
type String string

func (String) Kind() Kind     { return KindString }
func (s String) String() string { return string(s) }

// List is an ordered sequence of values.
type List []Value

func (List) Kind() Kind { return KindList }
func (l List) String() string {
	s := "["
	for i, v := range l {
		if i > 0 {
			s += ", "
		}
		s += v.String()
	}
	return s + "]"
}

// Map is an insertion-ordered string-keyed mapping. Go's built-in map type
// has no iteration order guarantee, so Map tracks key order explicitly —
// required by the dict-literal and transform evaluation-order invariants.
type Map struct {
	keys  []string
	index map[string]int
	vals  []Value
}

// NewMap builds an empty ordered map.
func NewMap() *Map {
	return &Map{index: make(map[string]int)}
}

// Kind implements Value.
func (*Map) Kind() Kind { return KindMap }

func (m *Map) String() string {
	s := "{"
	for i, k := range m.keys {
		if i > 0 {
			s += ", "
		}
		s += strconv.Quote(k) + ": " + m.vals[i].String()
	}
	return s + "}"
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order. The returned slice must not be
// mutated by the caller.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

// Get looks up a key, returning (value, true) if present.
func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return nil, false
	}
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.vals[i], true
}

// Set inserts or overwrites a key, returning a new Map (Maps are immutable
// once constructed, per the value model's invariants). Overwriting an
// existing key preserves its original position.
func (m *Map) Set(key string, v Value) *Map {
	out := m.clone()
	if i, ok := out.index[key]; ok {
		out.vals[i] = v
		return out
	}
	out.index[key] = len(out.keys)
	out.keys = append(out.keys, key)
	out.vals = append(out.vals, v)
	return out
}

// Without returns a new Map with key removed, if present.
func (m *Map) Without(key string) *Map {
	if m == nil {
		return NewMap()
	}
	i, ok := m.index[key]
	if !ok {
		return m
	}
	out := NewMap()
	for j, k := range m.keys {
		if j == i {
			continue
		}
		out = out.Set(k, m.vals[j])
	}
	return out
}

// Renamed returns a new Map with oldKey renamed to newKey, preserving
// position, if oldKey is present; otherwise returns m unchanged.
func (m *Map) Renamed(oldKey, newKey string) *Map {
	if m == nil {
		return m
	}
	i, ok := m.index[oldKey]
	if !ok {
		return m
	}
	out := m.clone()
	delete(out.index, oldKey)
	out.index[newKey] = i
	out.keys[i] = newKey
	return out
}

// SortedKeys returns a sorted copy of the map's keys, used only for
// diagnostic/display purposes (never for evaluation order).
func (m *Map) SortedKeys() []string {
	ks := append([]string(nil), m.Keys()...)
	sort.Strings(ks)
	return ks
}

func (m *Map) clone() *Map {
	out := &Map{
		keys:  append([]string(nil), m.keys...),
		vals:  append([]Value(nil), m.vals...),
		index: make(map[string]int, len(m.index)),
	}
	for k, i := range m.index {
		out.index[k] = i
	}
	return out
}

// MapFromPairs builds a Map preserving the order of pairs, later duplicate
// keys overwriting earlier ones in place (matching dict-literal semantics).
func MapFromPairs(pairs [][2]Value) (*Map, error) {
	m := NewMap()
	for _, p := range pairs {
		k, ok := p[0].(String)
		if !ok {
			return nil, fmt.Errorf("map key must evaluate to a string, got %s", p[0].Kind())
		}
		m = m.Set(string(k), p[1])
	}
	return m, nil
}

// Closure is a function value: a parameter list, an unevaluated body
// expression, and the environment captured at creation time.
type Closure struct {
	Params []string
	Body   Value
	Env    *Env
}

func (*Closure) Kind() Kind { return KindClosure }
func (c *Closure) String() string {
	return fmt.Sprintf("<closure/%d>", len(c.Params))
}

// BuiltinFunc is the Go-native signature of a builtin function.
type BuiltinFunc func(args []Value) (Value, error)

// Builtin is an opaque host-provided callable. It is never serialized as
// code; only its Name travels over the wire.
type Builtin struct {
	Name string
	Fn   BuiltinFunc
}

func (*Builtin) Kind() Kind { return KindBuiltin }
func (b *Builtin) String() string {
	return fmt.Sprintf("<builtin:%s>", b.Name)
}

// Truthy implements the permissive truthiness rule documented in
// SPEC_FULL.md §14: false, null, 0, "", [], {} are falsy; everything else
// is truthy.
func Truthy(v Value) bool {
	switch t := v.(type) {
	case Null:
		return false
	case Bool:
		return bool(t)
	case Number:
		return float64(t) != 0
	case String:
		return t != ""
	case List:
		return len(t) != 0
	case *Map:
		return t.Len() != 0
	default:
		return true
	}
}

// Equal reports structural equality between two values, per the spec's
// "equality between environments/values is structural" invariant.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Null:
		return true
	case Bool:
		return av == b.(Bool)
	case Number:
		return av == b.(Number)
	case String:
		return av == b.(String)
	case List:
		bv := b.(List)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Map:
		bv := b.(*Map)
		if av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.Keys() {
			va, _ := av.Get(k)
			vb, ok := bv.Get(k)
			if !ok || !Equal(va, vb) {
				return false
			}
		}
		return true
	case *Closure:
		bv := b.(*Closure)
		return av == bv
	case *Builtin:
		bv := b.(*Builtin)
		return av.Name == bv.Name
	}
	return false
}

// TypeName returns the JSL-level type name used by type-of and error
// messages.
func TypeName(v Value) string {
	switch v.(type) {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case List:
		return "list"
	case *Map:
		return "dict"
	case *Closure:
		return "closure"
	case *Builtin:
		return "builtin"
	default:
		return "unknown"
	}
}
