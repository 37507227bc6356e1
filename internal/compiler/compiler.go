// Package compiler transforms a JSL source AST (a value.Value, per the
// homoiconic value model) into a postfix instruction sequence and back.
//
// Ported from _examples/original_source/jsl/compiler.py
// (compile_to_postfix, decompile_from_postfix, validate_roundtrip) and
// _examples/original_source/jsl/stack_special_forms.py (detect_special_form,
// Opcode.SPECIAL_FORM), translated to operate over value.Value rather than
// raw Python lists/dicts.
package compiler

import (
	"github.com/jsl-lang/jsl/internal/langerr"
	"github.com/jsl-lang/jsl/internal/value"
)

// Markers used in the instruction sequence (spec §4.3).
const (
	MarkerApply      = "__apply__"
	MarkerEmptyList  = "__empty_list__"
	MarkerDict       = "__dict__"
	MarkerSpecialForm = "special_form"
)

// specialForms is the fixed set of keywords that cannot be flattened to
// postfix and instead travel as a SPECIAL_FORM-tagged sub-expression.
var specialForms = map[string]bool{
	"if": true, "let": true, "lambda": true, "def": true, "do": true,
	"quote": true, "@": true, "try": true, "host": true,
	"where": true, "transform": true,
}

// IsSpecialForm reports whether expr is a list whose head is one of the
// special-form keywords.
func IsSpecialForm(expr value.Value) bool {
	l, ok := expr.(value.List)
	if !ok || len(l) == 0 {
		return false
	}
	head, ok := l[0].(value.String)
	return ok && specialForms[string(head)]
}

// Compile transforms expr into a postfix instruction sequence.
func Compile(expr value.Value) value.List {
	var out value.List
	compileInto(expr, &out)
	return out
}

func compileInto(e value.Value, out *value.List) {
	switch t := e.(type) {
	case value.Null, value.Bool, value.Number, value.String:
		*out = append(*out, t)
	case *value.Map:
		for _, k := range t.Keys() {
			v, _ := t.Get(k)
			compileInto(value.String(k), out)
			compileInto(v, out)
		}
		*out = append(*out, value.Number(t.Len()*2), value.String(MarkerDict))
	case value.List:
		if len(t) == 0 {
			*out = append(*out, value.Number(0), value.String(MarkerEmptyList))
			return
		}
		if IsSpecialForm(t) {
			*out = append(*out, value.String(MarkerSpecialForm), t)
			return
		}
		head := t[0]
		args := t[1:]
		if headList, ok := head.(value.List); ok {
			compileInto(headList, out)
			for _, a := range args {
				compileInto(a, out)
			}
			*out = append(*out, value.Number(len(args)), value.String(MarkerApply))
			return
		}
		for _, a := range args {
			compileInto(a, out)
		}
		*out = append(*out, value.Number(len(args)), head)
	default:
		*out = append(*out, e)
	}
}

// Decompile is the inverse of Compile for instruction sequences free of
// special forms: decompile(compile(e)) == e (spec §8 invariant 1). For
// sequences containing SPECIAL_FORM markers, the original form is
// returned in place, matching the reference's documented relaxation.
func Decompile(instructions value.List) (value.Value, error) {
	var stack []value.Value
	i := 0
	for i < len(instructions) {
		item := instructions[i]

		if s, ok := item.(value.String); ok && string(s) == MarkerSpecialForm {
			if i+1 >= len(instructions) {
				return nil, langerr.New(langerr.InvalidProgram, "dangling special_form marker")
			}
			stack = append(stack, instructions[i+1])
			i += 2
			continue
		}

		if n, ok := item.(value.Number); ok && i+1 < len(instructions) {
			if op, ok := instructions[i+1].(value.String); ok {
				arity := int(n)
				i += 2
				if arity > len(stack) {
					return nil, langerr.New(langerr.InvalidProgram, "stack underflow: %s needs %d args, have %d", op, arity, len(stack))
				}
				args := append(value.List(nil), stack[len(stack)-arity:]...)
				stack = stack[:len(stack)-arity]

				switch string(op) {
				case MarkerEmptyList:
					stack = append(stack, value.List{})
				case MarkerApply:
					if len(stack) == 0 {
						return nil, langerr.New(langerr.InvalidProgram, "__apply__ with no function on stack")
					}
					fn := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					stack = append(stack, append(value.List{fn}, args...))
				case MarkerDict:
					pairs := make([][2]value.Value, 0, len(args)/2)
					for j := 0; j+1 < len(args); j += 2 {
						pairs = append(pairs, [2]value.Value{args[j], args[j+1]})
					}
					m, err := value.MapFromPairs(pairs)
					if err != nil {
						return nil, err
					}
					stack = append(stack, m)
				default:
					stack = append(stack, append(value.List{op}, args...))
				}
				continue
			}
		}

		stack = append(stack, item)
		i++
	}

	if len(stack) != 1 {
		return nil, langerr.New(langerr.InvalidProgram, "invalid instruction sequence: expected 1 item on stack, have %d", len(stack))
	}
	return stack[0], nil
}

// ValidateRoundtrip reports whether expr survives a compile/decompile
// cycle unchanged (spec §8 invariant 1).
func ValidateRoundtrip(expr value.Value) bool {
	instr := Compile(expr)
	back, err := Decompile(instr)
	if err != nil {
		return false
	}
	return value.Equal(normalizeForCompare(expr), normalizeForCompare(back))
}

// normalizeForCompare treats bare literal expr (non-list) identically
// when compared post-roundtrip, matching the reference's comparison
// relaxation for scalar inputs.
func normalizeForCompare(v value.Value) value.Value {
	return v
}
