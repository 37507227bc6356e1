// Package serialize encodes and decodes JSL values, environments,
// closures, and suspended stack states to and from JSON (spec §4.8).
//
// The low-level JSON text reader/writer here is grounded on
// _examples/sunholo-data-ailang/internal/eval/builtins_json.go's
// interfaceToJSON/encodeJSON idiom: hand-walking a dynamic value tree
// rather than relying on encoding/json's struct-tag reflection, which
// cannot dispatch on an interface type with no common underlying struct.
// It additionally preserves object key order (encoding/json's map
// marshaling does not), required by the dict-literal and transform
// evaluation-order invariants (spec §5), by decoding through
// json.Decoder's token stream instead of into map[string]interface{}.
package serialize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/jsl-lang/jsl/internal/langerr"
	"github.com/jsl-lang/jsl/internal/value"
)

// PositiveInfinitySentinel and NegativeInfinitySentinel are the wire
// sentinels for the non-JSON numeric infinities min/max can produce on
// empty input (spec §6.1, §14).
const (
	PositiveInfinitySentinel = "+Infinity"
	NegativeInfinitySentinel = "-Infinity"
)

// ValueToJSON renders v as compact JSON text. Null/Bool/Number/String
// encode as themselves; List as a JSON array; *Map as a JSON object with
// keys in insertion order; a Closure encodes as its {__closure__: ...}
// envelope (built by closure.go/env.go as a *value.Map tree and written
// through the same path); a Builtin is rejected with a TypeError.
func ValueToJSON(v value.Value) (string, error) {
	var buf bytes.Buffer
	if err := writeValue(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeValue(buf *bytes.Buffer, v value.Value) error {
	switch t := v.(type) {
	case value.Null:
		buf.WriteString("null")
	case value.Bool:
		if t {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case value.Number:
		f := float64(t)
		switch {
		case math.IsInf(f, 1):
			writeJSONString(buf, PositiveInfinitySentinel)
		case math.IsInf(f, -1):
			writeJSONString(buf, NegativeInfinitySentinel)
		case math.IsNaN(f):
			return langerr.New(langerr.TypeError, "cannot encode NaN at the JSON layer")
		default:
			buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
		}
	case value.String:
		writeJSONString(buf, string(t))
	case value.List:
		buf.WriteByte('[')
		for i, item := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case *value.Map:
		buf.WriteByte('{')
		for i, k := range t.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSONString(buf, k)
			buf.WriteByte(':')
			val, _ := t.Get(k)
			if err := writeValue(buf, val); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case *value.Closure:
		m, err := closureToMap(t)
		if err != nil {
			return err
		}
		return writeValue(buf, m)
	case *value.Builtin:
		return langerr.New(langerr.TypeError, "builtin %q cannot be serialized", t.Name)
	default:
		return langerr.New(langerr.TypeError, "unsupported value kind for JSON encoding")
	}
	return nil
}

// ValidatePureValue reports whether v contains only JSON-native data —
// Null/Bool/Number/String/List/*Map, recursively — rejecting Closure and
// Builtin. Used at the host boundary (spec §4.7 step 2), which requires
// the call payload to be pure data: unlike ValueToJSON, this never falls
// back to a closure envelope encoding, since a host command receiving a
// callable makes no sense on the other side of the effect boundary.
func ValidatePureValue(v value.Value) error {
	switch t := v.(type) {
	case value.Null, value.Bool, value.Number, value.String:
		return nil
	case value.List:
		for _, item := range t {
			if err := ValidatePureValue(item); err != nil {
				return err
			}
		}
		return nil
	case *value.Map:
		for _, k := range t.Keys() {
			val, _ := t.Get(k)
			if err := ValidatePureValue(val); err != nil {
				return err
			}
		}
		return nil
	default:
		return langerr.New(langerr.TypeError, "value of type %s is not a pure JSON-serializable value", value.TypeName(v))
	}
}

// writeJSONString writes s as a JSON string token: quote, backslash,
// \n, \r and \t get their short escapes, other control characters
// become \u00XX, and every other rune is written as-is (no HTML or
// U+2028/U+2029 escaping) — mirrors builtins_json.go's encodeJSONString.
func writeJSONString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(buf, `\u%04x`, r)
			} else {
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
}

// JSONToValue parses JSON text into a value.Value tree, preserving object
// key order. Strings decode verbatim (including any leading "@" marker,
// which is the AST evaluator's concern, not this decoder's) except for
// the two reserved sentinel strings "+Infinity"/"-Infinity", which
// decode back to the non-finite value.Number they were written from —
// the symmetric counterpart of writeValue's encode-side sentinel check,
// required for encode(v) round-tripping to v even when v is the
// Number(±Inf) that min/max produce on empty input (spec §6.1, §8).
func JSONToValue(text string) (value.Value, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, langerr.New(langerr.SyntaxError, "malformed JSON: %v", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, langerr.New(langerr.SyntaxError, "trailing data after JSON document")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (value.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '[':
			var out value.List
			for dec.More() {
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				out = append(out, v)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			if out == nil {
				out = value.List{}
			}
			return out, nil
		case '{':
			m := value.NewMap()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key must be a string")
				}
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				m = m.Set(key, v)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return m, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", t)
		}
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return value.Number(f), nil
	case string:
		switch t {
		case PositiveInfinitySentinel:
			return value.Number(math.Inf(1)), nil
		case NegativeInfinitySentinel:
			return value.Number(math.Inf(-1)), nil
		}
		return value.String(t), nil
	case bool:
		return value.Bool(t), nil
	case nil:
		return value.NullValue, nil
	default:
		return nil, fmt.Errorf("unrecognized JSON token %v", tok)
	}
}
