package prelude

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/jsl-lang/jsl/internal/langerr"
	"github.com/jsl-lang/jsl/internal/value"
)

// registerString installs the string builtins. Grounded on
// jsl/prelude.py's STRING OPERATIONS section, with str-upper/str-lower/
// str-length additionally NFC-normalizing via golang.org/x/text/unicode/
// norm (SPEC_FULL.md §11): a network-native language resuming execution
// on a different machine must not disagree with itself about a string's
// length or case depending on the receiving host's locale, so these
// operate on the normalized form rather than raw UTF-8 bytes or runes.
func registerString(r *registrar) {
	r.reg("str-concat", func(args []value.Value) (value.Value, error) {
		var sb strings.Builder
		for _, a := range args {
			sb.WriteString(a.String())
		}
		return value.String(sb.String()), nil
	})

	r.reg("str-split", func(args []value.Value) (value.Value, error) {
		if len(args) < 1 || len(args) > 2 {
			return nil, langerr.New(langerr.ArityError, "str-split expects 1 or 2 arguments, got %d", len(args))
		}
		s, err := asString(args[0])
		if err != nil {
			return nil, err
		}
		sep := " " // documented default separator, SPEC_FULL.md §14
		if len(args) == 2 {
			sep, err = asString(args[1])
			if err != nil {
				return nil, err
			}
		}
		parts := strings.Split(s, sep)
		out := make(value.List, len(parts))
		for i, p := range parts {
			out[i] = value.String(p)
		}
		return out, nil
	})

	r.reg("str-join", func(args []value.Value) (value.Value, error) {
		if len(args) < 1 || len(args) > 2 {
			return nil, langerr.New(langerr.ArityError, "str-join expects 1 or 2 arguments, got %d", len(args))
		}
		l, err := asList(args[0])
		if err != nil {
			return nil, err
		}
		sep := ""
		if len(args) == 2 {
			sep, err = asString(args[1])
			if err != nil {
				return nil, err
			}
		}
		parts := make([]string, len(l))
		for i, v := range l {
			parts[i] = v.String()
		}
		return value.String(strings.Join(parts, sep)), nil
	})

	r.reg("str-length", func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, langerr.New(langerr.ArityError, "str-length expects 1 argument, got %d", len(args))
		}
		s, err := asString(args[0])
		if err != nil {
			return value.Number(0), nil
		}
		normalized := norm.NFC.String(s)
		return value.Number(len([]rune(normalized))), nil
	})

	r.reg("str-upper", func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, langerr.New(langerr.ArityError, "str-upper expects 1 argument, got %d", len(args))
		}
		s, ok := args[0].(value.String)
		if !ok {
			return args[0], nil
		}
		return value.String(strings.ToUpper(norm.NFC.String(string(s)))), nil
	})

	r.reg("str-lower", func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, langerr.New(langerr.ArityError, "str-lower expects 1 argument, got %d", len(args))
		}
		s, ok := args[0].(value.String)
		if !ok {
			return args[0], nil
		}
		return value.String(strings.ToLower(norm.NFC.String(string(s)))), nil
	})
}
