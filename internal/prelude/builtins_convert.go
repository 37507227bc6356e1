package prelude

import (
	"strconv"
	"strings"

	"github.com/jsl-lang/jsl/internal/langerr"
	"github.com/jsl-lang/jsl/internal/value"
)

// registerConvert installs to-string/to-number/type-of/error. Grounded on
// jsl/prelude.py's TYPE CONVERSION section, minus "print": printing is an
// impure effect, and spec §4.7 makes host the sole boundary through which
// impurity escapes the evaluator, so output is implemented as an io/*
// host command (internal/host) rather than a prelude builtin — a
// deliberate narrowing of the reference's prelude, not an omission (see
// DESIGN.md).
func registerConvert(r *registrar) {
	r.reg("to-string", func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, langerr.New(langerr.ArityError, "to-string expects 1 argument, got %d", len(args))
		}
		return value.String(args[0].String()), nil
	})

	r.reg("to-number", func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, langerr.New(langerr.ArityError, "to-number expects 1 argument, got %d", len(args))
		}
		if n, ok := args[0].(value.Number); ok {
			return n, nil
		}
		s := strings.TrimSpace(args[0].String())
		if !looksNumeric(s) {
			return value.Number(0), nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return value.Number(0), nil
		}
		return value.Number(f), nil
	})

	r.reg("type-of", func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, langerr.New(langerr.ArityError, "type-of expects 1 argument, got %d", len(args))
		}
		return value.String(value.TypeName(args[0])), nil
	})

	r.reg("error", func(args []value.Value) (value.Value, error) {
		msg := ""
		if len(args) > 0 {
			msg = args[0].String()
		}
		return nil, langerr.New(langerr.HostError, "%s", msg)
	})
}

// looksNumeric matches SPEC_FULL.md §14's to-number parsing rule: an
// optional leading '-', digits, and at most one '.'.
func looksNumeric(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '-' {
		i = 1
	}
	if i >= len(s) {
		return false
	}
	dots := 0
	digits := 0
	for ; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			digits++
		case s[i] == '.':
			dots++
			if dots > 1 {
				return false
			}
		default:
			return false
		}
	}
	return digits > 0
}
