package prelude

import (
	"math"

	"github.com/jsl-lang/jsl/internal/langerr"
	"github.com/jsl-lang/jsl/internal/value"
)

func mathPow(a, b float64) float64 { return math.Pow(a, b) }

// registerMath installs min/max/abs/round and the extended scientific
// functions. Grounded on jsl/prelude.py's MATHEMATICAL FUNCTIONS section.
//
// min/max on zero arguments return the documented identity elements
// (+Infinity / -Infinity, spec §4.3) rather than erroring, matching the
// stack evaluator's 0-arity operator contract; the wire layer (internal/
// serialize) is responsible for converting these to sentinel strings
// before they ever reach JSON (spec §6.1, §14).
func registerMath(r *registrar) {
	r.reg("min", func(args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.Number(math.Inf(1)), nil
		}
		best, err := asNumber(args[0])
		if err != nil {
			return nil, err
		}
		for _, a := range args[1:] {
			n, err := asNumber(a)
			if err != nil {
				return nil, err
			}
			if n < best {
				best = n
			}
		}
		return value.Number(best), nil
	})

	r.reg("max", func(args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.Number(math.Inf(-1)), nil
		}
		best, err := asNumber(args[0])
		if err != nil {
			return nil, err
		}
		for _, a := range args[1:] {
			n, err := asNumber(a)
			if err != nil {
				return nil, err
			}
			if n > best {
				best = n
			}
		}
		return value.Number(best), nil
	})

	r.reg("abs", unary(math.Abs))

	// round uses half-away-from-zero (Go's math.Round), the documented
	// choice in SPEC_FULL.md §14: the reference's Python round() is
	// banker's-rounding on exact ties, which this port does not reproduce.
	r.reg("round", unary(math.Round))

	r.reg("sin", unary(math.Sin))
	r.reg("cos", unary(math.Cos))
	r.reg("tan", unary(math.Tan))
	r.reg("sqrt", func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, langerr.New(langerr.ArityError, "sqrt expects 1 argument, got %d", len(args))
		}
		n, err := asNumber(args[0])
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, langerr.New(langerr.TypeError, "sqrt of negative number %g", n)
		}
		return value.Number(math.Sqrt(n)), nil
	})
	r.reg("log", unary(math.Log))
	r.reg("exp", unary(math.Exp))
}

func unary(f func(float64) float64) value.BuiltinFunc {
	return func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, langerr.New(langerr.ArityError, "expected 1 argument, got %d", len(args))
		}
		n, err := asNumber(args[0])
		if err != nil {
			return nil, err
		}
		return value.Number(f(n)), nil
	}
}
