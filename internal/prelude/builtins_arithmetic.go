package prelude

import (
	"github.com/jsl-lang/jsl/internal/langerr"
	"github.com/jsl-lang/jsl/internal/value"
)

// registerArithmetic installs the n-ary arithmetic, comparison, and
// logical operators. Grounded on jsl/prelude.py's "+"/"-"/"*"/"/"/"mod"/
// "pow" and the chained "="/"<"/">"/"<="/">=" comparisons (SPEC_FULL.md
// §12 item 2: these chain pairwise across more than two arguments, not
// just binary).
func registerArithmetic(r *registrar) {
	r.reg("+", func(args []value.Value) (value.Value, error) {
		var sum float64
		for _, a := range args {
			n, err := asNumber(a)
			if err != nil {
				return nil, err
			}
			sum += n
		}
		return value.Number(sum), nil
	})

	r.reg("-", func(args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.Number(0), nil
		}
		first, err := asNumber(args[0])
		if err != nil {
			return nil, err
		}
		if len(args) == 1 {
			return value.Number(-first), nil
		}
		for _, a := range args[1:] {
			n, err := asNumber(a)
			if err != nil {
				return nil, err
			}
			first -= n
		}
		return value.Number(first), nil
	})

	r.reg("*", func(args []value.Value) (value.Value, error) {
		product := 1.0
		for _, a := range args {
			n, err := asNumber(a)
			if err != nil {
				return nil, err
			}
			product *= n
		}
		return value.Number(product), nil
	})

	r.reg("/", func(args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return nil, langerr.New(langerr.TypeError, "/ requires at least one argument")
		}
		if len(args) == 1 {
			v, err := asNumber(args[0])
			if err != nil {
				return nil, err
			}
			if v == 0 {
				return nil, langerr.New(langerr.ZeroDivision, "division by zero")
			}
			return value.Number(1 / v), nil
		}
		num, err := asNumber(args[0])
		if err != nil {
			return nil, err
		}
		denom := 1.0
		for _, a := range args[1:] {
			n, err := asNumber(a)
			if err != nil {
				return nil, err
			}
			denom *= n
		}
		if denom == 0 {
			return nil, langerr.New(langerr.ZeroDivision, "division by zero")
		}
		return value.Number(num / denom), nil
	})

	r.reg("mod", func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return nil, langerr.New(langerr.ArityError, "mod expects 2 arguments, got %d", len(args))
		}
		a, err := asNumber(args[0])
		if err != nil {
			return nil, err
		}
		b, err := asNumber(args[1])
		if err != nil {
			return nil, err
		}
		if b == 0 {
			return value.Number(0), nil
		}
		mod := int(a) % int(b)
		return value.Number(float64(mod)), nil
	})

	r.reg("pow", func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return nil, langerr.New(langerr.ArityError, "pow expects 2 arguments, got %d", len(args))
		}
		a, err := asNumber(args[0])
		if err != nil {
			return nil, err
		}
		b, err := asNumber(args[1])
		if err != nil {
			return nil, err
		}
		return value.Number(mathPow(a, b)), nil
	})

	r.reg("=", chainedComparison(func(a, b float64) bool { return a == b }, equalAny))
	r.reg("<", chainedComparison(func(a, b float64) bool { return a < b }, nil))
	r.reg(">", chainedComparison(func(a, b float64) bool { return a > b }, nil))
	r.reg("<=", chainedComparison(func(a, b float64) bool { return a <= b }, nil))
	r.reg(">=", chainedComparison(func(a, b float64) bool { return a >= b }, nil))

	r.reg("and", func(args []value.Value) (value.Value, error) {
		for _, a := range args {
			if !value.Truthy(a) {
				return value.Bool(false), nil
			}
		}
		return value.Bool(true), nil
	})

	r.reg("or", func(args []value.Value) (value.Value, error) {
		for _, a := range args {
			if value.Truthy(a) {
				return value.Bool(true), nil
			}
		}
		return value.Bool(false), nil
	})

	r.reg("not", func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, langerr.New(langerr.ArityError, "not expects 1 argument, got %d", len(args))
		}
		return value.Bool(!value.Truthy(args[0])), nil
	})
}

// equalAny compares any two values structurally, used by "=" so it works
// across non-number kinds too (the reference's "=" compares Python
// values generically, not just numbers).
func equalAny(a, b value.Value) bool {
	return value.Equal(a, b)
}

// chainedComparison builds an n-ary comparator: vacuously true for 0/1
// arguments, otherwise true iff every adjacent pair satisfies numCmp (or,
// for "=", the generic structural eq check when operands aren't numbers).
func chainedComparison(numCmp func(a, b float64) bool, eq func(a, b value.Value) bool) value.BuiltinFunc {
	return func(args []value.Value) (value.Value, error) {
		if len(args) <= 1 {
			return value.Bool(true), nil
		}
		for i := 0; i < len(args)-1; i++ {
			a, b := args[i], args[i+1]
			an, aok := a.(value.Number)
			bn, bok := b.(value.Number)
			if aok && bok {
				if !numCmp(float64(an), float64(bn)) {
					return value.Bool(false), nil
				}
				continue
			}
			if eq != nil {
				if !eq(a, b) {
					return value.Bool(false), nil
				}
				continue
			}
			return nil, langerr.New(langerr.TypeError, "cannot compare %s and %s", value.TypeName(a), value.TypeName(b))
		}
		return value.Bool(true), nil
	}
}
