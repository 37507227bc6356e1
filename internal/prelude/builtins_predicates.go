package prelude

import (
	"github.com/jsl-lang/jsl/internal/langerr"
	"github.com/jsl-lang/jsl/internal/value"
)

// registerPredicates installs the type predicates, essential for wire
// format validation and dynamic dispatch in user programs. Grounded on
// jsl/prelude.py's TYPE PREDICATES section.
func registerPredicates(r *registrar) {
	predicate := func(name string, want value.Kind) {
		r.reg(name, func(args []value.Value) (value.Value, error) {
			if len(args) != 1 {
				return nil, langerr.New(langerr.ArityError, "%s expects 1 argument, got %d", name, len(args))
			}
			return value.Bool(args[0].Kind() == want), nil
		})
	}
	predicate("null?", value.KindNull)
	predicate("bool?", value.KindBool)
	predicate("number?", value.KindNumber)
	predicate("string?", value.KindString)
	predicate("list?", value.KindList)
	predicate("dict?", value.KindMap)

	r.reg("callable?", func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, langerr.New(langerr.ArityError, "callable? expects 1 argument, got %d", len(args))
		}
		k := args[0].Kind()
		return value.Bool(k == value.KindClosure || k == value.KindBuiltin), nil
	})
}
