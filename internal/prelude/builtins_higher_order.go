package prelude

import (
	"github.com/jsl-lang/jsl/internal/langerr"
	"github.com/jsl-lang/jsl/internal/value"
)

// registerHigherOrder installs map/filter/reduce/apply, the cornerstone of
// functional composition. Each dispatches user-supplied closures through
// Apply (see prelude.go), mirroring jsl/prelude.py's
// eval_closure_or_builtin integration layer.
func registerHigherOrder(r *registrar) {
	r.reg("map", func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return nil, langerr.New(langerr.ArityError, "map expects 2 arguments, got %d", len(args))
		}
		l, err := asList(args[1])
		if err != nil {
			return nil, err
		}
		out := make(value.List, len(l))
		for i, item := range l {
			v, err := Apply(args[0], []value.Value{item})
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	})

	r.reg("filter", func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return nil, langerr.New(langerr.ArityError, "filter expects 2 arguments, got %d", len(args))
		}
		l, err := asList(args[1])
		if err != nil {
			return nil, err
		}
		var out value.List
		for _, item := range l {
			v, err := Apply(args[0], []value.Value{item})
			if err != nil {
				return nil, err
			}
			if value.Truthy(v) {
				out = append(out, item)
			}
		}
		if out == nil {
			out = value.List{}
		}
		return out, nil
	})

	r.reg("reduce", func(args []value.Value) (value.Value, error) {
		if len(args) < 2 || len(args) > 3 {
			return nil, langerr.New(langerr.ArityError, "reduce expects 2 or 3 arguments, got %d", len(args))
		}
		l, err := asList(args[1])
		if err != nil {
			return nil, err
		}
		var acc value.Value
		items := l
		if len(args) == 3 {
			acc = args[2]
		} else {
			if len(l) == 0 {
				return value.NullValue, nil
			}
			acc = l[0]
			items = l[1:]
		}
		for _, item := range items {
			acc, err = Apply(args[0], []value.Value{acc, item})
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	})

	r.reg("apply", func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return nil, langerr.New(langerr.ArityError, "apply expects 2 arguments, got %d", len(args))
		}
		argList, err := asList(args[1])
		if err != nil {
			return nil, err
		}
		return Apply(args[0], argList)
	})
}
