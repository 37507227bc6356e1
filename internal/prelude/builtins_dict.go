package prelude

import (
	"github.com/jsl-lang/jsl/internal/langerr"
	"github.com/jsl-lang/jsl/internal/value"
)

// registerDict installs the dictionary builtins. Grounded on
// jsl/prelude.py's DICTIONARY OPERATIONS section.
func registerDict(r *registrar) {
	r.reg("get", func(args []value.Value) (value.Value, error) {
		if len(args) < 2 || len(args) > 3 {
			return nil, langerr.New(langerr.ArityError, "get expects 2 or 3 arguments, got %d", len(args))
		}
		m, err := asMap(args[0])
		if err != nil {
			return nil, err
		}
		k, err := asString(args[1])
		if err != nil {
			return nil, err
		}
		if v, ok := m.Get(k); ok {
			return v, nil
		}
		if len(args) == 3 {
			return args[2], nil
		}
		return value.NullValue, nil
	})

	r.reg("set", func(args []value.Value) (value.Value, error) {
		if len(args) != 3 {
			return nil, langerr.New(langerr.ArityError, "set expects 3 arguments, got %d", len(args))
		}
		m, err := asMap(args[0])
		if err != nil {
			return nil, err
		}
		k, err := asString(args[1])
		if err != nil {
			return nil, err
		}
		return m.Set(k, args[2]), nil
	})

	r.reg("keys", func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, langerr.New(langerr.ArityError, "keys expects 1 argument, got %d", len(args))
		}
		m, err := asMap(args[0])
		if err != nil {
			return nil, err
		}
		out := make(value.List, 0, m.Len())
		for _, k := range m.Keys() {
			out = append(out, value.String(k))
		}
		return out, nil
	})

	r.reg("values", func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, langerr.New(langerr.ArityError, "values expects 1 argument, got %d", len(args))
		}
		m, err := asMap(args[0])
		if err != nil {
			return nil, err
		}
		out := make(value.List, 0, m.Len())
		for _, k := range m.Keys() {
			v, _ := m.Get(k)
			out = append(out, v)
		}
		return out, nil
	})

	r.reg("merge", func(args []value.Value) (value.Value, error) {
		out := value.NewMap()
		for _, a := range args {
			m, err := asMap(a)
			if err != nil {
				return nil, err
			}
			for _, k := range m.Keys() {
				v, _ := m.Get(k)
				out = out.Set(k, v)
			}
		}
		return out, nil
	})

	r.reg("has-key?", func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return nil, langerr.New(langerr.ArityError, "has-key? expects 2 arguments, got %d", len(args))
		}
		m, err := asMap(args[0])
		if err != nil {
			return nil, err
		}
		k, err := asString(args[1])
		if err != nil {
			return nil, err
		}
		_, ok := m.Get(k)
		return value.Bool(ok), nil
	})
}
