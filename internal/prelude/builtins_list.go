package prelude

import (
	"github.com/jsl-lang/jsl/internal/langerr"
	"github.com/jsl-lang/jsl/internal/value"
)

// registerList installs the list-manipulation builtins. Grounded on
// jsl/prelude.py's LIST OPERATIONS section.
func registerList(r *registrar) {
	r.reg("list", func(args []value.Value) (value.Value, error) {
		return value.List(append([]value.Value(nil), args...)), nil
	})

	r.reg("append", func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return nil, langerr.New(langerr.ArityError, "append expects 2 arguments, got %d", len(args))
		}
		l, err := asList(args[0])
		if err != nil {
			return nil, err
		}
		out := append(append(value.List(nil), l...), args[1])
		return out, nil
	})

	r.reg("prepend", func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return nil, langerr.New(langerr.ArityError, "prepend expects 2 arguments, got %d", len(args))
		}
		l, err := asList(args[1])
		if err != nil {
			return nil, err
		}
		out := append(value.List{args[0]}, l...)
		return out, nil
	})

	r.reg("concat", func(args []value.Value) (value.Value, error) {
		var out value.List
		for _, a := range args {
			l, err := asList(a)
			if err != nil {
				return nil, err
			}
			out = append(out, l...)
		}
		if out == nil {
			out = value.List{}
		}
		return out, nil
	})

	r.reg("first", func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, langerr.New(langerr.ArityError, "first expects 1 argument, got %d", len(args))
		}
		l, err := asList(args[0])
		if err != nil {
			return nil, err
		}
		if len(l) == 0 {
			return value.NullValue, nil
		}
		return l[0], nil
	})

	r.reg("rest", func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, langerr.New(langerr.ArityError, "rest expects 1 argument, got %d", len(args))
		}
		l, err := asList(args[0])
		if err != nil {
			return nil, err
		}
		if len(l) <= 1 {
			return value.List{}, nil
		}
		return append(value.List(nil), l[1:]...), nil
	})

	r.reg("nth", func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return nil, langerr.New(langerr.ArityError, "nth expects 2 arguments, got %d", len(args))
		}
		l, err := asList(args[0])
		if err != nil {
			return nil, err
		}
		i, err := asInt(args[1])
		if err != nil {
			return nil, err
		}
		if i < 0 || i >= len(l) {
			return value.NullValue, nil
		}
		return l[i], nil
	})

	r.reg("length", func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, langerr.New(langerr.ArityError, "length expects 1 argument, got %d", len(args))
		}
		switch v := args[0].(type) {
		case value.List:
			return value.Number(len(v)), nil
		case value.String:
			return value.Number(len([]rune(string(v)))), nil
		case *value.Map:
			return value.Number(v.Len()), nil
		default:
			return nil, langerr.New(langerr.TypeError, "length: unsupported type %s", value.TypeName(args[0]))
		}
	})

	r.reg("empty?", func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, langerr.New(langerr.ArityError, "empty? expects 1 argument, got %d", len(args))
		}
		switch v := args[0].(type) {
		case value.List:
			return value.Bool(len(v) == 0), nil
		case value.String:
			return value.Bool(v == ""), nil
		case *value.Map:
			return value.Bool(v.Len() == 0), nil
		default:
			return value.Bool(true), nil
		}
	})

	r.reg("slice", func(args []value.Value) (value.Value, error) {
		if len(args) < 2 || len(args) > 3 {
			return nil, langerr.New(langerr.ArityError, "slice expects 2 or 3 arguments, got %d", len(args))
		}
		start, err := asInt(args[1])
		if err != nil {
			return nil, err
		}
		switch v := args[0].(type) {
		case value.List:
			end := len(v)
			if len(args) == 3 {
				end, err = asInt(args[2])
				if err != nil {
					return nil, err
				}
			}
			start, end = clampRange(start, end, len(v))
			return append(value.List(nil), v[start:end]...), nil
		case value.String:
			runes := []rune(string(v))
			end := len(runes)
			if len(args) == 3 {
				end, err = asInt(args[2])
				if err != nil {
					return nil, err
				}
			}
			start, end = clampRange(start, end, len(runes))
			return value.String(runes[start:end]), nil
		default:
			return value.List{}, nil
		}
	})

	r.reg("reverse", func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, langerr.New(langerr.ArityError, "reverse expects 1 argument, got %d", len(args))
		}
		switch v := args[0].(type) {
		case value.List:
			out := make(value.List, len(v))
			for i, x := range v {
				out[len(v)-1-i] = x
			}
			return out, nil
		case value.String:
			runes := []rune(string(v))
			for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
				runes[i], runes[j] = runes[j], runes[i]
			}
			return value.String(runes), nil
		default:
			return args[0], nil
		}
	})

	r.reg("contains?", func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return nil, langerr.New(langerr.ArityError, "contains? expects 2 arguments, got %d", len(args))
		}
		l, err := asList(args[0])
		if err != nil {
			return nil, err
		}
		for _, x := range l {
			if value.Equal(x, args[1]) {
				return value.Bool(true), nil
			}
		}
		return value.Bool(false), nil
	})

	r.reg("index", func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return nil, langerr.New(langerr.ArityError, "index expects 2 arguments, got %d", len(args))
		}
		l, err := asList(args[0])
		if err != nil {
			return nil, err
		}
		for i, x := range l {
			if value.Equal(x, args[1]) {
				return value.Number(i), nil
			}
		}
		return value.Number(-1), nil
	})

	// pluck is not part of the Python reference prelude; added for
	// spec §8 scenario S6 as a small
	// composition of map+get over a list of records, in the same
	// one-liner style as the rest of this file.
	r.reg("pluck", func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return nil, langerr.New(langerr.ArityError, "pluck expects 2 arguments, got %d", len(args))
		}
		l, err := asList(args[0])
		if err != nil {
			return nil, err
		}
		key, err := asString(args[1])
		if err != nil {
			return nil, err
		}
		out := make(value.List, 0, len(l))
		for _, item := range l {
			m, err := asMap(item)
			if err != nil {
				return nil, err
			}
			v, ok := m.Get(key)
			if !ok {
				v = value.NullValue
			}
			out = append(out, v)
		}
		return out, nil
	})
}

func clampRange(start, end, length int) (int, int) {
	if start < 0 {
		start = 0
	}
	if start > length {
		start = length
	}
	if end > length {
		end = length
	}
	if end < start {
		end = start
	}
	return start, end
}
