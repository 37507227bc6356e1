package prelude

import (
	"github.com/jsl-lang/jsl/internal/langerr"
	"github.com/jsl-lang/jsl/internal/value"
)

func asNumber(v value.Value) (float64, error) {
	n, ok := v.(value.Number)
	if !ok {
		return 0, langerr.New(langerr.TypeError, "expected number, got %s", value.TypeName(v))
	}
	return float64(n), nil
}

func asString(v value.Value) (string, error) {
	s, ok := v.(value.String)
	if !ok {
		return "", langerr.New(langerr.TypeError, "expected string, got %s", value.TypeName(v))
	}
	return string(s), nil
}

func asList(v value.Value) (value.List, error) {
	l, ok := v.(value.List)
	if !ok {
		return nil, langerr.New(langerr.TypeError, "expected list, got %s", value.TypeName(v))
	}
	return l, nil
}

func asMap(v value.Value) (*value.Map, error) {
	m, ok := v.(*value.Map)
	if !ok {
		return nil, langerr.New(langerr.TypeError, "expected dict, got %s", value.TypeName(v))
	}
	return m, nil
}

func asInt(v value.Value) (int, error) {
	n, err := asNumber(v)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
