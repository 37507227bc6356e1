package value_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsl-lang/jsl/internal/value"
)

func TestTruthy(t *testing.T) {
	cases := []struct {
		name string
		v    value.Value
		want bool
	}{
		{"null", value.NullValue, false},
		{"false", value.Bool(false), false},
		{"true", value.Bool(true), true},
		{"zero", value.Number(0), false},
		{"nonzero", value.Number(1), true},
		{"negative", value.Number(-1), true},
		{"empty string", value.String(""), false},
		{"nonempty string", value.String("x"), true},
		{"empty list", value.List{}, false},
		{"nonempty list", value.List{value.Number(0)}, true},
		{"empty map", value.NewMap(), false},
		{"nonempty map", value.NewMap().Set("a", value.NullValue), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, value.Truthy(c.v))
		})
	}
}

func TestEqual_ScalarsAndCollections(t *testing.T) {
	require.True(t, value.Equal(value.Number(1), value.Number(1)))
	require.False(t, value.Equal(value.Number(1), value.Number(2)))
	require.False(t, value.Equal(value.Number(1), value.String("1")), "different kinds are never equal")

	a := value.List{value.Number(1), value.String("x")}
	b := value.List{value.Number(1), value.String("x")}
	c := value.List{value.Number(1), value.String("y")}
	require.True(t, value.Equal(a, b))
	require.False(t, value.Equal(a, c))
}

func TestEqual_MapsIgnoreKeyOrder(t *testing.T) {
	m1 := value.NewMap().Set("a", value.Number(1)).Set("b", value.Number(2))
	m2 := value.NewMap().Set("b", value.Number(2)).Set("a", value.Number(1))
	require.True(t, value.Equal(m1, m2))
}

func TestEqual_MapsDifferentSize(t *testing.T) {
	m1 := value.NewMap().Set("a", value.Number(1))
	m2 := value.NewMap().Set("a", value.Number(1)).Set("b", value.Number(2))
	require.False(t, value.Equal(m1, m2))
}

func TestEqual_NilHandling(t *testing.T) {
	require.True(t, value.Equal(nil, nil))
	require.False(t, value.Equal(nil, value.NullValue))
}

func TestEqual_BuiltinsByName(t *testing.T) {
	b1 := &value.Builtin{Name: "+"}
	b2 := &value.Builtin{Name: "+"}
	b3 := &value.Builtin{Name: "-"}
	require.True(t, value.Equal(b1, b2))
	require.False(t, value.Equal(b1, b3))
}

func TestTypeName(t *testing.T) {
	require.Equal(t, "null", value.TypeName(value.NullValue))
	require.Equal(t, "bool", value.TypeName(value.Bool(true)))
	require.Equal(t, "number", value.TypeName(value.Number(1)))
	require.Equal(t, "string", value.TypeName(value.String("x")))
	require.Equal(t, "list", value.TypeName(value.List{}))
	require.Equal(t, "dict", value.TypeName(value.NewMap()))
	require.Equal(t, "closure", value.TypeName(&value.Closure{}))
	require.Equal(t, "builtin", value.TypeName(&value.Builtin{}))
}

func TestMap_SetPreservesInsertionOrderAndOverwritePosition(t *testing.T) {
	m := value.NewMap().Set("a", value.Number(1)).Set("b", value.Number(2)).Set("c", value.Number(3))
	require.Equal(t, []string{"a", "b", "c"}, m.Keys())

	m = m.Set("b", value.Number(99))
	require.Equal(t, []string{"a", "b", "c"}, m.Keys(), "overwriting a key keeps its original position")
	v, ok := m.Get("b")
	require.True(t, ok)
	require.Equal(t, value.Number(99), v)
}

func TestMap_SetIsImmutable(t *testing.T) {
	m1 := value.NewMap().Set("a", value.Number(1))
	m2 := m1.Set("b", value.Number(2))
	require.Equal(t, 1, m1.Len())
	require.Equal(t, 2, m2.Len())
}

func TestMap_Without(t *testing.T) {
	m := value.NewMap().Set("a", value.Number(1)).Set("b", value.Number(2))
	out := m.Without("a")
	require.Equal(t, []string{"b"}, out.Keys())
	_, ok := out.Get("a")
	require.False(t, ok)

	same := m.Without("nonexistent")
	require.Equal(t, m.Keys(), same.Keys())
}

func TestMap_Renamed(t *testing.T) {
	m := value.NewMap().Set("a", value.Number(1)).Set("b", value.Number(2))
	renamed := m.Renamed("a", "z")
	require.Equal(t, []string{"z", "b"}, renamed.Keys())
	v, ok := renamed.Get("z")
	require.True(t, ok)
	require.Equal(t, value.Number(1), v)
	_, ok = renamed.Get("a")
	require.False(t, ok)
}

func TestMapFromPairs_LaterDuplicateWins(t *testing.T) {
	pairs := [][2]value.Value{
		{value.String("a"), value.Number(1)},
		{value.String("b"), value.Number(2)},
		{value.String("a"), value.Number(99)},
	}
	m, err := value.MapFromPairs(pairs)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, m.Keys())
	v, _ := m.Get("a")
	require.Equal(t, value.Number(99), v)
}

func TestMapFromPairs_RejectsNonStringKey(t *testing.T) {
	_, err := value.MapFromPairs([][2]value.Value{{value.Number(1), value.Number(2)}})
	require.Error(t, err)
}

func TestNumber_StringFormatsIntegersWithoutDecimal(t *testing.T) {
	require.Equal(t, "3", value.Number(3).String())
	require.Equal(t, "-7", value.Number(-7).String())
	require.Equal(t, "3.5", value.Number(3.5).String())
}
