package treeeval_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsl-lang/jsl/internal/budget"
	"github.com/jsl-lang/jsl/internal/host"
	"github.com/jsl-lang/jsl/internal/prelude"
	"github.com/jsl-lang/jsl/internal/serialize"
	"github.com/jsl-lang/jsl/internal/treeeval"
	"github.com/jsl-lang/jsl/internal/value"
)

func setup(t *testing.T) (*value.Env, *budget.Budget) {
	t.Helper()
	env, _ := prelude.New()
	return env, budget.New(budget.DefaultLimits(), budget.DefaultHostGasPolicy())
}

func evalForm(t *testing.T, jsonForm string) (value.Value, error) {
	t.Helper()
	env, b := setup(t)
	form, err := serialize.JSONToValue(jsonForm)
	require.NoError(t, err)
	return treeeval.Eval(form, env, b)
}

func TestEval_IfDoLetLambdaDef(t *testing.T) {
	v, err := evalForm(t, `["if", true, 1, 2]`)
	require.NoError(t, err)
	require.Equal(t, value.Number(1), v)

	v, err = evalForm(t, `["do", ["def", "x", 1], ["def", "y", 2], ["+", "x", "y"]]`)
	require.NoError(t, err)
	require.Equal(t, value.Number(3), v)

	v, err = evalForm(t, `["let", [["a", 1], ["b", 2]], ["+", "a", "b"]]`)
	require.NoError(t, err)
	require.Equal(t, value.Number(3), v)
}

func TestEval_LambdaDuplicateParamIsSyntaxError(t *testing.T) {
	_, err := evalForm(t, `["lambda", ["x", "x"], "x"]`)
	require.Error(t, err)
}

func TestEval_QuoteReturnsUnevaluatedForm(t *testing.T) {
	v, err := evalForm(t, `["quote", ["+", 1, 2]]`)
	require.NoError(t, err)
	require.True(t, value.Equal(value.List{value.String("+"), value.Number(1), value.Number(2)}, v))
}

func TestEval_UndefinedSymbol(t *testing.T) {
	_, err := evalForm(t, `"undefined-name"`)
	require.Error(t, err)
}

func TestEval_Try_CatchesCatchableError(t *testing.T) {
	v, err := evalForm(t, `["try",
		["/", 1, 0],
		["lambda", ["e"], ["get", "e", "@type"]]
	]`)
	require.NoError(t, err)
	require.Equal(t, value.String("ZeroDivision"), v)
}

func TestEval_Try_PropagatesUncatchableError(t *testing.T) {
	env, b := setup(t)
	b.Limits.MaxGas = 1
	form, err := serialize.JSONToValue(`["try", ["+", 1, 2, 3], ["lambda", ["e"], "@unreachable"]]`)
	require.NoError(t, err)
	_, err = treeeval.Eval(form, env, b)
	require.Error(t, err)
}

func TestEval_Try_NoErrorReturnsBodyResult(t *testing.T) {
	v, err := evalForm(t, `["try", ["+", 1, 2], ["lambda", ["e"], "@never"]]`)
	require.NoError(t, err)
	require.Equal(t, value.Number(3), v)
}

func TestEval_Where_FiltersOverListOfRecords(t *testing.T) {
	v, err := evalForm(t, `["where",
		["list", {"@age": 10}, {"@age": 25}, {"@age": 40}],
		["<", 18, "age"]
	]`)
	require.NoError(t, err)
	lst, ok := v.(value.List)
	require.True(t, ok)
	require.Len(t, lst, 2)
}

func TestEval_Where_ConditionErrorExcludesItemSilently(t *testing.T) {
	v, err := evalForm(t, `["where",
		["list", {"@age": 10}, {}],
		["<", 18, "age"]
	]`)
	require.NoError(t, err)
	lst, ok := v.(value.List)
	require.True(t, ok)
	require.Len(t, lst, 0, "a missing field makes the comparison undefined-symbol, which where swallows as exclusion")
}

func TestEval_Where_OverDictIteratesValues(t *testing.T) {
	v, err := evalForm(t, `["where", {"@a": 1, "@b": 2, "@c": 3}, ["<", 1, "$"]]`)
	require.NoError(t, err)
	lst, ok := v.(value.List)
	require.True(t, ok)
	require.Len(t, lst, 2)
}

func TestEval_Transform_Pipeline(t *testing.T) {
	v, err := evalForm(t, `["transform",
		{"@name": "@widget", "@price": 10, "@secret": "@x"},
		["assign", "@tax", ["*", "price", 0.1]],
		["omit", "@secret"],
		["rename", "@name", "@title"]
	]`)
	require.NoError(t, err)
	m, ok := v.(*value.Map)
	require.True(t, ok)
	require.Equal(t, []string{"title", "price", "tax"}, m.Keys())
	tax, _ := m.Get("tax")
	require.Equal(t, value.Number(1.0), tax)
	_, hasSecret := m.Get("secret")
	require.False(t, hasSecret)
}

func TestEval_Transform_OverListOfRecords(t *testing.T) {
	v, err := evalForm(t, `["transform",
		["list", {"@n": 1}, {"@n": 2}],
		["assign", "@doubled", ["*", "n", 2]]
	]`)
	require.NoError(t, err)
	lst, ok := v.(value.List)
	require.True(t, ok)
	require.Len(t, lst, 2)
	first, ok := lst[0].(*value.Map)
	require.True(t, ok)
	doubled, _ := first.Get("doubled")
	require.Equal(t, value.Number(2), doubled)
}

func TestEval_Transform_DefaultOnlyAppliesWhenKeyMissing(t *testing.T) {
	v, err := evalForm(t, `["transform", {"@a": 1}, ["default", "@a", 99], ["default", "@b", 42]]`)
	require.NoError(t, err)
	m := v.(*value.Map)
	a, _ := m.Get("a")
	b2, _ := m.Get("b")
	require.Equal(t, value.Number(1), a)
	require.Equal(t, value.Number(42), b2)
}

func TestEval_Transform_ApplyRunsClosureOnField(t *testing.T) {
	v, err := evalForm(t, `["transform", {"@name": "@widget"},
		["apply", "@name", ["lambda", ["s"], ["str-upper", "s"]]]
	]`)
	require.NoError(t, err)
	m := v.(*value.Map)
	name, _ := m.Get("name")
	require.Equal(t, value.String("WIDGET"), name)
}

func TestEval_Host_RejectsNonPureArgument(t *testing.T) {
	defer host.SetCapabilities(nil)
	host.SetCapabilities(host.NewCapabilities().Grant("time"))
	_, err := evalForm(t, `["host", "@time/now", ["lambda", ["x"], "x"]]`)
	require.Error(t, err)
}

func TestEval_Host_DispatchesAndChargesGas(t *testing.T) {
	defer host.SetCapabilities(nil)
	host.SetCapabilities(host.NewCapabilities().Grant("system"))
	env, b := setup(t)
	form, err := serialize.JSONToValue(`["host", "@system/arch"]`)
	require.NoError(t, err)
	before := b.GasUsed
	v, err := treeeval.Eval(form, env, b)
	require.NoError(t, err)
	require.Equal(t, value.KindString, v.Kind())
	require.Greater(t, b.GasUsed, before)
}

func TestEval_Host_DeniedCapabilityPropagatesAsHostError(t *testing.T) {
	defer host.SetCapabilities(nil)
	host.SetCapabilities(host.NewCapabilities())
	_, err := evalForm(t, `["host", "@system/arch"]`)
	require.Error(t, err)
}

func TestApply_ArityMismatchIsArityError(t *testing.T) {
	_, err := evalForm(t, `[["lambda", ["x", "y"], "x"], 1]`)
	require.Error(t, err)
}

func TestApply_CallingNonCallableIsTypeError(t *testing.T) {
	_, err := evalForm(t, `[1, 2]`)
	require.Error(t, err)
}
