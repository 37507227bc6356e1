// Package e2e runs the full-stack scenarios from spec §8 ("Testable
// properties" / "End-to-end scenarios") against the real compiler,
// prelude, both evaluators, and the serializer together, rather than unit
// testing any one package's internals.
package e2e_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsl-lang/jsl/internal/budget"
	"github.com/jsl-lang/jsl/internal/compiler"
	"github.com/jsl-lang/jsl/internal/prelude"
	"github.com/jsl-lang/jsl/internal/serialize"
	"github.com/jsl-lang/jsl/internal/stackeval"
	"github.com/jsl-lang/jsl/internal/treeeval"
	"github.com/jsl-lang/jsl/internal/value"
)

func newEnv(t *testing.T) *value.Env {
	t.Helper()
	env, _ := prelude.New()
	return env
}

func newBudget() *budget.Budget {
	return budget.New(budget.DefaultLimits(), budget.DefaultHostGasPolicy())
}

func parse(t *testing.T, jsonForm string) value.Value {
	t.Helper()
	v, err := serialize.JSONToValue(jsonForm)
	require.NoError(t, err)
	return v
}

// S1 - arithmetic identity and n-ary.
func TestScenario_S1_ArithmeticIdentityAndNary(t *testing.T) {
	cases := []struct {
		form string
		want value.Value
	}{
		{`["+", 1, 2, 3, 4]`, value.Number(10)},
		{`["+"]`, value.Number(0)},
		{`["*"]`, value.Number(1)},
		{`["-", 5]`, value.Number(-5)},
		{`["-", 10, 3, 2]`, value.Number(5)},
	}
	for _, c := range cases {
		form := parse(t, c.form)
		result, err := treeeval.Eval(form, newEnv(t), newBudget())
		require.NoError(t, err)
		require.Equal(t, c.want, result)

		stackResult, err := stackeval.Eval(compiler.Compile(form), newEnv(t), newBudget())
		require.NoError(t, err)
		require.Equal(t, c.want, stackResult)
	}
}

// S2 - recursion via a def placeholder.
func TestScenario_S2_RecursionViaDefPlaceholder(t *testing.T) {
	program := `["do",
		["def","fact",["lambda",["n"],
			["if",["<=","n",1], 1,
				["*","n",["fact",["-","n",1]]]]]],
		["fact", 5]]`
	form := parse(t, program)

	treeResult, err := treeeval.Eval(form, newEnv(t), newBudget())
	require.NoError(t, err)
	require.Equal(t, value.Number(120), treeResult)

	stackResult, err := stackeval.Eval(compiler.Compile(form), newEnv(t), newBudget())
	require.NoError(t, err)
	require.Equal(t, value.Number(120), stackResult)
}

// S3 - closure capture and serialization: the intermediate closure's
// encoded env section contains exactly the captured free variable, and
// decoding+applying it reproduces the original result.
func TestScenario_S3_ClosureCaptureAndSerialization(t *testing.T) {
	env := newEnv(t)
	b := newBudget()

	defForm := parse(t, `["def","add",["lambda",["x"],["lambda",["y"],["+","x","y"]]]]`)
	_, err := treeeval.Eval(defForm, env, b)
	require.NoError(t, err)

	partialForm := parse(t, `["add", 10]`)
	partial, err := treeeval.Eval(partialForm, env, b)
	require.NoError(t, err)
	closure, ok := partial.(*value.Closure)
	require.True(t, ok)

	full, err := treeeval.Apply(closure, []value.Value{value.Number(5)}, b)
	require.NoError(t, err)
	require.Equal(t, value.Number(15), full)

	encoded, err := serialize.EncodeClosure(closure)
	require.NoError(t, err)
	m, err := serialize.JSONToValue(encoded)
	require.NoError(t, err)
	mm, ok := m.(*value.Map)
	require.True(t, ok)
	envSection, ok := mm.Get("__env__")
	require.True(t, ok)
	envMap, ok := envSection.(*value.Map)
	require.True(t, ok)
	rootIDVal, ok := envMap.Get("root")
	require.True(t, ok)
	rootID, ok := rootIDVal.(value.String)
	require.True(t, ok)
	registryVal, ok := envMap.Get("envs")
	require.True(t, ok)
	registry, ok := registryVal.(*value.Map)
	require.True(t, ok)
	require.Equal(t, 1, registry.Len(), "only one captured frame: the add(10) call's own {x: 10} binding")
	entryVal, ok := registry.Get(string(rootID))
	require.True(t, ok)
	entry, ok := entryVal.(*value.Map)
	require.True(t, ok)
	bindingsField, ok := entry.Get("bindings")
	require.True(t, ok)
	bm, ok := bindingsField.(*value.Map)
	require.True(t, ok)
	require.Equal(t, []string{"x"}, bm.Keys())
	xVal, _ := bm.Get("x")
	require.Equal(t, value.Number(10), xVal)

	decoded, err := serialize.DecodeClosure(encoded, newEnv(t))
	require.NoError(t, err)
	result, err := treeeval.Apply(decoded, []value.Value{value.Number(5)}, newBudget())
	require.NoError(t, err)
	require.Equal(t, value.Number(15), result)
}

// S4 - step-bounded resumption: repeated EvalPartial/Resume cycles
// through a serialize/deserialize roundtrip after each interruption still
// converge on the direct result.
func TestScenario_S4_StepBoundedResumption(t *testing.T) {
	form := parse(t, `["*", ["+", 10, 20], ["-", 100, 50]]`)
	instructions := compiler.Compile(form)

	direct, err := stackeval.Eval(instructions, newEnv(t), newBudget())
	require.NoError(t, err)
	require.Equal(t, value.Number(1500), direct)

	env := newEnv(t)
	b := newBudget()
	result, state, err := stackeval.EvalPartial(instructions, env, b, 2)
	require.NoError(t, err)
	require.Nil(t, result)
	require.NotNil(t, state)

	for state != nil {
		encoded, encErr := serialize.EncodeState(state.ToSuspended())
		require.NoError(t, encErr)

		decoded, decErr := serialize.DecodeState(encoded, newEnv(t))
		require.NoError(t, decErr)

		freshBudget := newBudget()
		result, state, err = stackeval.Resume(stackeval.FromSuspended(decoded), freshBudget, 2)
		require.NoError(t, err)
	}
	require.Equal(t, value.Number(1500), result)
}

// S5 - try catches a runtime error.
func TestScenario_S5_TryCatchesRuntimeError(t *testing.T) {
	form := parse(t, `["try", ["/", 1, 0], ["lambda", ["e"], "@caught"]]`)

	treeResult, err := treeeval.Eval(form, newEnv(t), newBudget())
	require.NoError(t, err)
	require.Equal(t, value.String("caught"), treeResult)

	stackResult, err := stackeval.Eval(compiler.Compile(form), newEnv(t), newBudget())
	require.NoError(t, err)
	require.Equal(t, value.String("caught"), stackResult)
}

// S6 - where + transform pipeline.
func TestScenario_S6_WhereTransformPipeline(t *testing.T) {
	program := `["pluck",
		["transform",
			["where",
				["list",
					{"@name": "@Widget", "@price": 29.99, "@category": "@tools"},
					{"@name": "@Gadget", "@price": 99.99, "@category": "@electronics"},
					{"@name": "@Doohickey", "@price": 19.99, "@category": "@tools"}],
				["=", "category", "@tools"]],
			["pick", "@name", "@price"],
			["apply", "@name", ["lambda", ["n"], ["str-upper", "n"]]]],
		"@name"]`
	form := parse(t, program)

	treeResult, err := treeeval.Eval(form, newEnv(t), newBudget())
	require.NoError(t, err)
	require.True(t, value.Equal(value.List{value.String("WIDGET"), value.String("DOOHICKEY")}, treeResult))

	stackResult, err := stackeval.Eval(compiler.Compile(form), newEnv(t), newBudget())
	require.NoError(t, err)
	require.True(t, value.Equal(value.List{value.String("WIDGET"), value.String("DOOHICKEY")}, stackResult))
}
