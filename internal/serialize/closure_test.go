package serialize_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsl-lang/jsl/internal/prelude"
	"github.com/jsl-lang/jsl/internal/serialize"
	"github.com/jsl-lang/jsl/internal/value"
)

func TestEncodeDecodeClosure_NoCapture(t *testing.T) {
	preludeEnv, _ := prelude.New()
	body, err := serialize.JSONToValue(`["*", "x", "x"]`)
	require.NoError(t, err)
	c := &value.Closure{Params: []string{"x"}, Body: body, Env: preludeEnv}

	text, err := serialize.EncodeClosure(c)
	require.NoError(t, err)

	decoded, err := serialize.DecodeClosure(text, preludeEnv)
	require.NoError(t, err)
	require.Equal(t, []string{"x"}, decoded.Params)
	require.True(t, value.Equal(body, decoded.Body))
}

func TestEncodeDecodeClosure_CapturesOuterBinding(t *testing.T) {
	preludeEnv, _ := prelude.New()
	captured := preludeEnv.Extend(map[string]value.Value{"n": value.Number(41)}, []string{"n"})
	body, err := serialize.JSONToValue(`["+", "n", 1]`)
	require.NoError(t, err)
	c := &value.Closure{Params: []string{}, Body: body, Env: captured}

	text, err := serialize.EncodeClosure(c)
	require.NoError(t, err)

	decoded, err := serialize.DecodeClosure(text, preludeEnv)
	require.NoError(t, err)
	v, ok := decoded.Env.Get("n")
	require.True(t, ok)
	require.Equal(t, value.Number(41), v)
}

func TestEncodeDecodeClosure_PrunesNonFreeBindingFromCapturedFrame(t *testing.T) {
	preludeEnv, _ := prelude.New()
	captured := preludeEnv.Extend(map[string]value.Value{
		"n":      value.Number(41),
		"unused": value.Number(999),
	}, []string{"n", "unused"})
	body, err := serialize.JSONToValue(`["+", "n", 1]`)
	require.NoError(t, err)
	c := &value.Closure{Params: []string{}, Body: body, Env: captured}

	text, err := serialize.EncodeClosure(c)
	require.NoError(t, err)
	require.NotContains(t, text, "unused", "a binding not in the closure's free variables must not be serialized")
	require.NotContains(t, text, "999")

	decoded, err := serialize.DecodeClosure(text, preludeEnv)
	require.NoError(t, err)
	require.Equal(t, []string{"n"}, decoded.Env.OwnKeys())
	v, ok := decoded.Env.Get("n")
	require.True(t, ok)
	require.Equal(t, value.Number(41), v)
}

func TestEncodeDecodeClosure_SiblingsEachResolveSharedParent(t *testing.T) {
	preludeEnv, _ := prelude.New()
	shared := preludeEnv.Extend(map[string]value.Value{"shared": value.Number(7)}, []string{"shared"})
	childA := shared.ExtendOne("a", value.Number(1))
	childB := shared.ExtendOne("b", value.Number(2))

	bodyA, err := serialize.JSONToValue(`["+", "a", "shared"]`)
	require.NoError(t, err)
	bodyB, err := serialize.JSONToValue(`["+", "b", "shared"]`)
	require.NoError(t, err)

	cA := &value.Closure{Params: nil, Body: bodyA, Env: childA}
	cB := &value.Closure{Params: nil, Body: bodyB, Env: childB}

	textA, err := serialize.EncodeClosure(cA)
	require.NoError(t, err)
	textB, err := serialize.EncodeClosure(cB)
	require.NoError(t, err)

	decodedA, err := serialize.DecodeClosure(textA, preludeEnv)
	require.NoError(t, err)
	decodedB, err := serialize.DecodeClosure(textB, preludeEnv)
	require.NoError(t, err)

	va, ok := decodedA.Env.Get("shared")
	require.True(t, ok)
	require.Equal(t, value.Number(7), va)
	vb, ok := decodedB.Env.Get("shared")
	require.True(t, ok)
	require.Equal(t, value.Number(7), vb)
}

func TestDecodeClosure_ReattachesCurrentPrelude(t *testing.T) {
	originalPrelude, _ := prelude.New()
	body, err := serialize.JSONToValue(`1`)
	require.NoError(t, err)
	c := &value.Closure{Params: []string{}, Body: body, Env: originalPrelude.ExtendOne("x", value.Number(5))}

	text, err := serialize.EncodeClosure(c)
	require.NoError(t, err)

	freshPrelude, _ := prelude.New()
	decoded, err := serialize.DecodeClosure(text, freshPrelude)
	require.NoError(t, err)
	require.Same(t, freshPrelude, decoded.Env.Topmost())
}

func TestDecodeClosure_RejectsNonObject(t *testing.T) {
	preludeEnv, _ := prelude.New()
	_, err := serialize.DecodeClosure(`[1,2,3]`, preludeEnv)
	require.Error(t, err)
}

func TestDecodeClosure_RejectsMissingTag(t *testing.T) {
	preludeEnv, _ := prelude.New()
	_, err := serialize.DecodeClosure(`{"params": [], "body": 1}`, preludeEnv)
	require.Error(t, err)
}
