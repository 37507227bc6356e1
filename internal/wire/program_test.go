package wire_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsl-lang/jsl/internal/budget"
	"github.com/jsl-lang/jsl/internal/langerr"
	"github.com/jsl-lang/jsl/internal/prelude"
	"github.com/jsl-lang/jsl/internal/treeeval"
	"github.com/jsl-lang/jsl/internal/value"
	"github.com/jsl-lang/jsl/internal/wire"
)

func TestParseDocument_BareArray(t *testing.T) {
	doc, err := wire.ParseDocument(`[["def", "x", 1], ["def", "y", 2]]`)
	require.NoError(t, err)
	require.Len(t, doc.Forms, 2)
	require.False(t, doc.HasEntrypoint)
	require.Empty(t, doc.PreludeHash)
}

func TestParseDocument_ObjectWithEntrypoint(t *testing.T) {
	doc, err := wire.ParseDocument(`{
		"forms": [["def", "square", ["lambda", ["x"], ["*", "x", "x"]]]],
		"entrypoint": ["square", 7]
	}`)
	require.NoError(t, err)
	require.Len(t, doc.Forms, 1)
	require.True(t, doc.HasEntrypoint)

	env, _ := prelude.New()
	b := budget.New(budget.DefaultLimits(), budget.DefaultHostGasPolicy())
	result, err := wire.Run(doc, env, b, treeeval.Eval)
	require.NoError(t, err)
	require.Equal(t, value.Number(49), result)
}

func TestParseDocument_MissingForms(t *testing.T) {
	_, err := wire.ParseDocument(`{"entrypoint": 1}`)
	require.Error(t, err)
}

func TestRun_NoEntrypointReturnsLastForm(t *testing.T) {
	doc, err := wire.ParseDocument(`[1, 2, 3]`)
	require.NoError(t, err)
	env, _ := prelude.New()
	b := budget.New(budget.DefaultLimits(), budget.DefaultHostGasPolicy())
	result, err := wire.Run(doc, env, b, treeeval.Eval)
	require.NoError(t, err)
	require.Equal(t, value.Number(3), result)
}

func TestRun_EmptyDocumentReturnsNull(t *testing.T) {
	doc, err := wire.ParseDocument(`[]`)
	require.NoError(t, err)
	env, _ := prelude.New()
	b := budget.New(budget.DefaultLimits(), budget.DefaultHostGasPolicy())
	result, err := wire.Run(doc, env, b, treeeval.Eval)
	require.NoError(t, err)
	require.Equal(t, value.NullValue, result)
}

func TestVerifyPreludeHash(t *testing.T) {
	_, localID := prelude.New()

	doc, err := wire.ParseDocument(`{"forms": [], "prelude_hash": "` + localID + `"}`)
	require.NoError(t, err)
	require.NoError(t, doc.VerifyPreludeHash(localID))

	mismatched, err := wire.ParseDocument(`{"forms": [], "prelude_hash": "not-the-real-hash"}`)
	require.NoError(t, err)
	err = mismatched.VerifyPreludeHash(localID)
	require.Error(t, err)
	le, ok := langerr.As(err)
	require.True(t, ok)
	require.Equal(t, langerr.PreludeMismatch, le.Kind)
	require.False(t, le.Catchable())
}

func TestVerifyPreludeHash_AbsentAlwaysPasses(t *testing.T) {
	doc, err := wire.ParseDocument(`[1]`)
	require.NoError(t, err)
	require.NoError(t, doc.VerifyPreludeHash("anything"))
}
