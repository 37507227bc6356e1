package value_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsl-lang/jsl/internal/value"
)

func TestEnv_GetWalksParentChain(t *testing.T) {
	root := value.NewEnv()
	root.SetLocal("x", value.Number(1))
	child := root.ExtendOne("y", value.Number(2))
	grandchild := child.ExtendOne("z", value.Number(3))

	v, ok := grandchild.Get("x")
	require.True(t, ok)
	require.Equal(t, value.Number(1), v)

	v, ok = grandchild.Get("y")
	require.True(t, ok)
	require.Equal(t, value.Number(2), v)

	_, ok = grandchild.Get("nonexistent")
	require.False(t, ok)
}

func TestEnv_ChildShadowsParent(t *testing.T) {
	root := value.NewEnv()
	root.SetLocal("x", value.Number(1))
	child := root.ExtendOne("x", value.Number(2))

	v, _ := child.Get("x")
	require.Equal(t, value.Number(2), v)
	v, _ = root.Get("x")
	require.Equal(t, value.Number(1), v, "extending a child must not mutate the parent frame")
}

func TestEnv_OwnKeysExcludesParent(t *testing.T) {
	root := value.NewEnv()
	root.SetLocal("a", value.Number(1))
	child := root.ExtendOne("b", value.Number(2))

	require.Equal(t, []string{"b"}, child.OwnKeys())
	require.Equal(t, []string{"a"}, root.OwnKeys())
}

func TestEnv_SetLocalInsertsOnceThenOverwrites(t *testing.T) {
	e := value.NewEnv()
	e.SetLocal("x", value.Number(1))
	e.SetLocal("x", value.Number(2))
	require.Equal(t, []string{"x"}, e.OwnKeys(), "repeated SetLocal on the same key must not duplicate it in OwnKeys")
	v, _ := e.Get("x")
	require.Equal(t, value.Number(2), v)
}

func TestEnv_ExtendPairs(t *testing.T) {
	root := value.NewEnv()
	child := root.ExtendPairs([]string{"a", "b"}, []value.Value{value.Number(1), value.Number(2)})
	va, _ := child.Get("a")
	vb, _ := child.Get("b")
	require.Equal(t, value.Number(1), va)
	require.Equal(t, value.Number(2), vb)
}

func TestEnv_Topmost(t *testing.T) {
	root := value.NewEnv()
	child := root.ExtendOne("a", value.Number(1))
	grandchild := child.ExtendOne("b", value.Number(2))
	require.Same(t, root, grandchild.Topmost())
}

func TestEnv_IsPrelude(t *testing.T) {
	prelude := value.NewPrelude()
	require.True(t, prelude.IsPrelude())

	plain := value.NewEnv()
	require.False(t, plain.IsPrelude())

	child := prelude.ExtendOne("x", value.Number(1))
	require.False(t, child.IsPrelude(), "only the flagged root frame reports true")
}

func TestEnv_ReattachPrelude(t *testing.T) {
	oldPrelude := value.NewPrelude()
	oldPrelude.SetLocal("builtin", value.Number(1))
	chain := oldPrelude.ExtendOne("a", value.Number(2)).ExtendOne("b", value.Number(3))

	newPrelude := value.NewPrelude()
	newPrelude.SetLocal("builtin", value.Number(99))
	newPrelude.SetLocal("onlyInNew", value.Number(7))

	chain.ReattachPrelude(newPrelude)
	require.Same(t, newPrelude, chain.Topmost(), "the chain's root ancestor is now the new prelude")

	// A name the captured (old) prelude frame already bound still resolves
	// there first — reattachment only relinks the parent pointer, it does
	// not erase the old root frame's own bindings.
	v, ok := chain.Get("builtin")
	require.True(t, ok)
	require.Equal(t, value.Number(1), v)

	// A name only the new prelude defines is now reachable through the
	// relinked parent pointer.
	v, ok = chain.Get("onlyInNew")
	require.True(t, ok)
	require.Equal(t, value.Number(7), v)
}

func TestEnv_ReattachPrelude_NoOpWhenAlreadyAttached(t *testing.T) {
	prelude := value.NewPrelude()
	chain := prelude.ExtendOne("a", value.Number(1))
	chain.ReattachPrelude(prelude)
	require.Same(t, prelude, chain.Topmost())
}

func TestEnv_IDIsContentDerivedNotPointerDerived(t *testing.T) {
	root := value.NewEnv()
	e1 := root.ExtendOne("x", value.Number(1))
	e2 := root.ExtendOne("x", value.Number(1))
	require.Equal(t, e1.ID(), e2.ID(), "two distinct frames with identical content must hash identically")

	e3 := root.ExtendOne("x", value.Number(2))
	require.NotEqual(t, e1.ID(), e3.ID())
}

func TestEnv_StructurallyEqual(t *testing.T) {
	root := value.NewEnv()
	e1 := root.ExtendOne("x", value.Number(1))
	e2 := root.ExtendOne("x", value.Number(1))
	require.True(t, e1.StructurallyEqual(e2))

	e3 := root.ExtendOne("y", value.Number(1))
	require.False(t, e1.StructurallyEqual(e3))
}
