package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func memberNames(ms []*Member) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Name())
	}
	return out
}

func TestUniqueMemberNames(t *testing.T) {
	t.Run("unnamed variables", func(t *testing.T) {
		g := New("main")
		g.AddVariable("", cty.String)
		g.AddVariable("", cty.String)
		g.AddVariable("", cty.String)
		assert.Equal(t, []string{"Variable", "Variable 1", "Variable 2"}, memberNames(g.Variables()))
	})

	t.Run("per member kind", func(t *testing.T) {
		g := New("main")
		g.AddOutput("beauty")
		g.AddOutput("beauty")
		g.AddInput("beauty")
		assert.Equal(t, []string{GlobalsBranch, "beauty", "beauty 1"}, memberNames(g.Outputs()))
		assert.Equal(t, []string{GlobalsBranch, "beauty"}, memberNames(g.Inputs()))
	})

	t.Run("reuses freed suffix", func(t *testing.T) {
		g := New("main")
		g.AddVariable("x", cty.String)
		mid := g.AddVariable("x", cty.String)
		g.AddVariable("x", cty.String)
		require.NoError(t, g.RemoveMember(mid))
		assert.Equal(t, "x 1", g.AddVariable("x", cty.String).Name())
	})

	t.Run("globals keep their fixed name", func(t *testing.T) {
		g := New("main")
		m, err := g.AddGlobalVariable(GlobalShotName)
		require.NoError(t, err)
		assert.Equal(t, "$shot_name", m.Name())

		again, err := g.AddGlobalVariable(GlobalShotName)
		require.NoError(t, err)
		assert.Same(t, m, again)
	})
}

func TestMemberIdentity(t *testing.T) {
	g := New("main")
	a := g.AddVariable("a", cty.String)
	b := g.AddVariable("b", cty.String)
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Same(t, a, g.Member(a.ID()))
	assert.Same(t, b, g.MemberByName(MemberVariable, "b"))
}

func TestRenameMember(t *testing.T) {
	t.Run("keeps edges of mirrored pins", func(t *testing.T) {
		inner := New("inner")
		out := inner.AddOutput("beauty")

		g := New("main")
		sub := NewSubgraphNode(inner)
		require.NoError(t, g.AddNode(sub))
		g.AddOutput("final")
		connect(t, g, sub, "beauty", g.OutputNode(), "final")

		name, err := inner.RenameMember(out, "rgb")
		require.NoError(t, err)
		assert.Equal(t, "rgb", name)

		g.SyncSubgraphs()
		pin := sub.OutputPin("rgb")
		require.NotNil(t, pin)
		assert.True(t, pin.IsConnected())
		assert.Nil(t, sub.OutputPin("beauty"))
		assert.NotNil(t, inner.OutputNode().InputPin("rgb"))
	})

	t.Run("disambiguates", func(t *testing.T) {
		g := New("main")
		g.AddVariable("a", cty.String)
		b := g.AddVariable("b", cty.String)
		name, err := g.RenameMember(b, "a")
		require.NoError(t, err)
		assert.Equal(t, "a 1", name)
	})

	t.Run("built-ins are fixed", func(t *testing.T) {
		g := New("main")
		globals := g.MemberByName(MemberOutput, GlobalsBranch)
		_, err := g.RenameMember(globals, "x")
		assert.ErrorIs(t, err, ErrBuiltinMember)
		assert.ErrorIs(t, g.RemoveMember(globals), ErrBuiltinMember)

		shot, err := g.AddGlobalVariable(GlobalShotIndex)
		require.NoError(t, err)
		_, err = g.RenameMember(shot, "x")
		assert.ErrorIs(t, err, ErrBuiltinMember)
		assert.ErrorIs(t, shot.SetDefault(cty.NumberIntVal(1)), ErrBuiltinMember)
	})
}

func TestRemoveMember(t *testing.T) {
	g := New("main")
	v := g.AddVariable("v", cty.Number)
	a := addSetting(t, g, "a")
	require.NoError(t, a.ExposeProperty("focal_length"))
	vn := NewVariableNode(v)
	require.NoError(t, g.AddNode(vn))
	connect(t, g, vn, PinValue, a, "focal_length")

	out := g.AddOutput("beauty")
	connect(t, g, a, PinOut, g.OutputNode(), "beauty")

	require.NoError(t, g.RemoveMember(v))
	require.NoError(t, g.RemoveMember(out))

	assert.Nil(t, vn.Graph())
	assert.False(t, a.InputPin("focal_length").IsConnected())
	assert.False(t, a.OutputPin(PinOut).IsConnected())
	assert.Nil(t, g.OutputNode().InputPin("beauty"))
	assert.ErrorIs(t, g.RemoveMember(v), ErrMemberNotFound)
}

func TestSetVariableCategory(t *testing.T) {
	setup := func(t *testing.T) (*Graph, map[string]*Member) {
		g := New("main")
		vars := map[string]*Member{}
		for _, vc := range []struct{ name, category string }{
			{"a", "Foo"},
			{"b", "Foo|Bar"},
			{"c", "Other"},
			{"d", ""},
		} {
			m := g.AddVariable(vc.name, cty.String)
			require.NoError(t, g.SetVariableCategory(m, vc.category))
			vars[vc.name] = m
		}
		return g, vars
	}

	tests := []struct {
		name     string
		category string
		want     []string
	}{
		{"exact match", "Foo|Bar", []string{"a", "b", "x", "c", "d"}},
		{"deepest prefix", "Foo|Bar|Baz", []string{"a", "b", "x", "c", "d"}},
		{"shallower prefix", "Foo|Qux", []string{"a", "b", "x", "c", "d"}},
		{"top level", "Other|Deep", []string{"a", "b", "c", "x", "d"}},
		{"no match goes after last categorized", "New", []string{"a", "b", "c", "x", "d"}},
		{"cleared goes last", "", []string{"a", "b", "c", "d", "x"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, _ := setup(t)
			x := g.AddVariable("x", cty.String)
			require.NoError(t, g.SetVariableCategory(x, tc.category))
			assert.Equal(t, tc.want, memberNames(g.Variables()))
			assert.Equal(t, tc.category, x.Category())
		})
	}

	t.Run("first categorized variable goes first", func(t *testing.T) {
		g := New("main")
		g.AddVariable("a", cty.String)
		g.AddVariable("b", cty.String)
		x := g.AddVariable("x", cty.String)
		require.NoError(t, g.SetVariableCategory(x, "Foo"))
		assert.Equal(t, []string{"x", "a", "b"}, memberNames(g.Variables()))
	})
}
