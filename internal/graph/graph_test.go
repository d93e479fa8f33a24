package graph

import (
	"testing"

	"github.com/specialistvlad/moviegraph/internal/setting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

var testType = setting.MustType("camera", nil,
	setting.Prop("focal_length", setting.KindValue, cty.Number, 35),
	setting.Prop("name", setting.KindValue, cty.String, nil),
)

func addSetting(t *testing.T, g *Graph, label string) *Node {
	t.Helper()
	n := NewSettingNode(testType)
	n.SetLabel(label)
	require.NoError(t, g.AddNode(n))
	return n
}

func connect(t *testing.T, g *Graph, from *Node, fromLabel string, to *Node, toLabel string) {
	t.Helper()
	_, err := g.AddEdge(from, fromLabel, to, toLabel)
	require.NoError(t, err)
}

func TestNew(t *testing.T) {
	g := New("main")

	require.NotNil(t, g.InputNode())
	require.NotNil(t, g.OutputNode())
	assert.Equal(t, []string{GlobalsBranch}, g.Branches())
	assert.NotNil(t, g.InputNode().OutputPin(GlobalsBranch))
	assert.NotNil(t, g.OutputNode().InputPin(GlobalsBranch))
	assert.Equal(t, uint64(0), g.Revision())
}

func TestAddNode(t *testing.T) {
	t.Run("rejects synthetic kinds", func(t *testing.T) {
		g := New("main")
		other := New("other")
		err := g.AddNode(other.InputNode())
		assert.ErrorIs(t, err, ErrNotUserAddable)
	})

	t.Run("rejects nodes owned by another graph", func(t *testing.T) {
		g := New("main")
		other := New("other")
		n := NewSettingNode(testType)
		require.NoError(t, other.AddNode(n))
		assert.ErrorIs(t, g.AddNode(n), ErrForeignNode)
	})

	t.Run("rejects accessors of foreign variables", func(t *testing.T) {
		g := New("main")
		other := New("other")
		v := other.AddVariable("", cty.String)
		assert.ErrorIs(t, g.AddNode(NewVariableNode(v)), ErrMemberNotFound)
	})

	t.Run("bumps revision", func(t *testing.T) {
		g := New("main")
		addSetting(t, g, "a")
		assert.Equal(t, uint64(1), g.Revision())
	})
}

func TestRemoveNode(t *testing.T) {
	g := New("main")
	a := addSetting(t, g, "a")
	b := addSetting(t, g, "b")
	connect(t, g, b, PinOut, a, PinIn)
	connect(t, g, a, PinOut, g.OutputNode(), GlobalsBranch)

	require.NoError(t, g.RemoveNode(a))

	assert.Nil(t, a.Graph())
	assert.False(t, b.OutputPin(PinOut).IsConnected())
	assert.False(t, g.OutputNode().InputPin(GlobalsBranch).IsConnected())
	assert.Nil(t, g.NodeByLabel("a"))
	assert.ErrorIs(t, g.RemoveNode(a), ErrNodeNotFound)
	assert.ErrorIs(t, g.RemoveNode(g.OutputNode()), ErrNotUserAddable)
}

func TestAddEdge(t *testing.T) {
	t.Run("single connection input is displaced", func(t *testing.T) {
		g := New("main")
		a := addSetting(t, g, "a")
		b := addSetting(t, g, "b")
		c := addSetting(t, g, "c")

		displaced, err := g.AddEdge(a, PinOut, c, PinIn)
		require.NoError(t, err)
		assert.False(t, displaced)

		displaced, err = g.AddEdge(b, PinOut, c, PinIn)
		require.NoError(t, err)
		assert.True(t, displaced)

		in := c.InputPin(PinIn)
		require.Len(t, in.Edges(), 1)
		assert.Same(t, b.OutputPin(PinOut), in.Edges()[0].From())
		assert.False(t, a.OutputPin(PinOut).IsConnected())
	})

	t.Run("outputs fan out", func(t *testing.T) {
		g := New("main")
		a := addSetting(t, g, "a")
		b := addSetting(t, g, "b")
		c := addSetting(t, g, "c")
		connect(t, g, a, PinOut, b, PinIn)
		connect(t, g, a, PinOut, c, PinIn)
		assert.Len(t, a.OutputPin(PinOut).Edges(), 2)
	})

	t.Run("join accepts several inputs", func(t *testing.T) {
		g := New("main")
		a := addSetting(t, g, "a")
		b := addSetting(t, g, "b")
		j := NewJoinNode()
		require.NoError(t, g.AddNode(j))
		connect(t, g, a, PinOut, j, PinIn)
		displaced, err := g.AddEdge(b, PinOut, j, PinIn)
		require.NoError(t, err)
		assert.False(t, displaced)
		assert.Len(t, j.InputPin(PinIn).Edges(), 2)
	})

	t.Run("duplicate edge is a no-op", func(t *testing.T) {
		g := New("main")
		a := addSetting(t, g, "a")
		b := addSetting(t, g, "b")
		connect(t, g, a, PinOut, b, PinIn)
		rev := g.Revision()
		connect(t, g, a, PinOut, b, PinIn)
		assert.Equal(t, rev, g.Revision())
		assert.Len(t, b.InputPin(PinIn).Edges(), 1)
	})

	t.Run("failures do not mutate", func(t *testing.T) {
		g := New("main")
		a := addSetting(t, g, "a")
		b := addSetting(t, g, "b")
		v := g.AddVariable("v", cty.String)
		vn := NewVariableNode(v)
		require.NoError(t, g.AddNode(vn))
		foreign := NewSettingNode(testType)
		rev := g.Revision()

		_, err := g.AddEdge(a, "Nope", b, PinIn)
		assert.ErrorIs(t, err, ErrPinNotFound)
		_, err = g.AddEdge(a, PinOut, b, "Nope")
		assert.ErrorIs(t, err, ErrPinNotFound)
		_, err = g.AddEdge(foreign, PinOut, b, PinIn)
		assert.ErrorIs(t, err, ErrNodeNotFound)
		_, err = g.AddEdge(vn, PinValue, b, PinIn)
		assert.ErrorIs(t, err, ErrIncompatiblePins)
		_, err = g.AddEdge(a, PinOut, a, PinIn)
		assert.ErrorIs(t, err, ErrIncompatiblePins)

		assert.Equal(t, rev, g.Revision())
		assert.False(t, b.InputPin(PinIn).IsConnected())
	})

	t.Run("value pins check type conversion", func(t *testing.T) {
		g := New("main")
		a := addSetting(t, g, "a")
		require.NoError(t, a.ExposeProperty("name"))
		list := NewVariableNode(g.AddVariable("list", cty.List(cty.String)))
		num := NewVariableNode(g.AddVariable("num", cty.Number))
		require.NoError(t, g.AddNode(list))
		require.NoError(t, g.AddNode(num))

		_, err := g.AddEdge(list, PinValue, a, "name")
		assert.ErrorIs(t, err, ErrIncompatiblePins)
		_, err = g.AddEdge(num, PinValue, a, "name")
		assert.NoError(t, err)
	})
}

func TestRemoveEdges(t *testing.T) {
	g := New("main")
	a := addSetting(t, g, "a")
	b := addSetting(t, g, "b")
	c := addSetting(t, g, "c")
	connect(t, g, a, PinOut, b, PinIn)
	connect(t, g, a, PinOut, c, PinIn)

	assert.True(t, g.RemoveEdge(a, PinOut, b, PinIn))
	assert.False(t, g.RemoveEdge(a, PinOut, b, PinIn))
	assert.False(t, g.RemoveInboundEdges(b, PinIn))
	assert.True(t, g.RemoveAllOutboundEdges(a))
	assert.False(t, c.InputPin(PinIn).IsConnected())
	assert.False(t, g.RemoveAllInboundEdges(c))

	t.Run("per pin", func(t *testing.T) {
		connect(t, g, a, PinOut, b, PinIn)
		connect(t, g, a, PinOut, c, PinIn)
		rev := g.Revision()

		assert.True(t, g.RemoveInboundEdges(b, PinIn))
		assert.False(t, b.InputPin(PinIn).IsConnected())
		assert.True(t, c.InputPin(PinIn).IsConnected(), "other edges of the source pin stay")
		assert.Greater(t, g.Revision(), rev)

		assert.False(t, g.RemoveOutboundEdges(a, "Missing"))
		assert.True(t, g.RemoveOutboundEdges(a, PinOut))
		assert.False(t, a.OutputPin(PinOut).IsConnected())
		assert.False(t, c.InputPin(PinIn).IsConnected())
		assert.False(t, g.RemoveOutboundEdges(a, PinOut))

		other := New("other")
		foreign := addSetting(t, other, "x")
		assert.False(t, g.RemoveInboundEdges(foreign, PinIn))
	})
}

func TestExposeProperty(t *testing.T) {
	g := New("main")
	a := addSetting(t, g, "a")

	require.NoError(t, a.ExposeProperty("focal_length"))
	assert.True(t, a.IsExposed("focal_length"))
	assert.Error(t, a.ExposeProperty("missing"))

	v := NewVariableNode(g.AddVariable("fl", cty.Number))
	require.NoError(t, g.AddNode(v))
	connect(t, g, v, PinValue, a, "focal_length")

	assert.True(t, a.UnexposeProperty("focal_length"))
	assert.False(t, a.IsExposed("focal_length"))
	assert.False(t, v.OutputPin(PinValue).IsConnected())
	assert.False(t, a.UnexposeProperty(PinIn))
}
