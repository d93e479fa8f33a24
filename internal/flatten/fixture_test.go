package flatten_test

import (
	"context"
	"testing"

	"github.com/specialistvlad/moviegraph/internal/flatten"
	"github.com/specialistvlad/moviegraph/internal/graph"
	"github.com/specialistvlad/moviegraph/internal/setting"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

var (
	layerType = func() *setting.Type {
		t := setting.MustType("render_layer", nil,
			setting.Prop("layer_name", setting.KindValue, cty.String, "beauty"),
		)
		t.RenderLayer = true
		return t
	}()

	outputType = setting.MustType("output", nil,
		setting.Prop("resolution_x", setting.KindValue, cty.Number, 1920),
		setting.Prop("format", setting.KindValue, cty.String, "exr"),
		setting.Prop("tags", setting.KindMergeList, cty.String, nil),
		setting.Prop("channels", setting.KindMergeSet, cty.String, nil),
	)

	// exrOutputType specializes outputType.
	exrOutputType = setting.MustType("exr_output", outputType,
		setting.Prop("compression", setting.KindValue, cty.String, "zip"),
	)

	cvarType = func() *setting.Type {
		t := setting.MustType("cvars", nil)
		t.Dynamic = true
		return t
	}()
)

type fixture struct {
	t *testing.T
	g *graph.Graph
}

func newFixture(t *testing.T, name string, outputs ...string) *fixture {
	t.Helper()
	g := graph.New(name)
	for _, o := range outputs {
		g.AddOutput(o)
	}
	return &fixture{t: t, g: g}
}

// setting adds a setting node whose properties are overridden with props.
func (f *fixture) setting(label string, typ *setting.Type, props map[string]cty.Value) *graph.Node {
	f.t.Helper()
	n := graph.NewSettingNode(typ)
	n.SetLabel(label)
	for name, v := range props {
		require.NoError(f.t, n.Settings().Set(name, v))
	}
	require.NoError(f.t, f.g.AddNode(n))
	return n
}

func (f *fixture) add(n *graph.Node, label string) *graph.Node {
	f.t.Helper()
	n.SetLabel(label)
	require.NoError(f.t, f.g.AddNode(n))
	return n
}

func (f *fixture) connect(from *graph.Node, fromLabel string, to *graph.Node, toLabel string) {
	f.t.Helper()
	_, err := f.g.AddEdge(from, fromLabel, to, toLabel)
	require.NoError(f.t, err)
}

// chain connects nodes into branch, nodes[0] being closest to the output.
func (f *fixture) chain(branch string, nodes ...*graph.Node) {
	f.t.Helper()
	f.connect(nodes[0], graph.PinOut, f.g.OutputNode(), branch)
	for i := 1; i < len(nodes); i++ {
		f.connect(nodes[i], graph.PinOut, nodes[i-1], graph.PinIn)
	}
}

func (f *fixture) flatten(tc graph.TraversalContext) *flatten.EvaluatedConfig {
	f.t.Helper()
	cfg, err := flatten.Flatten(context.Background(), f.g, tc)
	require.NoError(f.t, err)
	require.NotNil(f.t, cfg)
	return cfg
}

func branchOf(t *testing.T, cfg *flatten.EvaluatedConfig, name string) *flatten.BranchConfig {
	t.Helper()
	b, ok := cfg.Branch(name)
	require.True(t, ok, "branch %q missing", name)
	return b
}

func value(t *testing.T, s *flatten.Setting, prop string) cty.Value {
	t.Helper()
	require.NotNil(t, s)
	v, ok := s.Value(prop)
	require.True(t, ok, "property %q missing", prop)
	return v
}

func stringList(t *testing.T, v cty.Value) []string {
	t.Helper()
	var out []string
	for it := v.ElementIterator(); it.Next(); {
		_, e := it.Element()
		out = append(out, e.AsString())
	}
	return out
}
