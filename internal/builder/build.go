package builder

import (
	"context"
	"fmt"

	"github.com/specialistvlad/moviegraph/internal/config"
	"github.com/specialistvlad/moviegraph/internal/ctxlog"
	"github.com/specialistvlad/moviegraph/internal/graph"
	"github.com/specialistvlad/moviegraph/internal/pinref"
	"github.com/specialistvlad/moviegraph/internal/registry"
	"github.com/zclconf/go-cty/cty/convert"
)

// Build constructs every graph of doc. Setting types declared in doc are
// added to reg, which must already hold the compiled-in types.
func Build(ctx context.Context, doc *config.Document, reg *registry.Registry) (*Project, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.", "graphs", len(doc.Graphs), "settings", len(doc.Settings))

	if err := registerSettings(ctx, doc.Settings, reg); err != nil {
		return nil, err
	}
	logger.Debug("Build: Setting types registered.", "types", len(reg.Names()))

	p := &Project{registry: reg, graphs: make(map[string]*graph.Graph)}

	// First pass: graph shells with their members.
	for _, gc := range doc.Graphs {
		if gc.Name == "" {
			return nil, fmt.Errorf("%s: graph must have a name", gc.Source)
		}
		if _, exists := p.graphs[gc.Name]; exists {
			return nil, fmt.Errorf("%s: graph %q is defined twice", gc.Source, gc.Name)
		}
		g, err := createShell(gc)
		if err != nil {
			return nil, fmt.Errorf("graph %q: %w", gc.Name, err)
		}
		p.graphs[gc.Name] = g
		p.order = append(p.order, gc.Name)
	}
	logger.Debug("Build: Graph shells created.", "count", len(p.order))

	// Second pass: nodes, then edges.
	for _, gc := range doc.Graphs {
		gctx := ctxlog.With(ctx, "graph", gc.Name)
		b := &graphBuilder{project: p, graph: p.graphs[gc.Name], nodes: make(map[string]*graph.Node)}
		if err := b.addNodes(gctx, gc.Nodes); err != nil {
			return nil, fmt.Errorf("graph %q: %w", gc.Name, err)
		}
		if err := b.addEdges(gc.Edges); err != nil {
			return nil, fmt.Errorf("graph %q: %w", gc.Name, err)
		}
		ctxlog.FromContext(gctx).Debug("Build: Graph populated.", "nodes", len(gc.Nodes), "edges", len(gc.Edges))
	}

	for _, name := range p.order {
		p.graphs[name].SyncSubgraphs()
	}

	logger.Debug("Build: Graph construction successful.", "graphs", len(p.order))
	return p, nil
}

// createShell creates a graph with its declared members and no nodes.
func createShell(gc *config.Graph) (*graph.Graph, error) {
	g := graph.New(gc.Name)

	for _, in := range gc.Inputs {
		var m *graph.Member
		if in.Type == nil {
			m = g.AddInput(in.Name)
		} else {
			m = g.AddValueInput(in.Name, *in.Type)
		}
		if m.Name() != in.Name {
			return nil, fmt.Errorf("input %q is declared twice", in.Name)
		}
	}
	for _, out := range gc.Outputs {
		var m *graph.Member
		if out.Type == nil {
			m = g.AddOutput(out.Name)
		} else {
			m = g.AddValueOutput(out.Name, *out.Type)
		}
		if m.Name() != out.Name {
			return nil, fmt.Errorf("output %q is declared twice", out.Name)
		}
	}

	for _, v := range gc.Variables {
		if v.Global != "" {
			kind, err := graph.ParseGlobalKind(v.Global)
			if err != nil {
				return nil, fmt.Errorf("variable %q: %w", v.Name, err)
			}
			if _, err := g.AddGlobalVariable(kind); err != nil {
				return nil, fmt.Errorf("variable %q: %w", v.Name, err)
			}
			continue
		}
		m := g.AddVariable(v.Name, v.Type)
		if m.Name() != v.Name {
			return nil, fmt.Errorf("variable %q is declared twice", v.Name)
		}
		if v.Default != nil {
			def, err := convert.Convert(*v.Default, v.Type)
			if err != nil {
				return nil, fmt.Errorf("variable %q: default: %w", v.Name, err)
			}
			if err := m.SetDefault(def); err != nil {
				return nil, fmt.Errorf("variable %q: %w", v.Name, err)
			}
		}
		if v.Category != "" {
			if err := g.SetVariableCategory(m, v.Category); err != nil {
				return nil, fmt.Errorf("variable %q: %w", v.Name, err)
			}
		}
	}
	return g, nil
}

// graphBuilder populates one graph shell.
type graphBuilder struct {
	project *Project
	graph   *graph.Graph
	nodes   map[string]*graph.Node
}

func (b *graphBuilder) names() []string {
	names := make([]string, 0, len(b.nodes))
	for name := range b.nodes {
		names = append(names, name)
	}
	return names
}

// node resolves the node part of a pin reference.
func (b *graphBuilder) node(ref *pinref.Ref) (*graph.Node, error) {
	switch ref.Node {
	case pinref.InputNode:
		return b.graph.InputNode(), nil
	case pinref.OutputNode:
		return b.graph.OutputNode(), nil
	}
	if n, ok := b.nodes[ref.Node]; ok {
		return n, nil
	}
	if suggestion := registry.NameSuggestion(ref.Node, b.names()); suggestion != "" {
		return nil, fmt.Errorf("unknown node %q, did you mean %q?", ref.Node, suggestion)
	}
	return nil, fmt.Errorf("unknown node %q", ref.Node)
}
