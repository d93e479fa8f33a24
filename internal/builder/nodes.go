package builder

import (
	"context"
	"fmt"

	"github.com/specialistvlad/moviegraph/internal/config"
	"github.com/specialistvlad/moviegraph/internal/ctxlog"
	"github.com/specialistvlad/moviegraph/internal/graph"
	"github.com/specialistvlad/moviegraph/internal/pinref"
	"github.com/specialistvlad/moviegraph/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// addNodes creates a graph node for every node block.
func (b *graphBuilder) addNodes(ctx context.Context, defs []*config.Node) error {
	logger := ctxlog.FromContext(ctx)
	for _, def := range defs {
		if def.Name == pinref.InputNode || def.Name == pinref.OutputNode {
			return fmt.Errorf("node name %q is reserved", def.Name)
		}
		if ref, err := pinref.Parse(def.Name); err != nil || ref.Pin != "" {
			return fmt.Errorf("invalid node name %q", def.Name)
		}
		if _, exists := b.nodes[def.Name]; exists {
			return fmt.Errorf("node %q is defined twice", def.Name)
		}

		n, err := b.newNode(def)
		if err != nil {
			return fmt.Errorf("node %q: %w", def.Name, err)
		}
		n.SetLabel(def.Name)
		if def.Enabled != nil {
			n.SetEnabled(*def.Enabled)
		}
		if err := b.graph.AddNode(n); err != nil {
			return fmt.Errorf("node %q: %w", def.Name, err)
		}
		b.nodes[def.Name] = n
		logger.Debug("Created graph node.", "node", n.String())
	}
	return nil
}

func (b *graphBuilder) newNode(def *config.Node) (*graph.Node, error) {
	kind, err := graph.ParseKind(def.Kind)
	if err != nil {
		return nil, err
	}

	switch kind {
	case graph.KindSetting:
		return b.newSettingNode(def)
	case graph.KindSubgraph:
		if def.Graph == "" {
			return nil, fmt.Errorf("subgraph node needs a graph reference")
		}
		sub, err := b.project.Graph(def.Graph)
		if err != nil {
			return nil, err
		}
		return graph.NewSubgraphNode(sub), nil
	case graph.KindVariable:
		m := b.graph.MemberByName(graph.MemberVariable, def.Variable)
		if m == nil {
			var names []string
			for _, v := range b.graph.Variables() {
				names = append(names, v.Name())
			}
			if suggestion := registry.NameSuggestion(def.Variable, names); suggestion != "" {
				return nil, fmt.Errorf("unknown variable %q, did you mean %q?", def.Variable, suggestion)
			}
			return nil, fmt.Errorf("unknown variable %q", def.Variable)
		}
		return graph.NewVariableNode(m), nil
	case graph.KindRemoval:
		if def.Type == "" {
			return nil, fmt.Errorf("removal node needs a setting type")
		}
		if _, err := b.project.registry.Lookup(def.Type); err != nil {
			return nil, err
		}
		return graph.NewRemovalNode(def.Type), nil
	case graph.KindReroute:
		if def.ValueType != nil {
			return graph.NewRerouteNode(false, *def.ValueType), nil
		}
		return graph.NewRerouteNode(true, cty.DynamicPseudoType), nil
	case graph.KindJoin:
		return graph.NewJoinNode(), nil
	case graph.KindBranch:
		return graph.NewBranchNode(), nil
	}
	return nil, fmt.Errorf("node kind %q cannot be built", def.Kind)
}

// newSettingNode types the node against the registry and applies its
// property overrides. Undeclared properties are dynamic properties when the
// type accepts them.
func (b *graphBuilder) newSettingNode(def *config.Node) (*graph.Node, error) {
	t, err := b.project.registry.Lookup(def.Type)
	if err != nil {
		return nil, err
	}
	n := graph.NewSettingNode(t)
	n.SetInstanceName(def.Instance)

	values := n.Settings()
	for _, name := range sortedKeys(def.Properties) {
		val := def.Properties[name]
		if _, declared := t.Property(name); declared {
			if err := values.Set(name, val); err != nil {
				return nil, err
			}
			continue
		}
		if t.IsDynamic() {
			if err := values.SetDynamic(name, val); err != nil {
				return nil, err
			}
			continue
		}
		return nil, unknownProperty(t.Name, name, t.PropertyNames())
	}

	for _, name := range def.Expose {
		if _, declared := t.Property(name); !declared {
			return nil, unknownProperty(t.Name, name, t.PropertyNames())
		}
		if err := n.ExposeProperty(name); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func unknownProperty(typeName, name string, candidates []string) error {
	if suggestion := registry.NameSuggestion(name, candidates); suggestion != "" {
		return fmt.Errorf("setting type %q has no property %q, did you mean %q?", typeName, name, suggestion)
	}
	return fmt.Errorf("setting type %q has no property %q", typeName, name)
}
