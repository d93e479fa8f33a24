package yamldoc

import (
	"context"
	"fmt"

	"github.com/specialistvlad/moviegraph/internal/config"
	hcldoc "github.com/specialistvlad/moviegraph/internal/hcl"
	"github.com/zclconf/go-cty/cty"
)

func translateSetting(ctx context.Context, s *settingEntry) (*config.SettingDefinition, error) {
	def := &config.SettingDefinition{
		Name:        s.Name,
		Description: s.Description,
		Parent:      s.Parent,
		RenderLayer: s.RenderLayer,
		Dynamic:     s.Dynamic,
	}
	for _, p := range s.Properties {
		if p.Type == "" {
			return nil, fmt.Errorf("in setting '%s', property '%s': type is required", s.Name, p.Name)
		}
		ty, err := hcldoc.ParseType(ctx, p.Type)
		if err != nil {
			return nil, fmt.Errorf("in setting '%s', property '%s': %w", s.Name, p.Name, err)
		}
		prop := &config.PropertyDefinition{
			Name:        p.Name,
			Description: p.Description,
			Kind:        p.Kind,
			Type:        ty,
		}
		if p.Default != nil {
			val, err := toCty(p.Default)
			if err != nil {
				return nil, fmt.Errorf("invalid default value for property '%s' in setting '%s': %w", p.Name, s.Name, err)
			}
			prop.Default = &val
		}
		def.Properties = append(def.Properties, prop)
	}
	return def, nil
}

func translateGraph(ctx context.Context, g *graphEntry) (*config.Graph, error) {
	out := &config.Graph{Name: g.Name}
	for _, m := range g.Inputs {
		member, err := translateMember(ctx, m)
		if err != nil {
			return nil, fmt.Errorf("in graph '%s', input '%s': %w", g.Name, m.Name, err)
		}
		out.Inputs = append(out.Inputs, member)
	}
	for _, m := range g.Outputs {
		member, err := translateMember(ctx, m)
		if err != nil {
			return nil, fmt.Errorf("in graph '%s', output '%s': %w", g.Name, m.Name, err)
		}
		out.Outputs = append(out.Outputs, member)
	}
	for _, v := range g.Variables {
		variable := &config.Variable{
			Name:     v.Name,
			Type:     cty.DynamicPseudoType,
			Category: v.Category,
			Global:   v.Global,
		}
		if v.Default != nil {
			val, err := toCty(v.Default)
			if err != nil {
				return nil, fmt.Errorf("in graph '%s', variable '%s': invalid default value: %w", g.Name, v.Name, err)
			}
			variable.Default = &val
			variable.Type = val.Type()
		}
		if v.Type != "" {
			ty, err := hcldoc.ParseType(ctx, v.Type)
			if err != nil {
				return nil, fmt.Errorf("in graph '%s', variable '%s': %w", g.Name, v.Name, err)
			}
			variable.Type = ty
		}
		out.Variables = append(out.Variables, variable)
	}
	for _, n := range g.Nodes {
		node, err := translateNode(ctx, n)
		if err != nil {
			return nil, fmt.Errorf("in graph '%s', node '%s': %w", g.Name, n.Name, err)
		}
		out.Nodes = append(out.Nodes, node)
	}
	for _, e := range g.Edges {
		out.Edges = append(out.Edges, &config.Edge{From: e.From, To: e.To})
	}
	return out, nil
}

func translateMember(ctx context.Context, m *memberEntry) (*config.Member, error) {
	member := &config.Member{Name: m.Name}
	if m.Type != "" {
		ty, err := hcldoc.ParseType(ctx, m.Type)
		if err != nil {
			return nil, err
		}
		member.Type = &ty
	}
	return member, nil
}

func translateNode(ctx context.Context, n *nodeEntry) (*config.Node, error) {
	out := &config.Node{
		Kind:     n.Kind,
		Name:     n.Name,
		Type:     n.Type,
		Graph:    n.Graph,
		Variable: n.Variable,
		Instance: n.Instance,
		Enabled:  n.Enabled,
		Expose:   n.Expose,
	}
	if n.ValueType != "" {
		ty, err := hcldoc.ParseType(ctx, n.ValueType)
		if err != nil {
			return nil, err
		}
		out.ValueType = &ty
	}
	if len(n.Properties) > 0 {
		out.Properties = make(map[string]cty.Value, len(n.Properties))
		for name, raw := range n.Properties {
			val, err := toCty(raw)
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", name, err)
			}
			out.Properties[name] = val
		}
	}
	return out, nil
}
