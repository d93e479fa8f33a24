// This file contains the logic for translating HCL schema structs into the
// format-agnostic document model defined in the config package.

package hcl

import (
	"context"
	"fmt"

	"github.com/specialistvlad/moviegraph/internal/config"
	"github.com/specialistvlad/moviegraph/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// translateSetting converts a `setting` block into a setting definition.
func (l *Loader) translateSetting(ctx context.Context, s *settingBlock) (*config.SettingDefinition, error) {
	def := &config.SettingDefinition{
		Name:        s.Name,
		Description: s.Description,
		Parent:      s.Parent,
		RenderLayer: s.RenderLayer,
		Dynamic:     s.Dynamic,
	}
	for _, p := range s.Properties {
		parsedType, err := parseTypeExpr(ctx, p.Type)
		if err != nil {
			return nil, fmt.Errorf("in setting '%s', property '%s': %w", s.Name, p.Name, err)
		}
		prop := &config.PropertyDefinition{
			Name:        p.Name,
			Description: p.Description,
			Kind:        p.Kind,
			Type:        parsedType,
		}
		if isExprDefined(ctx, p.Default, "default") {
			val, err := evalLiteral(p.Default)
			if err != nil {
				return nil, fmt.Errorf("invalid default value for property '%s' in setting '%s': %w", p.Name, s.Name, err)
			}
			prop.Default = &val
		}
		def.Properties = append(def.Properties, prop)
	}
	return def, nil
}

// translateGraph converts a `graph` block into the agnostic model.
func (l *Loader) translateGraph(ctx context.Context, g *graphBlock) (*config.Graph, error) {
	logger := ctxlog.FromContext(ctx).With("graph", g.Name)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Translating HCL graph to internal config model.")

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
		variable, err := translateVariable(ctx, v)
		if err != nil {
			return nil, fmt.Errorf("in graph '%s', variable '%s': %w", g.Name, v.Name, err)
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

func translateMember(ctx context.Context, m *memberBlock) (*config.Member, error) {
	member := &config.Member{Name: m.Name}
	if isExprDefined(ctx, m.Type, "type") {
		ty, err := parseTypeExpr(ctx, m.Type)
		if err != nil {
			return nil, err
		}
		member.Type = &ty
	}
	return member, nil
}

func translateVariable(ctx context.Context, v *variableBlock) (*config.Variable, error) {
	out := &config.Variable{
		Name:     v.Name,
		Type:     cty.DynamicPseudoType,
		Category: v.Category,
		Global:   v.Global,
	}
	if isExprDefined(ctx, v.Default, "default") {
		val, err := evalLiteral(v.Default)
		if err != nil {
			return nil, fmt.Errorf("invalid default value: %w", err)
		}
		out.Default = &val
		out.Type = val.Type()
	}
	if isExprDefined(ctx, v.Type, "type") {
		ty, err := parseTypeExpr(ctx, v.Type)
		if err != nil {
			return nil, err
		}
		out.Type = ty
	}
	return out, nil
}

func translateNode(ctx context.Context, n *nodeBlock) (*config.Node, error) {
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
	if isExprDefined(ctx, n.ValueType, "value_type") {
		ty, err := parseTypeExpr(ctx, n.ValueType)
		if err != nil {
			return nil, err
		}
		out.ValueType = &ty
	}
	if n.Properties != nil {
		props, err := extractBodyValues(n.Properties.Body)
		if err != nil {
			return nil, err
		}
		out.Properties = props
	}
	// Dynamic property names are often not valid HCL identifiers, so they
	// come in as an object attribute instead of a properties body.
	if isExprDefined(ctx, n.Dynamic, "dynamic") {
		val, err := evalLiteral(n.Dynamic)
		if err != nil {
			return nil, fmt.Errorf("invalid dynamic properties: %w", err)
		}
		if !val.Type().IsObjectType() && !val.Type().IsMapType() {
			return nil, fmt.Errorf("dynamic properties must be an object, got %s", val.Type().FriendlyName())
		}
		if out.Properties == nil {
			out.Properties = make(map[string]cty.Value)
		}
		for name, v := range val.AsValueMap() {
			if _, dup := out.Properties[name]; dup {
				return nil, fmt.Errorf("property %q is set twice", name)
			}
			out.Properties[name] = v
		}
	}
	return out, nil
}
