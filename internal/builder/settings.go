package builder

import (
	"context"
	"fmt"

	"github.com/specialistvlad/moviegraph/internal/config"
	"github.com/specialistvlad/moviegraph/internal/ctxlog"
	"github.com/specialistvlad/moviegraph/internal/registry"
	"github.com/specialistvlad/moviegraph/internal/setting"
	"github.com/zclconf/go-cty/cty/convert"
)

// registerSettings adds the document's setting declarations to reg. A
// declaration waits until its parent is registered; whatever is left when no
// more progress can be made references an unknown parent.
func registerSettings(ctx context.Context, defs []*config.SettingDefinition, reg *registry.Registry) error {
	logger := ctxlog.FromContext(ctx)
	pending := append([]*config.SettingDefinition(nil), defs...)

	for len(pending) > 0 {
		var next []*config.SettingDefinition
		for _, def := range pending {
			var parent *setting.Type
			if def.Parent != "" {
				p, ok := reg.Type(def.Parent)
				if !ok {
					next = append(next, def)
					continue
				}
				parent = p
			}
			t, err := newSettingType(def, parent)
			if err != nil {
				return err
			}
			if err := reg.RegisterType(t); err != nil {
				return err
			}
			logger.Debug("Registered document setting type.", "type", t.Name, "parent", def.Parent)
		}
		if len(next) == len(pending) {
			def := next[0]
			if _, err := reg.Lookup(def.Parent); err != nil {
				return fmt.Errorf("setting %q: parent: %w", def.Name, err)
			}
			return fmt.Errorf("setting %q: parent %q is never registered", def.Name, def.Parent)
		}
		pending = next
	}
	return nil
}

func newSettingType(def *config.SettingDefinition, parent *setting.Type) (*setting.Type, error) {
	t, err := setting.NewType(def.Name, parent)
	if err != nil {
		return nil, err
	}
	t.Description = def.Description
	t.RenderLayer = def.RenderLayer
	t.Dynamic = def.Dynamic

	for _, pd := range def.Properties {
		kind, err := setting.ParseKind(pd.Kind)
		if err != nil {
			return nil, fmt.Errorf("setting %q, property %q: %w", def.Name, pd.Name, err)
		}
		p := &setting.Property{
			Name:        pd.Name,
			Description: pd.Description,
			Kind:        kind,
			Type:        pd.Type,
		}
		if pd.Default != nil && !pd.Default.IsNull() {
			val, err := convert.Convert(*pd.Default, p.ValueType())
			if err != nil {
				return nil, fmt.Errorf("setting %q, property %q: default: %w", def.Name, pd.Name, err)
			}
			p.Default = val
		}
		if err := t.AddProperty(p); err != nil {
			return nil, err
		}
	}
	return t, nil
}
