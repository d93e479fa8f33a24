package flatten

import (
	"fmt"

	"github.com/specialistvlad/moviegraph/internal/graph"
	"github.com/specialistvlad/moviegraph/internal/setting"
	"github.com/zclconf/go-cty/cty"
)

// mergeNode folds the properties of setting node n onto dst, the branch's
// resolved instance of the same type. Nodes arrive closest-to-output first,
// so a property that is already overridden on dst keeps its value, except for
// mergeable properties which accumulate on every visit.
func (c *evalContext) mergeNode(n *graph.Node, dst *setting.Values) error {
	src := n.Settings()
	for _, p := range dst.Type().Properties() {
		if dst.IsOverridden(p.Name) && !p.Mergeable() {
			continue
		}

		if n.IsExposed(p.Name) {
			if val, ok := c.ResolveValue(n.InputPin(p.Name)); ok {
				if err := applyValue(dst, p, val); err != nil {
					return fmt.Errorf("%s: %w", n, err)
				}
				continue
			}
		}

		if !src.IsOverridden(p.Name) {
			continue
		}
		if p.Mergeable() {
			ops, _ := src.Contribution(p.Name)
			if err := dst.Merge(p.Name, ops); err != nil {
				return fmt.Errorf("%s: %w", n, err)
			}
			dst.SetOverridden(p.Name, true)
			continue
		}
		val, _ := src.Value(p.Name)
		dst.Assign(p.Name, val)
		dst.SetOverridden(p.Name, true)
	}

	for _, name := range src.DynamicNames() {
		if dst.IsDynamicOverridden(name) || !src.IsDynamicOverridden(name) {
			continue
		}
		val, _ := src.Dynamic(name)
		dst.AssignDynamic(name, val)
		dst.SetDynamicOverridden(name, true)
	}
	return nil
}

// applyValue stores a pin-resolved value and marks the property overridden.
func applyValue(dst *setting.Values, p *setting.Property, val cty.Value) error {
	if p.Mergeable() {
		ops, err := setting.ParseMergeOps(p, val)
		if err != nil {
			return err
		}
		if err := dst.Merge(p.Name, ops); err != nil {
			return err
		}
	} else {
		dst.Assign(p.Name, val)
	}
	dst.SetOverridden(p.Name, true)
	return nil
}
