package render

import (
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/moviegraph/internal/flatten"
	"github.com/zclconf/go-cty/cty"
)

// HCL renders one `branch` block per branch holding one `setting` block per
// resolved instance. Property names that are not valid identifiers go into
// a `dynamic` object attribute.
type HCL struct{}

// Render implements Renderer.
func (r *HCL) Render(w io.Writer, cfg *flatten.EvaluatedConfig) error {
	f := hclwrite.NewEmptyFile()
	root := f.Body()
	root.SetAttributeValue("graph", cty.StringVal(cfg.GraphName()))

	for _, name := range cfg.BranchNames() {
		b, _ := cfg.Branch(name)
		root.AppendNewline()
		branch := root.AppendNewBlock("branch", []string{name}).Body()

		for i, s := range b.Settings() {
			if i > 0 {
				branch.AppendNewline()
			}
			body := branch.AppendNewBlock("setting", []string{s.Type().Name}).Body()
			if s.Instance() != "" {
				body.SetAttributeValue("instance", cty.StringVal(s.Instance()))
			}

			dynamic := make(map[string]cty.Value)
			for _, prop := range orderedProperties(s) {
				val, ok := s.Value(prop)
				if !ok {
					continue
				}
				if !hclsyntax.ValidIdentifier(prop) {
					dynamic[prop] = val
					continue
				}
				body.SetAttributeValue(prop, val)
			}
			if len(dynamic) > 0 {
				body.SetAttributeValue("dynamic", cty.ObjectVal(dynamic))
			}
		}
	}

	if _, err := w.Write(f.Bytes()); err != nil {
		return fmt.Errorf("failed to write HCL config: %w", err)
	}
	return nil
}
