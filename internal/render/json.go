package render

import (
	"fmt"
	"io"

	"github.com/specialistvlad/moviegraph/internal/flatten"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// JSON renders `{"graph": ..., "branches": [{"name": ..., "settings": [...]}]}`.
type JSON struct{}

// Render implements Renderer.
func (r *JSON) Render(w io.Writer, cfg *flatten.EvaluatedConfig) error {
	val := configValue(cfg)
	buf, err := ctyjson.Marshal(val, val.Type())
	if err != nil {
		return fmt.Errorf("failed to encode config as JSON: %w", err)
	}
	if _, err := w.Write(append(buf, '\n')); err != nil {
		return err
	}
	return nil
}

// configValue mirrors cfg as a single cty value.
func configValue(cfg *flatten.EvaluatedConfig) cty.Value {
	branches := make([]cty.Value, 0, len(cfg.BranchNames()))
	for _, name := range cfg.BranchNames() {
		b, _ := cfg.Branch(name)
		settings := make([]cty.Value, 0, len(b.Settings()))
		for _, s := range b.Settings() {
			settings = append(settings, cty.ObjectVal(map[string]cty.Value{
				"type":       cty.StringVal(s.Type().Name),
				"instance":   cty.StringVal(s.Instance()),
				"properties": cty.ObjectVal(s.Properties()),
			}))
		}
		branches = append(branches, cty.ObjectVal(map[string]cty.Value{
			"name":     cty.StringVal(name),
			"settings": tuple(settings),
		}))
	}
	return cty.ObjectVal(map[string]cty.Value{
		"graph":    cty.StringVal(cfg.GraphName()),
		"branches": tuple(branches),
	})
}

func tuple(vals []cty.Value) cty.Value {
	if len(vals) == 0 {
		return cty.EmptyTupleVal
	}
	return cty.TupleVal(vals)
}
