// Package renderlayer registers the render layer setting types. A flattened
// graph without one of these has nothing to render.
package renderlayer

import (
	"github.com/specialistvlad/moviegraph/internal/registry"
	"github.com/specialistvlad/moviegraph/internal/setting"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// RenderLayer names a layer and the collections it renders.
var RenderLayer = func() *setting.Type {
	t := setting.MustType("render_layer", nil,
		setting.Prop("layer_name", setting.KindValue, cty.String, "beauty"),
		setting.Prop("collections", setting.KindMergeList, cty.String, nil),
	)
	t.RenderLayer = true
	t.Description = "A layer to render."
	return t
}()

// DeferredRendering is the deferred renderer's pass on top of a layer.
var DeferredRendering = setting.MustType("deferred_rendering", RenderLayer,
	setting.Prop("spatial_sample_count", setting.KindValue, cty.Number, 1),
	setting.Prop("temporal_sample_count", setting.KindValue, cty.Number, 1),
	setting.Prop("anti_aliasing", setting.KindValue, cty.String, "none"),
)

// PathTracer renders the layer with the path tracer.
var PathTracer = setting.MustType("path_tracer", RenderLayer,
	setting.Prop("samples_per_pixel", setting.KindValue, cty.Number, 16),
	setting.Prop("denoise", setting.KindValue, cty.Bool, true),
)

// Register registers the render layer setting types.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister(RenderLayer, DeferredRendering, PathTracer)
}
