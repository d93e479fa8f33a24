// Package camera registers camera and shutter settings.
package camera

import (
	"github.com/specialistvlad/moviegraph/internal/registry"
	"github.com/specialistvlad/moviegraph/internal/setting"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Camera holds per-shot camera overrides.
var Camera = setting.MustType("camera", nil,
	setting.Prop("shutter_timing", setting.KindValue, cty.String, "centered"),
	setting.Prop("overscan", setting.KindValue, cty.Number, 0),
	setting.Prop("focal_length", setting.KindValue, cty.Number, 35),
	setting.Prop("render_all_cameras", setting.KindValue, cty.Bool, false),
)

// Register registers the camera setting type.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister(Camera)
}
