// Package output registers the render output setting types: where frames
// are written and in which format.
package output

import (
	"github.com/specialistvlad/moviegraph/internal/registry"
	"github.com/specialistvlad/moviegraph/internal/setting"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Output is the base type every file output specializes.
var Output = setting.MustType("output", nil,
	setting.Prop("output_directory", setting.KindValue, cty.String, "{project_dir}/Saved/MovieRenders"),
	setting.Prop("file_name_format", setting.KindValue, cty.String, "{sequence_name}.{frame_number}"),
	setting.Prop("resolution_x", setting.KindValue, cty.Number, 1920),
	setting.Prop("resolution_y", setting.KindValue, cty.Number, 1080),
	setting.Prop("overwrite_existing", setting.KindValue, cty.Bool, true),
)

// EXR writes multilayer OpenEXR files.
var EXR = setting.MustType("exr_output", Output,
	setting.Prop("compression", setting.KindValue, cty.String, "zip"),
	setting.Prop("multilayer", setting.KindValue, cty.Bool, true),
)

// PNG writes 8-bit PNG files.
var PNG = setting.MustType("png_output", Output,
	setting.Prop("write_alpha", setting.KindValue, cty.Bool, false),
)

func init() {
	Output.Description = "Common file output settings."
	EXR.Description = "OpenEXR file output."
	PNG.Description = "PNG file output."
}

// Register registers the output setting types.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister(Output, EXR, PNG)
}
