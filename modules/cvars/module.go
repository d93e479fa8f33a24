// Package cvars registers the console variable setting type. Its property
// names depend on the engine build, so they are dynamic.
package cvars

import (
	"github.com/specialistvlad/moviegraph/internal/registry"
	"github.com/specialistvlad/moviegraph/internal/setting"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// ConsoleVariables carries arbitrary `name = value` console variables plus
// the commands run before and after the render.
var ConsoleVariables = func() *setting.Type {
	t := setting.MustType("console_variables", nil,
		setting.Prop("start_commands", setting.KindMergeList, cty.String, nil),
		setting.Prop("end_commands", setting.KindMergeList, cty.String, nil),
	)
	t.Dynamic = true
	t.Description = "Console variables applied for the duration of the render."
	return t
}()

// Register registers the console variable setting type.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister(ConsoleVariables)
}
