package app

import (
	"github.com/specialistvlad/moviegraph/internal/registry"
	"github.com/specialistvlad/moviegraph/modules/camera"
	"github.com/specialistvlad/moviegraph/modules/cvars"
	"github.com/specialistvlad/moviegraph/modules/metadata"
	"github.com/specialistvlad/moviegraph/modules/output"
	"github.com/specialistvlad/moviegraph/modules/renderlayer"
)

// coreModules is the definitive list of all setting modules that are
// compiled into the moviegraph binary.
var coreModules = []registry.Module{
	&output.Module{},
	&camera.Module{},
	&renderlayer.Module{},
	&cvars.Module{},
	&metadata.Module{},
}
