// Package metadata registers the setting type for job metadata written next
// to the rendered frames.
package metadata

import (
	"github.com/specialistvlad/moviegraph/internal/registry"
	"github.com/specialistvlad/moviegraph/internal/setting"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Metadata accumulates tags and review labels from every graph level.
var Metadata = setting.MustType("metadata", nil,
	setting.Prop("tags", setting.KindMergeList, cty.String, nil),
	setting.Prop("labels", setting.KindMergeSet, cty.String, nil),
	setting.Prop("artist", setting.KindValue, cty.String, nil),
)

// Register registers the metadata setting type.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister(Metadata)
}
