package render

import (
	"fmt"
	"io"

	"github.com/specialistvlad/moviegraph/internal/flatten"
)

// Renderer writes an evaluated config in one output format.
type Renderer interface {
	Render(w io.Writer, cfg *flatten.EvaluatedConfig) error
}

// Formats lists the accepted output format names.
var Formats = []string{"json", "hcl"}

// New returns the renderer for a format name.
func New(format string) (Renderer, error) {
	switch format {
	case "json":
		return &JSON{}, nil
	case "hcl":
		return &HCL{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q: must be 'json' or 'hcl'", format)
	}
}

// orderedProperties lists a setting's declared properties in type order,
// followed by its dynamic properties sorted by name.
func orderedProperties(s *flatten.Setting) []string {
	return append(s.Type().PropertyNames(), s.DynamicNames()...)
}
