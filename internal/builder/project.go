package builder

import (
	"fmt"

	"github.com/specialistvlad/moviegraph/internal/graph"
	"github.com/specialistvlad/moviegraph/internal/registry"
)

// Project holds the graphs built from a document together with the registry
// their setting nodes were typed against.
type Project struct {
	registry *registry.Registry
	graphs   map[string]*graph.Graph
	order    []string
}

// Registry returns the registry extended with the document's setting types.
func (p *Project) Registry() *registry.Registry {
	return p.registry
}

// Names lists graph names in document order.
func (p *Project) Names() []string {
	return append([]string(nil), p.order...)
}

// Graph looks up a built graph by name.
func (p *Project) Graph(name string) (*graph.Graph, error) {
	if g, ok := p.graphs[name]; ok {
		return g, nil
	}
	if suggestion := registry.NameSuggestion(name, p.order); suggestion != "" {
		return nil, fmt.Errorf("unknown graph %q, did you mean %q?", name, suggestion)
	}
	return nil, fmt.Errorf("unknown graph %q", name)
}

// Root picks the graph to flatten: the named one, or the only graph when
// name is empty.
func (p *Project) Root(name string) (*graph.Graph, error) {
	if name != "" {
		return p.Graph(name)
	}
	switch len(p.order) {
	case 0:
		return nil, fmt.Errorf("no graph defined")
	case 1:
		return p.graphs[p.order[0]], nil
	default:
		return nil, fmt.Errorf("%d graphs defined (%v), a root graph name is required", len(p.order), p.order)
	}
}
