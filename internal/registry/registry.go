package registry

import (
	"fmt"

	"github.com/specialistvlad/moviegraph/internal/setting"
)

// Module is the interface that all setting modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds every setting type known to a single application instance.
type Registry struct {
	types map[string]*setting.Type
	order []string
}

// New creates and initializes a new Registry instance, registering the given
// modules in order.
func New(modules ...Module) *Registry {
	r := &Registry{types: make(map[string]*setting.Type)}
	for _, m := range modules {
		m.Register(r)
	}
	return r
}

// RegisterType adds a setting type. Type names are unique per registry.
func (r *Registry) RegisterType(t *setting.Type) error {
	if t == nil || t.Name == "" {
		return fmt.Errorf("setting type must have a name")
	}
	if _, exists := r.types[t.Name]; exists {
		return fmt.Errorf("setting type %q is already registered", t.Name)
	}
	r.types[t.Name] = t
	r.order = append(r.order, t.Name)
	return nil
}

// MustRegister is RegisterType for module registration code, where a
// duplicate is a programming error.
func (r *Registry) MustRegister(types ...*setting.Type) {
	for _, t := range types {
		if err := r.RegisterType(t); err != nil {
			panic(err)
		}
	}
}

// Type looks up a registered setting type by name.
func (r *Registry) Type(name string) (*setting.Type, bool) {
	t, ok := r.types[name]
	return t, ok
}

// Names returns registered type names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Lookup is Type with an error that suggests a close match.
func (r *Registry) Lookup(name string) (*setting.Type, error) {
	if t, ok := r.types[name]; ok {
		return t, nil
	}
	if suggestion := NameSuggestion(name, r.order); suggestion != "" {
		return nil, fmt.Errorf("unknown setting type %q, did you mean %q?", name, suggestion)
	}
	return nil, fmt.Errorf("unknown setting type %q", name)
}
