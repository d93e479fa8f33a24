package setting

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Type is a registered setting-node type: the static list of overridable
// properties and their defaults, plus the type's place in the hierarchy.
type Type struct {
	Name        string
	Description string
	// Parent is the type this one specializes, or nil.
	Parent *Type
	// RenderLayer marks types that describe something to render. A flattened
	// graph without any render-layer setting is reported as a warning.
	RenderLayer bool
	// Dynamic types accept per-node properties that are not declared here,
	// e.g. console variables whose names depend on the preset in use.
	Dynamic bool

	properties []*Property
	index      map[string]*Property
}

// NewType creates a type with the given properties. Properties inherited from
// parent are visible through the new type.
func NewType(name string, parent *Type, props ...*Property) (*Type, error) {
	t := &Type{Name: name, Parent: parent, index: make(map[string]*Property)}
	for _, p := range props {
		if err := t.AddProperty(p); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// MustType is like NewType but panics on a duplicate property.
func MustType(name string, parent *Type, props ...*Property) *Type {
	t, err := NewType(name, parent, props...)
	if err != nil {
		panic(err)
	}
	return t
}

// AddProperty declares a new property on the type.
func (t *Type) AddProperty(p *Property) error {
	if p == nil || p.Name == "" {
		return fmt.Errorf("setting type %q: property must have a name", t.Name)
	}
	if p.Mergeable() && p.Type.Equals(cty.DynamicPseudoType) {
		return fmt.Errorf("setting type %q: mergeable property %q needs a concrete element type", t.Name, p.Name)
	}
	if _, exists := t.Property(p.Name); exists {
		return fmt.Errorf("setting type %q: duplicate property %q", t.Name, p.Name)
	}
	if t.index == nil {
		t.index = make(map[string]*Property)
	}
	t.properties = append(t.properties, p)
	t.index[p.Name] = p
	return nil
}

// Properties returns every property of the type, inherited ones first.
func (t *Type) Properties() []*Property {
	var props []*Property
	if t.Parent != nil {
		props = append(props, t.Parent.Properties()...)
	}
	return append(props, t.properties...)
}

// Property looks up a property by name, including inherited properties.
func (t *Type) Property(name string) (*Property, bool) {
	for cur := t; cur != nil; cur = cur.Parent {
		if p, ok := cur.index[name]; ok {
			return p, true
		}
	}
	return nil, false
}

// PropertyNames lists the names of Properties in order.
func (t *Type) PropertyNames() []string {
	props := t.Properties()
	names := make([]string, len(props))
	for i, p := range props {
		names[i] = p.Name
	}
	return names
}

// IsA reports whether t is the named type or one of its descendants.
func (t *Type) IsA(name string) bool {
	for cur := t; cur != nil; cur = cur.Parent {
		if cur.Name == name {
			return true
		}
	}
	return false
}

// IsRenderLayer reports whether t or any ancestor is a render-layer type.
func (t *Type) IsRenderLayer() bool {
	for cur := t; cur != nil; cur = cur.Parent {
		if cur.RenderLayer {
			return true
		}
	}
	return false
}

// IsDynamic reports whether t or any ancestor accepts dynamic properties.
func (t *Type) IsDynamic() bool {
	for cur := t; cur != nil; cur = cur.Parent {
		if cur.Dynamic {
			return true
		}
	}
	return false
}
