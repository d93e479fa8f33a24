package setting

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Kind decides how a property combines when several nodes on a branch
// provide a value for it.
type Kind int

const (
	// KindValue properties are winner-take-all: the first overriding node
	// visited (closest to the branch output) wins.
	KindValue Kind = iota
	// KindMergeList properties accumulate an ordered list of entries across
	// every visited node.
	KindMergeList
	// KindMergeSet properties accumulate a de-duplicated set of entries.
	KindMergeSet
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindMergeList:
		return "merge_list"
	case KindMergeSet:
		return "merge_set"
	default:
		return "unknown"
	}
}

// ParseKind converts the document spelling of a kind into a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "", "value":
		return KindValue, nil
	case "merge_list":
		return KindMergeList, nil
	case "merge_set":
		return KindMergeSet, nil
	default:
		return KindValue, fmt.Errorf("unknown property kind %q: must be 'value', 'merge_list' or 'merge_set'", s)
	}
}

// Property describes one overridable field of a setting type. Every property
// has exactly one override flag per Values instance.
type Property struct {
	Name        string
	Description string
	Kind        Kind
	// Type is the value type for KindValue properties and the element type
	// for the merge kinds.
	Type cty.Type
	// Default is used when no node overrides the property. A null or zero
	// value means "the type's null value" (or an empty collection for the
	// merge kinds).
	Default cty.Value
}

// Prop builds a property from a Go-native default, converting it with gocty.
// It panics on a default that does not fit the type, which is a programming
// error in a module's registration code.
func Prop(name string, kind Kind, ty cty.Type, def any) *Property {
	p := &Property{Name: name, Kind: kind, Type: ty}
	if def == nil {
		return p
	}
	val, err := gocty.ToCtyValue(def, p.ValueType())
	if err != nil {
		panic(fmt.Sprintf("setting: invalid default for property %q: %s", name, err))
	}
	p.Default = val
	return p
}

// Mergeable reports whether the property accumulates instead of overwriting.
func (p *Property) Mergeable() bool {
	return p.Kind == KindMergeList || p.Kind == KindMergeSet
}

// ValueType is the type of the resolved value of the property.
func (p *Property) ValueType() cty.Type {
	switch p.Kind {
	case KindMergeList:
		return cty.List(p.Type)
	case KindMergeSet:
		return cty.Set(p.Type)
	default:
		return p.Type
	}
}

// DefaultValue returns the value a property resolves to when nobody set it.
func (p *Property) DefaultValue() cty.Value {
	if !p.Default.IsNull() {
		return p.Default
	}
	switch p.Kind {
	case KindMergeList:
		return cty.ListValEmpty(p.Type)
	case KindMergeSet:
		return cty.SetValEmpty(p.Type)
	default:
		return cty.NullVal(p.Type)
	}
}
