package setting

import (
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Values is the property bag of one setting type together with its override
// flags. Setting nodes in a graph carry one as authored data; the flattening
// engine creates a fresh one per branch slot and folds node values onto it.
//
// Values is not safe for concurrent mutation.
type Values struct {
	typ *Type

	values     map[string]cty.Value
	overridden map[string]bool

	// contributions hold the authored add/remove lists of mergeable
	// properties; accumulators hold the folded result on resolved instances.
	contributions map[string]MergeOps
	accumulators  map[string]*accumulator

	dynamic           map[string]cty.Value
	dynamicOverridden map[string]bool
}

// NewValues creates an empty bag for t with every override flag cleared.
func NewValues(t *Type) *Values {
	return &Values{
		typ:               t,
		values:            make(map[string]cty.Value),
		overridden:        make(map[string]bool),
		contributions:     make(map[string]MergeOps),
		accumulators:      make(map[string]*accumulator),
		dynamic:           make(map[string]cty.Value),
		dynamicOverridden: make(map[string]bool),
	}
}

// Type returns the setting type the bag was created for.
func (v *Values) Type() *Type {
	return v.typ
}

func (v *Values) property(name string) (*Property, error) {
	p, ok := v.typ.Property(name)
	if !ok {
		return nil, fmt.Errorf("setting type %q has no property %q", v.typ.Name, name)
	}
	return p, nil
}

// Set stores a value for a declared property and sets its override flag.
// Values for mergeable properties are parsed with ParseMergeOps.
func (v *Values) Set(name string, val cty.Value) error {
	p, err := v.property(name)
	if err != nil {
		return err
	}
	if p.Mergeable() {
		ops, err := ParseMergeOps(p, val)
		if err != nil {
			return err
		}
		v.contributions[name] = ops
		v.overridden[name] = true
		return nil
	}
	converted, err := convert.Convert(val, p.Type)
	if err != nil {
		return fmt.Errorf("property %q: cannot use %s as %s: %w", name, val.Type().FriendlyName(), p.Type.FriendlyName(), err)
	}
	v.values[name] = converted
	v.overridden[name] = true
	return nil
}

// Assign stores an already converted value without touching the override flag.
func (v *Values) Assign(name string, val cty.Value) {
	v.values[name] = val
}

// Value returns the current value of a property: the stored value, the folded
// result for mergeable properties, or the type default.
func (v *Values) Value(name string) (cty.Value, bool) {
	p, ok := v.typ.Property(name)
	if !ok {
		return cty.NilVal, false
	}
	if p.Mergeable() {
		if acc, ok := v.accumulators[name]; ok {
			return acc.value(), true
		}
		if ops, ok := v.contributions[name]; ok {
			acc := newAccumulator(p)
			acc.merge(ops)
			return acc.value(), true
		}
		return p.DefaultValue(), true
	}
	if val, ok := v.values[name]; ok {
		return val, true
	}
	return p.DefaultValue(), true
}

// IsOverridden reports the override flag of a declared property.
func (v *Values) IsOverridden(name string) bool {
	return v.overridden[name]
}

// SetOverridden sets or clears the override flag of a declared property.
func (v *Values) SetOverridden(name string, overridden bool) {
	v.overridden[name] = overridden
}

// Contribution returns the authored add/remove lists of a mergeable property.
func (v *Values) Contribution(name string) (MergeOps, bool) {
	ops, ok := v.contributions[name]
	return ops, ok
}

// Merge folds a contribution onto the accumulated value of a mergeable
// property. Calls must arrive in output-to-input visit order.
func (v *Values) Merge(name string, ops MergeOps) error {
	p, err := v.property(name)
	if err != nil {
		return err
	}
	if !p.Mergeable() {
		return fmt.Errorf("property %q is not mergeable", name)
	}
	acc, ok := v.accumulators[name]
	if !ok {
		acc = newAccumulator(p)
		v.accumulators[name] = acc
	}
	acc.merge(ops)
	return nil
}

// SetDynamic stores a dynamic property and sets its dynamic override flag.
func (v *Values) SetDynamic(name string, val cty.Value) error {
	if !v.typ.IsDynamic() {
		return fmt.Errorf("setting type %q does not accept dynamic property %q", v.typ.Name, name)
	}
	if _, declared := v.typ.Property(name); declared {
		return fmt.Errorf("property %q is declared on %q and cannot be dynamic", name, v.typ.Name)
	}
	if !val.IsWhollyKnown() || val.Type().HasDynamicTypes() {
		return fmt.Errorf("dynamic property %q needs a concrete value, got %s", name, val.GoString())
	}
	v.dynamic[name] = val
	v.dynamicOverridden[name] = true
	return nil
}

// AssignDynamic stores a dynamic property without touching its flag.
func (v *Values) AssignDynamic(name string, val cty.Value) {
	v.dynamic[name] = val
}

// Dynamic returns a dynamic property's value.
func (v *Values) Dynamic(name string) (cty.Value, bool) {
	val, ok := v.dynamic[name]
	return val, ok
}

// DynamicNames lists the dynamic properties present, sorted.
func (v *Values) DynamicNames() []string {
	names := make([]string, 0, len(v.dynamic))
	for name := range v.dynamic {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsDynamicOverridden is the dynamic-property counterpart of IsOverridden.
func (v *Values) IsDynamicOverridden(name string) bool {
	return v.dynamicOverridden[name]
}

// SetDynamicOverridden is the dynamic-property counterpart of SetOverridden.
func (v *Values) SetDynamicOverridden(name string, overridden bool) {
	v.dynamicOverridden[name] = overridden
}

// FillDefaults assigns the type default to every declared property that is
// still not overridden. Override flags are left untouched.
func (v *Values) FillDefaults() {
	for _, p := range v.typ.Properties() {
		if v.overridden[p.Name] || p.Mergeable() {
			continue
		}
		v.values[p.Name] = p.DefaultValue()
	}
}

// AsMap returns every declared and dynamic property with its current value.
func (v *Values) AsMap() map[string]cty.Value {
	out := make(map[string]cty.Value, len(v.values)+len(v.dynamic))
	for _, p := range v.typ.Properties() {
		val, _ := v.Value(p.Name)
		out[p.Name] = val
	}
	for name, val := range v.dynamic {
		out[name] = val
	}
	return out
}
