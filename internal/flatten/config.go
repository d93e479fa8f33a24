package flatten

import (
	"github.com/specialistvlad/moviegraph/internal/graph"
	"github.com/specialistvlad/moviegraph/internal/setting"
	"github.com/zclconf/go-cty/cty"
)

// Setting is one resolved setting instance of a branch.
type Setting struct {
	instance string
	values   *setting.Values
}

// Type returns the setting type of the instance.
func (s *Setting) Type() *setting.Type { return s.values.Type() }

// Instance returns the disambiguation name, empty for most settings.
func (s *Setting) Instance() string { return s.instance }

// Value returns the resolved value of a declared or dynamic property.
func (s *Setting) Value(name string) (cty.Value, bool) {
	if v, ok := s.values.Value(name); ok {
		return v, true
	}
	return s.values.Dynamic(name)
}

// IsOverridden reports whether any node on the branch set the property.
// Properties that are not overridden hold their type default.
func (s *Setting) IsOverridden(name string) bool {
	if _, ok := s.values.Type().Property(name); ok {
		return s.values.IsOverridden(name)
	}
	return s.values.IsDynamicOverridden(name)
}

// Properties returns every declared and dynamic property with its value.
func (s *Setting) Properties() map[string]cty.Value {
	return s.values.AsMap()
}

// DynamicNames lists the dynamic properties of the instance, sorted.
func (s *Setting) DynamicNames() []string {
	return s.values.DynamicNames()
}

type slotKey struct {
	typ      string
	instance string
}

// BranchConfig holds the resolved settings of one branch, in the order they
// were first reached from the branch output.
type BranchConfig struct {
	name     string
	settings []*Setting
	slots    map[slotKey]*Setting
}

func newBranchConfig(name string) *BranchConfig {
	return &BranchConfig{name: name, slots: make(map[slotKey]*Setting)}
}

// Name returns the branch label.
func (b *BranchConfig) Name() string { return b.name }

// Settings returns the resolved settings in first-visit order.
func (b *BranchConfig) Settings() []*Setting {
	return append([]*Setting(nil), b.settings...)
}

// slot finds or creates the resolved instance for (type, instance). A new
// instance starts with every override flag cleared.
func (b *BranchConfig) slot(t *setting.Type, instance string) *Setting {
	key := slotKey{typ: t.Name, instance: instance}
	if s, ok := b.slots[key]; ok {
		return s
	}
	s := &Setting{instance: instance, values: setting.NewValues(t)}
	b.slots[key] = s
	b.settings = append(b.settings, s)
	return s
}

// Setting returns the resolved instance for an exact type and instance name.
func (b *BranchConfig) Setting(typeName, instance string) *Setting {
	return b.slots[slotKey{typ: typeName, instance: instance}]
}

// Find returns the first resolved instance of typeName. With exact unset,
// instances of types derived from typeName match too.
func (b *BranchConfig) Find(typeName string, exact bool) *Setting {
	for _, s := range b.settings {
		if matches(s, typeName, exact) {
			return s
		}
	}
	return nil
}

// FindAll returns every resolved instance matching typeName.
func (b *BranchConfig) FindAll(typeName string, exact bool) []*Setting {
	var out []*Setting
	for _, s := range b.settings {
		if matches(s, typeName, exact) {
			out = append(out, s)
		}
	}
	return out
}

func matches(s *Setting, typeName string, exact bool) bool {
	if exact {
		return s.Type().Name == typeName
	}
	return s.Type().IsA(typeName)
}

func (b *BranchConfig) hasRenderLayer() bool {
	for _, s := range b.settings {
		if s.Type().IsRenderLayer() {
			return true
		}
	}
	return false
}

func (b *BranchConfig) fillDefaults() {
	for _, s := range b.settings {
		s.values.FillDefaults()
	}
}

// EvaluatedConfig is the result of one flatten call: a resolved config per
// output branch. It is not modified after Flatten returns and may be read
// from several goroutines.
type EvaluatedConfig struct {
	graph    string
	order    []string
	branches map[string]*BranchConfig
}

func newEvaluatedConfig(g *graph.Graph) *EvaluatedConfig {
	return &EvaluatedConfig{graph: g.Name(), branches: make(map[string]*BranchConfig)}
}

func (c *EvaluatedConfig) addBranch(name string) *BranchConfig {
	b := newBranchConfig(name)
	c.order = append(c.order, name)
	c.branches[name] = b
	return b
}

// GraphName names the graph the config was flattened from, for diagnostics.
func (c *EvaluatedConfig) GraphName() string { return c.graph }

// BranchNames returns the branch labels in Output pin order.
func (c *EvaluatedConfig) BranchNames() []string {
	return append([]string(nil), c.order...)
}

// Branch returns the resolved config of a branch.
func (c *EvaluatedConfig) Branch(name string) (*BranchConfig, bool) {
	b, ok := c.branches[name]
	return b, ok
}

// HasRenderLayer reports whether any branch resolved a render layer setting.
func (c *EvaluatedConfig) HasRenderLayer() bool {
	for _, b := range c.branches {
		if b.hasRenderLayer() {
			return true
		}
	}
	return false
}
