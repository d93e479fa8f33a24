package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// MemberKind tells which graph-level list a member lives in.
type MemberKind int

const (
	MemberInput MemberKind = iota
	MemberOutput
	MemberVariable
)

func (k MemberKind) String() string {
	switch k {
	case MemberInput:
		return "Input"
	case MemberOutput:
		return "Output"
	default:
		return "Variable"
	}
}

// Member is a named graph-level declaration. Its identity never changes, so
// pins and accessor nodes keep pointing at it across renames.
type Member struct {
	id       uuid.UUID
	kind     MemberKind
	name     string
	typ      cty.Type
	branch   bool
	builtin  bool
	global   GlobalKind
	category string
	def      cty.Value
}

// ID returns the member's stable identity.
func (m *Member) ID() uuid.UUID { return m.id }

// Kind returns whether the member is an input, output or variable.
func (m *Member) Kind() MemberKind { return m.kind }

// Name returns the display name.
func (m *Member) Name() string { return m.name }

// Type returns the value type. Branch members report cty.DynamicPseudoType.
func (m *Member) Type() cty.Type { return m.typ }

// IsBranch reports whether an input or output member carries a branch.
func (m *Member) IsBranch() bool { return m.branch }

// IsBuiltin reports whether the member is fixed by the system.
func (m *Member) IsBuiltin() bool { return m.builtin }

// Global returns the kind of a global variable, or GlobalNone.
func (m *Member) Global() GlobalKind { return m.global }

// Category returns the variable's "|"-separated category path.
func (m *Member) Category() string { return m.category }

// Default returns the stored value of a user variable.
func (m *Member) Default() cty.Value {
	if m.def == cty.NilVal {
		return cty.NullVal(m.typ)
	}
	return m.def
}

// SetDefault stores the value of a user variable, converted to its type.
func (m *Member) SetDefault(v cty.Value) error {
	if m.kind != MemberVariable || m.global != GlobalNone {
		return fmt.Errorf("%w: %s has no stored value", ErrBuiltinMember, m.name)
	}
	conv, err := convert.Convert(v, m.typ)
	if err != nil {
		return fmt.Errorf("variable %q: %w", m.name, err)
	}
	m.def = conv
	return nil
}

func (m *Member) newPin(dir Direction) *Pin {
	var p *Pin
	if m.branch {
		p = newBranchPin(dir, m.name)
	} else {
		p = newValuePin(dir, m.name, m.typ)
	}
	p.memberID = m.id
	return p
}

func (m *Member) String() string {
	return fmt.Sprintf("%s %q", strings.ToLower(m.kind.String()), m.name)
}

func (g *Graph) membersOf(kind MemberKind) *[]*Member {
	switch kind {
	case MemberInput:
		return &g.inputs
	case MemberOutput:
		return &g.outputs
	default:
		return &g.variables
	}
}

// uniqueName returns base, or base followed by the lowest free counter, so
// that no other member of the same kind carries the name.
func (g *Graph) uniqueName(kind MemberKind, base string, except *Member) string {
	if base == "" {
		base = kind.String()
	}
	taken := make(map[string]bool)
	for _, m := range *g.membersOf(kind) {
		if m != except {
			taken[m.name] = true
		}
	}
	if !taken[base] {
		return base
	}
	for i := 1; ; i++ {
		candidate := base + " " + strconv.Itoa(i)
		if !taken[candidate] {
			return candidate
		}
	}
}

func (g *Graph) addMember(m *Member) *Member {
	m.id = uuid.New()
	if !m.builtin {
		m.name = g.uniqueName(m.kind, m.name, nil)
	}
	list := g.membersOf(m.kind)
	*list = append(*list, m)
	g.syncBoundary()
	g.touch()
	return m
}

// AddInput declares a branch input. An empty name gets a generated one.
func (g *Graph) AddInput(name string) *Member {
	return g.addMember(&Member{kind: MemberInput, name: name, branch: true, typ: cty.DynamicPseudoType})
}

// AddValueInput declares an input that carries a value of type ty.
func (g *Graph) AddValueInput(name string, ty cty.Type) *Member {
	return g.addMember(&Member{kind: MemberInput, name: name, typ: ty})
}

// AddOutput declares a branch output. Every branch output is flattened into
// its own branch config.
func (g *Graph) AddOutput(name string) *Member {
	return g.addMember(&Member{kind: MemberOutput, name: name, branch: true, typ: cty.DynamicPseudoType})
}

// AddValueOutput declares an output that carries a value of type ty.
func (g *Graph) AddValueOutput(name string, ty cty.Type) *Member {
	return g.addMember(&Member{kind: MemberOutput, name: name, typ: ty})
}

// AddVariable declares a user variable of type ty with a null value.
func (g *Graph) AddVariable(name string, ty cty.Type) *Member {
	if ty == cty.NilType {
		ty = cty.DynamicPseudoType
	}
	return g.addMember(&Member{kind: MemberVariable, name: name, typ: ty})
}

// AddGlobalVariable declares the built-in variable of the given kind. Its
// name is fixed; declaring it twice returns the existing member.
func (g *Graph) AddGlobalVariable(kind GlobalKind) (*Member, error) {
	if kind == GlobalNone || kind.Name() == "" {
		return nil, fmt.Errorf("invalid global variable kind %d", kind)
	}
	for _, m := range g.variables {
		if m.global == kind {
			return m, nil
		}
	}
	return g.addMember(&Member{
		kind:    MemberVariable,
		name:    kind.Name(),
		typ:     kind.Type(),
		builtin: true,
		global:  kind,
	}), nil
}

// Inputs returns the input members in order, the Globals input first.
func (g *Graph) Inputs() []*Member { return append([]*Member(nil), g.inputs...) }

// Outputs returns the output members in order, the Globals output first.
func (g *Graph) Outputs() []*Member { return append([]*Member(nil), g.outputs...) }

// Variables returns the variables in their category-grouped order.
func (g *Graph) Variables() []*Member { return append([]*Member(nil), g.variables...) }

// Member looks up a member of any kind by identity.
func (g *Graph) Member(id uuid.UUID) *Member {
	for _, kind := range []MemberKind{MemberInput, MemberOutput, MemberVariable} {
		for _, m := range *g.membersOf(kind) {
			if m.id == id {
				return m
			}
		}
	}
	return nil
}

// MemberByName looks up a member of the given kind by display name.
func (g *Graph) MemberByName(kind MemberKind, name string) *Member {
	for _, m := range *g.membersOf(kind) {
		if m.name == name {
			return m
		}
	}
	return nil
}

func (g *Graph) ownsMember(m *Member) bool {
	return m != nil && g.Member(m.id) == m
}

// RenameMember changes a member's display name, disambiguating it against
// the other members of its kind. Pins mirroring the member are relabeled.
func (g *Graph) RenameMember(m *Member, name string) (string, error) {
	if !g.ownsMember(m) {
		return "", ErrMemberNotFound
	}
	if m.builtin {
		return "", fmt.Errorf("%w: cannot rename %s", ErrBuiltinMember, m)
	}
	m.name = g.uniqueName(m.kind, name, m)
	g.syncBoundary()
	g.touch()
	return m.name, nil
}

// RemoveMember deletes a user member. Pins mirroring it lose their edges and
// variable accessor nodes reading it are removed from the graph.
func (g *Graph) RemoveMember(m *Member) error {
	if !g.ownsMember(m) {
		return ErrMemberNotFound
	}
	if m.builtin {
		return fmt.Errorf("%w: cannot remove %s", ErrBuiltinMember, m)
	}
	list := g.membersOf(m.kind)
	for i, x := range *list {
		if x == m {
			*list = append((*list)[:i], (*list)[i+1:]...)
			break
		}
	}
	if m.kind == MemberVariable {
		for _, n := range g.Nodes() {
			if n.kind == KindVariable && n.variable == m {
				if err := g.RemoveNode(n); err != nil {
					return err
				}
			}
		}
	}
	g.syncBoundary()
	g.touch()
	return nil
}

// SetVariableCategory assigns a category to a variable and moves it so that
// variables stay grouped by category. The variable is placed after the last
// variable sharing the deepest matching category prefix, else after the last
// categorized variable, else first. Clearing the category moves it last.
func (g *Graph) SetVariableCategory(m *Member, category string) error {
	if !g.ownsMember(m) || m.kind != MemberVariable {
		return ErrMemberNotFound
	}
	m.category = category

	rest := make([]*Member, 0, len(g.variables))
	for _, v := range g.variables {
		if v != m {
			rest = append(rest, v)
		}
	}

	at := len(rest)
	if category != "" {
		at = categoryInsertIndex(rest, category)
	}
	g.variables = append(rest[:at], append([]*Member{m}, rest[at:]...)...)
	g.touch()
	return nil
}

func categoryInsertIndex(vars []*Member, category string) int {
	for prefix := category; prefix != ""; {
		last := -1
		for i, v := range vars {
			if v.category == prefix || strings.HasPrefix(v.category, prefix+"|") {
				last = i
			}
		}
		if last >= 0 {
			return last + 1
		}
		cut := strings.LastIndex(prefix, "|")
		if cut < 0 {
			break
		}
		prefix = prefix[:cut]
	}
	last := -1
	for i, v := range vars {
		if v.category != "" {
			last = i
		}
	}
	return last + 1
}

// syncBoundary mirrors the member lists onto the synthetic Input and Output
// nodes.
func (g *Graph) syncBoundary() {
	if g.inputNode == nil || g.outputNode == nil {
		return
	}
	g.inputNode.outputs = syncMemberPins(g.inputNode, g.inputNode.outputs, g.inputs, Output)
	g.outputNode.inputs = syncMemberPins(g.outputNode, g.outputNode.inputs, g.outputs, Input)
}
