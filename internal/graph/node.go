package graph

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/specialistvlad/moviegraph/internal/setting"
	"github.com/zclconf/go-cty/cty"
)

// Node is a typed unit of configuration owned by exactly one Graph.
type Node struct {
	id      uuid.UUID
	kind    Kind
	graph   *Graph
	label   string
	enabled bool

	inputs  []*Pin
	outputs []*Pin

	// KindSetting
	settings *setting.Values
	instance string

	// KindSubgraph
	subgraph *Graph

	// KindVariable
	variable *Member

	// KindRemoval
	removeType string
}

func newNode(kind Kind) *Node {
	return &Node{id: uuid.New(), kind: kind, enabled: true}
}

func (n *Node) addPin(p *Pin) *Pin {
	p.node = n
	if p.dir == Input {
		n.inputs = append(n.inputs, p)
	} else {
		n.outputs = append(n.outputs, p)
	}
	return p
}

// NewSettingNode creates a setting node of type t with an empty property bag.
func NewSettingNode(t *setting.Type) *Node {
	n := newNode(KindSetting)
	n.settings = setting.NewValues(t)
	n.addPin(newBranchPin(Input, PinIn))
	n.addPin(newBranchPin(Output, PinOut))
	return n
}

// NewSubgraphNode creates a node that references sub. Its pins mirror the
// referenced graph's Input and Output members.
func NewSubgraphNode(sub *Graph) *Node {
	n := newNode(KindSubgraph)
	n.subgraph = sub
	n.SyncPins()
	return n
}

// NewVariableNode creates an accessor for a variable member. The member must
// belong to the graph the node is added to.
func NewVariableNode(m *Member) *Node {
	n := newNode(KindVariable)
	n.variable = m
	n.addPin(newValuePin(Output, PinValue, m.Type()))
	return n
}

// NewRemovalNode creates a node that suppresses settings of targetType for
// everything upstream of it.
func NewRemovalNode(targetType string) *Node {
	n := newNode(KindRemoval)
	n.removeType = targetType
	n.addPin(newBranchPin(Input, PinIn))
	n.addPin(newBranchPin(Output, PinOut))
	return n
}

// NewRerouteNode creates a passthrough for a branch (branch=true) or a value
// of type ty.
func NewRerouteNode(branch bool, ty cty.Type) *Node {
	n := newNode(KindReroute)
	if branch {
		n.addPin(newBranchPin(Input, PinIn))
		n.addPin(newBranchPin(Output, PinOut))
	} else {
		n.addPin(newValuePin(Input, PinIn, ty))
		n.addPin(newValuePin(Output, PinOut, ty))
	}
	return n
}

// NewJoinNode creates a node whose single branch input accepts any number of
// connections. Every connected branch is followed, in connection order.
func NewJoinNode() *Node {
	n := newNode(KindJoin)
	in := n.addPin(newBranchPin(Input, PinIn))
	in.multiple = true
	n.addPin(newBranchPin(Output, PinOut))
	return n
}

// NewBranchNode creates a node that follows its True or False input depending
// on the boolean resolved from its Condition pin.
func NewBranchNode() *Node {
	n := newNode(KindBranch)
	n.addPin(newBranchPin(Input, PinTrue))
	n.addPin(newBranchPin(Input, PinFalse))
	n.addPin(newValuePin(Input, PinCondition, cty.Bool))
	n.addPin(newBranchPin(Output, PinOut))
	return n
}

// ID returns the node's stable identity.
func (n *Node) ID() uuid.UUID { return n.id }

// Kind returns the node variant.
func (n *Node) Kind() Kind { return n.kind }

// Graph returns the owning graph, or nil before the node is added.
func (n *Node) Graph() *Graph { return n.graph }

// Label is the document or display name of the node.
func (n *Node) Label() string { return n.label }

// SetLabel changes the display name.
func (n *Node) SetLabel(label string) { n.label = label }

// Enabled reports whether the node takes part in evaluation. Disabled nodes
// are passed through.
func (n *Node) Enabled() bool { return n.enabled }

// SetEnabled toggles the node.
func (n *Node) SetEnabled(enabled bool) {
	n.enabled = enabled
	if n.graph != nil {
		n.graph.touch()
	}
}

// Inputs returns the input pins in order.
func (n *Node) Inputs() []*Pin { return append([]*Pin(nil), n.inputs...) }

// Outputs returns the output pins in order.
func (n *Node) Outputs() []*Pin { return append([]*Pin(nil), n.outputs...) }

// InputPin returns the input pin with the given label, or nil.
func (n *Node) InputPin(label string) *Pin {
	return findPin(n.inputs, label)
}

// OutputPin returns the output pin with the given label, or nil.
func (n *Node) OutputPin(label string) *Pin {
	return findPin(n.outputs, label)
}

func findPin(pins []*Pin, label string) *Pin {
	for _, p := range pins {
		if p.label == label {
			return p
		}
	}
	return nil
}

// Settings returns the authored property bag of a setting node.
func (n *Node) Settings() *setting.Values { return n.settings }

// SettingType returns the setting type of a setting node, or nil.
func (n *Node) SettingType() *setting.Type {
	if n.settings == nil {
		return nil
	}
	return n.settings.Type()
}

// InstanceName disambiguates setting nodes of the same type that may
// legitimately appear more than once per branch.
func (n *Node) InstanceName() string { return n.instance }

// SetInstanceName sets the disambiguation name.
func (n *Node) SetInstanceName(name string) { n.instance = name }

// Subgraph returns the graph a subgraph node references.
func (n *Node) Subgraph() *Graph { return n.subgraph }

// Variable returns the member a variable node reads.
func (n *Node) Variable() *Member { return n.variable }

// RemovalType returns the setting type a removal node suppresses.
func (n *Node) RemovalType() string { return n.removeType }

// ExposeProperty adds a value input pin for a declared property of a setting
// node, so the property can be driven by a connection.
func (n *Node) ExposeProperty(name string) error {
	if n.kind != KindSetting {
		return fmt.Errorf("%s: only setting nodes expose properties", n)
	}
	p, ok := n.settings.Type().Property(name)
	if !ok {
		return fmt.Errorf("%s: no property %q to expose", n, name)
	}
	if n.InputPin(name) != nil {
		return nil
	}
	n.addPin(newValuePin(Input, name, p.ValueType()))
	if n.graph != nil {
		n.graph.touch()
	}
	return nil
}

// UnexposeProperty removes the pin of an exposed property and its edges.
func (n *Node) UnexposeProperty(name string) bool {
	pin := n.InputPin(name)
	if pin == nil || pin.branch {
		return false
	}
	for _, e := range pin.Edges() {
		e.from.detach(e)
		e.to.detach(e)
	}
	for i, p := range n.inputs {
		if p == pin {
			n.inputs = append(n.inputs[:i], n.inputs[i+1:]...)
			break
		}
	}
	if n.graph != nil {
		n.graph.touch()
	}
	return true
}

// IsExposed reports whether a property is driven by a value input pin.
func (n *Node) IsExposed(name string) bool {
	pin := n.InputPin(name)
	return pin != nil && !pin.branch
}

// SyncPins refreshes a subgraph node's pins from the referenced graph's
// members. Pins are matched by member identity so renamed members keep their
// edges; pins of removed members are dropped together with their edges.
func (n *Node) SyncPins() {
	if n.kind != KindSubgraph || n.subgraph == nil {
		return
	}
	n.inputs = syncMemberPins(n, n.inputs, n.subgraph.inputs, Input)
	n.outputs = syncMemberPins(n, n.outputs, n.subgraph.outputs, Output)
}

func syncMemberPins(n *Node, existing []*Pin, members []*Member, dir Direction) []*Pin {
	byMember := make(map[uuid.UUID]*Pin, len(existing))
	for _, p := range existing {
		byMember[p.memberID] = p
	}
	out := make([]*Pin, 0, len(members))
	for _, m := range members {
		p, ok := byMember[m.id]
		if ok {
			delete(byMember, m.id)
			p.label = m.name
		} else {
			p = m.newPin(dir)
			p.node = n
		}
		out = append(out, p)
	}
	for _, stale := range byMember {
		for _, e := range stale.Edges() {
			e.from.detach(e)
			e.to.detach(e)
		}
	}
	return out
}

// Scope is what a node needs from the evaluation in progress to decide which
// pins traversal continues through.
type Scope interface {
	// Enclosing returns the subgraph node whose graph is being walked, or nil
	// while walking the root graph.
	Enclosing() *Node
	// ResolveValue resolves the value arriving at a value input pin.
	ResolveValue(pin *Pin) (cty.Value, bool)
}

// PinsToFollow returns the branch pins traversal continues through after
// arriving at n via its output pin via.
//
// Setting, removal, reroute and join nodes forward all their branch inputs.
// An enabled subgraph node substitutes the referenced graph's Output pin for
// the same branch; a disabled one passes the branch through its own input of
// the same label. The Input node of a subgraph leads back out to the
// enclosing subgraph node.
func (n *Node) PinsToFollow(via *Pin, scope Scope) []*Pin {
	switch n.kind {
	case KindSubgraph:
		if n.enabled && n.subgraph != nil {
			if p := matchingPin(n.subgraph.outputNode.inputs, via); p != nil {
				return []*Pin{p}
			}
			return nil
		}
		if p := n.InputPin(via.label); p != nil && p.branch {
			return []*Pin{p}
		}
		return nil
	case KindInput:
		outer := scope.Enclosing()
		if outer == nil {
			return nil
		}
		if p := matchingPin(outer.inputs, via); p != nil {
			return []*Pin{p}
		}
		return nil
	case KindBranch:
		if !n.enabled {
			return []*Pin{n.InputPin(PinTrue)}
		}
		cond, ok := scope.ResolveValue(n.InputPin(PinCondition))
		if ok && !cond.IsNull() && cond.Type().Equals(cty.Bool) && cond.True() {
			return []*Pin{n.InputPin(PinTrue)}
		}
		return []*Pin{n.InputPin(PinFalse)}
	case KindOutput, KindVariable:
		return nil
	default:
		var pins []*Pin
		for _, p := range n.inputs {
			if p.branch {
				pins = append(pins, p)
			}
		}
		return pins
	}
}

// matchingPin finds the pin in pins that mirrors the same member as via,
// falling back to the label for pins that mirror no member.
func matchingPin(pins []*Pin, via *Pin) *Pin {
	if via.memberID != uuid.Nil {
		for _, p := range pins {
			if p.memberID == via.memberID {
				return p
			}
		}
	}
	return findPin(pins, via.label)
}

// VariableSource supplies variable values during evaluation.
type VariableSource interface {
	VariableValue(m *Member) (cty.Value, bool)
}

// ResolveOutputValue returns the value a node produces on one of its value
// output pins. Only variable accessors produce values on their own; every
// other node forwards values and reports false.
func (n *Node) ResolveOutputValue(pin *Pin, vars VariableSource) (cty.Value, bool) {
	if pin == nil || pin.node != n || pin.branch {
		return cty.NilVal, false
	}
	if n.kind == KindVariable && n.variable != nil {
		return vars.VariableValue(n.variable)
	}
	return cty.NilVal, false
}

func (n *Node) String() string {
	name := n.label
	if name == "" {
		name = n.id.String()[:8]
	}
	if n.kind == KindSetting {
		return fmt.Sprintf("%s(%s)", n.settings.Type().Name, name)
	}
	return fmt.Sprintf("%s(%s)", n.kind, name)
}
