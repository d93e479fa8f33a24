package graph

import (
	"github.com/google/uuid"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Direction tells whether a pin receives or emits connections.
type Direction int

const (
	Input Direction = iota
	Output
)

func (d Direction) String() string {
	if d == Input {
		return "input"
	}
	return "output"
}

// Well-known pin labels.
const (
	PinIn        = "In"
	PinOut       = "Out"
	PinValue     = "Value"
	PinTrue      = "True"
	PinFalse     = "False"
	PinCondition = "Condition"
	// GlobalsBranch is the label of the built-in fallback branch.
	GlobalsBranch = "Globals"
)

// Pin belongs to exactly one node. Its label is unique within the node and
// direction.
type Pin struct {
	node     *Node
	dir      Direction
	label    string
	branch   bool
	typ      cty.Type
	multiple bool
	memberID uuid.UUID
	edges    []*Edge
}

func newBranchPin(dir Direction, label string) *Pin {
	return &Pin{dir: dir, label: label, branch: true, typ: cty.DynamicPseudoType, multiple: dir == Output}
}

func newValuePin(dir Direction, label string, ty cty.Type) *Pin {
	if ty == cty.NilType {
		ty = cty.DynamicPseudoType
	}
	return &Pin{dir: dir, label: label, typ: ty, multiple: dir == Output}
}

// Node returns the owning node.
func (p *Pin) Node() *Node { return p.node }

// Direction returns whether this is an input or an output pin.
func (p *Pin) Direction() Direction { return p.dir }

// Label returns the pin label.
func (p *Pin) Label() string { return p.label }

// IsBranch reports whether the pin carries graph structure rather than a value.
func (p *Pin) IsBranch() bool { return p.branch }

// Type returns the value type of a value pin. Branch pins report
// cty.DynamicPseudoType.
func (p *Pin) Type() cty.Type { return p.typ }

// AllowsMultiple reports whether the pin accepts more than one edge.
func (p *Pin) AllowsMultiple() bool { return p.multiple }

// MemberID returns the member a pin mirrors, or uuid.Nil.
func (p *Pin) MemberID() uuid.UUID { return p.memberID }

// Edges returns a copy of the edges attached to the pin, in connection order.
func (p *Pin) Edges() []*Edge {
	return append([]*Edge(nil), p.edges...)
}

// IsConnected reports whether any edge is attached.
func (p *Pin) IsConnected() bool { return len(p.edges) > 0 }

// Connected returns the pins at the other end of every edge.
func (p *Pin) Connected() []*Pin {
	out := make([]*Pin, 0, len(p.edges))
	for _, e := range p.edges {
		out = append(out, e.Other(p))
	}
	return out
}

func (p *Pin) String() string {
	if p.node == nil {
		return p.label
	}
	return p.node.String() + "." + p.label
}

// canConnect checks whether an edge from p (an output) to to (an input) is
// structurally and type compatible.
func (p *Pin) canConnect(to *Pin) bool {
	if p.dir != Output || to.dir != Input {
		return false
	}
	if p.node == to.node {
		return false
	}
	if p.branch != to.branch {
		return false
	}
	if p.branch {
		return true
	}
	return typesCompatible(p.typ, to.typ)
}

func typesCompatible(from, to cty.Type) bool {
	if from.Equals(to) || from.Equals(cty.DynamicPseudoType) || to.Equals(cty.DynamicPseudoType) {
		return true
	}
	return convert.GetConversion(from, to) != nil
}

func (p *Pin) detach(e *Edge) bool {
	for i, x := range p.edges {
		if x == e {
			p.edges = append(p.edges[:i], p.edges[i+1:]...)
			return true
		}
	}
	return false
}
