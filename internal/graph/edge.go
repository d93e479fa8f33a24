package graph

import "fmt"

// Edge connects one output pin to one input pin. Edges have no owner; both
// pins reference them so they can be walked in either direction.
type Edge struct {
	from *Pin
	to   *Pin
}

// From returns the output pin the edge starts at.
func (e *Edge) From() *Pin { return e.from }

// To returns the input pin the edge ends at.
func (e *Edge) To() *Pin { return e.to }

// Other returns the end of the edge that is not p.
func (e *Edge) Other(p *Pin) *Pin {
	if e.from == p {
		return e.to
	}
	return e.from
}

func (e *Edge) String() string {
	return fmt.Sprintf("%s -> %s", e.from, e.to)
}

func (g *Graph) owns(n *Node) bool {
	return n != nil && n.graph == g
}

// AddEdge connects fromNode's output pin fromLabel to toNode's input pin
// toLabel. Nothing is mutated when either node or pin is missing or the pins
// are incompatible. When the destination pin does not allow multiple edges,
// its existing edge is broken first and displaced reports true.
func (g *Graph) AddEdge(fromNode *Node, fromLabel string, toNode *Node, toLabel string) (displaced bool, err error) {
	if !g.owns(fromNode) {
		return false, fmt.Errorf("%w: source node", ErrNodeNotFound)
	}
	if !g.owns(toNode) {
		return false, fmt.Errorf("%w: destination node", ErrNodeNotFound)
	}
	fromNode.SyncPins()
	toNode.SyncPins()

	from := fromNode.OutputPin(fromLabel)
	if from == nil {
		return false, fmt.Errorf("%w: %s has no output pin %q", ErrPinNotFound, fromNode, fromLabel)
	}
	to := toNode.InputPin(toLabel)
	if to == nil {
		return false, fmt.Errorf("%w: %s has no input pin %q", ErrPinNotFound, toNode, toLabel)
	}
	if !from.canConnect(to) {
		return false, fmt.Errorf("%w: cannot connect %s (%s) to %s (%s)", ErrIncompatiblePins, from, describePin(from), to, describePin(to))
	}
	for _, e := range to.edges {
		if e.from == from {
			return false, nil
		}
	}

	if !to.multiple && len(to.edges) > 0 {
		for _, e := range to.Edges() {
			g.breakEdge(e)
		}
		displaced = true
	}

	e := &Edge{from: from, to: to}
	from.edges = append(from.edges, e)
	to.edges = append(to.edges, e)
	g.touch()
	return displaced, nil
}

func describePin(p *Pin) string {
	if p.branch {
		return "branch"
	}
	return p.typ.FriendlyName()
}

func (g *Graph) breakEdge(e *Edge) {
	e.from.detach(e)
	e.to.detach(e)
}

// RemoveEdge breaks the edge between the two pins, if any.
func (g *Graph) RemoveEdge(fromNode *Node, fromLabel string, toNode *Node, toLabel string) bool {
	if !g.owns(fromNode) || !g.owns(toNode) {
		return false
	}
	from := fromNode.OutputPin(fromLabel)
	to := toNode.InputPin(toLabel)
	if from == nil || to == nil {
		return false
	}
	for _, e := range from.edges {
		if e.to == to {
			g.breakEdge(e)
			g.touch()
			return true
		}
	}
	return false
}

func (g *Graph) removePinEdges(p *Pin) bool {
	if p == nil || len(p.edges) == 0 {
		return false
	}
	for _, e := range p.Edges() {
		g.breakEdge(e)
	}
	return true
}

func (g *Graph) removeEdges(pins []*Pin) bool {
	changed := false
	for _, p := range pins {
		if g.removePinEdges(p) {
			changed = true
		}
	}
	if changed {
		g.touch()
	}
	return changed
}

// RemoveInboundEdges breaks every edge into the node's input pin label.
func (g *Graph) RemoveInboundEdges(n *Node, label string) bool {
	if !g.owns(n) {
		return false
	}
	return g.removeEdges([]*Pin{n.InputPin(label)})
}

// RemoveOutboundEdges breaks every edge out of the node's output pin label.
func (g *Graph) RemoveOutboundEdges(n *Node, label string) bool {
	if !g.owns(n) {
		return false
	}
	return g.removeEdges([]*Pin{n.OutputPin(label)})
}

// RemoveAllInboundEdges breaks every edge into any input pin of the node.
func (g *Graph) RemoveAllInboundEdges(n *Node) bool {
	if !g.owns(n) {
		return false
	}
	return g.removeEdges(n.inputs)
}

// RemoveAllOutboundEdges breaks every edge out of any output pin of the node.
func (g *Graph) RemoveAllOutboundEdges(n *Node) bool {
	if !g.owns(n) {
		return false
	}
	return g.removeEdges(n.outputs)
}
