package graph

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// VisitFunc is called for every node reached by a walk. Returning false stops
// the walk from descending past that node; the rest of the walk continues.
type VisitFunc func(n *Node) bool

// VisitUpstream walks depth-first from n's branch input pins towards the
// nodes feeding them. Every node is reported at most once per call; reaching
// an already seen node again (a diamond) simply ends that path.
func VisitUpstream(n *Node, fn VisitFunc) {
	visit(n, Input, fn)
}

// VisitDownstream walks depth-first from n's branch output pins towards the
// nodes they feed, with the same rules as VisitUpstream.
func VisitDownstream(n *Node, fn VisitFunc) {
	visit(n, Output, fn)
}

func visit(start *Node, dir Direction, fn VisitFunc) {
	if start == nil {
		return
	}
	seen := mapset.NewThreadUnsafeSet[*Node](start)
	var walk func(n *Node)
	walk = func(n *Node) {
		pins := n.inputs
		if dir == Output {
			pins = n.outputs
		}
		for _, p := range pins {
			if !p.branch {
				continue
			}
			for _, e := range p.edges {
				next := e.Other(p).node
				if !seen.Add(next) {
					continue
				}
				if fn(next) {
					walk(next)
				}
			}
		}
	}
	walk(start)
}

// BranchesOf returns the labels of the output branches n contributes to, in
// Output pin order.
func (g *Graph) BranchesOf(n *Node) []string {
	if !g.owns(n) {
		return nil
	}
	reached := mapset.NewThreadUnsafeSet[*Node](n)
	VisitDownstream(n, func(x *Node) bool {
		reached.Add(x)
		return x.kind != KindOutput
	})

	var out []string
	for _, p := range g.outputNode.inputs {
		if !p.branch {
			continue
		}
		for _, e := range p.edges {
			if reached.Contains(e.from.node) {
				out = append(out, p.label)
				break
			}
		}
	}
	return out
}

// Disconnected returns the nodes with branch pins that no output branch
// reaches. They take no part in flattening.
func (g *Graph) Disconnected() []*Node {
	reached := mapset.NewThreadUnsafeSet[*Node](g.outputNode)
	VisitUpstream(g.outputNode, func(x *Node) bool {
		reached.Add(x)
		return true
	})

	var out []*Node
	for _, n := range g.nodes {
		if n.kind == KindInput || n.kind == KindOutput || reached.Contains(n) {
			continue
		}
		if hasBranchPin(n) {
			out = append(out, n)
		}
	}
	return out
}

func hasBranchPin(n *Node) bool {
	for _, p := range n.inputs {
		if p.branch {
			return true
		}
	}
	for _, p := range n.outputs {
		if p.branch {
			return true
		}
	}
	return false
}
