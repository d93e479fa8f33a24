package graph

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/zclconf/go-cty/cty"
)

// Graph owns its nodes and members. See the package documentation for the
// structural invariants.
type Graph struct {
	id   uuid.UUID
	name string

	nodes      []*Node
	inputNode  *Node
	outputNode *Node

	inputs    []*Member
	outputs   []*Member
	variables []*Member

	revision uint64
}

// New creates a graph with its synthetic Input and Output nodes and the
// built-in Globals input and output.
func New(name string) *Graph {
	g := &Graph{id: uuid.New(), name: name}

	g.inputNode = newNode(KindInput)
	g.inputNode.label = "Input"
	g.inputNode.graph = g
	g.outputNode = newNode(KindOutput)
	g.outputNode.label = "Output"
	g.outputNode.graph = g
	g.nodes = append(g.nodes, g.inputNode, g.outputNode)

	g.addMember(&Member{kind: MemberInput, name: GlobalsBranch, branch: true, builtin: true, typ: cty.DynamicPseudoType})
	g.addMember(&Member{kind: MemberOutput, name: GlobalsBranch, branch: true, builtin: true, typ: cty.DynamicPseudoType})
	g.revision = 0
	return g
}

// ID returns the graph's stable identity.
func (g *Graph) ID() uuid.UUID { return g.id }

// Name returns the graph's name.
func (g *Graph) Name() string { return g.name }

func (g *Graph) String() string { return fmt.Sprintf("graph(%s)", g.name) }

// Revision is bumped by every structural edit.
func (g *Graph) Revision() uint64 { return g.revision }

func (g *Graph) touch() { g.revision++ }

// InputNode returns the synthetic entry node.
func (g *Graph) InputNode() *Node { return g.inputNode }

// OutputNode returns the synthetic exit node.
func (g *Graph) OutputNode() *Node { return g.outputNode }

// Nodes returns every node in insertion order, synthetic nodes included.
func (g *Graph) Nodes() []*Node { return append([]*Node(nil), g.nodes...) }

// Node looks a node up by identity.
func (g *Graph) Node(id uuid.UUID) *Node {
	for _, n := range g.nodes {
		if n.id == id {
			return n
		}
	}
	return nil
}

// NodeByLabel returns the first node with the given label.
func (g *Graph) NodeByLabel(label string) *Node {
	for _, n := range g.nodes {
		if n.label == label {
			return n
		}
	}
	return nil
}

// Branches returns the labels of the Output node's branch pins, Globals
// first.
func (g *Graph) Branches() []string {
	var out []string
	for _, p := range g.outputNode.inputs {
		if p.branch {
			out = append(out, p.label)
		}
	}
	return out
}

// AddNode takes ownership of n. Synthetic kinds and nodes owned by another
// graph are rejected, as are accessors of variables this graph does not own.
func (g *Graph) AddNode(n *Node) error {
	if n == nil {
		return ErrNodeNotFound
	}
	if !n.kind.UserAddable() {
		return fmt.Errorf("%w: %s", ErrNotUserAddable, n.kind)
	}
	if n.graph == g {
		return nil
	}
	if n.graph != nil {
		return fmt.Errorf("%w: %s is owned by %s", ErrForeignNode, n, n.graph)
	}
	if n.kind == KindVariable && !g.ownsMember(n.variable) {
		return fmt.Errorf("%w: %s reads a variable of another graph", ErrMemberNotFound, n)
	}
	n.graph = g
	n.SyncPins()
	g.nodes = append(g.nodes, n)
	g.touch()
	return nil
}

// RemoveNode detaches all of the node's edges and drops it from the graph.
func (g *Graph) RemoveNode(n *Node) error {
	if n == nil || !g.owns(n) {
		return ErrNodeNotFound
	}
	if !n.kind.UserAddable() {
		return fmt.Errorf("%w: %s", ErrNotUserAddable, n.kind)
	}
	for _, p := range n.inputs {
		g.removePinEdges(p)
	}
	for _, p := range n.outputs {
		g.removePinEdges(p)
	}
	for i, x := range g.nodes {
		if x == n {
			g.nodes = append(g.nodes[:i], g.nodes[i+1:]...)
			break
		}
	}
	n.graph = nil
	g.touch()
	return nil
}

// SyncSubgraphs refreshes the pins of every subgraph node after the
// referenced graphs' members changed.
func (g *Graph) SyncSubgraphs() {
	for _, n := range g.nodes {
		if n.kind == KindSubgraph {
			n.SyncPins()
		}
	}
}
