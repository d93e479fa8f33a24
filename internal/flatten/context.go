package flatten

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/specialistvlad/moviegraph/internal/ctxlog"
	"github.com/specialistvlad/moviegraph/internal/graph"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// variables resolves variable members for one flatten call. Global variables
// are computed from the traversal context once, before any walk starts.
type variables struct {
	tc      graph.TraversalContext
	globals map[graph.GlobalKind]cty.Value
}

func newVariables(tc graph.TraversalContext) *variables {
	v := &variables{tc: tc, globals: make(map[graph.GlobalKind]cty.Value, len(graph.AllGlobals))}
	for _, k := range graph.AllGlobals {
		v.globals[k] = tc.GlobalValue(k)
	}
	return v
}

// VariableValue implements graph.VariableSource. User variables take their
// value from the traversal context overrides by name, else from the graph.
func (v *variables) VariableValue(m *graph.Member) (cty.Value, bool) {
	if k := m.Global(); k != graph.GlobalNone {
		val, ok := v.globals[k]
		return val, ok
	}
	if val, ok := v.tc.Variables[m.Name()]; ok {
		if conv, err := convert.Convert(val, m.Type()); err == nil {
			return conv, true
		}
	}
	def := m.Default()
	if def.IsNull() {
		return cty.NilVal, false
	}
	return def, true
}

// graphSets tracks the nodes of one graph occurrence: those on the current
// recursion path, and for every fully walked node the removal types that
// were active each time it was walked.
type graphSets struct {
	onPath mapset.Set[*graph.Node]
	done   map[*graph.Node][]mapset.Set[string]
}

func newGraphSets() *graphSets {
	return &graphSets{
		onPath: mapset.NewThreadUnsafeSet[*graph.Node](),
		done:   make(map[*graph.Node][]mapset.Set[string]),
	}
}

// walked reports whether n was already walked with no removal active that
// is not active now. Such a walk reached everything this one could.
func (s *graphSets) walked(n *graph.Node, suppressed mapset.Set[string]) bool {
	for _, prev := range s.done[n] {
		if prev.IsSubset(suppressed) {
			return true
		}
	}
	return false
}

func (s *graphSets) markWalked(n *graph.Node, suppressed mapset.Set[string]) {
	s.done[n] = append(s.done[n], suppressed)
}

// mergeKey identifies a setting node within one subgraph occurrence.
type mergeKey struct {
	node       *graph.Node
	occurrence string
}

// evalContext is the state of one walk over one branch. It is created per
// pass and never shared between goroutines.
type evalContext struct {
	logger *slog.Logger
	root   *graph.Graph
	vars   *variables
	branch *BranchConfig
	merged int

	visited    map[*graph.Graph]*graphSets
	mergedOnce mapset.Set[mergeKey]
	suppressed []string
	subgraphs  []*graph.Node

	err error
}

func newEvalContext(ctx context.Context, root *graph.Graph, vars *variables, branch *BranchConfig) *evalContext {
	return &evalContext{
		logger:     ctxlog.FromContext(ctx),
		root:       root,
		vars:       vars,
		branch:     branch,
		visited:    make(map[*graph.Graph]*graphSets),
		mergedOnce: mapset.NewThreadUnsafeSet[mergeKey](),
	}
}

func (c *evalContext) sets(g *graph.Graph) *graphSets {
	s, ok := c.visited[g]
	if !ok {
		s = newGraphSets()
		c.visited[g] = s
	}
	return s
}

// enterOccurrence gives g fresh visited sets for a new subgraph occurrence
// and returns a function restoring the previous ones.
func (c *evalContext) enterOccurrence(g *graph.Graph) func() {
	prev, had := c.visited[g]
	c.visited[g] = newGraphSets()
	return func() {
		if had {
			c.visited[g] = prev
		} else {
			delete(c.visited, g)
		}
	}
}

// fail records the first error; later ones are dropped.
func (c *evalContext) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

func (c *evalContext) isSuppressed(typeName string) bool {
	for _, s := range c.suppressed {
		if s == typeName {
			return true
		}
	}
	return false
}

// suppression snapshots the removal types active on the current path.
func (c *evalContext) suppression() mapset.Set[string] {
	return mapset.NewThreadUnsafeSet(c.suppressed...)
}

// claimMerge reports whether n has not been merged yet in the current
// subgraph occurrence, and records it. A node re-walked because a removal
// hid it on an earlier path must not contribute twice.
func (c *evalContext) claimMerge(n *graph.Node) bool {
	ids := make([]string, len(c.subgraphs))
	for i, s := range c.subgraphs {
		ids[i] = s.ID().String()
	}
	return c.mergedOnce.Add(mergeKey{node: n, occurrence: strings.Join(ids, "/")})
}

func (c *evalContext) pushSuppression(typeName string) func() {
	c.suppressed = append(c.suppressed, typeName)
	return func() { c.suppressed = c.suppressed[:len(c.suppressed)-1] }
}

// Enclosing implements graph.Scope.
func (c *evalContext) Enclosing() *graph.Node {
	if len(c.subgraphs) == 0 {
		return nil
	}
	return c.subgraphs[len(c.subgraphs)-1]
}

// ResolveValue implements graph.Scope. A failing chain is logged and treated
// as unresolved.
func (c *evalContext) ResolveValue(pin *graph.Pin) (cty.Value, bool) {
	if pin == nil {
		return cty.NilVal, false
	}
	val, ok, err := graph.ResolveValueChain(pin, c.subgraphs, c.vars)
	if err != nil {
		c.logger.Warn("Value resolution aborted", "pin", pin.String(), "error", err)
		return cty.NilVal, false
	}
	return val, ok
}

// checkSubgraph reports a cycle when g is the root graph or is already being
// expanded by a subgraph node on the stack.
func (c *evalContext) checkSubgraph(n *graph.Node) error {
	g := n.Subgraph()
	cyclic := g == c.root
	for _, s := range c.subgraphs {
		if s.Subgraph() == g {
			cyclic = true
		}
	}
	if !cyclic {
		return nil
	}
	stack := make([]string, 0, len(c.subgraphs)+1)
	for _, s := range c.subgraphs {
		stack = append(stack, fmt.Sprintf("%s -> %s", s, s.Subgraph().Name()))
	}
	stack = append(stack, fmt.Sprintf("%s -> %s", n, g.Name()))
	return fmt.Errorf("%w: graph %q expands itself; subgraph stack: [%s]", ErrSubgraphCycle, g.Name(), strings.Join(stack, ", "))
}

func nodeCycleError(n *graph.Node, onPath mapset.Set[*graph.Node]) error {
	names := make([]string, 0, onPath.Cardinality())
	for _, x := range onPath.ToSlice() {
		names = append(names, x.String())
	}
	sort.Strings(names)
	return fmt.Errorf("%w: %s reached again in %s; visited: [%s]", ErrNodeCycle, n, n.Graph(), strings.Join(names, ", "))
}
