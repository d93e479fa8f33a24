package flatten

import (
	"context"
	"fmt"
	"time"

	"github.com/specialistvlad/moviegraph/internal/ctxlog"
	"github.com/specialistvlad/moviegraph/internal/graph"
)

// Engine flattens graphs into evaluated configs. An Engine holds no per-call
// state; concurrent Flatten calls are safe as long as nobody edits the graph
// meanwhile.
type Engine struct {
	metrics *Metrics
}

// NewEngine creates an engine reporting to metrics, which may be nil.
func NewEngine(metrics *Metrics) *Engine {
	return &Engine{metrics: metrics}
}

// Flatten is a convenience wrapper around an Engine without metrics.
func Flatten(ctx context.Context, g *graph.Graph, tc graph.TraversalContext) (*EvaluatedConfig, error) {
	return NewEngine(nil).Flatten(ctx, g, tc)
}

// Flatten resolves every output branch of g for the given traversal context.
//
// Each branch is walked from its Output pin towards the graph inputs, and
// every non-Globals branch is then walked again from the Globals pin with a
// separate context, folding onto the same resolved instances. Properties no
// node overrides take their type default. The first structural problem ends
// the call with an error and no config.
func (e *Engine) Flatten(ctx context.Context, g *graph.Graph, tc graph.TraversalContext) (*EvaluatedConfig, error) {
	logger := ctxlog.FromContext(ctx)
	start := time.Now()
	merged := 0

	cfg, err := e.flatten(ctx, g, tc, &merged)
	elapsed := time.Since(start)
	if err != nil {
		e.metrics.observe("error", elapsed.Seconds(), merged)
		logger.Debug("Flatten failed", "graph", g.Name(), "error", err)
		return nil, err
	}
	e.metrics.observe("ok", elapsed.Seconds(), merged)

	if !cfg.HasRenderLayer() {
		logger.Warn("Flattened graph has no render layer, nothing will be rendered", "graph", g.Name())
	}
	logger.Debug("Flatten finished", "graph", g.Name(), "branches", len(cfg.order), "nodesMerged", merged, "duration", elapsed)
	return cfg, nil
}

func (e *Engine) flatten(ctx context.Context, g *graph.Graph, tc graph.TraversalContext, merged *int) (*EvaluatedConfig, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: no graph", ErrTraversal)
	}
	vars := newVariables(tc)
	cfg := newEvaluatedConfig(g)
	out := g.OutputNode()
	globals := out.InputPin(graph.GlobalsBranch)

	for _, pin := range out.Inputs() {
		if !pin.IsBranch() {
			continue
		}
		branch := cfg.addBranch(pin.Label())
		ctxlog.FromContext(ctx).Debug("Flattening branch", "graph", g.Name(), "branch", branch.Name())

		passes := []*graph.Pin{pin}
		if pin.Label() != graph.GlobalsBranch && globals != nil {
			passes = append(passes, globals)
		}
		for _, start := range passes {
			c := newEvalContext(ctx, g, vars, branch)
			c.followPin(start)
			*merged += c.merged
			if c.err != nil {
				return nil, fmt.Errorf("branch %q: %w", branch.Name(), c.err)
			}
		}
		branch.fillDefaults()
	}
	return cfg, nil
}

// followPin walks every edge arriving at input pin p.
func (c *evalContext) followPin(p *graph.Pin) {
	if p == nil {
		c.fail(fmt.Errorf("%w: missing pin", ErrTraversal))
		return
	}
	if !p.IsBranch() {
		c.fail(fmt.Errorf("%w: %s is a value pin, a branch pin is required", ErrTraversal, p))
		return
	}
	for _, e := range p.Edges() {
		c.visit(e.From())
		if c.err != nil {
			return
		}
	}
}

// visit handles the node owning output pin via and continues upstream.
func (c *evalContext) visit(via *graph.Pin) {
	n := via.Node()
	if n == nil || n.Graph() == nil {
		c.fail(fmt.Errorf("%w: %s is not part of a graph", ErrTraversal, via))
		return
	}
	sets := c.sets(n.Graph())
	if sets.onPath.Contains(n) {
		c.fail(nodeCycleError(n, sets.onPath))
		return
	}
	suppressed := c.suppression()
	if sets.walked(n, suppressed) {
		return
	}
	sets.onPath.Add(n)
	defer func() {
		sets.onPath.Remove(n)
		sets.markWalked(n, suppressed)
	}()

	switch n.Kind() {
	case graph.KindSetting:
		if n.Enabled() && !c.isSuppressed(n.SettingType().Name) && c.claimMerge(n) {
			c.logger.Debug("Merging setting node", "node", n.String(), "branch", c.branch.Name())
			dst := c.branch.slot(n.SettingType(), n.InstanceName())
			if err := c.mergeNode(n, dst.values); err != nil {
				c.fail(err)
				return
			}
			c.merged++
		}
	case graph.KindRemoval:
		if n.Enabled() && n.RemovalType() != "" {
			defer c.pushSuppression(n.RemovalType())()
		}
	case graph.KindSubgraph:
		if n.Enabled() && n.Subgraph() != nil {
			c.descend(n, via)
			return
		}
	case graph.KindInput:
		c.leave(n, via)
		return
	}

	for _, p := range n.PinsToFollow(via, c) {
		c.followPin(p)
		if c.err != nil {
			return
		}
	}
}

// descend continues the branch inside the graph a subgraph node references.
func (c *evalContext) descend(n *graph.Node, via *graph.Pin) {
	if err := c.checkSubgraph(n); err != nil {
		c.fail(err)
		return
	}
	pins := n.PinsToFollow(via, c)

	restore := c.enterOccurrence(n.Subgraph())
	c.subgraphs = append(c.subgraphs, n)
	defer func() {
		c.subgraphs = c.subgraphs[:len(c.subgraphs)-1]
		restore()
	}()

	for _, p := range pins {
		c.followPin(p)
		if c.err != nil {
			return
		}
	}
}

// leave continues from a subgraph's Input node out to the pins of the
// subgraph node that encloses it. Outside, that node is no longer on the
// subgraph stack.
func (c *evalContext) leave(n *graph.Node, via *graph.Pin) {
	pins := n.PinsToFollow(via, c)
	if len(c.subgraphs) == 0 {
		return
	}
	top := c.subgraphs[len(c.subgraphs)-1]
	c.subgraphs = c.subgraphs[:len(c.subgraphs)-1]
	defer func() { c.subgraphs = append(c.subgraphs, top) }()

	for _, p := range pins {
		c.followPin(p)
		if c.err != nil {
			return
		}
	}
}
