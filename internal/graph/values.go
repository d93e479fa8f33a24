package graph

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// ValueCandidate is one output pin in a value chain. Enclosing is the stack
// of subgraph nodes that were entered to reach it, outermost first.
type ValueCandidate struct {
	Pin       *Pin
	Enclosing []*Node
}

// CollectValueChain follows the connection of a value input pin upstream
// through reroutes, subgraph outputs and subgraph inputs. It returns every
// output pin of an enabled node whose type fits pin, nearest first.
//
// enclosing is the stack of subgraph nodes the walk starts inside of; it is
// needed to leave a subgraph through its Input node.
func CollectValueChain(pin *Pin, enclosing []*Node) ([]ValueCandidate, error) {
	if pin == nil || pin.branch || pin.dir != Input {
		return nil, fmt.Errorf("%w: %v is not a value input", ErrPinNotFound, pin)
	}
	want := pin.typ
	path := append([]*Node(nil), enclosing...)
	seen := mapset.NewThreadUnsafeSet[*Pin]()

	var out []ValueCandidate
	cursor := pin
	for cursor != nil && len(cursor.edges) > 0 {
		src := cursor.edges[0].from
		if !seen.Add(src) {
			return out, fmt.Errorf("%w at %s", ErrPinCycle, src)
		}
		node := src.node
		if node.enabled && typesCompatible(src.typ, want) {
			out = append(out, ValueCandidate{Pin: src, Enclosing: append([]*Node(nil), path...)})
		}

		cursor = nil
		switch node.kind {
		case KindReroute:
			cursor = node.InputPin(PinIn)
		case KindSubgraph:
			if node.enabled && node.subgraph != nil {
				path = append(path, node)
				cursor = matchingPin(node.subgraph.outputNode.inputs, src)
			}
		case KindInput:
			if len(path) > 0 {
				outer := path[len(path)-1]
				path = path[:len(path)-1]
				cursor = matchingPin(outer.inputs, src)
			}
		}
		if cursor != nil && cursor.branch {
			cursor = nil
		}
	}
	return out, nil
}

// ResolveValueChain resolves the value arriving at a value input pin. The
// collected chain is tried from its most upstream candidate towards pin and
// the first candidate that produces a value wins. The value is converted to
// the pin's type.
func ResolveValueChain(pin *Pin, enclosing []*Node, vars VariableSource) (cty.Value, bool, error) {
	chain, err := CollectValueChain(pin, enclosing)
	if err != nil {
		return cty.NilVal, false, err
	}
	for i := len(chain) - 1; i >= 0; i-- {
		c := chain[i]
		v, ok := c.Pin.node.ResolveOutputValue(c.Pin, vars)
		if !ok {
			continue
		}
		conv, err := convert.Convert(v, pin.typ)
		if err != nil {
			continue
		}
		return conv, true, nil
	}
	return cty.NilVal, false, nil
}
