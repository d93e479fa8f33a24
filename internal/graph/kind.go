package graph

import "fmt"

// Kind enumerates the node variants the flattening engine distinguishes.
type Kind int

const (
	KindSetting  Kind = iota // carries overridable properties
	KindInput                // synthetic graph entry
	KindOutput               // synthetic graph exit, one branch per pin
	KindSubgraph             // references another whole graph
	KindVariable             // produces the value of a variable member
	KindRemoval              // suppresses a setting type upstream of itself
	KindReroute              // forwards a single branch or value
	KindJoin                 // merges several branches into one
	KindBranch               // follows True or False depending on a condition
)

func (k Kind) String() string {
	switch k {
	case KindSetting:
		return "setting"
	case KindInput:
		return "input"
	case KindOutput:
		return "output"
	case KindSubgraph:
		return "subgraph"
	case KindVariable:
		return "variable"
	case KindRemoval:
		return "removal"
	case KindReroute:
		return "reroute"
	case KindJoin:
		return "join"
	case KindBranch:
		return "branch"
	default:
		return "unknown"
	}
}

// ParseKind converts a document spelling into a user-addable Kind.
func ParseKind(s string) (Kind, error) {
	for k := KindSetting; k <= KindBranch; k++ {
		if k.String() == s && k.UserAddable() {
			return k, nil
		}
	}
	return KindSetting, fmt.Errorf("unknown node kind %q", s)
}

// UserAddable reports whether nodes of this kind may be added to or removed
// from a graph. The Input and Output nodes are created with the graph.
func (k Kind) UserAddable() bool {
	return k != KindInput && k != KindOutput
}
