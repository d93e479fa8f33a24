package flatten

import "errors"

var (
	// ErrNodeCycle is returned when a branch leads back into a node that is
	// still being walked.
	ErrNodeCycle = errors.New("circular node connection")
	// ErrSubgraphCycle is returned when a subgraph directly or transitively
	// contains itself.
	ErrSubgraphCycle = errors.New("circular subgraph reference")
	// ErrTraversal is returned when the walk reaches a pin or node it cannot
	// continue through.
	ErrTraversal = errors.New("invalid traversal")
)
