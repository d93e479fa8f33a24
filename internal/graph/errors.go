package graph

import "errors"

var (
	// ErrNodeNotFound is returned when a node is nil or not owned by the graph.
	ErrNodeNotFound = errors.New("node not found in graph")
	// ErrPinNotFound is returned when a node has no pin with the given label.
	ErrPinNotFound = errors.New("pin not found")
	// ErrIncompatiblePins is returned for a connection the pins cannot carry.
	ErrIncompatiblePins = errors.New("incompatible pins")
	// ErrForeignNode is returned when adding a node that another graph owns.
	ErrForeignNode = errors.New("node belongs to another graph")
	// ErrNotUserAddable is returned when adding or removing a synthetic node.
	ErrNotUserAddable = errors.New("node kind cannot be added or removed by users")
	// ErrBuiltinMember is returned when renaming or deleting a built-in member.
	ErrBuiltinMember = errors.New("built-in member cannot be changed")
	// ErrMemberNotFound is returned for a member the graph does not own.
	ErrMemberNotFound = errors.New("member not found in graph")
	// ErrPinCycle is returned when a value chain loops back onto itself.
	ErrPinCycle = errors.New("circular pin connection")
)
