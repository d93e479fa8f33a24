// Package graph holds the node-graph data model that artists author: nodes
// with typed input and output pins, the edges between them, and the
// graph-level members (inputs, outputs and variables).
//
// # Structure
//
// Every Graph owns exactly one synthetic Input node and one synthetic Output
// node. The Input node carries one output pin per Input member and the
// Output node one input pin per Output member. Both always carry the built-in
// "Globals" branch pin, which cannot be removed.
//
// Pins are either branch pins, which carry graph structure and are what the
// flattening engine walks, or value pins, which carry a cty.Value that is
// resolved by following value connections upstream (see ResolveValueChain).
//
// # Identity
//
// Graphs, nodes and members carry a uuid that never changes. Pins that mirror
// a member remember the member's uuid, so renaming a member relabels its pins
// without breaking the edges attached to them.
//
// # Thread-Safety
//
// A Graph is single-writer. Structural edits must be serialized by the
// caller; concurrent readers (e.g. several flatten calls) are safe as long as
// no edit runs at the same time. Revision is bumped on every edit so that
// observers can poll for changes.
package graph
