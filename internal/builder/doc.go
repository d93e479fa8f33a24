/*
Package builder is responsible for turning a loaded document into live
graphs. It acts as the bridge between the static document model (defined in
the 'config' package) and the flattening engine (the 'flatten' package).

The primary artifact produced by this package is a *Project: the setting
type registry extended with the document's own `setting` declarations, plus
one *graph.Graph per `graph` block.

Construction is a multi-phase process:

 1. Setting Types: document setting declarations are registered once their
    parent type is known, so declarations may appear in any order.

 2. Graph Shells: every graph is created with its inputs, outputs and
    variables. Subgraph nodes mirror these members, so all shells must
    exist before any node is built.

 3. Nodes: each node block becomes a graph node. Setting nodes receive their
    property overrides and exposed pins; subgraph and variable nodes resolve
    their references by name.

 4. Edges: `node.pin` references are resolved and connected with the graph's
    own compatibility checks.

Misspelled names are reported with a "did you mean" suggestion.
*/
package builder
