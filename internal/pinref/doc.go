/*
Package pinref parses the pin references graph documents use to describe
edges, in the canonical format `node.pin`.

The node segment is a node name from the same graph, or one of the reserved
names `input` and `output` for the graph's boundary nodes. The pin segment is
the pin label and may be omitted, e.g. `camera` stands for the node's
default pin in whatever direction the edge needs.
*/
package pinref
