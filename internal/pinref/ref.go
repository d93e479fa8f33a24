package pinref

import (
	"fmt"
	"regexp"
	"strings"
)

// Reserved node names that address a graph's boundary nodes.
const (
	InputNode  = "input"
	OutputNode = "output"
)

// nodeRegex matches the node segment of a reference.
var nodeRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_-]*$`)

// Ref addresses one pin of one node within a graph.
type Ref struct {
	Node string
	// Pin is the pin label, or "" for the node's default pin.
	Pin string
}

// Parse creates a Ref from its canonical string representation. Everything
// after the first dot is the pin label, so labels may contain dots and spaces.
func Parse(raw string) (*Ref, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("pin reference cannot be empty")
	}

	node, pin, hasPin := strings.Cut(raw, ".")
	if !nodeRegex.MatchString(node) {
		return nil, fmt.Errorf("invalid node name %q in pin reference %q", node, raw)
	}
	if hasPin {
		pin = strings.TrimSpace(pin)
		if pin == "" {
			return nil, fmt.Errorf("pin reference %q has an empty pin label", raw)
		}
	}
	return &Ref{Node: node, Pin: pin}, nil
}

// String serializes the Ref into its canonical form.
func (r *Ref) String() string {
	if r == nil {
		return ""
	}
	if r.Pin == "" {
		return r.Node
	}
	return r.Node + "." + r.Pin
}

// IsBoundary reports whether the reference points at the graph's Input or
// Output node.
func (r *Ref) IsBoundary() bool {
	return r.Node == InputNode || r.Node == OutputNode
}

// WithDefault returns the pin label, or def when the reference has none.
func (r *Ref) WithDefault(def string) string {
	if r.Pin == "" {
		return def
	}
	return r.Pin
}

// Equal checks two references for equality.
func (r *Ref) Equal(other *Ref) bool {
	if r == nil || other == nil {
		return r == other
	}
	return *r == *other
}
