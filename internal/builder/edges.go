package builder

import (
	"fmt"
	"sort"

	"github.com/specialistvlad/moviegraph/internal/config"
	"github.com/specialistvlad/moviegraph/internal/graph"
	"github.com/specialistvlad/moviegraph/internal/pinref"
	"github.com/specialistvlad/moviegraph/internal/registry"
)

// addEdges connects every edge block in order.
func (b *graphBuilder) addEdges(edges []*config.Edge) error {
	for _, e := range edges {
		if err := b.addEdge(e); err != nil {
			return fmt.Errorf("edge %s -> %s: %w", e.From, e.To, err)
		}
	}
	return nil
}

func (b *graphBuilder) addEdge(e *config.Edge) error {
	fromRef, err := pinref.Parse(e.From)
	if err != nil {
		return err
	}
	toRef, err := pinref.Parse(e.To)
	if err != nil {
		return err
	}
	from, err := b.node(fromRef)
	if err != nil {
		return err
	}
	to, err := b.node(toRef)
	if err != nil {
		return err
	}

	fromLabel := fromRef.WithDefault(defaultPin(from.Outputs(), graph.PinOut))
	if from.OutputPin(fromLabel) == nil {
		return unknownPin(from, fromLabel, from.Outputs())
	}
	toDefault := graph.PinIn
	if to == b.graph.OutputNode() {
		toDefault = graph.GlobalsBranch
	}
	toLabel := toRef.WithDefault(defaultPin(to.Inputs(), toDefault))
	if to.InputPin(toLabel) == nil {
		return unknownPin(to, toLabel, to.Inputs())
	}

	_, err = b.graph.AddEdge(from, fromLabel, to, toLabel)
	return err
}

// defaultPin is the label used when a reference names no pin: the only pin
// when there is exactly one, fallback otherwise.
func defaultPin(pins []*graph.Pin, fallback string) string {
	if len(pins) == 1 {
		return pins[0].Label()
	}
	return fallback
}

func unknownPin(n *graph.Node, label string, pins []*graph.Pin) error {
	labels := make([]string, len(pins))
	for i, p := range pins {
		labels[i] = p.Label()
	}
	if suggestion := registry.NameSuggestion(label, labels); suggestion != "" {
		return fmt.Errorf("%s has no pin %q, did you mean %q?", n, label, suggestion)
	}
	return fmt.Errorf("%s has no pin %q", n, label)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
