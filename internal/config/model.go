package config

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/zclconf/go-cty/cty"
)

// SupportedFormat is the range of document format versions this build reads.
const SupportedFormat = ">= 1.0, < 2.0"

// Document is the unified, format-agnostic representation of every loaded
// graph document: setting type declarations plus the graphs themselves.
type Document struct {
	Settings []*SettingDefinition
	Graphs   []*Graph
}

// Merge appends the contents of other to d.
func (d *Document) Merge(other *Document) {
	d.Settings = append(d.Settings, other.Settings...)
	d.Graphs = append(d.Graphs, other.Graphs...)
}

// Graph is the format-agnostic representation of a `graph` block.
type Graph struct {
	Name      string
	Source    string
	Inputs    []*Member
	Outputs   []*Member
	Variables []*Variable
	Nodes     []*Node
	Edges     []*Edge
}

// Member declares a graph input or output. A member without a Type is a
// branch member.
type Member struct {
	Name string
	Type *cty.Type
}

// Variable declares a graph variable. Global names one of the built-in
// traversal globals, in which case Type and Default are ignored.
type Variable struct {
	Name     string
	Type     cty.Type
	Default  *cty.Value
	Category string
	Global   string
}

// Node is the format-agnostic representation of a `node` block.
type Node struct {
	Kind string
	Name string
	// Type is the setting type of setting nodes and the suppressed type of
	// removal nodes.
	Type string
	// Graph names the referenced graph of subgraph nodes.
	Graph string
	// Variable names the variable a variable node reads.
	Variable string
	Instance string
	Enabled  *bool
	// ValueType turns a reroute node into a value reroute.
	ValueType  *cty.Type
	Properties map[string]cty.Value
	Expose     []string
}

// Edge connects two pins, each given as a `node.pin` reference.
type Edge struct {
	From string
	To   string
}

// SettingDefinition declares a setting type from a document.
type SettingDefinition struct {
	Name        string
	Description string
	Parent      string
	RenderLayer bool
	Dynamic     bool
	Properties  []*PropertyDefinition
}

// PropertyDefinition declares one property of a document setting type.
type PropertyDefinition struct {
	Name        string
	Description string
	Kind        string
	Type        cty.Type
	Default     *cty.Value
}

// CheckFormatVersion verifies that a document's format_version falls in the
// supported range. An empty version is accepted as the current format.
func CheckFormatVersion(version string) error {
	if version == "" {
		return nil
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid format_version %q: %w", version, err)
	}
	c, err := semver.NewConstraint(SupportedFormat)
	if err != nil {
		return err
	}
	if !c.Check(v) {
		return fmt.Errorf("unsupported format_version %s, this build reads %s", v, SupportedFormat)
	}
	return nil
}
