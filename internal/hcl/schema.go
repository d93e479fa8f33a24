package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	FormatVersion string          `hcl:"format_version,optional"`
	Settings      []*settingBlock `hcl:"setting,block"`
	Graphs        []*graphBlock   `hcl:"graph,block"`
}

// settingBlock declares a setting type.
type settingBlock struct {
	Name        string           `hcl:"name,label"`
	Parent      string           `hcl:"parent,optional"`
	Description string           `hcl:"description,optional"`
	RenderLayer bool             `hcl:"render_layer,optional"`
	Dynamic     bool             `hcl:"dynamic,optional"`
	Properties  []*propertyBlock `hcl:"property,block"`
}

type propertyBlock struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type"`
	Kind        string         `hcl:"kind,optional"`
	Default     hcl.Expression `hcl:"default,optional"`
	Description string         `hcl:"description,optional"`
}

type graphBlock struct {
	Name      string           `hcl:"name,label"`
	Inputs    []*memberBlock   `hcl:"input,block"`
	Outputs   []*memberBlock   `hcl:"output,block"`
	Variables []*variableBlock `hcl:"variable,block"`
	Nodes     []*nodeBlock     `hcl:"node,block"`
	Edges     []*edgeBlock     `hcl:"edge,block"`
}

// memberBlock is an `input` or `output` block. Without a type the member is
// a branch.
type memberBlock struct {
	Name string         `hcl:"name,label"`
	Type hcl.Expression `hcl:"type,optional"`
}

type variableBlock struct {
	Name     string         `hcl:"name,label"`
	Type     hcl.Expression `hcl:"type,optional"`
	Default  hcl.Expression `hcl:"default,optional"`
	Category string         `hcl:"category,optional"`
	Global   string         `hcl:"global,optional"`
}

type nodeBlock struct {
	Kind       string          `hcl:"kind,label"`
	Name       string          `hcl:"name,label"`
	Type       string          `hcl:"type,optional"`
	Graph      string          `hcl:"graph,optional"`
	Variable   string          `hcl:"variable,optional"`
	Instance   string          `hcl:"instance,optional"`
	Enabled    *bool           `hcl:"enabled,optional"`
	ValueType  hcl.Expression  `hcl:"value_type,optional"`
	Expose     []string        `hcl:"expose,optional"`
	Dynamic    hcl.Expression  `hcl:"dynamic,optional"`
	Properties *propertiesBody `hcl:"properties,block"`
}

// propertiesBody holds the free-form property overrides of a setting node.
type propertiesBody struct {
	Body hcl.Body `hcl:",remain"`
}

type edgeBlock struct {
	From string `hcl:"from"`
	To   string `hcl:"to"`
}
