package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

const shotDocument = `
format_version = "1.0"

setting "lens" {
  parent       = "camera"
  description  = "Physical lens settings."
  render_layer = false

  property "focal_length" {
    type    = number
    default = 35
  }
  property "tags" {
    type = string
    kind = "merge_list"
  }
}

graph "shot" {
  input "Shot Overrides" {}
  input "Exposure" {
    type = number
  }
  output "beauty" {}

  variable "format" {
    default  = "exr"
    category = "Output|Format"
  }
  variable "frame" {
    global = "$frame_number"
  }

  node "setting" "cam" {
    type     = "lens"
    instance = "main"
    enabled  = false
    expose   = ["focal_length"]

    properties {
      focal_length = 50
      tags         = { add = ["hero"], remove = ["wip"] }
    }
    dynamic = {
      "r.Tonemapper.Sharpen" = 1
    }
  }

  node "reroute" "fmt_reroute" {
    value_type = string
  }

  node "subgraph" "common" {
    graph = "shared"
  }

  edge {
    from = "cam"
    to   = "output.beauty"
  }
}
`

func TestLoader_Parse(t *testing.T) {
	doc, err := NewLoader().Parse(context.Background(), "shot.hcl", []byte(shotDocument))
	require.NoError(t, err)

	require.Len(t, doc.Settings, 1)
	lens := doc.Settings[0]
	assert.Equal(t, "lens", lens.Name)
	assert.Equal(t, "camera", lens.Parent)
	require.Len(t, lens.Properties, 2)
	assert.Equal(t, cty.Number, lens.Properties[0].Type)
	require.NotNil(t, lens.Properties[0].Default)
	assert.True(t, lens.Properties[0].Default.RawEquals(cty.NumberIntVal(35)))
	assert.Equal(t, "merge_list", lens.Properties[1].Kind)
	assert.Nil(t, lens.Properties[1].Default)

	require.Len(t, doc.Graphs, 1)
	g := doc.Graphs[0]
	assert.Equal(t, "shot", g.Name)
	assert.Equal(t, "shot.hcl", g.Source)

	require.Len(t, g.Inputs, 2)
	assert.Nil(t, g.Inputs[0].Type, "a member without type is a branch")
	require.NotNil(t, g.Inputs[1].Type)
	assert.Equal(t, cty.Number, *g.Inputs[1].Type)

	require.Len(t, g.Variables, 2)
	assert.Equal(t, cty.String, g.Variables[0].Type, "type is inferred from the default")
	assert.Equal(t, "Output|Format", g.Variables[0].Category)
	assert.Equal(t, "$frame_number", g.Variables[1].Global)

	require.Len(t, g.Nodes, 3)
	cam := g.Nodes[0]
	assert.Equal(t, "setting", cam.Kind)
	assert.Equal(t, "lens", cam.Type)
	assert.Equal(t, "main", cam.Instance)
	require.NotNil(t, cam.Enabled)
	assert.False(t, *cam.Enabled)
	assert.Equal(t, []string{"focal_length"}, cam.Expose)
	assert.Len(t, cam.Properties, 3)
	assert.Contains(t, cam.Properties, "r.Tonemapper.Sharpen")

	require.NotNil(t, g.Nodes[1].ValueType)
	assert.Equal(t, cty.String, *g.Nodes[1].ValueType)
	assert.Equal(t, "shared", g.Nodes[2].Graph)

	require.Len(t, g.Edges, 1)
	assert.Equal(t, "cam", g.Edges[0].From)
	assert.Equal(t, "output.beauty", g.Edges[0].To)
}

func TestLoader_ParseErrors(t *testing.T) {
	testCases := []struct {
		name        string
		src         string
		errContains string
	}{
		{
			name:        "syntax error",
			src:         `graph "a" {`,
			errContains: "failed to parse",
		},
		{
			name:        "unknown block",
			src:         `pipeline "a" {}`,
			errContains: "failed to decode",
		},
		{
			name:        "unsupported format version",
			src:         `format_version = "2.1.0"`,
			errContains: "unsupported format_version",
		},
		{
			name: "bad property type",
			src: `setting "s" {
  property "p" { type = list(any) }
}`,
			errContains: "collection types cannot contain type 'any'",
		},
		{
			name: "dynamic is not an object",
			src: `graph "g" {
  node "setting" "n" {
    type    = "cvars"
    dynamic = ["a"]
  }
}`,
			errContains: "dynamic properties must be an object",
		},
		{
			name: "variable in property value",
			src: `graph "g" {
  node "setting" "n" {
    type = "camera"
    properties {
      focal_length = var.x
    }
  }
}`,
			errContains: "focal_length",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLoader().Parse(context.Background(), "test.hcl", []byte(tc.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errContains)
		})
	}
}

func TestLoader_LoadDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "shared"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.hcl"), []byte(`graph "main" {}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shared", "common.hcl"), []byte(`graph "common" {}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`not hcl`), 0o644))

	doc, err := NewLoader().Load(context.Background(), dir, filepath.Join(dir, "main.hcl"), filepath.Join(dir, "missing"))
	require.NoError(t, err)

	var names []string
	for _, g := range doc.Graphs {
		names = append(names, g.Name)
	}
	assert.ElementsMatch(t, []string{"main", "common"}, names)
}

func TestParseType(t *testing.T) {
	testCases := []struct {
		src      string
		expected cty.Type
		wantErr  bool
	}{
		{src: "string", expected: cty.String},
		{src: "number", expected: cty.Number},
		{src: "bool", expected: cty.Bool},
		{src: "any", expected: cty.DynamicPseudoType},
		{src: "list(string)", expected: cty.List(cty.String)},
		{src: "set(number)", expected: cty.Set(cty.Number)},
		{src: "map(bool)", expected: cty.Map(cty.Bool)},
		{src: "object({x = number, y = number})", expected: cty.Object(map[string]cty.Type{"x": cty.Number, "y": cty.Number})},
		{src: "list(object({name = string}))", expected: cty.List(cty.Object(map[string]cty.Type{"name": cty.String}))},
		{src: "object(string)", wantErr: true},
		{src: "object({x = any})", wantErr: true},
		{src: "object({x = number, x = bool})", wantErr: true},
		{src: "tuple(string)", wantErr: true},
		{src: "strin", wantErr: true},
		{src: "list(", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.src, func(t *testing.T) {
			ty, err := ParseType(context.Background(), tc.src)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.expected.Equals(ty), "got %s", ty.FriendlyName())
		})
	}
}

func TestParseValue(t *testing.T) {
	v, err := ParseValue(`["a", "b"]`)
	require.NoError(t, err)
	assert.True(t, v.Type().IsTupleType())

	v, err = ParseValue(`42`)
	require.NoError(t, err)
	assert.True(t, v.RawEquals(cty.NumberIntVal(42)))

	_, err = ParseValue(`png`)
	require.Error(t, err, "bare words are variable references, not values")
}
