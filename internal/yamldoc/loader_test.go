package yamldoc

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
format_version: "1.2"
settings:
  - name: lens
    parent: camera
    render_layer: true
    properties:
      - name: focal_length
        type: number
        default: 35
      - name: channels
        type: string
        kind: merge_set
        default: [rgb]
graphs:
  - name: shot
    inputs:
      - name: Shot Overrides
      - name: Exposure
        type: number
    outputs:
      - name: beauty
    variables:
      - name: format
        default: exr
        category: Output
      - name: frame
        global: $frame_number
    nodes:
      - kind: setting
        name: cam
        type: lens
        enabled: false
        expose: [focal_length]
        properties:
          focal_length: 50
          channels:
            add: [depth]
            remove: [rgb]
          r.Tonemapper.Sharpen: 1
      - kind: reroute
        name: fmt
        value_type: string
    edges:
      - from: cam
        to: output.beauty
`

func TestLoader_Parse(t *testing.T) {
	doc, err := NewLoader().Parse(context.Background(), "shot.yaml", []byte(shotDocument))
	require.NoError(t, err)

	require.Len(t, doc.Settings, 1)
	lens := doc.Settings[0]
	assert.True(t, lens.RenderLayer)
	require.Len(t, lens.Properties, 2)
	require.NotNil(t, lens.Properties[0].Default)
	assert.True(t, lens.Properties[0].Default.RawEquals(cty.NumberIntVal(35)))
	assert.Equal(t, "merge_set", lens.Properties[1].Kind)
	require.NotNil(t, lens.Properties[1].Default)
	assert.True(t, lens.Properties[1].Default.Type().IsTupleType())

	require.Len(t, doc.Graphs, 1)
	g := doc.Graphs[0]
	assert.Equal(t, "shot.yaml", g.Source)
	require.Len(t, g.Inputs, 2)
	assert.Nil(t, g.Inputs[0].Type)
	require.NotNil(t, g.Inputs[1].Type)
	assert.Equal(t, cty.Number, *g.Inputs[1].Type)

	require.Len(t, g.Variables, 2)
	assert.Equal(t, cty.String, g.Variables[0].Type)
	assert.Equal(t, "$frame_number", g.Variables[1].Global)

	require.Len(t, g.Nodes, 2)
	cam := g.Nodes[0]
	require.NotNil(t, cam.Enabled)
	assert.False(t, *cam.Enabled)
	assert.Len(t, cam.Properties, 3)
	assert.True(t, cam.Properties["channels"].Type().IsObjectType())
	require.NotNil(t, g.Nodes[1].ValueType)
	assert.Equal(t, cty.String, *g.Nodes[1].ValueType)

	require.Len(t, g.Edges, 1)
	assert.Equal(t, "output.beauty", g.Edges[0].To)
}

func TestLoader_ParseErrors(t *testing.T) {
	testCases := []struct {
		name        string
		src         string
		errContains string
	}{
		{name: "unknown key", src: "graphz: []", errContains: "failed to decode"},
		{name: "old format", src: `format_version: "0.1"`, errContains: "unsupported format_version"},
		{
			name:        "missing property type",
			src:         "settings:\n  - name: s\n    properties:\n      - name: p\n",
			errContains: "type is required",
		},
		{
			name:        "bad type expression",
			src:         "graphs:\n  - name: g\n    inputs:\n      - name: x\n        type: list(any)\n",
			errContains: "collection types cannot contain type 'any'",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLoader().Parse(context.Background(), "test.yaml", []byte(tc.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errContains)
		})
	}
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("graphs:\n  - name: a\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yml"), []byte("graphs:\n  - name: b\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.yaml"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.hcl"), []byte(`graph "c" {}`), 0o644))

	doc, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	var names []string
	for _, g := range doc.Graphs {
		names = append(names, g.Name)
	}
	assert.ElementsMatch(t, []string{"a", "b"}, names)
}
