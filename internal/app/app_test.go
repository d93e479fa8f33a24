package app_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/moviegraph/internal/app"
	"github.com/specialistvlad/moviegraph/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

const shotGraph = `
graph "shot" {
  output "beauty" {}

  variable "artist" {
    default = "nobody"
  }
  variable "frame" {
    global = "$frame_number"
  }

  node "setting" "layer" {
    type = "deferred_rendering"
    properties {
      spatial_sample_count = 4
    }
  }
  node "setting" "meta" {
    type   = "metadata"
    expose = ["artist"]
    properties {
      tags = ["final"]
    }
  }
  node "variable" "who" {
    variable = "artist"
  }
  node "setting" "orphan" {
    type = "camera"
  }

  edge {
    from = "layer"
    to   = "output.beauty"
  }
  edge {
    from = "meta"
    to   = "layer"
  }
  edge {
    from = "who"
    to   = "meta.artist"
  }
}
`

const sharedYAML = `
format_version: "1.0"
graphs:
  - name: studio
    outputs:
      - name: beauty
    nodes:
      - kind: setting
        name: exr
        type: exr_output
        properties:
          compression: piz
      - kind: subgraph
        name: shot
        graph: shot
    edges:
      - from: exr
        to: output.beauty
      - from: shot.beauty
        to: exr
`

type rendered struct {
	Graph    string `json:"graph"`
	Branches []struct {
		Name     string `json:"name"`
		Settings []struct {
			Type       string         `json:"type"`
			Properties map[string]any `json:"properties"`
		} `json:"settings"`
	} `json:"branches"`
}

func decode(t *testing.T, out string) rendered {
	t.Helper()
	var r rendered
	require.NoError(t, json.Unmarshal([]byte(out), &r), out)
	return r
}

func TestRun_FlattensRootGraph(t *testing.T) {
	res := testutil.RunApp(t, map[string]string{"shot.hcl": shotGraph}, app.Config{
		Vars: map[string]cty.Value{"artist": cty.StringVal("mia")},
	})
	require.NoError(t, res.Err, res.LogOutput)

	r := decode(t, res.Output)
	assert.Equal(t, "shot", r.Graph)
	require.Len(t, r.Branches, 2)
	beauty := r.Branches[1]
	assert.Equal(t, "beauty", beauty.Name)
	require.Len(t, beauty.Settings, 2)
	assert.Equal(t, "deferred_rendering", beauty.Settings[0].Type)
	assert.Equal(t, float64(4), beauty.Settings[0].Properties["spatial_sample_count"])
	assert.Equal(t, "beauty", beauty.Settings[0].Properties["layer_name"], "inherited default")
	assert.Equal(t, "metadata", beauty.Settings[1].Type)
	assert.Equal(t, "mia", beauty.Settings[1].Properties["artist"])
	assert.Equal(t, []any{"final"}, beauty.Settings[1].Properties["tags"])

	assert.Contains(t, res.LogOutput, "not connected to any output branch")
	assert.Contains(t, res.LogOutput, "orphan")
	assert.NotContains(t, res.LogOutput, "no render layer")
}

func TestRun_MixedFormatsAndRootSelection(t *testing.T) {
	files := map[string]string{
		"shot.hcl":            shotGraph,
		"shared/studio.yaml": sharedYAML,
	}

	res := testutil.RunApp(t, files, app.Config{})
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "root graph name is required")

	res = testutil.RunApp(t, files, app.Config{RootGraph: "studio", OutputFormat: "hcl"})
	require.NoError(t, res.Err, res.LogOutput)
	assert.Contains(t, res.Output, `graph = "studio"`)
	assert.Contains(t, res.Output, `setting "exr_output" {`)
	assert.Contains(t, res.Output, `compression`)
	assert.Contains(t, res.Output, `"piz"`)
	assert.Contains(t, res.Output, `setting "deferred_rendering" {`)
}

func TestRun_OutputAndMetricsFiles(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "flat.json")
	metricsPath := filepath.Join(dir, "moviegraph.prom")

	res := testutil.RunApp(t, map[string]string{"shot.hcl": shotGraph}, app.Config{
		OutputPath:  outPath,
		MetricsFile: metricsPath,
	})
	require.NoError(t, res.Err, res.LogOutput)
	assert.Empty(t, res.Output)

	out, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "shot", decode(t, string(out)).Graph)

	metrics, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `moviegraph_flatten_runs_total{result="ok"} 1`)
}

func TestRun_StartupErrors(t *testing.T) {
	res := testutil.RunApp(t, map[string]string{"bad.hcl": `graph "g" {`}, app.Config{})
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "application startup panicked")
	assert.Contains(t, res.Err.Error(), "failed to parse")

	res = testutil.RunApp(t, map[string]string{"bad.hcl": `
graph "g" {
  node "setting" "x" {
    type = "rendr_layer"
  }
}
`}, app.Config{})
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), `did you mean "render_layer"`)
}

func TestRun_FlattenError(t *testing.T) {
	res := testutil.RunApp(t, map[string]string{"loop.hcl": `
graph "loop" {
  output "beauty" {}
  node "subgraph" "self" {
    graph = "loop"
  }
  edge {
    from = "self.beauty"
    to   = "output.beauty"
  }
}
`}, app.Config{})
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "failed to flatten graph")
	assert.Empty(t, res.Output)
}

func TestNewConfig(t *testing.T) {
	_, err := app.NewConfig(app.Config{})
	require.Error(t, err)

	cfg, err := app.NewConfig(app.Config{GraphPath: "graphs"})
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.OutputFormat)

	_, err = app.NewConfig(app.Config{GraphPath: "graphs", OutputFormat: "xml"})
	require.Error(t, err)

	_, err = app.NewConfig(app.Config{GraphPath: "graphs", FrameNumber: -1})
	require.Error(t, err)

	cfg, err = app.NewConfig(app.Config{GraphPath: "graphs", ShotName: "sh010", FrameNumber: 12})
	require.NoError(t, err)
	tc := cfg.TraversalContext()
	assert.Equal(t, "sh010", tc.ShotName)
	assert.Equal(t, 12, tc.FrameNumber)
}
