package yamldoc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/moviegraph/internal/config"
	"github.com/specialistvlad/moviegraph/internal/ctxlog"
	hcldoc "github.com/specialistvlad/moviegraph/internal/hcl"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"gopkg.in/yaml.v3"
)

// Loader is the YAML implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML document loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string {
	return []string{".yaml", ".yml"}
}

// Load parses every YAML file under the given paths into one document.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Document, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	files, err := hcldoc.FindFiles(paths, l.Extensions())
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered YAML files.", "count", len(files))

	doc := &config.Document{}
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read YAML file %s: %w", file, err)
		}
		fileDoc, err := l.Parse(ctx, file, src)
		if err != nil {
			return nil, err
		}
		doc.Merge(fileDoc)
	}

	logger.Debug("YAML loading complete.", "settings", len(doc.Settings), "graphs", len(doc.Graphs))
	return doc, nil
}

// Parse decodes a single YAML document held in memory. Unknown keys are
// rejected.
func (l *Loader) Parse(ctx context.Context, filename string, src []byte) (*config.Document, error) {
	var root fileRoot
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", filename, err)
	}
	if err := config.CheckFormatVersion(root.FormatVersion); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	doc := &config.Document{}
	for _, s := range root.Settings {
		def, err := translateSetting(ctx, s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		doc.Settings = append(doc.Settings, def)
	}
	for _, g := range root.Graphs {
		graph, err := translateGraph(ctx, g)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		graph.Source = filename
		doc.Graphs = append(doc.Graphs, graph)
	}
	return doc, nil
}

// toCty converts a decoded YAML value into cty by way of its JSON encoding,
// letting cty/json infer the type.
func toCty(v any) (cty.Value, error) {
	buf, err := json.Marshal(v)
	if err != nil {
		return cty.NilVal, err
	}
	ty, err := ctyjson.ImpliedType(buf)
	if err != nil {
		return cty.NilVal, err
	}
	return ctyjson.Unmarshal(buf, ty)
}
