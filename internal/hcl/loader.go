package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/moviegraph/internal/config"
	"github.com/specialistvlad/moviegraph/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL document loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string {
	return []string{".hcl"}
}

// Load parses every .hcl file under the given paths and merges their blocks
// into one document.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Document, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := FindFiles(paths, l.Extensions())
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	doc := &config.Document{}
	parser := hclparse.NewParser()
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		fileDoc, err := l.decode(ctx, file, hclFile.Body)
		if err != nil {
			return nil, err
		}
		doc.Merge(fileDoc)
	}

	logger.Debug("HCL loading complete.", "settings", len(doc.Settings), "graphs", len(doc.Graphs))
	return doc, nil
}

// Parse decodes a single HCL document held in memory.
func (l *Loader) Parse(ctx context.Context, filename string, src []byte) (*config.Document, error) {
	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return l.decode(ctx, filename, hclFile.Body)
}

func (l *Loader) decode(ctx context.Context, filename string, body hcl.Body) (*config.Document, error) {
	var root fileRoot
	if diags := gohcl.DecodeBody(body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}
	if err := config.CheckFormatVersion(root.FormatVersion); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	doc := &config.Document{}
	for _, s := range root.Settings {
		def, err := l.translateSetting(ctx, s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		doc.Settings = append(doc.Settings, def)
	}
	for _, g := range root.Graphs {
		graph, err := l.translateGraph(ctx, g)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		graph.Source = filename
		doc.Graphs = append(doc.Graphs, graph)
	}
	return doc, nil
}

// FindFiles walks all given paths and returns a flat list of the files whose
// extension is one of exts. Paths that do not exist are skipped.
func FindFiles(paths []string, exts []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	matches := func(p string) bool {
		for _, ext := range exts {
			if filepath.Ext(p) == ext {
				return true
			}
		}
		return false
	}
	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if info.IsDir() {
			err := filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !info.IsDir() && matches(p) {
					add(p)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		} else if matches(path) {
			add(path)
		}
	}
	return allFiles, nil
}
