package hcl

import (
	"context"
	"fmt"
	"runtime"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/t3dlaunch/internal/config"
	"github.com/vk/t3dlaunch/internal/ctxlog"
	"github.com/vk/t3dlaunch/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	goos string
}

// Option configures a Loader.
type Option func(*Loader)

// WithGOOS evaluates files as if running on goos. It changes the value of
// the `goos` variable and the naming used by `soname`.
func WithGOOS(goos string) Option {
	return func(l *Loader) {
		l.goos = goos
	}
}

// NewLoader creates a new HCL configuration loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{goos: runtime.GOOS}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ config.Loader = (*Loader)(nil)

// Load parses every .hcl file found under paths and merges their blocks into
// one model. Paths that do not exist are skipped. A library or app declared
// twice, or more than one plugins block overall, is an error. A relative
// plugins path is resolved against the directory of the file declaring it.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := config.NewModel()
	parser := hclparse.NewParser()
	evalCtx := newEvalContext(l.goos)
	var pluginsFile string

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		if diags := findDuplicateBlocks(hclFile.Body, "plugins"); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, block := range root.Libraries {
			if _, exists := model.Libraries[block.Name]; exists {
				return nil, fmt.Errorf("%s: library %q is already declared", file, block.Name)
			}
			model.Libraries[block.Name] = l.translateLibrary(block)
		}
		for _, block := range root.Apps {
			if _, exists := model.Apps[block.Name]; exists {
				return nil, fmt.Errorf("%s: app %q is already declared", file, block.Name)
			}
			app, err := l.translateApp(block)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			model.Apps[app.Name] = app
		}
		for _, block := range root.Plugins {
			if model.Plugins != nil {
				return nil, fmt.Errorf("%s: plugins block is already declared in %s", file, pluginsFile)
			}
			plugins, err := l.translatePlugins(ctx, file, block, evalCtx)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			model.Plugins = plugins
			pluginsFile = file
		}
	}

	logger.Debug("HCL loading complete.", "libraries", len(model.Libraries), "apps", len(model.Apps), "plugins", model.Plugins != nil)
	return model, nil
}

// findAllHCLFiles walks all given paths and returns a flat list of all .hcl
// files found, without duplicates.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})

	for _, path := range paths {
		files, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		for _, f := range files {
			if _, wasSeen := seen[f]; !wasSeen {
				allFiles = append(allFiles, f)
				seen[f] = struct{}{}
			}
		}
	}
	return allFiles, nil
}
