// This file contains the logic for translating HCL schema structs into the
// format-agnostic configuration model defined in the config package.

package hcl

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/t3dlaunch/internal/config"
	"github.com/vk/t3dlaunch/internal/manifest"
	"github.com/zclconf/go-cty/cty/gocty"
)

const defaultPluginPath = "."

func (l *Loader) translateLibrary(b *libraryBlock) *config.Library {
	kind := b.Kind
	if kind == "" {
		kind = manifest.KindApp.String()
	}
	return &config.Library{
		Name:      b.Name,
		Kind:      kind,
		DependsOn: b.DependsOn,
	}
}

func (l *Loader) translateApp(b *appBlock) (*config.App, error) {
	if b.Entry == nil {
		return nil, fmt.Errorf("app %q: missing entry block", b.Name)
	}
	symbol := b.Entry.Symbol
	if symbol == "" {
		symbol = manifest.DefaultEntrySymbol
	}
	return &config.App{
		Name:          b.Name,
		Libraries:     b.Libraries,
		NativeMethods: b.NativeMethods,
		Entry: config.Entry{
			SharedObject: b.Entry.SharedObject,
			Symbol:       symbol,
		},
	}, nil
}

// translatePlugins roots a relative plugin path at the directory of the file
// declaring the block.
func (l *Loader) translatePlugins(ctx context.Context, file string, b *pluginsBlock, evalCtx *hcl.EvalContext) (*config.Plugins, error) {
	path := defaultPluginPath
	if isExprDefined(ctx, b.Path, "path") {
		val, diags := b.Path.Value(evalCtx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid plugins path: %w", diags)
		}
		if val.IsNull() {
			return nil, errors.New("invalid plugins path: must not be null")
		}
		if err := gocty.FromCtyValue(val, &path); err != nil {
			return nil, fmt.Errorf("invalid plugins path: %w", err)
		}
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(file), path)
	}
	return &config.Plugins{
		Path:  path,
		Names: b.Names,
	}, nil
}
