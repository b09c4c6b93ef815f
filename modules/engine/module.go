// Package engine registers the libraries every Tiny3D variant is built on.
package engine

import (
	"github.com/vk/t3dlaunch/internal/manifest"
	"github.com/vk/t3dlaunch/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register adds the engine libraries to the catalog.
func (m *Module) Register(r *registry.Registry) {
	catalog := manifest.EngineCatalog()
	for _, name := range []string{manifest.Platform, manifest.Core, manifest.Log, manifest.Math} {
		r.RegisterLibrary(catalog[name])
	}
}
