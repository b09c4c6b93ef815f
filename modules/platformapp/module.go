// Package platformapp registers the PlatformApp sample variant.
package platformapp

import (
	"github.com/vk/t3dlaunch/internal/manifest"
	"github.com/vk/t3dlaunch/internal/registry"
)

// Name is the variant name and the name of its application library.
const Name = "PlatformApp"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Manifest returns the variant's manifest. The entry object name targets
// linux/android.
func Manifest() manifest.Manifest {
	return manifest.Manifest{
		Name: Name,
		Libraries: []string{
			manifest.Platform,
			manifest.Core,
			manifest.Log,
			manifest.Math,
			Name,
		},
		EntrySharedObject: "libPlatformApp.so",
		EntrySymbol:       manifest.DefaultEntrySymbol,
	}
}

// Register registers the variant and its application library.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterLibrary(manifest.LibrarySpec{Name: Name, Kind: manifest.KindApp})
	r.RegisterManifest(Manifest())
}
