// Package hello registers the minimal demo variant. It loads only the
// platform and core libraries plus the demo itself, and exposes init and
// render to the host instead of relying on the main entry alone.
package hello

import (
	"github.com/vk/t3dlaunch/internal/manifest"
	"github.com/vk/t3dlaunch/internal/registry"
)

const (
	// Name is the variant name.
	Name = "Hello"
	// Library is the demo's application library.
	Library = "Demo_Hello"
)

// Native methods exported by the demo's entry shared object.
const (
	MethodInit   = "init"
	MethodRender = "render"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Manifest returns the variant's manifest. The entry shared object is the
// demo's launcher, which is not one of the preloaded libraries. Its name
// targets linux/android.
func Manifest() manifest.Manifest {
	return manifest.Manifest{
		Name:              Name,
		Libraries:         []string{manifest.Platform, manifest.Core, Library},
		EntrySharedObject: "libDemo_HelloApp.so",
		EntrySymbol:       manifest.DefaultEntrySymbol,
		NativeMethods:     []string{MethodInit, MethodRender},
	}
}

// Register registers the variant and its application library.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterLibrary(manifest.LibrarySpec{Name: Library, Kind: manifest.KindApp})
	r.RegisterManifest(Manifest())
}
