package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/vk/t3dlaunch/internal/config"
	"github.com/vk/t3dlaunch/internal/manifest"
)

// ErrUnknownVariant is returned by Manifest for names that are not registered.
var ErrUnknownVariant = errors.New("unknown variant")

// Module is the interface that all built-in modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the library catalog and the variant manifests for a single
// application instance.
type Registry struct {
	Catalog   manifest.Catalog
	Manifests map[string]manifest.Manifest
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		Catalog:   make(manifest.Catalog),
		Manifests: make(map[string]manifest.Manifest),
	}
}

// RegisterLibrary adds a library to the catalog.
func (r *Registry) RegisterLibrary(spec manifest.LibrarySpec) {
	if _, exists := r.Catalog[spec.Name]; exists {
		panic(fmt.Sprintf("library '%s' already registered", spec.Name))
	}
	slog.Debug("Registering library.", "library", spec.Name, "kind", spec.Kind)
	r.Catalog[spec.Name] = spec
}

// RegisterManifest adds a variant.
func (r *Registry) RegisterManifest(m manifest.Manifest) {
	if _, exists := r.Manifests[m.Name]; exists {
		panic(fmt.Sprintf("variant '%s' already registered", m.Name))
	}
	slog.Debug("Registering variant.", "variant", m.Name)
	r.Manifests[m.Name] = m.Clone()
}

// PopulateFromModel merges the libraries and apps of a loaded configuration
// into the registry. Entries from the model replace registered ones with the
// same name.
func (r *Registry) PopulateFromModel(model *config.Model) error {
	var errs []error
	for name, lib := range model.Libraries {
		kind, ok := manifest.ParseKind(lib.Kind)
		if !ok {
			errs = append(errs, fmt.Errorf("library %q: unknown kind %q", name, lib.Kind))
			continue
		}
		r.Catalog[name] = manifest.LibrarySpec{
			Name:      name,
			Kind:      kind,
			DependsOn: slices.Clone(lib.DependsOn),
		}
	}
	for name, app := range model.Apps {
		r.Manifests[name] = manifest.Manifest{
			Name:              name,
			Libraries:         slices.Clone(app.Libraries),
			EntrySharedObject: app.Entry.SharedObject,
			EntrySymbol:       app.Entry.Symbol,
			NativeMethods:     slices.Clone(app.NativeMethods),
		}
	}
	return errors.Join(errs...)
}

// Manifest returns a copy of the named variant's manifest.
func (r *Registry) Manifest(name string) (manifest.Manifest, error) {
	m, ok := r.Manifests[name]
	if !ok {
		return manifest.Manifest{}, fmt.Errorf("%w %q (known: %v)", ErrUnknownVariant, name, r.Names())
	}
	return m.Clone(), nil
}

// Names returns the registered variant names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.Manifests))
	for name := range r.Manifests {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
