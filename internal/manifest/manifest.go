package manifest

import "slices"

// Well-known engine libraries. Platform and Core are required by every
// manifest.
const (
	Platform = "T3DPlatform"
	Core     = "T3DCore"
	Log      = "T3DLog"
	Math     = "T3DMath"
)

// DefaultEntrySymbol is the entry symbol used when none is configured.
const DefaultEntrySymbol = "main"

// Manifest describes one launchable variant.
type Manifest struct {
	Name              string
	Libraries         []string
	EntrySharedObject string
	EntrySymbol       string
	NativeMethods     []string
}

// Clone returns a deep copy of the manifest.
func (m Manifest) Clone() Manifest {
	m.Libraries = slices.Clone(m.Libraries)
	m.NativeMethods = slices.Clone(m.NativeMethods)
	return m
}

// Symbol returns the entry symbol, falling back to DefaultEntrySymbol.
func (m Manifest) Symbol() string {
	if m.EntrySymbol == "" {
		return DefaultEntrySymbol
	}
	return m.EntrySymbol
}

// DeclaresMethod reports whether name is one of the manifest's native methods.
func (m Manifest) DeclaresMethod(name string) bool {
	return slices.Contains(m.NativeMethods, name)
}

// Kind classifies a library.
type Kind int

const (
	// KindApp is an application-specific library. Unknown libraries are apps.
	KindApp Kind = iota
	// KindEngine is part of the engine runtime.
	KindEngine
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	if k == KindEngine {
		return "engine"
	}
	return "app"
}

// ParseKind converts "engine" or "app" into a Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "engine":
		return KindEngine, true
	case "app", "":
		return KindApp, true
	}
	return KindApp, false
}

// LibrarySpec is a catalog entry for one native library.
type LibrarySpec struct {
	Name      string
	Kind      Kind
	DependsOn []string
}

// Catalog maps library names to their specs.
type Catalog map[string]LibrarySpec

// EngineCatalog returns the catalog of the engine's own libraries. Each one
// links against the one before it.
func EngineCatalog() Catalog {
	return Catalog{
		Platform: {Name: Platform, Kind: KindEngine},
		Core:     {Name: Core, Kind: KindEngine, DependsOn: []string{Platform}},
		Log:      {Name: Log, Kind: KindEngine, DependsOn: []string{Core}},
		Math:     {Name: Math, Kind: KindEngine, DependsOn: []string{Log}},
	}
}

// IsEngine reports whether name is an engine library in the catalog.
func (c Catalog) IsEngine(name string) bool {
	spec, ok := c[name]
	return ok && spec.Kind == KindEngine
}
