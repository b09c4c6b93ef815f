package registry

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/t3dlaunch/internal/config"
	"github.com/vk/t3dlaunch/internal/manifest"
)

func engineRegistry() *Registry {
	r := New()
	catalog := manifest.EngineCatalog()
	for _, name := range []string{manifest.Platform, manifest.Core, manifest.Log, manifest.Math} {
		r.RegisterLibrary(catalog[name])
	}
	return r
}

func demoManifest(name string) manifest.Manifest {
	return manifest.Manifest{
		Name:              name,
		Libraries:         []string{manifest.Platform, manifest.Core, name},
		EntrySharedObject: "lib" + name + ".so",
	}
}

func TestRegisterDuplicatesPanic(t *testing.T) {
	r := engineRegistry()
	assert.PanicsWithValue(t, "library 'T3DCore' already registered", func() {
		r.RegisterLibrary(manifest.LibrarySpec{Name: manifest.Core})
	})

	r.RegisterManifest(demoManifest("Demo"))
	assert.PanicsWithValue(t, "variant 'Demo' already registered", func() {
		r.RegisterManifest(demoManifest("Demo"))
	})
}

func TestRegisterManifestCopies(t *testing.T) {
	r := New()
	m := demoManifest("Demo")
	r.RegisterManifest(m)
	m.Libraries[0] = "changed"

	got, err := r.Manifest("Demo")
	require.NoError(t, err)
	assert.Equal(t, manifest.Platform, got.Libraries[0])

	got.Libraries[0] = "changed again"
	again, err := r.Manifest("Demo")
	require.NoError(t, err)
	assert.Equal(t, manifest.Platform, again.Libraries[0])
}

func TestManifestUnknown(t *testing.T) {
	r := New()
	r.RegisterManifest(demoManifest("Demo"))

	_, err := r.Manifest("Nope")
	require.ErrorIs(t, err, ErrUnknownVariant)
	assert.Contains(t, err.Error(), `"Nope"`)
	assert.Contains(t, err.Error(), "Demo")
}

func TestNames(t *testing.T) {
	r := New()
	for _, name := range []string{"TextureApp", "Hello", "PlatformApp", "GeometryApp"} {
		r.RegisterManifest(demoManifest(name))
	}
	assert.Equal(t, []string{"GeometryApp", "Hello", "PlatformApp", "TextureApp"}, r.Names())
	assert.Empty(t, New().Names())
}

func TestPopulateFromModel(t *testing.T) {
	r := engineRegistry()
	r.RegisterLibrary(manifest.LibrarySpec{Name: "Demo"})
	r.RegisterManifest(demoManifest("Demo"))

	model := config.NewModel()
	model.Libraries["T3DAudio"] = &config.Library{Name: "T3DAudio", Kind: "engine", DependsOn: []string{"T3DCore"}}
	model.Apps["Demo"] = &config.App{
		Name:          "Demo",
		Libraries:     []string{"T3DPlatform", "T3DCore", "T3DAudio", "Demo"},
		NativeMethods: []string{"init"},
		Entry:         config.Entry{SharedObject: "libDemoLauncher.so", Symbol: "start"},
	}

	require.NoError(t, r.PopulateFromModel(model))

	want := manifest.Manifest{
		Name:              "Demo",
		Libraries:         []string{"T3DPlatform", "T3DCore", "T3DAudio", "Demo"},
		EntrySharedObject: "libDemoLauncher.so",
		EntrySymbol:       "start",
		NativeMethods:     []string{"init"},
	}
	got, err := r.Manifest("Demo")
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("manifest mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, r.Catalog.IsEngine("T3DAudio"))
	require.NoError(t, r.Validate(context.Background()))
}

func TestPopulateFromModelUnknownKind(t *testing.T) {
	r := New()
	model := config.NewModel()
	model.Libraries["X"] = &config.Library{Name: "X", Kind: "plugin"}

	err := r.PopulateFromModel(model)
	require.Error(t, err)
	assert.Equal(t, `library "X": unknown kind "plugin"`, err.Error())
	assert.NotContains(t, r.Catalog, "X")
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		r := engineRegistry()
		r.RegisterManifest(demoManifest("Demo"))
		assert.NoError(t, r.Validate(ctx))
	})

	t.Run("collects every problem", func(t *testing.T) {
		r := engineRegistry()
		r.RegisterLibrary(manifest.LibrarySpec{Name: "T3DAudio", Kind: manifest.KindEngine, DependsOn: []string{"T3DMissing"}})
		r.RegisterManifest(manifest.Manifest{
			Name:              "Backwards",
			Libraries:         []string{manifest.Core, manifest.Platform, "Backwards"},
			EntrySharedObject: "libBackwards.so",
		})
		r.RegisterManifest(manifest.Manifest{
			Name:      "NoEntry",
			Libraries: []string{manifest.Platform, manifest.Core},
		})

		err := r.Validate(ctx)
		require.Error(t, err)
		require.ErrorIs(t, err, manifest.ErrInvalid)
		msg := err.Error()
		assert.Contains(t, msg, "registry validation failed")
		assert.Contains(t, msg, `library "T3DAudio" depends on unknown library "T3DMissing"`)
		assert.Contains(t, msg, `library "T3DCore" is loaded before its dependency "T3DPlatform"`)
		assert.Contains(t, msg, "expected load order: T3DPlatform, T3DCore, Backwards")
		assert.Contains(t, msg, `invalid manifest "NoEntry": entry shared object is empty`)
	})

	t.Run("catalog cycle", func(t *testing.T) {
		r := New()
		r.RegisterLibrary(manifest.LibrarySpec{Name: "A", DependsOn: []string{"B"}})
		r.RegisterLibrary(manifest.LibrarySpec{Name: "B", DependsOn: []string{"A"}})

		err := r.Validate(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "library catalog")
		assert.Contains(t, err.Error(), "cycle")
	})
}
