package app

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/t3dlaunch/internal/bootstrap"
	"github.com/vk/t3dlaunch/internal/native"
	"github.com/vk/t3dlaunch/internal/plugin"
	"github.com/vk/t3dlaunch/internal/registry"
	"github.com/vk/t3dlaunch/internal/testutil"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func file(name string) string {
	return native.FileName(name, runtime.GOOS)
}

// variantLoader serves the engine libraries, the given application library
// and an entry shared object exporting main.
func variantLoader(appLib, entry string, main native.Func, methods ...string) *testutil.FakeLoader {
	loader := testutil.NewFakeLoader()
	for _, name := range []string{"T3DPlatform", "T3DCore", "T3DLog", "T3DMath", appLib} {
		loader.Add(name, nil)
	}
	symbols := map[string]native.Func{"main": main}
	for _, m := range methods {
		symbols[m] = testutil.Result(0)
	}
	return loader.AddPath(entry, symbols)
}

func TestNewAppRegistersBuiltins(t *testing.T) {
	a, _ := SetupAppTest(t, &Config{List: true}, nil, testutil.NewFakeLoader())
	assert.Equal(t, []string{"GeometryApp", "Hello", "PlatformApp", "TextureApp"}, a.Registry().Names())
	assert.Nil(t, a.Bootstrap())
}

func TestNewAppPanics(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
	}{
		{
			name:  "unparseable configuration",
			files: map[string]string{"bad.hcl": `app "A" {`},
		},
		{
			name:  "unknown library kind",
			files: map[string]string{"lib.hcl": `library "X" { kind = "plugin" }`},
		},
		{
			name: "libraries out of order",
			files: map[string]string{"app.hcl": `
				app "Backwards" {
					libraries = ["T3DCore", "T3DPlatform", "Backwards"]
					entry {
						shared_object = "libBackwards.so"
					}
				}
			`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, func() {
				SetupAppTest(t, &Config{List: true}, tt.files, testutil.NewFakeLoader())
			})
		})
	}
}

func TestRunList(t *testing.T) {
	a, logs := SetupAppTest(t, &Config{List: true, LogFormat: "text"}, nil, testutil.NewFakeLoader())
	require.NoError(t, a.Run(context.Background()))

	out := logs.String()
	assert.Contains(t, out, "Hello\tlibDemo_HelloApp.so:main\tT3DPlatform -> T3DCore -> Demo_Hello\t[init, render]\n")
	assert.Contains(t, out, "PlatformApp\tlibPlatformApp.so:main\tT3DPlatform -> T3DCore -> T3DLog -> T3DMath -> PlatformApp\n")
	assert.Less(t, strings.Index(out, "GeometryApp\t"), strings.Index(out, "TextureApp\t"))
}

func TestRunVariant(t *testing.T) {
	var gotArgs []string
	main := func(args ...uintptr) uintptr {
		gotArgs = testutil.Argv(args[0], args[1])
		return 0
	}
	loader := variantLoader("GeometryApp", "libGeometryApp.so", main)
	a, _ := SetupAppTest(t, &Config{Variant: "GeometryApp", Args: []string{"-fullscreen"}}, nil, loader)

	require.NoError(t, a.Run(context.Background()))

	want := []string{file("T3DPlatform"), file("T3DCore"), file("T3DLog"), file("T3DMath"), file("GeometryApp"), "libGeometryApp.so"}
	if file("GeometryApp") == "libGeometryApp.so" {
		// The entry object is already resident as the app library.
		want = want[:5]
	}
	assert.Equal(t, want, loader.Opens())
	assert.Equal(t, []string{"libGeometryApp.so", "-fullscreen"}, gotArgs)
	assert.Equal(t, bootstrap.Loaded, a.Bootstrap().Phase())
	assert.Empty(t, loader.Closed(), "variant libraries stay resident")
}

func TestRunNativeExitCode(t *testing.T) {
	loader := variantLoader("TextureApp", "libTextureApp.so", testutil.Result(3))
	a, _ := SetupAppTest(t, &Config{Variant: "TextureApp"}, nil, loader)

	err := a.Run(context.Background())
	var exitErr *NativeExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.Code)
	assert.Equal(t, "native entry point exited with code 3", exitErr.Error())
}

func TestRunDryRun(t *testing.T) {
	main := func(...uintptr) uintptr {
		t.Error("entry point must not be called in a dry run")
		return 0
	}
	loader := variantLoader("Demo_Hello", "libDemo_HelloApp.so", main, "init", "render")
	a, logs := SetupAppTest(t, &Config{Variant: "Hello", DryRun: true}, nil, loader)

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, logs.String(), "Hello: main resolved in libDemo_HelloApp.so\n")
	assert.NotContains(t, loader.Opens(), file("T3DLog"), "Hello does not load log or math")
}

func TestRunDryRunMissingMethod(t *testing.T) {
	loader := variantLoader("Demo_Hello", "libDemo_HelloApp.so", testutil.Result(0), "init")
	a, _ := SetupAppTest(t, &Config{Variant: "Hello", DryRun: true}, nil, loader)

	err := a.Run(context.Background())
	var loadErr *bootstrap.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "render", loadErr.Symbol)
}

func TestRunMissingLibrary(t *testing.T) {
	loader := testutil.NewFakeLoader().Add("T3DPlatform", nil)
	a, _ := SetupAppTest(t, &Config{Variant: "PlatformApp"}, nil, loader)

	err := a.Run(context.Background())
	var loadErr *bootstrap.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "T3DCore", loadErr.Library)
	assert.ErrorIs(t, err, testutil.ErrNoSuchLibrary)
	assert.Equal(t, []string{file("T3DPlatform"), file("T3DCore")}, loader.Opens())
	assert.Equal(t, bootstrap.Failed, a.Bootstrap().Phase())
}

func TestRunUnknownVariant(t *testing.T) {
	a, _ := SetupAppTest(t, &Config{Variant: "Nope"}, nil, testutil.NewFakeLoader())
	require.ErrorIs(t, a.Run(context.Background()), registry.ErrUnknownVariant)
	assert.Nil(t, a.Bootstrap())
}

func TestRunConfiguredVariantWithPlugins(t *testing.T) {
	files := map[string]string{
		"audio.hcl": `
			library "T3DAudio" {
				kind       = "engine"
				depends_on = ["T3DCore"]
			}
			app "AudioApp" {
				libraries = ["T3DPlatform", "T3DCore", "T3DAudio", "AudioApp"]
				entry {
					shared_object = "libAudioLauncher.so"
					symbol        = "launch"
				}
			}
			plugins {
				path  = "no-such-dir"
				names = ["RenderGL", "ImageCodec"]
			}
		`,
	}
	var order []string
	record := func(event string, code int32) native.Func {
		return func(...uintptr) uintptr {
			order = append(order, event)
			return uintptr(uint32(code))
		}
	}

	loader := testutil.NewFakeLoader().
		Add("T3DPlatform", nil).
		Add("T3DCore", nil).
		Add("T3DAudio", nil).
		Add("AudioApp", nil).
		AddPath("libAudioLauncher.so", map[string]native.Func{"launch": record("launch", 0)}).
		Add("RenderGL", map[string]native.Func{
			plugin.StartSymbol: record("start RenderGL", 0),
			plugin.StopSymbol:  record("stop RenderGL", 0),
		}).
		Add("ImageCodec", map[string]native.Func{
			plugin.StartSymbol: record("start ImageCodec", 0),
			plugin.StopSymbol:  record("stop ImageCodec", 0),
		})

	a, _ := SetupAppTest(t, &Config{Variant: "AudioApp"}, files, loader)
	require.NoError(t, a.Run(context.Background()))

	assert.Equal(t, []string{"start RenderGL", "start ImageCodec", "launch", "stop ImageCodec", "stop RenderGL"}, order)
	assert.Equal(t, []string{file("ImageCodec"), file("RenderGL")}, loader.Closed())
}

func TestRunPluginStartFailure(t *testing.T) {
	files := map[string]string{
		"plugins.hcl": `plugins { names = ["RenderGL"] }`,
	}
	loader := variantLoader("PlatformApp", "libPlatformApp.so", func(...uintptr) uintptr {
		t.Error("entry point must not be called when a plugin fails")
		return 0
	})
	loader.Add("RenderGL", map[string]native.Func{plugin.StartSymbol: testutil.Result(1)})

	a, _ := SetupAppTest(t, &Config{Variant: "PlatformApp"}, files, loader)

	var resErr *plugin.ResultError
	require.ErrorAs(t, a.Run(context.Background()), &resErr)
	assert.Equal(t, "RenderGL", resErr.Plugin)
}

func TestRunPluginsFromManifestDirectory(t *testing.T) {
	files := map[string]string{
		"plugins.hcl":    `plugins { names = ["RenderGL"] }`,
		file("RenderGL"): "",
	}
	loader := variantLoader("PlatformApp", "libPlatformApp.so", testutil.Result(0))

	a, _ := SetupAppTest(t, &Config{Variant: "PlatformApp"}, files, loader)
	want := filepath.Join(a.config.ManifestPath, file("RenderGL"))
	loader.AddPath(want, map[string]native.Func{
		plugin.StartSymbol: testutil.Result(0),
		plugin.StopSymbol:  testutil.Result(0),
	})
	require.NoError(t, a.Run(context.Background()))

	assert.Equal(t, 1, loader.OpenCount(want))
	assert.Equal(t, []string{want}, loader.Closed())
}

func TestRunOverridesBuiltinVariant(t *testing.T) {
	files := map[string]string{
		"hello.hcl": `
			app "Hello" {
				libraries = ["T3DPlatform", "T3DCore", "Demo_Hello"]
				entry {
					shared_object = "libHelloNext.so"
				}
			}
		`,
	}
	loader := testutil.NewFakeLoader().
		Add("T3DPlatform", nil).
		Add("T3DCore", nil).
		Add("Demo_Hello", nil).
		AddPath("libHelloNext.so", map[string]native.Func{"main": testutil.Result(0)})

	a, _ := SetupAppTest(t, &Config{Variant: "Hello"}, files, loader)
	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, "libHelloNext.so", a.Bootstrap().MainSharedObject())
	assert.Empty(t, a.Bootstrap().Manifest().NativeMethods)
}
