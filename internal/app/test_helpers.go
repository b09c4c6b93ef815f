package app

import (
	"os"
	"testing"

	"github.com/vk/t3dlaunch/internal/hcl"
	"github.com/vk/t3dlaunch/internal/native"
	"github.com/vk/t3dlaunch/internal/registry"
	"github.com/vk/t3dlaunch/internal/testutil"
)

// SetupAppTest creates a new app instance for system testing. files, if any,
// are written to a temporary directory that becomes the manifest path. libs
// stands in for the platform loader.
func SetupAppTest(t *testing.T, appConfig *Config, files map[string]string, libs native.Loader, modules ...registry.Module) (*App, *testutil.SafeBuffer) {
	t.Helper()

	if len(files) > 0 {
		appConfig.ManifestPath = testutil.WriteFiles(t, files)
	}

	logBuffer := &testutil.SafeBuffer{}
	appConfig.LogLevel = "debug"
	testApp := NewApp(logBuffer, appConfig, hcl.NewLoader(), libs, modules...)

	t.Cleanup(func() {
		if os.Getenv("T3D_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer
}
