package geometryapp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/t3dlaunch/internal/manifest"
	"github.com/vk/t3dlaunch/internal/native"
	"github.com/vk/t3dlaunch/internal/registry"
	"github.com/vk/t3dlaunch/modules/engine"
)

func TestRegister(t *testing.T) {
	r := registry.New()
	(&engine.Module{}).Register(r)
	(&Module{}).Register(r)

	m, err := r.Manifest("GeometryApp")
	require.NoError(t, err)
	assert.Equal(t, "libGeometryApp.so", m.EntrySharedObject)
	assert.Equal(t, "main", m.Symbol())
	assert.Equal(t, []string{"T3DPlatform", "T3DCore", "T3DLog", "T3DMath", "GeometryApp"}, m.Libraries)
	assert.Empty(t, m.NativeMethods)
	assert.Equal(t, manifest.KindApp, r.Catalog["GeometryApp"].Kind)
	require.NoError(t, r.Validate(context.Background()))
}

func TestEntryObjectTargetsLinuxAndAndroid(t *testing.T) {
	for _, goos := range []string{"linux", "android"} {
		assert.Equal(t, native.FileName(Name, goos), Manifest().EntrySharedObject, goos)
	}
	assert.NotEqual(t, native.FileName(Name, "darwin"), Manifest().EntrySharedObject)
}
