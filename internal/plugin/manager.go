package plugin

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"sync"

	"github.com/vk/t3dlaunch/internal/ctxlog"
	"github.com/vk/t3dlaunch/internal/native"
)

// Exported plugin entry points.
const (
	StartSymbol = "dllStartPlugin"
	StopSymbol  = "dllStopPlugin"
)

type loadedPlugin struct {
	name string
	lib  native.Library
}

// Manager loads and unloads plugins from one directory. It is safe for
// concurrent use.
type Manager struct {
	loader native.Loader
	path   string
	goos   string

	mu      sync.Mutex
	plugins []*loadedPlugin
}

// NewManager returns a manager that opens plugins found in path with loader.
func NewManager(loader native.Loader, path string) *Manager {
	return &Manager{
		loader: loader,
		path:   path,
		goos:   runtime.GOOS,
	}
}

// Path returns the plugin directory.
func (m *Manager) Path() string {
	return m.path
}

// Load opens the named plugin and calls its start function. Loading a plugin
// that is already loaded does nothing. A plugin whose start function fails is
// closed again.
func (m *Manager) Load(ctx context.Context, name string) error {
	_, logger := ctxlog.With(ctx, "plugin", name)
	logger.Info("Loading plugin.")

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.find(name) >= 0 {
		logger.Info("Plugin already loaded.")
		return nil
	}

	path := native.Resolve([]string{m.path}, native.FileName(name, m.goos))
	lib, err := m.loader.Open(path)
	if err != nil {
		return fmt.Errorf("load plugin %q: %w", name, err)
	}

	start, err := lib.Lookup(StartSymbol)
	if err != nil {
		logger.Error("Plugin start function missing.", "path", path, "error", err)
		return errors.Join(fmt.Errorf("load plugin %q: %w", name, ErrNoStartFunction), closeLibrary(lib))
	}

	if code := int32(start()); code != 0 {
		logger.Error("Plugin start failed.", "code", code)
		return errors.Join(&ResultError{Plugin: name, Symbol: StartSymbol, Code: code}, closeLibrary(lib))
	}

	m.plugins = append(m.plugins, &loadedPlugin{name: name, lib: lib})
	logger.Debug("Plugin started.", "path", path)
	return nil
}

// LoadAll loads the named plugins in order and stops at the first failure.
func (m *Manager) LoadAll(ctx context.Context, names []string) error {
	for _, name := range names {
		if err := m.Load(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

// Unload calls the plugin's stop function and closes it. When the stop
// function fails the plugin stays loaded.
func (m *Manager) Unload(ctx context.Context, name string) error {
	_, logger := ctxlog.With(ctx, "plugin", name)
	logger.Info("Unloading plugin.")

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.find(name)
	if i < 0 {
		logger.Error("Plugin does not exist.")
		return fmt.Errorf("unload plugin %q: %w", name, ErrNotLoaded)
	}

	if err := m.stop(m.plugins[i]); err != nil {
		return err
	}
	m.plugins = slices.Delete(m.plugins, i, i+1)
	return nil
}

// UnloadAll stops and closes every plugin, most recently loaded first. The
// plugin table is empty afterwards even if some plugins failed to stop; those
// plugins are left open.
func (m *Manager) UnloadAll(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for i := len(m.plugins) - 1; i >= 0; i-- {
		p := m.plugins[i]
		if err := m.stop(p); err != nil {
			logger.Warn("Plugin did not stop cleanly.", "plugin", p.name, "error", err)
			errs = append(errs, err)
		}
	}
	m.plugins = nil
	return errors.Join(errs...)
}

// Loaded returns the names of all loaded plugins in load order.
func (m *Manager) Loaded() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, len(m.plugins))
	for i, p := range m.plugins {
		names[i] = p.name
	}
	return names
}

func (m *Manager) stop(p *loadedPlugin) error {
	stop, err := p.lib.Lookup(StopSymbol)
	if err != nil {
		return fmt.Errorf("unload plugin %q: %w", p.name, ErrNoStopFunction)
	}
	if code := int32(stop()); code != 0 {
		return &ResultError{Plugin: p.name, Symbol: StopSymbol, Code: code}
	}
	return closeLibrary(p.lib)
}

func (m *Manager) find(name string) int {
	return slices.IndexFunc(m.plugins, func(p *loadedPlugin) bool { return p.name == name })
}

func closeLibrary(lib native.Library) error {
	if err := lib.Close(); err != nil {
		return fmt.Errorf("close %s: %w", lib.Name(), err)
	}
	return nil
}
