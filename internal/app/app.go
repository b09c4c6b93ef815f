package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/vk/t3dlaunch/internal/bootstrap"
	"github.com/vk/t3dlaunch/internal/config"
	"github.com/vk/t3dlaunch/internal/ctxlog"
	"github.com/vk/t3dlaunch/internal/native"
	"github.com/vk/t3dlaunch/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	ctx      context.Context
	config   *Config
	registry *registry.Registry
	plugins  *config.Plugins

	libs  native.Loader
	cache *native.Cache

	active     atomic.Pointer[bootstrap.Bootstrap]
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own logger and registry. libs opens the
// shared objects; nil selects the platform loader and the process-wide cache.
// modules replace the built-in variants when given.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, libs native.Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	var configPaths []string
	if appConfig.ManifestPath != "" {
		configPaths = append(configPaths, appConfig.ManifestPath)
	}

	cfgModel, err := loader.Load(ctx, configPaths...)
	if err != nil {
		// A failure to load config is a fatal startup error.
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	logger.Debug("Configuration loaded and translated into unified model.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(modules))

	if err := reg.PopulateFromModel(cfgModel); err != nil {
		panic(fmt.Errorf("failed to apply configuration: %w", err))
	}
	logger.Debug("Registry populated from config model.", "variants", len(reg.Manifests))

	if err := reg.Validate(ctx); err != nil {
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	cache := native.Process()
	if libs == nil {
		libs = native.DefaultLoader()
	} else {
		cache = native.NewCache(libs)
	}

	return &App{
		outW:     outW,
		logger:   logger,
		ctx:      ctx,
		config:   appConfig,
		registry: reg,
		plugins:  cfgModel.Plugins,
		libs:     libs,
		cache:    cache,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Bootstrap returns the bootstrap of the variant being launched, or nil
// before Run has selected one.
func (a *App) Bootstrap() *bootstrap.Bootstrap {
	return a.active.Load()
}
