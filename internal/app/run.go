package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vk/t3dlaunch/internal/bootstrap"
	"github.com/vk/t3dlaunch/internal/ctxlog"
	"github.com/vk/t3dlaunch/internal/plugin"
)

// Run launches the configured variant: it loads the variant's libraries,
// starts the configured plugins and calls the native entry point. With List
// set it prints the registered variants instead; with DryRun it stops after
// resolving the entry point.
func (a *App) Run(ctx context.Context) (err error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.List {
		return a.listVariants()
	}

	m, err := a.registry.Manifest(a.config.Variant)
	if err != nil {
		return err
	}
	logger := a.logger.With("variant", m.Name)

	b := bootstrap.New(m,
		bootstrap.WithCache(a.cache),
		bootstrap.WithSearchPaths(a.config.LibraryPaths...),
	)
	a.active.Store(b)

	if err := a.startHealthcheckServer(a.config.HealthcheckPort); err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, a.closeHealthcheckServer())
	}()

	logger.Info("Loading native libraries.", "libraries", len(m.Libraries))
	if err := b.Load(ctx); err != nil {
		return err
	}

	if a.plugins != nil && len(a.plugins.Names) > 0 {
		plugins := plugin.NewManager(a.libs, a.plugins.Path)
		defer func() {
			err = errors.Join(err, plugins.UnloadAll(ctx))
		}()
		if err := plugins.LoadAll(ctx, a.plugins.Names); err != nil {
			return err
		}
		logger.Info("Plugins started.", "plugins", plugins.Loaded())
	}

	if a.config.DryRun {
		return a.resolveOnly(ctx, b)
	}

	code, err := b.Run(ctx, a.config.Args)
	if err != nil {
		return err
	}
	if code != 0 {
		return &NativeExitError{Code: code}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// resolveOnly checks that the entry point and every native method resolve
// without calling any of them.
func (a *App) resolveOnly(ctx context.Context, b *bootstrap.Bootstrap) error {
	if _, err := b.Entry(ctx); err != nil {
		return err
	}
	m := b.Manifest()
	for _, method := range m.NativeMethods {
		if _, err := b.NativeMethod(ctx, method); err != nil {
			return err
		}
	}
	fmt.Fprintf(a.outW, "%s: %s resolved in %s\n", m.Name, b.MainFunction(), b.MainSharedObject())
	ctxlog.FromContext(ctx).Info("Dry run complete, entry point not called.")
	return nil
}

// listVariants prints one line per registered variant with its load order.
func (a *App) listVariants() error {
	for _, name := range a.registry.Names() {
		m, err := a.registry.Manifest(name)
		if err != nil {
			return err
		}
		line := fmt.Sprintf("%s\t%s:%s\t%s", name, m.EntrySharedObject, m.Symbol(), strings.Join(m.Libraries, " -> "))
		if len(m.NativeMethods) > 0 {
			line += "\t[" + strings.Join(m.NativeMethods, ", ") + "]"
		}
		if _, err := fmt.Fprintln(a.outW, line); err != nil {
			return err
		}
	}
	return nil
}
