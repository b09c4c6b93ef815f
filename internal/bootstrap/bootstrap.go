package bootstrap

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/vk/t3dlaunch/internal/ctxlog"
	"github.com/vk/t3dlaunch/internal/manifest"
	"github.com/vk/t3dlaunch/internal/native"
)

// Phase is the load state of a Bootstrap. It only moves forward.
type Phase int32

const (
	Unloaded Phase = iota
	Loaded
	Failed
)

// String implements fmt.Stringer.
func (p Phase) String() string {
	switch p {
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unloaded"
	}
}

// Option configures a Bootstrap.
type Option func(*Bootstrap)

// WithCache sets the resident library cache. The default is native.Process().
func WithCache(c *native.Cache) Option {
	return func(b *Bootstrap) { b.cache = c }
}

// WithSearchPaths sets the directories searched for library files before
// falling back to the system loader path.
func WithSearchPaths(dirs ...string) Option {
	return func(b *Bootstrap) { b.searchPaths = slices.Clone(dirs) }
}

// WithPlatform overrides the GOOS used to derive library file names.
func WithPlatform(goos string) Option {
	return func(b *Bootstrap) { b.goos = goos }
}

// Bootstrap loads the libraries of one manifest and exposes its entry point.
// It is safe for concurrent use.
type Bootstrap struct {
	manifest    manifest.Manifest
	cache       *native.Cache
	searchPaths []string
	goos        string

	once    sync.Once
	phase   atomic.Int32
	err     error
	loading string
}

// New returns an unloaded Bootstrap for m. The manifest is copied; it is
// expected to have passed manifest.Validate.
func New(m manifest.Manifest, opts ...Option) *Bootstrap {
	b := &Bootstrap{
		manifest: m.Clone(),
		goos:     runtime.GOOS,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.cache == nil {
		b.cache = native.Process()
	}
	return b
}

// Load makes every library of the manifest resident, in manifest order. The
// work happens once; concurrent and later callers wait for it and get the
// same result. Loading cannot be interrupted, ctx only supplies the logger.
// A loader panic fails the bootstrap with ErrLoaderPanic before it is
// propagated to the first caller.
func (b *Bootstrap) Load(ctx context.Context) error {
	b.once.Do(func() {
		defer func() {
			if r := recover(); r != nil {
				b.err = &LoadError{Library: b.loading, Path: b.path(b.loading), Err: fmt.Errorf("%w: %v", ErrLoaderPanic, r)}
				b.phase.Store(int32(Failed))
				panic(r)
			}
		}()

		b.err = b.load(ctx)
		if b.err != nil {
			b.phase.Store(int32(Failed))
			return
		}
		b.phase.Store(int32(Loaded))
	})
	return b.err
}

// MustLoad is like Load but panics on failure.
func (b *Bootstrap) MustLoad(ctx context.Context) {
	if err := b.Load(ctx); err != nil {
		panic(err)
	}
}

func (b *Bootstrap) load(ctx context.Context) error {
	_, logger := ctxlog.With(ctx, "variant", b.manifest.Name)
	logger.Debug("Loading native libraries.", "libraries", b.manifest.Libraries)

	for _, name := range b.manifest.Libraries {
		path := b.path(name)
		b.loading = name
		_, resident, err := b.cache.Load(path)
		if err != nil {
			logger.Error("Native library load failed.", "library", name, "path", path, "error", err)
			return &LoadError{Library: name, Path: path, Err: err}
		}
		logger.Debug("Native library resident.", "library", name, "path", path, "already_resident", resident)
	}

	logger.Info("Native libraries loaded.", "count", len(b.manifest.Libraries))
	return nil
}

func (b *Bootstrap) path(name string) string {
	return native.Resolve(b.searchPaths, native.FileName(name, b.goos))
}

// Phase returns the current load state.
func (b *Bootstrap) Phase() Phase {
	return Phase(b.phase.Load())
}

// Err returns the load error, if the bootstrap failed.
func (b *Bootstrap) Err() error {
	if b.Phase() != Failed {
		return nil
	}
	return b.err
}

// MainSharedObject returns the file name of the shared object holding the
// native entry point.
func (b *Bootstrap) MainSharedObject() string {
	return b.manifest.EntrySharedObject
}

// MainFunction returns the name of the entry symbol inside MainSharedObject.
func (b *Bootstrap) MainFunction() string {
	return b.manifest.Symbol()
}

// Libraries returns the manifest's libraries in load order.
func (b *Bootstrap) Libraries() []string {
	return slices.Clone(b.manifest.Libraries)
}

// Manifest returns a copy of the manifest.
func (b *Bootstrap) Manifest() manifest.Manifest {
	return b.manifest.Clone()
}

// Entry resolves the entry symbol. It requires a successful Load.
func (b *Bootstrap) Entry(ctx context.Context) (native.Func, error) {
	return b.lookup(ctx, b.MainFunction())
}

// NativeMethod resolves one of the manifest's declared native methods in the
// entry shared object. The returned function takes no arguments.
func (b *Bootstrap) NativeMethod(ctx context.Context, name string) (native.Func, error) {
	if !b.manifest.DeclaresMethod(name) {
		return nil, fmt.Errorf("%w: %q in variant %q", ErrUndeclaredMethod, name, b.manifest.Name)
	}
	return b.lookup(ctx, name)
}

func (b *Bootstrap) lookup(ctx context.Context, symbol string) (native.Func, error) {
	switch b.Phase() {
	case Failed:
		return nil, b.err
	case Unloaded:
		return nil, ErrNotLoaded
	}

	logger := ctxlog.FromContext(ctx)
	path := b.path(b.manifest.EntrySharedObject)
	lib, ok := b.cache.Get(path)
	if !ok {
		var err error
		lib, _, err = b.cache.Load(path)
		if err != nil {
			return nil, &LoadError{Library: b.manifest.EntrySharedObject, Path: path, Err: err}
		}
		logger.Debug("Entry shared object loaded.", "path", path)
	}

	fn, err := lib.Lookup(symbol)
	if err != nil {
		return nil, &LoadError{Library: b.manifest.EntrySharedObject, Path: path, Symbol: symbol, Err: err}
	}
	return fn, nil
}

// Run loads the libraries if needed and calls the entry point as
// main(argc, argv). argv[0] is the entry shared object; args follow it. The
// entry's return value is returned as the exit code.
func (b *Bootstrap) Run(ctx context.Context, args []string) (int, error) {
	if err := b.Load(ctx); err != nil {
		return 0, err
	}
	entry, err := b.Entry(ctx)
	if err != nil {
		return 0, err
	}

	argv := append([]string{b.MainSharedObject()}, args...)
	logger := ctxlog.FromContext(ctx)
	logger.Info("Calling native entry point.", "shared_object", b.MainSharedObject(), "symbol", b.MainFunction(), "argc", len(argv))

	code := native.CallMain(entry, argv)

	logger.Info("Native entry point returned.", "code", code)
	return int(code), nil
}
