package testutil

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/vk/t3dlaunch/internal/native"
)

// ErrNoSuchLibrary is returned by FakeLoader for paths it does not know.
var ErrNoSuchLibrary = errors.New("cannot open shared object file: No such file or directory")

// FakeLoader is a native.Loader serving libraries from memory. It records
// every open and close so tests can assert on load order and counts.
type FakeLoader struct {
	mu       sync.Mutex
	libs     map[string]map[string]native.Func
	failures map[string]error
	// Lenient makes unknown paths open as libraries without symbols.
	Lenient bool

	opens  []string
	counts map[string]int
	closed []string
}

// NewFakeLoader returns an empty, strict FakeLoader.
func NewFakeLoader() *FakeLoader {
	return &FakeLoader{
		libs:     make(map[string]map[string]native.Func),
		failures: make(map[string]error),
		counts:   make(map[string]int),
	}
}

// AddPath registers a library under an exact path.
func (f *FakeLoader) AddPath(path string, symbols map[string]native.Func) *FakeLoader {
	f.mu.Lock()
	defer f.mu.Unlock()

	if symbols == nil {
		symbols = map[string]native.Func{}
	}
	f.libs[path] = symbols
	return f
}

// Add registers a library by bare name, using the file name the current
// platform would look for.
func (f *FakeLoader) Add(name string, symbols map[string]native.Func) *FakeLoader {
	return f.AddPath(native.FileName(name, runtime.GOOS), symbols)
}

// Fail makes opening path return err.
func (f *FakeLoader) Fail(path string, err error) *FakeLoader {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.failures[path] = err
	return f
}

// Open implements native.Loader.
func (f *FakeLoader) Open(path string) (native.Library, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.opens = append(f.opens, path)
	f.counts[path]++

	if err, ok := f.failures[path]; ok {
		return nil, fmt.Errorf("dlopen %s: %w", path, err)
	}
	symbols, ok := f.libs[path]
	if !ok {
		if !f.Lenient {
			return nil, fmt.Errorf("dlopen %s: %w", path, ErrNoSuchLibrary)
		}
		symbols = map[string]native.Func{}
	}
	return &fakeLibrary{loader: f, name: path, symbols: symbols}, nil
}

// Opens returns every path passed to Open, in call order.
func (f *FakeLoader) Opens() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.opens...)
}

// OpenCount returns how many times path was opened.
func (f *FakeLoader) OpenCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[path]
}

// Closed returns every closed path, in call order.
func (f *FakeLoader) Closed() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.closed...)
}

type fakeLibrary struct {
	loader  *FakeLoader
	name    string
	symbols map[string]native.Func
}

func (l *fakeLibrary) Name() string { return l.name }

func (l *fakeLibrary) Lookup(symbol string) (native.Func, error) {
	l.loader.mu.Lock()
	defer l.loader.mu.Unlock()

	fn, ok := l.symbols[symbol]
	if !ok {
		return nil, &native.SymbolError{Library: l.name, Symbol: symbol, Err: errors.New("undefined symbol")}
	}
	return fn, nil
}

func (l *fakeLibrary) Close() error {
	l.loader.mu.Lock()
	defer l.loader.mu.Unlock()

	l.loader.closed = append(l.loader.closed, l.name)
	return nil
}

// Result returns a native.Func that always returns code.
func Result(code int32) native.Func {
	return func(...uintptr) uintptr { return uintptr(uint32(code)) }
}
