package native

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/vk/t3dlaunch/internal/fsutil"
)

// ErrUnsupported is returned by the default loader on platforms without a
// dynamic loader binding.
var ErrUnsupported = errors.New("native: dynamic loading not supported on " + runtime.GOOS)

// Func is a native function resolved from a library. Arguments and the
// result are passed as machine words.
type Func func(args ...uintptr) uintptr

// Library is an open shared object.
type Library interface {
	// Name returns the path the library was opened with.
	Name() string
	// Lookup resolves an exported symbol.
	Lookup(symbol string) (Func, error)
	// Close releases the library handle.
	Close() error
}

// Loader opens shared objects.
type Loader interface {
	Open(path string) (Library, error)
}

// DefaultLoader returns the loader for the current platform.
func DefaultLoader() Loader {
	return systemLoader{}
}

// SymbolError reports a symbol that could not be resolved.
type SymbolError struct {
	Library string
	Symbol  string
	Err     error
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("symbol %q not found in %s: %v", e.Symbol, e.Library, e.Err)
}

func (e *SymbolError) Unwrap() error { return e.Err }

// FileName turns a bare library name such as "T3DCore" into the file name the
// platform loader expects: libT3DCore.so, libT3DCore.dylib or T3DCore.dll.
// Names that already carry a directory or a shared object extension are
// returned unchanged.
func FileName(name, goos string) string {
	if strings.ContainsAny(name, `/\`) || hasSharedExt(name) {
		return name
	}
	switch goos {
	case "windows":
		return name + ".dll"
	case "darwin", "ios":
		return "lib" + name + ".dylib"
	default:
		return "lib" + name + ".so"
	}
}

func hasSharedExt(name string) bool {
	switch filepath.Ext(name) {
	case ".so", ".dylib", ".dll":
		return true
	}
	return strings.Contains(name, ".so.")
}

// Resolve returns the first dirs entry containing file. When no directory
// holds it, file is returned as is and the system search path applies.
func Resolve(dirs []string, file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	candidate, ok := fsutil.FindFirst(dirs, file)
	if !ok {
		return file
	}
	if abs, err := filepath.Abs(candidate); err == nil {
		return abs
	}
	return candidate
}
