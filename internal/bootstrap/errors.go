package bootstrap

import (
	"errors"
	"fmt"
)

var (
	// ErrNotLoaded is returned when the entry point is requested before Load.
	ErrNotLoaded = errors.New("native libraries not loaded")
	// ErrUndeclaredMethod is returned for native methods the manifest does
	// not declare.
	ErrUndeclaredMethod = errors.New("native method not declared")
	// ErrLoaderPanic wraps a panic raised while opening a native library.
	ErrLoaderPanic = errors.New("native loader panicked")
)

// LoadError reports a native library that could not be made resident, or an
// entry symbol that could not be resolved in it.
type LoadError struct {
	Library string
	Path    string
	Symbol  string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Symbol != "" {
		return fmt.Sprintf("resolve %s in native library %q (%s): %v", e.Symbol, e.Library, e.Path, e.Err)
	}
	return fmt.Sprintf("load native library %q (%s): %v", e.Library, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
