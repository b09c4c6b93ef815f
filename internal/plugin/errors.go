package plugin

import (
	"errors"
	"fmt"
)

var (
	// ErrNotLoaded is returned when unloading a plugin that is not loaded.
	ErrNotLoaded = errors.New("plugin not loaded")
	// ErrNoStartFunction is returned when a plugin lacks dllStartPlugin.
	ErrNoStartFunction = errors.New("plugin has no " + StartSymbol + " function")
	// ErrNoStopFunction is returned when a plugin lacks dllStopPlugin.
	ErrNoStopFunction = errors.New("plugin has no " + StopSymbol + " function")
)

// ResultError reports a non-zero result code from a plugin entry point.
type ResultError struct {
	Plugin string
	Symbol string
	Code   int32
}

func (e *ResultError) Error() string {
	return fmt.Sprintf("plugin %q: %s returned %d", e.Plugin, e.Symbol, e.Code)
}
