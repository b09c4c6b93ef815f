//go:build darwin || freebsd || linux

package native

import (
	"fmt"

	"github.com/ebitengine/purego"
)

type systemLoader struct{}

func (systemLoader) Open(path string) (Library, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("dlopen %s: %w", path, err)
	}
	if handle == 0 {
		return nil, fmt.Errorf("dlopen %s: nil handle", path)
	}
	return &sharedObject{name: path, handle: handle}, nil
}

type sharedObject struct {
	name   string
	handle uintptr
}

func (so *sharedObject) Name() string { return so.name }

func (so *sharedObject) Lookup(symbol string) (Func, error) {
	addr, err := purego.Dlsym(so.handle, symbol)
	if err != nil {
		return nil, &SymbolError{Library: so.name, Symbol: symbol, Err: err}
	}
	return funcAt(addr), nil
}

func (so *sharedObject) Close() error {
	if so.handle == 0 {
		return nil
	}
	if err := purego.Dlclose(so.handle); err != nil {
		return fmt.Errorf("dlclose %s: %w", so.name, err)
	}
	so.handle = 0
	return nil
}
