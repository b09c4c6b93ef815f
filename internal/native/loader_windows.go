//go:build windows

package native

import (
	"fmt"

	"golang.org/x/sys/windows"
)

type systemLoader struct{}

func (systemLoader) Open(path string) (Library, error) {
	handle, err := windows.LoadLibrary(path)
	if err != nil {
		return nil, fmt.Errorf("LoadLibrary %s: %w", path, err)
	}
	return &dll{name: path, handle: handle}, nil
}

type dll struct {
	name   string
	handle windows.Handle
}

func (d *dll) Name() string { return d.name }

func (d *dll) Lookup(symbol string) (Func, error) {
	addr, err := windows.GetProcAddress(d.handle, symbol)
	if err != nil {
		return nil, &SymbolError{Library: d.name, Symbol: symbol, Err: err}
	}
	return funcAt(addr), nil
}

func (d *dll) Close() error {
	if d.handle == 0 {
		return nil
	}
	if err := windows.FreeLibrary(d.handle); err != nil {
		return fmt.Errorf("FreeLibrary %s: %w", d.name, err)
	}
	d.handle = 0
	return nil
}
