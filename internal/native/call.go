//go:build darwin || freebsd || linux || windows

package native

import "github.com/ebitengine/purego"

func funcAt(addr uintptr) Func {
	return func(args ...uintptr) uintptr {
		r1, _, _ := purego.SyscallN(addr, args...)
		return r1
	}
}
