package testutil

import "unsafe"

// Argv decodes an argc/argv pair built by native.CallMain. It is only valid
// inside the native function, while CallMain keeps the memory pinned.
func Argv(argc, argv uintptr) []string {
	if argv == 0 {
		return nil
	}
	// Reinterpret the word instead of converting it, so the pointer never
	// passes through uintptr arithmetic.
	base := *(*unsafe.Pointer)(unsafe.Pointer(&argv))
	slots := unsafe.Slice((**byte)(base), argc+1)

	args := make([]string, argc)
	for i := range args {
		args[i] = cString(slots[i])
	}
	return args
}

func cString(p *byte) string {
	if p == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice(p, n))
}
