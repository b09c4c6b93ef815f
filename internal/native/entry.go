package native

import (
	"runtime"
	"unsafe"
)

// CallMain invokes fn with the C signature int main(int argc, char **argv).
// The argument strings and the argv array stay pinned for the duration of
// the call; argv is NULL terminated.
func CallMain(fn Func, args []string) int32 {
	var pinner runtime.Pinner
	defer pinner.Unpin()

	argv := make([]*byte, len(args)+1)
	for i, arg := range args {
		buf := append([]byte(arg), 0)
		pinner.Pin(&buf[0])
		argv[i] = &buf[0]
	}
	pinner.Pin(&argv[0])

	ret := fn(uintptr(len(args)), uintptr(unsafe.Pointer(&argv[0])))
	runtime.KeepAlive(argv)
	return int32(ret)
}
