// Package native opens shared objects and calls functions inside them
// without cgo.
//
// On darwin, freebsd, linux and android the default Loader is backed by
// purego's dlopen bindings; on windows by LoadLibrary from x/sys/windows.
// Libraries are opened with RTLD_NOW|RTLD_GLOBAL: every symbol is resolved at
// open time, and the symbols of a library become visible to the libraries
// opened after it.
//
// Cache tracks the libraries that are resident in the process. A path is
// opened at most once and is never closed again.
package native
