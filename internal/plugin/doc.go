// Package plugin manages engine plugins: shared objects that export
// dllStartPlugin and dllStopPlugin. Both take no arguments and return an
// engine result code where zero means success.
//
// Unlike the libraries of a manifest, plugins can be unloaded again. The
// manager owns their handles and closes a plugin once it has been stopped.
package plugin
