// Package integration_tests drives the launcher end to end, from command-line
// arguments through configuration loading to the native entry point, with an
// in-memory library loader in place of real shared objects.
package integration_tests
