// Package testutil holds test doubles shared by the package tests: an in
// memory native.Loader and a concurrency-safe log buffer.
package testutil
