// Package registry provides the central "glue" for the variant system.
//
// The Registry stores the library catalog and the manifests of every
// launchable variant. Built-in modules register themselves in Go; the
// configuration model loaded from HCL is merged in afterwards and may add
// libraries and variants or replace built-in ones.
//
// During application startup, the registry is populated and then validated so
// that a broken catalog or manifest is reported before any library is opened.
package registry
