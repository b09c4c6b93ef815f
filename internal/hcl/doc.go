// Package hcl provides the HCL implementation of config.Loader. It reads
// `library`, `app` and `plugins` blocks from .hcl files and translates them
// into the format-agnostic config.Model.
package hcl
