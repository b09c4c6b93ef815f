package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// fileRoot is a struct used to decode all possible top-level blocks from any
// file. Anything else at the top level is a decode error.
type fileRoot struct {
	Libraries []*libraryBlock `hcl:"library,block"`
	Apps      []*appBlock     `hcl:"app,block"`
	Plugins   []*pluginsBlock `hcl:"plugins,block"`
}

// libraryBlock declares a library and its load-order dependencies.
type libraryBlock struct {
	Name      string   `hcl:"name,label"`
	Kind      string   `hcl:"kind,optional"`
	DependsOn []string `hcl:"depends_on,optional"`
}

// appBlock declares an application variant.
type appBlock struct {
	Name          string      `hcl:"name,label"`
	Libraries     []string    `hcl:"libraries"`
	NativeMethods []string    `hcl:"native_methods,optional"`
	Entry         *entryBlock `hcl:"entry,block"`
}

type entryBlock struct {
	SharedObject string `hcl:"shared_object"`
	Symbol       string `hcl:"symbol,optional"`
}

// pluginsBlock lists the plugins to start after the app libraries are loaded.
type pluginsBlock struct {
	Path  hcl.Expression `hcl:"path,optional"`
	Names []string       `hcl:"names"`
}
