package hcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/vk/t3dlaunch/internal/native"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// newEvalContext returns the context all expressions in a file are evaluated
// in. goos selects the shared object naming used by soname.
func newEvalContext(goos string) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"goos": cty.StringVal(goos),
		},
		Functions: map[string]function.Function{
			"soname": sonameFunc(goos),
			"upper":  stdlib.UpperFunc,
		},
	}
}

// sonameFunc maps a bare library name to its file name on goos, for example
// soname("Core") is "libCore.so" on linux.
func sonameFunc(goos string) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "name", Type: cty.String},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			return cty.StringVal(native.FileName(args[0].AsString(), goos)), nil
		},
	})
}
