// Package bootstrap is the generic launch routine for a native variant.
//
// A Bootstrap is built from one manifest.Manifest. Load brings every
// library of the manifest into the process in order, exactly once; after
// that the entry symbol can be resolved and run. A failed load is final:
// libraries that later entries depend on cannot be assumed resident, so the
// bootstrap stays failed and keeps returning the first error.
//
//	b := bootstrap.New(m, bootstrap.WithSearchPaths("lib"))
//	b.MustLoad(ctx)
//	code, err := b.Run(ctx, os.Args[1:])
package bootstrap
