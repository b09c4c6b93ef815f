package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/t3dlaunch/internal/ctxlog"
	"github.com/vk/t3dlaunch/internal/manifest"
)

// Validate checks the catalog and every manifest against it. All
// problems are reported together.
func (r *Registry) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	var errs []error
	if err := manifest.CheckCatalog(r.Catalog); err != nil {
		errs = append(errs, fmt.Errorf("library catalog: %w", err))
	}
	for _, name := range r.Names() {
		if err := manifest.Validate(r.Manifests[name], r.Catalog); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed: %w", errors.Join(errs...))
	}

	logger.Debug("Registry validated.", "libraries", len(r.Catalog), "variants", len(r.Manifests))
	return nil
}
