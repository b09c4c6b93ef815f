package manifest

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/vk/t3dlaunch/internal/dag"
)

// ErrInvalid is wrapped by every error returned from Validate.
var ErrInvalid = errors.New("invalid manifest")

// Validate checks that m can be loaded in the order it declares. All problems
// are reported together.
func Validate(m Manifest, catalog Catalog) error {
	var errs []error
	if m.Name == "" {
		errs = append(errs, errors.New("name is empty"))
	}
	if m.EntrySharedObject == "" {
		errs = append(errs, errors.New("entry shared object is empty"))
	}
	if len(m.Libraries) == 0 {
		errs = append(errs, errors.New("library list is empty"))
	}

	index := make(map[string]int, len(m.Libraries))
	for i, lib := range m.Libraries {
		if lib == "" {
			errs = append(errs, fmt.Errorf("library #%d has an empty name", i))
			continue
		}
		if prev, dup := index[lib]; dup {
			errs = append(errs, fmt.Errorf("library %q is listed twice (#%d and #%d)", lib, prev, i))
			continue
		}
		index[lib] = i
	}

	for _, required := range []string{Platform, Core} {
		if _, ok := index[required]; !ok && len(m.Libraries) > 0 {
			errs = append(errs, fmt.Errorf("required library %q is missing", required))
		}
	}

	misordered := false
	for i, lib := range m.Libraries {
		if index[lib] != i {
			continue
		}
		needs := requirements(lib, m.Libraries, catalog)

		for _, dep := range needs {
			at, ok := index[dep]
			switch {
			case !ok && dep != Platform && dep != Core:
				errs = append(errs, fmt.Errorf("library %q depends on %q which is not in the list", lib, dep))
			case ok && at > i:
				errs = append(errs, fmt.Errorf("library %q is loaded before its dependency %q", lib, dep))
				misordered = true
			}
		}
	}

	seen := make(map[string]bool, len(m.NativeMethods))
	for _, method := range m.NativeMethods {
		if method == "" {
			errs = append(errs, errors.New("native method with empty name"))
		} else if seen[method] {
			errs = append(errs, fmt.Errorf("native method %q is declared twice", method))
		}
		seen[method] = true
	}

	if misordered {
		if order, err := Order(m.Libraries, catalog); err == nil {
			errs = append(errs, fmt.Errorf("expected load order: %s", strings.Join(order, ", ")))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w %q: %w", ErrInvalid, m.Name, errors.Join(errs...))
	}
	return nil
}

// Order returns a load order for libs that puts every library after the
// libraries it depends on. Engine libraries stay in catalog dependency order,
// application libraries follow Platform, Core and every other engine
// library in libs, and otherwise the given
// relative order is kept. Duplicates are dropped.
func Order(libs []string, catalog Catalog) ([]string, error) {
	g := dag.New()
	for _, lib := range libs {
		g.AddNode(lib)
	}

	for _, lib := range g.Nodes() {
		for _, dep := range requirements(lib, libs, catalog) {
			if !g.Has(dep) {
				continue
			}
			if err := g.AddEdge(dep, lib); err != nil {
				return nil, err
			}
		}
	}

	order, err := g.TopologicalSort()
	if err != nil {
		return nil, fmt.Errorf("cannot order libraries: %w", err)
	}
	return order, nil
}

// requirements lists the libraries that must be resident before lib. An
// application library needs Platform, Core and every engine library in libs.
func requirements(lib string, libs []string, catalog Catalog) []string {
	needs := slices.Clone(catalog[lib].DependsOn)
	if catalog.IsEngine(lib) {
		return needs
	}
	candidates := append([]string{Platform, Core}, libs...)
	for _, other := range candidates {
		required := other == Platform || other == Core || catalog.IsEngine(other)
		if other != lib && required && !slices.Contains(needs, other) {
			needs = append(needs, other)
		}
	}
	return needs
}

// CheckCatalog verifies that every dependency named in the catalog is itself
// in the catalog and that the dependencies form no cycle.
func CheckCatalog(catalog Catalog) error {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	slices.Sort(names)

	g := dag.New()
	for _, name := range names {
		g.AddNode(name)
	}

	var errs []error
	for _, name := range names {
		for _, dep := range catalog[name].DependsOn {
			if !g.Has(dep) {
				errs = append(errs, fmt.Errorf("library %q depends on unknown library %q", name, dep))
				continue
			}
			if err := g.AddEdge(dep, name); err != nil {
				errs = append(errs, fmt.Errorf("library %q: %w", name, err))
			}
		}
	}
	if err := g.DetectCycles(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
