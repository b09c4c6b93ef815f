// Package dag holds the dependency graph between native libraries. Nodes are
// library names; an edge from A to B means B needs A resident first. The
// graph is used to reject cyclic catalogs and to derive a load order that
// respects every declared dependency.
package dag
