// Package manifest defines the Native Library Manifest: the ordered list of
// shared libraries a variant needs resident before its native entry point
// runs, together with that entry point's shared object and symbol.
//
// A manifest is checked against a Catalog of known libraries. The catalog
// records which libraries belong to the engine and which other libraries
// each one links against, so a manifest can be rejected before anything is
// loaded if its order would leave a symbol unresolved.
package manifest
