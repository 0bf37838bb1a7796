// Package render groups visualization output for assemblies.
//
// The [elevation] subpackage draws 2D SVG elevations of a resolved
// chain: column rectangles from a ground baseline, panel rectangles
// between head and cill heights with glazing division grids, and an
// optional dimension strip. Output is deterministic, which lets the
// cache package key rendered artifacts by assembly content hash.
//
// [elevation]: https://pkg.go.dev/github.com/framewright/framewright/pkg/render/elevation
package render
