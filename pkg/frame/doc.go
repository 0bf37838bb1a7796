// Package frame defines the core data model for linear framework
// assemblies: structural nodes (columns) joined by infill panels.
//
// An Assembly is an ordered chain of Nodes with a Panel spanning each
// gap between adjacent nodes. All dimensions are millimetres. The model
// is purely in-memory and host-agnostic; position resolution, change
// detection and transform caching live in the resolve, diff and
// transform subpackages.
//
// # Structure
//
// The chain invariant is: panels = nodes - 1, each panel referencing
// its bounding nodes by ID. The first node's left edge is canonically
// at offset 0 and all other offsets are derived, never stored
// authoritatively by callers (see the resolve package).
//
// Serialization is deterministic: nodes and panels are written in chain
// order so that identical assemblies marshal to identical bytes. This
// property is load-bearing for change detection and store round-trips.
package frame
