// Package pkg provides the core libraries for Framewright parametric
// framework layout.
//
// # Overview
//
// Framewright models linear framework assemblies (structural columns
// joined by window, door and blanking panels) and keeps their derived
// layout in sync with edits incrementally. The pkg directory is
// organized into these areas:
//
//  1. [frame] - Domain model (nodes, panels, assemblies, validation)
//  2. [frame/resolve] - O(n) left-to-right position resolution
//  3. [frame/diff] - Structural change detection via content hashing
//  4. [frame/transform] - Lazily rebuilt world-transform cache
//  5. [engine] - Debounced edit sessions tying the above together
//  6. [store] - Persistence backends (file, memory, redis, mongo)
//  7. [render/elevation] - SVG elevation drawings
//  8. [cache] - Byte-level caching for rendered artifacts
//
// # Architecture
//
// The typical data flow through an edit:
//
//	Command (CLI / TUI / HTTP)
//	         ↓
//	    [engine] session (mutate + immediate resolve)
//	         ↓ debounced
//	    [frame/resolve] pass → [frame/diff] change set
//	         ↓
//	    [frame/transform] minimal transform updates
//	         ↓
//	    Applier + [store] autosave
//
// # Quick Start
//
// Build a chain, resolve it and render an elevation:
//
//	a := frame.NewAssembly("garden room")
//	a.AppendNode(frame.NodeCorner290, frame.PanelWindow, 0)
//	a.AppendNode(frame.NodeCorner290, frame.PanelWindow, 1200)
//
//	res := resolve.Pass(a, resolve.Options{})
//	svg, _ := elevation.RenderString(a, elevation.Options{})
//
// Or drive edits through a session so syncs coalesce:
//
//	sess := engine.NewSession(a, engine.Options{Store: st})
//	sess.MoveNode(ctx, nodeID, 2000)
//	sess.Flush(ctx)
//
// [frame]: https://pkg.go.dev/github.com/framewright/framewright/pkg/frame
// [frame/resolve]: https://pkg.go.dev/github.com/framewright/framewright/pkg/frame/resolve
// [frame/diff]: https://pkg.go.dev/github.com/framewright/framewright/pkg/frame/diff
// [frame/transform]: https://pkg.go.dev/github.com/framewright/framewright/pkg/frame/transform
// [engine]: https://pkg.go.dev/github.com/framewright/framewright/pkg/engine
// [store]: https://pkg.go.dev/github.com/framewright/framewright/pkg/store
// [render/elevation]: https://pkg.go.dev/github.com/framewright/framewright/pkg/render/elevation
// [cache]: https://pkg.go.dev/github.com/framewright/framewright/pkg/cache
package pkg
