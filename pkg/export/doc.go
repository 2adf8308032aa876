// Package export renders an allocation neighborhood as a Graphviz diagram.
//
// The full tree is far too large to draw usefully, so the exporter limits
// itself to the allocated nodes plus the unallocated frontier within a
// small hop radius. Allocated nodes are filled, keystones and notables get
// distinct shapes, and frontier nodes are dashed.
//
// Convert to DOT text first, then optionally render in-process:
//
//	dot := export.ToDOT(t, allocated, export.Options{Radius: 2})
//	svg, err := export.RenderSVG(ctx, dot)
//
// The DOT source also works with external Graphviz tooling unchanged.
package export
