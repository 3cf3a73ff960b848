// Package dot draws an embedded network as a Graphviz diagram for
// debugging orderings.
//
// [ToDOT] lays the guide tree out top-down with ordering=out, so Graphviz
// keeps the children of every node in guide order, and pins the leaves on
// one rank in the network's leaf order. Reticulate edges are added as
// non-constraining dashed edges; transfer edges are drawn in red. Guide
// edges without an actual counterpart (from a lowest stable ancestor to its
// reticulation) are invisible.
//
//	src := dot.ToDOT(n, dot.Options{})
//	svg, err := dot.RenderSVG(src)
//
// Rendering runs in-process through github.com/goccy/go-graphviz.
package dot
