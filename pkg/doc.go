// Package pkg provides the libraries behind netembed, which draws rooted
// phylogenetic networks with few crossing edges.
//
// # Overview
//
// A network is drawn from its guide tree: every reticulation hangs below its
// lowest stable ancestor, and the renderer walks the guide children in
// order. The libraries compute that order.
//
// # Architecture
//
// The typical data flow:
//
//	Newick / JSON file
//	         ↓
//	    [io] package (parse, validate)
//	         ↓
//	    [network] package (graph, LSA guide tree, traversals)
//	         ↓
//	    [embed] package (ordering strategies, tanglegrams)
//	         ↓
//	    Newick / JSON / DOT / SVG output
//
// # Quick Start
//
//	n, err := io.ImportNewick("primates.nwk")
//	if err != nil {
//	    return err
//	}
//	e := embed.Lookup(embed.Algorithm2009, nil)
//	if err := e.Apply(ctx, n); err != nil {
//	    return err
//	}
//	fmt.Println(n.LeafOrder())
//
// # Main Packages
//
// [network] - Rooted networks stored as node and edge arenas with ordered
// out-edges, the LSA guide tree and guide-aware traversals.
//
// [embed] - The embedding strategies (Unoptimized, Algorithm2008,
// Algorithm2009, Algorithm2010, Algorithm2010Dist, AlgorithmLSA) and the
// pairwise tanglegram refiner.
//
// [distance] - Hardwired-cluster and shortest-path distance matrices over
// the taxa of one or more networks.
//
// [circular] - NeighborNet circular orderings of distance matrices.
//
// [taxa] - Taxon indexing and crossing counts between leaf orders.
//
// [io] - Extended Newick and JSON import and export.
//
// [render/dot] - Graphviz DOT output of the guide order and SVG rendering.
//
// ## Infrastructure
//
// [cache] - File, Redis and no-op result caches.
//
// [errors] - Structured errors with machine-readable codes.
//
// [observability] - Hooks for embedding, search, tanglegram and cache events.
//
// [buildinfo] - Version information set at link time.
package pkg
