// Package network provides the rooted phylogenetic network model shared by
// the embedding strategies.
//
// # Overview
//
// A [Network] is a rooted directed acyclic graph whose leaves carry taxon
// labels. A node with two or more parents is a reticulation; the edges
// entering it are usually added with [Network.AddSpecialEdge]. A special
// edge with a positive weight is a horizontal-transfer edge, which changes
// where the reticulation is anchored in the guide tree.
//
// Nodes are arena-indexed: [NodeID] values are dense integers in insertion
// order, so per-node working data in the algorithms lives in plain slices.
//
// # Actual Order and Guide Tree
//
// Each node keeps an ordered list of out-edges (the actual adjacency). Only
// [Network.SetOutEdgeOrder] changes that order.
//
// On top of the actual graph sits the guide-tree map: for each node an
// ordered list of guide children. Every non-root node has exactly one guide
// parent, so the map describes a spanning tree that a renderer can lay out
// like an ordinary tree while drawing the remaining reticulate edges across
// it. Strategies only ever reorder guide children; [Network.SetGuideChildren]
// rejects anything that is not a permutation of the current list.
//
// An empty map ([Network.HasGuide] false) means "draw the actual topology".
// [BuildGuideTree] produces that for networks without reticulations.
//
// # Lowest Stable Ancestors
//
// [ComputeLSA] places every reticulation below its lowest stable ancestor,
// the immediate dominator of the node (every root path passes through it).
// Dominators are computed with the Cooper-Harvey-Kennedy iteration, which
// runs in near-linear time on the shallow dominator trees of phylogenies.
//
// # Traversal
//
// [Network.Preorder], [Network.GuidePreorder], [Network.GuidePostorder] and
// [Network.LeafOrder] use explicit stacks, so very deep networks do not
// exhaust the goroutine stack.
//
// # Concurrency
//
// A Network is not safe for concurrent mutation. Strategies work on one
// network per call and never share one between goroutines.
package network
