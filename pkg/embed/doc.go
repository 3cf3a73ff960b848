// Package embed orders the guide trees of phylogenetic networks so that
// they can be drawn with few crossing reticulate edges, and orders pairs of
// networks jointly for tanglegrams.
//
// # Strategies
//
// Every strategy implements [Embedder] and is selected by name with
// [Lookup]:
//
//   - [Unoptimized]: builds the LSA guide tree in actual out-edge order
//   - [Algorithm2008]: greedy insertion driven by a dependency graph
//     between reticulations and their auxiliary paths
//   - [Algorithm2009]: branch and bound over the children of each guide
//     node, scored by an attraction matrix
//   - [Algorithm2010]: a global taxon order from hardwired clusters and a
//     circular ordering, applied by rotating subtrees by the taxa below
//   - [Algorithm2010Dist]: as Algorithm2010, with shortest-path distances
//   - [AlgorithmLSA]: barycentric passes over the guide tree
//
// Unknown names fall back to Unoptimized. Networks without reticulations
// always end with an empty guide map, which tells renderers to draw the
// actual topology.
//
// Strategies only reorder guide children; the set of guide children of a
// node never changes. The Algorithm2010 family is the only one that also
// reorders actual out-edges.
//
// # Tanglegrams
//
// [Tanglegram] handles two networks drawn side by side. It computes one
// circular order over the taxa of both, rotates both networks by it and
// then refines each network in turn against the other: the network is cut
// into pieces at its reticulations and the leaves of each piece are
// reinserted at the position with the fewest crossings, as long as the
// piece stays compatible with the pieces already placed. Refinement stops
// after [DefaultMaxRounds] rounds or when a round brings no improvement.
//
// # Determinism
//
// No strategy uses randomness or wall-clock time. Running a strategy twice
// on copies of the same network yields identical guide maps.
//
// # Cancellation
//
// Strategies poll their context between steps and return an error coded
// errors.ErrCodeCancelled when it is done. The guide map is then undefined.
package embed
