// Package io reads and writes phylogenetic networks as JSON and as extended
// Newick.
//
// # JSON Format
//
//	{
//	  "nodes": [{"id": "r"}, {"id": "a"}, {"id": "h"}, {"id": "A", "label": "A"}],
//	  "edges": [
//	    {"from": "r", "to": "a"},
//	    {"from": "r", "to": "h", "special": true},
//	    {"from": "a", "to": "h", "special": true, "weight": 1},
//	    {"from": "h", "to": "A"}
//	  ],
//	  "root": "r",
//	  "guide": {"r": ["a", "h"]}
//	}
//
// Node IDs are arbitrary strings local to the document. Edge order defines
// the actual child order of each node. A special edge with a positive
// weight is a horizontal transfer. "guide" and "leaf_order" are written by
// [WriteJSON] when the network carries an embedding; [ReadJSON] restores the
// guide map and ignores the leaf order.
//
// # Extended Newick
//
// [ReadNewick] parses a single network with github.com/evolbioinfo/gotree.
// Nodes whose name carries a "#H<n>" suffix are merged into one
// reticulation; a "#LGT<n>" suffix does the same but marks the edge into the
// reference occurrence (the childless, unlabeled one) as a transfer edge:
//
//	((A,(C)#H1),(#H1,B));
//	((A,(C)#LGT1),(#LGT1,B));
//
// [WriteNewick] emits the actual topology in actual out-edge order, so a
// network rotated by the taxa-below strategies keeps its drawing order.
//
// # Validation
//
// Both readers validate the result with network.Validate and reject leaf
// labels that would not survive a Newick round-trip. Errors carry codes
// from pkg/errors: INVALID_FORMAT for syntax problems, INVALID_NETWORK for
// structural ones and FILE_NOT_FOUND for missing files.
package io
