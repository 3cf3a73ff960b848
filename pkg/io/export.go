package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/husonlab/dendroscope3-sub003/pkg/errors"
	"github.com/husonlab/dendroscope3-sub003/pkg/network"
)

type document struct {
	Nodes     []node              `json:"nodes"`
	Edges     []edge              `json:"edges"`
	Root      string              `json:"root,omitempty"`
	Guide     map[string][]string `json:"guide,omitempty"`
	LeafOrder []string            `json:"leaf_order,omitempty"`
}

type node struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
}

type edge struct {
	From    string  `json:"from"`
	To      string  `json:"to"`
	Special bool    `json:"special,omitempty"`
	Weight  float64 `json:"weight,omitempty"`
}

func nodeID(v network.NodeID) string { return fmt.Sprintf("n%d", v) }

// WriteJSON encodes n as JSON and writes it to w. Edges are written node
// by node in actual out-edge order so that ReadJSON restores the same
// child order. The guide map and the resulting leaf order are included
// when n carries an embedding.
func WriteJSON(n *network.Network, w io.Writer) error {
	doc := document{Nodes: make([]node, n.NodeCount())}
	for v := range doc.Nodes {
		id := network.NodeID(v)
		doc.Nodes[v] = node{ID: nodeID(id), Label: n.Label(id)}
		for _, eid := range n.OutEdges(id) {
			e := n.Edge(eid)
			doc.Edges = append(doc.Edges, edge{
				From:    nodeID(e.From),
				To:      nodeID(e.To),
				Special: e.Special,
				Weight:  e.Weight,
			})
		}
	}
	if root := n.Root(); root != network.NoNode {
		doc.Root = nodeID(root)
	}
	if n.HasGuide() {
		doc.Guide = make(map[string][]string)
		for v, children := range n.Guide() {
			ids := make([]string, len(children))
			for i, c := range children {
				ids[i] = nodeID(c)
			}
			doc.Guide[nodeID(v)] = ids
		}
	}
	if doc.Root != "" {
		doc.LeafOrder = n.LeafOrder()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes n as JSON to the file at path.
func ExportJSON(n *network.Network, path string) error {
	return exportFile(path, func(w io.Writer) error { return WriteJSON(n, w) })
}

// ExportNewick writes n as extended Newick to the file at path.
func ExportNewick(n *network.Network, path string) error {
	return exportFile(path, func(w io.Writer) error { return WriteNewick(n, w) })
}

func exportFile(path string, write func(io.Writer) error) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
