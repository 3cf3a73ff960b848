package io

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/husonlab/dendroscope3-sub003/pkg/errors"
	"github.com/husonlab/dendroscope3-sub003/pkg/network"
)

// ReadJSON decodes a JSON network from r.
//
// ReadJSON returns an error if:
//   - The JSON is malformed
//   - A node ID is empty or repeated
//   - An edge or guide entry references an unknown node ID
//   - A leaf label is not a valid taxon label
//   - The result is not a rooted, acyclic, connected network
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*network.Network, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode network")
	}

	n := network.New()
	ids := make(map[string]network.NodeID, len(doc.Nodes))
	for _, nd := range doc.Nodes {
		if nd.ID == "" {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "node without id")
		}
		if _, dup := ids[nd.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidNetwork, "duplicate node id %q", nd.ID)
		}
		ids[nd.ID] = n.AddNode(nd.Label)
	}

	lookup := func(what, id string) (network.NodeID, error) {
		v, ok := ids[id]
		if !ok {
			return network.NoNode, errors.New(errors.ErrCodeInvalidNetwork, "%s references unknown node %q", what, id)
		}
		return v, nil
	}
	for _, e := range doc.Edges {
		from, err := lookup("edge", e.From)
		if err != nil {
			return nil, err
		}
		to, err := lookup("edge", e.To)
		if err != nil {
			return nil, err
		}
		if e.Special {
			_, err = n.AddSpecialEdge(from, to, e.Weight)
		} else {
			_, err = n.AddEdge(from, to)
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidNetwork, err, "edge %s->%s", e.From, e.To)
		}
	}

	if doc.Root != "" {
		root, err := lookup("root", doc.Root)
		if err != nil {
			return nil, err
		}
		if err := n.SetRoot(root); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidNetwork, err, "root %s", doc.Root)
		}
	}
	if err := validate(n); err != nil {
		return nil, err
	}

	for parent, children := range doc.Guide {
		v, err := lookup("guide", parent)
		if err != nil {
			return nil, err
		}
		list := make([]network.NodeID, len(children))
		for i, c := range children {
			if list[i], err = lookup("guide", c); err != nil {
				return nil, err
			}
		}
		if err := n.SetGuideChildren(v, list); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidNetwork, err, "guide children of %s", parent)
		}
	}
	return n, nil
}

// validate checks structure and leaf labels of a freshly read network.
func validate(n *network.Network) error {
	if err := n.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidNetwork, err, "invalid network")
	}
	for _, v := range n.Leaves() {
		if label := n.Label(v); label != "" {
			if err := errors.ValidateTaxonLabel(label); err != nil {
				return err
			}
		}
	}
	return nil
}

// ImportJSON reads the JSON network file at path.
func ImportJSON(path string) (*network.Network, error) {
	return importFile(path, ReadJSON)
}

// ImportNewick reads the extended Newick file at path.
func ImportNewick(path string) (*network.Network, error) {
	return importFile(path, ReadNewick)
}

// Import reads a network file, choosing the format by extension: ".json"
// is JSON, anything else extended Newick.
func Import(path string) (*network.Network, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ImportJSON(path)
	}
	return ImportNewick(path)
}

func importFile(path string, read func(io.Reader) (*network.Network, error)) (*network.Network, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "network file %s not found", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	n, err := read(f)
	if err != nil {
		code := errors.GetCode(err)
		if code == "" {
			code = errors.ErrCodeInvalidFormat
		}
		return nil, errors.Wrap(code, err, "%s", path)
	}
	return n, nil
}
