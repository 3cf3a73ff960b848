package io

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/evolbioinfo/gotree/io/newick"
	"github.com/evolbioinfo/gotree/tree"

	"github.com/husonlab/dendroscope3-sub003/pkg/errors"
	"github.com/husonlab/dendroscope3-sub003/pkg/network"
)

// Reticulation tags of extended Newick.
const (
	hybridTag   = "H"
	transferTag = "LGT"
)

// splitName separates a Newick node name into its label and reticulation
// tag: "C#H1" gives ("C", "H1"), "#LGT2" gives ("", "LGT2").
func splitName(name string) (label, tag string) {
	i := strings.LastIndexByte(name, '#')
	if i < 0 {
		return name, ""
	}
	return name[:i], name[i+1:]
}

// ReadNewick parses one extended Newick network from r.
func ReadNewick(r io.Reader) (*network.Network, error) {
	t, err := newick.NewParser(r).Parse()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse newick")
	}
	if t.Root() == nil {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "empty newick tree")
	}

	type pending struct {
		from, to  network.NodeID
		tag       string
		reference bool
	}
	n := network.New()
	ids := make(map[*tree.Node]network.NodeID)
	tagged := make(map[string]network.NodeID)
	var edges []pending

	t.PreOrder(func(cur, prev *tree.Node, e *tree.Edge) bool {
		label, tag := splitName(cur.Name())
		v, seen := tagged[tag]
		switch {
		case tag == "":
			v = n.AddNode(label)
		case !seen:
			v = n.AddNode(label)
			tagged[tag] = v
		case label != "":
			_ = n.SetLabel(v, label)
		}
		ids[cur] = v
		if prev != nil {
			edges = append(edges, pending{
				from:      ids[prev],
				to:        v,
				tag:       tag,
				reference: cur.Tip() && label == "",
			})
		}
		return true
	})

	// A transfer reticulation keeps one non-transfer in-edge: the defining
	// occurrence, or the first one when every occurrence is a reference.
	defined := make(map[string]bool)
	for _, p := range edges {
		if p.tag != "" && !p.reference {
			defined[p.tag] = true
		}
	}
	for _, p := range edges {
		switch {
		case p.tag == "":
			_, err = n.AddEdge(p.from, p.to)
		case strings.HasPrefix(p.tag, transferTag) && p.reference && defined[p.tag]:
			_, err = n.AddSpecialEdge(p.from, p.to, 1)
		default:
			defined[p.tag] = true
			_, err = n.AddSpecialEdge(p.from, p.to, 0)
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidNetwork, err, "edge into #%s", p.tag)
		}
	}

	for tag, v := range tagged {
		if n.InDegree(v) < 2 {
			return nil, errors.New(errors.ErrCodeInvalidNetwork, "reticulation #%s occurs only once", tag)
		}
	}
	if err := n.SetRoot(ids[t.Root()]); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidNetwork, err, "set root")
	}
	if err := validate(n); err != nil {
		return nil, err
	}
	return n, nil
}

// WriteNewick writes n as extended Newick, followed by a newline.
// Each reticulation is written in full below its first non-transfer parent
// and as a reference tip below every other parent.
func WriteNewick(n *network.Network, w io.Writer) error {
	root := n.Root()
	if root == network.NoNode {
		return errors.New(errors.ErrCodeInvalidNetwork, "network has no root")
	}

	tags := make(map[network.NodeID]string)
	defining := make(map[network.NodeID]int)
	counts := map[string]int{}
	for _, v := range n.Preorder() {
		if !n.IsReticulation(v) {
			continue
		}
		prefix := hybridTag
		def := -1
		for _, id := range n.InEdges(v) {
			if n.Edge(id).IsTransfer() {
				prefix = transferTag
			} else if def < 0 {
				def = id
			}
		}
		if def < 0 {
			def = n.InEdges(v)[0]
		}
		counts[prefix]++
		tags[v] = fmt.Sprintf("%s%d", prefix, counts[prefix])
		defining[v] = def
	}

	name := func(v network.NodeID, withLabel bool) string {
		label := ""
		if withLabel {
			label = n.Label(v)
		}
		if tag, ok := tags[v]; ok {
			return label + "#" + tag
		}
		return label
	}

	t := tree.NewTree()
	top := t.NewNode()
	top.SetName(name(root, true))
	t.SetRoot(top)

	type frame struct {
		v    network.NodeID
		node *tree.Node
	}
	stack := []frame{{root, top}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		var expand []frame
		for _, id := range n.OutEdges(f.v) {
			c := n.Edge(id).To
			child := t.NewNode()
			t.ConnectNodes(f.node, child)
			if _, ok := tags[c]; ok && defining[c] != id {
				child.SetName(name(c, false))
				continue
			}
			child.SetName(name(c, true))
			expand = append(expand, frame{c, child})
		}
		slices.Reverse(expand)
		stack = append(stack, expand...)
	}

	if _, err := io.WriteString(w, t.Newick()+"\n"); err != nil {
		return fmt.Errorf("write newick: %w", err)
	}
	return nil
}
