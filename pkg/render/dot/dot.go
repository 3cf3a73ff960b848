package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/husonlab/dendroscope3-sub003/pkg/network"
)

// Options configures diagram generation.
type Options struct {
	// ShowIDs appends node IDs to the labels.
	ShowIDs bool

	// Title is drawn above the diagram when set.
	Title string
}

func nodeName(v network.NodeID) string { return fmt.Sprintf("n%d", v) }

// ToDOT converts a network to Graphviz DOT source. Networks without a root
// produce an empty digraph.
func ToDOT(n *network.Network, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  ordering=out;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", opts.Title)
	}

	root := n.Root()
	if root == network.NoNode {
		buf.WriteString("}\n")
		return buf.String()
	}
	order := n.Preorder()
	if n.HasGuide() {
		order = n.GuidePreorder(root)
	}

	buf.WriteString("\n")
	for _, v := range order {
		fmt.Fprintf(&buf, "  %s [%s];\n", nodeName(v), strings.Join(nodeAttrs(n, v, opts), ", "))
	}

	buf.WriteString("\n")
	drawn := make(map[int]bool)
	for _, v := range order {
		for _, c := range n.OrderedChildren(v) {
			id, ok := edgeBetween(n, v, c)
			if !ok {
				fmt.Fprintf(&buf, "  %s -> %s [style=invis];\n", nodeName(v), nodeName(c))
				continue
			}
			drawn[id] = true
			fmt.Fprintf(&buf, "  %s -> %s%s;\n", nodeName(v), nodeName(c), edgeAttrs(n.Edge(id), true))
		}
	}
	for _, e := range n.Edges() {
		if !drawn[e.ID] {
			fmt.Fprintf(&buf, "  %s -> %s%s;\n", nodeName(e.From), nodeName(e.To), edgeAttrs(e, false))
		}
	}

	var leaves []string
	for _, v := range n.OrderedLeaves(root) {
		leaves = append(leaves, nodeName(v))
	}
	if len(leaves) > 1 {
		fmt.Fprintf(&buf, "\n  { rank=same; %s [style=invis]; }\n", strings.Join(leaves, " -> "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n *network.Network, v network.NodeID, opts Options) []string {
	label := n.Label(v)
	if opts.ShowIDs {
		label = strings.TrimSpace(fmt.Sprintf("%s #%d", label, v))
	}
	if label == "" {
		return []string{"shape=point", "width=0.08"}
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.IsReticulation(v) {
		attrs = append(attrs, "fillcolor=lightyellow")
	}
	return attrs
}

// edgeBetween returns the first actual edge from u to v.
func edgeBetween(n *network.Network, u, v network.NodeID) (int, bool) {
	for _, id := range n.OutEdges(u) {
		if n.Edge(id).To == v {
			return id, true
		}
	}
	return 0, false
}

func edgeAttrs(e network.Edge, guide bool) string {
	var attrs []string
	if !guide {
		attrs = append(attrs, "style=dashed", "constraint=false")
	}
	if e.IsTransfer() {
		attrs = append(attrs, "color=red")
	}
	if len(attrs) == 0 {
		return ""
	}
	return " [" + strings.Join(attrs, ", ") + "]"
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so that the SVG scales from a
// zero origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
