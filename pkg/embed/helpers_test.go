package embed

import (
	"slices"
	"strings"
	"testing"

	"github.com/husonlab/dendroscope3-sub003/pkg/network"
)

// build creates a network from edges written as "a>b" (tree edge), "a~b"
// (hybridization edge) and "a=b" (transfer edge). Names starting with an
// upper-case letter become leaf labels; the first name is the root.
func build(t *testing.T, edges ...string) (*network.Network, map[string]network.NodeID) {
	t.Helper()
	n := network.New()
	ids := make(map[string]network.NodeID)
	node := func(name string) network.NodeID {
		if id, ok := ids[name]; ok {
			return id
		}
		label := ""
		if name[0] >= 'A' && name[0] <= 'Z' {
			label = name
		}
		ids[name] = n.AddNode(label)
		return ids[name]
	}
	for _, edge := range edges {
		sep := strings.IndexAny(edge, ">~=")
		if sep <= 0 {
			t.Fatalf("malformed edge %q", edge)
		}
		from, to := node(edge[:sep]), node(edge[sep+1:])
		var err error
		switch edge[sep] {
		case '>':
			_, err = n.AddEdge(from, to)
		case '~':
			_, err = n.AddSpecialEdge(from, to, 0)
		case '=':
			_, err = n.AddSpecialEdge(from, to, 1)
		}
		if err != nil {
			t.Fatalf("edge %q: %v", edge, err)
		}
	}
	if err := n.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	return n, ids
}

func names(ids map[string]network.NodeID, nodes []network.NodeID) []string {
	byID := make(map[network.NodeID]string, len(ids))
	for name, id := range ids {
		byID[id] = name
	}
	out := make([]string, len(nodes))
	for i, v := range nodes {
		out[i] = byID[v]
	}
	return out
}

// caterpillar builds (((A,B),C),D)-style trees over labels, joined in the
// given order.
func caterpillar(t *testing.T, labels ...string) *network.Network {
	t.Helper()
	n := network.New()
	prev := n.AddNode(labels[0])
	for _, l := range labels[1:] {
		parent := n.AddNode("")
		_, _ = n.AddEdge(parent, prev)
		_, _ = n.AddEdge(parent, n.AddNode(l))
		prev = parent
	}
	return n
}

// twoReticulations is the scenario with two reticulations h1 and h2 below
// the root, both with parents p and s, separated by a plain leaf Q.
func twoReticulations(t *testing.T) (*network.Network, map[string]network.NodeID) {
	return build(t,
		"r>p", "r>Q", "r>s",
		"p>P", "p~h1", "p~h2",
		"s>S", "s~h1", "s~h2",
		"h1>H1", "h2>H2",
	)
}

// guideSets returns the guide children of every node as sorted sets.
func guideSets(n *network.Network) map[network.NodeID][]network.NodeID {
	out := n.Guide()
	for v := range out {
		slices.Sort(out[v])
	}
	return out
}
