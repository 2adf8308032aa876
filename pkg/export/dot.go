package export

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/exilemind/arbor/pkg/path"
	"github.com/exilemind/arbor/pkg/tree"
)

// Options configures diagram generation.
type Options struct {
	// Radius is how many hops past the allocation frontier to include.
	// Zero draws only the allocated subgraph.
	Radius int

	// Detailed adds stat lines to node labels. Without it labels carry
	// only the node name (or id for unnamed travel nodes).
	Detailed bool
}

// ToDOT converts the allocation neighborhood to Graphviz DOT format. The
// output is an undirected graph: the tree serializes two directed edge
// lists, but traversal treats them as one undirected adjacency.
func ToDOT(t *tree.Tree, allocated map[int]bool, opts Options) string {
	ids := neighborhood(t, allocated, opts.Radius)

	var buf bytes.Buffer
	buf.WriteString("graph tree {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=10];\n")
	buf.WriteString("\n")

	for _, id := range ids {
		n, ok := t.Node(id)
		if !ok {
			continue
		}
		attrs := fmtAttrs(n, allocated[id], fmtLabel(n, opts.Detailed))
		fmt.Fprintf(&buf, "  %d [%s];\n", id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	included := make(map[int]bool, len(ids))
	for _, id := range ids {
		included[id] = true
	}
	for _, id := range ids {
		for _, nb := range t.Neighbors(id) {
			if nb > id && included[nb] {
				fmt.Fprintf(&buf, "  %d -- %d;\n", id, nb)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// neighborhood returns the allocated ids plus every node within radius
// hops, sorted for stable output.
func neighborhood(t *tree.Tree, allocated map[int]bool, radius int) []int {
	seen := make(map[int]bool)
	for id := range allocated {
		if !tree.IsDynamic(id) && t.Has(id) {
			seen[id] = true
		}
	}
	if radius > 0 {
		res := path.NewEngine(t).FromAllocated(allocated, radius)
		for id, dist := range res.Dist {
			// The search records one-past-the-bound frontier entries;
			// keep only nodes actually within the radius.
			if dist > radius {
				continue
			}
			seen[id] = true
		}
	}

	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func fmtLabel(n *tree.Node, detailed bool) string {
	label := n.Name
	if label == "" {
		label = fmt.Sprintf("%d", n.ID)
	}
	if detailed && len(n.Stats) > 0 {
		label += "\n" + strings.Join(n.Stats, "\n")
	}
	return label
}

func fmtAttrs(n *tree.Node, allocated bool, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}

	switch n.Kind() {
	case tree.KindKeystone:
		attrs = append(attrs, "shape=doubleoctagon", "fontsize=12")
	case tree.KindNotable:
		attrs = append(attrs, "shape=octagon", "fontsize=11")
	case tree.KindJewelSocket:
		attrs = append(attrs, "shape=diamond")
	}

	if allocated {
		attrs = append(attrs, "fillcolor=gold")
	} else {
		attrs = append(attrs, "style=\"filled,dashed\"", "fillcolor=lightgrey")
	}
	return attrs
}
