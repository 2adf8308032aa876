package tree

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Tree.AddNode] when the node id is not
	// positive. Node ids come from the game data and are always positive.
	ErrInvalidNodeID = errors.New("node id must be positive")

	// ErrDuplicateNodeID is returned by [Tree.AddNode] when a node with the
	// same id already exists. Node ids are unique within a tree version.
	ErrDuplicateNodeID = errors.New("duplicate node id")
)

// DynamicIDThreshold is the lowest node id reserved for sockets generated
// dynamically by the game client. Ids at or above this threshold never exist
// in the static tree and must be ignored by lookups and traversals.
const DynamicIDThreshold = 65536

// Node represents one allocatable unit of the skill tree.
//
// Nodes are created once at parse time and never modified afterwards; a Tree
// and all of its nodes can be shared freely across goroutines.
type Node struct {
	ID    int      // Stable, externally defined identifier
	Name  string   // Display name (may be empty for travel nodes)
	Stats []string // Ordered stat descriptions, display-relevant

	Keystone        bool // Build-defining trade-off node
	Notable         bool // Above-average named stat bundle
	Mastery         bool // Mastery selector node
	JewelSocket     bool // Grants no stats, accepts a jewel item
	AscendancyStart bool // Root of an ascendancy subtree

	// AscendancyName tags nodes belonging to an ascendancy subtree.
	AscendancyName string

	// Out and In are the serialized directed adjacency lists. Dangling ids
	// (referencing nodes missing from the tree) are tolerated; lookups skip
	// them rather than failing.
	Out []int
	In  []int
}

// IsDynamic reports whether the id identifies a runtime-generated socket
// rather than a static tree node.
func IsDynamic(id int) bool { return id >= DynamicIDThreshold }

// Kind buckets used by [Categorize].
type Kind int

const (
	KindNormal Kind = iota
	KindKeystone
	KindNotable
	KindJewelSocket
)

// Kind returns the single category bucket this node belongs to.
// Keystone takes precedence over notable, and notable over jewel socket,
// so every node lands in exactly one bucket.
func (n *Node) Kind() Kind {
	switch {
	case n.Keystone:
		return KindKeystone
	case n.Notable:
		return KindNotable
	case n.JewelSocket:
		return KindJewelSocket
	default:
		return KindNormal
	}
}

// Tree is an immutable skill-tree graph for one data version.
//
// The zero value is not usable - use [New]. Trees are built by the treedata
// parser and must not be mutated after construction; all methods other than
// AddNode are safe for concurrent use once building is finished.
type Tree struct {
	version string
	nodes   map[int]*Node
}

// New creates an empty tree tagged with the given data version.
func New(version string) *Tree {
	return &Tree{
		version: version,
		nodes:   make(map[int]*Node),
	}
}

// Version returns the data version this tree was built from.
func (t *Tree) Version() string { return t.version }

// AddNode adds a node during construction.
// Returns ErrInvalidNodeID for non-positive ids and ErrDuplicateNodeID when
// the id is already present. Callers must not add nodes after the tree has
// been published to other goroutines.
func (t *Tree) AddNode(n *Node) error {
	if n.ID <= 0 {
		return ErrInvalidNodeID
	}
	if _, exists := t.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	t.nodes[n.ID] = n
	return nil
}

// Node returns the node with the given id and true, or nil and false if the
// id is unknown or dynamic.
func (t *Tree) Node(id int) (*Node, bool) {
	if IsDynamic(id) {
		return nil, false
	}
	n, ok := t.nodes[id]
	return n, ok
}

// Has reports whether the static tree contains the given id.
func (t *Tree) Has(id int) bool {
	_, ok := t.Node(id)
	return ok
}

// NodeCount returns the number of nodes in the tree.
func (t *Tree) NodeCount() int { return len(t.nodes) }

// Neighbors returns the ids adjacent to id, merging the out and in lists
// and dropping duplicates and dangling references. The result preserves
// out-list order first, then in-list order, so traversals that tie-break by
// discovery order are deterministic.
func (t *Tree) Neighbors(id int) []int {
	n, ok := t.Node(id)
	if !ok {
		return nil
	}
	result := make([]int, 0, len(n.Out)+len(n.In))
	for _, lst := range [2][]int{n.Out, n.In} {
		for _, nb := range lst {
			if nb == id || !t.Has(nb) {
				continue
			}
			if slices.Contains(result, nb) {
				continue
			}
			result = append(result, nb)
		}
	}
	return result
}

// AllocatedNeighborCount returns how many of id's neighbors are present in
// the allocated set. Used by the optimizer's removability heuristic.
func (t *Tree) AllocatedNeighborCount(id int, allocated map[int]bool) int {
	count := 0
	for _, nb := range t.Neighbors(id) {
		if allocated[nb] {
			count++
		}
	}
	return count
}

// Categorized holds the four disjoint node buckets produced by [Categorize].
type Categorized struct {
	Keystones []*Node
	Notables  []*Node
	Jewels    []*Node
	Normal    []*Node
}

// Total returns the sum of all bucket lengths.
func (c Categorized) Total() int {
	return len(c.Keystones) + len(c.Notables) + len(c.Jewels) + len(c.Normal)
}

// Categorize partitions nodes into keystones, notables, jewel sockets, and
// normal nodes. Every input node lands in exactly one bucket, so the bucket
// lengths always sum to len(nodes).
func Categorize(nodes []*Node) Categorized {
	var c Categorized
	for _, n := range nodes {
		switch n.Kind() {
		case KindKeystone:
			c.Keystones = append(c.Keystones, n)
		case KindNotable:
			c.Notables = append(c.Notables, n)
		case KindJewelSocket:
			c.Jewels = append(c.Jewels, n)
		default:
			c.Normal = append(c.Normal, n)
		}
	}
	return c
}

// NodeIDs extracts the id from each node in a slice.
// Returns a new slice containing the ids in the same order as the input.
func NodeIDs(nodes []*Node) []int {
	ids := make([]int, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
