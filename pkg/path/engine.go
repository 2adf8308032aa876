package path

import (
	"slices"

	"github.com/exilemind/arbor/pkg/tree"
)

// WeightFunc returns the cost of traversing the edge from one node to a
// neighbor. The default assigns unit cost to every edge.
type WeightFunc func(from, to int) int

// UnitWeight is the default edge cost: one hop per edge.
func UnitWeight(from, to int) int { return 1 }

// Engine runs pathfinding queries over one tree version.
//
// An Engine is stateless apart from its tree and weight function; it is safe
// for concurrent use.
type Engine struct {
	tree   *tree.Tree
	weight WeightFunc
}

// NewEngine creates an engine over the given tree with unit edge weights.
func NewEngine(t *tree.Tree) *Engine {
	return &Engine{tree: t, weight: UnitWeight}
}

// NewWeightedEngine creates an engine with a custom edge weight function.
// weight must return non-negative costs.
func NewWeightedEngine(t *tree.Tree, weight WeightFunc) *Engine {
	if weight == nil {
		weight = UnitWeight
	}
	return &Engine{tree: t, weight: weight}
}

// Tree returns the tree this engine queries.
func (e *Engine) Tree() *tree.Tree { return e.tree }

// seeds filters an allocated set down to valid search sources: static ids
// that exist in the tree. Dynamic socket ids and unknown ids are dropped.
// The result is sorted for deterministic seeding order.
func (e *Engine) seeds(allocated map[int]bool) []int {
	ids := make([]int, 0, len(allocated))
	for id, ok := range allocated {
		if !ok || tree.IsDynamic(id) || !e.tree.Has(id) {
			continue
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
