package path

import (
	"time"

	"github.com/exilemind/arbor/pkg/observability"
	"github.com/exilemind/arbor/pkg/tree"
)

// AllocatedPath finds the shortest hop-count path between two allocated
// nodes, traversing only nodes present in the allocated set.
//
// The returned path includes both endpoints; ok is false when either
// endpoint is invalid or no connection exists inside the allocation.
// Ties are broken by discovery order: the FIFO queue guarantees the
// first-found path is already shortest for unweighted traversal.
func (e *Engine) AllocatedPath(from, to int, allocated map[int]bool) (path []int, ok bool) {
	if tree.IsDynamic(from) || tree.IsDynamic(to) {
		return nil, false
	}
	if !allocated[from] || !allocated[to] || !e.tree.Has(from) || !e.tree.Has(to) {
		return nil, false
	}
	if from == to {
		return []int{from}, true
	}

	start := time.Now()
	observability.Path().OnSearchStart("bfs", 1)

	parent := map[int]int{from: from}
	queue := []int{from}
	visited := 0

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		visited++
		observability.Path().OnVisit("bfs", cur, 0)

		for _, nb := range e.tree.Neighbors(cur) {
			if !allocated[nb] {
				continue
			}
			if _, seen := parent[nb]; seen {
				continue
			}
			parent[nb] = cur
			if nb == to {
				observability.Path().OnSearchComplete("bfs", visited, time.Since(start))
				return reconstruct(parent, from, to), true
			}
			queue = append(queue, nb)
		}
	}

	observability.Path().OnSearchComplete("bfs", visited, time.Since(start))
	return nil, false
}

// reconstruct walks the parent map back from to until from, then reverses.
func reconstruct(parent map[int]int, from, to int) []int {
	var path []int
	for cur := to; ; cur = parent[cur] {
		path = append(path, cur)
		if cur == from {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
