package path

import (
	"container/heap"
	"math"
	"slices"
	"time"

	"github.com/exilemind/arbor/pkg/observability"
	"github.com/exilemind/arbor/pkg/tree"
)

// Unreachable is the distance reported for nodes the search never reached.
const Unreachable = math.MaxInt

// SearchResult holds the output of a multi-source Dijkstra pass.
type SearchResult struct {
	// Dist maps node id to the cheapest cost from the nearest seed.
	// Absent ids were not reached.
	Dist map[int]int

	// Prev maps each reached node to its predecessor on a cheapest path.
	// Seeds have no predecessor entry.
	Prev map[int]int
}

// DistanceTo returns the cost to id, or [Unreachable].
func (r *SearchResult) DistanceTo(id int) int {
	if d, ok := r.Dist[id]; ok {
		return d
	}
	return Unreachable
}

// item is a priority-queue entry. Stale entries are skipped on pop
// (lazy decrease-key).
type item struct {
	id   int
	dist int
}

type priorityQueue []item

func (pq priorityQueue) Len() int           { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool { return pq[i].dist < pq[j].dist }
func (pq priorityQueue) Swap(i, j int)      { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x any)        { *pq = append(*pq, x.(item)) }
func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	it := old[n-1]
	*pq = old[:n-1]
	return it
}

// FromAllocated runs a multi-source Dijkstra with every valid allocated node
// seeded at distance zero. maxDist bounds the search: nodes beyond it are
// not explored. Pass a negative maxDist for an unbounded search.
//
// With unit weights this degenerates to multi-source BFS; the heap-based
// implementation is kept so weighted edges stay a drop-in change.
func (e *Engine) FromAllocated(allocated map[int]bool, maxDist int) *SearchResult {
	seeds := e.seeds(allocated)

	start := time.Now()
	observability.Path().OnSearchStart("dijkstra", len(seeds))

	res := &SearchResult{
		Dist: make(map[int]int, len(seeds)*8),
		Prev: make(map[int]int),
	}

	pq := make(priorityQueue, 0, len(seeds))
	for _, id := range seeds {
		res.Dist[id] = 0
		pq = append(pq, item{id: id, dist: 0})
	}
	heap.Init(&pq)

	visited := 0
	for pq.Len() > 0 {
		cur := heap.Pop(&pq).(item)
		if cur.dist > res.Dist[cur.id] {
			continue // stale entry
		}
		if maxDist >= 0 && cur.dist > maxDist {
			continue
		}
		visited++
		observability.Path().OnVisit("dijkstra", cur.id, cur.dist)

		for _, nb := range e.tree.Neighbors(cur.id) {
			next := cur.dist + e.weight(cur.id, nb)
			if best, seen := res.Dist[nb]; seen && best <= next {
				continue
			}
			res.Dist[nb] = next
			res.Prev[nb] = cur.id
			heap.Push(&pq, item{id: nb, dist: next})
		}
	}

	observability.Path().OnSearchComplete("dijkstra", visited, time.Since(start))
	return res
}

// Reachable describes an unallocated high-value node near the allocation.
type Reachable struct {
	Node     *tree.Node
	Distance int   // hops from the nearest allocated node
	Path     []int // nodes to allocate to reach it, ending with the node itself
}

// NearbyNotables returns unallocated notable and keystone nodes reachable
// within maxDist hops of the allocated set, ordered by distance then id.
func (e *Engine) NearbyNotables(allocated map[int]bool, maxDist int) []Reachable {
	res := e.FromAllocated(allocated, maxDist)

	var found []Reachable
	for id, dist := range res.Dist {
		if dist == 0 || dist > maxDist || allocated[id] {
			continue
		}
		n, ok := e.tree.Node(id)
		if !ok || (!n.Notable && !n.Keystone) {
			continue
		}
		found = append(found, Reachable{
			Node:     n,
			Distance: dist,
			Path:     res.pathTo(id, allocated),
		})
	}

	slices.SortFunc(found, func(a, b Reachable) int {
		if a.Distance != b.Distance {
			return a.Distance - b.Distance
		}
		return a.Node.ID - b.Node.ID
	})
	return found
}

// ShortestPathTo returns the nodes to allocate (in order, excluding already
// allocated ones) to connect the allocation to target, plus the hop cost.
//
// An already-allocated target yields an empty path with zero cost: no nodes
// are needed, not a redundant single-node path. ok is false when the target
// is dynamic, unknown, or unreachable.
func (e *Engine) ShortestPathTo(allocated map[int]bool, target int) (path []int, cost int, ok bool) {
	if tree.IsDynamic(target) || !e.tree.Has(target) {
		return nil, 0, false
	}
	if allocated[target] {
		return nil, 0, true
	}

	res := e.FromAllocated(allocated, -1)
	dist := res.DistanceTo(target)
	if dist == Unreachable {
		return nil, 0, false
	}
	return res.pathTo(target, allocated), dist, true
}

// pathTo reconstructs the path from the allocation frontier to id via the
// predecessor map, dropping the allocated seed itself.
func (r *SearchResult) pathTo(id int, allocated map[int]bool) []int {
	var rev []int
	for cur := id; ; {
		if allocated[cur] {
			break
		}
		rev = append(rev, cur)
		prev, ok := r.Prev[cur]
		if !ok {
			break // cur is a seed
		}
		cur = prev
	}
	slices.Reverse(rev)
	return rev
}
