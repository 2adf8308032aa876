package path

import (
	"testing"

	"github.com/exilemind/arbor/pkg/tree"
)

// chainTree builds the path 1—2—3—4 with out-edges forming a simple chain.
func chainTree(t *testing.T) *tree.Tree {
	t.Helper()
	tr := tree.New("test")
	nodes := []*tree.Node{
		{ID: 1, Out: []int{2}},
		{ID: 2, Out: []int{3}, In: []int{1}},
		{ID: 3, Out: []int{4}, In: []int{2}, Notable: true, Name: "Waypoint"},
		{ID: 4, In: []int{3}, Keystone: true, Name: "Terminus"},
	}
	for _, n := range nodes {
		if err := tr.AddNode(n); err != nil {
			t.Fatalf("AddNode(%d): %v", n.ID, err)
		}
	}
	return tr
}

// forkTree builds a small branching tree:
//
//	1 — 2 — 3(notable)
//	     \
//	      4 — 5(keystone)
func forkTree(t *testing.T) *tree.Tree {
	t.Helper()
	tr := tree.New("test")
	nodes := []*tree.Node{
		{ID: 1, Out: []int{2}},
		{ID: 2, Out: []int{3, 4}, In: []int{1}},
		{ID: 3, In: []int{2}, Notable: true, Name: "Branch"},
		{ID: 4, Out: []int{5}, In: []int{2}},
		{ID: 5, In: []int{4}, Keystone: true, Name: "Deep"},
	}
	for _, n := range nodes {
		if err := tr.AddNode(n); err != nil {
			t.Fatalf("AddNode(%d): %v", n.ID, err)
		}
	}
	return tr
}

func TestFromAllocatedDistances(t *testing.T) {
	e := NewEngine(chainTree(t))
	allocated := map[int]bool{1: true, 2: true}

	res := e.FromAllocated(allocated, -1)

	wantDist := map[int]int{1: 0, 2: 0, 3: 1, 4: 2}
	for id, want := range wantDist {
		if got := res.DistanceTo(id); got != want {
			t.Errorf("DistanceTo(%d) = %d, want %d", id, got, want)
		}
	}
}

func TestShortestPathTo(t *testing.T) {
	e := NewEngine(chainTree(t))
	allocated := map[int]bool{1: true, 2: true}

	path, cost, ok := e.ShortestPathTo(allocated, 4)
	if !ok {
		t.Fatal("ShortestPathTo(4) not ok")
	}
	if cost != 2 {
		t.Errorf("cost = %d, want 2", cost)
	}
	if len(path) != 2 || path[0] != 3 || path[1] != 4 {
		t.Errorf("path = %v, want [3 4]", path)
	}
}

func TestShortestPathToAllocatedTarget(t *testing.T) {
	e := NewEngine(chainTree(t))
	allocated := map[int]bool{1: true, 2: true}

	path, cost, ok := e.ShortestPathTo(allocated, 2)
	if !ok {
		t.Fatal("allocated target should be ok")
	}
	if len(path) != 0 || cost != 0 {
		t.Errorf("path = %v cost = %d, want empty path with zero cost", path, cost)
	}
}

func TestShortestPathToInvalidTargets(t *testing.T) {
	e := NewEngine(chainTree(t))
	allocated := map[int]bool{1: true}

	if _, _, ok := e.ShortestPathTo(allocated, 99); ok {
		t.Error("unknown target should not be ok")
	}
	if _, _, ok := e.ShortestPathTo(allocated, tree.DynamicIDThreshold+5); ok {
		t.Error("dynamic target should not be ok")
	}
}

func TestDynamicIDsNeverSeeded(t *testing.T) {
	e := NewEngine(chainTree(t))
	allocated := map[int]bool{
		1:                           true,
		tree.DynamicIDThreshold + 1: true, // must be filtered before seeding
	}

	res := e.FromAllocated(allocated, -1)
	if _, ok := res.Dist[tree.DynamicIDThreshold+1]; ok {
		t.Error("dynamic id appeared in search results")
	}
	if res.DistanceTo(2) != 1 {
		t.Errorf("DistanceTo(2) = %d, want 1", res.DistanceTo(2))
	}
}

func TestNearbyNotables(t *testing.T) {
	e := NewEngine(forkTree(t))
	allocated := map[int]bool{1: true, 2: true}

	got := e.NearbyNotables(allocated, 2)
	if len(got) != 2 {
		t.Fatalf("found %d nodes, want 2: %+v", len(got), got)
	}
	// Ordered by distance, then id: 3 at distance 1, 5 at distance 2.
	if got[0].Node.ID != 3 || got[0].Distance != 1 {
		t.Errorf("first = node %d at %d, want node 3 at 1", got[0].Node.ID, got[0].Distance)
	}
	if got[1].Node.ID != 5 || got[1].Distance != 2 {
		t.Errorf("second = node %d at %d, want node 5 at 2", got[1].Node.ID, got[1].Distance)
	}
	if len(got[1].Path) != 2 || got[1].Path[0] != 4 || got[1].Path[1] != 5 {
		t.Errorf("path to 5 = %v, want [4 5]", got[1].Path)
	}

	// A radius of 1 excludes the deeper keystone.
	near := e.NearbyNotables(allocated, 1)
	if len(near) != 1 || near[0].Node.ID != 3 {
		t.Errorf("radius 1 = %+v, want only node 3", near)
	}
}

func TestNearbyNotablesExcludesAllocated(t *testing.T) {
	e := NewEngine(forkTree(t))
	allocated := map[int]bool{1: true, 2: true, 3: true}

	for _, r := range e.NearbyNotables(allocated, 3) {
		if allocated[r.Node.ID] {
			t.Errorf("allocated node %d returned as candidate", r.Node.ID)
		}
	}
}

func TestAllocatedPath(t *testing.T) {
	e := NewEngine(forkTree(t))
	allocated := map[int]bool{1: true, 2: true, 4: true, 5: true}

	path, ok := e.AllocatedPath(1, 5, allocated)
	if !ok {
		t.Fatal("AllocatedPath(1,5) not ok")
	}
	want := []int{1, 2, 4, 5}
	if len(path) != len(want) {
		t.Fatalf("path = %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("path = %v, want %v", path, want)
		}
	}
}

func TestAllocatedPathStaysInsideAllocation(t *testing.T) {
	e := NewEngine(forkTree(t))
	// 2 is not allocated, so 1 and 4 are disconnected inside the allocation.
	allocated := map[int]bool{1: true, 4: true}

	if _, ok := e.AllocatedPath(1, 4, allocated); ok {
		t.Error("path must not leave the allocated subgraph")
	}
}

func TestAllocatedPathEdgeCases(t *testing.T) {
	e := NewEngine(forkTree(t))
	allocated := map[int]bool{1: true, 2: true}

	if path, ok := e.AllocatedPath(1, 1, allocated); !ok || len(path) != 1 {
		t.Errorf("self path = %v ok=%v, want [1] true", path, ok)
	}
	if _, ok := e.AllocatedPath(1, 3, allocated); ok {
		t.Error("unallocated endpoint should fail")
	}
	if _, ok := e.AllocatedPath(tree.DynamicIDThreshold, 1, allocated); ok {
		t.Error("dynamic endpoint should fail")
	}
}

func TestWeightedEngine(t *testing.T) {
	// Doubling the edge weight doubles reported costs but not the path.
	e := NewWeightedEngine(chainTree(t), func(from, to int) int { return 2 })
	allocated := map[int]bool{1: true}

	res := e.FromAllocated(allocated, -1)
	if got := res.DistanceTo(4); got != 6 {
		t.Errorf("DistanceTo(4) = %d, want 6", got)
	}
}
