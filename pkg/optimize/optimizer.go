package optimize

import (
	"slices"

	"github.com/google/uuid"

	"github.com/exilemind/arbor/pkg/path"
	"github.com/exilemind/arbor/pkg/tree"
)

const (
	// DefaultMaxIterations bounds the greedy loop. Each iteration applies
	// at most one move, so this is also the ceiling on applied changes.
	DefaultMaxIterations = 25

	// DefaultSearchRadius is how many hops past the allocation frontier
	// candidate notables are collected from.
	DefaultSearchRadius = 4
)

// Options tunes one optimization run. Zero values take the defaults.
type Options struct {
	MaxIterations int
	SearchRadius  int
}

func (o Options) withDefaults() Options {
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.SearchRadius <= 0 {
		o.SearchRadius = DefaultSearchRadius
	}
	return o
}

// Result reports one optimization run. Added and Removed are always
// disjoint: they are computed as set differences against the starting
// allocation, so a node added and later removed (or vice versa) appears in
// neither.
type Result struct {
	// ID uniquely identifies this run for correlation in logs.
	ID string

	Goal Goal

	Before Stats
	After  Stats

	ScoreBefore float64
	ScoreAfter  float64

	Added   []int
	Removed []int

	// Nodes is the final allocation, suitable for feeding back into
	// another run or an analysis.
	Nodes map[int]bool

	Iterations     int
	ConstraintsMet bool
}

// ScoreDelta is the objective improvement achieved by the run.
func (r *Result) ScoreDelta() float64 {
	return r.ScoreAfter - r.ScoreBefore
}

// NetPointChange is positive when the run spends more points than it frees.
func (r *Result) NetPointChange() int {
	return len(r.Added) - len(r.Removed)
}

// Optimizer searches for improving allocation changes on one tree version.
// It is read-only over the tree and safe for concurrent runs.
type Optimizer struct {
	tree   *tree.Tree
	engine *path.Engine
	eval   Evaluator
}

// New returns an optimizer over t scoring with eval.
func New(t *tree.Tree, eval Evaluator) *Optimizer {
	return &Optimizer{
		tree:   t,
		engine: path.NewEngine(t),
		eval:   eval,
	}
}

// move is one candidate change: add every node in add, remove the node in
// remove (0 means none).
type move struct {
	add    []int
	remove int
	stats  Stats
	score  float64
}

// Run performs the greedy search from the given allocation.
//
// Dynamic socket ids and ids absent from the tree are ignored rather than
// rejected: the optimizer works on the valid static subset and leaves save
// validation to the analysis layer.
func (o *Optimizer) Run(allocated map[int]bool, goal Goal, cons Constraints, opts Options) *Result {
	opts = opts.withDefaults()

	current := make(map[int]bool)
	for id := range allocated {
		if !tree.IsDynamic(id) && o.tree.Has(id) {
			current[id] = true
		}
	}
	original := make(map[int]bool, len(current))
	for id := range current {
		original[id] = true
	}

	stats := o.eval.Evaluate(o.nodesOf(current))
	res := &Result{
		ID:          uuid.NewString(),
		Goal:        goal,
		Before:      stats,
		ScoreBefore: goal.Score(stats),
	}
	score := res.ScoreBefore
	violation := cons.violation(stats)

	for res.Iterations < opts.MaxIterations {
		res.Iterations++

		best, ok := o.bestMove(current, goal, cons, opts, score, violation)
		if !ok {
			break
		}

		if best.remove != 0 {
			delete(current, best.remove)
		}
		for _, id := range best.add {
			current[id] = true
		}
		stats = best.stats
		score = best.score
		violation = cons.violation(stats)
	}

	res.After = stats
	res.ScoreAfter = score
	res.Nodes = current
	res.ConstraintsMet = cons.Met(stats)
	res.Added, res.Removed = diff(original, current)
	return res
}

// bestMove evaluates add, remove, and swap moves and returns the one with
// the highest score that improves on cur without worsening constraint
// violation. Among equal scores a move spending fewer points wins, which
// makes the swap preferable to a bare addition when the removal is free.
func (o *Optimizer) bestMove(current map[int]bool, goal Goal, cons Constraints, opts Options, curScore, curViolation float64) (move, bool) {
	candidates := o.engine.NearbyNotables(current, opts.SearchRadius)
	removables := o.removable(current, cons)

	var best move
	found := false
	consider := func(m move) {
		if m.score <= curScore {
			return
		}
		if cons.violation(m.stats) > curViolation {
			return
		}
		if !found || m.score > best.score ||
			(m.score == best.score && pointCost(m) < pointCost(best)) {
			best = m
			found = true
		}
	}

	for _, id := range removables {
		consider(o.evaluate(current, goal, move{remove: id}))
	}
	for _, cand := range candidates {
		add := move{add: cand.Path}
		consider(o.evaluate(current, goal, add))
		for _, id := range removables {
			if slices.Contains(cand.Path, id) {
				continue
			}
			consider(o.evaluate(current, goal, move{add: cand.Path, remove: id}))
		}
	}
	return best, found
}

// evaluate fills in the stats and score a move would produce.
func (o *Optimizer) evaluate(current map[int]bool, goal Goal, m move) move {
	next := make(map[int]bool, len(current)+len(m.add))
	for id := range current {
		next[id] = true
	}
	if m.remove != 0 {
		delete(next, m.remove)
	}
	for _, id := range m.add {
		next[id] = true
	}
	m.stats = o.eval.Evaluate(o.nodesOf(next))
	m.score = goal.Score(m.stats)
	return m
}

// removable lists allocated nodes eligible for removal: not protected, not
// an ascendancy start, and with fewer than two allocated neighbors. The
// neighbor-count rule is a stand-in for real articulation-point detection;
// it keeps obviously load-bearing path nodes but can misjudge cycles.
func (o *Optimizer) removable(current map[int]bool, cons Constraints) []int {
	var out []int
	for id := range current {
		if cons.Protected[id] {
			continue
		}
		n, ok := o.tree.Node(id)
		if !ok || n.AscendancyStart {
			continue
		}
		if o.tree.AllocatedNeighborCount(id, current) >= 2 {
			continue
		}
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func (o *Optimizer) nodesOf(allocated map[int]bool) []*tree.Node {
	ids := make([]int, 0, len(allocated))
	for id := range allocated {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	nodes := make([]*tree.Node, 0, len(ids))
	for _, id := range ids {
		if n, ok := o.tree.Node(id); ok {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

func pointCost(m move) int {
	cost := len(m.add)
	if m.remove != 0 {
		cost--
	}
	return cost
}

// diff splits the changed ids into additions (in after only) and removals
// (in before only), each sorted.
func diff(before, after map[int]bool) (added, removed []int) {
	for id := range after {
		if !before[id] {
			added = append(added, id)
		}
	}
	for id := range before {
		if !after[id] {
			removed = append(removed, id)
		}
	}
	slices.Sort(added)
	slices.Sort(removed)
	return added, removed
}
