package optimize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exilemind/arbor/pkg/tree"
)

// testTree is a small branch of a tree:
//
//	6(asc) — 1 — 2 — 3 — 4(notable, damage)
//	             |
//	             5 (travel leaf)
func testTree(t *testing.T) *tree.Tree {
	t.Helper()
	tr := tree.New("3_26")
	nodes := []*tree.Node{
		{ID: 1, Name: "Start", Out: []int{2, 6}},
		{ID: 2, Name: "Path", Out: []int{3, 5}, In: []int{1}},
		{ID: 3, Name: "Path", In: []int{2}, Out: []int{4}},
		{ID: 4, Name: "Heavy Blows", Notable: true, Stats: []string{"30% increased melee damage"}, In: []int{3}},
		{ID: 5, Name: "Path", In: []int{2}},
		{ID: 6, Name: "Ascendant", AscendancyStart: true, In: []int{1}},
	}
	for _, n := range nodes {
		require.NoError(t, tr.AddNode(n))
	}
	return tr
}

func alloc(ids ...int) map[int]bool {
	m := make(map[int]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

func TestRunSwapsTravelForNotable(t *testing.T) {
	o := New(testTree(t), NewEvaluator(Stats{}))

	res := o.Run(alloc(1, 2, 5, 6), GoalDPS, Constraints{}, Options{})

	assert.Equal(t, []int{3, 4}, res.Added)
	assert.Equal(t, []int{5}, res.Removed)
	assert.Greater(t, res.ScoreAfter, res.ScoreBefore)
	assert.InDelta(t, 1300, res.After.DPS, 0.001)
	assert.Equal(t, 1, res.NetPointChange())
	assert.True(t, res.ConstraintsMet)
}

func TestRunNeverRemovesProtectedOrAscendancy(t *testing.T) {
	o := New(testTree(t), NewEvaluator(Stats{}))
	cons := Constraints{Protected: map[int]bool{5: true}}

	res := o.Run(alloc(1, 2, 5, 6), GoalDPS, cons, Options{})

	assert.Empty(t, res.Removed)
	assert.True(t, res.Nodes[5])
	assert.True(t, res.Nodes[6])
	assert.Equal(t, []int{3, 4}, res.Added)
}

func TestRunAddAndRemoveAreDisjoint(t *testing.T) {
	o := New(testTree(t), NewEvaluator(Stats{}))

	res := o.Run(alloc(1, 2, 5, 6), GoalDPS, Constraints{}, Options{})

	for _, id := range res.Added {
		assert.NotContains(t, res.Removed, id)
	}
}

func TestRunIdempotentAtLocalOptimum(t *testing.T) {
	o := New(testTree(t), NewEvaluator(Stats{}))

	first := o.Run(alloc(1, 2, 5, 6), GoalDPS, Constraints{}, Options{})
	second := o.Run(first.Nodes, GoalDPS, Constraints{}, Options{})

	assert.Empty(t, second.Added)
	assert.Empty(t, second.Removed)
	assert.Zero(t, second.ScoreDelta())
}

func TestRunNoCandidatesIsNotAnError(t *testing.T) {
	tr := tree.New("3_26")
	require.NoError(t, tr.AddNode(&tree.Node{ID: 1, Name: "Start", Out: []int{2}}))
	require.NoError(t, tr.AddNode(&tree.Node{ID: 2, Name: "Path", In: []int{1}}))
	o := New(tr, NewEvaluator(Stats{}))

	res := o.Run(alloc(1, 2), GoalDPS, Constraints{}, Options{})

	assert.Empty(t, res.Added)
	assert.Empty(t, res.Removed)
	assert.Zero(t, res.ScoreDelta())
}

func TestRunIgnoresDynamicAndUnknownIDs(t *testing.T) {
	o := New(testTree(t), NewEvaluator(Stats{}))

	res := o.Run(alloc(1, 2, 99999, 70000), GoalDPS, Constraints{}, Options{})

	assert.False(t, res.Nodes[99999])
	assert.False(t, res.Nodes[70000])
	assert.NotContains(t, res.Removed, 99999)
	assert.NotContains(t, res.Removed, 70000)
}

func TestRunRejectsMovesThatWorsenConstraints(t *testing.T) {
	tr := testTree(t)
	require.NoError(t, tr.AddNode(&tree.Node{
		ID: 7, Name: "Vitality", Stats: []string{"+50 to maximum life"}, In: []int{2},
	}))
	o := New(tr, NewEvaluator(Stats{}))

	// Base life 500 plus node 7 gives 550; the threshold keeps the build
	// short of the constraint, so removing 7 must stay off the table.
	cons := Constraints{MinLife: 560}
	res := o.Run(alloc(1, 2, 6, 7), GoalDPS, cons, Options{})

	assert.NotContains(t, res.Removed, 7)
	assert.True(t, res.Nodes[7])
	assert.Equal(t, []int{3, 4}, res.Added)
	assert.False(t, res.ConstraintsMet)
}

func TestRunHonorsIterationBudget(t *testing.T) {
	o := New(testTree(t), NewEvaluator(Stats{}))

	res := o.Run(alloc(1, 2, 5, 6), GoalDPS, Constraints{}, Options{MaxIterations: 1})

	assert.Equal(t, 1, res.Iterations)
}

func TestParseGoal(t *testing.T) {
	tests := []struct {
		in   string
		want Goal
	}{
		{"dps", GoalDPS},
		{"Damage", GoalDPS},
		{"  offense  ", GoalDPS},
		{"life", GoalLife},
		{"survivability", GoalLife},
		{"es", GoalEnergyShield},
		{"energy shield", GoalEnergyShield},
		{"ehp", GoalEHP},
		{"effective hp", GoalEHP},
		{"balanced", GoalBalanced},
		{"league start", GoalLeagueStart},
		{"", GoalDPS},
		{"whatever", GoalDPS},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseGoal(tt.in), "input %q", tt.in)
	}
}

func TestGoalScore(t *testing.T) {
	s := Stats{DPS: 100, Life: 300, EnergyShield: 100}

	assert.InDelta(t, 100, GoalDPS.Score(s), 0.001)
	assert.InDelta(t, 300, GoalLife.Score(s), 0.001)
	assert.InDelta(t, 100, GoalEnergyShield.Score(s), 0.001)
	assert.InDelta(t, 400, GoalEHP.Score(s), 0.001)
	assert.InDelta(t, 200, GoalBalanced.Score(s), 0.001) // sqrt(100*400)
	assert.InDelta(t, 0.6*400+0.4*100, GoalLeagueStart.Score(s), 0.001)
}

func TestEvaluator(t *testing.T) {
	ev := NewEvaluator(Stats{DPS: 1000, Life: 500, EnergyShield: 100})
	nodes := []*tree.Node{
		{ID: 1, Stats: []string{"+40 to maximum life", "10% increased maximum life"}},
		{ID: 2, Stats: []string{"20% increased spell damage", "+15% to fire resistance"}},
		{ID: 3, Stats: []string{"+30 to maximum energy shield", "+10% to all elemental resistances"}},
	}

	s := ev.Evaluate(nodes)

	assert.InDelta(t, 1200, s.DPS, 0.001)
	assert.InDelta(t, 500*1.10+40, s.Life, 0.001)
	assert.InDelta(t, 130, s.EnergyShield, 0.001)
	assert.InDelta(t, 25, s.FireRes, 0.001)
	assert.InDelta(t, 10, s.ColdRes, 0.001)
	assert.InDelta(t, 10, s.LightningRes, 0.001)
	assert.InDelta(t, 0, s.ChaosRes, 0.001)
}

func TestLowLife(t *testing.T) {
	assert.True(t, LowLife(Stats{Life: 400, TotalLife: 1000}))
	assert.True(t, LowLife(Stats{Life: 900, EnergyShield: 2500}))
	assert.False(t, LowLife(Stats{Life: 600, TotalLife: 1000}))
	assert.False(t, LowLife(Stats{Life: 1200, EnergyShield: 2500}))
}

func TestConstraintsLowLifeExemption(t *testing.T) {
	cons := Constraints{MinLife: 2000}

	assert.False(t, cons.Met(Stats{Life: 900, EnergyShield: 100}))
	assert.True(t, cons.Met(Stats{Life: 900, EnergyShield: 2500}))
}
