// Package analysis classifies a player's passive-tree allocation.
//
// Given a resolved tree and an [AllocatedSet] it produces an [Result]:
// categorized node lists, the inferred archetype, a pathing-efficiency
// tier, point counts, and - fatally - any allocated ids missing from the
// tree. No partial result is ever returned: invalid ids abort the analysis
// with a single error listing every offending id.
package analysis

import (
	"slices"

	"github.com/google/uuid"

	"github.com/exilemind/arbor/pkg/archetype"
	"github.com/exilemind/arbor/pkg/errors"
	"github.com/exilemind/arbor/pkg/tree"
	"github.com/exilemind/arbor/pkg/treedata"
)

// Result is the outcome of one allocation analysis. It is recomputed on
// every call and never persisted.
type Result struct {
	// ID uniquely identifies this analysis run for correlation in logs
	// and downstream consumers.
	ID string

	// Version is the tree version the analysis ran against; FellBack
	// reports whether it is the fallback rather than the requested one.
	Version  string
	FellBack bool

	// Categories partitions the allocated nodes.
	Categories tree.Categorized

	// Archetype is the inferred build identity.
	Archetype archetype.Result

	// Efficiency grades travel-node spend.
	Efficiency Tier

	// PointsUsed counts allocated static nodes; PointsAvailable is the
	// remaining budget at the character's level (may be negative for
	// imported saves from higher-budget game modes).
	PointsUsed      int
	PointsAvailable int
}

// Analyze classifies the allocation against the resolved tree.
//
// Allocated ids missing from the tree are collected and surfaced as one
// INVALID_NODES error naming every offending id. When the tree came from
// the fallback version the message says so explicitly: the save may simply
// be newer than the available data, which is remediated by waiting for
// upstream, not by fixing the save.
func Analyze(resolved treedata.Resolved, alloc AllocatedSet) (*Result, error) {
	nodes, invalid := mapNodesToDetails(resolved.Tree, alloc)

	if len(invalid) > 0 {
		if resolved.FellBack {
			return nil, errors.New(errors.ErrCodeInvalidNodes,
				"%d allocated nodes not found in tree version %s (requested %s was unavailable; the save may target the newer version): %v",
				len(invalid), resolved.Tree.Version(), resolved.Requested, invalid)
		}
		return nil, errors.New(errors.ErrCodeInvalidNodes,
			"%d allocated nodes not found in tree version %s: %v",
			len(invalid), resolved.Tree.Version(), invalid)
	}

	categories := tree.Categorize(nodes)
	used := len(nodes)

	return &Result{
		ID:              uuid.NewString(),
		Version:         resolved.Tree.Version(),
		FellBack:        resolved.FellBack,
		Categories:      categories,
		Archetype:       archetype.Classify(categories.Keystones, categories.Notables),
		Efficiency:      PathingEfficiency(categories),
		PointsUsed:      used,
		PointsAvailable: alloc.PointBudget() - used,
	}, nil
}

// mapNodesToDetails resolves allocated ids to tree nodes. Dynamic socket
// ids are silently excluded from both outputs; static ids missing from the
// tree are returned as the sorted invalid list.
func mapNodesToDetails(t *tree.Tree, alloc AllocatedSet) (nodes []*tree.Node, invalid []int) {
	ids := make([]int, 0, len(alloc.Nodes))
	for id := range alloc.Nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		if tree.IsDynamic(id) {
			continue
		}
		n, ok := t.Node(id)
		if !ok {
			invalid = append(invalid, id)
			continue
		}
		nodes = append(nodes, n)
	}
	return nodes, invalid
}
