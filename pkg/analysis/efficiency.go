package analysis

import (
	"github.com/exilemind/arbor/pkg/tree"
)

// Tier grades how efficiently an allocation spends points on value nodes
// versus plain travel nodes.
type Tier string

const (
	// TierNone is the sentinel for an empty allocation. It is returned
	// instead of a ratio so callers never divide by zero.
	TierNone Tier = "No nodes allocated"

	TierExcellent Tier = "Excellent"
	TierGood      Tier = "Good"
	TierFair      Tier = "Fair"
	TierPoor      Tier = "Poor"
)

// Travel-ratio cutoffs. Real trees spend roughly half their points on
// travel; the tiers grade against that baseline.
const (
	excellentTravelRatio = 0.45
	goodTravelRatio      = 0.60
	fairTravelRatio      = 0.75
)

// PathingEfficiency grades the categorized allocation by the share of plain
// travel nodes. An empty allocation yields TierNone.
func PathingEfficiency(c tree.Categorized) Tier {
	total := c.Total()
	if total == 0 {
		return TierNone
	}

	ratio := float64(len(c.Normal)) / float64(total)
	switch {
	case ratio <= excellentTravelRatio:
		return TierExcellent
	case ratio <= goodTravelRatio:
		return TierGood
	case ratio <= fairTravelRatio:
		return TierFair
	default:
		return TierPoor
	}
}
