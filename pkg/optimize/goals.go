package optimize

import (
	"math"
	"strings"
)

// Goal selects the objective the optimizer maximizes.
type Goal string

const (
	GoalDPS          Goal = "dps"
	GoalLife         Goal = "life"
	GoalEnergyShield Goal = "energy_shield"
	GoalEHP          Goal = "ehp"
	GoalBalanced     Goal = "balanced"
	GoalLeagueStart  Goal = "league_start"
)

// League-start weighting favors survivability over raw damage.
const (
	leagueStartDefenseWeight = 0.6
	leagueStartOffenseWeight = 0.4
)

// ParseGoal normalizes a free-form objective string to a Goal by keyword
// matching. Unrecognized input defaults to GoalDPS.
func ParseGoal(s string) Goal {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.Contains(s, "balanced") || strings.Contains(s, "hybrid"):
		return GoalBalanced
	case strings.Contains(s, "league") || strings.Contains(s, "start"):
		return GoalLeagueStart
	case strings.Contains(s, "ehp") || strings.Contains(s, "effective"):
		return GoalEHP
	case s == "es" || strings.Contains(s, "energy") || strings.Contains(s, "shield"):
		return GoalEnergyShield
	case strings.Contains(s, "life") || strings.Contains(s, "surviv"):
		return GoalLife
	default:
		return GoalDPS
	}
}

// Score reduces a stat snapshot to the scalar the optimizer maximizes.
func (g Goal) Score(s Stats) float64 {
	switch g {
	case GoalLife:
		return s.Life
	case GoalEnergyShield:
		return s.EnergyShield
	case GoalEHP:
		return s.EHP()
	case GoalBalanced:
		return math.Sqrt(s.DPS * s.EHP())
	case GoalLeagueStart:
		return leagueStartDefenseWeight*s.EHP() + leagueStartOffenseWeight*s.DPS
	default:
		return s.DPS
	}
}
