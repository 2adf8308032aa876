package optimize

// Constraints holds the minimum thresholds a proposed build must keep and
// the node ids the optimizer may never remove. A zero value imposes
// nothing. Constraints are fixed for the duration of one Run.
type Constraints struct {
	MinLife         float64
	MinEnergyShield float64
	MinEHP          float64

	MinFireRes      float64
	MinColdRes      float64
	MinLightningRes float64
	MinChaosRes     float64

	Protected map[int]bool
}

// Low-life detection thresholds. These are tuning knobs, not game rules:
// there is no authoritative cutoff for when a build counts as low-life.
const (
	lowLifeRatio  = 0.5
	smallLifePool = 1000
	largeESPool   = 2000
)

// LowLife reports whether the snapshot reads as a deliberate low-life
// build: the life pool is under half the reported total, or a small life
// pool is paired with a large energy-shield pool. Such builds trade life
// for another defensive layer, so the minimum-life constraint does not
// apply to them.
func LowLife(s Stats) bool {
	if s.TotalLife > 0 && s.Life < lowLifeRatio*s.TotalLife {
		return true
	}
	return s.Life <= smallLifePool && s.EnergyShield >= largeESPool
}

// Met reports whether the snapshot satisfies every threshold. Low-life
// builds are exempt from MinLife only; all other thresholds still apply.
func (c Constraints) Met(s Stats) bool {
	return c.violation(s) == 0
}

// violation sums how far the snapshot falls short of each threshold. Zero
// means fully satisfied; the optimizer uses the magnitude to tell whether a
// move drifts toward or away from satisfaction.
func (c Constraints) violation(s Stats) float64 {
	var v float64
	if !LowLife(s) && s.Life < c.MinLife {
		v += c.MinLife - s.Life
	}
	if s.EnergyShield < c.MinEnergyShield {
		v += c.MinEnergyShield - s.EnergyShield
	}
	if s.EHP() < c.MinEHP {
		v += c.MinEHP - s.EHP()
	}
	if s.FireRes < c.MinFireRes {
		v += c.MinFireRes - s.FireRes
	}
	if s.ColdRes < c.MinColdRes {
		v += c.MinColdRes - s.ColdRes
	}
	if s.LightningRes < c.MinLightningRes {
		v += c.MinLightningRes - s.LightningRes
	}
	if s.ChaosRes < c.MinChaosRes {
		v += c.MinChaosRes - s.ChaosRes
	}
	return v
}
