package optimize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/exilemind/arbor/pkg/tree"
)

// Stats is a coarse snapshot of the build properties the optimizer and its
// constraints reason about. It deliberately models far less than the game
// does: enough to rank candidate swaps, not to simulate combat.
type Stats struct {
	// DPS is an aggregate offensive score, not a literal damage number.
	DPS float64

	Life         float64
	EnergyShield float64

	// TotalLife is the externally reported life pool, when the caller has
	// one (for example from a live character sheet). Zero means unreported;
	// low-life detection then falls back on absolute pool sizes.
	TotalLife float64

	FireRes      float64
	ColdRes      float64
	LightningRes float64
	ChaosRes     float64
}

// EHP is the effective hit pool: the two defensive pools combined.
func (s Stats) EHP() float64 {
	return s.Life + s.EnergyShield
}

// DefaultBase approximates a mid-campaign character with no tree bonuses.
// Callers with real character data should supply their own base.
var DefaultBase = Stats{
	DPS:          1000,
	Life:         500,
	EnergyShield: 50,
}

// Stat-line patterns. The tree expresses bonuses in a constrained English
// grammar, so substring regexes are reliable here in a way they are not for
// the raw tree-data format.
var (
	flatLifeRE = regexp.MustCompile(`(?i)\+(\d+(?:\.\d+)?) to maximum life`)
	pctLifeRE  = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)% increased maximum life`)
	flatESRE   = regexp.MustCompile(`(?i)\+(\d+(?:\.\d+)?) to maximum energy shield`)
	pctESRE    = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)% increased (?:maximum )?energy shield`)
	damageRE   = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)% (?:increased|more)(?: [a-z]+)* damage`)
	resRE      = regexp.MustCompile(`(?i)\+(\d+(?:\.\d+)?)% to (fire|cold|lightning|chaos) resistance`)
	allResRE   = regexp.MustCompile(`(?i)\+(\d+(?:\.\d+)?)% to all elemental resistances`)
)

// Evaluator folds node stat lines over a base character snapshot.
// Percentage modifiers scale the base pools, flat modifiers add on top,
// which mirrors how the game layers tree bonuses.
type Evaluator struct {
	Base Stats
}

// NewEvaluator returns an evaluator over base, substituting DefaultBase
// for a zero value.
func NewEvaluator(base Stats) Evaluator {
	if base == (Stats{}) {
		base = DefaultBase
	}
	return Evaluator{Base: base}
}

// Evaluate computes the stat snapshot for an allocation.
func (ev Evaluator) Evaluate(nodes []*tree.Node) Stats {
	var flatLife, pctLife, flatES, pctES, pctDamage float64
	var fire, cold, lightning, chaos float64

	for _, n := range nodes {
		for _, line := range n.Stats {
			flatLife += matchValue(flatLifeRE, line)
			pctLife += matchValue(pctLifeRE, line)
			flatES += matchValue(flatESRE, line)
			pctES += matchValue(pctESRE, line)
			pctDamage += matchValue(damageRE, line)

			if m := resRE.FindStringSubmatch(line); m != nil {
				v, _ := strconv.ParseFloat(m[1], 64)
				switch strings.ToLower(m[2]) {
				case "fire":
					fire += v
				case "cold":
					cold += v
				case "lightning":
					lightning += v
				default:
					chaos += v
				}
			}
			if v := matchValue(allResRE, line); v > 0 {
				fire += v
				cold += v
				lightning += v
			}
		}
	}

	out := ev.Base
	out.DPS = ev.Base.DPS * (1 + pctDamage/100)
	out.Life = ev.Base.Life*(1+pctLife/100) + flatLife
	out.EnergyShield = ev.Base.EnergyShield*(1+pctES/100) + flatES
	out.FireRes += fire
	out.ColdRes += cold
	out.LightningRes += lightning
	out.ChaosRes += chaos
	return out
}

func matchValue(re *regexp.Regexp, line string) float64 {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return 0
	}
	v, _ := strconv.ParseFloat(m[1], 64)
	return v
}
