// Package archetype infers a build's identity from its allocated keystones
// and notables.
//
// Classification is purely rule-based and deterministic: a fixed table maps
// build-defining keystones to archetype tags at high confidence, and a
// substring tally over notable stat text contributes a secondary defensive
// tag at medium confidence. It is a heuristic, not a guarantee - two builds
// with identical markers get identical labels even when their gear differs
// wildly.
package archetype

import (
	"strings"

	"github.com/exilemind/arbor/pkg/tree"
)

// Confidence expresses how strongly the markers support the label.
type Confidence string

const (
	ConfidenceLow    Confidence = "Low"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceHigh   Confidence = "High"
)

// Unspecified is returned when the allocation carries no recognizable markers.
const Unspecified = "Unspecified"

// keystoneRule maps one keystone name to an archetype tag.
type keystoneRule struct {
	tag string
	// energyShield marks keystones that already imply an ES defensive
	// layer, suppressing the secondary life/ES tally.
	energyShield bool
}

// keystoneRules is the fixed classification table. Keys are exact keystone
// display names from the tree data.
var keystoneRules = map[string]keystoneRule{
	"Resolute Technique":    {tag: "Attack-based (Non-crit)"},
	"Elemental Overload":    {tag: "Elemental (Non-crit)"},
	"Chaos Inoculation":     {tag: "Energy Shield (CI)", energyShield: true},
	"Eldritch Battery":      {tag: "Hybrid ES Spender", energyShield: true},
	"Ghost Reaver":          {tag: "ES Leech", energyShield: true},
	"Blood Magic":           {tag: "Life-cost (Blood Magic)"},
	"Mind Over Matter":      {tag: "Mana-buffered"},
	"Ancestral Bond":        {tag: "Totem"},
	"Minion Instability":    {tag: "Minion"},
	"Avatar of Fire":        {tag: "Fire Conversion"},
	"Point Blank":           {tag: "Close-range Projectile"},
	"Perfect Agony":         {tag: "Damage-over-time (Crit)"},
	"Crimson Dance":         {tag: "Bleed"},
	"Iron Reflexes":         {tag: "Armour Stacker"},
	"Acrobatics":            {tag: "Dodge/Evasion"},
	"Pain Attunement":       {tag: "Low-life Caster"},
	"Vaal Pact":             {tag: "Leech-dependent"},
	"Elemental Equilibrium": {tag: "Multi-element Rotation"},
}

// notableTallyLimit caps how many notables feed the life/ES substring tally.
// Deep trees repeat travel notables; the first allocations carry the signal.
const notableTallyLimit = 20

// tallyMargin is how far one defensive count must exceed the other before
// the secondary tag is emitted.
const tallyMargin = 2

// Result is a classification outcome.
type Result struct {
	// Archetype is the label, possibly multi-part and comma-joined
	// (e.g. "Attack-based (Non-crit), Life-based").
	Archetype string

	Confidence Confidence
}

// Classify labels an allocation from its keystone and notable nodes.
//
// Keystone rules fire at high confidence. When the notable tally detects a
// dominant defensive layer it appends "Life-based" or "Hybrid Life/ES" at
// medium confidence - never downgrading a high-confidence keystone result,
// and suppressed entirely when an ES keystone is already flagged. With no
// markers at all the result is (Unspecified, Low).
func Classify(keystones, notables []*tree.Node) Result {
	var tags []string
	confidence := ConfidenceLow
	esKeystone := false

	for _, ks := range keystones {
		rule, ok := keystoneRules[ks.Name]
		if !ok {
			continue
		}
		tags = append(tags, rule.tag)
		confidence = ConfidenceHigh
		if rule.energyShield {
			esKeystone = true
		}
	}

	if !esKeystone {
		if tag := defensiveTag(notables); tag != "" {
			tags = append(tags, tag)
			if confidence != ConfidenceHigh {
				confidence = ConfidenceMedium
			}
		}
	}

	if len(tags) == 0 {
		return Result{Archetype: Unspecified, Confidence: ConfidenceLow}
	}
	return Result{Archetype: strings.Join(tags, ", "), Confidence: confidence}
}

// defensiveTag tallies life and energy-shield mentions across the stat text
// of the first notableTallyLimit notables and returns the secondary tag, or
// empty when neither layer dominates.
func defensiveTag(notables []*tree.Node) string {
	life, es := 0, 0

	limit := min(len(notables), notableTallyLimit)
	for _, n := range notables[:limit] {
		for _, stat := range n.Stats {
			lower := strings.ToLower(stat)
			if strings.Contains(lower, "maximum life") {
				life++
			}
			if strings.Contains(lower, "energy shield") {
				es++
			}
		}
	}

	switch {
	case life-es > tallyMargin:
		return "Life-based"
	case es-life > tallyMargin:
		return "Hybrid Life/ES"
	default:
		return ""
	}
}
