package treedata

import (
	"strings"
	"testing"

	"github.com/exilemind/arbor/pkg/errors"
)

const nodeWarrior = `[3]= {
	["name"]= "Heart of the Warrior",
	["icon"]= "Art/2DArt/SkillIcons/passives/heartwarrior.png",
	["not"]= true,
	["stats"]= {
		"+30 to maximum Life",
		"10% increased Armour"
	},
	["out"]= { "4" },
	["in"]= { "2" }
}`

const nodeKeystone = `[4]= {
	["name"]= "Resolute Technique",
	["ks"]= true,
	["stats"]= {
		"Your hits can't be Evaded",
		"Never deal Critical Strikes"
	},
	["in"]= { "3" }
}`

const nodeTravel = `[2]= {
	["out"]= { "3" },
	["in"]= { "1" }
}`

const nodeAscendancy = `[7]= {
	["name"]= "Juggernaut",
	["isAscendancyStart"]= true,
	["ascendancyName"]= "Juggernaut",
	["out"]= { "8" }
}`

const nodeMalformed = `[5]= {
	["name"]= "Broken",
	["out"]= { "not-a-number" },
}`

func TestParseWellFormed(t *testing.T) {
	raw := strings.Join([]string{nodeTravel, nodeWarrior, nodeKeystone, nodeAscendancy}, ",\n")

	tr, err := Parse(raw, "3_26")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tr.NodeCount() != 4 {
		t.Fatalf("NodeCount = %d, want 4", tr.NodeCount())
	}
	if tr.Version() != "3_26" {
		t.Errorf("Version = %q, want 3_26", tr.Version())
	}

	warrior, ok := tr.Node(3)
	if !ok {
		t.Fatal("node 3 missing")
	}
	if warrior.Name != "Heart of the Warrior" {
		t.Errorf("name = %q", warrior.Name)
	}
	if !warrior.Notable || warrior.Keystone {
		t.Errorf("flags = %+v, want notable only", warrior)
	}
	if len(warrior.Stats) != 2 || warrior.Stats[0] != "+30 to maximum Life" {
		t.Errorf("stats = %v", warrior.Stats)
	}
	if len(warrior.Out) != 1 || warrior.Out[0] != 4 {
		t.Errorf("out = %v, want [4]", warrior.Out)
	}
	if len(warrior.In) != 1 || warrior.In[0] != 2 {
		t.Errorf("in = %v, want [2]", warrior.In)
	}

	ks, _ := tr.Node(4)
	if ks == nil || !ks.Keystone {
		t.Error("node 4 should be a keystone")
	}

	asc, _ := tr.Node(7)
	if asc == nil || !asc.AscendancyStart || asc.AscendancyName != "Juggernaut" {
		t.Errorf("ascendancy node = %+v", asc)
	}

	travel, _ := tr.Node(2)
	if travel == nil || travel.Name != "" || len(travel.Stats) != 0 {
		t.Errorf("travel node = %+v", travel)
	}
}

func TestParseSkipsMalformed(t *testing.T) {
	// N well-formed bodies plus M malformed ones produce exactly N nodes,
	// regardless of where the malformed bodies sit.
	wellFormed := []string{nodeTravel, nodeWarrior, nodeKeystone}
	positions := [][]string{
		{nodeMalformed, nodeTravel, nodeWarrior, nodeKeystone},
		{nodeTravel, nodeMalformed, nodeWarrior, nodeKeystone},
		{nodeTravel, nodeWarrior, nodeKeystone, nodeMalformed},
	}

	for i, parts := range positions {
		tr, err := Parse(strings.Join(parts, ",\n"), "3_26")
		if err != nil {
			t.Fatalf("position %d: Parse: %v", i, err)
		}
		if tr.NodeCount() != len(wellFormed) {
			t.Errorf("position %d: NodeCount = %d, want %d", i, tr.NodeCount(), len(wellFormed))
		}
		if tr.Has(5) {
			t.Errorf("position %d: malformed node 5 must not be present", i)
		}
	}
}

func TestParseNestedBraces(t *testing.T) {
	// The stats sub-table must not terminate the node body early.
	raw := `[10]= {
		["name"]= "Nested",
		["stats"]= {
			"Grants {placeholder} effect"
		},
		["out"]= { "11" }
	},
	[11]= {
		["in"]= { "10" }
	}`

	tr, err := Parse(raw, "3_26")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tr.NodeCount() != 2 {
		t.Fatalf("NodeCount = %d, want 2", tr.NodeCount())
	}
	n, _ := tr.Node(10)
	if len(n.Out) != 1 || n.Out[0] != 11 {
		t.Errorf("out parsed past nested braces: %v", n.Out)
	}
}

func TestParseEscapedQuotes(t *testing.T) {
	raw := `[12]= {
		["name"]= "The \"Unbreakable\"",
		["not"]= true
	}`
	tr, err := Parse(raw, "3_26")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	n, _ := tr.Node(12)
	if n.Name != `The "Unbreakable"` {
		t.Errorf("name = %q", n.Name)
	}
}

func TestParseFailures(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantCode errors.Code
	}{
		{"empty input", "", errors.ErrCodeParseFailed},
		{"no nodes in non-empty input", "this is not tree data", errors.ErrCodeParseEmpty},
		{"only malformed nodes", nodeMalformed, errors.ErrCodeParseEmpty},
		{"unbalanced braces", `[1]= { ["name"]= "Broken"`, errors.ErrCodeParseEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw, "3_26")
			if err == nil {
				t.Fatal("Parse should fail")
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), tt.wantCode)
			}
		})
	}
}

func TestParseDuplicateIDFirstWins(t *testing.T) {
	raw := `[1]= { ["name"]= "First" }, [1]= { ["name"]= "Second" }`
	tr, err := Parse(raw, "3_26")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	n, _ := tr.Node(1)
	if n.Name != "First" {
		t.Errorf("name = %q, want First", n.Name)
	}
}

func TestParseLongFlagNames(t *testing.T) {
	raw := `[20]= {
		["isKeystone"]= true
	},
	[21]= {
		["isNotable"]= true
	},
	[22]= {
		["isJewelSocket"]= true
	}`

	tr, err := Parse(raw, "3_26")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if n, _ := tr.Node(20); n == nil || !n.Keystone {
		t.Error("long-form keystone flag not recognized")
	}
	if n, _ := tr.Node(21); n == nil || !n.Notable {
		t.Error("long-form notable flag not recognized")
	}
	if n, _ := tr.Node(22); n == nil || !n.JewelSocket {
		t.Error("jewel socket flag not recognized")
	}
}
