// Package treedata turns the game's raw tree-data text into a [tree.Tree]
// and manages version-keyed storage of parsed trees.
//
// # Format
//
// The upstream data is a large nested-table dump. Each node looks like:
//
//	[12345]= {
//		["name"]= "Heart of the Warrior",
//		["icon"]= "Art/2DArt/SkillIcons/passives/heartwarrior.png",
//		["not"]= true,
//		["stats"]= {
//			"+30 to maximum Life",
//			"10% increased Armour"
//		},
//		["out"]= { "1234", "5678" },
//		["in"]= { "910" }
//	}
//
// Node bodies contain nested sub-tables (the stats list, connection lists),
// so the parser isolates each body with explicit brace-depth counting rather
// than a greedy regex, which would silently truncate or merge entries.
//
// # Error tolerance
//
// A malformed node body aborts only that node; parsing continues with the
// next marker. Only a parse that yields zero nodes from non-empty input is
// reported as a failure.
//
// # Storage
//
// [Store] caches parsed trees by version string over a [Source] collaborator,
// with a single fallback-version hop and explicit invalidation. See store.go.
package treedata
