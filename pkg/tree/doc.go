// Package tree defines the in-memory representation of a passive skill tree.
//
// A [Tree] is an immutable node graph built once per data version by the
// treedata parser and shared read-only across analyses. Nodes carry the
// display name, stat descriptions, category flags, and adjacency lists
// extracted from the game's tree data.
//
// The underlying graph is effectively undirected for traversal purposes but
// is serialized upstream as two directed lists (out/in); [Tree.Neighbors]
// merges both directions.
//
// Node ids at or above [DynamicIDThreshold] identify sockets generated at
// runtime by the game client. They never exist in the static tree and are
// filtered out of every lookup and traversal.
package tree
