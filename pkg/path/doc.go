// Package path implements the pathfinding queries of the tree engine.
//
// Two distinct algorithms run over the same immutable [tree.Tree]:
//
//   - An allocated-subgraph BFS that finds the shortest hop-count path
//     between two allocated nodes, never leaving the allocation.
//   - A multi-source Dijkstra seeded with every allocated node at distance
//     zero. All edges currently weigh one hop, so it degenerates to
//     multi-source BFS, but the implementation is kept general so edge
//     weights can be introduced without rewriting the search.
//
// The Dijkstra pass powers two queries: nearest unallocated notable or
// keystone nodes within a radius, and the shortest path from the allocation
// to one specific target node.
//
// Node ids at or above tree.DynamicIDThreshold are filtered before seeding
// and never dereferenced. Trace output goes through the observability
// hooks, keeping the hot loops free of logging.
package path
