// Package optimize proposes allocation changes that improve a chosen
// objective without violating defensive constraints.
//
// The optimizer is a bounded greedy local search: each iteration it picks
// the single best move among adding a nearby notable (with its connecting
// travel nodes), removing a low-value allocated node, or swapping the two,
// and stops when no move improves the objective or the iteration budget
// runs out. Connectivity is approximated by a neighbor-count heuristic
// rather than true cut-vertex detection; see the removable rule in Run.
//
// Non-convergence is never an error. An unreachable goal or an empty
// candidate set yields a result with empty change lists and a zero score
// delta.
package optimize
