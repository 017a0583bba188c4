// Package search provides a binary min-heap and a generic A* search.
//
// AStar is generic over node identity and position type. Graphs are queried lazily
// through the Graph interface, so adjacency can be computed on demand and memoised by
// the implementation. The search re-enqueues improved nodes instead of decreasing keys;
// stale heap entries are skipped when popped.
package search
