// File: clone.go
// Role: Deep copy (C9). The clone shares no backing storage with its
// source, including the segmented edge store's segments.

package roadgraph

// Clone returns an independent deep copy of g. Mutating the clone
// never affects g, and vice versa. The clone starts with no directory
// of its own, even if g has one: Close/Flush on the clone must not
// silently overwrite whatever g persists to its directory.
//
// Complexity: O(V + E).
func (g *Graph) Clone() *Graph {
	c := &Graph{
		lats: append([]float32(nil), g.lats...),
		lons: append([]float32(nil), g.lons...),
		head: append([]int32(nil), g.head...),

		nodeCount:     g.nodeCount,
		liveEdgeCount: g.liveEdgeCount,

		store:   g.store.Clone(),
		deleted: g.deleted.Clone(),

		codec:    g.codec,
		moveHook: g.moveHook,

		bounds: g.bounds,

		capacityHint:       g.capacityHint,
		creationTimeMillis: g.creationTimeMillis,
	}
	return c
}
