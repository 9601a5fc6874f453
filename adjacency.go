// File: adjacency.go
// Role: Edge insertion and the intrusive per-node adjacency linked
// list (C5): attach, unlink, and the hop-capped list walk.

package roadgraph

import "github.com/geoindex/roadgraph/internal/segstore"

// maxWalkHops is the safety cap on a single adjacency-list walk. Any
// walk exceeding it signals corruption or a cycle in the linked list
// and fails fast rather than looping forever.
const maxWalkHops = 1000

// AddEdge inserts an edge between a and b with the given distance (in
// meters) and direction flags, as interpreted by the injected
// flags.Codec. flags is read as "forward means traversal from a
// towards b"; if a > b the stored record swaps endpoints and
// direction-swaps flags so the invariant nodeA <= nodeB holds.
//
// Returns the edge's pointer in the segmented store.
//
// Complexity: O(deg(a) + deg(b)): each endpoint's adjacency list is
// walked to its tail, bounded by maxWalkHops.
func (g *Graph) AddEdge(a, b int32, distanceMeters float64, edgeFlags int32) (int32, error) {
	if a < 0 || b < 0 {
		return 0, ErrInvalidNodeID
	}
	hi := a
	if b > hi {
		hi = b
	}
	g.ensureNodeIndex(hi)

	p, err := g.store.Alloc()
	if err != nil {
		return 0, err
	}

	if err := g.attach(a, p); err != nil {
		return 0, err
	}
	if err := g.attach(b, p); err != nil {
		return 0, err
	}

	distQ := quantizeDistance(distanceMeters)
	g.putEdge(p, a, b, segstore.EmptyLink, segstore.EmptyLink, edgeFlags, distQ, 0)
	g.liveEdgeCount++

	return p, nil
}

// attach threads the new edge at pointer p into self's adjacency
// list: if self currently has no edges, p becomes the head; otherwise
// the walk advances to the tail and the tail's link field for self is
// set to p.
func (g *Graph) attach(self, p int32) error {
	head := g.headAt(self)
	if head == segstore.EmptyLink {
		g.setHeadAt(self, p)
		return nil
	}

	cursor := head
	for hops := 0; ; hops++ {
		if hops >= maxWalkHops {
			return ErrCorruption
		}
		other := g.otherEndpoint(self, cursor)
		nextPos := linkPos(self, other, cursor)
		next := g.store.Get(nextPos)
		if next == segstore.EmptyLink {
			g.store.Set(nextPos, p)
			return nil
		}
		cursor = next
	}
}

// unlink splices the edge at edgePointer out of node's adjacency
// list. prevEdgePointer must be the pointer of the preceding edge in
// node's list, or a negative value if edgePointer is currently the
// head.
func (g *Graph) unlink(node, edgePointer, prevEdgePointer int32) {
	other := g.otherEndpoint(node, edgePointer)
	next := g.store.Get(linkPos(node, other, edgePointer))

	if prevEdgePointer < 0 {
		g.setHeadAt(node, next)
		return
	}
	prevOther := g.otherEndpoint(node, prevEdgePointer)
	g.store.Set(linkPos(node, prevOther, prevEdgePointer), next)
}
