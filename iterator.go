// File: iterator.go
// Role: The direction-filtered edge iterator over a node's adjacency
// list, plus the linear all-edges scan.

package roadgraph

import "github.com/geoindex/roadgraph/internal/segstore"

// EdgeRef describes one edge as seen while walking a node's adjacency
// list: the neighbor at the far end, the distance in meters, the
// effective (already direction-resolved) flags, and the edge's raw
// pointer in the segmented store.
type EdgeRef struct {
	Other    int32
	Distance float64
	Flags    int32
	Pointer  int32
}

// EdgeIter lazily walks one node's adjacency list, yielding edges that
// satisfy a direction filter. It holds a read-only borrow of its
// Graph: do not mutate the graph while an EdgeIter over it is in use.
type EdgeIter struct {
	g    *Graph
	node int32

	cursor         int32
	hops           int
	acceptIncoming bool
	acceptOutgoing bool

	cur EdgeRef
	err error
}

func (g *Graph) newEdgeIter(node int32, acceptIncoming, acceptOutgoing bool) *EdgeIter {
	return &EdgeIter{
		g:              g,
		node:           node,
		cursor:         g.headAt(node),
		acceptIncoming: acceptIncoming,
		acceptOutgoing: acceptOutgoing,
	}
}

// Edges returns an iterator over every edge incident to node,
// regardless of direction.
func (g *Graph) Edges(node int32) *EdgeIter {
	return g.newEdgeIter(node, true, true)
}

// Outgoing returns an iterator over edges usable for travel away from
// node (forward edges, from node's perspective).
func (g *Graph) Outgoing(node int32) *EdgeIter {
	return g.newEdgeIter(node, false, true)
}

// Incoming returns an iterator over edges usable for travel into
// node (backward edges, from node's perspective).
func (g *Graph) Incoming(node int32) *EdgeIter {
	return g.newEdgeIter(node, true, false)
}

// Next advances the iterator and reports whether another matching
// edge is available; the edge itself is retrieved with Edge.
func (it *EdgeIter) Next() bool {
	for it.cursor != segstore.EmptyLink {
		it.hops++
		if it.hops > maxWalkHops {
			it.err = ErrCorruption
			it.cursor = segstore.EmptyLink
			return false
		}

		p := it.cursor
		other := it.g.otherEndpoint(it.node, p)
		next := it.g.store.Get(linkPos(it.node, other, p))
		it.cursor = next

		stored := it.g.edgeFlags(p)
		effective := stored
		if it.node > other {
			effective = it.g.codec.SwapDirection(stored)
		}

		forward := it.g.codec.IsForward(effective)
		backward := it.g.codec.IsBackward(effective)
		if (it.acceptOutgoing && forward) || (it.acceptIncoming && backward) {
			it.cur = EdgeRef{
				Other:    other,
				Distance: it.g.edgeDistance(p),
				Flags:    effective,
				Pointer:  p,
			}
			return true
		}
	}
	return false
}

// Edge returns the edge found by the most recent call to Next that
// returned true.
func (it *EdgeIter) Edge() EdgeRef {
	return it.cur
}

// Err returns the error that ended iteration early, or nil if
// iteration ran to completion.
func (it *EdgeIter) Err() error {
	return it.err
}

// Collect drains the iterator into a slice. Convenience for callers
// that don't need the lazy walk.
func (it *EdgeIter) Collect() ([]EdgeRef, error) {
	var out []EdgeRef
	for it.Next() {
		out = append(out, it.Edge())
	}
	return out, it.Err()
}

// GetEdges returns every edge incident to node, in adjacency-list
// order.
func (g *Graph) GetEdges(node int32) ([]EdgeRef, error) {
	return g.Edges(node).Collect()
}

// GetOutgoing returns every forward-traversable edge incident to
// node.
func (g *Graph) GetOutgoing(node int32) ([]EdgeRef, error) {
	return g.Outgoing(node).Collect()
}

// GetIncoming returns every backward-traversable edge incident to
// node.
func (g *Graph) GetIncoming(node int32) ([]EdgeRef, error) {
	return g.Incoming(node).Collect()
}

// AllEdgeRef describes one edge record as seen by a linear scan of the
// entire edge store, in canonical (nodeA <= nodeB) form with stored
// (not direction-resolved) flags.
type AllEdgeRef struct {
	NodeA, NodeB int32
	Distance     float64
	Flags        int32
	Pointer      int32
}

// GetAllEdges scans the edge store linearly from the first record to
// the last allocated one, yielding every allocated record exactly once.
//
// Records are never reclaimed or marked: an edge removed by Optimize
// keeps its slot and its old node ids, and the scan returns it along
// with the live edges. The result matches the live edge set only while
// no node has ever been marked deleted.
//
// Complexity: O(E).
func (g *Graph) GetAllEdges() []AllEdgeRef {
	last := g.store.Next()
	out := make([]AllEdgeRef, 0, last/lenEdge)
	for p := lenEdge; p <= last; p += lenEdge {
		out = append(out, AllEdgeRef{
			NodeA:    g.edgeNodeA(p),
			NodeB:    g.edgeNodeB(p),
			Distance: g.edgeDistance(p),
			Flags:    g.edgeFlags(p),
			Pointer:  p,
		})
	}
	return out
}
