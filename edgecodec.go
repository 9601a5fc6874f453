// File: edgecodec.go
// Role: The 7-integer edge record layout and its encode/decode
// helpers (C4). Operates directly on the segmented store; never
// allocates.

package roadgraph

import "math"

// lenEdge is the edge record width, in int32 slots.
const lenEdge int32 = 7

// Field offsets within an edge record, relative to its base pointer.
const (
	offNodeA       int32 = 0
	offNodeB       int32 = 1
	offLinkA       int32 = 2
	offLinkB       int32 = 3
	offFlags       int32 = 4
	offDistance    int32 = 5
	offShortcutNode int32 = 6
)

// distanceScale quantizes meters to the stored integer distance unit:
// distanceStored = round(distanceMeters * distanceScale).
const distanceScale = 10000.0

func quantizeDistance(meters float64) int32 {
	return int32(math.Round(meters * distanceScale))
}

func dequantizeDistance(stored int32) float64 {
	return float64(stored) / distanceScale
}

func (g *Graph) edgeNodeA(p int32) int32 { return g.store.Get(p + offNodeA) }
func (g *Graph) edgeNodeB(p int32) int32 { return g.store.Get(p + offNodeB) }
func (g *Graph) edgeFlags(p int32) int32 { return g.store.Get(p + offFlags) }

func (g *Graph) edgeDistance(p int32) float64 {
	return dequantizeDistance(g.store.Get(p + offDistance))
}

// otherEndpoint returns the endpoint of the edge at p that is not
// node.
func (g *Graph) otherEndpoint(node, p int32) int32 {
	if g.edgeNodeA(p) == node {
		return g.edgeNodeB(p)
	}
	return g.edgeNodeA(p)
}

// linkPos returns the pointer to the next-edge field in self's
// adjacency list within the record at p: p+linkA if self is the
// numerically smaller endpoint, else p+linkB.
func linkPos(self, other, p int32) int32 {
	if self <= other {
		return p + offLinkA
	}
	return p + offLinkB
}

// putEdge writes a full edge record at p, canonicalizing endpoint
// order (nodeA <= nodeB) and direction-swapping flags and the link
// fields if the caller's (a, b) order is flipped relative to storage
// order. Used both for fresh insertion (linkA = linkB = 0) and for
// compaction rewrites (linkA/linkB preserved, possibly exchanged).
func (g *Graph) putEdge(p, a, b, linkA, linkB, edgeFlags, distQ, shortcutNode int32) {
	nodeA, nodeB := a, b
	la, lb := linkA, linkB
	f := edgeFlags
	if a > b {
		nodeA, nodeB = b, a
		la, lb = linkB, linkA
		f = g.codec.SwapDirection(edgeFlags)
	}
	g.store.Set(p+offNodeA, nodeA)
	g.store.Set(p+offNodeB, nodeB)
	g.store.Set(p+offLinkA, la)
	g.store.Set(p+offLinkB, lb)
	g.store.Set(p+offFlags, f)
	g.store.Set(p+offDistance, distQ)
	g.store.Set(p+offShortcutNode, shortcutNode)
}
