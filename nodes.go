// File: nodes.go
// Role: The node table (C3): parallel lat/lon/head arrays and their
// geometric growth.

package roadgraph

import "math"

// ensureNodeIndex grows the node arrays so index i is addressable,
// growing capacity to max(10, ceil((i+1)*1.5)) when needed, and
// widens nodeCount to at least i+1.
//
// Complexity: O(1) amortized.
func (g *Graph) ensureNodeIndex(i int32) {
	idx := int(i)
	if idx < len(g.lats) {
		if idx+1 > g.nodeCount {
			g.nodeCount = idx + 1
		}
		return
	}

	newCap := int(math.Ceil(float64(idx+1) * 1.5))
	if newCap < 10 {
		newCap = 10
	}

	lats := make([]float32, newCap)
	copy(lats, g.lats)
	lons := make([]float32, newCap)
	copy(lons, g.lons)
	head := make([]int32, newCap)
	copy(head, g.head)
	g.lats, g.lons, g.head = lats, lons, head

	if idx+1 > g.nodeCount {
		g.nodeCount = idx + 1
	}
}

// SetNode records the coordinates of node id, creating it (and any
// gap below it) if it does not already exist. Coordinates are
// narrowed to float32 for storage.
//
// Complexity: O(1) amortized.
func (g *Graph) SetNode(id int32, lat, lon float64) error {
	if id < 0 {
		return ErrInvalidNodeID
	}
	g.ensureNodeIndex(id)
	g.lats[id] = float32(lat)
	g.lons[id] = float32(lon)
	g.bounds.expand(lat, lon)
	return nil
}

// NodeCount returns 1+max(id) across every id passed to SetNode or
// AddEdge, minus ids removed by a subsequent Optimize.
//
// Complexity: O(1).
func (g *Graph) NodeCount() int {
	return g.nodeCount
}

// Lat returns the latitude of node id.
//
// Complexity: O(1).
func (g *Graph) Lat(id int32) float64 {
	return float64(g.lats[id])
}

// Lon returns the longitude of node id.
//
// Complexity: O(1).
func (g *Graph) Lon(id int32) float64 {
	return float64(g.lons[id])
}

// IsDeleted reports whether id has been marked deleted and not yet
// compacted away.
//
// Complexity: O(1).
func (g *Graph) IsDeleted(id int32) bool {
	if id < 0 {
		return false
	}
	return g.deleted.Test(uint(id))
}

// MarkDeleted marks node id for removal on the next Optimize. Cheap
// and O(1); the node and its edges remain reachable until Optimize
// runs.
//
// Complexity: O(1).
func (g *Graph) MarkDeleted(id int32) error {
	if id < 0 || int(id) >= g.nodeCount {
		return ErrNodeNotFound
	}
	g.deleted.Set(uint(id))
	return nil
}

func (g *Graph) headAt(id int32) int32 {
	return g.head[id]
}

func (g *Graph) setHeadAt(id int32, p int32) {
	g.head[id] = p
}
