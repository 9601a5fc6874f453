// File: bounds.go
// Role: Bounding-box maintenance (C8).

package roadgraph

import "math"

// Bounds is the axis-aligned lat/lon rectangle enclosing every live
// node ever inserted. Compaction does not shrink it.
type Bounds struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// newInverseBounds returns the starting "empty" box: min = +Inf,
// max = -Inf, so the first expand call establishes real bounds.
func newInverseBounds() Bounds {
	return Bounds{
		MinLat: math.Inf(1), MaxLat: math.Inf(-1),
		MinLon: math.Inf(1), MaxLon: math.Inf(-1),
	}
}

// expand widens b monotonically to include (lat, lon).
func (b *Bounds) expand(lat, lon float64) {
	if lat < b.MinLat {
		b.MinLat = lat
	}
	if lat > b.MaxLat {
		b.MaxLat = lat
	}
	if lon < b.MinLon {
		b.MinLon = lon
	}
	if lon > b.MaxLon {
		b.MaxLon = lon
	}
}

// Contains reports whether (lat, lon) falls within b. An empty box
// (no node ever inserted) contains nothing.
func (b Bounds) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// Bounds returns the current bounding box.
//
// Complexity: O(1).
func (g *Graph) Bounds() Bounds {
	return g.bounds
}
