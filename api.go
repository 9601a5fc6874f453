// File: api.go
// Role: The small facade surface that doesn't belong to any one
// component: aggregate stats and resource teardown.

package roadgraph

// Stats is a point-in-time snapshot of graph size and storage shape.
type Stats struct {
	NodeCount      int
	DeletedCount   int
	LiveEdgeCount  int
	SegmentCount   int
	SegmentSize    int32
	AllocatedEdges int32
	Bounds         Bounds
}

// Stats returns a snapshot of the graph's current size and storage
// shape, for diagnostics and capacity planning.
//
// Complexity: O(1).
func (g *Graph) Stats() Stats {
	return Stats{
		NodeCount:      g.nodeCount,
		DeletedCount:   g.deleted.Count(),
		LiveEdgeCount:  g.liveEdgeCount,
		SegmentCount:   g.store.SegmentCount(),
		SegmentSize:    g.store.SegmentSize(),
		AllocatedEdges: g.store.Next() / lenEdge,
		Bounds:         g.bounds,
	}
}

// EdgeCount returns the number of edges not yet removed by Optimize.
//
// Complexity: O(1).
func (g *Graph) EdgeCount() int {
	return g.liveEdgeCount
}

// Close is equivalent to Flush followed by releasing the graph's
// in-memory resources: if g was opened with Open or has ever had
// Flush called on it, Close flushes to that same directory before
// tearing down. A graph that was never given a directory has nothing
// to flush to, so Close just releases memory. Close is idempotent: a
// second call on an already-closed graph is a no-op.
func (g *Graph) Close() error {
	if g.store == nil {
		return nil
	}
	if g.dir != "" {
		if err := g.Flush(g.dir); err != nil {
			return err
		}
	}
	g.lats = nil
	g.lons = nil
	g.head = nil
	g.store = nil
	g.deleted = nil
	g.dir = ""
	return nil
}
