// File: types.go
// Role: The Graph type and its constructor.
//
// Graph owns every backing array exclusively: the node table
// (lats/lons/head), the deleted-node set, and the segmented edge
// store. It performs no internal locking — see doc.go for the
// single-writer/many-reader contract the embedder is expected to
// uphold.

package roadgraph

import (
	"time"

	"github.com/geoindex/roadgraph/flags"
	"github.com/geoindex/roadgraph/internal/bitset"
	"github.com/geoindex/roadgraph/internal/segstore"
)

const defaultCapacityHint = 1000

// Graph is the road-network storage engine: geo-located nodes plus
// weighted, optionally directional edges, backed by a segmented
// integer array and a per-node adjacency linked list.
//
// Not safe for concurrent use. Reads may run concurrently with other
// reads; any write (SetNode, AddEdge, MarkDeleted, Optimize, Flush,
// the loading half of Open) must have exclusive access.
type Graph struct {
	lats []float32
	lons []float32
	head []int32

	nodeCount     int
	liveEdgeCount int

	store   *segstore.Store
	deleted *bitset.Dense

	codec    flags.Codec
	moveHook func(oldIndex, newIndex int)

	bounds Bounds

	capacityHint       int
	creationTimeMillis int64

	dir string // last directory passed to Open/Flush, for Close
}

// GraphOption configures a Graph at construction time.
type GraphOption func(g *Graph)

// NewGraph constructs an empty Graph, applying opts in order.
//
// Complexity: O(1) plus O(capacityHint) for the initial segment and
// node arrays.
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		codec:              flags.NewDefaultCodec(),
		capacityHint:       defaultCapacityHint,
		creationTimeMillis: time.Now().UnixMilli(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.lats = make([]float32, g.capacityHint)
	g.lons = make([]float32, g.capacityHint)
	g.head = make([]int32, g.capacityHint)
	g.store = segstore.New(g.capacityHint)
	g.deleted = bitset.NewDense()
	g.bounds = newInverseBounds()
	return g
}
