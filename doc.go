// Package roadgraph is an in-memory, persistable road-network graph
// storage engine for routing workloads.
//
// It stores geo-located nodes (latitude/longitude) and weighted,
// optionally directional edges between them using a compact
// integer-array representation: a segmented flat store of int32 values
// (package internal/segstore) backs a per-node intrusive adjacency
// linked list, so neighbor walks never allocate. Node deletion is
// lazy (O(1) mark) followed by an explicit in-place Optimize that
// compacts ids and rewrites affected edges without reallocating the
// edge store.
//
// Why use roadgraph.Graph?
//
//   - Routing-shaped storage, not a general map-of-maps graph —
//     adjacency is threaded through the edge records themselves
//     (nodeA/nodeB/linkA/linkB), so neighbor iteration touches only
//     the edges incident to a node.
//   - Segmented growth — the edge store grows by appending fixed-size
//     segments, never copying or reallocating previously written data.
//   - Flush/Open round-trips the full graph to a directory of flat
//     files (lats, lons, refs, deleted, edgesN, settings).
//   - Clone produces a fully independent deep copy.
//
// What roadgraph.Graph deliberately does NOT do:
//
//   - No routing algorithms (shortest path, A*, contraction) and no
//     weight/cost functions — those are external collaborators layered
//     on top (see internal/testgraph for an example fixture builder).
//   - No spatial index beyond a plain bounding box (package bounds
//     tracking in bounds.go).
//   - No internal locking. The graph is single-writer/many-reader by
//     contract; callers serialize writes themselves.
//
// Configuration (GraphOption):
//
//	– WithCapacityHint(n int)
//	    Sizes the initial node arrays and edge-store segment size for
//	    roughly n nodes, avoiding repeated small regrowths.
//
//	– WithFlagCodec(codec flags.Codec)
//	    Injects the direction/street-type bit codec (see package
//	    flags). The core only ever calls SwapDirection/IsForward/
//	    IsBackward on it; it never interprets the remaining bits.
//
//	– WithMoveHook(fn func(oldIndex, newIndex int))
//	    Called once per node moved during Optimize, after the node's
//	    own (lat, lon, head) have been relocated, so an embedder
//	    carrying parallel per-node arrays (e.g. OSM way tags) can move
//	    them in lockstep.
//
// Core operations:
//
//	SetNode(id int32, lat, lon float64) error       // O(1) amortized
//	AddEdge(a, b int32, distM float64, f int32) (int32, error) // O(deg(a)+deg(b))
//	MarkDeleted(id int32) error                     // O(1)
//	Optimize() error                                // O(V+E)
//	Flush(dir string) error                         // O(V+E) + I/O
//	Open(dir string, opts ...GraphOption) (*Graph, error)
//	Clone() *Graph                                  // O(V+E)
//
// Errors:
//
//	ErrInvalidNodeID     – negative node id passed to SetNode/AddEdge.
//	ErrNodeNotFound       – MarkDeleted got an id outside [0, NodeCount).
//	ErrCapacityExhausted  – edge pointer space (int32) would overflow.
//	ErrCorruption         – an adjacency walk exceeded the safety cap.
//	ErrFormatMismatch     – on-disk settings file is short or
//	                        inconsistent with the node arrays.
package roadgraph
