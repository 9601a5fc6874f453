// File: options.go
// Role: GraphOption constructors.

package roadgraph

import "github.com/geoindex/roadgraph/flags"

// WithCapacityHint sizes the initial node-table capacity and the edge
// store's segment size for roughly n nodes. Ignored if n <= 0.
func WithCapacityHint(n int) GraphOption {
	return func(g *Graph) {
		if n > 0 {
			g.capacityHint = n
		}
	}
}

// WithFlagCodec injects the direction/street-type bit codec. Ignored
// if codec is nil (the default bit-packed codec is used instead).
func WithFlagCodec(codec flags.Codec) GraphOption {
	return func(g *Graph) {
		if codec != nil {
			g.codec = codec
		}
	}
}

// WithMoveHook registers a callback invoked once per node relocated
// during Optimize, after the node's own (lat, lon, head) fields have
// been copied from oldIndex to newIndex. Lets an embedder carrying
// parallel per-node arrays move them in lockstep.
func WithMoveHook(fn func(oldIndex, newIndex int)) GraphOption {
	return func(g *Graph) {
		g.moveHook = fn
	}
}
