// File: errors.go
// Role: Sentinel errors for the roadgraph package.
//
// Error policy:
//   - Only sentinel variables are exposed; callers branch with errors.Is.
//   - Sentinels are never wrapped with formatted strings at definition
//     site; call sites attach context via fmt.Errorf("...: %w", err).

package roadgraph

import (
	"errors"

	"github.com/geoindex/roadgraph/internal/segstore"
)

var (
	// ErrInvalidNodeID indicates a negative node id was passed to
	// SetNode or AddEdge.
	ErrInvalidNodeID = errors.New("roadgraph: invalid node id")

	// ErrNodeNotFound indicates MarkDeleted was given an id outside
	// [0, NodeCount), a negative id included.
	ErrNodeNotFound = errors.New("roadgraph: node not found")

	// ErrCapacityExhausted indicates the edge pointer space (a signed
	// 32-bit integer) would overflow on the next allocation.
	ErrCapacityExhausted = segstore.ErrCapacityExhausted

	// ErrCorruption indicates an adjacency walk (during insertion,
	// iteration or compaction) exceeded the 1000-hop safety cap.
	// Compaction does not otherwise check edge records for references
	// to deleted nodes. Fatal: the graph instance must be discarded.
	ErrCorruption = errors.New("roadgraph: adjacency corruption detected")

	// ErrFormatMismatch indicates the on-disk settings file was
	// shorter than 3 fields, or nodeCount did not match the length of
	// the loaded lats array.
	ErrFormatMismatch = errors.New("roadgraph: on-disk format mismatch")
)
