// File: compact.go
// Role: In-place compaction (C6). Removes deleted nodes and their
// incident edges, then relabels surviving high-id nodes down into the
// freed low-id slots so ids stay dense in [0, NodeCount).

package roadgraph

import "github.com/geoindex/roadgraph/internal/segstore"

// Optimize removes every node marked deleted (and its incident edges),
// then pairs each freed low id with a surviving high id so that, once
// Optimize returns, every id in [0, NodeCount) refers to a live node.
//
// Edge pointers are never relocated: only the node-id labels embedded
// in edge records change. A registered move hook fires once per
// relocated node, after its own fields have moved, so an embedder can
// shift parallel arrays in lockstep.
//
// Optimize is not safe to call concurrently with any other Graph
// method; see the package doc for the concurrency contract.
//
// Complexity: O(V + E).
func (g *Graph) Optimize() error {
	if g.deleted.Count() == 0 {
		return nil
	}

	if err := g.removeDeletedEdges(); err != nil {
		return err
	}

	newCount, err := g.compactIDs()
	if err != nil {
		return err
	}

	g.nodeCount = newCount
	g.deleted.Reset(newCount)
	return nil
}

// removeDeletedEdges discards every edge incident to a deleted node.
// An edge with exactly one deleted endpoint is spliced out of the
// surviving endpoint's adjacency list; an edge between two deleted
// endpoints is simply dropped along with both lists. Each edge is
// counted out of liveEdgeCount exactly once.
func (g *Graph) removeDeletedEdges() error {
	for id, ok := g.deleted.NextSet(0); ok; id, ok = g.deleted.NextSet(id + 1) {
		node := int32(id)
		cursor := g.headAt(node)
		for hops := 0; cursor != segstore.EmptyLink; hops++ {
			if hops >= maxWalkHops {
				return ErrCorruption
			}
			other := g.otherEndpoint(node, cursor)
			next := g.store.Get(linkPos(node, other, cursor))

			if g.deleted.Test(uint(other)) {
				if node <= other {
					g.liveEdgeCount--
				}
			} else {
				if err := g.removeEdgeFromList(other, cursor); err != nil {
					return err
				}
				g.liveEdgeCount--
			}
			cursor = next
		}
		g.setHeadAt(node, segstore.EmptyLink)
	}
	return nil
}

// removeEdgeFromList walks node's adjacency list to find and splice
// out edgePointer.
func (g *Graph) removeEdgeFromList(node, edgePointer int32) error {
	cursor := g.headAt(node)
	prev := int32(-1)
	for hops := 0; cursor != segstore.EmptyLink; hops++ {
		if hops >= maxWalkHops {
			return ErrCorruption
		}
		if cursor == edgePointer {
			g.unlink(node, cursor, prev)
			return nil
		}
		other := g.otherEndpoint(node, cursor)
		next := g.store.Get(linkPos(node, other, cursor))
		prev = cursor
		cursor = next
	}
	return nil
}

// compactIDs pairs each ascending deleted id with a descending
// surviving id, using one shared pair of scan cursors, and returns the
// resulting live node count.
//
// The pairing stops as soon as the descending cursor meets or passes
// the ascending one (m <= d), not strictly less: a deleted slot at or
// above the final live boundary needs no node moved into it, since
// truncation already discards it.
func (g *Graph) compactIDs() (int, error) {
	m := int32(g.nodeCount) - 1
	d, ok := g.deleted.NextSet(0)
	for ok {
		for m >= 0 && g.deleted.Test(uint(m)) {
			m--
		}
		if m <= int32(d) {
			break
		}
		if err := g.moveNode(m, int32(d)); err != nil {
			return 0, err
		}
		m--
		d, ok = g.deleted.NextSet(d + 1)
	}
	return int(m) + 1, nil
}

// moveNode relocates surviving node m into freed slot d: copies its
// coordinates and adjacency head, relabels every edge in its list to
// refer to d instead of m, and fires the move hook.
func (g *Graph) moveNode(m, d int32) error {
	g.lats[d] = g.lats[m]
	g.lons[d] = g.lons[m]
	g.head[d] = g.head[m]

	cursor := g.head[d]
	for hops := 0; cursor != segstore.EmptyLink; hops++ {
		if hops >= maxWalkHops {
			return ErrCorruption
		}
		other := g.otherEndpoint(m, cursor)
		next := g.store.Get(linkPos(m, other, cursor))
		g.relabelNode(cursor, m, d)
		cursor = next
	}

	if g.moveHook != nil {
		g.moveHook(int(m), int(d))
	}
	return nil
}

// relabelNode rewrites the node-id fields of the edge record at p that
// equal oldID to newID, re-canonicalizing endpoint order (and
// direction-swapping flags and link fields via putEdge) if the
// relabeling flips which endpoint is numerically smaller. A self-loop
// has both fields replaced.
func (g *Graph) relabelNode(p, oldID, newID int32) {
	a := g.store.Get(p + offNodeA)
	b := g.store.Get(p + offNodeB)
	linkA := g.store.Get(p + offLinkA)
	linkB := g.store.Get(p + offLinkB)
	flags := g.store.Get(p + offFlags)
	distQ := g.store.Get(p + offDistance)
	shortcut := g.store.Get(p + offShortcutNode)

	if a == oldID {
		a = newID
	}
	if b == oldID {
		b = newID
	}
	g.putEdge(p, a, b, linkA, linkB, flags, distQ, shortcut)
}
