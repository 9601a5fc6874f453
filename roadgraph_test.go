package roadgraph_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/geoindex/roadgraph"
	"github.com/geoindex/roadgraph/flags"
)

type GraphSuite struct {
	suite.Suite
	g *roadgraph.Graph
}

func (s *GraphSuite) SetupTest() {
	s.g = roadgraph.NewGraph()
}

func (s *GraphSuite) TestSetNodeAndRead() {
	require := require.New(s.T())

	require.NoError(s.g.SetNode(0, 48.8566, 2.3522))
	require.Equal(1, s.g.NodeCount())
	require.InDelta(48.8566, s.g.Lat(0), 1e-4)
	require.InDelta(2.3522, s.g.Lon(0), 1e-4)
}

func (s *GraphSuite) TestSetNodeRejectsNegativeID() {
	require := require.New(s.T())
	require.ErrorIs(s.g.SetNode(-1, 0, 0), roadgraph.ErrInvalidNodeID)
}

func (s *GraphSuite) TestSetNodeFillsGapAndGrowsNodeCount() {
	require := require.New(s.T())

	require.NoError(s.g.SetNode(5, 1, 1))
	require.Equal(6, s.g.NodeCount())
}

// TestUndirectedEdgeVisibleFromBothEnds covers an edge inserted with
// Both set: it must appear in both endpoints' adjacency lists with the
// same distance.
func (s *GraphSuite) TestUndirectedEdgeVisibleFromBothEnds() {
	require := require.New(s.T())

	require.NoError(s.g.SetNode(1, 0, 0))
	require.NoError(s.g.SetNode(2, 0, 1))
	_, err := s.g.AddEdge(1, 2, 15, flags.Both)
	require.NoError(err)

	e1, err := s.g.GetEdges(1)
	require.NoError(err)
	require.Len(e1, 1)
	require.EqualValues(2, e1[0].Other)
	require.InDelta(15, e1[0].Distance, 1e-6)

	e2, err := s.g.GetEdges(2)
	require.NoError(err)
	require.Len(e2, 1)
	require.EqualValues(1, e2[0].Other)
}

// TestForwardOnlyDirectionFiltering mirrors the scenario of inserting
// edge(5, 2, 10, forwardOnly): stored canonically as nodeA=2, nodeB=5
// with direction-swapped flags, so node 5 sees it as outgoing and
// node 2 sees nothing outgoing.
func (s *GraphSuite) TestForwardOnlyDirectionFiltering() {
	require := require.New(s.T())

	require.NoError(s.g.SetNode(2, 0, 0))
	require.NoError(s.g.SetNode(5, 0, 1))
	_, err := s.g.AddEdge(5, 2, 10, flags.Forward)
	require.NoError(err)

	out5, err := s.g.GetOutgoing(5)
	require.NoError(err)
	require.Len(out5, 1)
	require.EqualValues(2, out5[0].Other)

	out2, err := s.g.GetOutgoing(2)
	require.NoError(err)
	require.Empty(out2)

	in2, err := s.g.GetIncoming(2)
	require.NoError(err)
	require.Len(in2, 1)
	require.EqualValues(5, in2[0].Other)

	in5, err := s.g.GetIncoming(5)
	require.NoError(err)
	require.Empty(in5)
}

// TestSelfLoop covers edge(7, 7, 4, both): exactly one edge, endpoint
// 7, correct distance, and no infinite loop walking the list.
func (s *GraphSuite) TestSelfLoop() {
	require := require.New(s.T())

	require.NoError(s.g.SetNode(7, 0, 0))
	_, err := s.g.AddEdge(7, 7, 4, flags.Both)
	require.NoError(err)

	edges, err := s.g.GetEdges(7)
	require.NoError(err)
	require.Len(edges, 1)
	require.EqualValues(7, edges[0].Other)
	require.InDelta(4, edges[0].Distance, 1e-6)
}

func (s *GraphSuite) TestMultipleEdgesOnSameNodeAllReachable() {
	require := require.New(s.T())

	for i := int32(1); i <= 5; i++ {
		require.NoError(s.g.SetNode(i, 0, float64(i)))
	}
	for i := int32(1); i <= 5; i++ {
		_, err := s.g.AddEdge(0, i, float64(i), flags.Both)
		require.NoError(err)
	}
	require.NoError(s.g.SetNode(0, 0, 0))

	edges, err := s.g.GetEdges(0)
	require.NoError(err)
	require.Len(edges, 5)

	seen := map[int32]bool{}
	for _, e := range edges {
		seen[e.Other] = true
	}
	for i := int32(1); i <= 5; i++ {
		require.True(seen[i])
	}
}

func (s *GraphSuite) TestMarkDeletedUnknownNode() {
	require := require.New(s.T())
	require.ErrorIs(s.g.MarkDeleted(0), roadgraph.ErrNodeNotFound)
}

func (s *GraphSuite) TestMarkDeletedIsIdempotentUntilOptimize() {
	require := require.New(s.T())

	require.NoError(s.g.SetNode(0, 0, 0))
	require.False(s.g.IsDeleted(0))
	require.NoError(s.g.MarkDeleted(0))
	require.True(s.g.IsDeleted(0))
	require.NoError(s.g.MarkDeleted(0))
	require.True(s.g.IsDeleted(0))
}

// TestOptimizeRemovesDeletedAndCompactsIDs builds a small star, deletes
// the two lowest-id leaves, and checks that Optimize compacts ids down
// while preserving every surviving edge.
func (s *GraphSuite) TestOptimizeRemovesDeletedAndCompactsIDs() {
	require := require.New(s.T())

	// Star: center 0, leaves 1..4.
	require.NoError(s.g.SetNode(0, 0, 0))
	for i := int32(1); i <= 4; i++ {
		require.NoError(s.g.SetNode(i, 0, float64(i)))
		_, err := s.g.AddEdge(0, i, float64(i), flags.Both)
		require.NoError(err)
	}
	require.Equal(4, s.g.EdgeCount())

	require.NoError(s.g.MarkDeleted(1))
	require.NoError(s.g.MarkDeleted(2))

	require.NoError(s.g.Optimize())

	require.Equal(3, s.g.NodeCount())
	require.Equal(2, s.g.EdgeCount())

	for i := 0; i < s.g.NodeCount(); i++ {
		require.False(s.g.IsDeleted(int32(i)))
	}

	// Center (id 0 survives untouched) must still see exactly 2
	// neighbors, at the surviving distances {3, 4}.
	edges, err := s.g.GetEdges(0)
	require.NoError(err)
	require.Len(edges, 2)
	dists := map[float64]bool{}
	for _, e := range edges {
		dists[e.Distance] = true
	}
	require.True(dists[3])
	require.True(dists[4])
}

func (s *GraphSuite) TestOptimizeWithNoDeletionsIsNoop() {
	require := require.New(s.T())

	require.NoError(s.g.SetNode(0, 0, 0))
	require.NoError(s.g.SetNode(1, 0, 1))
	_, err := s.g.AddEdge(0, 1, 5, flags.Both)
	require.NoError(err)

	require.NoError(s.g.Optimize())
	require.Equal(2, s.g.NodeCount())
	require.Equal(1, s.g.EdgeCount())
}

func (s *GraphSuite) TestOptimizeIsIdempotent() {
	require := require.New(s.T())

	require.NoError(s.g.SetNode(0, 0, 0))
	require.NoError(s.g.SetNode(1, 0, 1))
	require.NoError(s.g.SetNode(2, 0, 2))
	_, err := s.g.AddEdge(0, 2, 9, flags.Both)
	require.NoError(err)
	require.NoError(s.g.MarkDeleted(1))

	require.NoError(s.g.Optimize())
	statsAfterFirst := s.g.Stats()

	require.NoError(s.g.Optimize())
	statsAfterSecond := s.g.Stats()

	require.Equal(statsAfterFirst, statsAfterSecond)
}

// TestFlushAndOpenAfterOptimizePreservesEdgeCount guards against the
// edge store's orphaned slots (Optimize unlinks but never reclaims a
// removed edge record) being miscounted as live after a reload.
func (s *GraphSuite) TestFlushAndOpenAfterOptimizePreservesEdgeCount() {
	require := require.New(s.T())

	dir, err := os.MkdirTemp("", "roadgraph-test-*")
	require.NoError(err)
	defer os.RemoveAll(dir)

	require.NoError(s.g.SetNode(0, 0, 0))
	for i := int32(1); i <= 3; i++ {
		require.NoError(s.g.SetNode(i, 0, float64(i)))
		_, err := s.g.AddEdge(0, i, float64(i), flags.Both)
		require.NoError(err)
	}
	require.NoError(s.g.MarkDeleted(1))
	require.NoError(s.g.Optimize())
	require.Equal(2, s.g.EdgeCount())

	require.NoError(s.g.Flush(dir))
	loaded, err := roadgraph.Open(dir)
	require.NoError(err)

	require.Equal(2, loaded.EdgeCount())
	require.Equal(s.g.NodeCount(), loaded.NodeCount())
}

func (s *GraphSuite) TestBoundsExpandAndSurviveOptimize() {
	require := require.New(s.T())

	require.NoError(s.g.SetNode(0, 10, 10))
	require.NoError(s.g.SetNode(1, -5, 20))
	b := s.g.Bounds()
	require.Equal(-5.0, b.MinLat)
	require.Equal(10.0, b.MaxLat)
	require.Equal(10.0, b.MinLon)
	require.Equal(20.0, b.MaxLon)

	require.NoError(s.g.MarkDeleted(1))
	require.NoError(s.g.Optimize())

	// Compaction never shrinks the box, even though node 1 is gone.
	b2 := s.g.Bounds()
	require.Equal(b, b2)
}

func (s *GraphSuite) TestCloneIsIndependent() {
	require := require.New(s.T())

	require.NoError(s.g.SetNode(0, 1, 1))
	require.NoError(s.g.SetNode(1, 2, 2))
	_, err := s.g.AddEdge(0, 1, 7, flags.Both)
	require.NoError(err)

	clone := s.g.Clone()

	_, err = s.g.AddEdge(0, 1, 3, flags.Forward)
	require.NoError(err)
	require.NoError(s.g.SetNode(2, 3, 3))

	require.Equal(2, clone.NodeCount())
	require.Equal(3, s.g.NodeCount())

	cloneEdges, err := clone.GetEdges(0)
	require.NoError(err)
	require.Len(cloneEdges, 1, "clone must not see edges added after Clone")
}

func (s *GraphSuite) TestFlushAndOpenRoundTrip() {
	require := require.New(s.T())

	dir, err := os.MkdirTemp("", "roadgraph-test-*")
	require.NoError(err)
	defer os.RemoveAll(dir)

	require.NoError(s.g.SetNode(0, 48.1, 11.5))
	require.NoError(s.g.SetNode(1, 48.2, 11.6))
	require.NoError(s.g.SetNode(2, 48.3, 11.7))
	_, err = s.g.AddEdge(0, 1, 120.5, flags.Both)
	require.NoError(err)
	_, err = s.g.AddEdge(1, 2, 80, flags.Forward)
	require.NoError(err)
	require.NoError(s.g.MarkDeleted(2))

	require.NoError(s.g.Flush(dir))

	loaded, err := roadgraph.Open(dir)
	require.NoError(err)

	require.Equal(s.g.NodeCount(), loaded.NodeCount())
	require.Equal(s.g.EdgeCount(), loaded.EdgeCount())
	require.Equal(s.g.Bounds(), loaded.Bounds())
	require.False(loaded.IsDeleted(2))

	wantEdges, err := s.g.GetEdges(0)
	require.NoError(err)
	gotEdges, err := loaded.GetEdges(0)
	require.NoError(err)
	require.Equal(wantEdges, gotEdges)
}

func (s *GraphSuite) TestStatsReflectsLiveState() {
	require := require.New(s.T())

	require.NoError(s.g.SetNode(0, 0, 0))
	require.NoError(s.g.SetNode(1, 0, 1))
	_, err := s.g.AddEdge(0, 1, 5, flags.Both)
	require.NoError(err)

	stats := s.g.Stats()
	require.Equal(2, stats.NodeCount)
	require.Equal(1, stats.LiveEdgeCount)
	require.Equal(0, stats.DeletedCount)
}

// TestCloseFlushesWhenDirIsSet covers Close's documented
// close()-is-equivalent-to-flush() contract for a graph that was
// opened from (or previously flushed to) a directory.
func (s *GraphSuite) TestCloseFlushesWhenDirIsSet() {
	require := require.New(s.T())

	dir, err := os.MkdirTemp("", "roadgraph-close-*")
	require.NoError(err)
	defer os.RemoveAll(dir)

	require.NoError(s.g.SetNode(0, 1, 1))
	require.NoError(s.g.SetNode(1, 2, 2))
	_, err = s.g.AddEdge(0, 1, 9, flags.Both)
	require.NoError(err)
	require.NoError(s.g.Flush(dir))

	require.NoError(s.g.SetNode(2, 3, 3))
	_, err = s.g.AddEdge(1, 2, 4, flags.Both)
	require.NoError(err)

	require.NoError(s.g.Close())

	loaded, err := roadgraph.Open(dir)
	require.NoError(err)
	require.Equal(3, loaded.NodeCount())
	require.Equal(2, loaded.EdgeCount())
}

// TestCloseWithoutDirJustReleasesMemory covers a graph that was never
// given a directory: Close has nothing to flush to and must not error.
func (s *GraphSuite) TestCloseWithoutDirJustReleasesMemory() {
	require := require.New(s.T())

	require.NoError(s.g.SetNode(0, 0, 0))
	require.NoError(s.g.Close())
}

// TestCloseIsIdempotent covers calling Close twice on a graph with a
// directory set: the second call must be a safe no-op, not a panic
// from re-flushing already-released state.
func (s *GraphSuite) TestCloseIsIdempotent() {
	require := require.New(s.T())

	dir, err := os.MkdirTemp("", "roadgraph-close-twice-*")
	require.NoError(err)
	defer os.RemoveAll(dir)

	require.NoError(s.g.SetNode(0, 0, 0))
	require.NoError(s.g.Flush(dir))

	require.NoError(s.g.Close())
	require.NoError(s.g.Close())
}

// TestCloneDoesNotShareDirectoryWithSource guards against a mutated
// clone's Close silently overwriting whatever the source graph
// persisted to its own directory.
func (s *GraphSuite) TestCloneDoesNotShareDirectoryWithSource() {
	require := require.New(s.T())

	dir, err := os.MkdirTemp("", "roadgraph-clone-dir-*")
	require.NoError(err)
	defer os.RemoveAll(dir)

	require.NoError(s.g.SetNode(0, 1, 1))
	require.NoError(s.g.Flush(dir))

	clone := s.g.Clone()
	require.NoError(clone.SetNode(1, 2, 2))
	require.NoError(clone.Close())

	reloaded, err := roadgraph.Open(dir)
	require.NoError(err)
	require.Equal(1, reloaded.NodeCount(), "clone's Close must not overwrite the source's persisted snapshot")
}

// TestOpenMissingDirectoryReturnsFreshGraph covers the open-or-create
// fallback: Open against a directory that does not exist yet returns
// an empty graph rather than failing, and remembers the directory so a
// later Flush or Close writes there.
func (s *GraphSuite) TestOpenMissingDirectoryReturnsFreshGraph() {
	require := require.New(s.T())

	parent, err := os.MkdirTemp("", "roadgraph-open-missing-*")
	require.NoError(err)
	defer os.RemoveAll(parent)
	dir := parent + "/does-not-exist-yet"

	g, err := roadgraph.Open(dir)
	require.NoError(err)
	require.Equal(0, g.NodeCount())
	require.Equal(0, g.EdgeCount())

	require.NoError(g.SetNode(0, 5, 5))
	require.NoError(g.Close())

	reopened, err := roadgraph.Open(dir)
	require.NoError(err)
	require.Equal(1, reopened.NodeCount())
}

func TestGraphSuite(t *testing.T) {
	suite.Run(t, new(GraphSuite))
}
