package segstore_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/geoindex/roadgraph/internal/segstore"
)

type StoreSuite struct {
	suite.Suite
	s *segstore.Store
}

func (s *StoreSuite) SetupTest() {
	s.s = segstore.New(1) // smallest capacity hint, floored to minSegmentSize
}

func (s *StoreSuite) TestAllocGetSet() {
	require := require.New(s.T())

	p1, err := s.s.Alloc()
	require.NoError(err)
	require.NotEqual(segstore.EmptyLink, p1)

	s.s.Set(p1, 42)
	require.EqualValues(42, s.s.Get(p1))

	p2, err := s.s.Alloc()
	require.NoError(err)
	require.NotEqual(p1, p2)
	require.Equal(p2, s.s.Next())
}

func (s *StoreSuite) TestGrowsAcrossSegments() {
	require := require.New(s.T())

	// A tiny capacity hint still yields a real segment; force enough
	// allocations to cross at least one segment boundary and verify
	// previously written pointers stay valid.
	segSize := s.s.SegmentSize()
	recordsPerSegment := segSize / 7

	var pointers []int32
	for i := int32(0); i < recordsPerSegment*2+3; i++ {
		p, err := s.s.Alloc()
		require.NoError(err)
		s.s.Set(p, i)
		pointers = append(pointers, p)
	}
	require.GreaterOrEqual(s.s.SegmentCount(), 2)

	for i, p := range pointers {
		require.EqualValues(i, s.s.Get(p), "value at pointer %d should survive later growth", p)
	}
}

func (s *StoreSuite) TestCloneIsIndependent() {
	require := require.New(s.T())

	p, err := s.s.Alloc()
	require.NoError(err)
	s.s.Set(p, 7)

	clone := s.s.Clone()
	require.EqualValues(7, clone.Get(p))

	s.s.Set(p, 99)
	require.EqualValues(7, clone.Get(p), "clone must not see source mutation")

	clone.Set(p, 1)
	require.EqualValues(99, s.s.Get(p), "source must not see clone mutation")
}

func (s *StoreSuite) TestNewFromSegmentsRoundTrips() {
	require := require.New(s.T())

	p, err := s.s.Alloc()
	require.NoError(err)
	s.s.Set(p, 123)

	segs := make([][]int32, s.s.SegmentCount())
	for i := range segs {
		segs[i] = append([]int32(nil), s.s.Segment(i)...)
	}

	rebuilt := segstore.NewFromSegments(s.s.SegmentSize(), segs, s.s.Next())
	require.EqualValues(123, rebuilt.Get(p))
	require.Equal(s.s.Next(), rebuilt.Next())
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}
