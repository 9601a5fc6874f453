package bitset_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/geoindex/roadgraph/internal/bitset"
)

type SparseSuite struct {
	suite.Suite
	s *bitset.Sparse
}

func (s *SparseSuite) SetupTest() {
	s.s = bitset.NewSparse()
}

func (s *SparseSuite) TestSetAndTest() {
	require := require.New(s.T())

	require.False(s.s.Test(7))
	s.s.Set(7)
	require.True(s.s.Test(7))
	require.Equal(1, s.s.Len())

	// Re-inserting an existing member is a no-op.
	s.s.Set(7)
	require.Equal(1, s.s.Len())
}

func (s *SparseSuite) TestEachIsSortedRegardlessOfInsertOrder() {
	require := require.New(s.T())

	for _, i := range []uint32{50, 1, 9, 1000, 2} {
		s.s.Set(i)
	}

	var seen []uint32
	s.s.Each(func(i uint32) { seen = append(seen, i) })
	require.Equal([]uint32{1, 2, 9, 50, 1000}, seen)
}

func TestSparseSuite(t *testing.T) {
	suite.Run(t, new(SparseSuite))
}
