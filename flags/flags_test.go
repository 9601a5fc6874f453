package flags_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/geoindex/roadgraph/flags"
)

type DefaultCodecSuite struct {
	suite.Suite
	c flags.Codec
}

func (s *DefaultCodecSuite) SetupTest() {
	s.c = flags.NewDefaultCodec()
}

func (s *DefaultCodecSuite) TestForwardOnly() {
	require := require.New(s.T())

	require.True(s.c.IsForward(flags.Forward))
	require.False(s.c.IsBackward(flags.Forward))
}

func (s *DefaultCodecSuite) TestBackwardOnly() {
	require := require.New(s.T())

	require.False(s.c.IsForward(flags.Backward))
	require.True(s.c.IsBackward(flags.Backward))
}

func (s *DefaultCodecSuite) TestBoth() {
	require := require.New(s.T())

	require.True(s.c.IsForward(flags.Both))
	require.True(s.c.IsBackward(flags.Both))
}

func (s *DefaultCodecSuite) TestSwapDirectionExchangesBits() {
	require := require.New(s.T())

	require.Equal(flags.Backward, s.c.SwapDirection(flags.Forward))
	require.Equal(flags.Forward, s.c.SwapDirection(flags.Backward))
	require.Equal(flags.Both, s.c.SwapDirection(flags.Both))
}

func (s *DefaultCodecSuite) TestSwapDirectionPreservesHigherBits() {
	require := require.New(s.T())

	const streetTypeResidential int32 = 1 << 4
	f := flags.Forward | streetTypeResidential

	swapped := s.c.SwapDirection(f)
	require.True(s.c.IsBackward(swapped))
	require.False(s.c.IsForward(swapped))
	require.NotZero(swapped & streetTypeResidential, "non-direction bits must survive a swap")
}

func TestDefaultCodecSuite(t *testing.T) {
	suite.Run(t, new(DefaultCodecSuite))
}
