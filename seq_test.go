package negsamp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/negsamp/core"
)

func TestSeqSampleNeg(t *testing.T) {
	ds := interactions(
		[]core.ID{1, 1, 2},
		[]core.ID{1, 2, 3},
		3, 5,
	)

	s, err := NewSeqSampler(ds, WithSeed(8))
	require.NoError(t, err)

	pos := []core.ID{1, 2, 3, 4, 1, 0}
	negs, err := s.SampleNeg(pos)
	require.NoError(t, err)
	require.Len(t, negs, len(pos))

	for i, v := range negs {
		assert.NotEqual(t, pos[i], v, "position %d", i)
		assert.GreaterOrEqual(t, v, core.ID(1))
		assert.LessOrEqual(t, v, core.ID(4))
	}
}

func TestSeqSampleNegEmpty(t *testing.T) {
	ds := interactions([]core.ID{1}, []core.ID{1}, 2, 5)

	s, err := NewSeqSampler(ds)
	require.NoError(t, err)

	negs, err := s.SampleNeg(nil)
	require.NoError(t, err)
	assert.Empty(t, negs)
}

func TestSeqUniverseTooSmall(t *testing.T) {
	// One non-padding item: a position holding that item could never resolve.
	ds := interactions([]core.ID{1}, []core.ID{1}, 2, 2)

	_, err := NewSeqSampler(ds)
	require.ErrorIs(t, err, ErrUniverseTooSmall)
}

func TestSeqReproducibility(t *testing.T) {
	ds := interactions([]core.ID{1}, []core.ID{1}, 2, 50)
	pos := []core.ID{1, 5, 9, 13, 17, 21}

	s1, err := NewSeqSampler(ds, WithSeed(77))
	require.NoError(t, err)
	s2, err := NewSeqSampler(ds, WithSeed(77))
	require.NoError(t, err)

	a, err := s1.SampleNeg(pos)
	require.NoError(t, err)
	b, err := s2.SampleNeg(pos)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
