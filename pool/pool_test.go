package pool

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/hupe1980/negsamp/core"
)

func listBuild(uniform, popularity []core.ID) BuildFunc {
	return func(d Distribution) ([]core.ID, error) {
		switch d {
		case Uniform:
			return append([]core.ID(nil), uniform...), nil
		case Popularity:
			return append([]core.ID(nil), popularity...), nil
		default:
			return nil, &ErrUnsupportedDistribution{Distribution: d}
		}
	}
}

func TestUniformBuild(t *testing.T) {
	p, err := New(listBuild(UniformList(6), nil), Uniform, 1)
	require.NoError(t, err)

	assert.Equal(t, 5, p.Len())
	assert.Equal(t, Uniform, p.Distribution())

	// One full cycle is a permutation of [1, 6).
	got := p.DrawMany(5)
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	assert.Equal(t, []core.ID{1, 2, 3, 4, 5}, got)
}

func TestDrawManyMatchesDrawOne(t *testing.T) {
	build := listBuild(UniformList(6), nil)

	p1, err := New(build, Uniform, 42)
	require.NoError(t, err)
	p2, err := New(build, Uniform, 42)
	require.NoError(t, err)

	// 13 draws over a 5-element pool force multiple wraps.
	many := p1.DrawMany(13)
	require.Len(t, many, 13)
	for i, want := range many {
		assert.Equal(t, want, p2.DrawOne(), "draw %d", i)
	}

	// Interleaving keeps the two paths in lockstep.
	assert.Equal(t, p1.DrawMany(3), []core.ID{p2.DrawOne(), p2.DrawOne(), p2.DrawOne()})
	assert.Equal(t, p1.DrawOne(), p2.DrawMany(1)[0])
}

func TestResetIdempotent(t *testing.T) {
	build := listBuild(UniformList(6), nil)

	p1, err := New(build, Uniform, 7)
	require.NoError(t, err)
	p2, err := New(build, Uniform, 7)
	require.NoError(t, err)

	p1.DrawMany(3)
	p2.DrawMany(3)

	// Same distribution: items and cursor must stay untouched.
	require.NoError(t, p1.Reset(Uniform))
	assert.Equal(t, p2.DrawMany(7), p1.DrawMany(7))
}

func TestResetSwitchesDistribution(t *testing.T) {
	build := listBuild(UniformList(6), []core.ID{2, 2, 2, 3})

	p, err := New(build, Uniform, 7)
	require.NoError(t, err)
	p.DrawMany(4)

	require.NoError(t, p.Reset(Popularity))
	assert.Equal(t, Popularity, p.Distribution())
	assert.Equal(t, 4, p.Len())

	// The rebuilt pool only holds the popularity candidates.
	for _, v := range p.DrawMany(8) {
		assert.Contains(t, []core.ID{2, 3}, v)
	}
}

func TestUnsupportedDistribution(t *testing.T) {
	_, err := New(listBuild(UniformList(6), nil), Distribution("gaussian"), 1)
	require.Error(t, err)

	var ud *ErrUnsupportedDistribution
	require.ErrorAs(t, err, &ud)
	assert.Equal(t, Distribution("gaussian"), ud.Distribution)
}

func TestEmptyPool(t *testing.T) {
	_, err := New(listBuild(nil, nil), Uniform, 1)
	require.ErrorIs(t, err, ErrEmptyPool)
}

func TestSeedReproducibility(t *testing.T) {
	build := listBuild(UniformList(1000), nil)

	p1, err := New(build, Uniform, 99)
	require.NoError(t, err)
	p2, err := New(build, Uniform, 99)
	require.NoError(t, err)
	p3, err := New(build, Uniform, 100)
	require.NoError(t, err)

	a, b, c := p1.DrawMany(500), p2.DrawMany(500), p3.DrawMany(500)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestPopularityFrequency(t *testing.T) {
	// Value 7 appears 100x as often as value 8 in the source records, so its
	// draw frequency must be statistically consistent with 100/101.
	popularity := make([]core.ID, 0, 101)
	for i := 0; i < 100; i++ {
		popularity = append(popularity, 7)
	}
	popularity = append(popularity, 8)

	p, err := New(listBuild(nil, popularity), Popularity, 5)
	require.NoError(t, err)

	const draws = 100000
	seen := 0
	for i := 0; i < draws; i++ {
		if p.DrawOne() == 7 {
			seen++
		}
	}

	// Cyclic replay tracks the pool composition even tighter than an i.i.d.
	// binomial would, so a generous 6-sigma binomial band is a safe bound.
	dist := distuv.Binomial{N: draws, P: 100.0 / 101.0}
	band := 6 * dist.StdDev()
	assert.InDelta(t, dist.Mean(), float64(seen), band)
}
