// Package pool implements the cyclic random candidate pool that feeds the
// rejection sampler.
//
// A Pool holds a shuffled, fixed-length list of candidate value IDs and a
// cursor. Draws replay the list cyclically without reshuffling: after one
// full pass the exact same sequence repeats. That is intentional - the
// shuffle already randomized order, collisions are filtered downstream, and
// skipping per-draw shuffles keeps draws O(1).
package pool

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/hupe1980/negsamp/core"
)

// Distribution selects how the candidate list is populated.
type Distribution string

const (
	// Uniform puts every non-padding value ID in the pool exactly once.
	Uniform Distribution = "uniform"
	// Popularity puts one occurrence of a value ID in the pool per observed
	// occurrence in the source records, so frequent IDs are drawn more often.
	Popularity Distribution = "popularity"
)

// ErrEmptyPool is returned when a build produces no candidates.
var ErrEmptyPool = errors.New("candidate pool is empty")

// ErrUnsupportedDistribution indicates an unknown distribution tag.
type ErrUnsupportedDistribution struct {
	Distribution Distribution
}

func (e *ErrUnsupportedDistribution) Error() string {
	return fmt.Sprintf("unsupported distribution: %q", e.Distribution)
}

// BuildFunc produces the candidate list for a distribution. Implementations
// must return ErrUnsupportedDistribution (wrapped or not) for tags they do
// not recognize and must never include core.PaddingID in the result.
type BuildFunc func(d Distribution) ([]core.ID, error)

// Pool is a cyclic random candidate pool.
//
// Pool is not safe for concurrent use: the cursor advance in DrawOne and
// DrawMany is not atomic. Use one Pool per worker.
type Pool struct {
	build  BuildFunc
	rng    *rand.Rand
	dist   Distribution
	items  []core.ID
	cursor int
}

// New builds a pool for the given distribution, shuffles it with the seeded
// RNG and positions the cursor at the start.
func New(build BuildFunc, d Distribution, seed int64) (*Pool, error) {
	p := &Pool{
		build: build,
		rng:   rand.New(rand.NewSource(seed)), // nolint gosec
	}
	if err := p.reset(d); err != nil {
		return nil, err
	}
	return p, nil
}

// Reset switches the pool to the given distribution. If the distribution is
// unchanged this is a no-op: the items and the cursor stay exactly as they
// are. Otherwise the candidate list is rebuilt, shuffled and the cursor
// returns to 0.
func (p *Pool) Reset(d Distribution) error {
	if d == p.dist {
		return nil
	}
	return p.reset(d)
}

func (p *Pool) reset(d Distribution) error {
	items, err := p.build(d)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return ErrEmptyPool
	}
	p.dist = d
	p.items = items
	p.rng.Shuffle(len(p.items), func(i, j int) {
		p.items[i], p.items[j] = p.items[j], p.items[i]
	})
	p.cursor = 0
	return nil
}

// Distribution returns the current distribution.
func (p *Pool) Distribution() Distribution {
	return p.dist
}

// Len returns the number of candidates in the pool.
func (p *Pool) Len() int {
	return len(p.items)
}

// DrawOne returns the candidate under the cursor and advances the cursor by
// one.
func (p *Pool) DrawOne() core.ID {
	v := p.items[p.cursor%len(p.items)]
	p.cursor++
	return v
}

// DrawMany returns the next n candidates as wrapped windows of the shuffled
// list. The output is identical to calling DrawOne n times; n may exceed the
// pool length, in which case the list repeats.
func (p *Pool) DrawMany(n int) []core.ID {
	out := make([]core.ID, 0, n)
	p.cursor %= len(p.items)
	for n > 0 {
		take := len(p.items) - p.cursor
		if take > n {
			take = n
		}
		out = append(out, p.items[p.cursor:p.cursor+take]...)
		p.cursor = (p.cursor + take) % len(p.items)
		n -= take
	}
	return out
}

// UniformList returns every ID in [1, universe), the uniform candidate list
// for a universe that reserves 0 as padding.
func UniformList(universe int) []core.ID {
	items := make([]core.ID, 0, universe-1)
	for id := 1; id < universe; id++ {
		items = append(items, core.ID(id))
	}
	return items
}
