package negsamp

import (
	"fmt"
	"time"

	"github.com/hupe1980/negsamp/core"
	"github.com/hupe1980/negsamp/dataset"
	"github.com/hupe1980/negsamp/exclusion"
	"github.com/hupe1980/negsamp/pool"
)

// RepeatableSampler samples negative items for users without any per-user
// exclusion: an item observed as a positive in one phase may still be drawn
// as a negative in any phase. Use it when leakage prevention across phases is
// not required.
type RepeatableSampler struct {
	phases []string
	phase  string
	eng    engine
}

// NewRepeatableSampler builds a repeatable sampler from the union dataset of
// all phases.
func NewRepeatableSampler(phases []string, ds *dataset.Interactions, optFns ...Option) (*RepeatableSampler, error) {
	o := applyOptions(optFns)

	if len(phases) == 0 {
		return nil, ErrNoPhases
	}

	start := time.Now()
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	records := len(ds.Users)

	build := func(d pool.Distribution) ([]core.ID, error) {
		switch d {
		case pool.Uniform:
			return pool.UniformList(ds.ItemCount), nil
		case pool.Popularity:
			items := make([]core.ID, len(ds.Items))
			copy(items, ds.Items)
			return items, nil
		default:
			return nil, &pool.ErrUnsupportedDistribution{Distribution: d}
		}
	}
	p, err := pool.New(build, o.distribution, o.seed)
	if err != nil {
		o.metrics.RecordBuild(records, time.Since(start), err)
		return nil, err
	}

	// Every user's exclusion set stays empty; the index only carries the key
	// universe for batch validation.
	ix := exclusion.NewBuilder(ds.UserCount, ds.ItemCount).Snapshot()

	o.metrics.RecordBuild(records, time.Since(start), nil)
	o.logger.WithDistribution(o.distribution).LogBuild(records, time.Since(start), nil)

	return &RepeatableSampler{
		phases: phases,
		eng: engine{
			pool:    p,
			index:   ix,
			logger:  o.logger,
			metrics: o.metrics,
		},
	}, nil
}

// Phases returns the configured phase names in order.
func (s *RepeatableSampler) Phases() []string {
	return s.phases
}

// Phase returns a view pinned to the given phase. Exclusion sets are empty in
// every phase, so the view differs only in its phase tag; it exists so
// training loops can treat Sampler and RepeatableSampler uniformly.
func (s *RepeatableSampler) Phase(name string) (*RepeatableSampler, error) {
	for _, p := range s.phases {
		if p == name {
			view := &RepeatableSampler{
				phases: s.phases,
				phase:  name,
				eng:    s.eng,
			}
			view.eng.logger = s.eng.logger.WithPhase(name)
			return view, nil
		}
	}
	return nil, &exclusion.ErrUnknownPhase{Phase: name, Known: s.phases}
}

// Sample draws num negative item IDs per user, flattened column-major.
// Returned items may coincide with the user's positives.
func (s *RepeatableSampler) Sample(userIDs []core.ID, num int) ([]core.ID, error) {
	return s.eng.sample(userIDs, num)
}

// ResetDistribution switches the candidate pool to another distribution.
// Idempotent when the distribution is unchanged. Affects every phase view.
func (s *RepeatableSampler) ResetDistribution(d pool.Distribution) error {
	return s.eng.pool.Reset(d)
}

func (s *RepeatableSampler) String() string {
	if s.phase == "" {
		return fmt.Sprintf("RepeatableSampler(phases=%v)", s.phases)
	}
	return fmt.Sprintf("RepeatableSampler(phase=%s)", s.phase)
}
