package negsamp

import (
	"fmt"
	"time"

	"github.com/hupe1980/negsamp/core"
	"github.com/hupe1980/negsamp/dataset"
	"github.com/hupe1980/negsamp/exclusion"
	"github.com/hupe1980/negsamp/pool"
)

// Sampler samples negative items for users with phase-ordered exclusion:
// positives of earlier phases are also excluded when sampling for later
// phases, so no past-phase positive leaks into future negative sampling.
//
// A Sampler is a factory for phase views; call Phase to obtain a
// PhaseSampler pinned to one phase's cumulative exclusion set. All views
// share the same candidate pool.
type Sampler struct {
	phases  []string
	set     *exclusion.PhaseSet
	pool    *pool.Pool
	logger  *Logger
	metrics MetricsCollector
}

// NewSampler builds a phase-ordered sampler from one interaction dataset per
// phase. All datasets must declare the same user and item universes.
func NewSampler(phases []string, datasets []*dataset.Interactions, optFns ...Option) (*Sampler, error) {
	o := applyOptions(optFns)

	if len(phases) == 0 {
		return nil, ErrNoPhases
	}
	if len(phases) != len(datasets) {
		return nil, fmt.Errorf("phases %v and datasets should have the same length", phases)
	}

	start := time.Now()
	records := 0
	for _, ds := range datasets {
		if err := ds.Validate(); err != nil {
			return nil, err
		}
		if ds.UserCount != datasets[0].UserCount || ds.ItemCount != datasets[0].ItemCount {
			return nil, fmt.Errorf("phase datasets declare different universes: %d/%d vs %d/%d users/items",
				ds.UserCount, ds.ItemCount, datasets[0].UserCount, datasets[0].ItemCount)
		}
		records += len(ds.Users)
	}
	itemCount := datasets[0].ItemCount

	build := func(d pool.Distribution) ([]core.ID, error) {
		switch d {
		case pool.Uniform:
			return pool.UniformList(itemCount), nil
		case pool.Popularity:
			items := make([]core.ID, 0, records)
			for _, ds := range datasets {
				items = append(items, ds.Items...)
			}
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

	b := exclusion.NewBuilder(datasets[0].UserCount, itemCount)
	indexes := make([]*exclusion.Index, 0, len(phases))
	for _, ds := range datasets {
		if err := b.AddPairs(ds.Users, ds.Items); err != nil {
			o.metrics.RecordBuild(records, time.Since(start), err)
			return nil, err
		}
		indexes = append(indexes, b.Snapshot())
	}
	// The last phase holds the largest cumulative sets; if it passes the
	// exhaustion check, every earlier phase does too.
	if err := indexes[len(indexes)-1].Validate(); err != nil {
		o.metrics.RecordBuild(records, time.Since(start), err)
		return nil, err
	}
	set, err := exclusion.NewPhaseSet(phases, indexes)
	if err != nil {
		return nil, err
	}

	o.metrics.RecordBuild(records, time.Since(start), nil)
	o.logger.WithDistribution(o.distribution).LogBuild(records, time.Since(start), nil)

	return &Sampler{
		phases:  phases,
		set:     set,
		pool:    p,
		logger:  o.logger,
		metrics: o.metrics,
	}, nil
}

// Phases returns the configured phase names in order.
func (s *Sampler) Phases() []string {
	return s.phases
}

// Phase returns an immutable view pinned to one phase's cumulative exclusion
// set. The view shares the candidate pool with the base sampler and every
// other view.
func (s *Sampler) Phase(name string) (*PhaseSampler, error) {
	ix, err := s.set.ForPhase(name)
	if err != nil {
		return nil, err
	}
	return &PhaseSampler{
		phase: name,
		eng: engine{
			pool:    s.pool,
			index:   ix,
			logger:  s.logger.WithPhase(name),
			metrics: s.metrics,
		},
	}, nil
}

// ResetDistribution switches the shared candidate pool to another
// distribution. Idempotent when the distribution is unchanged. Affects every
// phase view.
//
// The construction-time exhaustion check runs against the full uniform
// universe: a key whose exclusion set covers every item observed in the
// popularity records, but not the whole universe, passes it and can make the
// redraw loop spin under a popularity pool.
func (s *Sampler) ResetDistribution(d pool.Distribution) error {
	return s.pool.Reset(d)
}

// PhaseSampler is a Sampler view pinned to one phase.
type PhaseSampler struct {
	phase string
	eng   engine
}

// Phase returns the phase this view is pinned to.
func (ps *PhaseSampler) Phase() string {
	return ps.phase
}

// Sample draws num negative item IDs per user, flattened column-major:
// element i + j*len(userIDs) is the j-th sample for userIDs[i]. No returned
// item collides with the user's cumulative positives up to this phase;
// values may repeat across positions (sampling with replacement).
func (ps *PhaseSampler) Sample(userIDs []core.ID, num int) ([]core.ID, error) {
	return ps.eng.sample(userIDs, num)
}
