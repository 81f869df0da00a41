package negsamp

import (
	"time"

	"github.com/hupe1980/negsamp/core"
	"github.com/hupe1980/negsamp/dataset"
	"github.com/hupe1980/negsamp/exclusion"
	"github.com/hupe1980/negsamp/pool"
)

// KGSampler samples negative tail entities for head entities in a knowledge
// graph. The exclusion set of a head is the set of tails it is observed with;
// the popularity distribution is built from the concatenation of all head and
// tail occurrences.
type KGSampler struct {
	eng engine
}

// NewKGSampler builds a knowledge-graph sampler from a triple dataset.
func NewKGSampler(triples *dataset.Triples, optFns ...Option) (*KGSampler, error) {
	o := applyOptions(optFns)

	start := time.Now()
	if err := triples.Validate(); err != nil {
		return nil, err
	}
	records := len(triples.Heads)

	build := func(d pool.Distribution) ([]core.ID, error) {
		switch d {
		case pool.Uniform:
			return pool.UniformList(triples.EntityCount), nil
		case pool.Popularity:
			// Heads are keys and may legitimately be the padding entity;
			// the candidate pool must never contain it.
			items := make([]core.ID, 0, 2*records)
			for _, h := range triples.Heads {
				if h != core.PaddingID {
					items = append(items, h)
				}
			}
			items = append(items, triples.Tails...)
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

	b := exclusion.NewBuilder(triples.EntityCount, triples.EntityCount)
	if err := b.AddPairs(triples.Heads, triples.Tails); err != nil {
		o.metrics.RecordBuild(records, time.Since(start), err)
		return nil, err
	}
	ix := b.Snapshot()
	if err := ix.Validate(); err != nil {
		o.metrics.RecordBuild(records, time.Since(start), err)
		return nil, err
	}

	o.metrics.RecordBuild(records, time.Since(start), nil)
	o.logger.WithDistribution(o.distribution).LogBuild(records, time.Since(start), nil)

	return &KGSampler{
		eng: engine{
			pool:    p,
			index:   ix,
			logger:  o.logger,
			metrics: o.metrics,
		},
	}, nil
}

// Sample draws num negative tail entity IDs per head entity, flattened
// column-major: element i + j*len(headIDs) is the j-th sample for
// headIDs[i]. No returned tail is observed with its head in the graph.
func (s *KGSampler) Sample(headIDs []core.ID, num int) ([]core.ID, error) {
	return s.eng.sample(headIDs, num)
}

// ResetDistribution switches the candidate pool to another distribution.
// Idempotent when the distribution is unchanged.
//
// The construction-time exhaustion check runs against the full uniform
// universe: a head whose exclusion set covers every entity observed in the
// triples, but not the whole universe, passes it and can make the redraw
// loop spin under a popularity pool.
func (s *KGSampler) ResetDistribution(d pool.Distribution) error {
	return s.eng.pool.Reset(d)
}
