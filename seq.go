package negsamp

import (
	"fmt"
	"time"

	"github.com/hupe1980/negsamp/core"
	"github.com/hupe1980/negsamp/dataset"
	"github.com/hupe1980/negsamp/pool"
)

// SeqSampler samples one negative item per sequence position: for each
// position the draw must differ from the item actually observed there. The
// exclusion is supplied per call instead of precomputed, a degenerate
// single-exclusion-per-position case of the rejection loop.
//
// The sequence pool is always uniform; WithDistribution has no effect here.
type SeqSampler struct {
	pool      *pool.Pool
	itemCount int
	logger    *Logger
	metrics   MetricsCollector
}

// NewSeqSampler builds a sequential sampler from an interaction dataset.
// The universe must hold at least two non-padding items, otherwise a
// position whose positive is the only candidate could never resolve.
func NewSeqSampler(ds *dataset.Interactions, optFns ...Option) (*SeqSampler, error) {
	o := applyOptions(optFns)

	start := time.Now()
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	if ds.ItemCount < 3 {
		return nil, fmt.Errorf("%w: %d items", ErrUniverseTooSmall, ds.ItemCount)
	}

	build := func(pool.Distribution) ([]core.ID, error) {
		return pool.UniformList(ds.ItemCount), nil
	}
	p, err := pool.New(build, pool.Uniform, o.seed)
	if err != nil {
		return nil, err
	}

	o.metrics.RecordBuild(len(ds.Users), time.Since(start), nil)
	o.logger.LogBuild(len(ds.Users), time.Since(start), nil)

	return &SeqSampler{
		pool:      p,
		itemCount: ds.ItemCount,
		logger:    o.logger,
		metrics:   o.metrics,
	}, nil
}

// SampleNeg draws one negative per input position: the result has the same
// length as posSequence and result[i] != posSequence[i] for every i.
func (s *SeqSampler) SampleNeg(posSequence []core.ID) ([]core.ID, error) {
	start := time.Now()

	values := make([]core.ID, len(posSequence))
	pending := make([]int, len(posSequence))
	for i := range pending {
		pending[i] = i
	}

	rounds := 0
	for len(pending) > 0 {
		rounds++
		draws := s.pool.DrawMany(len(pending))
		next := pending[:0]
		for i, p := range pending {
			values[p] = draws[i]
			if draws[i] == posSequence[p] {
				next = append(next, p)
			}
		}
		pending = next
	}

	s.metrics.RecordSample(len(posSequence), 1, rounds, time.Since(start), nil)
	s.logger.LogSample(len(posSequence), 1, rounds, nil)
	return values, nil
}
