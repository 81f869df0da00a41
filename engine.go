package negsamp

import (
	"fmt"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/negsamp/core"
	"github.com/hupe1980/negsamp/exclusion"
	"github.com/hupe1980/negsamp/pool"
)

// engine is the shared rejection-sampling core behind every adapter: a
// candidate pool plus one exclusion index.
type engine struct {
	pool    *pool.Pool
	index   *exclusion.Index
	logger  *Logger
	metrics MetricsCollector
}

// sample draws num collision-free negatives per key, flattened column-major:
// element i + j*len(keyIDs) is the j-th sample for keyIDs[i].
func (e *engine) sample(keyIDs []core.ID, num int) ([]core.ID, error) {
	start := time.Now()
	values, rounds, err := e.doSample(keyIDs, num)
	e.metrics.RecordSample(len(keyIDs), num, rounds, time.Since(start), err)
	e.logger.LogSample(len(keyIDs), num, rounds, err)
	return values, err
}

func (e *engine) doSample(keyIDs []core.ID, num int) ([]core.ID, int, error) {
	if num < 1 {
		return nil, 0, fmt.Errorf("%w: %d", ErrInvalidSampleCount, num)
	}
	if len(keyIDs) == 0 {
		return []core.ID{}, 0, nil
	}
	if err := e.index.ValidateKeys(keyIDs); err != nil {
		return nil, 0, err
	}

	keyNum := len(keyIDs)
	values := make([]core.ID, keyNum*num)

	// Group output positions by distinct key, in first-seen order. Each
	// group runs the bulk rejection loop against one exclusion bitmap, so a
	// batch of repeated keys gets the same treatment as an all-equal batch,
	// and a batch of all-distinct keys degenerates to per-key groups.
	order := make([]core.ID, 0, min(keyNum, 64))
	groups := make(map[core.ID][]int, min(keyNum, 64))
	for i, k := range keyIDs {
		g, ok := groups[k]
		if !ok {
			order = append(order, k)
			g = make([]int, 0, num)
		}
		for j := 0; j < num; j++ {
			g = append(g, i+j*keyNum)
		}
		groups[k] = g
	}

	rounds := 0
	for _, k := range order {
		used, err := e.index.Used(k)
		if err != nil {
			return nil, rounds, err
		}
		rounds += e.rejectGroup(used, groups[k], values)
	}
	return values, rounds, nil
}

// rejectGroup fills out[p] for every position p with a value absent from
// used, redrawing only colliding positions. Terminates because the exclusion
// index guarantees used never covers the whole non-padding universe; the
// expected round count is geometric in the excluded mass.
func (e *engine) rejectGroup(used *roaring.Bitmap, positions []int, out []core.ID) int {
	rounds := 0
	pending := positions
	for len(pending) > 0 {
		rounds++
		draws := e.pool.DrawMany(len(pending))
		fresh := roaring.New()
		for i, p := range pending {
			out[p] = draws[i]
			fresh.Add(uint32(draws[i]))
		}
		// One bulk intersection over the deduplicated fresh draws instead of
		// a membership probe per drawn value.
		bad := roaring.And(fresh, used)
		if bad.IsEmpty() {
			break
		}
		next := make([]int, 0, len(pending)/2)
		for _, p := range pending {
			if bad.Contains(uint32(out[p])) {
				next = append(next, p)
			}
		}
		pending = next
	}
	return rounds
}
