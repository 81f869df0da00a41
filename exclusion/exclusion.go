// Package exclusion implements the per-key forbidden-value index consulted by
// the rejection sampler.
//
// Keys occupy a dense integer range [0, keyUniverse). Each key owns a roaring
// bitmap of value IDs that must never be returned for it. Bitmaps make the
// hot-path bulk membership test (fresh draws ∩ used set) a single intersection
// instead of one lookup per value.
package exclusion

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/negsamp/core"
)

// ErrKeyOutOfRange indicates a requested key ID outside the key universe.
type ErrKeyOutOfRange struct {
	Key  core.ID
	Size int
}

func (e *ErrKeyOutOfRange) Error() string {
	return fmt.Sprintf("key %d out of range [0, %d)", e.Key, e.Size)
}

// ErrKeyExhausted indicates a key whose exclusion set covers every
// non-padding value, making rejection sampling non-terminating for it.
type ErrKeyExhausted struct {
	Key core.ID
}

func (e *ErrKeyExhausted) Error() string {
	return fmt.Sprintf("key %d excludes all non-padding values, cannot sample negatives for it", e.Key)
}

// ErrUnknownPhase indicates phase selection with an unregistered name.
type ErrUnknownPhase struct {
	Phase string
	Known []string
}

func (e *ErrUnknownPhase) Error() string {
	return fmt.Sprintf("unknown phase %q, known phases: %v", e.Phase, e.Known)
}

// Index is an immutable per-key exclusion index. Build one through a Builder.
type Index struct {
	used          []*roaring.Bitmap
	valueUniverse int
}

// Keys returns the size of the key universe.
func (ix *Index) Keys() int {
	return len(ix.used)
}

// ValueUniverse returns the size of the value universe, padding included.
func (ix *Index) ValueUniverse() int {
	return ix.valueUniverse
}

// Used returns the exclusion bitmap for a key. The returned bitmap is shared
// and must not be mutated.
func (ix *Index) Used(key core.ID) (*roaring.Bitmap, error) {
	if int(key) >= len(ix.used) {
		return nil, &ErrKeyOutOfRange{Key: key, Size: len(ix.used)}
	}
	return ix.used[key], nil
}

// ValidateKeys checks a whole key batch against the key universe before any
// sampling work starts. All offending keys are reported in one aggregated
// error; duplicates are reported once.
func (ix *Index) ValidateKeys(keys []core.ID) error {
	var errs []error
	var seen map[core.ID]struct{}
	for _, k := range keys {
		if int(k) < len(ix.used) {
			continue
		}
		if seen == nil {
			seen = make(map[core.ID]struct{})
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		errs = append(errs, &ErrKeyOutOfRange{Key: k, Size: len(ix.used)})
	}
	return errors.Join(errs...)
}

// Validate fails with ErrKeyExhausted if any key's exclusion set covers the
// entire non-padding value universe. The padding ID accounts for the -1.
func (ix *Index) Validate() error {
	for k, b := range ix.used {
		if int(b.GetCardinality())+1 >= ix.valueUniverse {
			return &ErrKeyExhausted{Key: core.ID(k)}
		}
	}
	return nil
}

// Builder accumulates key→value exclusion pairs and emits immutable Index
// snapshots. Cumulative phase construction adds each phase's pairs on top of
// the previous ones and snapshots after every phase.
type Builder struct {
	used          []*roaring.Bitmap
	valueUniverse int
}

// NewBuilder creates a builder for the given key and value universe sizes.
func NewBuilder(keyUniverse, valueUniverse int) *Builder {
	used := make([]*roaring.Bitmap, keyUniverse)
	for i := range used {
		used[i] = roaring.New()
	}
	return &Builder{used: used, valueUniverse: valueUniverse}
}

// Add records a single forbidden value for a key.
func (b *Builder) Add(key, value core.ID) error {
	if int(key) >= len(b.used) {
		return &ErrKeyOutOfRange{Key: key, Size: len(b.used)}
	}
	b.used[key].Add(uint32(value))
	return nil
}

// AddPairs records parallel key/value columns. The key space is sharded
// across workers so each bitmap is only ever touched by one goroutine.
func (b *Builder) AddPairs(keys, values []core.ID) error {
	if len(keys) != len(values) {
		return fmt.Errorf("key column length %d != value column length %d", len(keys), len(values))
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > len(b.used) {
		workers = len(b.used)
	}
	if workers < 1 {
		workers = 1
	}
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			for i, k := range keys {
				if int(k) >= len(b.used) {
					return &ErrKeyOutOfRange{Key: k, Size: len(b.used)}
				}
				if int(k)%workers == w {
					b.used[k].Add(uint32(values[i]))
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// Snapshot returns an immutable Index holding a deep copy of the current
// state. Later Add calls do not affect earlier snapshots, which is what lets
// cumulative phases share one builder.
func (b *Builder) Snapshot() *Index {
	used := make([]*roaring.Bitmap, len(b.used))
	for i, bm := range b.used {
		used[i] = bm.Clone()
	}
	return &Index{used: used, valueUniverse: b.valueUniverse}
}

// PhaseSet maps an ordered list of phase names to cumulative exclusion
// indexes: phase N's sets are supersets of phase N-1's.
type PhaseSet struct {
	phases []string
	byName map[string]*Index
}

// NewPhaseSet assembles a phase set from parallel name and index slices.
func NewPhaseSet(phases []string, indexes []*Index) (*PhaseSet, error) {
	if len(phases) != len(indexes) {
		return nil, fmt.Errorf("phases %v and indexes should have the same length", phases)
	}
	byName := make(map[string]*Index, len(phases))
	for i, p := range phases {
		byName[p] = indexes[i]
	}
	return &PhaseSet{phases: phases, byName: byName}, nil
}

// Phases returns the configured phase names in order.
func (ps *PhaseSet) Phases() []string {
	return ps.phases
}

// ForPhase returns the cumulative exclusion index for a phase.
func (ps *PhaseSet) ForPhase(name string) (*Index, error) {
	ix, ok := ps.byName[name]
	if !ok {
		return nil, &ErrUnknownPhase{Phase: name, Known: ps.phases}
	}
	return ix, nil
}
