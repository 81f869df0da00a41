package negsamp

import (
	"errors"
)

var (
	// ErrInvalidSampleCount is returned when num is not positive.
	ErrInvalidSampleCount = errors.New("sample count must be positive")

	// ErrUniverseTooSmall is returned at construction when the value universe
	// cannot support per-position exclusion (fewer than two non-padding
	// candidates).
	ErrUniverseTooSmall = errors.New("value universe too small for negative sampling")

	// ErrNoPhases is returned when a phase-aware sampler is constructed with
	// an empty phase list.
	ErrNoPhases = errors.New("at least one phase is required")
)

// Construction and sampling also surface typed errors from the subpackages:
// *pool.ErrUnsupportedDistribution for unknown distribution tags,
// *exclusion.ErrKeyExhausted when a key's exclusion set covers the whole
// non-padding universe, *exclusion.ErrUnknownPhase for unregistered phase
// names and *exclusion.ErrKeyOutOfRange (aggregated with errors.Join over the
// batch) for keys outside the key universe. Match them with errors.As.
