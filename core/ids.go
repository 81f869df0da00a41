package core

// ID is a dense, internal identifier for a key or value within one sampler
// universe. It is strictly 32-bit, matching the roaring bitmap domain used
// for exclusion sets.
type ID uint32

// PaddingID is the reserved value ID meaning "padding". It is never eligible
// for sampling and never counts as a candidate when checking whether a key's
// exclusion set exhausts the universe.
const PaddingID ID = 0

// MaxID is the maximum possible value for an ID.
const MaxID = ^ID(0)
