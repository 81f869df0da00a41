// Package dataset defines the input boundary of the sampling library: ID
// columns produced by an upstream loader, plus readers for the tab-separated
// atomic file formats those loaders commonly emit.
//
// All IDs are dense integers with 0 reserved as padding. Universe counts
// include the padding slot.
package dataset

import (
	"errors"
	"fmt"

	"github.com/hupe1980/negsamp/core"
)

var (
	// ErrColumnMismatch indicates parallel ID columns of unequal length.
	ErrColumnMismatch = errors.New("parallel ID columns have different lengths")
	// ErrPaddingValue indicates a record carrying the reserved padding ID
	// where a real value is required.
	ErrPaddingValue = errors.New("record contains reserved padding ID 0 as a value")
)

// Interactions holds user→item interaction records as parallel columns,
// together with the declared universe sizes.
type Interactions struct {
	Users []core.ID
	Items []core.ID

	// UserCount and ItemCount are the distinct user/item counts, padding
	// included, so valid user IDs are [0, UserCount) and sampleable item IDs
	// are [1, ItemCount).
	UserCount int
	ItemCount int
}

// Validate checks column shape and ID ranges.
func (d *Interactions) Validate() error {
	if len(d.Users) != len(d.Items) {
		return fmt.Errorf("%w: %d users, %d items", ErrColumnMismatch, len(d.Users), len(d.Items))
	}
	if d.UserCount < 1 || d.ItemCount < 2 {
		return fmt.Errorf("universe too small: %d users, %d items", d.UserCount, d.ItemCount)
	}
	for i := range d.Users {
		if int(d.Users[i]) >= d.UserCount {
			return fmt.Errorf("user ID %d outside declared universe [0, %d)", d.Users[i], d.UserCount)
		}
		if d.Items[i] == core.PaddingID {
			return fmt.Errorf("%w: row %d", ErrPaddingValue, i)
		}
		if int(d.Items[i]) >= d.ItemCount {
			return fmt.Errorf("item ID %d outside declared universe [0, %d)", d.Items[i], d.ItemCount)
		}
	}
	return nil
}

// Triples holds knowledge-graph triples as parallel columns, together with
// the declared entity universe size.
type Triples struct {
	Heads     []core.ID
	Relations []core.ID
	Tails     []core.ID

	// EntityCount is the distinct entity count, padding included. Heads and
	// tails share this universe.
	EntityCount int
}

// Validate checks column shape and ID ranges.
func (d *Triples) Validate() error {
	if len(d.Heads) != len(d.Tails) || (d.Relations != nil && len(d.Relations) != len(d.Heads)) {
		return fmt.Errorf("%w: %d heads, %d relations, %d tails",
			ErrColumnMismatch, len(d.Heads), len(d.Relations), len(d.Tails))
	}
	if d.EntityCount < 2 {
		return fmt.Errorf("universe too small: %d entities", d.EntityCount)
	}
	for i := range d.Heads {
		if int(d.Heads[i]) >= d.EntityCount {
			return fmt.Errorf("head entity ID %d outside declared universe [0, %d)", d.Heads[i], d.EntityCount)
		}
		if d.Tails[i] == core.PaddingID {
			return fmt.Errorf("%w: row %d", ErrPaddingValue, i)
		}
		if int(d.Tails[i]) >= d.EntityCount {
			return fmt.Errorf("tail entity ID %d outside declared universe [0, %d)", d.Tails[i], d.EntityCount)
		}
	}
	return nil
}
