package domain

import (
	"maps"
	"slices"
)

const (
	MaxCartItemQty = 50
)

// Cart maps product ids to quantities for one user.
type Cart struct {
	UserID string
	Items  map[int64]int
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ProductIDs returns product ids in ascending order so checkout reads and
// inserts items deterministically.
func (c Cart) ProductIDs() []int64 {
	return slices.Sorted(maps.Keys(c.Items))
}
