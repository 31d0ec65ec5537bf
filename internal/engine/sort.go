package engine

import (
	"slices"
)

// SortOrder selects the direction of SortByRecency
type SortOrder int

const (
	// NewestFirst puts the most recently committed branch first
	NewestFirst SortOrder = iota
	// OldestFirst puts the least recently committed branch first
	OldestFirst
)

// SortByRecency orders snapshots in place by tip commit time. The sort is
// stable, so branches with identical timestamps keep their relative order.
func SortByRecency(snapshots []*BranchSnapshot, order SortOrder) {
	slices.SortStableFunc(snapshots, func(a, b *BranchSnapshot) int {
		c := a.lastCommitTime.Compare(b.lastCommitTime)
		if order == NewestFirst {
			return -c
		}
		return c
	})
}
