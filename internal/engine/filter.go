package engine

// Match is an optional exact-count predicate. The zero value matches
// everything.
type Match struct {
	value int
	set   bool
}

// Any returns a Match that accepts every count
func Any() Match {
	return Match{}
}

// Exactly returns a Match that accepts only n
func Exactly(n int) Match {
	return Match{value: n, set: true}
}

// IsSet reports whether the match restricts anything
func (m Match) IsSet() bool {
	return m.set
}

// Value returns the required count and whether one is set
func (m Match) Value() (int, bool) {
	return m.value, m.set
}

// Matches reports whether n satisfies the predicate
func (m Match) Matches(n int) bool {
	return !m.set || m.value == n
}

// MergedFilter restricts snapshots by merge state
type MergedFilter int

const (
	// AnyMergeState keeps merged and unmerged branches
	AnyMergeState MergedFilter = iota
	// OnlyMerged keeps branches whose tip is reachable from the reference
	OnlyMerged
	// OnlyUnmerged keeps branches with commits not on the reference
	OnlyUnmerged
)

// Filter selects which compared snapshots are shown
type Filter struct {
	Ahead  Match
	Behind Match
	Merged MergedFilter
}

// Keep reports whether s passes the filter
func (f Filter) Keep(s *BranchSnapshot) bool {
	if !f.Ahead.Matches(s.Ahead()) || !f.Behind.Matches(s.Behind()) {
		return false
	}
	switch f.Merged {
	case OnlyMerged:
		return s.Merged()
	case OnlyUnmerged:
		return !s.Merged()
	}
	return true
}

// Apply returns the snapshots that pass the filter, preserving order
func (f Filter) Apply(snapshots []*BranchSnapshot) []*BranchSnapshot {
	kept := make([]*BranchSnapshot, 0, len(snapshots))
	for _, s := range snapshots {
		if f.Keep(s) {
			kept = append(kept, s)
		}
	}
	return kept
}
