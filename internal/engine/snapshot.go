package engine

import (
	"fmt"
	"time"
)

// BranchSnapshot is the state of one local branch relative to the reference
// branch. Everything except the ahead/behind counts is fixed at construction;
// the counts are filled in once by Compare and are read-only afterwards.
type BranchSnapshot struct {
	name           string
	tipID          string
	referenceTipID string
	lastCommitTime time.Time
	isHead         bool

	ahead    int
	behind   int
	compared bool
}

// NewBranchSnapshot creates a snapshot with zero ahead/behind counts
func NewBranchSnapshot(name, tipID, referenceTipID string, lastCommitTime time.Time, isHead bool) *BranchSnapshot {
	return &BranchSnapshot{
		name:           name,
		tipID:          tipID,
		referenceTipID: referenceTipID,
		lastCommitTime: lastCommitTime,
		isHead:         isHead,
	}
}

// Name returns the branch name
func (s *BranchSnapshot) Name() string { return s.name }

// TipID returns the commit id of the branch tip
func (s *BranchSnapshot) TipID() string { return s.tipID }

// ReferenceTipID returns the reference branch tip as resolved when the
// snapshot was built
func (s *BranchSnapshot) ReferenceTipID() string { return s.referenceTipID }

// LastCommitTime returns the committer time of the branch tip
func (s *BranchSnapshot) LastCommitTime() time.Time { return s.lastCommitTime }

// IsHead reports whether the branch is checked out
func (s *BranchSnapshot) IsHead() bool { return s.isHead }

// IsReference reports whether this is the reference branch itself
func (s *BranchSnapshot) IsReference() bool { return s.name == ReferenceBranch }

// Ahead returns the number of commits on the branch but not on the reference
func (s *BranchSnapshot) Ahead() int { return s.ahead }

// Behind returns the number of commits on the reference but not on the branch
func (s *BranchSnapshot) Behind() int { return s.behind }

// Merged reports whether the branch tip is reachable from the reference tip
func (s *BranchSnapshot) Merged() bool { return s.compared && s.ahead == 0 }

// Compared reports whether Compare has run
func (s *BranchSnapshot) Compared() bool { return s.compared }

// Compare computes ahead and behind using c. It only does work the first
// time it is called.
func (s *BranchSnapshot) Compare(c *Counter) error {
	if s.compared {
		return nil
	}

	ahead, err := c.Count(s.referenceTipID, s.tipID)
	if err != nil {
		return fmt.Errorf("failed to compute ahead count for '%s': %w", s.name, err)
	}
	behind, err := c.Count(s.tipID, s.referenceTipID)
	if err != nil {
		return fmt.Errorf("failed to compute behind count for '%s': %w", s.name, err)
	}

	s.ahead = ahead
	s.behind = behind
	s.compared = true
	return nil
}

// CompareAll runs Compare on every snapshot, stopping at the first error
func CompareAll(snapshots []*BranchSnapshot, c *Counter) error {
	for _, s := range snapshots {
		if err := s.Compare(c); err != nil {
			return err
		}
	}
	return nil
}
