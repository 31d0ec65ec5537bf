package engine

import (
	"time"
)

// ReferenceBranch is the branch every local branch is compared against
const ReferenceBranch = "master"

// BranchReader provides read-only access to local branches
type BranchReader interface {
	// LocalBranches returns the names of all local branches
	LocalBranches() ([]string, error)
	// HeadBranch returns the checked out branch, or "" when HEAD is detached
	HeadBranch() (string, error)
	// ResolveBranch returns the tip commit id of a local branch
	ResolveBranch(name string) (string, error)
}

// CommitReader provides commit metadata
type CommitReader interface {
	CommitTime(id string) (time.Time, error)
}

// RangeCounter counts |ancestors(to) \ ancestors(from)| by walking the
// commit graph. It does no caching of its own.
type RangeCounter interface {
	CountRange(from, to string) (int, error)
}

// Repository is everything the engine needs from a git repository
type Repository interface {
	BranchReader
	CommitReader
	RangeCounter
}

// Logger receives debug output from the engine
type Logger interface {
	Debug(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
