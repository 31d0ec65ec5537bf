// Package git provides read-only access to a local Git repository.
//
// It wraps go-git and exposes the handful of queries gb needs:
//   - Local branch enumeration and HEAD detection
//   - Branch name to tip commit resolution
//   - Commit timestamps
//   - Ancestry set-difference counts (the equivalent of `git rev-list --count from..to`)
//
// This package should be the only place where the repository is read.
package git
