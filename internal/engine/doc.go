// Package engine compares local branches against the reference branch.
//
// It is the core of gb, responsible for:
//   - Counting commit ranges, consulting and populating the range cache
//   - Building one BranchSnapshot per local branch
//   - Ordering snapshots by recency and filtering them by ahead/behind counts
//
// The engine never opens a repository itself. It talks to a Repository,
// which the git package implements on top of go-git and tests replace with
// an in-memory fake.
package engine
