package engine

import (
	"errors"
	"fmt"

	gberrors "gb.dev/gb/internal/errors"
)

// Enumerator builds a snapshot for every local branch
type Enumerator struct {
	repo      Repository
	reference string
}

// NewEnumerator creates an enumerator comparing against ReferenceBranch
func NewEnumerator(repo Repository) *Enumerator {
	return &Enumerator{repo: repo, reference: ReferenceBranch}
}

// Enumerate lists local branches and builds their snapshots. The reference
// branch must exist even when there are no other branches. Any resolution
// failure aborts the whole enumeration; no branch is skipped.
func (e *Enumerator) Enumerate() ([]*BranchSnapshot, error) {
	if _, err := e.repo.ResolveBranch(e.reference); err != nil {
		return nil, gberrors.NewReferenceNotFoundError(e.reference, err)
	}

	names, err := e.repo.LocalBranches()
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}

	head, err := e.repo.HeadBranch()
	if err != nil {
		return nil, fmt.Errorf("failed to read HEAD: %w", err)
	}

	snapshots := make([]*BranchSnapshot, 0, len(names))
	for _, name := range names {
		snapshot, err := e.snapshot(name, head)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, nil
}

func (e *Enumerator) snapshot(name, head string) (*BranchSnapshot, error) {
	tipID, err := e.repo.ResolveBranch(name)
	if err != nil {
		if !errors.Is(err, gberrors.ErrBranchNotFound) {
			err = gberrors.NewBranchNotFoundError(name, err)
		}
		return nil, err
	}

	referenceTipID, err := e.repo.ResolveBranch(e.reference)
	if err != nil {
		return nil, gberrors.NewReferenceNotFoundError(e.reference, err)
	}

	when, err := e.repo.CommitTime(tipID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up tip of '%s': %w", name, err)
	}

	return NewBranchSnapshot(name, tipID, referenceTipID, when, name == head), nil
}
