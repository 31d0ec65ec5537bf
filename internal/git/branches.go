package git

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-git/go-git/v5/plumbing"

	gberrors "gb.dev/gb/internal/errors"
)

// LocalBranches returns the short names of all local branches, sorted by name
func (r *Repository) LocalBranches() ([]string, error) {
	branches, err := r.Branches()
	if err != nil {
		return nil, fmt.Errorf("failed to list branches for '%s': %w", r.path, err)
	}
	defer branches.Close()

	var names []string
	err = branches.ForEach(func(ref *plumbing.Reference) error {
		if ref.Name().IsBranch() {
			names = append(names, ref.Name().Short())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate branches: %w", err)
	}

	sort.Strings(names)
	return names, nil
}

// HeadBranch returns the name of the checked out branch. It returns an empty
// name when HEAD is detached or points at an unborn branch.
func (r *Repository) HeadBranch() (string, error) {
	head, err := r.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}

	if !head.Name().IsBranch() {
		return "", nil
	}

	return head.Name().Short(), nil
}

// ResolveBranch returns the tip commit id of a local branch
func (r *Repository) ResolveBranch(name string) (string, error) {
	ref, err := r.Reference(plumbing.NewBranchReferenceName(name), true)
	if err != nil {
		return "", gberrors.NewBranchNotFoundError(name, err)
	}
	return ref.Hash().String(), nil
}
