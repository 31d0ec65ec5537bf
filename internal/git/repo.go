package git

import (
	"fmt"

	gogit "github.com/go-git/go-git/v5"

	gberrors "gb.dev/gb/internal/errors"
)

// FindRepoRoot returns the root directory of the Git repository containing dir
func FindRepoRoot(dir string) (string, error) {
	// Use go-git to find the repository
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return "", fmt.Errorf("%w at '%s': %w", gberrors.ErrNotARepository, dir, err)
	}

	// Get the worktree to find the root
	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree for '%s': %w", dir, err)
	}

	return worktree.Filesystem.Root(), nil
}
