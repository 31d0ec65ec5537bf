package git

import (
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/storage/filesystem"

	gberrors "gb.dev/gb/internal/errors"
)

// Repository wraps a go-git repository
type Repository struct {
	*gogit.Repository
	path string
}

// OpenRepository opens the git repository containing path
func OpenRepository(path string) (*Repository, error) {
	// Resolve to absolute path
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repoRoot, err := FindRepoRoot(absPath)
	if err != nil {
		return nil, err
	}

	repo, err := gogit.PlainOpenWithOptions(repoRoot, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w at '%s': %w", gberrors.ErrNotARepository, repoRoot, err)
	}

	return &Repository{
		Repository: repo,
		path:       repoRoot,
	}, nil
}

// GetRepoRoot returns the root directory of the repository
func (r *Repository) GetRepoRoot() string {
	return r.path
}

// GitDir returns the repository metadata directory. For linked worktrees this
// is the worktree's own git directory rather than a ".git" file.
func (r *Repository) GitDir() string {
	if fs, ok := r.Storer.(*filesystem.Storage); ok {
		return fs.Filesystem().Root()
	}
	return filepath.Join(r.path, gogit.GitDirName)
}
