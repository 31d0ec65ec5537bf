package git

import (
	"fmt"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// CommitTime returns the committer timestamp of a commit
func (r *Repository) CommitTime(id string) (time.Time, error) {
	commit, err := r.commit(id)
	if err != nil {
		return time.Time{}, err
	}
	return commit.Committer.When, nil
}

// commit looks up a commit object by its hex id
func (r *Repository) commit(id string) (*object.Commit, error) {
	hash, err := parseHash(id)
	if err != nil {
		return nil, err
	}

	commit, err := r.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("could not lookup commit '%s': %w", id, err)
	}
	return commit, nil
}

func parseHash(id string) (plumbing.Hash, error) {
	if !plumbing.IsHash(id) {
		return plumbing.ZeroHash, fmt.Errorf("invalid commit id '%s'", id)
	}
	return plumbing.NewHash(id), nil
}
