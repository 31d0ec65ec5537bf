package git

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
)

// CountRange returns the number of commits reachable from to that are not
// reachable from from, like `git rev-list --count from..to`.
func (r *Repository) CountRange(from, to string) (int, error) {
	fromCommit, err := r.commit(from)
	if err != nil {
		return 0, err
	}
	toCommit, err := r.commit(to)
	if err != nil {
		return 0, err
	}
	if fromCommit.Hash == toCommit.Hash {
		return 0, nil
	}

	excluded, err := r.ancestors(fromCommit.Hash, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to walk ancestors of %s: %w", from, err)
	}

	included, err := r.ancestors(toCommit.Hash, excluded)
	if err != nil {
		return 0, fmt.Errorf("failed to walk ancestors of %s: %w", to, err)
	}

	return len(included), nil
}

// ancestors walks the commit graph breadth first from start (inclusive) and
// returns every commit visited. Commits in stop are neither visited nor
// walked through.
func (r *Repository) ancestors(start plumbing.Hash, stop map[plumbing.Hash]bool) (map[plumbing.Hash]bool, error) {
	visited := make(map[plumbing.Hash]bool)

	queue := []plumbing.Hash{start}
	for len(queue) > 0 {
		hash := queue[0]
		queue = queue[1:]

		if visited[hash] || stop[hash] {
			continue
		}
		visited[hash] = true

		commit, err := r.CommitObject(hash)
		if err != nil {
			return nil, fmt.Errorf("failed to get commit %s: %w", hash, err)
		}

		for _, parentHash := range commit.ParentHashes {
			if !visited[parentHash] && !stop[parentHash] {
				queue = append(queue, parentHash)
			}
		}
	}

	return visited, nil
}
