package engine_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gb.dev/gb/internal/cache"
	"gb.dev/gb/internal/engine"
	gberrors "gb.dev/gb/internal/errors"
	"gb.dev/gb/testhelpers"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// newForkedRepo builds master with 5 commits and feature forking after the
// second one with 3 commits of its own.
func newForkedRepo() (*testhelpers.FakeRepository, string, string) {
	repo := testhelpers.NewFakeRepository()
	base := repo.AddChain("m", "", 2, epoch)
	master := repo.AddChain("mm", base, 3, epoch)
	feature := repo.AddChain("f", base, 3, epoch)
	repo.SetBranch("master", master).SetBranch("feature", feature)
	return repo, master, feature
}

func TestCounter_Count(t *testing.T) {
	t.Run("identical ids count zero without touching the cache", func(t *testing.T) {
		repo, master, _ := newForkedRepo()
		store := cache.NewStore()
		counter := engine.NewCounter(repo, store, nil)

		n, err := counter.Count(master, master)
		require.NoError(t, err)
		require.Equal(t, 0, n)
		require.Equal(t, 0, repo.CountCalls)
		require.Equal(t, 0, store.Len())
		require.Equal(t, engine.CounterStats{Trivial: 1}, counter.Stats())
	})

	t.Run("identical ids are zero even if unresolvable", func(t *testing.T) {
		counter := engine.NewCounter(testhelpers.NewFakeRepository(), nil, nil)
		n, err := counter.Count("nope", "nope")
		require.NoError(t, err)
		require.Equal(t, 0, n)
	})

	t.Run("returns the ancestry set difference", func(t *testing.T) {
		repo, master, feature := newForkedRepo()
		counter := engine.NewCounter(repo, nil, nil)

		ahead, err := counter.Count(master, feature)
		require.NoError(t, err)
		require.Equal(t, 3, ahead)

		behind, err := counter.Count(feature, master)
		require.NoError(t, err)
		require.Equal(t, 3, behind)
	})

	t.Run("result does not depend on invocation order", func(t *testing.T) {
		repo1, master, feature := newForkedRepo()
		c1 := engine.NewCounter(repo1, nil, nil)
		a1, err := c1.Count(master, feature)
		require.NoError(t, err)
		b1, err := c1.Count(feature, master)
		require.NoError(t, err)

		repo2, _, _ := newForkedRepo()
		c2 := engine.NewCounter(repo2, nil, nil)
		b2, err := c2.Count(feature, master)
		require.NoError(t, err)
		a2, err := c2.Count(master, feature)
		require.NoError(t, err)

		require.Equal(t, a1, a2)
		require.Equal(t, b1, b2)
	})

	t.Run("second call is a pure cache hit", func(t *testing.T) {
		repo, master, feature := newForkedRepo()
		store := cache.NewStore()
		counter := engine.NewCounter(repo, store, nil)

		first, err := counter.Count(master, feature)
		require.NoError(t, err)
		second, err := counter.Count(master, feature)
		require.NoError(t, err)

		require.Equal(t, first, second)
		require.Equal(t, 1, repo.CountCalls)
		require.Equal(t, engine.CounterStats{Hits: 1, Misses: 1}, counter.Stats())

		v, ok := store.Get(cache.NewRangeKey(master, feature))
		require.True(t, ok)
		require.Equal(t, first, v)
	})

	t.Run("cached value is returned unchanged", func(t *testing.T) {
		repo, master, feature := newForkedRepo()
		store := cache.NewStore()
		store.Set(cache.NewRangeKey(master, feature), 42)
		counter := engine.NewCounter(repo, store, nil)

		n, err := counter.Count(master, feature)
		require.NoError(t, err)
		require.Equal(t, 42, n)
		require.Equal(t, 0, repo.CountCalls)
	})

	t.Run("values persisted by one run are reused by the next", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), cache.FileName)

		repo1, master, feature := newForkedRepo()
		store1 := cache.Load(path)
		first, err := engine.NewCounter(repo1, store1, nil).Count(master, feature)
		require.NoError(t, err)
		require.NoError(t, store1.Dump(path))

		repo2, _, _ := newForkedRepo()
		second, err := engine.NewCounter(repo2, cache.Load(path), nil).Count(master, feature)
		require.NoError(t, err)
		require.Equal(t, first, second)
		require.Equal(t, 0, repo2.CountCalls)
	})

	t.Run("traversal failure is a RangeCountError and nothing is cached", func(t *testing.T) {
		repo, master, feature := newForkedRepo()
		repo.CountErr = errors.New("corrupt object")
		store := cache.NewStore()
		counter := engine.NewCounter(repo, store, nil)

		_, err := counter.Count(master, feature)
		require.ErrorIs(t, err, gberrors.ErrRangeCount)

		var rangeErr *gberrors.RangeCountError
		require.ErrorAs(t, err, &rangeErr)
		require.Equal(t, master, rangeErr.From)
		require.Equal(t, feature, rangeErr.To)
		require.Equal(t, 0, store.Len())
	})

	t.Run("unknown commit fails", func(t *testing.T) {
		repo, master, _ := newForkedRepo()
		counter := engine.NewCounter(repo, nil, nil)
		_, err := counter.Count(master, "missing")
		require.ErrorIs(t, err, gberrors.ErrRangeCount)
	})
}
