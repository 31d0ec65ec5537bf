package engine_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"gb.dev/gb/internal/cache"
	"gb.dev/gb/internal/engine"
	gberrors "gb.dev/gb/internal/errors"
)

func TestBranchSnapshot_Compare(t *testing.T) {
	t.Run("computes ahead and behind against the captured reference tip", func(t *testing.T) {
		repo, master, feature := newForkedRepo()
		s := engine.NewBranchSnapshot("feature", feature, master, epoch, false)

		require.NoError(t, s.Compare(engine.NewCounter(repo, nil, nil)))
		require.True(t, s.Compared())
		require.Equal(t, 3, s.Ahead())
		require.Equal(t, 3, s.Behind())
		require.False(t, s.Merged())
	})

	t.Run("stores both directions under their own ordered keys", func(t *testing.T) {
		repo, master, feature := newForkedRepo()
		store := cache.NewStore()
		s := engine.NewBranchSnapshot("feature", feature, master, epoch, false)

		require.NoError(t, s.Compare(engine.NewCounter(repo, store, nil)))
		_, ok := store.Get(cache.NewRangeKey(master, feature))
		require.True(t, ok)
		_, ok = store.Get(cache.NewRangeKey(feature, master))
		require.True(t, ok)
	})

	t.Run("runs only once", func(t *testing.T) {
		repo, master, feature := newForkedRepo()
		counter := engine.NewCounter(repo, nil, nil)
		s := engine.NewBranchSnapshot("feature", feature, master, epoch, false)

		require.NoError(t, s.Compare(counter))
		stats := counter.Stats()
		require.NoError(t, s.Compare(counter))
		require.Equal(t, stats, counter.Stats())
	})

	t.Run("a branch contained in the reference is merged", func(t *testing.T) {
		repo, master, _ := newForkedRepo()
		s := engine.NewBranchSnapshot("old", "m-1", master, epoch, false)

		require.NoError(t, s.Compare(engine.NewCounter(repo, nil, nil)))
		require.Equal(t, 0, s.Ahead())
		require.Equal(t, 4, s.Behind())
		require.True(t, s.Merged())
	})

	t.Run("the reference compared with itself is zero both ways", func(t *testing.T) {
		repo, master, _ := newForkedRepo()
		s := engine.NewBranchSnapshot("master", master, master, epoch, true)

		counter := engine.NewCounter(repo, nil, nil)
		require.NoError(t, s.Compare(counter))
		require.Equal(t, 0, s.Ahead())
		require.Equal(t, 0, s.Behind())
		require.Equal(t, 0, repo.CountCalls)
	})

	t.Run("counter failure leaves the snapshot uncompared", func(t *testing.T) {
		repo, master, feature := newForkedRepo()
		repo.CountErr = errors.New("boom")
		s := engine.NewBranchSnapshot("feature", feature, master, epoch, false)

		err := s.Compare(engine.NewCounter(repo, nil, nil))
		require.ErrorIs(t, err, gberrors.ErrRangeCount)
		require.Contains(t, err.Error(), "feature")
		require.False(t, s.Compared())
	})
}

func TestCompareAll(t *testing.T) {
	t.Run("compares every snapshot", func(t *testing.T) {
		repo, master, feature := newForkedRepo()
		snapshots := []*engine.BranchSnapshot{
			engine.NewBranchSnapshot("feature", feature, master, epoch, false),
			engine.NewBranchSnapshot("master", master, master, epoch, true),
		}

		require.NoError(t, engine.CompareAll(snapshots, engine.NewCounter(repo, nil, nil)))
		for _, s := range snapshots {
			require.True(t, s.Compared())
		}
	})

	t.Run("stops at the first failure", func(t *testing.T) {
		repo, master, feature := newForkedRepo()
		snapshots := []*engine.BranchSnapshot{
			engine.NewBranchSnapshot("broken", "missing", master, epoch, false),
			engine.NewBranchSnapshot("feature", feature, master, epoch, false),
		}

		require.Error(t, engine.CompareAll(snapshots, engine.NewCounter(repo, nil, nil)))
		require.False(t, snapshots[1].Compared())
	})
}
