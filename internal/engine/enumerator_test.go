package engine_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gb.dev/gb/internal/engine"
	gberrors "gb.dev/gb/internal/errors"
	"gb.dev/gb/testhelpers"
)

func TestEnumerator_Enumerate(t *testing.T) {
	t.Run("builds one snapshot per local branch", func(t *testing.T) {
		repo, master, feature := newForkedRepo()
		repo.SetHead("feature")

		snapshots, err := engine.NewEnumerator(repo).Enumerate()
		require.NoError(t, err)
		require.Len(t, snapshots, 2)

		byName := map[string]*engine.BranchSnapshot{}
		for _, s := range snapshots {
			byName[s.Name()] = s
		}

		require.Equal(t, feature, byName["feature"].TipID())
		require.Equal(t, master, byName["feature"].ReferenceTipID())
		require.True(t, byName["feature"].IsHead())
		require.False(t, byName["master"].IsHead())
		require.True(t, byName["master"].IsReference())
		require.Equal(t, epoch, byName["feature"].LastCommitTime())
	})

	t.Run("counts default to zero until compared", func(t *testing.T) {
		repo, _, _ := newForkedRepo()
		snapshots, err := engine.NewEnumerator(repo).Enumerate()
		require.NoError(t, err)
		for _, s := range snapshots {
			require.False(t, s.Compared())
			require.Equal(t, 0, s.Ahead())
			require.Equal(t, 0, s.Behind())
		}
		require.Equal(t, 0, repo.CountCalls)
	})

	t.Run("detached HEAD marks no branch", func(t *testing.T) {
		repo, _, _ := newForkedRepo()
		repo.SetHead("")
		snapshots, err := engine.NewEnumerator(repo).Enumerate()
		require.NoError(t, err)
		for _, s := range snapshots {
			require.False(t, s.IsHead())
		}
	})

	t.Run("missing reference branch is fatal", func(t *testing.T) {
		repo := testhelpers.NewFakeRepository()
		tip := repo.AddChain("c", "", 1, epoch)
		repo.SetBranch("main", tip)

		_, err := engine.NewEnumerator(repo).Enumerate()
		require.ErrorIs(t, err, gberrors.ErrReferenceNotFound)
		require.Contains(t, err.Error(), "master")
	})

	t.Run("missing reference branch is fatal with no local branches", func(t *testing.T) {
		repo := testhelpers.NewFakeRepository()

		snapshots, err := engine.NewEnumerator(repo).Enumerate()
		require.ErrorIs(t, err, gberrors.ErrReferenceNotFound)
		require.Nil(t, snapshots)
	})

	t.Run("reference branch alone yields one snapshot", func(t *testing.T) {
		repo := testhelpers.NewFakeRepository()
		repo.SetBranch("master", repo.AddChain("m", "", 1, epoch)).SetHead("master")

		snapshots, err := engine.NewEnumerator(repo).Enumerate()
		require.NoError(t, err)
		require.Len(t, snapshots, 1)
		require.True(t, snapshots[0].IsReference())
	})

	t.Run("unresolvable branch aborts the whole run", func(t *testing.T) {
		repo, _, _ := newForkedRepo()
		repo.SetBranch("zzz-after", "m-1")
		repo.ResolveErrors["feature"] = errors.New("broken ref")

		snapshots, err := engine.NewEnumerator(repo).Enumerate()
		require.ErrorIs(t, err, gberrors.ErrBranchNotFound)
		require.Nil(t, snapshots)

		var notFound *gberrors.BranchNotFoundError
		require.ErrorAs(t, err, &notFound)
		require.Equal(t, "feature", notFound.BranchName)

		// branches after the failing one are never looked at
		require.Zero(t, repo.ResolveCalls["zzz-after"])
	})

	t.Run("tip without a readable commit is fatal", func(t *testing.T) {
		repo, _, _ := newForkedRepo()
		repo.SetBranch("dangling", "no-such-commit")

		_, err := engine.NewEnumerator(repo).Enumerate()
		require.Error(t, err)
		require.Contains(t, err.Error(), "dangling")
	})

	t.Run("listing failure is fatal", func(t *testing.T) {
		repo, _, _ := newForkedRepo()
		repo.ListErr = errors.New("unreadable refs")
		_, err := engine.NewEnumerator(repo).Enumerate()
		require.Error(t, err)
	})

	t.Run("reference tip is captured per snapshot", func(t *testing.T) {
		repo, master, _ := newForkedRepo()
		snapshots, err := engine.NewEnumerator(repo).Enumerate()
		require.NoError(t, err)

		// moving master afterwards does not affect existing snapshots
		moved := repo.AddChain("late", master, 1, epoch.Add(time.Hour))
		repo.SetBranch("master", moved)

		for _, s := range snapshots {
			require.Equal(t, master, s.ReferenceTipID())
		}
	})
}
