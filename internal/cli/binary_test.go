package cli_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"gb.dev/gb/testhelpers"
)

func TestBinary(t *testing.T) {
	// build once before the parallel subtests start
	testhelpers.GbBinary(t)

	t.Run("prints rows and exits zero", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, forkedSetup)

		var stdout, stderr bytes.Buffer
		cmd := testhelpers.GbCommand(t, scene.Dir)
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
		require.NoError(t, cmd.Run(), stderr.String())

		require.Empty(t, stderr.String())
		require.Len(t, rows(stdout.String()), 3)
		// stdout is a pipe, so no color
		require.NotContains(t, stdout.String(), "\x1b[")
	})

	t.Run("missing master exits non-zero with one diagnostic", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, forkedSetup)
		require.NoError(t, scene.Repo.RenameBranch(testhelpers.DefaultBranch, "trunk"))

		var stdout, stderr bytes.Buffer
		cmd := testhelpers.GbCommand(t, scene.Dir)
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
		err := cmd.Run()

		var exitErr *exec.ExitError
		require.ErrorAs(t, err, &exitErr)
		require.Equal(t, 1, exitErr.ExitCode())
		require.Empty(t, stdout.String())
		require.Equal(t, []string{"error: error looking up reference branch 'master'"},
			strings.Split(strings.TrimSpace(stderr.String()), "\n"))
	})

	t.Run("fresh repository without commits exits non-zero", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, nil)

		var stdout, stderr bytes.Buffer
		cmd := testhelpers.GbCommand(t, scene.Dir)
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
		err := cmd.Run()

		var exitErr *exec.ExitError
		require.ErrorAs(t, err, &exitErr)
		require.Equal(t, 1, exitErr.ExitCode())
		require.Empty(t, stdout.String())
		require.Equal(t, "error: error looking up reference branch 'master'", strings.TrimSpace(stderr.String()))
	})

	t.Run("usage errors exit non-zero", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, forkedSetup)

		output, err := testhelpers.GbCommand(t, scene.Dir, "--merged", "--no-merged").CombinedOutput()
		require.Error(t, err)
		require.True(t, strings.HasPrefix(string(output), "error: "), string(output))
	})

	t.Run("works from a subdirectory", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneParallel(t, forkedSetup)
		sub := filepath.Join(scene.Dir, "nested")
		require.NoError(t, os.MkdirAll(sub, 0750))

		output, err := testhelpers.GbCommand(t, sub).CombinedOutput()
		require.NoError(t, err, string(output))
		require.Contains(t, string(output), "feature")
	})
}
