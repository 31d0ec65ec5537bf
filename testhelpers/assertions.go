// Package testhelpers provides testing utilities for gb, including a scene
// system, Git repository helpers, and custom assertions.
package testhelpers

import (
	"os/exec"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Must is a generic helper function that panics if err is not nil,
// otherwise returns the value. This is useful for test setup code
// where errors are not expected and should halt execution immediately.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// ExpectBranches asserts that the repository has the expected local branches.
func ExpectBranches(t *testing.T, repo *GitRepo, expected []string) {
	t.Helper()

	cmd := exec.Command("git", "-C", repo.Dir,
		"for-each-ref", "refs/heads/", "--format=%(refname:short)")
	output, err := cmd.Output()
	require.NoError(t, err, "Failed to list branches")

	branches := splitLines(string(output))

	// Sort both slices for comparison
	sort.Strings(branches)
	sorted := append([]string(nil), expected...)
	sort.Strings(sorted)

	require.Equal(t, sorted, branches, "Branches do not match")
}

// ExpectRowOrder asserts that each name appears in output, in the given order.
func ExpectRowOrder(t *testing.T, output string, names ...string) {
	t.Helper()

	pos := 0
	for _, name := range names {
		idx := strings.Index(output[pos:], name)
		require.NotEqual(t, -1, idx, "expected %q after offset %d in:\n%s", name, pos, output)
		pos += idx + len(name)
	}
}
