package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

var (
	gbBinary struct {
		once sync.Once
		path string
		err  error
	}
)

// GbBinary returns the path to a gb binary built from this module. The
// binary is built on first use and shared by every test in the process; it
// lives in a temp directory that is left for the OS to clean up.
func GbBinary(t *testing.T) string {
	t.Helper()
	gbBinary.once.Do(func() {
		gbBinary.path, gbBinary.err = buildGb()
	})
	if gbBinary.err != nil {
		t.Fatalf("failed to build gb binary: %v", gbBinary.err)
	}
	return gbBinary.path
}

// GbCommand prepares the gb binary to run in dir. Settings that would leak
// from the developer's shell (GB_*, NO_COLOR, DEBUG) are dropped.
func GbCommand(t *testing.T, dir string, args ...string) *exec.Cmd {
	t.Helper()
	cmd := exec.Command(GbBinary(t), args...)
	cmd.Dir = dir
	cmd.Env = scrubbedEnv()
	return cmd
}

func scrubbedEnv() []string {
	env := []string{}
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, "GB_") || name == "NO_COLOR" || name == "DEBUG" {
			continue
		}
		env = append(env, kv)
	}
	return env
}

func buildGb() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	moduleRoot := findModuleRoot(wd)
	if moduleRoot == "" {
		return "", fmt.Errorf("could not find go.mod above %s", wd)
	}

	tmpDir, err := os.MkdirTemp("", "gb-test-binary-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}
	binaryPath := filepath.Join(tmpDir, "gb")

	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/gb")
	cmd.Dir = moduleRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", fmt.Errorf("go build: %s: %w", output, err)
	}
	return binaryPath, nil
}

func findModuleRoot(dir string) string {
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
