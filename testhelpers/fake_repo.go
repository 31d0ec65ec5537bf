package testhelpers

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// FakeRepository is an in-memory commit graph that satisfies
// engine.Repository. Commits are added with AddCommit and branches point at
// them with SetBranch.
type FakeRepository struct {
	parents  map[string][]string
	times    map[string]time.Time
	branches map[string]string
	head     string

	// Per-call failure injection
	ResolveErrors map[string]error
	CountErr      error
	ListErr       error

	// Call counters
	CountCalls   int
	ResolveCalls map[string]int
}

// NewFakeRepository creates an empty fake repository
func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		parents:       make(map[string][]string),
		times:         make(map[string]time.Time),
		branches:      make(map[string]string),
		ResolveErrors: make(map[string]error),
		ResolveCalls:  make(map[string]int),
	}
}

// AddCommit records a commit with the given parents and committer time
func (f *FakeRepository) AddCommit(id string, when time.Time, parents ...string) *FakeRepository {
	f.parents[id] = parents
	f.times[id] = when
	return f
}

// AddChain adds a linear run of commits on top of parent ("" for a root)
// and returns the id of the last one. Ids are prefix-1, prefix-2, ...
func (f *FakeRepository) AddChain(prefix, parent string, n int, when time.Time) string {
	last := parent
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("%s-%d", prefix, i)
		if last == "" {
			f.AddCommit(id, when)
		} else {
			f.AddCommit(id, when, last)
		}
		last = id
	}
	return last
}

// SetBranch points a branch at a commit
func (f *FakeRepository) SetBranch(name, id string) *FakeRepository {
	f.branches[name] = id
	return f
}

// SetHead checks out a branch ("" for detached)
func (f *FakeRepository) SetHead(name string) *FakeRepository {
	f.head = name
	return f
}

// LocalBranches implements engine.BranchReader
func (f *FakeRepository) LocalBranches() ([]string, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	names := make([]string, 0, len(f.branches))
	for name := range f.branches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// HeadBranch implements engine.BranchReader
func (f *FakeRepository) HeadBranch() (string, error) {
	return f.head, nil
}

// ResolveBranch implements engine.BranchReader
func (f *FakeRepository) ResolveBranch(name string) (string, error) {
	f.ResolveCalls[name]++
	if err := f.ResolveErrors[name]; err != nil {
		return "", err
	}
	id, ok := f.branches[name]
	if !ok {
		return "", fmt.Errorf("reference not found: refs/heads/%s", name)
	}
	return id, nil
}

// CommitTime implements engine.CommitReader
func (f *FakeRepository) CommitTime(id string) (time.Time, error) {
	when, ok := f.times[id]
	if !ok {
		return time.Time{}, fmt.Errorf("object not found: %s", id)
	}
	return when, nil
}

// CountRange implements engine.RangeCounter
func (f *FakeRepository) CountRange(from, to string) (int, error) {
	f.CountCalls++
	if f.CountErr != nil {
		return 0, f.CountErr
	}
	excluded, err := f.ancestors(from)
	if err != nil {
		return 0, err
	}
	included, err := f.ancestors(to)
	if err != nil {
		return 0, err
	}
	n := 0
	for id := range included {
		if !excluded[id] {
			n++
		}
	}
	return n, nil
}

func (f *FakeRepository) ancestors(id string) (map[string]bool, error) {
	seen := make(map[string]bool)
	stack := []string{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[cur] {
			continue
		}
		parents, ok := f.parents[cur]
		if !ok {
			return nil, errors.New("object not found: " + cur)
		}
		seen[cur] = true
		stack = append(stack, parents...)
	}
	return seen, nil
}
