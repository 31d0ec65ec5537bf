// Package errors provides sentinel errors and custom error types for gb.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrNotARepository indicates that no git repository could be opened
	ErrNotARepository = errors.New("not a git repository")

	// ErrBranchNotFound indicates that a local branch tip could not be resolved
	ErrBranchNotFound = errors.New("branch not found")

	// ErrReferenceNotFound indicates that the reference branch does not exist
	ErrReferenceNotFound = errors.New("reference branch not found")

	// ErrRangeCount indicates that a commit range could not be counted
	ErrRangeCount = errors.New("commit range count failed")
)

// BranchNotFoundError represents an error when a branch is not found
type BranchNotFoundError struct {
	BranchName string
	Err        error
}

func (e *BranchNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("branch %s does not exist: %v", e.BranchName, e.Err)
	}
	return fmt.Sprintf("branch %s does not exist", e.BranchName)
}

// Is returns true if the target error is ErrBranchNotFound
func (e *BranchNotFoundError) Is(target error) bool {
	return target == ErrBranchNotFound
}

func (e *BranchNotFoundError) Unwrap() error {
	return e.Err
}

// NewBranchNotFoundError creates a new BranchNotFoundError
func NewBranchNotFoundError(branchName string, err error) *BranchNotFoundError {
	return &BranchNotFoundError{BranchName: branchName, Err: err}
}

// ReferenceNotFoundError is returned when the reference branch cannot be
// resolved. It is never recovered from.
type ReferenceNotFoundError struct {
	BranchName string
	Err        error
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("error looking up reference branch '%s'", e.BranchName)
}

// Is returns true if the target error is ErrReferenceNotFound or ErrBranchNotFound
func (e *ReferenceNotFoundError) Is(target error) bool {
	return target == ErrReferenceNotFound || target == ErrBranchNotFound
}

func (e *ReferenceNotFoundError) Unwrap() error {
	return e.Err
}

// NewReferenceNotFoundError creates a new ReferenceNotFoundError
func NewReferenceNotFoundError(branchName string, err error) *ReferenceNotFoundError {
	return &ReferenceNotFoundError{BranchName: branchName, Err: err}
}

// RangeCountError represents a failed ancestry traversal for from..to
type RangeCountError struct {
	From string
	To   string
	Err  error
}

func (e *RangeCountError) Error() string {
	msg := fmt.Sprintf("failed to count commits in %s..%s", e.From, e.To)
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

// Is returns true if the target error is ErrRangeCount
func (e *RangeCountError) Is(target error) bool {
	return target == ErrRangeCount
}

func (e *RangeCountError) Unwrap() error {
	return e.Err
}

// NewRangeCountError creates a new RangeCountError
func NewRangeCountError(from, to string, err error) *RangeCountError {
	return &RangeCountError{From: from, To: to, Err: err}
}
