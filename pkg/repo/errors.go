package repo

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrFileNotFound          = errors.New("file not found")
	ErrNotAFile              = errors.New("not a regular file")
	ErrPathOutsideRepository = errors.New("path is outside the repository")
	ErrNotInitialized        = errors.New("not in an initialized gitlet directory")
	ErrAlreadyInitialized    = errors.New("a gitlet version-control system already exists in this directory")
	ErrRefAlreadyExists      = errors.New("ref already exists")
	ErrDanglingRef           = errors.New("dangling ref")
	ErrSymbolicRefCycle      = errors.New("symbolic ref cycle")
	ErrUnresolvedRef         = errors.New("name is not a commit id, tag, or branch")
	ErrInvalidRefName        = errors.New("invalid ref name")
	ErrCurrentBranch         = errors.New("cannot delete the checked-out branch")
	ErrNothingToRemove       = errors.New("nothing to remove")
	ErrNothingToCommit       = errors.New("no changes added to the commit")
	ErrEmptyMessage          = errors.New("commit message is empty")
	ErrUncommittedChanges    = errors.New("uncommitted changes would be overwritten")
	ErrMergeConflict         = errors.New("merge conflict")
	ErrNoCommonAncestor      = errors.New("no common ancestor")
	ErrLockTimeout           = errors.New("timed out waiting for repository lock")
)

// UncommittedChangesError lists the working-directory paths whose local
// state blocked a checkout.
type UncommittedChangesError struct {
	Paths []string
}

func (e *UncommittedChangesError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %s", ErrUncommittedChanges, strings.Join(e.Paths, ", "))
}

func (e *UncommittedChangesError) Is(target error) bool {
	return target == ErrUncommittedChanges
}

// MergeConflictError lists every path changed differently on both sides of
// a merge.
type MergeConflictError struct {
	Paths []string
}

func (e *MergeConflictError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s in %s", ErrMergeConflict, strings.Join(e.Paths, ", "))
}

func (e *MergeConflictError) Is(target error) bool {
	return target == ErrMergeConflict
}
