package repo

import (
	"fmt"

	"github.com/odvcencio/gitlet/pkg/object"
)

// StagedChanges compares the index against HEAD's tree.
type StagedChanges struct {
	New      []string
	Modified []string
	Deleted  []string
}

// UnstagedChanges compares the working directory against the index.
type UnstagedChanges struct {
	Modified  []string
	Deleted   []string
	Untracked []string
}

// Status is a snapshot of the repository state.
type Status struct {
	Branch   string // empty when detached
	Detached bool
	Head     object.Hash
	Staged   StagedChanges
	Unstaged UnstagedChanges
}

// Clean reports whether the index matches HEAD and the working directory
// matches the index.
func (s *Status) Clean() bool {
	return len(s.Staged.New) == 0 && len(s.Staged.Modified) == 0 && len(s.Staged.Deleted) == 0 &&
		len(s.Unstaged.Modified) == 0 && len(s.Unstaged.Deleted) == 0 && len(s.Unstaged.Untracked) == 0
}

// Status computes the staged and unstaged changes. It does not take the
// repository lock and writes nothing.
func (r *Repo) Status() (*Status, error) {
	st := &Status{}

	branch, err := r.CurrentBranch()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	st.Branch = branch
	st.Detached = branch == ""

	head, err := r.headTree()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	if id, err := r.Resolve(HeadRef); err == nil {
		st.Head = id
	}

	idx, err := r.ReadIndex()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	work, err := r.WorkingTree()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}

	staged := Diff(head, idx.Entries)
	st.Staged = StagedChanges{
		New:      staged.Added,
		Modified: staged.Modified,
		Deleted:  staged.Deleted,
	}

	unstaged := Diff(idx.Entries, work)
	st.Unstaged = UnstagedChanges{
		Modified:  unstaged.Modified,
		Deleted:   unstaged.Deleted,
		Untracked: unstaged.Added,
	}
	return st, nil
}
