package repo

import (
	"fmt"
	"sort"

	"github.com/odvcencio/gitlet/pkg/object"
)

// Changes lists how one path -> id mapping differs from another. Each
// slice is sorted.
type Changes struct {
	Added    []string
	Modified []string
	Deleted  []string
}

// Empty reports whether there are no changes.
func (c Changes) Empty() bool {
	return len(c.Added) == 0 && len(c.Modified) == 0 && len(c.Deleted) == 0
}

// Diff compares from against to.
func Diff(from, to map[string]object.Hash) Changes {
	var c Changes
	for p, id := range to {
		old, ok := from[p]
		switch {
		case !ok:
			c.Added = append(c.Added, p)
		case old != id:
			c.Modified = append(c.Modified, p)
		}
	}
	for p := range from {
		if _, ok := to[p]; !ok {
			c.Deleted = append(c.Deleted, p)
		}
	}
	sort.Strings(c.Added)
	sort.Strings(c.Modified)
	sort.Strings(c.Deleted)
	return c
}

// ChangeKind marks how a single path changed.
type ChangeKind byte

const (
	ChangeAdded    ChangeKind = 'A'
	ChangeModified ChangeKind = 'M'
	ChangeDeleted  ChangeKind = 'D'
)

// PathChange is one changed path with the ids on each side. Old is empty
// for added paths and New is empty for deleted ones.
type PathChange struct {
	Kind ChangeKind
	Path string
	Old  object.Hash
	New  object.Hash
}

// PathChanges flattens the difference between two mappings into one list
// sorted by path.
func PathChanges(from, to map[string]object.Hash) []PathChange {
	c := Diff(from, to)
	out := make([]PathChange, 0, len(c.Added)+len(c.Modified)+len(c.Deleted))
	for _, p := range c.Added {
		out = append(out, PathChange{Kind: ChangeAdded, Path: p, New: to[p]})
	}
	for _, p := range c.Modified {
		out = append(out, PathChange{Kind: ChangeModified, Path: p, Old: from[p], New: to[p]})
	}
	for _, p := range c.Deleted {
		out = append(out, PathChange{Kind: ChangeDeleted, Path: p, Old: from[p]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// WorkingChanges compares the index with the working directory, or HEAD's
// tree with the index when staged is set. Untracked files are not reported.
func (r *Repo) WorkingChanges(staged bool) ([]PathChange, error) {
	idx, err := r.ReadIndex()
	if err != nil {
		return nil, fmt.Errorf("diff: %w", err)
	}
	if staged {
		head, err := r.headTree()
		if err != nil {
			return nil, fmt.Errorf("diff: %w", err)
		}
		return PathChanges(head, idx.Entries), nil
	}

	work, err := r.WorkingTree()
	if err != nil {
		return nil, fmt.Errorf("diff: %w", err)
	}
	tracked := make(map[string]object.Hash, len(work))
	for p, id := range work {
		if _, ok := idx.Entries[p]; ok {
			tracked[p] = id
		}
	}
	return PathChanges(idx.Entries, tracked), nil
}

// DiffRevisions compares the trees of two commits named by tokens accepted
// by ResolveName.
func (r *Repo) DiffRevisions(from, to string) ([]PathChange, error) {
	var trees [2]map[string]object.Hash
	for i, token := range []string{from, to} {
		id, err := r.ResolveName(token)
		if err != nil {
			return nil, fmt.Errorf("diff: %w", err)
		}
		c, err := r.ReadCommit(id)
		if err != nil {
			return nil, fmt.Errorf("diff %s: %w", token, err)
		}
		if trees[i], err = r.ReadTree(c.TreeHash); err != nil {
			return nil, fmt.Errorf("diff %s: %w", token, err)
		}
	}
	return PathChanges(trees[0], trees[1]), nil
}
