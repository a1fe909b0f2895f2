package repo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/odvcencio/gitlet/pkg/object"
)

// IsBranch reports whether a branch with the given name exists.
func (r *Repo) IsBranch(name string) bool {
	if validateRefName(name) != nil {
		return false
	}
	return isRegularFile(r.refFile(HeadsPrefix + name))
}

// CreateBranch creates a new branch pointing at target. It fails with
// ErrRefAlreadyExists if the branch exists.
func (r *Repo) CreateBranch(name string, target object.Hash) error {
	if err := validateRefName(name); err != nil {
		return fmt.Errorf("create branch: %w", err)
	}
	return r.withLock("create branch", func() error {
		if _, err := r.Store.GetCommit(target); err != nil {
			return fmt.Errorf("create branch %q: %w", name, err)
		}
		if err := r.create(HeadsPrefix+name, target, "branch: created from "+string(target)); err != nil {
			return fmt.Errorf("create branch: %w", err)
		}
		return nil
	})
}

// DeleteBranch removes the branch ref .gitlet/refs/heads/<name>. The
// branch HEAD is on cannot be deleted.
func (r *Repo) DeleteBranch(name string) error {
	if err := validateRefName(name); err != nil {
		return fmt.Errorf("delete branch: %w", err)
	}
	return r.withLock("delete branch", func() error {
		current, err := r.CurrentBranch()
		if err != nil {
			return fmt.Errorf("delete branch: %w", err)
		}
		if current == name {
			return fmt.Errorf("delete branch %q: %w", name, ErrCurrentBranch)
		}

		if err := os.Remove(r.refFile(HeadsPrefix + name)); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("delete branch %q: %w", name, ErrDanglingRef)
			}
			return fmt.Errorf("delete branch %q: %w", name, err)
		}
		os.Remove(r.reflogPath(HeadsPrefix + name))
		return nil
	})
}

// ListBranches returns the branch names sorted alphabetically.
func (r *Repo) ListBranches() ([]string, error) {
	return r.listRefNames(HeadsPrefix)
}

func (r *Repo) listRefNames(prefix string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(r.MetaDir, filepath.FromSlash(prefix)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list %s: %w", prefix, err)
	}

	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() || validateRefName(e.Name()) != nil {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
