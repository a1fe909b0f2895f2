package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/odvcencio/gitlet/pkg/object"
	"go.uber.org/zap"
)

// Checkout switches the working directory to the commit named by token,
// resolved with ResolveName. When the token resolves through a branch, HEAD
// is left symbolic on that branch; a tag, id or HEAD detaches HEAD at the
// commit. A tag shadows a branch of the same name here as everywhere else.
// It returns the commit checked out.
//
// Algorithm:
//  1. Refuse if a file the target would write has local changes.
//  2. Delete the working copies of HEAD's files that are unmodified.
//  3. Write every file of the target tree.
//  4. Reset the index to the target tree.
//  5. Point HEAD at the branch or commit.
func (r *Repo) Checkout(token string) (object.Hash, error) {
	var target object.Hash
	err := r.withLock("checkout", func() error {
		var err error
		target, err = r.ResolveName(token)
		if err != nil {
			return fmt.Errorf("checkout: %w", err)
		}

		tree, err := r.commitTree(target)
		if err != nil {
			return fmt.Errorf("checkout %s: %w", token, err)
		}
		if err := r.checkoutTree(tree); err != nil {
			return fmt.Errorf("checkout %s: %w", token, err)
		}

		pointAt := string(target)
		if r.resolvesToBranch(token) {
			pointAt = token
		}
		if err := r.point(HeadRef, pointAt, "checkout: moving to "+token); err != nil {
			return fmt.Errorf("checkout: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return target, nil
}

// identical reports whether path has the same presence and, if present,
// the same id in both mappings.
func identical(path string, a, b map[string]object.Hash) bool {
	ha, okA := a[path]
	hb, okB := b[path]
	return okA == okB && ha == hb
}

// headTree returns the flattened tree of the commit HEAD resolves to, or an
// empty mapping when HEAD's branch has no commit yet.
func (r *Repo) headTree() (map[string]object.Hash, error) {
	id, err := r.Resolve(HeadRef)
	if err != nil {
		if errors.Is(err, ErrDanglingRef) {
			return map[string]object.Hash{}, nil
		}
		return nil, err
	}
	return r.commitTree(id)
}

// checkoutTree replaces the working directory and index with target. It
// checks every path first and changes nothing if any is unsafe. The caller
// moves refs afterwards.
func (r *Repo) checkoutTree(target map[string]object.Hash) error {
	plan, err := r.planCheckout(target)
	if err != nil {
		return err
	}
	return r.applyCheckout(plan)
}

// checkoutPlan is a checkout that has passed its safety check but has not
// touched the working directory yet.
type checkoutPlan struct {
	target map[string]object.Hash
	head   map[string]object.Hash
	work   map[string]object.Hash
}

// planCheckout reads HEAD's tree and the working directory and refuses
// with *UncommittedChangesError if target would clobber local changes.
// It writes nothing, objects included.
func (r *Repo) planCheckout(target map[string]object.Hash) (*checkoutPlan, error) {
	head, err := r.headTree()
	if err != nil {
		return nil, err
	}
	work, err := r.WorkingTree()
	if err != nil {
		return nil, err
	}
	if dirty := unsafePaths(target, head, work); len(dirty) > 0 {
		return nil, &UncommittedChangesError{Paths: dirty}
	}
	return &checkoutPlan{target: target, head: head, work: work}, nil
}

func (r *Repo) applyCheckout(plan *checkoutPlan) error {
	removed := 0
	for p := range plan.head {
		if !identical(p, plan.head, plan.work) {
			continue
		}
		abs := r.absPath(p)
		if err := os.Remove(abs); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove %q: %w", p, err)
		}
		r.removeEmptyParents(filepath.Dir(abs))
		removed++
	}

	for _, p := range sortedKeys(plan.target) {
		blob, err := r.Store.GetBlob(plan.target[p])
		if err != nil {
			return fmt.Errorf("materialize %q: %w", p, err)
		}
		abs := r.absPath(p)
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			return fmt.Errorf("materialize %q: %w", p, err)
		}
		if err := os.WriteFile(abs, blob.Data, 0o644); err != nil {
			return fmt.Errorf("materialize %q: %w", p, err)
		}
	}

	idx := NewIndex()
	for p, id := range plan.target {
		idx.Stage(p, id)
	}
	if err := r.WriteIndex(idx); err != nil {
		return err
	}

	r.logger.Info("working tree updated",
		zap.Int("removed", removed),
		zap.Int("written", len(plan.target)),
	)
	return nil
}

// unsafePaths lists, sorted, the working files that checking out target
// would clobber: any target path whose working copy differs from HEAD, and
// any untracked or modified working file that sits where the target needs a
// directory or inside a directory where the target needs a file.
func unsafePaths(target, head, work map[string]object.Hash) []string {
	dirty := make(map[string]bool)
	for p := range target {
		if !identical(p, head, work) {
			dirty[p] = true
		}
		for dir, _ := splitPath(p); dir != ""; dir, _ = splitPath(dir) {
			if _, ok := work[dir]; ok && !identical(dir, head, work) {
				dirty[dir] = true
			}
		}
	}

	for w := range work {
		if identical(w, head, work) {
			continue
		}
		for dir, _ := splitPath(w); dir != ""; dir, _ = splitPath(dir) {
			if _, ok := target[dir]; ok {
				dirty[w] = true
				break
			}
		}
	}

	out := make([]string, 0, len(dirty))
	for p := range dirty {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
