package repo

import (
	"fmt"
	"sort"

	"github.com/odvcencio/gitlet/pkg/object"
	"go.uber.org/zap"
)

// MergeKind classifies the outcome of a merge.
type MergeKind int

const (
	// MergeUpToDate means the other commit is already in HEAD's history.
	MergeUpToDate MergeKind = iota
	// MergeFastForward means HEAD's terminal ref moved to the other commit.
	MergeFastForward
	// MergeCommitted means a two-parent merge commit was created.
	MergeCommitted
)

func (k MergeKind) String() string {
	switch k {
	case MergeUpToDate:
		return "up-to-date"
	case MergeFastForward:
		return "fast-forward"
	case MergeCommitted:
		return "merged"
	}
	return fmt.Sprintf("MergeKind(%d)", int(k))
}

// MergeResult reports what Merge did.
type MergeResult struct {
	Kind   MergeKind
	Base   object.Hash
	Commit object.Hash // HEAD's commit after the merge
}

// Merge merges the commit named by token into HEAD.
//
// Algorithm:
//  1. Resolve HEAD (local) and token (remote) and find their merge base.
//  2. If remote is the base, there is nothing to do.
//  3. If local is the base, check out remote and move HEAD's ref to it.
//  4. Otherwise merge the three trees path by path. Any conflict aborts the
//     whole merge before anything is written.
//  5. Check that the merged tree can be checked out over the working
//     directory, then commit it with parents [local, remote], check it out,
//     and move HEAD's ref to the new commit.
func (r *Repo) Merge(token string) (*MergeResult, error) {
	var res *MergeResult
	err := r.withLock("merge", func() error {
		local, err := r.Resolve(HeadRef)
		if err != nil {
			return fmt.Errorf("merge: %w", err)
		}
		remote, err := r.ResolveName(token)
		if err != nil {
			return fmt.Errorf("merge: %w", err)
		}
		base, err := r.MergeBase(local, remote)
		if err != nil {
			return fmt.Errorf("merge: %w", err)
		}

		switch base {
		case remote:
			res = &MergeResult{Kind: MergeUpToDate, Base: base, Commit: local}
			return nil
		case local:
			tree, err := r.commitTree(remote)
			if err != nil {
				return fmt.Errorf("merge: %w", err)
			}
			if err := r.checkoutTree(tree); err != nil {
				return fmt.Errorf("merge: %w", err)
			}
			if err := r.retarget(HeadRef, remote, "merge "+token+": fast-forward"); err != nil {
				return fmt.Errorf("merge: %w", err)
			}
			r.logger.Info("fast-forward", zap.String("to", string(remote)))
			res = &MergeResult{Kind: MergeFastForward, Base: base, Commit: remote}
			return nil
		}

		baseTree, err := r.commitTree(base)
		if err != nil {
			return fmt.Errorf("merge: %w", err)
		}
		localTree, err := r.commitTree(local)
		if err != nil {
			return fmt.Errorf("merge: %w", err)
		}
		remoteTree, err := r.commitTree(remote)
		if err != nil {
			return fmt.Errorf("merge: %w", err)
		}

		merged, conflicts := mergeTrees(baseTree, localTree, remoteTree)
		if len(conflicts) > 0 {
			return fmt.Errorf("merge %s: %w", token, &MergeConflictError{Paths: conflicts})
		}

		plan, err := r.planCheckout(merged)
		if err != nil {
			return fmt.Errorf("merge: %w", err)
		}

		idx := NewIndex()
		for p, id := range merged {
			idx.Stage(p, id)
		}
		treeID, err := r.WriteTree(idx)
		if err != nil {
			return fmt.Errorf("merge: %w", err)
		}
		branch, err := r.CurrentBranch()
		if err != nil {
			return fmt.Errorf("merge: %w", err)
		}
		if branch == "" {
			branch = HeadRef
		}
		msg := fmt.Sprintf("Merge %s into %s.", token, branch)
		commitID, err := r.WriteCommit(treeID, msg, local, remote)
		if err != nil {
			return fmt.Errorf("merge: %w", err)
		}

		if err := r.applyCheckout(plan); err != nil {
			return fmt.Errorf("merge: %w", err)
		}
		if err := r.retarget(HeadRef, commitID, "merge "+token); err != nil {
			return fmt.Errorf("merge: %w", err)
		}
		r.logger.Info("merge committed",
			zap.String("commit", string(commitID)),
			zap.String("base", string(base)),
		)
		res = &MergeResult{Kind: MergeCommitted, Base: base, Commit: commitID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// mergeTrees combines local and remote relative to base over every path
// either side has. A path conflicts when both sides changed it, even to the
// same id. Otherwise the remote value wins if local left the path alone,
// and the local value wins if not; a winning absence drops the path. A path
// both sides deleted is dropped.
func mergeTrees(base, local, remote map[string]object.Hash) (map[string]object.Hash, []string) {
	paths := make(map[string]struct{}, len(local)+len(remote))
	for _, m := range []map[string]object.Hash{local, remote} {
		for p := range m {
			paths[p] = struct{}{}
		}
	}

	merged := make(map[string]object.Hash)
	var conflicts []string
	for p := range paths {
		localChanged := !identical(p, base, local)
		remoteChanged := !identical(p, base, remote)
		if localChanged && remoteChanged {
			conflicts = append(conflicts, p)
			continue
		}

		winner := local
		if !localChanged {
			winner = remote
		}
		if id, ok := winner[p]; ok {
			merged[p] = id
		}
	}
	sort.Strings(conflicts)
	return merged, conflicts
}
