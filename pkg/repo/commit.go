package repo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/odvcencio/gitlet/pkg/object"
	"go.uber.org/zap"
)

const initialCommitMessage = "initial commit"

// LogEntry is one commit in a history listing.
type LogEntry struct {
	ID     object.Hash
	Commit *object.CommitObj
}

// WriteCommit stores a commit object and returns its id.
func (r *Repo) WriteCommit(tree object.Hash, message string, parents ...object.Hash) (object.Hash, error) {
	id, err := r.Store.PutCommit(&object.CommitObj{
		TreeHash: tree,
		Parents:  parents,
		Message:  message,
	})
	if err != nil {
		return "", fmt.Errorf("write commit: %w", err)
	}
	return id, nil
}

// ReadCommit loads the commit with the given id. A missing object reports
// object.ErrObjectNotFound and a non-commit object.ErrTypeMismatch.
func (r *Repo) ReadCommit(id object.Hash) (*object.CommitObj, error) {
	c, err := r.Store.GetCommit(id)
	if err != nil {
		return nil, fmt.Errorf("read commit: %w", err)
	}
	return c, nil
}

// Commit records the index as a new commit whose parent is the commit
// HEAD resolves to, then moves HEAD's terminal ref to it.
func (r *Repo) Commit(message string) (object.Hash, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("commit: %w", ErrEmptyMessage)
	}

	var id object.Hash
	err := r.withLock("commit", func() error {
		idx, err := r.ReadIndex()
		if err != nil {
			return fmt.Errorf("commit: %w", err)
		}

		var parents []object.Hash
		parent, err := r.Resolve(HeadRef)
		switch {
		case err == nil:
			parents = append(parents, parent)
		case errors.Is(err, ErrDanglingRef):
			// Unborn branch: root commit.
		default:
			return fmt.Errorf("commit: %w", err)
		}

		tree, err := r.WriteTree(idx)
		if err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		if len(parents) > 0 {
			pc, err := r.ReadCommit(parent)
			if err != nil {
				return fmt.Errorf("commit: %w", err)
			}
			if pc.TreeHash == tree {
				return fmt.Errorf("commit: %w", ErrNothingToCommit)
			}
		}

		id, err = r.WriteCommit(tree, message, parents...)
		if err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		if err := r.retarget(HeadRef, id, "commit: "+firstLine(message)); err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		r.logger.Info("committed", zap.String("id", string(id)), zap.String("tree", string(tree)))
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// Log walks first-parent history from start, newest first. A non-positive
// limit walks to the root.
func (r *Repo) Log(start object.Hash, limit int) ([]LogEntry, error) {
	var entries []LogEntry
	cur := start
	for limit <= 0 || len(entries) < limit {
		c, err := r.ReadCommit(cur)
		if err != nil {
			return nil, fmt.Errorf("log: %w", err)
		}
		entries = append(entries, LogEntry{ID: cur, Commit: c})
		if len(c.Parents) == 0 {
			break
		}
		cur = c.Parents[0]
	}
	return entries, nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}
