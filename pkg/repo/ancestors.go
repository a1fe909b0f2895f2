package repo

import (
	"fmt"

	"github.com/odvcencio/gitlet/pkg/object"
)

// Ancestors returns id and every commit reachable from it through parent
// links, in breadth-first order. A commit is marked when it is first
// discovered, so shared history in a diamond appears exactly once.
func (r *Repo) Ancestors(id object.Hash) ([]object.Hash, error) {
	visited := map[object.Hash]bool{id: true}
	queue := []object.Hash{id}
	var out []object.Hash

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		out = append(out, cur)

		c, err := r.ReadCommit(cur)
		if err != nil {
			return nil, fmt.Errorf("ancestors of %s: %w", id, err)
		}
		for _, p := range c.Parents {
			if visited[p] {
				continue
			}
			visited[p] = true
			queue = append(queue, p)
		}
	}
	return out, nil
}

// MergeBase returns the first commit, in breadth-first order from right,
// that is also an ancestor of left. This approximates the lowest common
// ancestor: it is exact for linear and diamond-shaped histories but may pick
// a non-minimal base when criss-cross merges give several candidates.
func (r *Repo) MergeBase(left, right object.Hash) (object.Hash, error) {
	leftAnc, err := r.Ancestors(left)
	if err != nil {
		return "", fmt.Errorf("merge base: %w", err)
	}
	inLeft := make(map[object.Hash]bool, len(leftAnc))
	for _, id := range leftAnc {
		inLeft[id] = true
	}

	rightAnc, err := r.Ancestors(right)
	if err != nil {
		return "", fmt.Errorf("merge base: %w", err)
	}
	for _, id := range rightAnc {
		if inLeft[id] {
			return id, nil
		}
	}
	return "", fmt.Errorf("merge base of %s and %s: %w", left, right, ErrNoCommonAncestor)
}
