package repo

import (
	"testing"

	"github.com/odvcencio/gitlet/pkg/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGraphCommit(t *testing.T, r *Repo, message string, parents ...object.Hash) object.Hash {
	t.Helper()
	id, err := r.WriteCommit(emptyTreeID, message, parents...)
	require.NoError(t, err)
	return id
}

func TestAncestors_DiamondVisitsEachCommitOnce(t *testing.T) {
	r := newTestRepo(t)
	//     root
	//    /    \
	//   a      b
	//    \    /
	//     merge
	root := writeGraphCommit(t, r, "root")
	a := writeGraphCommit(t, r, "a", root)
	b := writeGraphCommit(t, r, "b", root)
	merge := writeGraphCommit(t, r, "merge", a, b)

	got, err := r.Ancestors(merge)
	require.NoError(t, err)
	assert.Equal(t, []object.Hash{merge, a, b, root}, got)
}

func TestAncestors_SharedParentsAcrossLevels(t *testing.T) {
	r := newTestRepo(t)
	root := writeGraphCommit(t, r, "root")
	a := writeGraphCommit(t, r, "a", root)
	b := writeGraphCommit(t, r, "b", a, root)
	c := writeGraphCommit(t, r, "c", b, a)

	got, err := r.Ancestors(c)
	require.NoError(t, err)
	assert.Equal(t, []object.Hash{c, b, a, root}, got)
}

func TestAncestors_MissingParent(t *testing.T) {
	r := newTestRepo(t)
	orphan := writeGraphCommit(t, r, "orphan", helloBlobID)

	_, err := r.Ancestors(orphan)
	require.ErrorIs(t, err, object.ErrObjectNotFound)
}

func TestMergeBase(t *testing.T) {
	r := newTestRepo(t)
	root := writeGraphCommit(t, r, "root")
	l1 := writeGraphCommit(t, r, "l1", root)
	l2 := writeGraphCommit(t, r, "l2", l1)
	r1 := writeGraphCommit(t, r, "r1", root)
	unrelated := writeGraphCommit(t, r, "unrelated")

	tests := []struct {
		name        string
		left, right object.Hash
		want        object.Hash
	}{
		{"fork", l2, r1, root},
		{"linear ancestor", l2, l1, l1},
		{"linear descendant", l1, l2, l1},
		{"same", l2, l2, l2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.MergeBase(tt.left, tt.right)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := r.MergeBase(l2, unrelated)
	require.ErrorIs(t, err, ErrNoCommonAncestor)
}

func TestMergeBase_AfterMerge(t *testing.T) {
	r := newTestRepo(t)
	root := writeGraphCommit(t, r, "root")
	a := writeGraphCommit(t, r, "a", root)
	b := writeGraphCommit(t, r, "b", root)
	m := writeGraphCommit(t, r, "m", a, b)
	b2 := writeGraphCommit(t, r, "b2", b)

	got, err := r.MergeBase(m, b2)
	require.NoError(t, err)
	assert.Equal(t, b, got)
}
