package repo

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/odvcencio/gitlet/pkg/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentical(t *testing.T) {
	a := map[string]object.Hash{"x": helloBlobID, "y": helloBlobID}
	b := map[string]object.Hash{"x": helloBlobID, "y": worldBlobID}

	assert.True(t, identical("x", a, b))
	assert.False(t, identical("y", a, b))
	assert.True(t, identical("z", a, b), "absent from both")
	assert.False(t, identical("x", a, map[string]object.Hash{}))
}

func TestCheckout_SwitchesBranches(t *testing.T) {
	r := newTestRepo(t)
	base := commitFiles(t, r, "base", map[string]string{"a.txt": "hello", "gone/b.txt": "b"})
	require.NoError(t, r.CreateBranch("feature", base))

	require.NoError(t, r.Remove("gone"))
	commitFiles(t, r, "master change", map[string]string{"a.txt": "world", "new/c.txt": "c"})

	id, err := r.Checkout("feature")
	require.NoError(t, err)
	assert.Equal(t, base, id)

	assert.Equal(t, "hello", readFile(t, r, "a.txt"))
	assert.Equal(t, "b", readFile(t, r, "gone/b.txt"))
	assert.False(t, fileExists(r, "new/c.txt"))
	assert.NoDirExists(t, r.absPath("new"))

	branch, err := r.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "feature", branch)

	idx, err := r.ReadIndex()
	require.NoError(t, err)
	tree, err := r.commitTree(base)
	require.NoError(t, err)
	if diff := cmp.Diff(tree, idx.Entries); diff != "" {
		t.Errorf("index does not match target tree (-want +got):\n%s", diff)
	}
}

func TestCheckout_DetachesOnCommitID(t *testing.T) {
	r := newTestRepo(t)
	first := commitFiles(t, r, "first", map[string]string{"a.txt": "hello"})
	commitFiles(t, r, "second", map[string]string{"a.txt": "world"})

	_, err := r.Checkout(string(first))
	require.NoError(t, err)

	ref, err := r.ReadRef(HeadRef)
	require.NoError(t, err)
	assert.Equal(t, DirectRef(first), ref)
	assert.Equal(t, "hello", readFile(t, r, "a.txt"))
}

func TestCheckout_TagDetaches(t *testing.T) {
	r := newTestRepo(t)
	first := commitFiles(t, r, "first", map[string]string{"a.txt": "hello"})
	require.NoError(t, r.CreateTag("v1", first))

	_, err := r.Checkout("v1")
	require.NoError(t, err)

	ref, err := r.ReadRef(HeadRef)
	require.NoError(t, err)
	assert.Equal(t, DirectRef(first), ref)
}

func TestCheckout_TagShadowsBranch(t *testing.T) {
	r := newTestRepo(t)
	initial := headID(t, r)
	first := commitFiles(t, r, "first", map[string]string{"a.txt": "hello"})
	require.NoError(t, r.CreateBranch("same", initial))
	require.NoError(t, r.CreateTag("same", first))

	want, err := r.ResolveName("same")
	require.NoError(t, err)
	got, err := r.Checkout("same")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, first, got)

	ref, err := r.ReadRef(HeadRef)
	require.NoError(t, err)
	assert.Equal(t, DirectRef(first), ref, "tag wins, so HEAD detaches")
	assert.Equal(t, "hello", readFile(t, r, "a.txt"))
}

func TestCheckout_RefusesToClobberModifiedFile(t *testing.T) {
	r := newTestRepo(t)
	base := commitFiles(t, r, "base", map[string]string{"a.txt": "hello"})
	require.NoError(t, r.CreateBranch("feature", base))
	commitFiles(t, r, "master", map[string]string{"a.txt": "world"})
	writeFile(t, r, "a.txt", "local edit")
	before := snapshotDir(t, r.RootDir)

	_, err := r.Checkout("feature")
	require.ErrorIs(t, err, ErrUncommittedChanges)
	var uce *UncommittedChangesError
	require.True(t, errors.As(err, &uce))
	assert.Equal(t, []string{"a.txt"}, uce.Paths)

	if diff := cmp.Diff(before, snapshotDir(t, r.RootDir)); diff != "" {
		t.Errorf("state changed (-before +after):\n%s", diff)
	}
}

func TestCheckout_RefusesToClobberUntrackedFile(t *testing.T) {
	r := newTestRepo(t)
	initial := headID(t, r)
	require.NoError(t, r.CreateBranch("empty", initial))
	commitFiles(t, r, "add b", map[string]string{"b.txt": "tracked"})
	_, err := r.Checkout("empty")
	require.NoError(t, err)
	require.False(t, fileExists(r, "b.txt"))

	writeFile(t, r, "b.txt", "untracked")
	_, err = r.Checkout("master")
	require.ErrorIs(t, err, ErrUncommittedChanges)
	assert.Equal(t, "untracked", readFile(t, r, "b.txt"))
}

func TestCheckout_KeepsUnrelatedLocalFiles(t *testing.T) {
	r := newTestRepo(t)
	base := commitFiles(t, r, "base", map[string]string{"a.txt": "hello"})
	require.NoError(t, r.CreateBranch("feature", base))
	commitFiles(t, r, "master", map[string]string{"b.txt": "world"})
	writeFile(t, r, "b.txt", "edited but not in target")
	writeFile(t, r, "notes.txt", "untracked")

	_, err := r.Checkout("feature")
	require.NoError(t, err)

	assert.Equal(t, "edited but not in target", readFile(t, r, "b.txt"))
	assert.Equal(t, "untracked", readFile(t, r, "notes.txt"))
	assert.Equal(t, "hello", readFile(t, r, "a.txt"))
}

func TestCheckout_UnknownToken(t *testing.T) {
	r := newTestRepo(t)
	_, err := r.Checkout("nowhere")
	require.ErrorIs(t, err, ErrUnresolvedRef)

	_, err = r.Checkout(string(helloBlobID))
	require.ErrorIs(t, err, object.ErrObjectNotFound)
}

func TestUnsafePaths_FileDirectoryClashes(t *testing.T) {
	head := map[string]object.Hash{}
	work := map[string]object.Hash{"a": helloBlobID, "d/x": worldBlobID}
	target := map[string]object.Hash{"a/b": helloBlobID, "d": helloBlobID}

	assert.Equal(t, []string{"a", "d/x"}, unsafePaths(target, head, work))
}
