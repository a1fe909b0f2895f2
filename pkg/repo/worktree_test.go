package repo

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/odvcencio/gitlet/pkg/object"
	"github.com/stretchr/testify/require"
)

func TestWorkingTree_MatchesSequentialHashes(t *testing.T) {
	r := newTestRepo(t)
	want := make(map[string]object.Hash)
	for i := 0; i < 64; i++ {
		rel := fmt.Sprintf("d%d/f%d.txt", i%7, i)
		content := fmt.Sprintf("content %d", i)
		writeFile(t, r, rel, content)
		want[rel] = object.HashObject(object.TypeBlob, []byte(content))
	}

	got, err := r.WorkingTree()
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("WorkingTree mismatch (-want +got):\n%s", diff)
	}
}

func TestWorkingTree_DoesNotWriteObjects(t *testing.T) {
	r := newTestRepo(t)
	writeFile(t, r, "a.txt", "hello")

	_, err := r.WorkingTree()
	require.NoError(t, err)
	require.False(t, r.Store.Has(helloBlobID))
}
