package repo

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/odvcencio/gitlet/pkg/object"
	"github.com/stretchr/testify/require"
)

const (
	emptyTreeID = object.Hash("d28c5ff92df044a522508a29cf3fad0b812f672f")
	helloBlobID = object.Hash("5b211494ba9e0f5c98ca51e8732bda579d8487ef")
	worldBlobID = object.Hash("7186b66b6ad5dc034b76436018f1056527106104")
)

func newTestRepo(t *testing.T, opts ...Option) *Repo {
	t.Helper()
	r, err := Init(t.TempDir(), opts...)
	require.NoError(t, err, "Init")
	return r
}

func writeFile(t *testing.T, r *Repo, rel, content string) {
	t.Helper()
	abs := r.absPath(rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o755))
	require.NoError(t, os.WriteFile(abs, []byte(content), 0o644))
}

func readFile(t *testing.T, r *Repo, rel string) string {
	t.Helper()
	data, err := os.ReadFile(r.absPath(rel))
	require.NoError(t, err)
	return string(data)
}

func fileExists(r *Repo, rel string) bool {
	_, err := os.Stat(r.absPath(rel))
	return err == nil
}

// commitFiles writes, stages and commits the given files.
func commitFiles(t *testing.T, r *Repo, message string, files map[string]string) object.Hash {
	t.Helper()
	paths := make([]string, 0, len(files))
	for rel, content := range files {
		writeFile(t, r, rel, content)
		paths = append(paths, rel)
	}
	sort.Strings(paths)
	require.NoError(t, r.Add(paths...), "Add")
	id, err := r.Commit(message)
	require.NoError(t, err, "Commit")
	return id
}

func headID(t *testing.T, r *Repo) object.Hash {
	t.Helper()
	id, err := r.Resolve(HeadRef)
	require.NoError(t, err)
	return id
}

// snapshotDir returns path -> content for every file under dir, metadata
// directory included.
func snapshotDir(t *testing.T, dir string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(dir, p)
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(t, err)
	return out
}
