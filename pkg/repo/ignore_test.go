package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIgnoreChecker_FullMatch(t *testing.T) {
	ic, err := NewIgnoreChecker([]string{`.*\.log`, "", "tmp", `docs/.*\.bak`})
	require.NoError(t, err)

	tests := []struct {
		path string
		want bool
	}{
		{"debug.log", true},
		{"nested/dir/debug.log", true},
		{"debug.log.txt", false},
		{"tmp", true},
		{"tmpfile", false},
		{"a/tmp", false},
		{"docs/x.bak", true},
		{"src/docs/x.bak", false},
		{".gitlet", true},
		{".gitlet/HEAD", true},
		{"main.go", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ic.IsIgnored(tt.path), tt.path)
	}
}

func TestIgnoreChecker_NilIgnoresOnlyMetadata(t *testing.T) {
	var ic *IgnoreChecker
	assert.True(t, ic.IsIgnored(".gitlet/index"))
	assert.False(t, ic.IsIgnored("a.txt"))
}

func TestLoadIgnoreChecker(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".gitletignore")

	ic, err := LoadIgnoreChecker(path)
	require.NoError(t, err, "missing file is fine")
	assert.False(t, ic.IsIgnored("a.txt"))

	require.NoError(t, os.WriteFile(path, []byte("build\r\n\n.*~\n"), 0o644))
	ic, err = LoadIgnoreChecker(path)
	require.NoError(t, err)
	assert.True(t, ic.IsIgnored("build"))
	assert.True(t, ic.IsIgnored("notes.txt~"))

	require.NoError(t, os.WriteFile(path, []byte("ok\n(unclosed\n"), 0o644))
	_, err = LoadIgnoreChecker(path)
	require.ErrorContains(t, err, "(unclosed")
}

func TestWorkingTree_SkipsIgnoredDirectories(t *testing.T) {
	r := newTestRepo(t)
	writeFile(t, r, ".gitletignore", "vendor\n")
	writeFile(t, r, "vendor/lib/x.go", "hello")
	writeFile(t, r, "main.go", "hello")

	work, err := r.WorkingTree()
	require.NoError(t, err)
	assert.Contains(t, work, "main.go")
	assert.Contains(t, work, ".gitletignore")
	assert.NotContains(t, work, "vendor/lib/x.go")
	for p := range work {
		assert.NotContains(t, p, ".gitlet/")
	}
}

func TestWorkingTree_CustomIgnoreFile(t *testing.T) {
	r := newTestRepo(t)
	r.Config.Core.IgnoreFile = "ignore.txt"
	writeFile(t, r, "ignore.txt", "secret")
	writeFile(t, r, "secret", "hello")

	work, err := r.WorkingTree()
	require.NoError(t, err)
	assert.NotContains(t, work, "secret")
}
