package repo

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/odvcencio/gitlet/pkg/object"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const indexFileName = "index"

// Index is the staging area: the mapping from repository-relative file
// path to blob id that the next commit will record.
type Index struct {
	Entries map[string]object.Hash
}

// NewIndex returns an empty Index.
func NewIndex() *Index {
	return &Index{Entries: make(map[string]object.Hash)}
}

// Stage records path -> id, replacing any previous entry for path.
func (idx *Index) Stage(path string, id object.Hash) {
	idx.Entries[path] = id
}

// Unstage drops every entry equal to prefix or lying under the directory
// prefix/. A prefix of "." or "" matches every entry. The removed paths
// are returned sorted.
func (idx *Index) Unstage(prefix string) []string {
	var removed []string
	for p := range idx.Entries {
		if pathWithin(p, prefix) {
			removed = append(removed, p)
		}
	}
	for _, p := range removed {
		delete(idx.Entries, p)
	}
	sort.Strings(removed)
	return removed
}

// Paths returns the staged paths sorted.
func (idx *Index) Paths() []string {
	return sortedKeys(idx.Entries)
}

// pathWithin reports whether p equals dir or lies below it on a directory
// boundary.
func pathWithin(p, dir string) bool {
	if dir == "" || dir == "." {
		return true
	}
	return p == dir || strings.HasPrefix(p, dir+"/")
}

// MarshalIndex encodes idx as sorted "<path> <id>" lines.
func MarshalIndex(idx *Index) []byte {
	var buf bytes.Buffer
	for _, p := range idx.Paths() {
		fmt.Fprintf(&buf, "%s %s\n", p, idx.Entries[p])
	}
	return buf.Bytes()
}

// ParseIndex decodes the index file format. The id is the last
// space-separated field, so paths may themselves contain spaces.
func ParseIndex(data []byte) (*Index, error) {
	idx := NewIndex()
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := scanner.Text()
		if line == "" {
			continue
		}
		i := strings.LastIndexByte(line, ' ')
		if i <= 0 || !object.IsHash(line[i+1:]) {
			return nil, fmt.Errorf("parse index: line %d: malformed entry %q", lineNo, line)
		}
		idx.Entries[line[:i]] = object.Hash(line[i+1:])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("parse index: %w", err)
	}
	return idx, nil
}

func (r *Repo) indexPath() string {
	return filepath.Join(r.MetaDir, indexFileName)
}

// ReadIndex loads .gitlet/index. A missing file yields an empty Index.
func (r *Repo) ReadIndex() (*Index, error) {
	data, err := os.ReadFile(r.indexPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewIndex(), nil
		}
		return nil, fmt.Errorf("read index: %w", err)
	}
	return ParseIndex(data)
}

// WriteIndex atomically replaces .gitlet/index.
func (r *Repo) WriteIndex(idx *Index) error {
	if err := writeFileAtomic(r.indexPath(), MarshalIndex(idx), 0o644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}

// Add stores the content of each named file as a blob and stages it.
// Directories are walked recursively, skipping ignored paths; a file named
// explicitly is added even when it matches an ignore pattern. Every path is
// validated before any blob is written, so a bad argument leaves the index
// untouched.
func (r *Repo) Add(paths ...string) error {
	return r.withLock("add", func() error {
		ic, err := r.ignoreChecker()
		if err != nil {
			return fmt.Errorf("add: %w", err)
		}

		var files []string
		for _, p := range paths {
			rel, err := r.repoRelPath(p)
			if err != nil {
				return fmt.Errorf("add: %w", err)
			}
			info, err := os.Lstat(r.absPath(rel))
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("add %q: %w", p, ErrFileNotFound)
				}
				return fmt.Errorf("add %q: %w", p, err)
			}
			switch {
			case info.IsDir():
				err := r.walkFiles(rel, ic, func(file string) error {
					files = append(files, file)
					return nil
				})
				if err != nil {
					return fmt.Errorf("add %q: %w", p, err)
				}
			case info.Mode().IsRegular():
				files = append(files, rel)
			default:
				return fmt.Errorf("add %q: %w", p, ErrNotAFile)
			}
		}

		idx, err := r.ReadIndex()
		if err != nil {
			return fmt.Errorf("add: %w", err)
		}
		for _, rel := range files {
			data, err := os.ReadFile(r.absPath(rel))
			if err != nil {
				return fmt.Errorf("add: read %q: %w", rel, err)
			}
			id, err := r.Store.PutBlob(&object.Blob{Data: data})
			if err != nil {
				return fmt.Errorf("add: %q: %w", rel, err)
			}
			idx.Stage(rel, id)
		}
		if err := r.WriteIndex(idx); err != nil {
			return fmt.Errorf("add: %w", err)
		}
		r.logger.Info("staged files", zap.Int("count", len(files)))
		return nil
	})
}

// Remove unstages each named path (a file, or every entry under a
// directory) and deletes the corresponding files from the working tree.
// A path matching no index entry fails with ErrNothingToRemove before
// anything is changed.
func (r *Repo) Remove(paths ...string) error {
	return r.withLock("rm", func() error {
		idx, err := r.ReadIndex()
		if err != nil {
			return fmt.Errorf("rm: %w", err)
		}

		var removed []string
		for _, p := range paths {
			rel, err := r.repoRelPath(p)
			if err != nil {
				return fmt.Errorf("rm: %w", err)
			}
			got := idx.Unstage(rel)
			if len(got) == 0 {
				return fmt.Errorf("rm %q: %w", p, ErrNothingToRemove)
			}
			removed = append(removed, got...)
		}

		if err := r.WriteIndex(idx); err != nil {
			return fmt.Errorf("rm: %w", err)
		}

		var errs error
		for _, rel := range removed {
			abs := r.absPath(rel)
			if err := os.Remove(abs); err != nil && !errors.Is(err, fs.ErrNotExist) {
				errs = multierr.Append(errs, err)
				continue
			}
			r.removeEmptyParents(filepath.Dir(abs))
		}
		if errs != nil {
			return fmt.Errorf("rm: %w", errs)
		}
		r.logger.Info("removed files", zap.Int("count", len(removed)))
		return nil
	})
}

func sortedKeys(m map[string]object.Hash) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
