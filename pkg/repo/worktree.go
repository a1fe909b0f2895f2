package repo

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/odvcencio/gitlet/pkg/object"
	"golang.org/x/sync/errgroup"
)

// walkFiles calls fn with the repository-relative path of every regular
// file under relDir ("." for the root), skipping ignored files and
// directories. Symlinks and other special files are not visited.
func (r *Repo) walkFiles(relDir string, ic *IgnoreChecker, fn func(rel string) error) error {
	return filepath.WalkDir(r.absPath(relDir), func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(r.RootDir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}
		if ic.IsIgnored(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		return fn(rel)
	})
}

// WorkingTree scans the working directory and returns the mapping from
// each non-ignored regular file to the blob id its content would have.
// Nothing is written to the object store.
func (r *Repo) WorkingTree() (map[string]object.Hash, error) {
	ic, err := r.ignoreChecker()
	if err != nil {
		return nil, fmt.Errorf("scan working tree: %w", err)
	}

	var paths []string
	err = r.walkFiles(".", ic, func(rel string) error {
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan working tree: %w", err)
	}

	out := make(map[string]object.Hash, len(paths))
	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, rel := range paths {
		g.Go(func() error {
			data, err := os.ReadFile(r.absPath(rel))
			if err != nil {
				return fmt.Errorf("hash %q: %w", rel, err)
			}
			id := object.HashObject(object.TypeBlob, data)
			mu.Lock()
			out[rel] = id
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scan working tree: %w", err)
	}
	return out, nil
}
