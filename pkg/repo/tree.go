package repo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/odvcencio/gitlet/pkg/object"
)

// TreeLine is one file of a flattened tree.
type TreeLine struct {
	ID   object.Hash
	Path string
}

// WriteTree stores one tree object per directory implied by the index and
// returns the id of the root tree. Directories are emitted deepest first,
// so every subtree id is known before its parent is written.
func (r *Repo) WriteTree(idx *Index) (object.Hash, error) {
	dirs := map[string]*object.TreeObj{"": {}}
	for p, id := range idx.Entries {
		dir, name := splitPath(p)
		ensureDir(dirs, dir)
		dirs[dir].Entries = append(dirs[dir].Entries, object.TreeEntry{
			Kind: object.TypeBlob,
			Hash: id,
			Name: name,
		})
	}
	for p := range idx.Entries {
		if _, ok := dirs[p]; ok {
			return "", fmt.Errorf("write tree: %q is both a file and a directory", p)
		}
	}

	order := make([]string, 0, len(dirs))
	for dir := range dirs {
		order = append(order, dir)
	}
	sort.Slice(order, func(i, j int) bool {
		di, dj := pathDepth(order[i]), pathDepth(order[j])
		if di != dj {
			return di > dj
		}
		return order[i] < order[j]
	})

	var root object.Hash
	for _, dir := range order {
		id, err := r.Store.PutTree(dirs[dir])
		if err != nil {
			return "", fmt.Errorf("write tree %q: %w", dir, err)
		}
		if dir == "" {
			root = id
			continue
		}
		parent, name := splitPath(dir)
		dirs[parent].Entries = append(dirs[parent].Entries, object.TreeEntry{
			Kind: object.TypeTree,
			Hash: id,
			Name: name,
		})
	}
	return root, nil
}

// ReadTree expands a tree into the flat mapping path -> blob id.
func (r *Repo) ReadTree(id object.Hash) (map[string]object.Hash, error) {
	type pending struct {
		prefix string
		id     object.Hash
	}

	out := make(map[string]object.Hash)
	stack := []pending{{prefix: "", id: id}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		tr, err := r.Store.GetTree(cur.id)
		if err != nil {
			return nil, fmt.Errorf("read tree: %w", err)
		}
		for _, e := range tr.Entries {
			full := e.Name
			if cur.prefix != "" {
				full = cur.prefix + "/" + e.Name
			}
			switch e.Kind {
			case object.TypeBlob:
				out[full] = e.Hash
			case object.TypeTree:
				stack = append(stack, pending{prefix: full, id: e.Hash})
			}
		}
	}
	return out, nil
}

// ListTree returns the files of a tree sorted by path.
func (r *Repo) ListTree(id object.Hash) ([]TreeLine, error) {
	files, err := r.ReadTree(id)
	if err != nil {
		return nil, err
	}
	lines := make([]TreeLine, 0, len(files))
	for _, p := range sortedKeys(files) {
		lines = append(lines, TreeLine{ID: files[p], Path: p})
	}
	return lines, nil
}

// commitTree returns the flattened tree of a commit.
func (r *Repo) commitTree(id object.Hash) (map[string]object.Hash, error) {
	c, err := r.ReadCommit(id)
	if err != nil {
		return nil, err
	}
	return r.ReadTree(c.TreeHash)
}

// splitPath splits "a/b/c" into ("a/b", "c"). Top-level names have dir "".
func splitPath(p string) (dir, name string) {
	i := strings.LastIndexByte(p, '/')
	if i < 0 {
		return "", p
	}
	return p[:i], p[i+1:]
}

func ensureDir(dirs map[string]*object.TreeObj, dir string) {
	for dir != "" {
		if _, ok := dirs[dir]; ok {
			return
		}
		dirs[dir] = &object.TreeObj{}
		dir, _ = splitPath(dir)
	}
}

func pathDepth(p string) int {
	if p == "" {
		return 0
	}
	return strings.Count(p, "/") + 1
}
