package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Init creates a new repository at path. It lays out .gitlet/ (objects/,
// refs/heads/, refs/tags/, config.toml, an empty index), records the
// "initial commit" of the empty tree, creates the default branch at it and
// points HEAD at the branch. It fails with ErrAlreadyInitialized if a
// .gitlet/ directory already exists.
func Init(path string, opts ...Option) (*Repo, error) {
	o := newOptions(opts)

	root, err := canonicalPath(path)
	if err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	metaDir := filepath.Join(root, MetaDirName)
	if _, err := os.Stat(metaDir); err == nil {
		return nil, fmt.Errorf("init %s: %w", root, ErrAlreadyInitialized)
	}

	cfg := DefaultConfig()
	if o.defaultBranch != "" {
		cfg.Core.DefaultBranch = o.defaultBranch
	}
	branch := cfg.Core.DefaultBranch
	if err := validateRefName(branch); err != nil {
		return nil, fmt.Errorf("init: default branch: %w", err)
	}

	dirs := []string{
		filepath.Join(metaDir, "objects"),
		filepath.Join(metaDir, "refs", "heads"),
		filepath.Join(metaDir, "refs", "tags"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("init: mkdir %s: %w", d, err)
		}
	}
	if err := WriteConfig(metaDir, cfg); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	r, err := newRepo(root, metaDir, cfg, o)
	if err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	idx := NewIndex()
	if err := r.WriteIndex(idx); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	tree, err := r.WriteTree(idx)
	if err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	commit, err := r.WriteCommit(tree, initialCommitMessage)
	if err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	if err := r.writeRef(HeadsPrefix+branch, DirectRef(commit), "init"); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	if err := r.writeRef(HeadRef, SymbolicRef(HeadsPrefix+branch), "init"); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	r.logger.Info("initialized repository",
		zap.String("root", root),
		zap.String("branch", branch),
		zap.String("commit", string(commit)),
	)
	return r, nil
}
