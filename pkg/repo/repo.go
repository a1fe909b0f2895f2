package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/odvcencio/gitlet/pkg/object"
	"go.uber.org/zap"
)

// MetaDirName is the name of the repository metadata directory.
const MetaDirName = ".gitlet"

// Repo represents an opened gitlet repository.
type Repo struct {
	RootDir string        // working directory root
	MetaDir string        // .gitlet/ directory
	WorkDir string        // directory user-supplied relative paths resolve against
	Store   *object.Store // content-addressed object store
	Config  *Config

	logger *zap.Logger
}

// Option configures Init and Open.
type Option func(*options)

type options struct {
	logger        *zap.Logger
	workDir       string
	defaultBranch string
}

// WithLogger sets the logger used by the repository and its object store.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithWorkDir sets the directory that relative paths passed to Add and
// Remove are resolved against. It defaults to the repository root.
func WithWorkDir(dir string) Option {
	return func(o *options) {
		o.workDir = dir
	}
}

// WithDefaultBranch sets the name of the branch Init creates. It is ignored
// by Open.
func WithDefaultBranch(name string) Option {
	return func(o *options) {
		o.defaultBranch = name
	}
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return o
}

// FindRoot walks upward from startDir looking for a directory that contains
// a .gitlet/ metadata directory. It touches nothing but stat calls.
func FindRoot(startDir string) (string, bool) {
	cur, err := canonicalPath(startDir)
	if err != nil {
		return "", false
	}
	for {
		info, err := os.Stat(filepath.Join(cur, MetaDirName))
		if err == nil && info.IsDir() {
			return cur, true
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return "", false
		}
		cur = parent
	}
}

// Open opens the repository whose root is exactly root. Use FindRoot to
// locate the root from a nested directory.
func Open(root string, opts ...Option) (*Repo, error) {
	o := newOptions(opts)

	abs, err := canonicalPath(root)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	metaDir := filepath.Join(abs, MetaDirName)
	info, err := os.Stat(metaDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("open %s: %w", abs, ErrNotInitialized)
	}

	cfg, err := ReadConfig(metaDir)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	return newRepo(abs, metaDir, cfg, o)
}

func newRepo(root, metaDir string, cfg *Config, o *options) (*Repo, error) {
	workDir := root
	if o.workDir != "" {
		wd, err := canonicalPath(o.workDir)
		if err != nil {
			return nil, fmt.Errorf("work dir: %w", err)
		}
		workDir = wd
	}
	return &Repo{
		RootDir: root,
		MetaDir: metaDir,
		WorkDir: workDir,
		Store:   object.NewStore(metaDir, o.logger.Named("object")),
		Config:  cfg,
		logger:  o.logger,
	}, nil
}

// canonicalPath returns an absolute path with symlinks resolved where
// possible, so that paths from os.Getwd and from callers compare equal.
func canonicalPath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

// absPath converts a repository-relative slash path into a filesystem path.
func (r *Repo) absPath(rel string) string {
	return filepath.Join(r.RootDir, filepath.FromSlash(rel))
}

// repoRelPath converts a path (absolute, or relative to WorkDir) into a
// slash-separated path relative to the repository root. The root itself is
// returned as ".".
func (r *Repo) repoRelPath(p string) (string, error) {
	abs := p
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(r.WorkDir, abs)
	}
	abs = filepath.Clean(abs)

	rel, err := filepath.Rel(r.RootDir, abs)
	if err != nil {
		return "", fmt.Errorf("%q: %w", p, ErrPathOutsideRepository)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%q: %w", p, ErrPathOutsideRepository)
	}
	rel = filepath.ToSlash(rel)
	if isMetaPath(rel) {
		return "", fmt.Errorf("%q is inside %s: %w", p, MetaDirName, ErrPathOutsideRepository)
	}
	return rel, nil
}

func isMetaPath(rel string) bool {
	return rel == MetaDirName || strings.HasPrefix(rel, MetaDirName+"/")
}

// removeEmptyParents removes empty directories up to (but not including)
// the repository root.
func (r *Repo) removeEmptyParents(dir string) {
	for {
		if dir == r.RootDir || !strings.HasPrefix(dir, r.RootDir+string(filepath.Separator)) {
			return
		}

		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}

		os.Remove(dir)
		dir = filepath.Dir(dir)
	}
}
