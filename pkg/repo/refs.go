package repo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/odvcencio/gitlet/pkg/object"
	"go.uber.org/zap"
)

const (
	HeadRef        = "HEAD"
	HeadsPrefix    = "refs/heads/"
	TagsPrefix     = "refs/tags/"
	symbolicPrefix = "ref: "
)

// RefKind distinguishes the two forms a ref file can take.
type RefKind int

const (
	RefDirect RefKind = iota
	RefSymbolic
)

// Ref is the decoded content of a ref file. For a direct ref Target is a
// commit id; for a symbolic ref it is another ref path, such as
// "refs/heads/master".
type Ref struct {
	Kind   RefKind
	Target string
}

func DirectRef(id object.Hash) Ref {
	return Ref{Kind: RefDirect, Target: string(id)}
}

func SymbolicRef(refPath string) Ref {
	return Ref{Kind: RefSymbolic, Target: refPath}
}

// String returns the on-disk encoding of the ref, without the trailing
// newline.
func (ref Ref) String() string {
	if ref.Kind == RefSymbolic {
		return symbolicPrefix + ref.Target
	}
	return ref.Target
}

func parseRef(data []byte) Ref {
	content := strings.TrimSpace(string(data))
	if target, ok := strings.CutPrefix(content, symbolicPrefix); ok {
		return SymbolicRef(strings.TrimSpace(target))
	}
	return Ref{Kind: RefDirect, Target: content}
}

func (r *Repo) refFile(refPath string) string {
	return filepath.Join(r.MetaDir, filepath.FromSlash(refPath))
}

// ReadRef reads the ref file at refPath (relative to .gitlet/, e.g. "HEAD"
// or "refs/tags/v1") without following symbolic refs.
func (r *Repo) ReadRef(refPath string) (Ref, error) {
	data, err := os.ReadFile(r.refFile(refPath))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Ref{}, fmt.Errorf("read ref %q: %w", refPath, ErrDanglingRef)
		}
		return Ref{}, fmt.Errorf("read ref %q: %w", refPath, err)
	}
	return parseRef(data), nil
}

// Head returns the name HEAD designates: the branch name when HEAD is
// symbolic, or the commit id when it is detached.
func (r *Repo) Head() (string, error) {
	ref, err := r.ReadRef(HeadRef)
	if err != nil {
		return "", fmt.Errorf("head: %w", err)
	}
	if ref.Kind == RefSymbolic {
		return path.Base(ref.Target), nil
	}
	return ref.Target, nil
}

// CurrentBranch returns the branch HEAD points at, or "" when HEAD is
// detached.
func (r *Repo) CurrentBranch() (string, error) {
	ref, err := r.ReadRef(HeadRef)
	if err != nil {
		return "", fmt.Errorf("current branch: %w", err)
	}
	if ref.Kind == RefSymbolic && strings.HasPrefix(ref.Target, HeadsPrefix) {
		return strings.TrimPrefix(ref.Target, HeadsPrefix), nil
	}
	return "", nil
}

// Resolve follows symbolic refs starting at refPath until it reaches a
// direct ref and returns its commit id. Revisiting a ref reports
// ErrSymbolicRefCycle; a missing file anywhere on the chain reports
// ErrDanglingRef.
func (r *Repo) Resolve(refPath string) (object.Hash, error) {
	seen := make(map[string]bool)
	cur := refPath
	for {
		if seen[cur] {
			return "", fmt.Errorf("resolve %q: %w at %q", refPath, ErrSymbolicRefCycle, cur)
		}
		seen[cur] = true

		ref, err := r.ReadRef(cur)
		if err != nil {
			return "", err
		}
		if ref.Kind == RefDirect {
			return object.Hash(ref.Target), nil
		}
		cur = ref.Target
	}
}

// terminalRef follows symbolic refs from refPath and returns the path of
// the last ref in the chain. The terminal ref file need not exist yet.
func (r *Repo) terminalRef(refPath string) (string, error) {
	seen := make(map[string]bool)
	cur := refPath
	for {
		if seen[cur] {
			return "", fmt.Errorf("resolve %q: %w at %q", refPath, ErrSymbolicRefCycle, cur)
		}
		seen[cur] = true

		ref, err := r.ReadRef(cur)
		if err != nil {
			if errors.Is(err, ErrDanglingRef) {
				return cur, nil
			}
			return "", err
		}
		if ref.Kind == RefDirect {
			return cur, nil
		}
		cur = ref.Target
	}
}

// Retarget moves the ref at the end of refPath's symbolic chain to id. With
// HEAD on a branch this moves the branch; with HEAD detached it moves HEAD.
func (r *Repo) Retarget(refPath string, id object.Hash) error {
	return r.retarget(refPath, id, "update")
}

func (r *Repo) retarget(refPath string, id object.Hash, reason string) error {
	term, err := r.terminalRef(refPath)
	if err != nil {
		return fmt.Errorf("retarget %q: %w", refPath, err)
	}
	if err := r.writeRef(term, DirectRef(id), reason); err != nil {
		return fmt.Errorf("retarget %q: %w", refPath, err)
	}
	return nil
}

// Point overwrites the ref at refPath. A branch name makes it a symbolic
// ref to that branch; a commit id makes it a direct ref.
func (r *Repo) Point(refPath, nameOrID string) error {
	return r.point(refPath, nameOrID, "point")
}

func (r *Repo) point(refPath, nameOrID, reason string) error {
	var ref Ref
	switch {
	case r.IsBranch(nameOrID):
		ref = SymbolicRef(HeadsPrefix + nameOrID)
	case object.IsHash(nameOrID):
		ref = DirectRef(object.Hash(nameOrID))
	default:
		return fmt.Errorf("point %q at %q: %w", refPath, nameOrID, ErrUnresolvedRef)
	}
	if err := r.writeRef(refPath, ref, reason); err != nil {
		return fmt.Errorf("point %q: %w", refPath, err)
	}
	return nil
}

// Create writes a new direct ref. It fails with ErrRefAlreadyExists if a
// ref file is already present at refPath.
func (r *Repo) Create(refPath string, id object.Hash) error {
	return r.create(refPath, id, "create")
}

func (r *Repo) create(refPath string, id object.Hash, reason string) error {
	if _, err := os.Lstat(r.refFile(refPath)); err == nil {
		return fmt.Errorf("create %q: %w", refPath, ErrRefAlreadyExists)
	}
	if err := r.writeRef(refPath, DirectRef(id), reason); err != nil {
		return fmt.Errorf("create %q: %w", refPath, err)
	}
	return nil
}

// ResolveName turns a user-supplied token into a commit id. Precedence is
// HEAD, a literal 40-hex id, a tag, then a branch.
func (r *Repo) ResolveName(token string) (object.Hash, error) {
	switch {
	case token == HeadRef:
		return r.Resolve(HeadRef)
	case object.IsHash(token):
		return object.Hash(token), nil
	case r.IsTag(token):
		return r.Resolve(TagsPrefix + token)
	case r.IsBranch(token):
		return r.Resolve(HeadsPrefix + token)
	}
	return "", fmt.Errorf("%q: %w", token, ErrUnresolvedRef)
}

// resolvesToBranch reports whether ResolveName(token) goes through a
// branch rather than HEAD, an id or a tag.
func (r *Repo) resolvesToBranch(token string) bool {
	return token != HeadRef && !object.IsHash(token) && !r.IsTag(token) && r.IsBranch(token)
}

// writeRef atomically replaces the ref file and then records the move,
// with the resolved commit before and after, in the ref's log. The ref
// file is the only thing that decides success: a failed log append is
// reported as a warning.
func (r *Repo) writeRef(refPath string, ref Ref, reason string) error {
	oldID, _ := r.Resolve(refPath)

	if err := writeFileAtomic(r.refFile(refPath), []byte(ref.String()+"\n"), 0o644); err != nil {
		return err
	}

	newID, _ := r.Resolve(refPath)
	if err := r.recordRefMove(refPath, oldID, newID, reason); err != nil {
		r.logger.Warn("reflog not updated",
			zap.String("ref", refPath),
			zap.Error(err),
		)
	}
	r.logger.Debug("ref updated",
		zap.String("ref", refPath),
		zap.String("value", ref.String()),
		zap.String("reason", reason),
	)
	return nil
}

func isRegularFile(p string) bool {
	info, err := os.Lstat(p)
	return err == nil && info.Mode().IsRegular()
}

// validateRefName checks a branch or tag name. Names are single path
// components so that HEAD's basename is always the branch name.
func validateRefName(name string) error {
	switch {
	case name == "", name == HeadRef, name == ".", name == "..":
		return fmt.Errorf("%q: %w", name, ErrInvalidRefName)
	case object.IsHash(name):
		return fmt.Errorf("%q looks like a commit id: %w", name, ErrInvalidRefName)
	case strings.ContainsAny(name, "/\\ \t\n\r:~^?*["):
		return fmt.Errorf("%q: %w", name, ErrInvalidRefName)
	case strings.HasPrefix(name, "-"), strings.HasSuffix(name, ".lock"):
		return fmt.Errorf("%q: %w", name, ErrInvalidRefName)
	}
	return nil
}
