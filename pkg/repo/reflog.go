package repo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/odvcencio/gitlet/pkg/object"
	"go.uber.org/zap"
)

// nullID stands in for "no commit" on either side of a reflog entry, such
// as the old value of a ref that was just created.
var nullID = object.Hash(strings.Repeat("0", object.HashSize))

// ReflogEntry is one recorded move of a ref. Stored as a single line:
//
//	<old> <new> <unix-seconds> <reason>
type ReflogEntry struct {
	Ref    string
	Old    object.Hash
	New    object.Hash
	Time   time.Time
	Reason string
}

func (e ReflogEntry) line() string {
	return fmt.Sprintf("%s %s %d %s\n", orNullID(e.Old), orNullID(e.New), e.Time.Unix(), e.Reason)
}

func orNullID(id object.Hash) object.Hash {
	if id == "" {
		return nullID
	}
	return id
}

func parseReflogEntry(ref, line string) (ReflogEntry, error) {
	fields := strings.SplitN(line, " ", 4)
	if len(fields) != 4 {
		return ReflogEntry{}, fmt.Errorf("want 4 fields, got %d", len(fields))
	}
	for _, id := range fields[:2] {
		if !object.IsHash(id) {
			return ReflogEntry{}, fmt.Errorf("bad id %q", id)
		}
	}
	secs, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return ReflogEntry{}, fmt.Errorf("bad time %q", fields[2])
	}
	return ReflogEntry{
		Ref:    ref,
		Old:    object.Hash(fields[0]),
		New:    object.Hash(fields[1]),
		Time:   time.Unix(secs, 0),
		Reason: fields[3],
	}, nil
}

func (r *Repo) reflogPath(refPath string) string {
	return filepath.Join(r.MetaDir, "logs", filepath.FromSlash(refPath))
}

// recordRefMove appends one entry to refPath's log.
func (r *Repo) recordRefMove(refPath string, oldID, newID object.Hash, reason string) error {
	reason = strings.Join(strings.Fields(reason), " ")
	if reason == "" {
		reason = "update"
	}
	entry := ReflogEntry{Ref: refPath, Old: oldID, New: newID, Time: time.Now(), Reason: reason}

	p := r.reflogPath(refPath)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(entry.line()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadReflog returns up to limit entries of a ref's log, newest first. A
// non-positive limit returns all of them. name may be empty or "HEAD", a
// full "refs/..." path, or a branch or tag name; a ref that was never
// written has an empty log. Malformed lines are skipped with a warning.
func (r *Repo) ReadReflog(name string, limit int) ([]ReflogEntry, error) {
	refPath := r.reflogTarget(name)
	data, err := os.ReadFile(r.reflogPath(refPath))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reflog %s: %w", refPath, err)
	}

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	var out []ReflogEntry
	for i := len(lines) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		if lines[i] == "" {
			continue
		}
		e, err := parseReflogEntry(refPath, lines[i])
		if err != nil {
			r.logger.Warn("skipping malformed reflog line",
				zap.String("ref", refPath),
				zap.Int("line", i+1),
				zap.Error(err),
			)
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// reflogTarget maps a user-supplied name to the ref whose log to read. A
// bare name means the branch, or the tag when only a tag has that name.
func (r *Repo) reflogTarget(name string) string {
	switch {
	case name == "" || name == HeadRef:
		return HeadRef
	case strings.HasPrefix(name, "refs/"):
		return name
	case !r.IsBranch(name) && r.IsTag(name):
		return TagsPrefix + name
	}
	return HeadsPrefix + name
}
