package repo

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// IgnoreChecker decides whether a repository-relative path is excluded
// from working-tree scans. Each pattern is a regular expression that must
// match the whole slash-separated path. The metadata directory is always
// ignored.
type IgnoreChecker struct {
	patterns []*regexp.Regexp
}

// NewIgnoreChecker compiles the given patterns. Blank patterns are
// skipped.
func NewIgnoreChecker(patterns []string) (*IgnoreChecker, error) {
	ic := &IgnoreChecker{}
	for _, p := range patterns {
		if strings.TrimSpace(p) == "" {
			continue
		}
		re, err := regexp.Compile(`^(?:` + p + `)$`)
		if err != nil {
			return nil, fmt.Errorf("ignore pattern %q: %w", p, err)
		}
		ic.patterns = append(ic.patterns, re)
	}
	return ic, nil
}

// LoadIgnoreChecker reads one pattern per line from the file at path. A
// missing file yields a checker that only ignores the metadata directory.
func LoadIgnoreChecker(path string) (*IgnoreChecker, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &IgnoreChecker{}, nil
		}
		return nil, fmt.Errorf("read ignore file: %w", err)
	}

	var patterns []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		patterns = append(patterns, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ignore file: %w", err)
	}
	ic, err := NewIgnoreChecker(patterns)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return ic, nil
}

// IsIgnored reports whether rel should be skipped.
func (ic *IgnoreChecker) IsIgnored(rel string) bool {
	if isMetaPath(rel) {
		return true
	}
	if ic == nil {
		return false
	}
	for _, re := range ic.patterns {
		if re.MatchString(rel) {
			return true
		}
	}
	return false
}

func (r *Repo) ignoreChecker() (*IgnoreChecker, error) {
	return LoadIgnoreChecker(filepath.Join(r.RootDir, filepath.FromSlash(r.Config.Core.IgnoreFile)))
}
