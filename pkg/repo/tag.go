package repo

import (
	"fmt"

	"github.com/odvcencio/gitlet/pkg/object"
)

// IsTag reports whether a tag with the given name exists.
func (r *Repo) IsTag(name string) bool {
	if validateRefName(name) != nil {
		return false
	}
	return isRegularFile(r.refFile(TagsPrefix + name))
}

// CreateTag creates a lightweight tag under refs/tags/. Tags never move:
// creating an existing tag fails with ErrRefAlreadyExists.
func (r *Repo) CreateTag(name string, target object.Hash) error {
	if err := validateRefName(name); err != nil {
		return fmt.Errorf("create tag: %w", err)
	}
	return r.withLock("create tag", func() error {
		if _, err := r.Store.GetCommit(target); err != nil {
			return fmt.Errorf("create tag %q: %w", name, err)
		}
		if err := r.create(TagsPrefix+name, target, "tag"); err != nil {
			return fmt.Errorf("create tag: %w", err)
		}
		return nil
	})
}

// ListTags returns tag names sorted alphabetically.
func (r *Repo) ListTags() ([]string, error) {
	return r.listRefNames(TagsPrefix)
}

// ListTagsWithHashes returns tag name -> commit id.
func (r *Repo) ListTagsWithHashes() (map[string]object.Hash, error) {
	names, err := r.ListTags()
	if err != nil {
		return nil, err
	}
	out := make(map[string]object.Hash, len(names))
	for _, name := range names {
		id, err := r.Resolve(TagsPrefix + name)
		if err != nil {
			return nil, fmt.Errorf("list tags: %w", err)
		}
		out[name] = id
	}
	return out, nil
}
