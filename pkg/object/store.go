package object

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Store is a content-addressed object store with a flat layout:
// objects/<id>. Records are "type\0content" and are never rewritten.
type Store struct {
	root   string
	logger *zap.Logger
}

// NewStore creates a Store rooted at the given directory. The objects/
// subdirectory is created lazily on first write. A nil logger is replaced
// with a no-op logger.
func NewStore(root string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{root: root, logger: logger}
}

// objectPath returns the filesystem path for a given hash.
func (s *Store) objectPath(h Hash) string {
	return filepath.Join(s.root, "objects", string(h))
}

// Has reports whether the store contains an object with the given hash.
func (s *Store) Has(h Hash) bool {
	if !IsHash(string(h)) {
		return false
	}
	_, err := os.Stat(s.objectPath(h))
	return err == nil
}

// Put stores an object and returns its content hash. Storing content that
// is already present is a no-op. Writes are atomic: data is written to a
// temp file and then renamed into place.
func (s *Store) Put(objType ObjectType, data []byte) (Hash, error) {
	h := HashObject(objType, data)

	// Fast path: already exists.
	if s.Has(h) {
		return h, nil
	}

	raw := make([]byte, 0, len(objType)+1+len(data))
	raw = append(raw, objType...)
	raw = append(raw, 0)
	raw = append(raw, data...)

	dir := filepath.Join(s.root, "objects")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("object write mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("object write tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("object write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("object write close: %w", err)
	}

	if err := os.Rename(tmpName, s.objectPath(h)); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("object write rename: %w", err)
	}

	s.logger.Debug("object written",
		zap.String("type", string(objType)),
		zap.String("id", string(h)),
		zap.Int("size", len(data)),
	)
	return h, nil
}

// Read retrieves an object by hash, returning its type and raw content.
func (s *Store) Read(h Hash) (ObjectType, []byte, error) {
	if !IsHash(string(h)) {
		return "", nil, fmt.Errorf("object read %q: %w", h, ErrObjectNotFound)
	}
	raw, err := os.ReadFile(s.objectPath(h))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil, fmt.Errorf("object read %s: %w", h, ErrObjectNotFound)
		}
		return "", nil, fmt.Errorf("object read %s: %w", h, err)
	}

	nulIdx := bytes.IndexByte(raw, 0)
	if nulIdx < 0 {
		return "", nil, fmt.Errorf("object read %s: %w: no type separator", h, ErrCorruptObject)
	}
	return ObjectType(raw[:nulIdx]), raw[nulIdx+1:], nil
}

// Get reads an object and checks that it was stored with the expected type.
func (s *Store) Get(h Hash, want ObjectType) ([]byte, error) {
	got, data, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if got != want {
		return nil, &TypeMismatchError{Hash: h, Got: got, Want: want}
	}
	return data, nil
}

// ---------------------------------------------------------------------------
// Typed convenience methods
// ---------------------------------------------------------------------------

// PutBlob stores a Blob.
func (s *Store) PutBlob(b *Blob) (Hash, error) {
	return s.Put(TypeBlob, b.Data)
}

// GetBlob reads a Blob.
func (s *Store) GetBlob(h Hash) (*Blob, error) {
	data, err := s.Get(h, TypeBlob)
	if err != nil {
		return nil, err
	}
	return &Blob{Data: data}, nil
}

// PutTree serializes and stores a TreeObj.
func (s *Store) PutTree(tr *TreeObj) (Hash, error) {
	return s.Put(TypeTree, MarshalTree(tr))
}

// GetTree reads and deserializes a TreeObj.
func (s *Store) GetTree(h Hash) (*TreeObj, error) {
	data, err := s.Get(h, TypeTree)
	if err != nil {
		return nil, err
	}
	tr, err := UnmarshalTree(data)
	if err != nil {
		return nil, fmt.Errorf("object %s: %w", h, err)
	}
	return tr, nil
}

// PutCommit serializes and stores a CommitObj.
func (s *Store) PutCommit(c *CommitObj) (Hash, error) {
	return s.Put(TypeCommit, MarshalCommit(c))
}

// GetCommit reads and deserializes a CommitObj.
func (s *Store) GetCommit(h Hash) (*CommitObj, error) {
	data, err := s.Get(h, TypeCommit)
	if err != nil {
		return nil, err
	}
	c, err := UnmarshalCommit(data)
	if err != nil {
		return nil, fmt.Errorf("object %s: %w", h, err)
	}
	return c, nil
}
