package object

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const missingHash = Hash("0000000000000000000000000000000000000000")

func TestHashObjectKnownValue(t *testing.T) {
	got := HashObject(TypeBlob, []byte("hello"))
	want := Hash("5b211494ba9e0f5c98ca51e8732bda579d8487ef")
	if got != want {
		t.Errorf("HashObject(blob, hello) = %s, want %s", got, want)
	}
	if len(got) != HashSize {
		t.Errorf("Hash length: got %d, want %d", len(got), HashSize)
	}
}

func TestHashObjectEnvelope(t *testing.T) {
	data := []byte("hello")
	h1 := HashObject(TypeBlob, data)
	h2 := HashObject(TypeBlob, data)
	if h1 != h2 {
		t.Error("HashObject not deterministic")
	}

	// Different type => different hash
	h3 := HashObject(TypeTree, data)
	if h1 == h3 {
		t.Error("Different types should produce different hashes")
	}
}

func TestIsHash(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"5b211494ba9e0f5c98ca51e8732bda579d8487ef", true},
		{"5B211494BA9E0F5C98CA51E8732BDA579D8487EF", false},
		{"5b211494", false},
		{"5b211494ba9e0f5c98ca51e8732bda579d8487efa", false},
		{"zb211494ba9e0f5c98ca51e8732bda579d8487ef", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsHash(tt.in); got != tt.want {
			t.Errorf("IsHash(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func tempStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	return NewStore(dir, nil)
}

func TestStorePutRead(t *testing.T) {
	s := tempStore(t)
	data := []byte("hello world")
	h, err := s.Put(TypeBlob, data)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	gotType, gotData, err := s.Read(h)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if gotType != TypeBlob {
		t.Errorf("Type: got %q, want %q", gotType, TypeBlob)
	}
	if !bytes.Equal(gotData, data) {
		t.Errorf("Data: got %q, want %q", gotData, data)
	}
}

func TestStoreFlatLayout(t *testing.T) {
	s := tempStore(t)
	h, err := s.Put(TypeBlob, []byte("hello"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(s.root, "objects", string(h)))
	if err != nil {
		t.Fatalf("expected object file: %v", err)
	}
	if want := []byte("blob\x00hello"); !bytes.Equal(raw, want) {
		t.Errorf("on-disk record = %q, want %q", raw, want)
	}
}

func TestStorePutIsIdempotent(t *testing.T) {
	s := tempStore(t)
	data := []byte("duplicate")
	h1, err := s.Put(TypeBlob, data)
	if err != nil {
		t.Fatalf("Put 1: %v", err)
	}
	path := filepath.Join(s.root, "objects", string(h1))
	before, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}

	h2, err := s.Put(TypeBlob, data)
	if err != nil {
		t.Fatalf("Put 2: %v", err)
	}
	if h1 != h2 {
		t.Errorf("Same content produced different hashes: %q vs %q", h1, h2)
	}
	after, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if !after.ModTime().Equal(before.ModTime()) {
		t.Error("second Put rewrote the object file")
	}
	got, err := s.Get(h2, TypeBlob)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("payload changed after second Put: %q", got)
	}
}

func TestStoreHas(t *testing.T) {
	s := tempStore(t)
	h, err := s.Put(TypeBlob, []byte("exists"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !s.Has(h) {
		t.Error("Has returned false for existing object")
	}
	if s.Has(missingHash) {
		t.Error("Has returned true for non-existing object")
	}
	if s.Has(Hash("../../etc/passwd")) {
		t.Error("Has accepted a non-hash id")
	}
}

func TestStoreReadMissing(t *testing.T) {
	s := tempStore(t)
	_, _, err := s.Read(missingHash)
	if !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("Read missing: got %v, want ErrObjectNotFound", err)
	}
	_, err = s.Get(Hash("not-a-hash"), TypeBlob)
	if !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("Get malformed id: got %v, want ErrObjectNotFound", err)
	}
}

func TestStoreGetTypeMismatch(t *testing.T) {
	s := tempStore(t)
	h, err := s.Put(TypeBlob, []byte("just a blob"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	_, err = s.Get(h, TypeTree)
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("Get(tree) on blob: got %v, want ErrTypeMismatch", err)
	}
	var tm *TypeMismatchError
	if !errors.As(err, &tm) {
		t.Fatalf("expected *TypeMismatchError, got %T", err)
	}
	if tm.Got != TypeBlob || tm.Want != TypeTree {
		t.Errorf("mismatch detail = %+v", tm)
	}

	if _, err := s.GetCommit(h); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("GetCommit on blob: got %v, want ErrTypeMismatch", err)
	}
}

func TestStoreReadCorrupt(t *testing.T) {
	s := tempStore(t)
	h := HashObject(TypeBlob, []byte("x"))
	if err := os.MkdirAll(filepath.Join(s.root, "objects"), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(s.root, "objects", string(h)), []byte("no separator"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, _, err := s.Read(h); !errors.Is(err, ErrCorruptObject) {
		t.Errorf("Read corrupt: got %v, want ErrCorruptObject", err)
	}
}

func TestStorePutGetBlob(t *testing.T) {
	s := tempStore(t)
	orig := &Blob{Data: []byte("blob content\nwith newlines")}
	h, err := s.PutBlob(orig)
	if err != nil {
		t.Fatalf("PutBlob: %v", err)
	}
	got, err := s.GetBlob(h)
	if err != nil {
		t.Fatalf("GetBlob: %v", err)
	}
	if !bytes.Equal(got.Data, orig.Data) {
		t.Errorf("Blob round-trip: got %q, want %q", got.Data, orig.Data)
	}
}

func TestStorePutGetTree(t *testing.T) {
	s := tempStore(t)
	blob, err := s.PutBlob(&Blob{Data: []byte("a")})
	if err != nil {
		t.Fatalf("PutBlob: %v", err)
	}
	sub, err := s.PutTree(&TreeObj{})
	if err != nil {
		t.Fatalf("PutTree(empty): %v", err)
	}
	if sub != Hash("d28c5ff92df044a522508a29cf3fad0b812f672f") {
		t.Errorf("empty tree id = %s", sub)
	}

	orig := &TreeObj{Entries: []TreeEntry{
		{Kind: TypeTree, Hash: sub, Name: "dir"},
		{Kind: TypeBlob, Hash: blob, Name: "a.txt"},
	}}
	h, err := s.PutTree(orig)
	if err != nil {
		t.Fatalf("PutTree: %v", err)
	}
	got, err := s.GetTree(h)
	if err != nil {
		t.Fatalf("GetTree: %v", err)
	}
	if len(got.Entries) != 2 {
		t.Fatalf("entries: got %d, want 2", len(got.Entries))
	}
	if got.Entries[0].Name != "a.txt" || got.Entries[1].Name != "dir" {
		t.Errorf("entries not sorted by name: %+v", got.Entries)
	}
}

func TestStorePutGetCommit(t *testing.T) {
	s := tempStore(t)
	tree, err := s.PutTree(&TreeObj{})
	if err != nil {
		t.Fatalf("PutTree: %v", err)
	}
	orig := &CommitObj{TreeHash: tree, Message: "initial commit"}
	h, err := s.PutCommit(orig)
	if err != nil {
		t.Fatalf("PutCommit: %v", err)
	}
	got, err := s.GetCommit(h)
	if err != nil {
		t.Fatalf("GetCommit: %v", err)
	}
	if got.TreeHash != tree || got.Message != orig.Message || len(got.Parents) != 0 {
		t.Errorf("Commit round-trip mismatch: %+v", got)
	}
}
