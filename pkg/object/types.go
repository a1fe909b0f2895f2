package object

// Hash is a 40-character hex-encoded SHA-1 digest.
type Hash string

// ObjectType identifies the kind of object stored.
type ObjectType string

const (
	TypeBlob   ObjectType = "blob"
	TypeTree   ObjectType = "tree"
	TypeCommit ObjectType = "commit"
)

// Valid reports whether t is one of the known object types.
func (t ObjectType) Valid() bool {
	switch t {
	case TypeBlob, TypeTree, TypeCommit:
		return true
	}
	return false
}

// Blob holds raw file data.
type Blob struct {
	Data []byte
}

// TreeEntry is one direct child of a tree object.
type TreeEntry struct {
	Kind ObjectType // TypeBlob or TypeTree
	Hash Hash
	Name string
}

// TreeObj holds the entries of one directory level.
type TreeObj struct {
	Entries []TreeEntry // sorted by Name when marshalled
}

// CommitObj represents a commit pointing to a tree.
type CommitObj struct {
	TreeHash Hash
	Parents  []Hash
	Message  string
}
