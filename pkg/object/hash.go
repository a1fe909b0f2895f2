package object

import (
	"crypto/sha1"
	"encoding/hex"
)

// HashSize is the length of a hex-encoded object id.
const HashSize = 2 * sha1.Size

// HashObject computes the SHA-1 of the record "type\0content" without
// writing anything.
func HashObject(objType ObjectType, data []byte) Hash {
	h := sha1.New()
	h.Write([]byte(objType))
	h.Write([]byte{0})
	h.Write(data)
	return Hash(hex.EncodeToString(h.Sum(nil)))
}

// IsHash reports whether s has the shape of an object id: exactly 40
// lowercase hex digits.
func IsHash(s string) bool {
	if len(s) != HashSize {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
