package object

import (
	"errors"
	"fmt"
)

var (
	ErrObjectNotFound = errors.New("object not found")
	ErrTypeMismatch   = errors.New("object type mismatch")
	ErrCorruptObject  = errors.New("corrupt object")
)

// TypeMismatchError reports that an object was stored with a different type
// than the caller asked for.
type TypeMismatchError struct {
	Hash Hash
	Got  ObjectType
	Want ObjectType
}

func (e *TypeMismatchError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("object %s: %s: got %q, want %q", e.Hash, ErrTypeMismatch, e.Got, e.Want)
}

func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}
