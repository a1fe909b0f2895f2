package repo

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithLock_TimesOutWhenHeld(t *testing.T) {
	r := newTestRepo(t)
	r.Config.Core.LockTimeout = Duration{50 * time.Millisecond}

	other := flock.New(filepath.Join(r.MetaDir, lockFileName))
	locked, err := other.TryLock()
	require.NoError(t, err)
	require.True(t, locked)
	defer other.Unlock()

	writeFile(t, r, "a.txt", "hello")
	err = r.Add("a.txt")
	require.ErrorIs(t, err, ErrLockTimeout)

	idx, err := r.ReadIndex()
	require.NoError(t, err)
	assert.Empty(t, idx.Entries)
}

func TestWithLock_ReleasedAfterUse(t *testing.T) {
	r := newTestRepo(t)
	called := 0
	for i := 0; i < 3; i++ {
		require.NoError(t, r.withLock("test", func() error {
			called++
			return nil
		}))
	}
	assert.Equal(t, 3, called)
}
