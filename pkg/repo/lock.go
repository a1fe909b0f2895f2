package repo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	lockFileName   = "lock"
	lockRetryDelay = 10 * time.Millisecond
)

// withLock runs fn while holding the advisory lock on .gitlet/lock. Every
// mutating operation goes through here exactly once; fn must not call
// another locking method.
func (r *Repo) withLock(op string, fn func() error) (err error) {
	timeout := r.Config.Core.LockTimeout.Duration
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	path := filepath.Join(r.MetaDir, lockFileName)
	fl := flock.New(path)
	locked, lockErr := fl.TryLockContext(ctx, lockRetryDelay)
	if lockErr != nil && !errors.Is(lockErr, context.DeadlineExceeded) {
		return fmt.Errorf("%s: lock %s: %w", op, path, lockErr)
	}
	if !locked {
		return fmt.Errorf("%s: %w after %s", op, ErrLockTimeout, timeout)
	}
	r.logger.Debug("lock acquired", zap.String("op", op))

	defer func() {
		err = multierr.Append(err, fl.Unlock())
	}()
	return fn()
}
