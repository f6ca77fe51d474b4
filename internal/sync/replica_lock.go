package sync

import (
	"errors"
	"fmt"
	"os"

	"github.com/Ricardoipr/foldersynch/internal/utils"
	"github.com/gofrs/flock"
)

const lockSuffix = ".foldersynch.lock"

var ErrReplicaLocked = errors.New("replica locked by another process")

// ReplicaLock guards a replica directory against concurrent mirroring by a
// second process. The lock file lives next to the replica root, not inside
// it, so the prune pass never sees it.
type ReplicaLock struct {
	flock *flock.Flock
}

func NewReplicaLock(replicaDir string) *ReplicaLock {
	return &ReplicaLock{
		flock: flock.New(replicaDir + lockSuffix),
	}
}

func (l *ReplicaLock) Lock() error {
	if err := utils.EnsureParent(l.flock.Path()); err != nil {
		return fmt.Errorf("create lock file directory: %w", err)
	}

	locked, err := l.flock.TryLock()
	if err != nil {
		return fmt.Errorf("lock replica: %w", err)
	}
	if !locked {
		return ErrReplicaLocked
	}

	return nil
}

func (l *ReplicaLock) Unlock() error {
	// if this process hasn't locked the replica, don't delete the lock file
	if !l.flock.Locked() {
		return nil
	}

	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("unlock replica: %w", err)
	}

	return os.Remove(l.flock.Path())
}
