package sync

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplicaLock_SecondLockerRejected(t *testing.T) {
	replicaDir := filepath.Join(t.TempDir(), "replica")

	first := NewReplicaLock(replicaDir)
	require.NoError(t, first.Lock())
	t.Cleanup(func() { first.Unlock() })

	second := NewReplicaLock(replicaDir)
	err := second.Lock()
	assert.ErrorIs(t, err, ErrReplicaLocked)
}

func TestReplicaLock_UnlockRemovesLockFile(t *testing.T) {
	replicaDir := filepath.Join(t.TempDir(), "replica")

	lock := NewReplicaLock(replicaDir)
	require.NoError(t, lock.Lock())
	assert.FileExists(t, replicaDir+lockSuffix)

	require.NoError(t, lock.Unlock())
	assert.NoFileExists(t, replicaDir+lockSuffix)

	// relockable after release
	require.NoError(t, lock.Lock())
	require.NoError(t, lock.Unlock())
}

func TestReplicaLock_UnlockWithoutLockIsNoop(t *testing.T) {
	lock := NewReplicaLock(filepath.Join(t.TempDir(), "replica"))
	assert.NoError(t, lock.Unlock())
}
