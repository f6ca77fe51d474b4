package sync

import (
	"errors"
	"fmt"
	"os"
)

// Decide compares a source file against its replica counterpart and reports
// whether the replica copy is stale. Checks are ordered cheapest first:
// existence, then byte length, then a full content hash.
func Decide(sourcePath, replicaPath string) (Decision, error) {
	srcInfo, err := os.Stat(sourcePath)
	if err != nil {
		return Decision{}, fmt.Errorf("stat source %s: %w", sourcePath, err)
	}

	dstInfo, err := os.Stat(replicaPath)
	if errors.Is(err, os.ErrNotExist) {
		return Decision{ShouldCopy: true, Reason: ReasonNewFile}, nil
	}
	if err != nil {
		return Decision{}, fmt.Errorf("stat replica %s: %w", replicaPath, err)
	}

	if srcInfo.Size() != dstInfo.Size() {
		return Decision{ShouldCopy: true, Reason: ReasonSizeDifference}, nil
	}

	srcHash, err := fileHash(sourcePath)
	if err != nil {
		return Decision{}, fmt.Errorf("hash source %s: %w", sourcePath, err)
	}
	dstHash, err := fileHash(replicaPath)
	if err != nil {
		return Decision{}, fmt.Errorf("hash replica %s: %w", replicaPath, err)
	}

	if srcHash != dstHash {
		return Decision{ShouldCopy: true, Reason: ReasonHashDifference}, nil
	}

	return Decision{Reason: ReasonIdentical}, nil
}
