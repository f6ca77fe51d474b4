package sync

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"
)

// fileHash streams the entire file through md5 and returns the hex digest.
// The digest is a content fingerprint for change detection, not a security
// boundary.
func fileHash(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}

// copyFile copies src to dst, truncating any existing file at dst.
// Returns the number of bytes written.
func copyFile(src, dst string) (int64, error) {
	srcFile, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return 0, err
	}

	written, err := io.Copy(dstFile, srcFile)
	if err != nil {
		dstFile.Close()
		return written, err
	}

	return written, dstFile.Close()
}
