package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantError bool
	}{
		{
			name:      "empty path",
			input:     "",
			wantError: true,
		},
		{
			name:      "relative path",
			input:     "./replica",
			wantError: false,
		},
		{
			name:      "absolute path",
			input:     "/tmp/replica",
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ResolvePath(tt.input)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, filepath.IsAbs(result))
		})
	}
}

func TestResolvePath_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	result, err := ResolvePath("~/sync")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "sync"), result)
}

func TestDirFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "a.txt")
	require.NoError(t, os.WriteFile(filePath, []byte("x"), 0o644))

	assert.True(t, DirExists(tmpDir))
	assert.False(t, DirExists(filePath))
	assert.True(t, FileExists(filePath))
	assert.False(t, FileExists(tmpDir))
	assert.False(t, FileExists(filepath.Join(tmpDir, "missing")))
}

func TestEnsureDir(t *testing.T) {
	tmpDir := t.TempDir()
	nested := filepath.Join(tmpDir, "a", "b", "c")

	require.NoError(t, EnsureDir(nested))
	assert.True(t, DirExists(nested))

	// idempotent
	require.NoError(t, EnsureDir(nested))
}

func TestEnsureParent(t *testing.T) {
	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "x", "y", "file.txt")

	require.NoError(t, EnsureParent(filePath))
	assert.True(t, DirExists(filepath.Join(tmpDir, "x", "y")))
}

func TestIsSubPath(t *testing.T) {
	tests := []struct {
		name   string
		parent string
		child  string
		want   bool
	}{
		{"direct child", "/data/src", "/data/src/sub", true},
		{"deep child", "/data/src", "/data/src/a/b/c", true},
		{"same path", "/data/src", "/data/src", true},
		{"sibling", "/data/src", "/data/dst", false},
		{"sibling with common prefix", "/data/src", "/data/srcdst", false},
		{"parent of", "/data/src/sub", "/data/src", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSubPath(tt.parent, tt.child))
		})
	}
}
