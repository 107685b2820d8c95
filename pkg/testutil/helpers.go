package testutil

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/happenslol/dotgirl/pkg/types"
)

// WriteFile writes content to path, failing the test on error
func WriteFile(t *testing.T, fsys types.FS, path, content string) {
	t.Helper()
	require.NoError(t, fsys.WriteFile(path, []byte(content), 0644))
}

// MkdirAll creates path and its ancestors, failing the test on error
func MkdirAll(t *testing.T, fsys types.FS, path string) {
	t.Helper()
	require.NoError(t, fsys.MkdirAll(path, 0755))
}

// ReadFile returns the content at path, failing the test on error
func ReadFile(t *testing.T, fsys types.FS, path string) string {
	t.Helper()
	data, err := fsys.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// AssertSymlinkTo asserts that path is a symlink pointing at target
func AssertSymlinkTo(t *testing.T, fsys types.FS, path, target string) {
	t.Helper()

	info, err := fsys.Lstat(path)
	require.NoError(t, err, "expected a symlink at %s", path)
	require.NotZero(t, info.Mode()&fs.ModeSymlink, "%s should be a symlink", path)

	dest, err := fsys.Readlink(path)
	require.NoError(t, err)
	require.Equal(t, target, dest, "%s should point at %s", path, target)
}

// AssertNotExists asserts that nothing exists at path
func AssertNotExists(t *testing.T, fsys types.FS, path string) {
	t.Helper()
	_, err := fsys.Lstat(path)
	require.Error(t, err, "expected nothing at %s", path)
}
