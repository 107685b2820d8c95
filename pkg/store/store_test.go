package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/happenslol/dotgirl/pkg/errors"
	"github.com/happenslol/dotgirl/pkg/paths"
	"github.com/happenslol/dotgirl/pkg/store"
	"github.com/happenslol/dotgirl/pkg/testutil"
	"github.com/happenslol/dotgirl/pkg/types"
)

func TestLoadLock_MissingFileIsEmptyLock(t *testing.T) {
	t.Parallel()
	fsys := testutil.NewMemoryFS()
	layout := paths.NewWithRoot("/storage")

	lock, err := store.LoadLock(fsys, layout)
	require.NoError(t, err)
	assert.Empty(t, lock.Bundles)
}

func TestSaveAndLoadLock_RoundTrip(t *testing.T) {
	t.Parallel()
	fsys := testutil.NewMemoryFS()
	layout := paths.NewWithRoot("/storage")

	lock := types.Lock{}
	lock.Replace(types.Bundle{ID: "shell", Entries: []types.Entry{
		{Local: "/storage/bundle/shell/bashrc", Remote: "/home/u/.bashrc"},
	}})

	require.NoError(t, store.SaveLock(fsys, layout, lock))

	loaded, err := store.LoadLock(fsys, layout)
	require.NoError(t, err)
	require.Len(t, loaded.Bundles, 1)
	assert.Equal(t, "shell", loaded.Bundles[0].ID)
	require.Len(t, loaded.Bundles[0].Entries, 1)
	assert.Equal(t, "/home/u/.bashrc", loaded.Bundles[0].Entries[0].Remote)
	assert.Equal(t, "/storage/bundle/shell/bashrc", loaded.Bundles[0].Entries[0].Local)
}

func TestLoadLock_MalformedFile(t *testing.T) {
	t.Parallel()
	fsys := testutil.NewMemoryFS()
	layout := paths.NewWithRoot("/storage")
	testutil.WriteFile(t, fsys, layout.LockFilePath(), "this is ][ not toml")

	_, err := store.LoadLock(fsys, layout)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSerialization))
}

func TestSaveLock_CreatesStorageRoot(t *testing.T) {
	t.Parallel()
	fsys := testutil.NewMemoryFS()
	layout := paths.NewWithRoot("/storage")

	require.NoError(t, store.SaveLock(fsys, layout, types.Lock{}))

	_, err := fsys.Stat(layout.LockFilePath())
	assert.NoError(t, err)
}

func TestLoadBundle_MissingDirectory(t *testing.T) {
	t.Parallel()
	fsys := testutil.NewMemoryFS()
	layout := paths.NewWithRoot("/storage")

	_, err := store.LoadBundle(fsys, layout, "ghost")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrBundleNotFound))
}

func TestLoadBundle_MissingMetadata(t *testing.T) {
	t.Parallel()
	fsys := testutil.NewMemoryFS()
	layout := paths.NewWithRoot("/storage")
	testutil.MkdirAll(t, fsys, layout.BundleDir("shell"))

	_, err := store.LoadBundle(fsys, layout, "shell")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrBundleMissingMetadata))
}

func TestSaveAndLoadBundle_RoundTrip(t *testing.T) {
	t.Parallel()
	fsys := testutil.NewMemoryFS()
	layout := paths.NewWithRoot("/storage")

	bundle := types.Bundle{ID: "shell", Entries: []types.Entry{
		{Local: "/storage/bundle/shell/bashrc", Remote: "/home/u/.bashrc"},
		{Local: "/storage/bundle/shell/nvim", Remote: "/home/u/.config/nvim"},
	}}

	require.NoError(t, store.SaveBundle(fsys, layout, bundle))

	loaded, err := store.LoadBundle(fsys, layout, "shell")
	require.NoError(t, err)
	assert.Equal(t, bundle, loaded)
}
