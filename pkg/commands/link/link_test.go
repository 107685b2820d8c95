package link_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/happenslol/dotgirl/pkg/commands/add"
	"github.com/happenslol/dotgirl/pkg/commands/link"
	"github.com/happenslol/dotgirl/pkg/errors"
	"github.com/happenslol/dotgirl/pkg/paths"
	"github.com/happenslol/dotgirl/pkg/store"
	"github.com/happenslol/dotgirl/pkg/testutil"
	"github.com/happenslol/dotgirl/pkg/types"
)

func TestLink_UnknownBundle(t *testing.T) {
	t.Parallel()
	fsys := testutil.NewMemoryFS()

	_, err := link.Run(link.Options{
		BundleID:   "ghost",
		Storage:    paths.NewWithRoot("/storage"),
		FileSystem: fsys,
		Prompt:     testutil.NewScriptedPrompt(nil, nil),
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrBundleNotFound))
}

func TestLink_BundleWithoutMetadata(t *testing.T) {
	t.Parallel()
	fsys := testutil.NewMemoryFS()
	layout := paths.NewWithRoot("/storage")
	testutil.MkdirAll(t, fsys, layout.BundleDir("shell"))

	_, err := link.Run(link.Options{
		BundleID:   "shell",
		Storage:    layout,
		FileSystem: fsys,
		Prompt:     testutil.NewScriptedPrompt(nil, nil),
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrBundleMissingMetadata))
}

func TestLink_RelinkDoesNotReprompt(t *testing.T) {
	t.Parallel()
	fsys := testutil.NewMemoryFS()
	layout := paths.NewWithRoot("/storage")

	testutil.WriteFile(t, fsys, "/home/u/.bashrc", "X")
	testutil.MkdirAll(t, fsys, "/home/u/.config/nvim")
	testutil.WriteFile(t, fsys, "/home/u/.config/nvim/init.lua", "lua")

	_, err := add.Run(add.Options{
		BundleID:   "shell",
		Paths:      []string{"/home/u/.bashrc", "/home/u/.config/nvim"},
		Storage:    layout,
		FileSystem: fsys,
		Prompt:     testutil.NewScriptedPrompt(nil, nil),
	})
	require.NoError(t, err)

	// Both remotes are still the symlinks the add pass created, and both
	// are recorded in the lock, so nothing may prompt
	prompt := testutil.NewScriptedPrompt(nil, nil)
	result, err := link.Run(link.Options{
		BundleID:   "shell",
		Storage:    layout,
		FileSystem: fsys,
		Prompt:     prompt,
	})
	require.NoError(t, err)
	assert.Len(t, result.Linked, 2)
	assert.Empty(t, prompt.Messages)

	testutil.AssertSymlinkTo(t, fsys, "/home/u/.bashrc", "/storage/bundle/shell/bashrc")
	testutil.AssertSymlinkTo(t, fsys, "/home/u/.config/nvim", "/storage/bundle/shell/nvim")
}

func TestLink_SkipIsNotSticky(t *testing.T) {
	t.Parallel()
	fsys := testutil.NewMemoryFS()
	layout := paths.NewWithRoot("/storage")

	// A stored bundle whose remote is occupied by an unmanaged file, with
	// no previous lock record to pre-authorize it
	bundle := types.Bundle{ID: "shell", Entries: []types.Entry{
		{Local: "/storage/bundle/shell/bashrc", Remote: "/home/u/.bashrc"},
	}}
	require.NoError(t, store.SaveBundle(fsys, layout, bundle))
	testutil.WriteFile(t, fsys, "/storage/bundle/shell/bashrc", "managed")
	testutil.WriteFile(t, fsys, "/home/u/.bashrc", "local edits")

	// First link: the user skips
	first := testutil.NewScriptedPrompt(nil, []int{0})
	result, err := link.Run(link.Options{
		BundleID:   "shell",
		Storage:    layout,
		FileSystem: fsys,
		Prompt:     first,
	})
	require.NoError(t, err)
	assert.Empty(t, result.Linked)
	assert.Len(t, first.Messages, 1)

	// The skipped entry is not in the lock record
	lock, err := store.LoadLock(fsys, layout)
	require.NoError(t, err)
	require.NotNil(t, lock.Find("shell"))
	assert.Empty(t, lock.Find("shell").Entries)

	// Second link: the entry is not pre-authorized, so it prompts again
	second := testutil.NewScriptedPrompt(nil, []int{1})
	result, err = link.Run(link.Options{
		BundleID:   "shell",
		Storage:    layout,
		FileSystem: fsys,
		Prompt:     second,
	})
	require.NoError(t, err)
	assert.Len(t, second.Messages, 1, "a skipped entry prompts again on the next link")
	require.Len(t, result.Linked, 1)

	testutil.AssertSymlinkTo(t, fsys, "/home/u/.bashrc", "/storage/bundle/shell/bashrc")
}

func TestLink_DeclinedAncestorConflictDoesNotRewriteLock(t *testing.T) {
	t.Parallel()
	fsys := testutil.NewMemoryFS()
	layout := paths.NewWithRoot("/storage")

	bundle := types.Bundle{ID: "app", Entries: []types.Entry{
		{Local: "/storage/bundle/app/conf", Remote: "/home/u/.config/conf"},
	}}
	require.NoError(t, store.SaveBundle(fsys, layout, bundle))
	testutil.WriteFile(t, fsys, "/storage/bundle/app/conf", "managed")
	testutil.WriteFile(t, fsys, "/home/u/.config", "i am a file")

	lock := types.Lock{}
	lock.Replace(types.Bundle{ID: "app", Entries: bundle.Entries})
	require.NoError(t, store.SaveLock(fsys, layout, lock))

	_, err := link.Run(link.Options{
		BundleID:   "app",
		Storage:    layout,
		FileSystem: fsys,
		Prompt:     testutil.NewScriptedPrompt([]bool{false}, nil),
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUserDeclined))

	// The aborted pass must not have rewritten the lock
	after, loadErr := store.LoadLock(fsys, layout)
	require.NoError(t, loadErr)
	require.NotNil(t, after.Find("app"))
	assert.Len(t, after.Find("app").Entries, 1)
}
