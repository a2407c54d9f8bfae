package fsutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/toolhub/internal/fsutil"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}
}

func TestFindFilesByExtension_SortedRecursive(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"b/two.hcl",
		"a/one.hcl",
		"a/skip.txt",
		"top.hcl",
	)

	files, err := fsutil.FindFilesByExtension(root, ".hcl")
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(root, "a/one.hcl"),
		filepath.Join(root, "b/two.hcl"),
		filepath.Join(root, "top.hcl"),
	}, files)
}

func TestFindFilesByExtension_SkipsHiddenDirs(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"visible.hcl",
		".git/hidden.hcl",
	)

	files, err := fsutil.FindFilesByExtension(root, ".hcl")
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(root, "visible.hcl")}, files)
}

func TestFindFilesByExtension_SingleFileRoot(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "only.hcl")

	files, err := fsutil.FindFilesByExtension(filepath.Join(root, "only.hcl"), ".hcl")
	require.NoError(t, err)
	require.Len(t, files, 1)
}

func TestFindFilesByExtension_MissingRoot(t *testing.T) {
	_, err := fsutil.FindFilesByExtension(filepath.Join(t.TempDir(), "nope"), ".hcl")
	require.Error(t, err)
}
