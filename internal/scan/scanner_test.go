package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("<html></html>"), 0o644))
}

func TestScanRoot(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "mydata", "html", "snap_history.html"))
	touch(t, filepath.Join(root, "mydata", "html", "chat_history.html"))
	touch(t, filepath.Join(root, "mydata", "html", "account.html"))
	touch(t, filepath.Join(root, "mydata", "html", "friends.html"))
	touch(t, filepath.Join(root, "mydata", "index.html"))

	files, err := ScanRoot(root)
	require.NoError(t, err)
	require.Len(t, files, 3)

	kinds := map[Kind]string{}
	for _, f := range files {
		kinds[f.Kind] = SourceKey(root, f.Path)
		require.Equal(t, int64(len("<html></html>")), f.Size)
	}
	require.Equal(t, "mydata/html/snap_history", kinds[SnapHistory])
	require.Equal(t, "mydata/html/chat_history", kinds[ChatHistory])
	require.Equal(t, "mydata/html/account", kinds[Account])
}

func TestScanRoot_Missing(t *testing.T) {
	files, err := ScanRoot(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	require.Empty(t, files)

	files, err = ScanRoot("")
	require.NoError(t, err)
	require.Empty(t, files)
}
