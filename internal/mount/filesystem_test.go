package mount

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/winfsp/cgofuse/fuse"

	"github.com/zeldamods/botwfstools/internal/contentfs"
	"github.com/zeldamods/botwfstools/internal/metrics"
	"github.com/zeldamods/botwfstools/internal/sarc"
)

func writeArchive(t *testing.T, path string) {
	t.Helper()
	data := sarc.Build([]struct {
		Name string
		Data []byte
	}{{Name: "Member.txt", Data: []byte("member-data")}})
	require.NoError(t, os.WriteFile(path, data, 0644))
}

func makeRoot(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		full := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
	return root
}

func TestFileSystemGetattrTranslatesPlainFile(t *testing.T) {
	root := makeRoot(t, map[string]string{"Hello.txt": "hi there"})
	fs := New(contentfs.NewOperations([]string{root}, ""), nil)

	var st fuse.Stat_t
	ret := fs.Getattr("/Hello.txt", &st, 0)
	require.Equal(t, 0, ret)
	assert.Equal(t, fuse.S_IFREG|0644, int(st.Mode))
	assert.Equal(t, int64(len("hi there")), st.Size)
}

func TestFileSystemGetattrMissingReturnsENOENT(t *testing.T) {
	root := makeRoot(t, nil)
	fs := New(contentfs.NewOperations([]string{root}, ""), nil)

	var st fuse.Stat_t
	ret := fs.Getattr("/NoSuchFile.txt", &st, 0)
	assert.Equal(t, -fuse.ENOENT, ret)
}

func TestFileSystemGetattrArchiveReportsDirectory(t *testing.T) {
	root := makeRoot(t, nil)
	writeArchive(t, filepath.Join(root, "Pack.sarc"))
	fs := New(contentfs.NewOperations([]string{root}, ""), nil)

	var st fuse.Stat_t
	ret := fs.Getattr("/Pack.sarc", &st, 0)
	require.Equal(t, 0, ret)
	assert.Equal(t, fuse.S_IFDIR, int(st.Mode)&fuse.S_IFMT)
}

func TestFileSystemOpenWithoutWorkDirReturnsEROFS(t *testing.T) {
	root := makeRoot(t, map[string]string{"File.txt": "x"})
	fs := New(contentfs.NewOperations([]string{root}, ""), nil)

	ret, fh := fs.Open("/File.txt", os.O_RDWR)
	assert.Equal(t, -fuse.EROFS, ret)
	assert.Equal(t, uint64(0), fh)
}

func TestFileSystemReadWriteRoundTrip(t *testing.T) {
	root := makeRoot(t, nil)
	workDir := t.TempDir()
	fs := New(contentfs.NewOperations([]string{root}, workDir), nil)

	ret, fh := fs.Create("/New.txt", os.O_CREATE|os.O_RDWR, 0644)
	require.Equal(t, 0, ret)

	n := fs.Write("/New.txt", []byte("payload"), 0, fh)
	assert.Equal(t, len("payload"), n)
	require.Equal(t, 0, fs.Release("/New.txt", fh))

	ret, fh = fs.Open("/New.txt", os.O_RDONLY)
	require.Equal(t, 0, ret)
	buf := make([]byte, len("payload"))
	n = fs.Read("/New.txt", buf, 0, fh)
	assert.Equal(t, len("payload"), n)
	assert.Equal(t, "payload", string(buf[:n]))
	require.Equal(t, 0, fs.Release("/New.txt", fh))
}

func TestFileSystemReaddirFillsEntries(t *testing.T) {
	root := makeRoot(t, map[string]string{"A.txt": "a", "B.txt": "b"})
	fs := New(contentfs.NewOperations([]string{root}, ""), nil)

	var got []string
	ret := fs.Readdir("/", func(name string, stat *fuse.Stat_t, ofst int64) bool {
		got = append(got, name)
		return true
	}, 0, 0)
	require.Equal(t, 0, ret)
	assert.ElementsMatch(t, []string{".", "..", "A.txt", "B.txt"}, got)
}

func TestFileSystemStatfs(t *testing.T) {
	root := makeRoot(t, nil)
	fs := New(contentfs.NewOperations([]string{root}, ""), nil)

	var st fuse.Statfs_t
	ret := fs.Statfs("/", &st)
	require.Equal(t, 0, ret)
	assert.Greater(t, st.Bsize, uint64(0))
}

func TestFileSystemMkdirRequiresWorkDir(t *testing.T) {
	root := makeRoot(t, nil)
	fs := New(contentfs.NewOperations([]string{root}, ""), nil)

	assert.Equal(t, -fuse.EROFS, fs.Mkdir("/NewDir", 0755))
}

func TestFileSystemRecordsOperationMetrics(t *testing.T) {
	root := makeRoot(t, map[string]string{"Hello.txt": "hi there"})
	collector, err := metrics.NewCollector(&metrics.Config{Enabled: true})
	require.NoError(t, err)
	fs := New(contentfs.NewOperations([]string{root}, ""), collector)

	var st fuse.Stat_t
	require.Equal(t, 0, fs.Getattr("/Hello.txt", &st, 0))
	assert.Equal(t, -fuse.ENOENT, fs.Getattr("/Missing.txt", &st, 0))

	snap := collector.Snapshot()
	require.Contains(t, snap, "getattr")
	assert.Equal(t, int64(2), snap["getattr"].Count)
	assert.Equal(t, int64(1), snap["getattr"].Errors)
}
