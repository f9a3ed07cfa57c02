package move_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertwitch/diskmv/internal/filesystem"
	"github.com/desertwitch/diskmv/internal/move"
	"github.com/desertwitch/diskmv/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVolume struct {
	name   string
	fsPath string
}

func (v *fakeVolume) GetName() string   { return v.name }
func (v *fakeVolume) GetFSPath() string { return v.fsPath }

type testRig struct {
	fsHandler   *filesystem.Handler
	moveHandler *move.Handler
	src         *fakeVolume
	dst         *fakeVolume
}

func newTestRig(t *testing.T) *testRig {
	t.Helper()

	tmp := t.TempDir()
	src := &fakeVolume{name: "disk2", fsPath: filepath.Join(tmp, "disk2")}
	dst := &fakeVolume{name: "disk5", fsPath: filepath.Join(tmp, "disk5")}
	require.NoError(t, os.MkdirAll(src.fsPath, 0o755))
	require.NoError(t, os.MkdirAll(dst.fsPath, 0o755))

	fsHandler, err := filesystem.NewHandler(&schema.OS{}, &schema.Unix{})
	require.NoError(t, err)

	return &testRig{
		fsHandler:   fsHandler,
		moveHandler: move.NewHandler(fsHandler, &schema.OS{}, &schema.Unix{}),
		src:         src,
		dst:         dst,
	}
}

func (r *testRig) entry(t *testing.T, share string) *schema.Entry {
	t.Helper()

	metadata, err := r.fsHandler.GetMetadata(filepath.Join(r.src.fsPath, share))
	require.NoError(t, err)

	return &schema.Entry{
		Share:      share,
		SourcePath: filepath.Join(r.src.fsPath, share),
		DestPath:   filepath.Join(r.dst.fsPath, share),
		Metadata:   metadata,
		Source:     r.src,
		Dest:       r.dst,
	}
}

func writeFile(t *testing.T, path string, content []byte, perm os.FileMode) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, content, 0o600))
	require.NoError(t, os.Chmod(path, perm))
}

func TestProcess_File(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)
	srcPath := filepath.Join(rig.src.fsPath, "movies/Foo/Foo.mkv")
	writeFile(t, srcPath, []byte("payload"), 0o640)

	srcInfo, err := os.Stat(srcPath)
	require.NoError(t, err)

	entry := rig.entry(t, "movies/Foo/Foo.mkv")
	require.NoError(t, rig.moveHandler.EnsureDestPath(entry))
	require.NoError(t, rig.moveHandler.Process(context.Background(), entry, &schema.Policy{}))

	content, err := os.ReadFile(entry.DestPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), content)

	dstInfo, err := os.Stat(entry.DestPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), dstInfo.Mode().Perm())
	assert.Equal(t, srcInfo.ModTime(), dstInfo.ModTime())

	_, err = os.Lstat(srcPath)
	assert.True(t, os.IsNotExist(err))
}

func TestProcess_File_KeepSource(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)
	srcPath := filepath.Join(rig.src.fsPath, "file.bin")
	writeFile(t, srcPath, []byte("payload"), 0o644)

	entry := rig.entry(t, "file.bin")
	require.NoError(t, rig.moveHandler.Process(context.Background(), entry, &schema.Policy{KeepSource: true}))

	srcContent, err := os.ReadFile(srcPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), srcContent)

	dstContent, err := os.ReadFile(entry.DestPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), dstContent)
}

func TestProcess_File_ClobberOverwrites(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)
	srcPath := filepath.Join(rig.src.fsPath, "file.bin")
	writeFile(t, srcPath, []byte("new content"), 0o644)
	writeFile(t, filepath.Join(rig.dst.fsPath, "file.bin"), []byte("old, longer content"), 0o644)

	entry := rig.entry(t, "file.bin")
	require.NoError(t, rig.moveHandler.Process(context.Background(), entry, &schema.Policy{Clobber: true}))

	content, err := os.ReadFile(entry.DestPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("new content"), content)
}

func TestProcess_File_ClobberDestinationSymlink(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)
	srcPath := filepath.Join(rig.src.fsPath, "file.bin")
	writeFile(t, srcPath, []byte("new content"), 0o644)

	other := filepath.Join(rig.src.fsPath, "..", "other.bin")
	writeFile(t, other, []byte("untouched"), 0o644)
	require.NoError(t, os.Symlink(other, filepath.Join(rig.dst.fsPath, "file.bin")))

	entry := rig.entry(t, "file.bin")
	require.NoError(t, rig.moveHandler.Process(context.Background(), entry, &schema.Policy{Clobber: true}))

	// The destination now holds the file itself, not a link to write through.
	info, err := os.Lstat(entry.DestPath)
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())

	content, err := os.ReadFile(entry.DestPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("new content"), content)

	content, err = os.ReadFile(other)
	require.NoError(t, err)
	assert.Equal(t, []byte("untouched"), content)
}

func TestProcess_Directory(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)
	srcPath := filepath.Join(rig.src.fsPath, "movies/Foo")
	require.NoError(t, os.MkdirAll(srcPath, 0o755))
	require.NoError(t, os.Chmod(srcPath, 0o750))

	entry := rig.entry(t, "movies/Foo")
	require.NoError(t, rig.moveHandler.EnsureDestPath(entry))
	require.NoError(t, rig.moveHandler.Process(context.Background(), entry, &schema.Policy{}))

	dstInfo, err := os.Stat(entry.DestPath)
	require.NoError(t, err)
	assert.True(t, dstInfo.IsDir())
	assert.Equal(t, os.FileMode(0o750), dstInfo.Mode().Perm())

	_, err = os.Lstat(srcPath)
	assert.True(t, os.IsNotExist(err))
}

func TestProcess_Directory_MergesExisting(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)
	srcPath := filepath.Join(rig.src.fsPath, "movies")
	require.NoError(t, os.MkdirAll(srcPath, 0o755))

	keeper := filepath.Join(rig.dst.fsPath, "movies/existing.mkv")
	writeFile(t, keeper, []byte("keep me"), 0o644)

	entry := rig.entry(t, "movies")
	require.NoError(t, rig.moveHandler.Process(context.Background(), entry, &schema.Policy{}))

	content, err := os.ReadFile(keeper)
	require.NoError(t, err)
	assert.Equal(t, []byte("keep me"), content)

	_, err = os.Lstat(srcPath)
	assert.True(t, os.IsNotExist(err))
}

func TestProcess_Symlink(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)
	link := filepath.Join(rig.src.fsPath, "link")
	require.NoError(t, os.Symlink("/somewhere/else", link))

	entry := rig.entry(t, "link")
	require.NoError(t, rig.moveHandler.Process(context.Background(), entry, &schema.Policy{CopySymlinks: true}))

	target, err := os.Readlink(entry.DestPath)
	require.NoError(t, err)
	assert.Equal(t, "/somewhere/else", target)

	_, err = os.Lstat(link)
	assert.True(t, os.IsNotExist(err))
}

func TestEnsureDestPath(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)
	srcPath := filepath.Join(rig.src.fsPath, "movies/Foo/Bar/file.bin")
	writeFile(t, srcPath, []byte("x"), 0o644)
	require.NoError(t, os.Chmod(filepath.Join(rig.src.fsPath, "movies/Foo"), 0o700))

	entry := rig.entry(t, "movies/Foo/Bar/file.bin")
	require.NoError(t, rig.moveHandler.EnsureDestPath(entry))

	info, err := os.Stat(filepath.Join(rig.dst.fsPath, "movies/Foo"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())

	info, err = os.Stat(filepath.Join(rig.dst.fsPath, "movies/Foo/Bar"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestProcess_Canceled(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)
	srcPath := filepath.Join(rig.src.fsPath, "file.bin")
	writeFile(t, srcPath, []byte("payload"), 0o644)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	entry := rig.entry(t, "file.bin")
	err := rig.moveHandler.Process(ctx, entry, &schema.Policy{})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	_, statErr := os.Lstat(srcPath)
	assert.NoError(t, statErr)
}
