package filesystem_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertwitch/diskmv/internal/filesystem"
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

func newTestHandler(t *testing.T) *filesystem.Handler {
	t.Helper()

	handler, err := filesystem.NewHandler(&schema.OS{}, &schema.Unix{})
	require.NoError(t, err)

	return handler
}

func writeFile(t *testing.T, path string, content []byte) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, content, 0o644))
}

func TestWalkShare_PostOrder(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	src := &fakeVolume{name: "disk2", fsPath: filepath.Join(tmp, "disk2")}
	dst := &fakeVolume{name: "disk5", fsPath: filepath.Join(tmp, "disk5")}

	writeFile(t, filepath.Join(src.fsPath, "movies/Foo/a.mkv"), []byte("aaa"))
	writeFile(t, filepath.Join(src.fsPath, "movies/Foo/b.mkv"), []byte("bbbb"))
	writeFile(t, filepath.Join(src.fsPath, "movies/top.txt"), []byte("t"))
	require.NoError(t, os.MkdirAll(filepath.Join(src.fsPath, "movies/empty"), 0o755))

	handler := newTestHandler(t)

	var visited []string
	err := handler.WalkShare(context.Background(), src, dst, "movies",
		func(entry *schema.Entry) error {
			visited = append(visited, entry.Share)

			return nil
		})

	require.NoError(t, err)
	assert.Equal(t, []string{
		"movies/Foo/a.mkv",
		"movies/Foo/b.mkv",
		"movies/Foo",
		"movies/empty",
		"movies/top.txt",
		"movies",
	}, visited)
}

func TestWalkShare_EntryFields(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	src := &fakeVolume{name: "disk2", fsPath: filepath.Join(tmp, "disk2")}
	dst := &fakeVolume{name: "disk5", fsPath: filepath.Join(tmp, "disk5")}

	writeFile(t, filepath.Join(src.fsPath, "movies/Foo/Foo.mkv"), []byte("abcd"))

	handler := newTestHandler(t)

	entries := make(map[string]*schema.Entry)
	err := handler.WalkShare(context.Background(), src, dst, "movies",
		func(entry *schema.Entry) error {
			entries[entry.Share] = entry

			return nil
		})
	require.NoError(t, err)

	file, exists := entries["movies/Foo/Foo.mkv"]
	require.True(t, exists)
	assert.Equal(t, filepath.Join(src.fsPath, "movies/Foo/Foo.mkv"), file.SourcePath)
	assert.Equal(t, filepath.Join(dst.fsPath, "movies/Foo/Foo.mkv"), file.DestPath)
	assert.True(t, file.Metadata.IsRegular)
	assert.EqualValues(t, 4, file.Metadata.Size)

	dir, exists := entries["movies/Foo"]
	require.True(t, exists)
	assert.True(t, dir.Metadata.IsDir)
}

func TestWalkShare_FileRoot(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	src := &fakeVolume{name: "disk2", fsPath: filepath.Join(tmp, "disk2")}
	dst := &fakeVolume{name: "disk5", fsPath: filepath.Join(tmp, "disk5")}

	writeFile(t, filepath.Join(src.fsPath, "movies/Foo/Foo.mkv"), []byte("abcd"))

	handler := newTestHandler(t)

	var visited []string
	err := handler.WalkShare(context.Background(), src, dst, "movies/Foo/Foo.mkv",
		func(entry *schema.Entry) error {
			visited = append(visited, entry.Share)

			return nil
		})

	require.NoError(t, err)
	assert.Equal(t, []string{"movies/Foo/Foo.mkv"}, visited)
}

func TestWalkShare_Canceled(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	src := &fakeVolume{name: "disk2", fsPath: filepath.Join(tmp, "disk2")}
	dst := &fakeVolume{name: "disk5", fsPath: filepath.Join(tmp, "disk5")}

	writeFile(t, filepath.Join(src.fsPath, "movies/Foo/Foo.mkv"), []byte("abcd"))

	handler := newTestHandler(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := handler.WalkShare(ctx, src, dst, "movies", func(*schema.Entry) error {
		t.Fatal("visit called on canceled context")

		return nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
