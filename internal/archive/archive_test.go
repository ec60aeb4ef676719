package archive

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	assert_ "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanbriolat/video-filer"
)

func testMetadata() *video_filer.VideoMetadata {
	return &video_filer.VideoMetadata{
		Platform:     video_filer.PlatformBilibili,
		ID:           "1GJ411x7h7",
		Title:        "Test/Title",
		PublishTime:  time.Unix(1700000000, 0),
		UploaderID:   "42",
		UploaderName: "Alice",
	}
}

func writeSource(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "video.mp4")
	require.NoError(t, os.WriteFile(path, []byte("video"), 0644))
	return path
}

func TestNewPlan(t *testing.T) {
	assert := assert_.New(t)
	plan, err := NewPlan(video_filer.NewNamingConfig(), "/tmp/in/video.mp4", testMetadata())
	require.NoError(t, err)
	assert.Equal("/tmp/in/completed/Alice(42) - bilibili.com", plan.DestinationDir)
	assert.Equal("/tmp/in/completed/Alice(42) - bilibili.com/TestTitle.mp4", plan.DestinationPath)
	assert.Equal(int64(1700000000), plan.Timestamp.Unix())

	meta := testMetadata()
	meta.UploaderName = ""
	_, err = NewPlan(video_filer.NewNamingConfig(), "/tmp/in/video.mp4", meta)
	assert.Error(err)
}

func TestArchive(t *testing.T) {
	assert := assert_.New(t)
	dir := t.TempDir()
	src := writeSource(t, dir)

	res, err := New(video_filer.NewNamingConfig()).Archive(context.Background(), src, testMetadata())
	require.NoError(t, err)

	want := filepath.Join(dir, "completed", "Alice(42) - bilibili.com", "TestTitle.mp4")
	assert.Equal(want, res.DestinationPath)
	assert.NoFileExists(src)
	info, err := os.Stat(want)
	require.NoError(t, err)
	assert.Equal(int64(1700000000), info.ModTime().Unix())
	assert.NoError(res.TimestampErr)
	assert.Equal(src, res.Before.Path)
	assert.Equal(want, res.After.Path)
	assert.Equal(int64(1700000000), res.After.ModTime.Unix())

	data, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Equal("video", string(data))
}

func TestArchiveExistingDirectory(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir)
	destDir := filepath.Join(dir, "completed", "Alice(42) - bilibili.com")
	require.NoError(t, os.MkdirAll(destDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(destDir, "Other.mp4"), []byte("other"), 0644))

	_, err := New(video_filer.NewNamingConfig()).Archive(context.Background(), src, testMetadata())
	require.NoError(t, err)
	assert_.FileExists(t, filepath.Join(destDir, "TestTitle.mp4"))
	assert_.FileExists(t, filepath.Join(destDir, "Other.mp4"))
}

func TestArchiveCollision(t *testing.T) {
	assert := assert_.New(t)
	dir := t.TempDir()
	src := writeSource(t, dir)
	before, err := os.Stat(src)
	require.NoError(t, err)

	destDir := filepath.Join(dir, "completed", "Alice(42) - bilibili.com")
	require.NoError(t, os.MkdirAll(destDir, 0755))
	existing := filepath.Join(destDir, "TestTitle.mp4")
	require.NoError(t, os.WriteFile(existing, []byte("existing"), 0644))

	res, err := New(video_filer.NewNamingConfig()).Archive(context.Background(), src, testMetadata())
	assert.Nil(res)
	var ae *video_filer.ArchiveError
	require.ErrorAs(t, err, &ae)
	assert.Equal("move", ae.Op)
	assert.ErrorIs(err, os.ErrExist)

	after, err := os.Stat(src)
	require.NoError(t, err)
	assert.Equal(before.ModTime(), after.ModTime())
	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal("existing", string(data))
}

func TestArchiveMissingSource(t *testing.T) {
	dir := t.TempDir()
	_, err := New(video_filer.NewNamingConfig()).Archive(context.Background(), filepath.Join(dir, "nope.mp4"), testMetadata())
	assert_.True(t, video_filer.IsArchiveError(err))
	assert_.NoDirExists(t, filepath.Join(dir, "completed"))
}

func TestArchiveTimestampFailureIsAdvisory(t *testing.T) {
	assert := assert_.New(t)
	saved := chtimesFunc
	t.Cleanup(func() { chtimesFunc = saved })
	chtimesFunc = func(string, time.Time, time.Time) error {
		return errors.New("read-only filesystem")
	}

	dir := t.TempDir()
	src := writeSource(t, dir)
	res, err := New(video_filer.NewNamingConfig()).Archive(context.Background(), src, testMetadata())
	require.NoError(t, err)
	assert.EqualError(res.TimestampErr, "read-only filesystem")
	assert.FileExists(res.DestinationPath)
	assert.NoFileExists(src)
}

func TestArchiveCrossDevice(t *testing.T) {
	assert := assert_.New(t)
	saved := renameFunc
	t.Cleanup(func() { renameFunc = saved })
	renameFunc = func(src, dst string) error {
		return &os.LinkError{Op: "rename", Old: src, New: dst, Err: syscall.EXDEV}
	}

	dir := t.TempDir()
	src := writeSource(t, dir)
	_, err := New(video_filer.NewNamingConfig()).Archive(context.Background(), src, testMetadata())
	var ae *video_filer.ArchiveError
	require.ErrorAs(t, err, &ae)
	assert.Equal("move", ae.Op)
	assert.True(IsCrossDevice(err))
	assert.FileExists(src)
}

func TestArchiveRenameFailure(t *testing.T) {
	saved := renameFunc
	t.Cleanup(func() { renameFunc = saved })
	renameFunc = func(src, dst string) error {
		return &os.LinkError{Op: "rename", Old: src, New: dst, Err: os.ErrPermission}
	}

	dir := t.TempDir()
	src := writeSource(t, dir)
	_, err := New(video_filer.NewNamingConfig()).Archive(context.Background(), src, testMetadata())
	assert_.True(t, video_filer.IsArchiveError(err))
	assert_.False(t, IsCrossDevice(err))
	assert_.ErrorIs(t, err, os.ErrPermission)
}
