package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the behavior every backend must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "resume-draft")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "resume-draft", `{"name":"A"}`))
	v, err := s.Get(ctx, "resume-draft")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"A"}`, v)

	require.NoError(t, s.Set(ctx, "resume-draft", `{"name":"B"}`))
	v, err = s.Get(ctx, "resume-draft")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"B"}`, v)

	require.NoError(t, s.Set(ctx, "resume-theme", "light"))
	v, err = s.Get(ctx, "resume-theme")
	require.NoError(t, err)
	assert.Equal(t, "light", v)
}

func TestMemory(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestFile(t *testing.T) {
	f, err := NewFile(t.TempDir())
	require.NoError(t, err)
	exerciseStore(t, f)
}

func TestFile_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "store")
	f, err := NewFile(dir)
	require.NoError(t, err)

	require.NoError(t, f.Set(context.Background(), "resume-draft", "{}"))
	_, err = os.Stat(filepath.Join(dir, "resume-draft"))
	assert.NoError(t, err)
}

func TestFile_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFile(dir)
	require.NoError(t, err)

	require.NoError(t, f.Set(context.Background(), "resume-draft", "{}"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "resume-draft", entries[0].Name())
}

func TestFile_RejectsPathKeys(t *testing.T) {
	f, err := NewFile(t.TempDir())
	require.NoError(t, err)

	err = f.Set(context.Background(), "../escape", "x")
	assert.Error(t, err)
	_, err = f.Get(context.Background(), "a/b")
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	s, err := Open(context.Background(), Options{Backend: BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	s, err = Open(context.Background(), Options{Backend: BackendFile, Path: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &File{}, s)

	_, err = Open(context.Background(), Options{Backend: "s3"})
	assert.Error(t, err)

	_, err = Open(context.Background(), Options{Backend: BackendPostgres})
	assert.Error(t, err, "postgres requires a URL")

	_, err = Open(context.Background(), Options{Backend: BackendRedis})
	assert.Error(t, err, "redis requires a URL")
}

func TestParseBackend(t *testing.T) {
	b, err := ParseBackend(" Redis ")
	require.NoError(t, err)
	assert.Equal(t, BackendRedis, b)

	b, err = ParseBackend("")
	require.NoError(t, err)
	assert.Equal(t, BackendFile, b)

	_, err = ParseBackend("dynamo")
	assert.Error(t, err)
}
