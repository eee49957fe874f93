package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPutGet(t *testing.T) {
	ctx := context.Background()
	s, err := OpenPath(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, err = s.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(ctx, "k", []byte("one")))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "one", string(got))

	require.NoError(t, s.Put(ctx, "k", []byte("two")))
	got, err = s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "two", string(got))

	updated, err := s.UpdatedAt(ctx, "k")
	require.NoError(t, err)
	require.False(t, updated.IsZero())

	_, err = s.UpdatedAt(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestOpenCreatesProjectDir(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "k", []byte("persisted")))
	require.NoError(t, s.Close())

	_, err = os.Stat(filepath.Join(dir, DirName, FileName))
	require.NoError(t, err)

	reopened, err := Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })
	got, err := reopened.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "persisted", string(got))
}
