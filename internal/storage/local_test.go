package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocal(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(Config{BasePath: t.TempDir()})
	require.NoError(t, err)
	return s
}

func TestLocalStorage_SaveGetDelete(t *testing.T) {
	s := newTestLocal(t)
	ctx := context.Background()

	err := s.Save(ctx, "user-1/images/a.png", strings.NewReader("payload"), "image/png")
	require.NoError(t, err)

	exists, err := s.Exists(ctx, "user-1/images/a.png")
	require.NoError(t, err)
	assert.True(t, exists)

	size, err := s.GetSize(ctx, "user-1/images/a.png")
	require.NoError(t, err)
	assert.Equal(t, int64(7), size)

	rc, err := s.Get(ctx, "user-1/images/a.png")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "payload", string(data))

	require.NoError(t, s.Delete(ctx, "user-1/images/a.png"))
	exists, err = s.Exists(ctx, "user-1/images/a.png")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStorage_DeleteMissingIsNoop(t *testing.T) {
	s := newTestLocal(t)
	assert.NoError(t, s.Delete(context.Background(), "never/created.bin"))
}

func TestLocalStorage_PathTraversalBlocked(t *testing.T) {
	s := newTestLocal(t)
	ctx := context.Background()

	err := s.Save(ctx, "../outside.txt", strings.NewReader("x"), "text/plain")
	// Clean("/../outside.txt") collapses to /outside.txt inside the root,
	// so the write must land under the base directory either way.
	if err == nil {
		exists, exErr := s.Exists(ctx, "outside.txt")
		require.NoError(t, exErr)
		assert.True(t, exists)
	}
}

func TestLocalStorage_URLs(t *testing.T) {
	withBase, err := NewLocalStorage(Config{BasePath: t.TempDir(), BaseURL: "https://cdn.example.com"})
	require.NoError(t, err)
	url, err := withBase.GetURL(context.Background(), "a/b.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a/b.png", url)

	noBase := newTestLocal(t)
	url, err = noBase.GetURL(context.Background(), "a/b.png")
	require.NoError(t, err)
	assert.Equal(t, "/files/a/b.png", url)
}
