package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreLoadAbsent(t *testing.T) {
	fs := NewFileStore(t.TempDir())

	raw, ok, err := fs.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, raw)
}

func TestFileStoreRoundTrip(t *testing.T) {
	fs := NewFileStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, fs.Save(ctx, `[{"id":"d1:a:0"}]`))

	raw, ok, err := fs.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"d1:a:0"}]`, raw)

	// Later writes win: the blob is replaced wholesale.
	require.NoError(t, fs.Save(ctx, `[]`))
	raw, _, err = fs.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `[]`, raw)
}

func TestFileStoreCreatesDataDir(t *testing.T) {
	fs := NewFileStore(t.TempDir() + "/nested/deeper")
	require.NoError(t, fs.Save(context.Background(), "[]"))

	_, ok, err := fs.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemStore(t *testing.T) {
	ms := NewMemStore()
	ctx := context.Background()

	_, ok, err := ms.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, ms.Save(ctx, "[]"))
	raw, ok, err := ms.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", raw)
}
