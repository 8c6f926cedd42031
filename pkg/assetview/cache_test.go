package assetview

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheRoundTrip(t *testing.T) {
	cache := NewCache(filepath.Join(t.TempDir(), "assets.json"))

	require.NoError(t, cache.Save(DemoAssets()))

	got, err := cache.Load()
	require.NoError(t, err)
	assert.Equal(t, DemoAssets(), got)
}

func TestCacheLoadMissingFile(t *testing.T) {
	cache := NewCache(filepath.Join(t.TempDir(), "nope.json"))

	got, err := cache.Load()
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assets.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewCache(path).Load()
	assert.Error(t, err)
}

func TestCacheSaveOverwrites(t *testing.T) {
	cache := NewCache(filepath.Join(t.TempDir(), "assets.json"))

	require.NoError(t, cache.Save(DemoAssets()))
	require.NoError(t, cache.Save(DemoAssets()[:1]))

	got, err := cache.Load()
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
