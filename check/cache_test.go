package check

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hguenther/smtrs/formatter"
)

func TestCache(t *testing.T) {
	tmpDir := t.TempDir()
	cache, err := NewCache(filepath.Join(tmpDir, "cache"))
	require.NoError(t, err)

	filename := filepath.Join(tmpDir, "a.yaml")
	require.NoError(t, os.WriteFile(filename, []byte("kind: bool\n"), 0o644))
	reports := []formatter.Report{{Kind: formatter.LayoutReport, Source: filename, Slots: []formatter.Slot{{Path: "$", Sort: "Bool"}}}}

	t.Run("SaveAndLoad", func(t *testing.T) {
		require.NoError(t, cache.Set("layout:a", filename, "s", reports))
		got, found := cache.Get("layout:a", filename, "s")
		assert.True(t, found)
		assert.Equal(t, reports, got)

		reopened, err := NewCache(filepath.Join(tmpDir, "cache"))
		require.NoError(t, err)
		got, found = reopened.Get("layout:a", filename, "s")
		assert.True(t, found)
		assert.Equal(t, reports, got)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, found := cache.Get("layout:absent", "absent.yaml", "s")
		assert.False(t, found)
	})

	t.Run("SettingsChanged", func(t *testing.T) {
		require.NoError(t, cache.Set("layout:a", filename, "s", reports))
		_, found := cache.Get("layout:a", filename, "other")
		assert.False(t, found)
	})

	t.Run("FileModified", func(t *testing.T) {
		require.NoError(t, cache.Set("layout:a", filename, "s", reports))
		require.NoError(t, os.WriteFile(filename, []byte("kind: unit\n"), 0o644))
		_, found := cache.Get("layout:a", filename, "s")
		assert.False(t, found)
	})

	t.Run("Expired", func(t *testing.T) {
		require.NoError(t, cache.Set("layout:a", filename, "s", reports))
		cache.SetMaxAge(time.Nanosecond)
		time.Sleep(time.Millisecond)
		_, found := cache.Get("layout:a", filename, "s")
		assert.False(t, found)
		cache.SetMaxAge(0)
	})

	t.Run("InvalidateAll", func(t *testing.T) {
		require.NoError(t, cache.Set("layout:a", filename, "s", reports))
		require.NoError(t, cache.InvalidateAll())
		_, found := cache.Get("layout:a", filename, "s")
		assert.False(t, found)
	})
}

func TestCheckerUsesCache(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewCache(filepath.Join(dir, "cache"))
	require.NoError(t, err)

	path := filepath.Join(dir, "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte("kind: bool\n"), 0o644))

	c := newChecker(formatter.LayoutReport)
	c.UseCache(cache)
	first, err := c.Run(path)
	require.NoError(t, err)

	_, found := cache.Get(formatter.LayoutReport+":"+path, path, fmt.Sprintf("%+v", c.config))
	assert.True(t, found)

	second, err := c.Run(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	require.NoError(t, os.WriteFile(path, []byte("kind: unit\n"), 0o644))
	third, err := c.Run(path)
	require.NoError(t, err)
	assert.Empty(t, third[0].Slots)
}
