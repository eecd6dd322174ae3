// Tests for FileCache with mmap-based file access.
package util

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestFiles creates temporary section-like files.
func setupTestFiles(t *testing.T) map[string]string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"hero.ts":   "export const hero = { moods: ['bold'], purpose: ['launch'] };\n",
		"footer.js": "module.exports = { name: 'footer' };\n",
		"empty.ts":  "",
		"large.ts":  strings.Repeat("// filler line\n", 1000),
	}
	paths := make(map[string]string, len(files))
	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
		paths[name] = p
	}
	return paths
}

func newTestCache(t *testing.T, cfg *FileCacheConfig) FileCache {
	t.Helper()
	if cfg != nil && cfg.Logger == nil {
		cfg.Logger = NopLogger()
	}
	fc, err := NewFileCache(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = fc.Close() })
	return fc
}

func TestFileCache_ReadAndHit(t *testing.T) {
	files := setupTestFiles(t)
	fc := newTestCache(t, &FileCacheConfig{MaxFiles: 8})

	data, err := fc.Read(files["hero.ts"])
	require.NoError(t, err)
	assert.Contains(t, string(data), "moods: ['bold']")
	assert.Equal(t, 1, fc.Size())

	_, err = fc.Read(files["hero.ts"])
	require.NoError(t, err)

	stats := fc.Stats()
	assert.Equal(t, int64(1), stats.CacheMisses)
	assert.Equal(t, int64(1), stats.CacheHits)
	assert.Equal(t, 1, stats.FilesCached)
}

func TestFileCache_ReadReturnsCopy(t *testing.T) {
	files := setupTestFiles(t)
	fc := newTestCache(t, &FileCacheConfig{MaxFiles: 8})

	data, err := fc.Read(files["footer.js"])
	require.NoError(t, err)
	data[0] = 'X'

	again, err := fc.Read(files["footer.js"])
	require.NoError(t, err)
	assert.Equal(t, byte('m'), again[0])
}

func TestFileCache_Contains(t *testing.T) {
	files := setupTestFiles(t)
	fc := newTestCache(t, &FileCacheConfig{MaxFiles: 8})

	ok, err := fc.Contains(files["hero.ts"], "moods", "purpose")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = fc.Contains(files["footer.js"], "moods", "purpose")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileCache_EmptyFile(t *testing.T) {
	files := setupTestFiles(t)
	fc := newTestCache(t, &FileCacheConfig{MaxFiles: 8})

	data, err := fc.Read(files["empty.ts"])
	require.NoError(t, err)
	assert.Empty(t, data)
	assert.NotNil(t, data)

	ok, err := fc.Contains(files["empty.ts"], "moods")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileCache_FileNotFound(t *testing.T) {
	fc := newTestCache(t, &FileCacheConfig{MaxFiles: 8})
	_, err := fc.Read(filepath.Join(t.TempDir(), "missing.ts"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestFileCache_LRUEviction(t *testing.T) {
	files := setupTestFiles(t)
	fc := newTestCache(t, &FileCacheConfig{MaxFiles: 2})

	for _, name := range []string{"hero.ts", "footer.js", "large.ts"} {
		_, err := fc.Read(files[name])
		require.NoError(t, err)
	}
	assert.Equal(t, 2, fc.Size())
	assert.Equal(t, int64(1), fc.Stats().Evictions)

	// The evicted file is still readable; it is simply mapped again.
	data, err := fc.Read(files["hero.ts"])
	require.NoError(t, err)
	assert.Contains(t, string(data), "hero")
}

func TestFileCache_MemoryCapEvictsOldest(t *testing.T) {
	dir := t.TempDir()
	big := strings.Repeat("x", 700*1024)
	a := filepath.Join(dir, "a.ts")
	b := filepath.Join(dir, "b.ts")
	require.NoError(t, os.WriteFile(a, []byte(big), 0644))
	require.NoError(t, os.WriteFile(b, []byte(big), 0644))

	fc := newTestCache(t, &FileCacheConfig{MaxFiles: 10, MaxMemoryMB: 1})
	_, err := fc.Read(a)
	require.NoError(t, err)
	_, err = fc.Read(b)
	require.NoError(t, err)

	assert.Equal(t, 1, fc.Size())
	assert.Equal(t, int64(len(big)), fc.Stats().MappedBytes)
}

func TestFileCache_FileLargerThanCap(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "huge.ts")
	require.NoError(t, os.WriteFile(p, []byte(strings.Repeat("x", 2*1024*1024)), 0644))

	fc := newTestCache(t, &FileCacheConfig{MaxFiles: 10, MaxMemoryMB: 1})
	_, err := fc.Read(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds FileCache memory limit")
}

func TestFileCache_StaleMappingReloaded(t *testing.T) {
	files := setupTestFiles(t)
	fc := newTestCache(t, &FileCacheConfig{MaxFiles: 8})
	path := files["footer.js"]

	_, err := fc.Read(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("module.exports = { name: 'footer', moods: [] };\n"), 0644))

	data, err := fc.Read(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "moods")
	assert.Equal(t, int64(1), fc.Stats().Reloads)
}

func TestFileCache_Invalidate(t *testing.T) {
	files := setupTestFiles(t)
	fc := newTestCache(t, &FileCacheConfig{MaxFiles: 8})

	_, err := fc.Read(files["hero.ts"])
	require.NoError(t, err)
	fc.Invalidate(files["hero.ts"])
	assert.Equal(t, 0, fc.Size())

	fc.Invalidate("/not/cached")
}

func TestFileCache_ConcurrentAccess(t *testing.T) {
	files := setupTestFiles(t)
	fc := newTestCache(t, &FileCacheConfig{MaxFiles: 2})
	names := []string{"hero.ts", "footer.js", "large.ts"}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			path := files[names[i%len(names)]]
			_, err := fc.Contains(path, "moods")
			assert.NoError(t, err)
			if i%5 == 0 {
				fc.Invalidate(path)
			}
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, fc.Size(), 2)
}

func TestFileCache_CloseThenReuse(t *testing.T) {
	files := setupTestFiles(t)
	fc := newTestCache(t, &FileCacheConfig{MaxFiles: 8})

	_, err := fc.Read(files["hero.ts"])
	require.NoError(t, err)
	require.NoError(t, fc.Close())
	assert.Equal(t, 0, fc.Size())

	_, err = fc.Read(files["hero.ts"])
	require.NoError(t, err)
}

func TestNewFileCache_InvalidSize(t *testing.T) {
	_, err := NewFileCache(&FileCacheConfig{MaxFiles: 0, Logger: NopLogger()})
	require.Error(t, err)
}
