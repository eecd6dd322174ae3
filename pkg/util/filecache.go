// FileCache provides read access to section sources through memory-mapped
// files.
//
// **Behavior:**
//   - Lazy loading: files are mapped on first access
//   - Bounded: an LRU keeps at most MaxFiles mappings and unmaps on eviction
//   - Memory cap: oldest mappings are evicted until a new file fits MaxMemoryMB
//   - Staleness: a cached mapping is dropped when the file's size or mtime
//     changes, so watch mode always sees the current contents
//   - Graceful fallback to os.ReadFile if mmap fails
//
// Mapped bytes never leave the cache. Callers either scan them in place
// (Contains) or receive a private copy (Read), which keeps eviction safe.
package util

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/edsrzf/mmap-go"
	lru "github.com/hashicorp/golang-lru/v2"
)

// FileCache is safe for concurrent use.
type FileCache interface {
	// Read returns a copy of the file's current contents.
	Read(filePath string) ([]byte, error)

	// Contains reports whether the file contains any of needles, scanning
	// the mapping in place.
	Contains(filePath string, needles ...string) (bool, error)

	// Invalidate drops the cached mapping for a path, if any. Call it
	// before replacing a file.
	Invalidate(filePath string)

	// Size returns number of currently cached files.
	Size() int

	// Stats returns current cache metrics.
	Stats() FileCacheStats

	// Close unmaps all files and releases resources.
	Close() error
}

// FileCacheConfig controls FileCache behavior.
type FileCacheConfig struct {
	// MaxFiles is the maximum number of mappings kept. Must be positive.
	MaxFiles int

	// MaxMemoryMB caps the total mapped size. Zero means unlimited.
	MaxMemoryMB int

	// Logger for warnings. If nil, uses slog.Default().
	Logger *slog.Logger
}

// DefaultFileCacheConfig returns defaults sized for a sections directory.
func DefaultFileCacheConfig() *FileCacheConfig {
	return &FileCacheConfig{
		MaxFiles:    1024,
		MaxMemoryMB: 256,
	}
}

// FileCacheStats tracks cache performance metrics.
type FileCacheStats struct {
	CacheHits    int64
	CacheMisses  int64
	Reloads      int64 // stale mappings replaced
	Evictions    int64
	MmapFailures int64
	FilesCached  int
	MappedBytes  int64
}

type mappedFile struct {
	data     []byte
	mapping  mmap.MMap // nil for empty files and read fallbacks
	size     int64
	modTime  time.Time
	mappedAt time.Time
}

func (m *mappedFile) current(info os.FileInfo) bool {
	return m.size == info.Size() && m.modTime.Equal(info.ModTime())
}

type fileCacheImpl struct {
	config *FileCacheConfig
	logger *slog.Logger

	// mu guards every access to mapped bytes: readers hold RLock while
	// scanning, and anything that can evict holds Lock.
	mu          sync.RWMutex
	cache       *lru.Cache[string, *mappedFile]
	mappedBytes int64

	stats   FileCacheStats
	statsMu sync.Mutex
}

// NewFileCache creates a new FileCache with the given config.
//
// If config is nil, uses DefaultFileCacheConfig().
func NewFileCache(config *FileCacheConfig) (FileCache, error) {
	if config == nil {
		config = DefaultFileCacheConfig()
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	fc := &fileCacheImpl{config: config, logger: config.Logger}
	cache, err := lru.NewWithEvict(config.MaxFiles, fc.onEvict)
	if err != nil {
		return nil, fmt.Errorf("failed to create file cache: %w", err)
	}
	fc.cache = cache
	return fc, nil
}

// onEvict runs inside lru calls made while fc.mu is held for writing.
func (fc *fileCacheImpl) onEvict(path string, mf *mappedFile) {
	fc.mappedBytes -= int64(len(mf.data))
	if mf.mapping != nil {
		if err := mf.mapping.Unmap(); err != nil {
			fc.logger.Warn("failed to unmap file", "path", path, "error", err)
		}
	}
	fc.statsMu.Lock()
	fc.stats.Evictions++
	fc.statsMu.Unlock()
}

// Read returns a copy of the file's current contents.
func (fc *fileCacheImpl) Read(filePath string) ([]byte, error) {
	var out []byte
	err := fc.with(filePath, func(data []byte) error {
		out = bytes.Clone(data)
		if out == nil {
			out = []byte{}
		}
		return nil
	})
	return out, err
}

// Contains reports whether the file contains any of needles.
func (fc *fileCacheImpl) Contains(filePath string, needles ...string) (bool, error) {
	found := false
	err := fc.with(filePath, func(data []byte) error {
		for _, n := range needles {
			if bytes.Contains(data, []byte(n)) {
				found = true
				return nil
			}
		}
		return nil
	})
	return found, err
}

// with runs fn over the current mapping of filePath while holding a lock
// that prevents the mapping from being released.
func (fc *fileCacheImpl) with(filePath string, fn func(data []byte) error) error {
	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("failed to stat file %q: %w", filePath, err)
	}

	// Fast path: current mapping, shared lock.
	fc.mu.RLock()
	if mf, ok := fc.cache.Get(filePath); ok && mf.current(info) {
		defer fc.mu.RUnlock()
		fc.record(func(s *FileCacheStats) { s.CacheHits++ })
		return fn(mf.data)
	}
	fc.mu.RUnlock()

	fc.mu.Lock()
	defer fc.mu.Unlock()

	if mf, ok := fc.cache.Peek(filePath); ok {
		if mf.current(info) {
			fc.record(func(s *FileCacheStats) { s.CacheHits++ })
			return fn(mf.data)
		}
		fc.cache.Remove(filePath)
		fc.record(func(s *FileCacheStats) { s.Reloads++ })
	}

	if err := fc.makeRoomLocked(info.Size()); err != nil {
		return err
	}

	mf, err := fc.load(filePath)
	if err != nil {
		return err
	}
	fc.cache.Add(filePath, mf)
	fc.mappedBytes += int64(len(mf.data))
	fc.record(func(s *FileCacheStats) { s.CacheMisses++ })

	return fn(mf.data)
}

// makeRoomLocked evicts the oldest mappings until size fits the memory cap.
func (fc *fileCacheImpl) makeRoomLocked(size int64) error {
	if fc.config.MaxMemoryMB <= 0 {
		return nil
	}
	limit := int64(fc.config.MaxMemoryMB) * 1024 * 1024
	if size > limit {
		return fmt.Errorf("file of %d bytes exceeds FileCache memory limit of %d MB", size, fc.config.MaxMemoryMB)
	}
	for fc.mappedBytes+size > limit && fc.cache.Len() > 0 {
		fc.cache.RemoveOldest()
	}
	return nil
}

// load maps a file, falling back to os.ReadFile if mmap fails.
func (fc *fileCacheImpl) load(filePath string) (*mappedFile, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", filePath, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file %q: %w", filePath, err)
	}

	mf := &mappedFile{size: info.Size(), modTime: info.ModTime(), mappedAt: time.Now()}

	// Zero-length files cannot be mapped.
	if info.Size() == 0 {
		return mf, nil
	}

	mapping, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		fc.logger.Warn("mmap failed, using fallback", "file", filePath, "size", info.Size(), "error", err)
		fc.record(func(s *FileCacheStats) { s.MmapFailures++ })

		data, readErr := os.ReadFile(filePath)
		if readErr != nil {
			return nil, fmt.Errorf("mmap failed and fallback failed for %q: mmap error: %v, read error: %w",
				filePath, err, readErr)
		}
		mf.data = data
		return mf, nil
	}

	mf.mapping = mapping
	mf.data = mapping
	return mf, nil
}

// Invalidate drops the cached mapping for filePath.
func (fc *fileCacheImpl) Invalidate(filePath string) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.cache.Remove(filePath)
}

// Size returns number of currently cached files.
func (fc *fileCacheImpl) Size() int {
	return fc.cache.Len()
}

// Stats returns current cache metrics.
func (fc *fileCacheImpl) Stats() FileCacheStats {
	fc.mu.RLock()
	cached := fc.cache.Len()
	mapped := fc.mappedBytes
	fc.mu.RUnlock()

	fc.statsMu.Lock()
	defer fc.statsMu.Unlock()
	stats := fc.stats
	stats.FilesCached = cached
	stats.MappedBytes = mapped
	return stats
}

// Close unmaps all files. The cache remains usable afterwards.
func (fc *fileCacheImpl) Close() error {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.cache.Purge()

	fc.statsMu.Lock()
	defer fc.statsMu.Unlock()
	fc.logger.Debug("FileCache closed",
		"cache_hits", fc.stats.CacheHits,
		"cache_misses", fc.stats.CacheMisses,
		"mmap_failures", fc.stats.MmapFailures)
	return nil
}

func (fc *fileCacheImpl) record(update func(*FileCacheStats)) {
	fc.statsMu.Lock()
	update(&fc.stats)
	fc.statsMu.Unlock()
}
