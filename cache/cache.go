// Package cache provides the two-tier response cache backing the PokéAPI
// client: a bounded in-memory LRU in front of gzip-compressed files on disk.
//
// Entries are raw response bytes keyed by a category ("pokemon", "move",
// "location", ...) and an identifier. Disk entries expire by file age and are
// deleted when found expired or corrupted; the memory tier evicts least
// recently used entries past its size bound. All methods are safe for
// concurrent use.
package cache

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	defaultMaxAge      = 30 * 24 * time.Hour
	defaultMemoryItems = 128
)

// Cache is a two-tier byte cache. The zero value is not usable; create
// instances with [New].
type Cache struct {
	dir    string
	maxAge time.Duration
	mem    *lru.Cache[string, []byte]

	mu    sync.Mutex
	stats Stats
}

// Stats is a point-in-time snapshot of cache effectiveness counters.
type Stats struct {
	MemoryHits int
	DiskHits   int
	Misses     int
	Writes     int
}

// Hits returns the combined memory and disk hit count.
func (s Stats) Hits() int {
	return s.MemoryHits + s.DiskHits
}

// HitRate returns the fraction of lookups served from cache, in [0, 1].
func (s Stats) HitRate() float64 {
	total := s.Hits() + s.Misses
	if total == 0 {
		return 0
	}

	return float64(s.Hits()) / float64(total)
}

// Option configures a [Cache].
type Option func(*Cache)

// WithMaxAge sets how old a disk entry may be before it is treated as
// expired. The default is 30 days.
func WithMaxAge(d time.Duration) Option {
	return func(c *Cache) {
		c.maxAge = d
	}
}

// WithMemoryItems bounds the in-memory tier. The default is 128 entries.
func WithMemoryItems(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.resizeMem(n)
		}
	}
}

// New creates a [Cache] rooted at dir, creating the directory if needed.
func New(dir string, opts ...Option) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	mem, err := lru.New[string, []byte](defaultMemoryItems)
	if err != nil {
		return nil, fmt.Errorf("creating memory cache: %w", err)
	}

	c := &Cache{
		dir:    dir,
		maxAge: defaultMaxAge,
		mem:    mem,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *Cache) resizeMem(n int) {
	c.mem.Resize(n)
}

// Get returns the cached bytes for category/key, consulting memory first and
// then disk. A disk hit is promoted into the memory tier. Expired or
// unreadable disk entries are removed and reported as misses.
func (c *Cache) Get(category, key string) ([]byte, bool) {
	ck := cacheKey(category, key)

	if data, ok := c.mem.Get(ck); ok {
		c.count(func(s *Stats) { s.MemoryHits++ })

		return data, true
	}

	path := c.path(category, key)

	info, err := os.Stat(path)
	if err != nil || time.Since(info.ModTime()) > c.maxAge {
		if err == nil {
			_ = os.Remove(path)
		}

		c.count(func(s *Stats) { s.Misses++ })

		return nil, false
	}

	data, err := readGzip(path)
	if err != nil {
		// Corrupted entry; drop it rather than serving garbage.
		_ = os.Remove(path)

		c.count(func(s *Stats) { s.Misses++ })

		return nil, false
	}

	c.mem.Add(ck, data)
	c.count(func(s *Stats) { s.DiskHits++ })

	return data, true
}

// Put stores data for category/key in both tiers.
func (c *Cache) Put(category, key string, data []byte) error {
	ck := cacheKey(category, key)
	c.mem.Add(ck, data)

	path := c.path(category, key)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating cache subdir: %w", err)
	}

	if err := writeGzip(path, data); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}

	c.count(func(s *Stats) { s.Writes++ })

	return nil
}

// Stats returns a snapshot of the session's cache counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.stats
}

// CleanupExpired removes every expired entry on disk and returns how many
// files were deleted.
func (c *Cache) CleanupExpired() (int, error) {
	removed := 0

	err := filepath.WalkDir(c.dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".json.gz") {
			return err
		}

		info, statErr := d.Info()
		if statErr != nil {
			return statErr
		}

		if time.Since(info.ModTime()) > c.maxAge {
			if rmErr := os.Remove(path); rmErr == nil {
				removed++
			}
		}

		return nil
	})
	if err != nil {
		return removed, fmt.Errorf("walking cache dir: %w", err)
	}

	return removed, nil
}

func (c *Cache) count(f func(*Stats)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f(&c.stats)
}

func (c *Cache) path(category, key string) string {
	return filepath.Join(c.dir, sanitize(category), sanitize(key)+".json.gz")
}

func cacheKey(category, key string) string {
	return sanitize(category) + "/" + sanitize(key)
}

// sanitize maps an arbitrary identifier (which may be a full URL) onto a safe
// file name.
func sanitize(s string) string {
	s = strings.ToLower(s)

	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, s)
}

func readGzip(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	return io.ReadAll(zr)
}

func writeGzip(path string, data []byte) error {
	var buf bytes.Buffer

	zw := gzip.NewWriter(&buf)

	if _, err := zw.Write(data); err != nil {
		return err
	}

	if err := zw.Close(); err != nil {
		return err
	}

	// Write-then-rename keeps concurrent readers from seeing partial files.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}
