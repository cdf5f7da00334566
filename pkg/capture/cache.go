package capture

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
)

// Cache stores rendered screenshots on disk, one file per (url, width,
// height) fingerprint, and keeps the file count at or below max by deleting
// the least-recently-modified entries.
//
// Concurrent writers to the same key race at the filesystem level; last
// write wins, which is fine since renders for identical keys are expected to
// be near-identical.
type Cache struct {
	dir string
	max int
}

// NewCache creates the cache directory if needed.
func NewCache(dir string, max int) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{dir: dir, max: max}, nil
}

// Key derives the cache fingerprint for a request. Quality, format and the
// full-page flag are deliberately left out of the key, matching the
// behavior the endpoints were built around; callers that vary those bypass
// the cache instead.
func (c *Cache) Key(url string, width, height int) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s_%d_%d", url, width, height)))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached bytes for the fingerprint, or false on a miss.
// Read errors are treated as misses.
func (c *Cache) Get(url string, width, height int) ([]byte, bool) {
	path := c.path(url, width, height)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Failed to read cached screenshot %s: %v", path, err)
		}
		return nil, false
	}
	return data, true
}

// Put writes the bytes under the fingerprint and then prunes the cache back
// to its maximum size. Failures are logged, never propagated; caching is
// best effort.
func (c *Cache) Put(url string, width, height int, data []byte) {
	path := c.path(url, width, height)
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Printf("Failed to cache screenshot %s: %v", path, err)
		return
	}
	c.Sweep()
}

// Sweep deletes the oldest-by-modification-time entries until the file count
// is back at the maximum. Also run periodically from the cron scheduler so
// the bound holds even if a Put's sweep failed.
func (c *Cache) Sweep() {
	paths, err := filepath.Glob(filepath.Join(c.dir, "*.jpg"))
	if err != nil {
		log.Printf("Failed to list cache directory: %v", err)
		return
	}
	if len(paths) <= c.max {
		return
	}

	type entry struct {
		path  string
		mtime int64
	}
	entries := make([]entry, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		entries = append(entries, entry{path: p, mtime: info.ModTime().UnixNano()})
	}

	// Files can vanish between Glob and Stat when sweeps run concurrently;
	// re-check the bound against what actually stat-ed.
	if len(entries) <= c.max {
		return
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].mtime < entries[j].mtime })

	for _, e := range entries[:len(entries)-c.max] {
		if err := os.Remove(e.path); err != nil {
			log.Printf("Failed to remove old cache file %s: %v", e.path, err)
		}
	}
}

func (c *Cache) path(url string, width, height int) string {
	return filepath.Join(c.dir, c.Key(url, width, height)+".jpg")
}
