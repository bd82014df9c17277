// Package assets resolves and loads demo data files (models, textures)
// relative to a data directory.
package assets

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNotFound is returned when a data file does not exist.
var ErrNotFound = errors.New("data file not found")

// Manager loads files from a data directory and caches their contents.
type Manager struct {
	dir   string
	cache *Cache
	mu    sync.RWMutex
}

// NewManager creates a manager rooted at dir. An empty dir uses paths as
// given.
func NewManager(dir string) *Manager {
	return &Manager{
		dir:   filepath.Clean(dir),
		cache: NewCache(),
	}
}

// Dir returns the data directory.
func (m *Manager) Dir() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dir
}

// SetDir changes the data directory and drops cached files.
func (m *Manager) SetDir(dir string) {
	m.mu.Lock()
	m.dir = filepath.Clean(dir)
	m.mu.Unlock()
	m.cache.Clear()
}

// Resolve returns the file system path of name. Names already starting with
// the data directory (compared without case) are returned unchanged, as are
// absolute paths.
func (m *Manager) Resolve(name string) string {
	dir := m.Dir()
	if dir == "" || dir == "." || filepath.IsAbs(name) {
		return name
	}
	prefix := dir + string(filepath.Separator)
	slashed := dir + "/"
	if len(name) > len(prefix) &&
		(strings.EqualFold(name[:len(prefix)], prefix) || strings.EqualFold(name[:len(slashed)], slashed)) {
		return name
	}
	return filepath.Join(dir, name)
}

// Load reads a data file.
func (m *Manager) Load(name string) ([]byte, error) {
	path := m.Resolve(name)

	// Check cache first
	if data, ok := m.cache.Get(path); ok {
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	m.cache.Set(path, data)
	return data, nil
}

// Open returns a reader over a data file.
func (m *Manager) Open(name string) (io.ReadCloser, error) {
	data, err := m.Load(name)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Close drops all cached files.
func (m *Manager) Close() {
	m.cache.Clear()
}

// Cache is an in-memory cache of file contents keyed by path.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Len returns the number of cached files.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
