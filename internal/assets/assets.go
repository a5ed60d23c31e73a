// Package assets loads shader files from an override directory or the
// built-in set, caching the bytes it has read.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/Faultbox/glscene/internal/assets/shaders"
)

// Manager resolves asset names against a list of file systems.
// File systems are searched in reverse order (last added = highest priority).
type Manager struct {
	sources []source
	cache   *Cache
}

type source struct {
	name string
	fsys fs.FS
}

// NewManager creates a manager backed by the built-in shaders.
func NewManager() *Manager {
	m := &Manager{cache: NewCache()}
	m.AddFS("embedded", shaders.FS)
	return m
}

// AddFS adds a file system with the highest priority so far.
func (m *Manager) AddFS(name string, fsys fs.FS) {
	m.sources = append(m.sources, source{name: name, fsys: fsys})
}

// AddDir adds an on-disk directory whose files override earlier sources.
func (m *Manager) AddDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("opening asset dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("asset dir %s: not a directory", dir)
	}
	m.AddFS(dir, os.DirFS(dir))
	return nil
}

// Load returns the contents of the named file.
func (m *Manager) Load(name string) ([]byte, error) {
	if data, ok := m.cache.Get(name); ok {
		return data, nil
	}

	for i := len(m.sources) - 1; i >= 0; i-- {
		data, err := fs.ReadFile(m.sources[i].fsys, name)
		if err == nil {
			m.cache.Set(name, data)
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s from %s: %w", name, m.sources[i].name, err)
		}
	}

	return nil, fmt.Errorf("asset not found: %s: %w", name, fs.ErrNotExist)
}

// Close drops cached data.
func (m *Manager) Close() {
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte

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
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	return c.hits, c.misses
}

// Stats returns the manager's cache statistics.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}
