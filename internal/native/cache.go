package native

import (
	"sync"
)

// Cache keeps libraries resident for the life of the process. Each path is
// opened at most once, including under concurrent first use, and nothing in
// the cache is ever closed.
type Cache struct {
	loader Loader

	mu    sync.Mutex
	libs  map[string]Library
	order []string
}

// NewCache returns an empty cache that opens libraries with loader.
func NewCache(loader Loader) *Cache {
	return &Cache{
		loader: loader,
		libs:   make(map[string]Library),
	}
}

var (
	processOnce  sync.Once
	processCache *Cache
)

// Process returns the cache shared by the whole process, backed by
// DefaultLoader.
func Process() *Cache {
	processOnce.Do(func() {
		processCache = NewCache(DefaultLoader())
	})
	return processCache
}

// Load returns the resident library for path, opening it if needed. The
// boolean reports whether the library was already resident. A failed open is
// not remembered.
func (c *Cache) Load(path string) (Library, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if lib, ok := c.libs[path]; ok {
		return lib, true, nil
	}

	lib, err := c.loader.Open(path)
	if err != nil {
		return nil, false, err
	}
	c.libs[path] = lib
	c.order = append(c.order, path)
	return lib, false, nil
}

// Get returns the resident library for path, if any.
func (c *Cache) Get(path string) (Library, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	lib, ok := c.libs[path]
	return lib, ok
}

// Resident returns the resident paths in the order they were opened.
func (c *Cache) Resident() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]string(nil), c.order...)
}
