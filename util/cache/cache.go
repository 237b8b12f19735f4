package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	CACHE_PATH = filepath.Join(homeDir(), ".schoolfactory", "cache.json")

	defaultOnce  sync.Once
	defaultCache *FileCache
)

func homeDir() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return dir
}

// FileCache is a string map persisted as json after every write. Keys are
// case insensitive so checksummed and lower cased addresses share entries.
type FileCache struct {
	mu   sync.Mutex
	path string
	Data map[string]string `json:"Data"`
}

// Open loads the cache at path. A missing or corrupt file yields an empty
// cache that will overwrite it on the next Set.
func Open(path string) *FileCache {
	c := &FileCache{
		path: path,
		Data: map[string]string{},
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return c
	}
	if err := json.Unmarshal(content, c); err != nil || c.Data == nil {
		c.Data = map[string]string{}
	}
	return c
}

func (c *FileCache) persist() error {
	jsonData, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(c.path, jsonData, 0o644)
}

func (c *FileCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, found := c.Data[strings.ToLower(key)]
	return value, found
}

func (c *FileCache) Set(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Data[strings.ToLower(key)] = value
	if err := c.persist(); err != nil {
		return fmt.Errorf("persisting cache to %s: %w", c.path, err)
	}
	return nil
}

func Default() *FileCache {
	defaultOnce.Do(func() {
		defaultCache = Open(CACHE_PATH)
	})
	return defaultCache
}

// ABIKey is the key explorer ABIs are cached under.
func ABIKey(network, address string) string {
	return fmt.Sprintf("abi:%s:%s", network, address)
}
