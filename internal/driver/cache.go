package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"decomment/internal/source"
)

// Current schema version - increment when cacheEntry format changes
const cleanCacheSchemaVersion uint16 = 1

// CleanCache remembers the content hash of files that were last seen without
// comments, so an untouched file can be reported unchanged without scanning.
// Thread-safe for concurrent access. A nil *CleanCache is a valid, disabled cache.
type CleanCache struct {
	mu  sync.RWMutex
	dir string
}

type cacheEntry struct {
	Schema uint16
	Path   string
	Hash   source.Digest
}

// OpenCleanCache opens the cache at $XDG_CACHE_HOME/<app> (or ~/.cache/<app>).
func OpenCleanCache(app string) (*CleanCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewCleanCache(filepath.Join(base, app))
}

// NewCleanCache opens a cache rooted at dir, creating it if needed.
func NewCleanCache(dir string) (*CleanCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &CleanCache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *CleanCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func cacheKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	sum := sha256.Sum256([]byte(path))
	return hex.EncodeToString(sum[:])
}

func (c *CleanCache) pathFor(path string) string {
	return filepath.Join(c.dir, "files", cacheKey(path)+".mp")
}

// Known reports whether path was last seen comment-free with exactly this content.
// Any read or decode failure counts as a miss.
func (c *CleanCache) Known(path string, hash source.Digest) bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(path))
	if err != nil {
		return false
	}
	defer func() {
		_ = f.Close()
	}()

	var entry cacheEntry
	if err := msgpack.NewDecoder(f).Decode(&entry); err != nil {
		return false
	}
	return entry.Schema == cleanCacheSchemaVersion && entry.Hash == hash
}

// Remember records that path with the given content hash has no comments.
func (c *CleanCache) Remember(path string, hash source.Digest) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(path)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	entry := cacheEntry{Schema: cleanCacheSchemaVersion, Path: path, Hash: hash}
	if err = msgpack.NewEncoder(f).Encode(&entry); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// DropAll invalidates the cache.
func (c *CleanCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
