package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const fileSuffix = ".xml.cache"

// ErrNotCached indicates the URL has no usable cache entry and the caller
// should fetch the document from upstream.
var ErrNotCached = errors.New("feed not cached")

// ReadError indicates an entry existed and was fresh but could not be read.
// It is distinct from a miss: the service reports it as a fetch failure
// instead of silently refetching.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read cache entry %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// FileCache stores one raw feed document per distinct request URL, named by
// the SHA-256 of the URL. Entries older than the TTL are treated as misses.
// A TTL of zero disables the cache entirely: Get always misses and Put never
// persists.
type FileCache struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

func NewFileCache(dir string, ttlSeconds int) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &FileCache{
		dir: dir,
		ttl: time.Duration(ttlSeconds) * time.Second,
		now: time.Now,
	}, nil
}

// Get returns the cached document for url, ErrNotCached on a miss or stale
// entry, or a *ReadError when a fresh entry could not be read.
func (c *FileCache) Get(url string) ([]byte, error) {
	if c.ttl <= 0 {
		return nil, ErrNotCached
	}

	path := c.entryPath(url)

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, ErrNotCached
	}
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}

	if c.now().Sub(info.ModTime()) > c.ttl {
		return nil, ErrNotCached
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}

	return data, nil
}

// Put writes the document for url, replacing any previous entry wholesale.
// The write goes through a temp file and rename so concurrent readers never
// observe a torn entry.
func (c *FileCache) Put(url string, data []byte) error {
	if c.ttl <= 0 {
		return nil
	}

	path := c.entryPath(url)

	tmp, err := os.CreateTemp(c.dir, "put-*")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write cache entry: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to store cache entry: %w", err)
	}

	return nil
}

// EvictAll removes every cache entry. Used by the reset lifecycle; TTL does
// not apply here, entries are removed regardless of age.
func (c *FileCache) EvictAll() error {
	entries, err := filepath.Glob(filepath.Join(c.dir, "*"+fileSuffix))
	if err != nil {
		return fmt.Errorf("failed to list cache entries: %w", err)
	}

	for _, entry := range entries {
		if err := os.Remove(entry); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove cache entry %s: %w", entry, err)
		}
	}

	return nil
}

func (c *FileCache) entryPath(url string) string {
	sum := sha256.Sum256([]byte(url))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:])+fileSuffix)
}
