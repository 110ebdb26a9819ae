package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileCache stores entries as JSON files under a root directory. Keys are
// content hashes, so entries never go stale in the usual sense; the TTL
// only bounds disk growth for drawings that are never traced again.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-backed cache rooted at dir, creating the
// directory if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// entry is the on-disk form of one cached artifact. ExpiresAt is unix
// seconds; zero means the entry never expires.
type entry struct {
	Data      []byte `json:"data"`
	ExpiresAt int64  `json:"expires_at,omitempty"`
}

// Get retrieves a value. Unreadable or expired entries are removed and
// reported as misses, never as errors; the caller recomputes and re-Sets.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if e.ExpiresAt != 0 && time.Now().Unix() >= e.ExpiresAt {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return e.Data, true, nil
}

// Set stores a value. A non-zero ttl records an expiry; a negative ttl
// produces an entry that is already expired, which the next Get evicts.
// The write goes through a temp file so a concurrent Get never observes a
// partial entry.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	e := entry{Data: data}
	if ttl != 0 {
		e.ExpiresAt = time.Now().Add(ttl).Unix()
	}

	blob, err := json.Marshal(e)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmp := fmt.Sprintf("%s.tmp%d", path, os.Getpid())
	if err := os.WriteFile(tmp, blob, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Delete removes a value. Deleting a missing key is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close is a no-op; every operation already leaves the directory
// consistent.
func (c *FileCache) Close() error {
	return nil
}

// path maps a key to its file, sharded by the first hash byte so a large
// workspace of drawings does not pile thousands of entries into one
// directory.
func (c *FileCache) path(key string) string {
	sum := Hash([]byte(key))
	return filepath.Join(c.dir, sum[:2], sum[2:]+".json")
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
