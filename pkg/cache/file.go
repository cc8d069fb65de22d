package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// entryVersion is bumped whenever the on-disk envelope or the cached
// payload formats change incompatibly. Entries written by other versions
// read as misses and are recomputed.
const entryVersion = 1

// entry is the on-disk envelope around a cached payload. Stage records
// which pipeline stage produced the payload (layout or artifact) so a
// stale or misfiled entry can never be served to the wrong stage.
type entry struct {
	Version   int       `json:"version"`
	Stage     string    `json:"stage"`
	SavedAt   time.Time `json:"saved_at"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
	Data      []byte    `json:"data"`
}

// FileCache stores layouts and rendered artifacts as envelope files under
// a base directory, grouped by pipeline stage.
type FileCache struct {
	dir string
}

// NewFileCache creates a file cache rooted at dir, creating it if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Get retrieves a cached payload. Unreadable, expired, foreign-version,
// or misfiled entries count as misses and are removed.
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
	if e.Version != entryVersion || e.Stage != keyStage(key) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if !e.ExpiresAt.IsZero() && time.Now().After(e.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return e.Data, true, nil
}

// Set stores a payload under key. A zero ttl means the entry never expires.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	e := entry{
		Version: entryVersion,
		Stage:   keyStage(key),
		SavedAt: time.Now(),
		Data:    data,
	}
	if ttl > 0 {
		e.ExpiresAt = e.SavedAt.Add(ttl)
	}

	encoded, err := json.Marshal(e)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	return os.WriteFile(path, encoded, 0644)
}

// Delete removes a cached entry. Deleting a missing key is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing; file entries need no teardown.
func (c *FileCache) Close() error {
	return nil
}

// path maps a cache key to <dir>/<stage>/<shard>/<digest>.json. The stage
// directory keeps layouts and artifacts apart on disk, and the two-char
// shard keeps any one directory from collecting thousands of files.
func (c *FileCache) path(key string) string {
	digest := Hash([]byte(key))
	return filepath.Join(c.dir, keyStage(key), digest[:2], digest[2:]+".json")
}

// keyStage extracts the stage prefix from a key such as "layout:abc…".
// Keys without a stage prefix share a catch-all directory.
func keyStage(key string) string {
	if stage, _, ok := strings.Cut(key, ":"); ok && stage != "" {
		return stage
	}
	return "misc"
}

var _ Cache = (*FileCache)(nil)
