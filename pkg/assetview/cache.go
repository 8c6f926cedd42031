package assetview

import (
	"encoding/json"
	"fmt"
	"os"
)

// Cache persists the last-known asset collection as a single JSON blob. It is
// a fallback for when the remote store is unreachable, never a source of
// truth once it is.
type Cache struct {
	path string
}

// NewCache creates a cache backed by the given file path.
func NewCache(path string) *Cache {
	return &Cache{path: path}
}

// Save replaces the cached collection.
func (c *Cache) Save(records []Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode asset cache: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write asset cache: %w", err)
	}
	return nil
}

// Load reads the cached collection. A missing file yields (nil, nil).
func (c *Cache) Load() ([]Record, error) {
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read asset cache: %w", err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode asset cache: %w", err)
	}
	return records, nil
}
