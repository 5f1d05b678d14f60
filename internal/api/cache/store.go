package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// entryFileExtension is the file extension used for cache entries.
const entryFileExtension = ".json"

// Common cache errors.
var (
	ErrCacheNotFound   = errors.New("cache entry not found")
	ErrCacheExpired    = errors.New("cache entry expired")
	ErrInvalidCacheKey = errors.New("cache key cannot be empty")
	ErrCacheDisabled   = errors.New("cache is disabled")
)

// FileStore is a file-based cache with TTL expiration. Each entry lives in
// its own JSON file under the store directory. Safe for concurrent use.
type FileStore struct {
	directory  string
	enabled    bool
	ttlSeconds int

	mu sync.RWMutex
}

// NewFileStore creates a file-based cache store rooted at directory,
// creating it if needed. A disabled store rejects every operation with
// ErrCacheDisabled so callers can skip caching without branching.
func NewFileStore(directory string, enabled bool, ttlSeconds int) (*FileStore, error) {
	if !enabled {
		return &FileStore{enabled: false}, nil
	}

	if directory == "" {
		return nil, errors.New("cache directory cannot be empty")
	}

	if err := os.MkdirAll(directory, 0750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &FileStore{
		directory:  directory,
		enabled:    true,
		ttlSeconds: ttlSeconds,
	}, nil
}

// Get retrieves a cache entry by key. Expired entries are removed and
// reported as ErrCacheExpired.
func (s *FileStore) Get(key string) (*Entry, error) {
	if !s.enabled {
		return nil, ErrCacheDisabled
	}
	if key == "" {
		return nil, ErrInvalidCacheKey
	}

	s.mu.RLock()
	filePath := s.keyToFilePath(key)
	data, err := os.ReadFile(filePath)
	s.mu.RUnlock()

	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrCacheNotFound
		}
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	var entry Entry
	if unmarshalErr := json.Unmarshal(data, &entry); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal cache entry: %w", unmarshalErr)
	}

	if entry.IsExpired() {
		s.mu.Lock()
		_ = os.Remove(filePath)
		s.mu.Unlock()
		return nil, ErrCacheExpired
	}

	return &entry, nil
}

// Set stores data under key with the store's default TTL, overwriting any
// existing entry.
func (s *FileStore) Set(key string, data json.RawMessage) error {
	return s.SetWithTTL(key, data, s.ttlSeconds)
}

// SetWithTTL stores data under key with an explicit TTL in seconds.
func (s *FileStore) SetWithTTL(key string, data json.RawMessage, ttlSeconds int) error {
	if !s.enabled {
		return ErrCacheDisabled
	}
	if key == "" {
		return ErrInvalidCacheKey
	}

	entry := NewEntry(key, data, ttlSeconds)
	entryData, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	filePath := s.keyToFilePath(key)

	// Write to a temporary file first, then rename for atomicity.
	tempPath := filePath + ".tmp"
	if writeErr := os.WriteFile(tempPath, entryData, 0600); writeErr != nil {
		return fmt.Errorf("failed to write cache file: %w", writeErr)
	}

	if renameErr := os.Rename(tempPath, filePath); renameErr != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename cache file: %w", renameErr)
	}

	return nil
}

// Delete removes a cache entry by key. Missing entries are not an error.
func (s *FileStore) Delete(key string) error {
	if !s.enabled {
		return ErrCacheDisabled
	}
	if key == "" {
		return ErrInvalidCacheKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.keyToFilePath(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete cache file: %w", err)
	}
	return nil
}

// Clear removes every entry from the store.
func (s *FileStore) Clear() error {
	if !s.enabled {
		return ErrCacheDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.directory)
	if err != nil {
		return fmt.Errorf("failed to read cache directory: %w", err)
	}

	for _, dirEntry := range entries {
		if dirEntry.IsDir() || filepath.Ext(dirEntry.Name()) != entryFileExtension {
			continue
		}
		filePath := filepath.Join(s.directory, dirEntry.Name())
		if removeErr := os.Remove(filePath); removeErr != nil {
			return fmt.Errorf("failed to remove cache file %s: %w", dirEntry.Name(), removeErr)
		}
	}

	return nil
}

// CleanupExpired removes all expired entries. Unreadable or malformed
// files are skipped.
func (s *FileStore) CleanupExpired() error {
	if !s.enabled {
		return ErrCacheDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.directory)
	if err != nil {
		return fmt.Errorf("failed to read cache directory: %w", err)
	}

	for _, dirEntry := range entries {
		if dirEntry.IsDir() || filepath.Ext(dirEntry.Name()) != entryFileExtension {
			continue
		}

		filePath := filepath.Join(s.directory, dirEntry.Name())
		data, readErr := os.ReadFile(filePath)
		if readErr != nil {
			continue
		}

		var entry Entry
		if unmarshalErr := json.Unmarshal(data, &entry); unmarshalErr != nil {
			continue
		}

		if entry.IsExpired() {
			_ = os.Remove(filePath)
		}
	}

	return nil
}

// Count returns the number of entries, including expired ones.
func (s *FileStore) Count() (int, error) {
	if !s.enabled {
		return 0, ErrCacheDisabled
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.directory)
	if err != nil {
		return 0, fmt.Errorf("failed to read cache directory: %w", err)
	}

	count := 0
	for _, dirEntry := range entries {
		if !dirEntry.IsDir() && filepath.Ext(dirEntry.Name()) == entryFileExtension {
			count++
		}
	}
	return count, nil
}

// Size returns the total size of all entry files in bytes.
func (s *FileStore) Size() (int64, error) {
	if !s.enabled {
		return 0, ErrCacheDisabled
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.directory)
	if err != nil {
		return 0, fmt.Errorf("failed to read cache directory: %w", err)
	}

	var totalSize int64
	for _, dirEntry := range entries {
		if dirEntry.IsDir() || filepath.Ext(dirEntry.Name()) != entryFileExtension {
			continue
		}
		info, infoErr := dirEntry.Info()
		if infoErr != nil {
			continue
		}
		totalSize += info.Size()
	}
	return totalSize, nil
}

// IsEnabled reports whether caching is active.
func (s *FileStore) IsEnabled() bool {
	return s.enabled
}

// Directory returns the cache directory path.
func (s *FileStore) Directory() string {
	return s.directory
}

// TTL returns the default TTL in seconds.
func (s *FileStore) TTL() int {
	return s.ttlSeconds
}

// keyToFilePath converts a cache key to a file path. Keys produced by Key
// are hex already; anything else is sanitized for filesystem safety.
func (s *FileStore) keyToFilePath(key string) string {
	safeKey := strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(key)
	return filepath.Join(s.directory, safeKey+entryFileExtension)
}
