package cache

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Lookup fetches and decodes a cached value. The boolean reports a cache
// hit; misses, expiry, and a disabled store all read as a clean miss so
// callers fall through to the server.
func Lookup[T any](s *FileStore, key string) (T, bool) {
	var zero T

	entry, err := s.Get(key)
	if err != nil {
		return zero, false
	}

	var value T
	if unmarshalErr := json.Unmarshal(entry.Data, &value); unmarshalErr != nil {
		// A corrupt entry is useless; drop it so the next write replaces it.
		_ = s.Delete(key)
		return zero, false
	}

	return value, true
}

// Store encodes and caches a value under key. A disabled store is a no-op.
func Store[T any](s *FileStore, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for cache: %w", err)
	}

	if setErr := s.Set(key, data); setErr != nil {
		if errors.Is(setErr, ErrCacheDisabled) {
			return nil
		}
		return setErr
	}
	return nil
}
