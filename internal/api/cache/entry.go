package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"
)

// Entry is a single cached response with TTL metadata.
type Entry struct {
	// Key is the cache key, a SHA256 hash of the request identity.
	Key string `json:"key"`

	// Data is the cached response body.
	Data json.RawMessage `json:"data"`

	// CreatedAt is when the entry was written.
	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt is when the entry stops being served.
	ExpiresAt time.Time `json:"expires_at"`

	// TTLSeconds records the TTL the entry was written with.
	TTLSeconds int `json:"ttl_seconds"`
}

// NewEntry creates an entry expiring ttlSeconds from now.
func NewEntry(key string, data json.RawMessage, ttlSeconds int) *Entry {
	now := time.Now()
	return &Entry{
		Key:        key,
		Data:       data,
		CreatedAt:  now,
		ExpiresAt:  now.Add(time.Duration(ttlSeconds) * time.Second),
		TTLSeconds: ttlSeconds,
	}
}

// IsExpired reports whether the entry is past its expiration time.
func (e *Entry) IsExpired() bool {
	return time.Now().After(e.ExpiresAt)
}

// IsValid reports whether the entry can still be served.
func (e *Entry) IsValid() bool {
	return !e.IsExpired()
}

// Age returns the duration since the entry was written.
func (e *Entry) Age() time.Duration {
	return time.Since(e.CreatedAt)
}

// Key derives a deterministic cache key from the parts identifying a
// request. Callers include everything that affects the response: the
// request path, the organization, and any query or body parameters.
func Key(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])
}
