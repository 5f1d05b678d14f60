// Package cache provides file-based caching with TTL expiration for
// server responses.
//
// Record listings and audit search results can be large and are often
// requested repeatedly while an operator iterates on filters. Entries are
// stored as JSON files under ~/.pfadmin/cache/ with SHA256-derived keys,
// so lookups are deterministic and no external storage is needed. Stale
// entries expire automatically and are removed on access.
package cache
