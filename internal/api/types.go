package api

import (
	"fmt"
	"time"
)

// Record is an opaque record returned by the server: a mapping from field
// name to value. Field order inside the map is meaningless; the position of
// a record inside a fetched sequence is significant and preserved end to end.
type Record map[string]any

// ID returns the record's "id" field rendered as a string, or "" when the
// record has none.
func (r Record) ID() string {
	v, ok := r["id"]
	if !ok {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// Field returns the named field rendered as a display string.
// Missing fields and nil values render as "".
func (r Record) Field(name string) string {
	v, ok := r[name]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// EntityInfo describes one master entity of the organization.
type EntityInfo struct {
	// Name is the entity identifier used in API paths (e.g. "projects").
	Name string `json:"name"`

	// Label is the human-readable entity name.
	Label string `json:"label"`

	// RecordCount is the number of records the organization holds.
	RecordCount int `json:"recordCount"`
}

// Webhook is one outbound webhook subscription of the organization.
type Webhook struct {
	ID      string   `json:"id"`
	URL     string   `json:"url"`
	Events  []string `json:"events"`
	Enabled bool     `json:"enabled"`

	// LastStatus is the HTTP status of the most recent delivery attempt
	// (0 when never delivered).
	LastStatus int `json:"lastStatus"`

	// LastDelivery is the timestamp of the most recent delivery attempt.
	LastDelivery time.Time `json:"lastDelivery"`
}

// AuditEntry is one audit log record. The free-text search query is parsed
// server-side; clients only submit the query string and display results.
type AuditEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	RecordID  string    `json:"recordId"`

	// Summary is a server-rendered one-line description of the change.
	Summary string `json:"summary"`

	// Changes maps field names to "old -> new" descriptions.
	Changes map[string]string `json:"changes,omitempty"`
}

// AuditQuery is the search request for audit entries.
type AuditQuery struct {
	// Query is a free-text search string, interpreted server-side.
	Query string `json:"query"`

	// From and To bound the search window; zero values mean unbounded.
	From time.Time `json:"from,omitempty"`
	To   time.Time `json:"to,omitempty"`

	// Limit caps the number of returned entries (0 = server default).
	Limit int `json:"limit,omitempty"`
}

// ImportRowError describes one rejected row of an import validation.
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportValidation is the server's dry-run verdict on an uploaded file.
type ImportValidation struct {
	// JobID identifies the validated upload; commits reference it.
	JobID string `json:"jobId"`

	TotalRows int `json:"totalRows"`
	ValidRows int `json:"validRows"`

	Errors []ImportRowError `json:"errors,omitempty"`
}

// Valid reports whether the validated file can be committed as-is.
func (v ImportValidation) Valid() bool {
	return v.TotalRows > 0 && len(v.Errors) == 0
}

// ImportResult is the outcome of committing a validated import job.
type ImportResult struct {
	JobID   string `json:"jobId"`
	Created int    `json:"created"`
	Updated int    `json:"updated"`
	Skipped int    `json:"skipped"`
}

// RollbackResult is the outcome of reverting a record to an earlier version.
type RollbackResult struct {
	Entity          string `json:"entity"`
	RecordID        string `json:"recordId"`
	RestoredVersion int    `json:"restoredVersion"`
}

// HealthResponse is the server health and version report.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
