package window

import (
	"strings"

	"github.com/eutimioliusbel/PFA2.2-sub004/internal/api"
)

// RecordFilter filters a record sequence by case-insensitive substring match
// across a configured set of displayed fields, preserving source order.
//
// The result is memoized on (records, query, fields): Apply recomputes only
// when the query differs from the previous call, and SetRecords/SetFields
// invalidate the memo explicitly. Views call Apply on every redraw, so the
// memo keeps steady-state redraws free of list scans.
type RecordFilter struct {
	records []api.Record
	fields  []string

	lastQuery  string
	lastResult []api.Record
	memoValid  bool
}

// NewRecordFilter creates a filter over the given records, matching against
// the given field names.
func NewRecordFilter(records []api.Record, fields []string) *RecordFilter {
	return &RecordFilter{records: records, fields: fields}
}

// SetRecords replaces the source sequence and invalidates the memo.
func (f *RecordFilter) SetRecords(records []api.Record) {
	f.records = records
	f.memoValid = false
}

// SetFields replaces the matched field set and invalidates the memo.
func (f *RecordFilter) SetFields(fields []string) {
	f.fields = fields
	f.memoValid = false
}

// Records returns the unfiltered source sequence.
func (f *RecordFilter) Records() []api.Record {
	return f.records
}

// Apply returns the records matching query, in source order. An empty query
// returns the full sequence. The returned slice is shared with the memo and
// must not be mutated by callers.
func (f *RecordFilter) Apply(query string) []api.Record {
	if f.memoValid && query == f.lastQuery {
		return f.lastResult
	}

	f.lastQuery = query
	f.memoValid = true

	if query == "" {
		f.lastResult = f.records
		return f.lastResult
	}

	needle := strings.ToLower(query)
	matched := make([]api.Record, 0, len(f.records))
	for _, rec := range f.records {
		if recordMatches(rec, f.fields, needle) {
			matched = append(matched, rec)
		}
	}
	f.lastResult = matched
	return f.lastResult
}

// recordMatches reports whether any configured field of rec contains needle.
// needle must already be lowercased.
func recordMatches(rec api.Record, fields []string, needle string) bool {
	for _, field := range fields {
		if strings.Contains(strings.ToLower(rec.Field(field)), needle) {
			return true
		}
	}
	return false
}
