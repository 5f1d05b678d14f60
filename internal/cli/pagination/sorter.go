package pagination

import (
	"sort"

	"github.com/eutimioliusbel/PFA2.2-sub004/internal/api"
)

// SortRecords returns a copy of records ordered by the named field. An
// empty field keeps the input order. Comparison is on the rendered field
// text, matching what the table output shows.
func SortRecords(records []api.Record, field, order string) []api.Record {
	if field == "" {
		return records
	}

	sorted := make([]api.Record, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		if order == SortOrderDesc {
			i, j = j, i
		}
		return sorted[i].Field(field) < sorted[j].Field(field)
	})

	return sorted
}

// ApplyLimit truncates records to the first limit entries. 0 means no limit.
func ApplyLimit(records []api.Record, limit int) []api.Record {
	if limit <= 0 || limit >= len(records) {
		return records
	}
	return records[:limit]
}
