package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eutimioliusbel/PFA2.2-sub004/internal/api"
)

func sampleRecords() []api.Record {
	return []api.Record{
		{"id": "p-1", "name": "Alpha Plant", "region": "EU"},
		{"id": "p-2", "name": "beta site", "region": "US"},
		{"id": "p-3", "name": "Gamma Plant", "region": "APAC"},
		{"id": "p-4", "name": "delta", "region": "us-east"},
	}
}

func TestRecordFilter_CaseInsensitiveSubstring(t *testing.T) {
	f := NewRecordFilter(sampleRecords(), []string{"name", "region"})

	matched := f.Apply("PLANT")
	require.Len(t, matched, 2)
	assert.Equal(t, "p-1", matched[0].ID())
	assert.Equal(t, "p-3", matched[1].ID())
}

func TestRecordFilter_PreservesSourceOrder(t *testing.T) {
	f := NewRecordFilter(sampleRecords(), []string{"region"})

	matched := f.Apply("us")
	require.Len(t, matched, 2)
	assert.Equal(t, "p-2", matched[0].ID())
	assert.Equal(t, "p-4", matched[1].ID())
}

func TestRecordFilter_EmptyQueryReturnsAll(t *testing.T) {
	records := sampleRecords()
	f := NewRecordFilter(records, []string{"name"})

	matched := f.Apply("")
	assert.Len(t, matched, len(records))
}

func TestRecordFilter_NoMatchesIsEmptyNotNilError(t *testing.T) {
	f := NewRecordFilter(sampleRecords(), []string{"name", "region"})

	matched := f.Apply("zzz-no-such-thing")
	assert.Empty(t, matched)
}

func TestRecordFilter_OnlyConfiguredFieldsAreSearched(t *testing.T) {
	f := NewRecordFilter(sampleRecords(), []string{"name"})

	// "EU" only appears in the region field, which is not configured.
	assert.Empty(t, f.Apply("EU"))

	f.SetFields([]string{"name", "region"})
	assert.Len(t, f.Apply("EU"), 1)
}

func TestRecordFilter_MemoizesRepeatedQuery(t *testing.T) {
	f := NewRecordFilter(sampleRecords(), []string{"name"})

	first := f.Apply("plant")
	second := f.Apply("plant")
	// Same memoized slice, not a recomputed copy.
	require.Len(t, first, 2)
	assert.Same(t, &first[0], &second[0])
}

func TestRecordFilter_SetRecordsInvalidatesMemo(t *testing.T) {
	f := NewRecordFilter(sampleRecords(), []string{"name"})
	require.Len(t, f.Apply("plant"), 2)

	f.SetRecords([]api.Record{{"id": "x-1", "name": "Epsilon Plant"}})
	matched := f.Apply("plant")
	require.Len(t, matched, 1)
	assert.Equal(t, "x-1", matched[0].ID())
}
