package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eutimioliusbel/PFA2.2-sub004/internal/api"
	"github.com/eutimioliusbel/PFA2.2-sub004/internal/config"
)

func testDescriptor() EntityDescriptor {
	return EntityDescriptor{
		Name:  "projects",
		Label: "Projects",
		Columns: []Column{
			{Field: "id", Title: "ID", Width: 10},
			{Field: "name", Title: "Name", Width: 24},
			{Field: "region", Title: "Region", Width: 10},
		},
	}
}

func makeRecords(n int) []api.Record {
	records := make([]api.Record, n)
	for i := range records {
		records[i] = api.Record{
			"id":     fmt.Sprintf("p-%04d", i),
			"name":   fmt.Sprintf("Project %d", i),
			"region": []string{"EU", "US", "APAC"}[i%3],
		}
	}
	return records
}

func keyPress(t *testing.T, m *MasterViewModel, key string) *MasterViewModel {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	updated, _ := m.Update(msg)
	return updated.(*MasterViewModel)
}

func typeString(t *testing.T, m *MasterViewModel, s string) *MasterViewModel {
	t.Helper()
	for _, r := range s {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(*MasterViewModel)
	}
	return m
}

func TestMasterView_RendersOnlyVisibleRows(t *testing.T) {
	m := NewMasterViewModel(testDescriptor(), makeRecords(10000))

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(*MasterViewModel)

	view := m.View()
	assert.Contains(t, view, "PROJECTS")
	assert.Contains(t, view, "10,000")
	assert.Contains(t, view, "p-0000")
	assert.NotContains(t, view, "p-9999")
	assert.Less(t, len(view), 20000, "view must not materialize all rows")
}

func TestMasterView_FilterNarrowsAndRestores(t *testing.T) {
	m := NewMasterViewModel(testDescriptor(), makeRecords(30))

	m = keyPress(t, m, "/")
	m = typeString(t, m, "project 1")
	m = keyPress(t, m, "enter")

	// "Project 1", "Project 10".."Project 19".
	view := m.View()
	assert.Contains(t, view, "Matching: ")
	assert.Len(t, m.records, 11)

	// Esc clears the filter.
	m = keyPress(t, m, "esc")
	assert.Len(t, m.records, 30)
}

func TestMasterView_FilterNoMatchesShowsEmptyState(t *testing.T) {
	m := NewMasterViewModel(testDescriptor(), makeRecords(30))

	m = keyPress(t, m, "/")
	m = typeString(t, m, "zzz-nothing")
	m = keyPress(t, m, "enter")

	require.Empty(t, m.records)
	assert.Contains(t, m.View(), "No records match")
}

func TestMasterView_EmptySourceShowsEmptyState(t *testing.T) {
	m := NewMasterViewModel(testDescriptor(), nil)
	assert.Contains(t, m.View(), "No records.")
}

func TestMasterView_DetailRoundTrip(t *testing.T) {
	m := NewMasterViewModel(testDescriptor(), makeRecords(5))

	m = keyPress(t, m, "down")
	m = keyPress(t, m, "enter")
	view := m.View()
	assert.Contains(t, view, "PROJECTS DETAIL")
	assert.Contains(t, view, "p-0001")

	m = keyPress(t, m, "esc")
	assert.Equal(t, ViewStateList, m.state)
}

func TestMasterView_SortCycleReordersAndReturnsToServerOrder(t *testing.T) {
	records := []api.Record{
		{"id": "p-2", "name": "zzz", "region": "EU"},
		{"id": "p-1", "name": "aaa", "region": "US"},
	}
	m := NewMasterViewModel(testDescriptor(), records)

	require.Equal(t, "p-2", m.records[0].ID()) // server order

	m = keyPress(t, m, "s") // sort by first column (id)
	assert.Equal(t, "p-1", m.records[0].ID())

	m = keyPress(t, m, "s") // name
	m = keyPress(t, m, "s") // region
	assert.Equal(t, "p-2", m.records[0].ID()) // EU < US

	m = keyPress(t, m, "s") // back to server order
	assert.Equal(t, "p-2", m.records[0].ID())
}

func TestMasterView_LoadingFetchSuccess(t *testing.T) {
	fetcher := func(ctx context.Context) ([]api.Record, error) {
		return makeRecords(3), nil
	}
	m := NewMasterViewModelWithLoading(context.Background(), testDescriptor(), fetcher)
	require.Equal(t, ViewStateLoading, m.state)

	cmd := m.Init()
	require.NotNil(t, cmd)

	updated, _ := m.Update(masterRecordsMsg{records: makeRecords(3)})
	m = updated.(*MasterViewModel)
	assert.Equal(t, ViewStateList, m.state)
	assert.Len(t, m.records, 3)
}

func TestMasterView_LoadingFetchError(t *testing.T) {
	m := NewMasterViewModelWithLoading(context.Background(), testDescriptor(), func(ctx context.Context) ([]api.Record, error) {
		return nil, errors.New("boom")
	})

	updated, cmd := m.Update(masterRecordsMsg{err: errors.New("boom")})
	m = updated.(*MasterViewModel)
	assert.Equal(t, ViewStateError, m.state)
	assert.NotNil(t, cmd) // tea.Quit
	assert.Contains(t, m.View(), "boom")
}

func TestRenderRecordsTable_PlainOutput(t *testing.T) {
	out := RenderRecordsTable(testDescriptor().Columns, makeRecords(2))
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "p-0000")
	assert.Contains(t, out, "p-0001")
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0", FormatCount(0))
	assert.Equal(t, "999", FormatCount(999))
	assert.Equal(t, "12,345", FormatCount(12345))
}

func TestMasterView_UsesConfiguredOverscan(t *testing.T) {
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)

	buildWithOverscan := func(overscan int) *MasterViewModel {
		cfg := config.Default()
		cfg.List.Overscan = overscan
		config.SetGlobalConfig(cfg)

		m := NewMasterViewModel(testDescriptor(), makeRecords(10000))
		updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
		return updated.(*MasterViewModel)
	}

	tight := buildWithOverscan(0)
	wide := buildWithOverscan(25)

	// At the top of the list only the trailing margin applies, so the
	// materialized windows differ by exactly the overscan delta.
	assert.Equal(t, 25, wide.virtualList.Window().Len()-tight.virtualList.Window().Len())
}
