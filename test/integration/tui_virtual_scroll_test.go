package integration_test

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eutimioliusbel/PFA2.2-sub004/internal/api"
	"github.com/eutimioliusbel/PFA2.2-sub004/internal/tui"
)

func projectDescriptor() tui.EntityDescriptor {
	return tui.EntityDescriptor{
		Name:  "projects",
		Label: "Projects",
		Columns: []tui.Column{
			{Field: "id", Title: "ID", Width: 14},
			{Field: "name", Title: "Name", Width: 24},
			{Field: "status", Title: "Status", Width: 10},
		},
	}
}

func makeProjects(n int) []api.Record {
	records := make([]api.Record, n)
	for i := range records {
		records[i] = api.Record{
			"id":     fmt.Sprintf("prj-%05d", i),
			"name":   fmt.Sprintf("Project %d", i),
			"status": "active",
		}
	}
	return records
}

// TestVirtualScrolling_LargeDataset drives the entity browser with a large
// dataset to verify the virtualized table only renders the visible window.
func TestVirtualScrolling_LargeDataset(t *testing.T) {
	model := tui.NewMasterViewModel(projectDescriptor(), makeProjects(1000))
	require.NotNil(t, model)

	_ = model.Init()

	windowMsg := tea.WindowSizeMsg{Width: 120, Height: 40}
	updatedModel, _ := model.Update(windowMsg)
	model = updatedModel.(*tui.MasterViewModel)

	view := model.View()
	assert.NotEmpty(t, view)

	// Summary box with the formatted total.
	assert.Contains(t, view, "PROJECTS")
	assert.Contains(t, view, "1,000")

	// Table header.
	assert.Contains(t, view, "ID")
	assert.Contains(t, view, "Name")
	assert.Contains(t, view, "Status")

	// The first rows are visible, the tail is not.
	assert.Contains(t, view, "prj-00000")
	assert.NotContains(t, view, "prj-00999")

	// The view must not render all 1000 rows.
	assert.Less(t, len(view), 50000, "View should not render all 1000 items")
}

// TestVirtualScrolling_NavigationKeys tests keyboard navigation with the
// virtualized table.
func TestVirtualScrolling_NavigationKeys(t *testing.T) {
	model := tui.NewMasterViewModel(projectDescriptor(), makeProjects(100))
	require.NotNil(t, model)

	windowMsg := tea.WindowSizeMsg{Width: 120, Height: 30}
	updatedModel, _ := model.Update(windowMsg)
	model = updatedModel.(*tui.MasterViewModel)

	tests := []struct {
		name string
		key  tea.KeyMsg
	}{
		{name: "down arrow navigation", key: tea.KeyMsg{Type: tea.KeyDown}},
		{name: "up arrow navigation", key: tea.KeyMsg{Type: tea.KeyUp}},
		{name: "j key navigation", key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}},
		{name: "k key navigation", key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}},
		{name: "page down navigation", key: tea.KeyMsg{Type: tea.KeyPgDown}},
		{name: "page up navigation", key: tea.KeyMsg{Type: tea.KeyPgUp}},
		{name: "home key navigation", key: tea.KeyMsg{Type: tea.KeyHome}},
		{name: "end key navigation", key: tea.KeyMsg{Type: tea.KeyEnd}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updatedModel, cmd := model.Update(tt.key)
			model = updatedModel.(*tui.MasterViewModel)

			require.NotNil(t, model)

			view := model.View()
			assert.NotEmpty(t, view)

			_ = cmd
		})
	}

	// After End the last row must be selected.
	endMsg := tea.KeyMsg{Type: tea.KeyEnd}
	updatedModel, _ = model.Update(endMsg)
	model = updatedModel.(*tui.MasterViewModel)
	selected := model.SelectedRecord()
	require.NotNil(t, selected)
	assert.Equal(t, "prj-00099", selected.ID())
}

// TestVirtualScrolling_SortingAndFiltering tests that the virtualized table
// stays consistent when combined with sorting and filtering.
func TestVirtualScrolling_SortingAndFiltering(t *testing.T) {
	records := []api.Record{
		{"id": "prj-delta", "name": "Delta", "status": "active"},
		{"id": "prj-alpha", "name": "Alpha", "status": "archived"},
		{"id": "prj-gamma", "name": "Gamma", "status": "active"},
		{"id": "prj-beta", "name": "Beta", "status": "draft"},
	}

	model := tui.NewMasterViewModel(projectDescriptor(), records)
	require.NotNil(t, model)

	windowMsg := tea.WindowSizeMsg{Width: 120, Height: 30}
	updatedModel, _ := model.Update(windowMsg)
	model = updatedModel.(*tui.MasterViewModel)

	t.Run("sort cycle works with virtual list", func(t *testing.T) {
		sortMsg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}}
		updatedModel, _ := model.Update(sortMsg)
		model = updatedModel.(*tui.MasterViewModel)

		view := model.View()
		assert.NotEmpty(t, view)
		assert.Contains(t, view, "PROJECTS")

		// First sort column is id ascending.
		homeMsg := tea.KeyMsg{Type: tea.KeyHome}
		updatedModel, _ = model.Update(homeMsg)
		model = updatedModel.(*tui.MasterViewModel)
		selected := model.SelectedRecord()
		require.NotNil(t, selected)
		assert.Equal(t, "prj-alpha", selected.ID())
	})

	t.Run("filter works with virtual list", func(t *testing.T) {
		filterMsg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}}
		updatedModel, _ := model.Update(filterMsg)
		model = updatedModel.(*tui.MasterViewModel)

		view := model.View()
		assert.Contains(t, view, "Filter:")

		for _, r := range "gam" {
			keyMsg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
			updatedModel, _ = model.Update(keyMsg)
			model = updatedModel.(*tui.MasterViewModel)
		}
		enterMsg := tea.KeyMsg{Type: tea.KeyEnter}
		updatedModel, _ = model.Update(enterMsg)
		model = updatedModel.(*tui.MasterViewModel)

		view = model.View()
		assert.Contains(t, view, "prj-gamma")
		assert.NotContains(t, view, "prj-delta")
	})
}

// TestVirtualScrolling_DetailView tests that the detail pane still works on
// top of the virtualized table.
func TestVirtualScrolling_DetailView(t *testing.T) {
	records := []api.Record{
		{"id": "prj-detail", "name": "Detail Project", "status": "active", "owner": "ops"},
	}

	model := tui.NewMasterViewModel(projectDescriptor(), records)
	require.NotNil(t, model)

	windowMsg := tea.WindowSizeMsg{Width: 120, Height: 30}
	updatedModel, _ := model.Update(windowMsg)
	model = updatedModel.(*tui.MasterViewModel)

	enterMsg := tea.KeyMsg{Type: tea.KeyEnter}
	updatedModel, _ = model.Update(enterMsg)
	model = updatedModel.(*tui.MasterViewModel)

	view := model.View()
	assert.Contains(t, view, "PROJECTS DETAIL")
	assert.Contains(t, view, "prj-detail")
	assert.Contains(t, view, "owner")

	// Esc returns to the list.
	escMsg := tea.KeyMsg{Type: tea.KeyEsc}
	updatedModel, _ = model.Update(escMsg)
	model = updatedModel.(*tui.MasterViewModel)
	assert.NotContains(t, model.View(), "PROJECTS DETAIL")
	assert.Contains(t, model.View(), "PROJECTS")
}

// TestVirtualScrolling_EmptyList tests the browser over zero records.
func TestVirtualScrolling_EmptyList(t *testing.T) {
	model := tui.NewMasterViewModel(projectDescriptor(), nil)
	require.NotNil(t, model)

	windowMsg := tea.WindowSizeMsg{Width: 120, Height: 30}
	updatedModel, _ := model.Update(windowMsg)
	model = updatedModel.(*tui.MasterViewModel)

	view := model.View()
	assert.Contains(t, view, "PROJECTS")
	assert.Contains(t, view, "No records.")
}

// TestVirtualScrolling_Performance renders repeatedly over a very large
// dataset (10,000+ rows) to verify the window stays bounded while scrolling.
func TestVirtualScrolling_Performance(t *testing.T) {
	model := tui.NewMasterViewModel(projectDescriptor(), makeProjects(10000))
	require.NotNil(t, model)

	windowMsg := tea.WindowSizeMsg{Width: 120, Height: 40}
	updatedModel, _ := model.Update(windowMsg)
	model = updatedModel.(*tui.MasterViewModel)

	for i := 0; i < 10; i++ {
		view := model.View()
		assert.NotEmpty(t, view)
		assert.Less(t, len(view), 50000)

		downMsg := tea.KeyMsg{Type: tea.KeyDown}
		updatedModel, _ = model.Update(downMsg)
		model = updatedModel.(*tui.MasterViewModel)
	}

	finalView := model.View()
	assert.NotEmpty(t, finalView)
	assert.Contains(t, finalView, "PROJECTS")
	assert.Contains(t, finalView, "10,000")
}
