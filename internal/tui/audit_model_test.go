package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eutimioliusbel/PFA2.2-sub004/internal/api"
)

func makeAuditEntries(n int) []api.AuditEntry {
	entries := make([]api.AuditEntry, n)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := range entries {
		entries[i] = api.AuditEntry{
			ID:        fmt.Sprintf("a-%04d", i),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Actor:     fmt.Sprintf("user-%d", i%7),
			Action:    "update",
			Entity:    "projects",
			RecordID:  fmt.Sprintf("p-%d", i),
			Summary:   fmt.Sprintf("changed name on p-%d", i),
		}
	}
	return entries
}

func auditKey(t *testing.T, m *AuditViewModel, key string) (*AuditViewModel, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	updated, cmd := m.Update(msg)
	return updated.(*AuditViewModel), cmd
}

func TestAuditView_StartsOnQueryLine(t *testing.T) {
	m := NewAuditViewModel(context.Background(), nil)
	view := m.View()
	assert.Contains(t, view, "AUDIT LOG SEARCH")
	assert.Contains(t, view, "Query:")
}

func TestAuditView_EmptyQueryDoesNotSearch(t *testing.T) {
	called := false
	m := NewAuditViewModel(context.Background(), func(ctx context.Context, q api.AuditQuery) ([]api.AuditEntry, error) {
		called = true
		return nil, nil
	})

	m, cmd := auditKey(t, m, "enter")
	assert.Nil(t, cmd)
	assert.False(t, called)
	assert.Equal(t, viewStateQuery, m.state)
}

func TestAuditView_SearchDisplaysResults(t *testing.T) {
	var gotQuery string
	m := NewAuditViewModel(context.Background(), func(ctx context.Context, q api.AuditQuery) ([]api.AuditEntry, error) {
		gotQuery = q.Query
		return makeAuditEntries(3), nil
	})

	m, _ = auditKey(t, m, "who")
	m, cmd := auditKey(t, m, "enter")
	require.NotNil(t, cmd)
	assert.Equal(t, ViewStateLoading, m.state)

	// Drain the batch to find the search result message.
	msg := drainForMsg(t, cmd, func(msg tea.Msg) bool {
		_, ok := msg.(auditResultsMsg)
		return ok
	})
	assert.Equal(t, "who", gotQuery)

	updated, _ := m.Update(msg)
	m = updated.(*AuditViewModel)
	assert.Equal(t, ViewStateList, m.state)

	view := m.View()
	assert.Contains(t, view, "AUDIT LOG")
	assert.Contains(t, view, "3 entries")
	assert.Contains(t, view, "changed name on p-0")
}

func TestAuditView_LargeResultSetIsWindowed(t *testing.T) {
	m := NewAuditViewModel(context.Background(), nil)
	_, _ = m.Update(tea.WindowSizeMsg{Width: 140, Height: 30})

	updated, _ := m.Update(auditResultsMsg{entries: makeAuditEntries(5000)})
	m = updated.(*AuditViewModel)

	view := m.View()
	assert.Contains(t, view, "5,000 entries")
	assert.Contains(t, view, "changed name on p-0")
	assert.NotContains(t, view, "p-4999")
	assert.Less(t, len(view), 30000)
}

func TestAuditView_DetailShowsChanges(t *testing.T) {
	entries := makeAuditEntries(1)
	entries[0].Changes = map[string]string{
		"name":   `"old" -> "new"`,
		"region": `"EU" -> "US"`,
	}

	m := NewAuditViewModel(context.Background(), nil)
	updated, _ := m.Update(auditResultsMsg{entries: entries})
	m = updated.(*AuditViewModel)

	m, _ = auditKey(t, m, "enter")
	view := m.View()
	assert.Contains(t, view, "AUDIT ENTRY")
	assert.Contains(t, view, "CHANGES")
	assert.Contains(t, view, `name: "old" -> "new"`)

	m, _ = auditKey(t, m, "esc")
	assert.Equal(t, ViewStateList, m.state)
}

func TestAuditView_EmptyResultsShowEmptyState(t *testing.T) {
	m := NewAuditViewModel(context.Background(), nil)
	updated, _ := m.Update(auditResultsMsg{entries: nil})
	m = updated.(*AuditViewModel)

	assert.Contains(t, m.View(), "No audit entries match this query.")
}

func TestAuditView_SearchErrorIsTerminal(t *testing.T) {
	m := NewAuditViewModel(context.Background(), func(ctx context.Context, q api.AuditQuery) ([]api.AuditEntry, error) {
		return nil, errors.New("backend unavailable")
	})

	updated, cmd := m.Update(auditResultsMsg{err: errors.New("backend unavailable")})
	m = updated.(*AuditViewModel)
	assert.Equal(t, ViewStateError, m.state)
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "backend unavailable")
}

func TestAuditView_SlashStartsNewSearch(t *testing.T) {
	m := NewAuditViewModel(context.Background(), nil)
	updated, _ := m.Update(auditResultsMsg{entries: makeAuditEntries(2)})
	m = updated.(*AuditViewModel)

	m, _ = auditKey(t, m, "/")
	assert.Equal(t, viewStateQuery, m.state)
}

// drainForMsg executes cmd (recursively unwrapping batches) until a message
// satisfying match is produced.
func drainForMsg(t *testing.T, cmd tea.Cmd, match func(tea.Msg) bool) tea.Msg {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		if match(msg) {
			return msg
		}
	}
	t.Fatal("expected message not produced by command")
	return nil
}
