package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/eutimioliusbel/PFA2.2-sub004/internal/api"
	listview "github.com/eutimioliusbel/PFA2.2-sub004/internal/tui/list"
)

// Audit table column widths.
const (
	auditColWidthTime    = 19
	auditColWidthActor   = 16
	auditColWidthAction  = 10
	auditColWidthEntity  = 14
	auditColWidthSummary = 40

	// auditChromeHeight is the rows reserved above the list for the query
	// line, header, and help text.
	auditChromeHeight = 6
)

// auditResultsMsg delivers a completed audit search.
type auditResultsMsg struct {
	entries []api.AuditEntry
	err     error
}

// AuditSearcher runs one audit query against the server. The query string is
// interpreted server-side; the screen never parses it.
type AuditSearcher func(ctx context.Context, query api.AuditQuery) ([]api.AuditEntry, error)

// auditViewState extends the shared states with the query-entry phase.
const viewStateQuery = ViewStateError + 1

// AuditViewModel is the audit log search screen: a free-text query line over
// a virtualized result list with a per-entry detail pane.
type AuditViewModel struct {
	ctx      context.Context
	searcher AuditSearcher

	queryInput textinput.Model
	entries    []api.AuditEntry

	virtualList *listview.VirtualListModel[api.AuditEntry]

	state   ViewState
	width   int
	height  int
	loading *LoadingState
	err     error
}

// NewAuditViewModel creates the audit search screen. The screen starts on
// the query line; searches run through searcher.
func NewAuditViewModel(ctx context.Context, searcher AuditSearcher) *AuditViewModel {
	ti := textinput.New()
	ti.Placeholder = `Ask anything, e.g. "who changed webhooks last week"`
	ti.CharLimit = 200
	ti.Width = 70
	ti.Focus()

	return &AuditViewModel{
		ctx:        ctx,
		searcher:   searcher,
		queryInput: ti,
		state:      viewStateQuery,
		width:      defaultWidth,
		height:     defaultHeight,
	}
}

// Init implements tea.Model.
func (m *AuditViewModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *AuditViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if winMsg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = winMsg.Width
		m.height = winMsg.Height
		m.rebuildList()
	}

	if resMsg, ok := msg.(auditResultsMsg); ok {
		return m.handleResults(resMsg)
	}

	switch m.state {
	case viewStateQuery:
		return m.handleQueryUpdate(msg)
	case ViewStateLoading:
		return m, m.loading.Update(msg)
	case ViewStateList:
		return m.handleListUpdate(msg)
	case ViewStateDetail:
		return m.handleDetailUpdate(msg)
	case ViewStateQuitting, ViewStateError:
		return m.handleQuitKeys(msg)
	default:
		return m, nil
	}
}

func (m *AuditViewModel) handleQueryUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		case keyEnter:
			query := strings.TrimSpace(m.queryInput.Value())
			if query == "" {
				return m, nil
			}
			return m.startSearch(query)
		}
	}
	var cmd tea.Cmd
	m.queryInput, cmd = m.queryInput.Update(msg)
	return m, cmd
}

func (m *AuditViewModel) startSearch(query string) (tea.Model, tea.Cmd) {
	m.state = ViewStateLoading
	m.loading = NewLoadingStateWithMessage("Searching audit log...")
	m.queryInput.Blur()

	ctx := m.ctx
	searcher := m.searcher
	search := func() tea.Msg {
		entries, err := searcher(ctx, api.AuditQuery{Query: query})
		return auditResultsMsg{entries: entries, err: err}
	}
	return m, tea.Batch(m.loading.Init(), search)
}

func (m *AuditViewModel) handleResults(msg auditResultsMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.err = msg.err
		m.state = ViewStateError
		return m, tea.Quit
	}
	m.entries = msg.entries
	m.state = ViewStateList
	m.rebuildList()
	return m, nil
}

func (m *AuditViewModel) handleListUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit, keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		case keyEnter:
			if len(m.entries) > 0 {
				m.state = ViewStateDetail
			}
			return m, nil
		case keySlash:
			// New search.
			m.state = viewStateQuery
			m.queryInput.Focus()
			return m, textinput.Blink
		}
	}

	if m.virtualList != nil {
		updated, cmd := m.virtualList.Update(msg)
		if vl, ok := updated.(*listview.VirtualListModel[api.AuditEntry]); ok {
			m.virtualList = vl
		}
		return m, cmd
	}

	return m, nil
}

func (m *AuditViewModel) handleDetailUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit, keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		case keyEsc:
			m.state = ViewStateList
			return m, nil
		}
	}
	return m, nil
}

func (m *AuditViewModel) handleQuitKeys(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit, keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *AuditViewModel) rebuildList() {
	listHeight := m.height - auditChromeHeight
	if listHeight < minListHeight {
		listHeight = minListHeight
	}
	m.virtualList = newScreenList(m.entries, listHeight, m.width, renderAuditEntry)
}

// renderAuditEntry formats one audit entry as a table row.
func renderAuditEntry(entry api.AuditEntry, selected bool) string {
	row := fmt.Sprintf("%-*s  %-*s  %-*s  %-*s  %-*s",
		auditColWidthTime, entry.Timestamp.Format("2006-01-02 15:04:05"),
		auditColWidthActor, truncateCell(entry.Actor, auditColWidthActor),
		auditColWidthAction, truncateCell(entry.Action, auditColWidthAction),
		auditColWidthEntity, truncateCell(entry.Entity, auditColWidthEntity),
		auditColWidthSummary, truncateCell(entry.Summary, auditColWidthSummary),
	)

	if selected {
		return TableSelectedStyle.Render(row)
	}
	return row
}

// View implements tea.Model.
func (m *AuditViewModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateError:
		return fmt.Sprintf("Error: %v\n", m.err)
	case ViewStateLoading:
		return RenderLoading(m.loading)
	case viewStateQuery:
		return HeaderStyle.Render("AUDIT LOG SEARCH") + "\n\nQuery: " + m.queryInput.View() +
			"\n\n" + InfoStyle.Render("[Enter] Search  [Ctrl+C] Quit")
	case ViewStateDetail:
		if m.virtualList != nil {
			if entry := m.virtualList.SelectedItem(); entry != nil {
				return RenderAuditDetail(*entry, m.width)
			}
		}
		return InfoStyle.Render("Nothing selected.")
	case ViewStateList:
		return m.renderListView()
	default:
		return ""
	}
}

func (m *AuditViewModel) renderListView() string {
	header := TableHeaderStyle.Render(fmt.Sprintf("%-*s  %-*s  %-*s  %-*s  %-*s",
		auditColWidthTime, "Timestamp",
		auditColWidthActor, "Actor",
		auditColWidthAction, "Action",
		auditColWidthEntity, "Entity",
		auditColWidthSummary, "Summary",
	))

	body := ""
	if len(m.entries) == 0 {
		body = InfoStyle.Render("No audit entries match this query.")
	} else if m.virtualList != nil {
		body = m.virtualList.ViewVisible()
	}

	count := fmt.Sprintf("%s entries", FormatCount(len(m.entries)))
	help := "\n[/] New search  [↑↓/jk] Navigate  [Enter] Details  [q] Quit"
	return HeaderStyle.Render("AUDIT LOG") + "  " + InfoStyle.Render(count) + "\n" + header + "\n" + body + help
}

// RenderAuditDetail renders the full detail of one audit entry, change set
// included, with field changes in sorted order.
func RenderAuditDetail(entry api.AuditEntry, width int) string {
	var content strings.Builder

	content.WriteString(HeaderStyle.Render("AUDIT ENTRY"))
	content.WriteString("\n\n")
	content.WriteString(LabelStyle.Render("When:      "))
	content.WriteString(ValueStyle.Render(entry.Timestamp.Format("2006-01-02 15:04:05 MST")))
	content.WriteString("\n")
	content.WriteString(LabelStyle.Render("Actor:     "))
	content.WriteString(ValueStyle.Render(entry.Actor))
	content.WriteString("\n")
	content.WriteString(LabelStyle.Render("Action:    "))
	content.WriteString(ValueStyle.Render(entry.Action))
	content.WriteString("\n")
	content.WriteString(LabelStyle.Render("Entity:    "))
	content.WriteString(ValueStyle.Render(entry.Entity))
	content.WriteString("\n")
	content.WriteString(LabelStyle.Render("Record:    "))
	content.WriteString(ValueStyle.Render(entry.RecordID))
	content.WriteString("\n")
	content.WriteString(LabelStyle.Render("Summary:   "))
	content.WriteString(ValueStyle.Render(entry.Summary))
	content.WriteString("\n")

	if len(entry.Changes) > 0 {
		content.WriteString("\n")
		content.WriteString(HeaderStyle.Render("CHANGES"))
		content.WriteString("\n")

		fields := make([]string, 0, len(entry.Changes))
		for field := range entry.Changes {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		for _, field := range fields {
			content.WriteString(fmt.Sprintf("- %s: %s\n", field, entry.Changes[field]))
		}
	}

	content.WriteString("\n[Esc] Back to results  [q] Quit")

	return BoxStyle.Width(width - borderPadding).Render(content.String())
}
