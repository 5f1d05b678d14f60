package tui

import (
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/eutimioliusbel/PFA2.2-sub004/internal/api"
	listview "github.com/eutimioliusbel/PFA2.2-sub004/internal/tui/list"
	"github.com/eutimioliusbel/PFA2.2-sub004/internal/tui/window"
)

// masterSummaryHeight is the number of rows reserved above the list for the
// summary box, table header, and filter line.
const masterSummaryHeight = 7

const (
	filterInputCharLimit = 64
	filterInputWidth     = 40
)

// Column describes one displayed column of a master table.
type Column struct {
	// Field is the record field rendered in this column.
	Field string

	// Title is the column header.
	Title string

	// Width is the column width in cells.
	Width int
}

// EntityDescriptor parameterizes the master screen for one entity. Every
// master table, the generic ones and the PFA-specific ones alike, is this
// screen with a different descriptor.
type EntityDescriptor struct {
	// Name is the entity identifier used in API paths.
	Name string

	// Label is the human-readable name shown in the summary.
	Label string

	// Columns are the displayed columns, in order.
	Columns []Column

	// SearchFields are the record fields matched by the filter. Defaults
	// to the column fields when empty.
	SearchFields []string
}

// searchFields returns the configured search field set.
func (d EntityDescriptor) searchFields() []string {
	if len(d.SearchFields) > 0 {
		return d.SearchFields
	}
	fields := make([]string, len(d.Columns))
	for i, col := range d.Columns {
		fields[i] = col.Field
	}
	return fields
}

// masterRecordsMsg delivers the fetched record sequence.
type masterRecordsMsg struct {
	records []api.Record
	err     error
}

// RecordFetcher fetches the full ordered record sequence for an entity.
type RecordFetcher func(ctx context.Context) ([]api.Record, error)

// MasterViewModel is the master-detail browser for one entity: a virtualized
// record table with filtering, sorting, and a per-record detail pane.
type MasterViewModel struct {
	descriptor EntityDescriptor

	// filter owns the source sequence and the memoized filtered view of it.
	filter *window.RecordFilter

	// records is the filtered, sorted sequence currently displayed.
	records []api.Record

	virtualList *listview.VirtualListModel[api.Record]
	textInput   textinput.Model

	state      ViewState
	width      int
	height     int
	sortColumn int // -1 = server order
	showFilter bool

	loading  *LoadingState
	fetchCmd tea.Cmd

	err error
}

// NewMasterViewModel creates the browser over an already-fetched sequence.
func NewMasterViewModel(descriptor EntityDescriptor, records []api.Record) *MasterViewModel {
	m := &MasterViewModel{
		descriptor: descriptor,
		filter:     window.NewRecordFilter(records, descriptor.searchFields()),
		records:    records,
		textInput:  newFilterInput(),
		state:      ViewStateList,
		width:      defaultWidth,
		height:     defaultHeight,
		sortColumn: -1,
	}
	m.rebuildList()
	return m
}

// NewMasterViewModelWithLoading creates the browser in loading state; the
// fetcher runs as a bubbletea command and should honor ctx cancellation.
func NewMasterViewModelWithLoading(
	ctx context.Context,
	descriptor EntityDescriptor,
	fetcher RecordFetcher,
) *MasterViewModel {
	m := &MasterViewModel{
		descriptor: descriptor,
		filter:     window.NewRecordFilter(nil, descriptor.searchFields()),
		textInput:  newFilterInput(),
		state:      ViewStateLoading,
		loading:    NewLoadingStateWithMessage("Fetching " + descriptor.Label + "..."),
		width:      defaultWidth,
		height:     defaultHeight,
		sortColumn: -1,
		fetchCmd: func() tea.Msg {
			records, err := fetcher(ctx)
			return masterRecordsMsg{records: records, err: err}
		},
	}
	return m
}

func newFilterInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Filter records..."
	ti.CharLimit = filterInputCharLimit
	ti.Width = filterInputWidth
	return ti
}

// Init implements tea.Model.
func (m *MasterViewModel) Init() tea.Cmd {
	if m.state == ViewStateLoading {
		return tea.Batch(m.loading.Init(), m.fetchCmd)
	}
	return nil
}

// Update implements tea.Model.
func (m *MasterViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if winMsg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = winMsg.Width
		m.height = winMsg.Height
		m.rebuildList()
	}

	if recMsg, ok := msg.(masterRecordsMsg); ok {
		return m.handleRecordsLoaded(recMsg)
	}

	if m.showFilter {
		return m.handleFilterInput(msg)
	}

	switch m.state {
	case ViewStateLoading:
		return m, m.loading.Update(msg)
	case ViewStateList:
		return m.handleListUpdate(msg)
	case ViewStateDetail:
		return m.handleDetailUpdate(msg)
	case ViewStateQuitting, ViewStateError:
		return m.handleQuitUpdate(msg)
	default:
		return m, nil
	}
}

func (m *MasterViewModel) handleRecordsLoaded(msg masterRecordsMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.err = msg.err
		m.state = ViewStateError
		return m, tea.Quit
	}
	m.filter.SetRecords(msg.records)
	m.state = ViewStateList
	m.refresh()
	return m, nil
}

func (m *MasterViewModel) handleFilterInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEnter, keyEsc:
			m.showFilter = false
			m.textInput.Blur()
			m.refresh()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	m.refresh()
	return m, cmd
}

func (m *MasterViewModel) handleListUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit, keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		case keyEnter:
			if len(m.records) > 0 {
				m.state = ViewStateDetail
			}
			return m, nil
		case keySlash:
			m.showFilter = true
			m.textInput.Focus()
			return m, textinput.Blink
		case keyS:
			m.cycleSort()
			return m, nil
		case keyEsc:
			if m.textInput.Value() != "" {
				m.textInput.SetValue("")
				m.refresh()
			}
			return m, nil
		}
	}

	if m.virtualList != nil {
		updated, cmd := m.virtualList.Update(msg)
		if vl, ok := updated.(*listview.VirtualListModel[api.Record]); ok {
			m.virtualList = vl
		}
		return m, cmd
	}

	return m, nil
}

func (m *MasterViewModel) handleDetailUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
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

func (m *MasterViewModel) handleQuitUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit, keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
	}
	return m, nil
}

// refresh re-derives the displayed sequence from the filter and sort state
// and rebuilds the list. The filter memo makes repeated refreshes with an
// unchanged query cheap.
func (m *MasterViewModel) refresh() {
	m.records = m.filter.Apply(m.textInput.Value())
	m.applySort()
	m.rebuildList()
}

// cycleSort advances through server order and each column ascending.
func (m *MasterViewModel) cycleSort() {
	m.sortColumn++
	if m.sortColumn >= len(m.descriptor.Columns) {
		m.sortColumn = -1
	}
	m.refresh()
}

// applySort sorts the displayed sequence by the active column. Server order
// (sortColumn == -1) leaves the filtered sequence untouched. Sorting copies
// first: the filter memo owns the unsorted slice.
func (m *MasterViewModel) applySort() {
	if m.sortColumn < 0 || m.sortColumn >= len(m.descriptor.Columns) {
		return
	}
	field := m.descriptor.Columns[m.sortColumn].Field
	sorted := make([]api.Record, len(m.records))
	copy(sorted, m.records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Field(field) < sorted[j].Field(field)
	})
	m.records = sorted
}

// rebuildList recreates the virtual list over the displayed sequence.
func (m *MasterViewModel) rebuildList() {
	listHeight := m.height - masterSummaryHeight
	if listHeight < minListHeight {
		listHeight = minListHeight
	}

	selected := 0
	if m.virtualList != nil {
		selected = m.virtualList.Selected()
	}

	renderRow := func(rec api.Record, isSelected bool) string {
		return renderRecordRow(rec, m.descriptor.Columns, isSelected)
	}
	m.virtualList = newScreenList(m.records, listHeight, m.width, renderRow)
	m.virtualList.SetSelected(selected)
}

// SelectedRecord returns the record under the cursor, or nil.
func (m *MasterViewModel) SelectedRecord() api.Record {
	if m.virtualList == nil {
		return nil
	}
	rec := m.virtualList.SelectedItem()
	if rec == nil {
		return nil
	}
	return *rec
}

// View implements tea.Model.
func (m *MasterViewModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateError:
		return fmt.Sprintf("Error: %v\n", m.err)
	case ViewStateLoading:
		return RenderLoading(m.loading)
	case ViewStateDetail:
		rec := m.SelectedRecord()
		if rec == nil {
			return InfoStyle.Render("Nothing selected.")
		}
		return RenderRecordDetail(m.descriptor, rec, m.width)
	case ViewStateList:
		return m.renderListView()
	default:
		return ""
	}
}

func (m *MasterViewModel) renderListView() string {
	summary := RenderMasterSummary(m.descriptor, m.filter.Records(), m.records, m.width)
	header := TableHeaderStyle.Render(renderHeaderRow(m.descriptor.Columns))

	body := ""
	if len(m.records) == 0 {
		body = InfoStyle.Render(emptyStateMessage(m.textInput.Value()))
	} else if m.virtualList != nil {
		body = m.virtualList.ViewVisible()
	}

	help := "\n[/] Filter  [s] Sort  [↑↓/jk] Navigate  [Enter] Details  [q] Quit"
	if m.showFilter {
		return summary + "\n" + header + "\n" + body + "\n\nFilter: " + m.textInput.View() + help
	}
	return summary + "\n" + header + "\n" + body + help
}

// emptyStateMessage distinguishes "no records at all" from "filter matched
// nothing"; both are valid terminal states, not errors.
func emptyStateMessage(query string) string {
	if query != "" {
		return fmt.Sprintf("No records match %q. [Esc] clears the filter.", query)
	}
	return "No records."
}
