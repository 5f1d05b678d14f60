package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/eutimioliusbel/PFA2.2-sub004/internal/config"
	listview "github.com/eutimioliusbel/PFA2.2-sub004/internal/tui/list"
)

// ViewState is the coarse display state shared by all screens.
type ViewState int

const (
	// ViewStateLoading indicates an in-flight fetch.
	ViewStateLoading ViewState = iota
	// ViewStateList indicates the main list display.
	ViewStateList
	// ViewStateDetail indicates the detail pane for the selected item.
	ViewStateDetail
	// ViewStateQuitting indicates the screen is exiting.
	ViewStateQuitting
	// ViewStateError indicates a terminal error display.
	ViewStateError
)

// LoadingState wraps the spinner shown while a fetch is in flight.
type LoadingState struct {
	spinner spinner.Model
	message string
}

// NewLoadingState creates a LoadingState with the default message.
func NewLoadingState() *LoadingState {
	return NewLoadingStateWithMessage("Loading...")
}

// NewLoadingStateWithMessage creates a LoadingState with a custom message.
func NewLoadingStateWithMessage(message string) *LoadingState {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	return &LoadingState{spinner: s, message: message}
}

// Init returns the spinner tick command.
func (l *LoadingState) Init() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the spinner.
func (l *LoadingState) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

// View renders the spinner and message.
func (l *LoadingState) View() string {
	return "\n " + l.spinner.View() + " " + l.message + "\n"
}

// RenderLoading returns the loading display, tolerating a nil state.
func RenderLoading(loading *LoadingState) string {
	if loading == nil {
		return "Loading..."
	}
	return loading.View()
}

// newScreenList builds a virtual list with the configured overscan margin.
// Every screen constructs its list through here so list.overscan applies
// uniformly.
func newScreenList[T any](items []T, height, width int, render listview.RenderFunc[T]) *listview.VirtualListModel[T] {
	vl := listview.NewVirtualListModel(items, height, width, render)
	vl.SetOverscan(config.GetListOverscan())
	return vl
}
