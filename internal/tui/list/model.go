package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/eutimioliusbel/PFA2.2-sub004/internal/tui/window"
)

// Terminal rows are one cell high; the window package works in these units.
const rowHeight = 1

// RenderFunc renders one item. The selected parameter indicates whether the
// item is the current selection.
type RenderFunc[T any] func(item T, selected bool) string

// VirtualListModel renders large lists by materializing only the window the
// viewport needs. Scroll state is owned here and passed into window.Compute;
// the projection itself is pure.
type VirtualListModel[T any] struct {
	// items contains all list items, in display order.
	items []T

	// renderFunc renders a single item.
	renderFunc RenderFunc[T]

	// selected is the currently selected item index (0-based).
	selected int

	// scrollTop is the scroll offset in rows.
	scrollTop int

	// height and width are the viewport dimensions.
	height int
	width  int

	// overscan is the number of extra rows materialized beyond each edge.
	overscan int
}

// NewVirtualListModel creates a virtual list over items with the given
// viewport dimensions.
func NewVirtualListModel[T any](items []T, height, width int, renderFunc RenderFunc[T]) *VirtualListModel[T] {
	return &VirtualListModel[T]{
		items:      items,
		renderFunc: renderFunc,
		height:     height,
		width:      width,
		overscan:   window.DefaultOverscan,
	}
}

// SetOverscan overrides the overscan margin. Negative values are ignored.
func (m *VirtualListModel[T]) SetOverscan(overscan int) {
	if overscan >= 0 {
		m.overscan = overscan
	}
}

// SetItems replaces the list contents, clamping selection and scroll offset
// to the new length.
func (m *VirtualListModel[T]) SetItems(items []T) {
	m.items = items
	m.SetSelected(m.selected)
	m.clampScroll()
}

// Init implements tea.Model.
func (m *VirtualListModel[T]) Init() tea.Cmd {
	return nil
}

// Update handles keyboard and resize messages.
func (m *VirtualListModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg), nil
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.width = msg.Width
		m.clampScroll()
		m.ensureSelectedVisible()
		return m, nil
	}

	return m, nil
}

// handleKeyMsg processes navigation input.
//
//nolint:exhaustive // Only navigation keys are relevant here.
func (m *VirtualListModel[T]) handleKeyMsg(msg tea.KeyMsg) tea.Model {
	if len(m.items) == 0 {
		return m
	}

	switch msg.Type {
	case tea.KeyUp:
		m.MoveSelection(-1)
	case tea.KeyDown:
		m.MoveSelection(1)
	case tea.KeyPgUp:
		m.MoveSelection(-m.height)
	case tea.KeyPgDown:
		m.MoveSelection(m.height)
	case tea.KeyHome:
		m.SetSelected(0)
	case tea.KeyEnd:
		m.SetSelected(len(m.items) - 1)
	case tea.KeyRunes:
		if len(msg.Runes) > 0 {
			switch msg.Runes[0] {
			case 'j':
				m.MoveSelection(1)
			case 'k':
				m.MoveSelection(-1)
			case 'g':
				m.SetSelected(0)
			case 'G':
				m.SetSelected(len(m.items) - 1)
			}
		}
	default:
		// Other keys belong to the enclosing screen.
	}

	return m
}

// MoveSelection moves the selection by delta rows, clamped to the list.
func (m *VirtualListModel[T]) MoveSelection(delta int) {
	m.SetSelected(m.selected + delta)
}

// SetSelected sets the selected index, clamped to valid bounds, and scrolls
// just far enough to keep it visible.
func (m *VirtualListModel[T]) SetSelected(index int) {
	if len(m.items) == 0 {
		m.selected = 0
		m.scrollTop = 0
		return
	}

	switch {
	case index < 0:
		m.selected = 0
	case index >= len(m.items):
		m.selected = len(m.items) - 1
	default:
		m.selected = index
	}

	m.ensureSelectedVisible()
}

// ensureSelectedVisible adjusts scrollTop minimally so the selected row lies
// inside the viewport.
func (m *VirtualListModel[T]) ensureSelectedVisible() {
	if m.height <= 0 {
		return
	}
	if m.selected < m.scrollTop {
		m.scrollTop = m.selected
	} else if m.selected >= m.scrollTop+m.height {
		m.scrollTop = m.selected - m.height + 1
	}
	m.clampScroll()
}

// clampScroll keeps scrollTop within the useful scroll range.
func (m *VirtualListModel[T]) clampScroll() {
	maxTop := window.MaxScrollTop(len(m.items), rowHeight, m.height)
	if m.scrollTop > maxTop {
		m.scrollTop = maxTop
	}
	if m.scrollTop < 0 {
		m.scrollTop = 0
	}
}

// Window returns the currently materialized row range.
func (m *VirtualListModel[T]) Window() window.Window {
	return window.Compute(len(m.items), rowHeight, m.overscan, m.scrollTop, m.height)
}

// View renders the materialized window, overscan margins included. An empty
// list renders as an empty string so the enclosing screen can substitute its
// empty-state message.
func (m *VirtualListModel[T]) View() string {
	return m.render(m.Window())
}

// ViewVisible renders only the rows inside the viewport, without overscan
// margins. Screens embedding the list in a fixed-height layout use this.
func (m *VirtualListModel[T]) ViewVisible() string {
	return m.render(window.Compute(len(m.items), rowHeight, 0, m.scrollTop, m.height))
}

func (m *VirtualListModel[T]) render(w window.Window) string {
	if len(m.items) == 0 {
		return ""
	}

	var sb strings.Builder
	for i := w.Start; i < w.End; i++ {
		if i > w.Start {
			sb.WriteByte('\n')
		}
		sb.WriteString(m.renderFunc(m.items[i], i == m.selected))
	}
	return sb.String()
}

// ItemCount returns the total number of items.
func (m *VirtualListModel[T]) ItemCount() int {
	return len(m.items)
}

// Selected returns the currently selected index.
func (m *VirtualListModel[T]) Selected() int {
	return m.selected
}

// ScrollTop returns the current scroll offset in rows.
func (m *VirtualListModel[T]) ScrollTop() int {
	return m.scrollTop
}

// Height returns the viewport height.
func (m *VirtualListModel[T]) Height() int {
	return m.height
}

// Width returns the viewport width.
func (m *VirtualListModel[T]) Width() int {
	return m.width
}

// SelectedItem returns the currently selected item, or nil for an empty list.
func (m *VirtualListModel[T]) SelectedItem() *T {
	if len(m.items) == 0 || m.selected < 0 || m.selected >= len(m.items) {
		return nil
	}
	return &m.items[m.selected]
}
