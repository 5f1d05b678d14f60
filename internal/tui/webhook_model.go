package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/eutimioliusbel/PFA2.2-sub004/internal/api"
	listview "github.com/eutimioliusbel/PFA2.2-sub004/internal/tui/list"
)

// Webhook table column widths.
const (
	hookColWidthURL     = 44
	hookColWidthEvents  = 30
	hookColWidthEnabled = 8
	hookColWidthStatus  = 10

	hookChromeHeight = 5
)

// webhookSavedMsg delivers the result of an UpdateWebhook call.
type webhookSavedMsg struct {
	hook *api.Webhook
	err  error
}

// webhookEditField identifies which subscription field the textinput is
// editing.
type webhookEditField int

const (
	editFieldNone webhookEditField = iota
	editFieldURL
	editFieldEvents
)

// WebhookSaver persists one webhook subscription change.
type WebhookSaver func(ctx context.Context, hook api.Webhook) (*api.Webhook, error)

// WebhookViewModel is the webhook configuration screen: the subscription
// list with in-place toggling and URL or event-set editing. Edits save
// immediately through the saver; responses replace the local row.
type WebhookViewModel struct {
	ctx   context.Context
	saver WebhookSaver

	hooks       []api.Webhook
	virtualList *listview.VirtualListModel[api.Webhook]

	editInput textinput.Model
	editField webhookEditField
	saving    bool

	state  ViewState
	width  int
	height int
	status string
	err    error
}

// NewWebhookViewModel creates the webhook screen over an already-fetched
// subscription list.
func NewWebhookViewModel(ctx context.Context, hooks []api.Webhook, saver WebhookSaver) *WebhookViewModel {
	ti := textinput.New()
	ti.Placeholder = "https://..."
	ti.CharLimit = 200
	ti.Width = 60

	m := &WebhookViewModel{
		ctx:       ctx,
		saver:     saver,
		hooks:     hooks,
		editInput: ti,
		state:     ViewStateList,
		width:     defaultWidth,
		height:    defaultHeight,
	}
	m.rebuildList()
	return m
}

// Init implements tea.Model.
func (m *WebhookViewModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *WebhookViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if winMsg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = winMsg.Width
		m.height = winMsg.Height
		m.rebuildList()
	}

	if savedMsg, ok := msg.(webhookSavedMsg); ok {
		return m.handleSaved(savedMsg)
	}

	if m.editField != editFieldNone {
		return m.handleEditInput(msg)
	}

	switch m.state {
	case ViewStateQuitting, ViewStateError:
		return m, nil
	case ViewStateList, ViewStateLoading, ViewStateDetail:
		return m.handleListUpdate(msg)
	default:
		return m, nil
	}
}

func (m *WebhookViewModel) handleListUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit

	case keyT:
		// Toggle enabled and save.
		if hook := m.selectedHook(); hook != nil && !m.saving {
			changed := *hook
			changed.Enabled = !changed.Enabled
			return m, m.save(changed)
		}
		return m, nil

	case keyE:
		if hook := m.selectedHook(); hook != nil && !m.saving {
			m.editField = editFieldURL
			m.editInput.Placeholder = "https://..."
			m.editInput.SetValue(hook.URL)
			m.editInput.Focus()
			return m, textinput.Blink
		}
		return m, nil

	case keyV:
		if hook := m.selectedHook(); hook != nil && !m.saving {
			m.editField = editFieldEvents
			m.editInput.Placeholder = "record.created,record.updated"
			m.editInput.SetValue(strings.Join(hook.Events, ","))
			m.editInput.Focus()
			return m, textinput.Blink
		}
		return m, nil
	}

	if m.virtualList != nil {
		updated, cmd := m.virtualList.Update(msg)
		if vl, ok := updated.(*listview.VirtualListModel[api.Webhook]); ok {
			m.virtualList = vl
		}
		return m, cmd
	}

	return m, nil
}

func (m *WebhookViewModel) handleEditInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEnter:
			field := m.editField
			m.editField = editFieldNone
			m.editInput.Blur()
			if hook := m.selectedHook(); hook != nil {
				if cmd := m.applyEdit(*hook, field); cmd != nil {
					return m, cmd
				}
			}
			return m, nil
		case keyEsc:
			m.editField = editFieldNone
			m.editInput.Blur()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	return m, cmd
}

// applyEdit folds the textinput value into hook and returns a save command,
// or nil when nothing changed.
func (m *WebhookViewModel) applyEdit(hook api.Webhook, field webhookEditField) tea.Cmd {
	changed := hook
	switch field {
	case editFieldURL:
		changed.URL = strings.TrimSpace(m.editInput.Value())
		if changed.URL == hook.URL || changed.URL == "" {
			return nil
		}
	case editFieldEvents:
		changed.Events = parseEventList(m.editInput.Value())
		if strings.Join(changed.Events, ",") == strings.Join(hook.Events, ",") {
			return nil
		}
	default:
		return nil
	}
	return m.save(changed)
}

// parseEventList splits a comma-separated event list, dropping blanks. An
// empty result is a valid edit: it unsubscribes the hook from everything.
func parseEventList(value string) []string {
	parts := strings.Split(value, ",")
	events := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			events = append(events, part)
		}
	}
	return events
}

// save issues the update as a bubbletea command.
func (m *WebhookViewModel) save(hook api.Webhook) tea.Cmd {
	m.saving = true
	m.status = "Saving..."

	ctx := m.ctx
	saver := m.saver
	return func() tea.Msg {
		updated, err := saver(ctx, hook)
		return webhookSavedMsg{hook: updated, err: err}
	}
}

func (m *WebhookViewModel) handleSaved(msg webhookSavedMsg) (tea.Model, tea.Cmd) {
	m.saving = false

	if msg.err != nil {
		m.status = CriticalStyle.Render(fmt.Sprintf("Save failed: %v", msg.err))
		return m, nil
	}
	if msg.hook == nil {
		m.status = CriticalStyle.Render("Save failed: server returned no webhook")
		return m, nil
	}

	for i := range m.hooks {
		if m.hooks[i].ID == msg.hook.ID {
			m.hooks[i] = *msg.hook
			break
		}
	}
	m.status = "Saved."
	m.rebuildList()
	return m, nil
}

func (m *WebhookViewModel) selectedHook() *api.Webhook {
	if m.virtualList == nil {
		return nil
	}
	return m.virtualList.SelectedItem()
}

// Hooks returns the current subscription list (post-save state).
func (m *WebhookViewModel) Hooks() []api.Webhook {
	return m.hooks
}

func (m *WebhookViewModel) rebuildList() {
	listHeight := m.height - hookChromeHeight
	if listHeight < minListHeight {
		listHeight = minListHeight
	}

	selected := 0
	if m.virtualList != nil {
		selected = m.virtualList.Selected()
	}
	m.virtualList = newScreenList(m.hooks, listHeight, m.width, renderWebhookRow)
	m.virtualList.SetSelected(selected)
}

// renderWebhookRow formats one webhook subscription as a table row.
func renderWebhookRow(hook api.Webhook, selected bool) string {
	enabled := "off"
	if hook.Enabled {
		enabled = "on"
	}

	status := "-"
	if hook.LastStatus > 0 {
		status = fmt.Sprintf("%d", hook.LastStatus)
	}

	row := fmt.Sprintf("%-*s  %-*s  %-*s  %-*s",
		hookColWidthURL, truncateCell(hook.URL, hookColWidthURL),
		hookColWidthEvents, truncateCell(strings.Join(hook.Events, ","), hookColWidthEvents),
		hookColWidthEnabled, enabled,
		hookColWidthStatus, status,
	)

	if selected {
		return TableSelectedStyle.Render(row)
	}
	return row
}

// View implements tea.Model.
func (m *WebhookViewModel) View() string {
	if m.state == ViewStateQuitting {
		return ""
	}

	header := TableHeaderStyle.Render(fmt.Sprintf("%-*s  %-*s  %-*s  %-*s",
		hookColWidthURL, "URL",
		hookColWidthEvents, "Events",
		hookColWidthEnabled, "Enabled",
		hookColWidthStatus, "Last",
	))

	body := ""
	if len(m.hooks) == 0 {
		body = InfoStyle.Render("No webhooks configured.")
	} else if m.virtualList != nil {
		body = m.virtualList.ViewVisible()
	}

	title := HeaderStyle.Render("WEBHOOKS") + "  " + InfoStyle.Render(fmt.Sprintf("%s configured", FormatCount(len(m.hooks))))
	help := "\n[t] Toggle  [e] Edit URL  [v] Edit events  [↑↓/jk] Navigate  [q] Quit"

	switch m.editField {
	case editFieldURL:
		return title + "\n" + header + "\n" + body + "\n\nURL: " + m.editInput.View() + help
	case editFieldEvents:
		return title + "\n" + header + "\n" + body + "\n\nEvents: " + m.editInput.View() + help
	}

	out := title + "\n" + header + "\n" + body
	if m.status != "" {
		out += "\n\n" + m.status
	}
	return out + help
}
