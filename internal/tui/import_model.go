package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/eutimioliusbel/PFA2.2-sub004/internal/api"
	listview "github.com/eutimioliusbel/PFA2.2-sub004/internal/tui/list"
)

// ImportStep is the wizard step. Steps only move forward; Esc aborts.
type ImportStep int

const (
	// StepValidating runs the server-side dry run on the uploaded file.
	StepValidating ImportStep = iota
	// StepPreview shows the validation verdict and any row errors.
	StepPreview
	// StepConfirm asks for an explicit commit confirmation.
	StepConfirm
	// StepCommitting runs the commit.
	StepCommitting
	// StepDone shows the commit result.
	StepDone
	// StepError is the terminal error display.
	StepError
	// StepAborted means the user backed out before committing.
	StepAborted
)

// Import error table column widths.
const (
	impColWidthRow     = 6
	impColWidthField   = 18
	impColWidthMessage = 50

	impChromeHeight = 8
)

type importValidatedMsg struct {
	validation *api.ImportValidation
	err        error
}

type importCommittedMsg struct {
	result *api.ImportResult
	err    error
}

// ImportValidator runs the server dry run on the file content.
type ImportValidator func(ctx context.Context) (*api.ImportValidation, error)

// ImportCommitter commits a validated job.
type ImportCommitter func(ctx context.Context, jobID string) (*api.ImportResult, error)

// ImportViewModel is the import wizard: validate, preview, confirm, commit.
// Nothing is persisted until the user confirms the commit step.
type ImportViewModel struct {
	ctx       context.Context
	entity    string
	validator ImportValidator
	committer ImportCommitter

	step       ImportStep
	validation *api.ImportValidation
	result     *api.ImportResult

	errorList *listview.VirtualListModel[api.ImportRowError]

	width   int
	height  int
	loading *LoadingState
	err     error
}

// NewImportViewModel creates the wizard for importing into entity.
func NewImportViewModel(
	ctx context.Context,
	entity string,
	validator ImportValidator,
	committer ImportCommitter,
) *ImportViewModel {
	return &ImportViewModel{
		ctx:       ctx,
		entity:    entity,
		validator: validator,
		committer: committer,
		step:      StepValidating,
		loading:   NewLoadingStateWithMessage("Validating import..."),
		width:     defaultWidth,
		height:    defaultHeight,
	}
}

// Step returns the current wizard step.
func (m *ImportViewModel) Step() ImportStep {
	return m.step
}

// Result returns the commit result once StepDone is reached.
func (m *ImportViewModel) Result() *api.ImportResult {
	return m.result
}

// Err returns the terminal error, if any.
func (m *ImportViewModel) Err() error {
	return m.err
}

// Init implements tea.Model: validation starts immediately.
func (m *ImportViewModel) Init() tea.Cmd {
	ctx := m.ctx
	validator := m.validator
	validate := func() tea.Msg {
		validation, err := validator(ctx)
		return importValidatedMsg{validation: validation, err: err}
	}
	return tea.Batch(m.loading.Init(), validate)
}

// Update implements tea.Model.
func (m *ImportViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if winMsg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = winMsg.Width
		m.height = winMsg.Height
		m.rebuildErrorList()
	}

	switch msg := msg.(type) {
	case importValidatedMsg:
		return m.handleValidated(msg)
	case importCommittedMsg:
		return m.handleCommitted(msg)
	}

	switch m.step {
	case StepValidating, StepCommitting:
		return m, m.loading.Update(msg)
	case StepPreview:
		return m.handlePreviewKeys(msg)
	case StepConfirm:
		return m.handleConfirmKeys(msg)
	case StepDone, StepError, StepAborted:
		return m.handleTerminalKeys(msg)
	default:
		return m, nil
	}
}

func (m *ImportViewModel) handleValidated(msg importValidatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.err = msg.err
		m.step = StepError
		return m, tea.Quit
	}
	m.validation = msg.validation
	m.step = StepPreview
	m.rebuildErrorList()
	return m, nil
}

func (m *ImportViewModel) handlePreviewKeys(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit, keyCtrlC, keyEsc:
			m.step = StepAborted
			return m, tea.Quit
		case keyEnter:
			if m.validation != nil && m.validation.Valid() {
				m.step = StepConfirm
			}
			return m, nil
		}
	}

	if m.errorList != nil {
		updated, cmd := m.errorList.Update(msg)
		if vl, ok := updated.(*listview.VirtualListModel[api.ImportRowError]); ok {
			m.errorList = vl
		}
		return m, cmd
	}

	return m, nil
}

func (m *ImportViewModel) handleConfirmKeys(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		return m.startCommit()
	case keyCtrlC:
		m.step = StepAborted
		return m, tea.Quit
	default:
		// Anything but explicit consent backs out to the preview.
		m.step = StepPreview
		return m, nil
	}
}

func (m *ImportViewModel) startCommit() (tea.Model, tea.Cmd) {
	m.step = StepCommitting
	m.loading = NewLoadingStateWithMessage("Committing import...")

	ctx := m.ctx
	committer := m.committer
	jobID := m.validation.JobID
	commit := func() tea.Msg {
		result, err := committer(ctx, jobID)
		return importCommittedMsg{result: result, err: err}
	}
	return m, tea.Batch(m.loading.Init(), commit)
}

func (m *ImportViewModel) handleCommitted(msg importCommittedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.err = msg.err
		m.step = StepError
		return m, tea.Quit
	}
	m.result = msg.result
	m.step = StepDone
	return m, nil
}

func (m *ImportViewModel) handleTerminalKeys(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit, keyCtrlC, keyEnter, keyEsc:
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *ImportViewModel) rebuildErrorList() {
	if m.validation == nil {
		return
	}
	listHeight := m.height - impChromeHeight
	if listHeight < minListHeight {
		listHeight = minListHeight
	}
	m.errorList = newScreenList(m.validation.Errors, listHeight, m.width, renderImportRowError)
}

// renderImportRowError formats one rejected row.
func renderImportRowError(rowErr api.ImportRowError, selected bool) string {
	row := fmt.Sprintf("%*d  %-*s  %-*s",
		impColWidthRow, rowErr.Row,
		impColWidthField, truncateCell(rowErr.Field, impColWidthField),
		impColWidthMessage, truncateCell(rowErr.Message, impColWidthMessage),
	)

	if selected {
		return TableSelectedStyle.Render(row)
	}
	return row
}

// View implements tea.Model.
func (m *ImportViewModel) View() string {
	switch m.step {
	case StepValidating, StepCommitting:
		return RenderLoading(m.loading)
	case StepPreview:
		return m.renderPreview()
	case StepConfirm:
		return m.renderPreview() + "\n\n" +
			WarningStyle.Render(fmt.Sprintf("Commit %s rows into %s? [y/N] ",
				FormatCount(m.validation.ValidRows), m.entity))
	case StepDone:
		return m.renderDone()
	case StepError:
		return fmt.Sprintf("Error: %v\n", m.err)
	case StepAborted:
		return InfoStyle.Render("Import aborted. Nothing was committed.") + "\n"
	default:
		return ""
	}
}

func (m *ImportViewModel) renderPreview() string {
	v := m.validation

	summary := fmt.Sprintf("%s IMPORT  %s rows, %s valid, %s rejected",
		HeaderStyle.Render("PREVIEW:"),
		FormatCount(v.TotalRows), FormatCount(v.ValidRows), FormatCount(len(v.Errors)))

	if v.TotalRows == 0 {
		return summary + "\n\n" + InfoStyle.Render("File contained no rows.") + "\n\n[Esc] Abort"
	}

	if len(v.Errors) == 0 {
		return summary + "\n\n" + InfoStyle.Render("All rows valid.") +
			"\n\n[Enter] Commit  [Esc] Abort"
	}

	header := TableHeaderStyle.Render(fmt.Sprintf("%*s  %-*s  %-*s",
		impColWidthRow, "Row",
		impColWidthField, "Field",
		impColWidthMessage, "Problem",
	))

	body := ""
	if m.errorList != nil {
		body = m.errorList.ViewVisible()
	}

	help := "\n[↑↓/jk] Navigate errors  [Esc] Abort"
	return summary + "\n" + header + "\n" + body + "\n" +
		CriticalStyle.Render("Rejected rows block the commit. Fix the file and re-run.") + help
}

func (m *ImportViewModel) renderDone() string {
	r := m.result
	return HeaderStyle.Render("IMPORT COMPLETE") + "\n\n" +
		LabelStyle.Render("Job:      ") + ValueStyle.Render(r.JobID) + "\n" +
		LabelStyle.Render("Created:  ") + ValueStyle.Render(FormatCount(r.Created)) + "\n" +
		LabelStyle.Render("Updated:  ") + ValueStyle.Render(FormatCount(r.Updated)) + "\n" +
		LabelStyle.Render("Skipped:  ") + ValueStyle.Render(FormatCount(r.Skipped)) + "\n\n" +
		"[Enter] Close\n"
}
