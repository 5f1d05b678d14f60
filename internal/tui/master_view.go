package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/eutimioliusbel/PFA2.2-sub004/internal/api"
)

const (
	cellTruncateSuffix = "..."
	columnGap          = "  "
	borderPadding      = 2
)

// countPrinter formats record counts with thousands separators.
//
//nolint:gochecknoglobals // Shared immutable printer.
var countPrinter = message.NewPrinter(language.English)

// FormatCount renders n with thousands separators ("12,345").
func FormatCount(n int) string {
	return countPrinter.Sprintf("%d", n)
}

// truncateCell fits value into width cells, ellipsizing when needed.
func truncateCell(value string, width int) string {
	if len(value) <= width {
		return value
	}
	if width <= len(cellTruncateSuffix) {
		return value[:width]
	}
	return value[:width-len(cellTruncateSuffix)] + cellTruncateSuffix
}

// renderHeaderRow renders the column titles.
func renderHeaderRow(columns []Column) string {
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = fmt.Sprintf("%-*s", col.Width, truncateCell(col.Title, col.Width))
	}
	return strings.Join(parts, columnGap)
}

// renderRecordRow renders one record as a fixed-width table row.
func renderRecordRow(rec api.Record, columns []Column, selected bool) string {
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = fmt.Sprintf("%-*s", col.Width, truncateCell(rec.Field(col.Field), col.Width))
	}
	row := strings.Join(parts, columnGap)

	if selected {
		return TableSelectedStyle.Render(row)
	}
	return row
}

// RenderMasterSummary renders the boxed summary above a master table: entity
// label, total count, and the filtered count when a filter is active.
func RenderMasterSummary(descriptor EntityDescriptor, all, filtered []api.Record, width int) string {
	var content strings.Builder

	content.WriteString(HeaderStyle.Render(strings.ToUpper(descriptor.Label)))
	content.WriteString("\n")
	content.WriteString(LabelStyle.Render("Records: "))
	content.WriteString(ValueStyle.Render(FormatCount(len(all))))
	if len(filtered) != len(all) {
		content.WriteString(LabelStyle.Render("    Matching: "))
		content.WriteString(ValueStyle.Render(FormatCount(len(filtered))))
	}

	return BoxStyle.Width(width - borderPadding).Render(content.String())
}

// RenderRecordDetail renders every field of one record, sorted by field name
// for deterministic output, with the id field pinned first.
func RenderRecordDetail(descriptor EntityDescriptor, rec api.Record, width int) string {
	var content strings.Builder

	content.WriteString(HeaderStyle.Render(strings.ToUpper(descriptor.Label) + " DETAIL"))
	content.WriteString("\n\n")

	if id := rec.ID(); id != "" {
		content.WriteString(LabelStyle.Render(fmt.Sprintf("%-16s", "id")))
		content.WriteString(ValueStyle.Render(id))
		content.WriteString("\n")
	}

	fields := make([]string, 0, len(rec))
	for name := range rec {
		if name == "id" {
			continue
		}
		fields = append(fields, name)
	}
	sort.Strings(fields)

	for _, name := range fields {
		content.WriteString(LabelStyle.Render(fmt.Sprintf("%-16s", name)))
		content.WriteString(ValueStyle.Render(rec.Field(name)))
		content.WriteString("\n")
	}

	content.WriteString("\n[Esc] Back to list  [q] Quit")

	return BoxStyle.Width(width - borderPadding).Render(content.String())
}

// RenderRecordsTable renders records as a plain, unstyled table for
// non-interactive output (--output table in a pipe).
func RenderRecordsTable(columns []Column, records []api.Record) string {
	var sb strings.Builder
	sb.WriteString(renderHeaderRow(columns))
	sb.WriteString("\n")
	for _, rec := range records {
		sb.WriteString(renderRecordRow(rec, columns, false))
		sb.WriteString("\n")
	}
	return sb.String()
}

// JoinSections stacks rendered sections vertically, left-aligned.
func JoinSections(sections ...string) string {
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
