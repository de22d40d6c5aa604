// Package termout renders an assembled document tree for the terminal
// using lipgloss. It is a second markup emitter alongside htmlout, used
// by the preview command and the live-preview TUI.
package termout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"protodoc/pkg/document"
)

// Theme defines the terminal colors for document previews.
type Theme struct {
	Title   lipgloss.Color
	Header  lipgloss.Color
	Pass    lipgloss.Color
	Fail    lipgloss.Color
	Muted   lipgloss.Color
	Label   lipgloss.Color
	Divider lipgloss.Color
}

// DefaultTheme returns the default preview theme.
func DefaultTheme() Theme {
	return Theme{
		Title:   lipgloss.Color("12"),  // Blue
		Header:  lipgloss.Color("14"),  // Cyan
		Pass:    lipgloss.Color("10"),  // Green
		Fail:    lipgloss.Color("9"),   // Red
		Muted:   lipgloss.Color("240"), // Gray
		Label:   lipgloss.Color("13"),  // Magenta
		Divider: lipgloss.Color("240"), // Gray
	}
}

// Options controls terminal rendering.
type Options struct {
	// Width is the total terminal width available to the document.
	Width int
	// MaxRowUnits is the grid width rows were packed against.
	MaxRowUnits int
	// Color enables themed styling; when false the output is plain text
	// (suitable for piped output).
	Color bool
	Theme Theme
}

// Render produces the terminal view of a document.
func Render(doc document.Document, opts Options) string {
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.MaxRowUnits <= 0 {
		opts.MaxRowUnits = document.MaxUnits
	}
	if opts.Theme == (Theme{}) {
		opts.Theme = DefaultTheme()
	}

	r := renderer{opts: opts}
	var parts []string
	for _, section := range doc.Sections {
		if s := r.section(section); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

type renderer struct {
	opts Options
}

// styled applies color only when enabled, so piped output stays plain.
func (r renderer) styled(base lipgloss.Style, color lipgloss.Color) lipgloss.Style {
	if !r.opts.Color {
		return base
	}
	return base.Foreground(color)
}

func (r renderer) section(section document.OutputSection) string {
	var b strings.Builder

	switch section.Kind {
	case document.SectionHeader:
		title := r.styled(lipgloss.NewStyle().Bold(true), r.opts.Theme.Title)
		b.WriteString(title.Render(section.Title))
		b.WriteString("\n")
		divider := r.styled(lipgloss.NewStyle(), r.opts.Theme.Divider)
		b.WriteString(divider.Render(strings.Repeat("=", r.opts.Width)))
		b.WriteString("\n")
		return b.String()
	case document.SectionFindings, document.SectionSignature:
		title := r.styled(lipgloss.NewStyle().Bold(true), r.opts.Theme.Header)
		b.WriteString(title.Render(section.Title))
		b.WriteString("\n")
	}

	for _, row := range section.Rows {
		b.WriteString(r.row(row, r.opts.Width))
		b.WriteString("\n")
	}
	return b.String()
}

func (r renderer) row(row document.OutputRow, width int) string {
	if row.IsHeader() {
		style := r.styled(lipgloss.NewStyle().Bold(true), r.opts.Theme.Header)
		return style.Render(row.HeaderText)
	}

	boxes := make([]string, 0, len(row.Cells))
	for _, cell := range row.Cells {
		boxes = append(boxes, r.cell(cell, width))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (r renderer) cell(cell document.OutputCell, rowWidth int) string {
	units := cell.WidthUnits
	if cell.FullWidth || units > r.opts.MaxRowUnits {
		units = r.opts.MaxRowUnits
	}
	cellWidth := rowWidth * units / r.opts.MaxRowUnits
	if cellWidth < 1 {
		cellWidth = 1
	}

	var b strings.Builder
	if cell.Label != "" {
		label := r.styled(lipgloss.NewStyle().Bold(true), r.opts.Theme.Label)
		b.WriteString(label.Render(cell.Label))
		b.WriteString("\n")
	}

	content := strings.Join(cell.Lines, "\n")
	switch {
	case hasSemantic(cell, document.SemPass):
		content = r.styled(lipgloss.NewStyle(), r.opts.Theme.Pass).Render(content)
	case hasSemantic(cell, document.SemFail):
		content = r.styled(lipgloss.NewStyle(), r.opts.Theme.Fail).Render(content)
	}
	b.WriteString(content)

	for _, nested := range cell.Rows {
		b.WriteString("\n")
		b.WriteString(r.row(nested, cellWidth))
	}

	return lipgloss.NewStyle().Width(cellWidth).Padding(0, 1).Render(b.String())
}

func hasSemantic(cell document.OutputCell, s document.Semantic) bool {
	for _, tag := range cell.Semantics {
		if tag == s {
			return true
		}
	}
	return false
}
