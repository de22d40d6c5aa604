// Package htmlout serializes an assembled document tree to a
// self-contained fixed-width HTML page. It is one concrete markup
// emitter over the layout engine's output; the engine itself never deals
// in markup, so other emitters (PDF, plain text) can replace this one.
package htmlout

import (
	"fmt"
	"html"
	"strings"

	"protodoc/pkg/document"
)

// Render serializes a document to HTML using the configured font values.
// Cell text lines arrive pre-escaped from the renderer; only labels and
// headers, which pass through the pipeline raw, are escaped here.
func Render(doc document.Document, cfg document.Config) string {
	cfg = cfg.Normalize()

	var b strings.Builder
	b.WriteString("<!doctype html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(doc.Title))
	writeStyle(&b, cfg)
	b.WriteString("</head>\n<body>\n")

	for _, section := range doc.Sections {
		writeSection(&b, section, cfg)
	}

	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func writeStyle(b *strings.Builder, cfg document.Config) {
	fmt.Fprintf(b, `<style>
body { font-family: %s; font-size: %gpt; }
table.grid { width: 100%%; border-collapse: collapse; table-layout: fixed; }
table.grid td { border: 1px solid #999; padding: 4px; vertical-align: top; }
td.%s { font-weight: bold; background: #ddd; }
td.%s { font-weight: bold; background: #eee; }
.pass { color: #060; }
.fail { color: #900; }
.cell-label { font-weight: bold; display: block; }
</style>
`, cfg.FontFamily, cfg.FontSizePt, cfg.SectionHeaderStyle, cfg.SubsectionHeaderStyle)
}

func writeSection(b *strings.Builder, section document.OutputSection, cfg document.Config) {
	switch section.Kind {
	case document.SectionHeader:
		fmt.Fprintf(b, "<h1>%s</h1>\n", html.EscapeString(section.Title))
		return
	case document.SectionFindings, document.SectionSignature:
		fmt.Fprintf(b, "<h2>%s</h2>\n", html.EscapeString(section.Title))
	}

	if len(section.Rows) == 0 {
		return
	}
	b.WriteString("<table class=\"grid\">\n")
	for _, row := range section.Rows {
		writeRow(b, row, cfg)
	}
	b.WriteString("</table>\n")
}

func writeRow(b *strings.Builder, row document.OutputRow, cfg document.Config) {
	if row.IsHeader() {
		fmt.Fprintf(b, "<tr><td class=\"%s\">%s</td></tr>\n",
			row.HeaderStyle, html.EscapeString(row.HeaderText))
		return
	}
	b.WriteString("<tr>\n")
	for _, cell := range row.Cells {
		writeCell(b, cell, cfg)
	}
	b.WriteString("</tr>\n")
}

func writeCell(b *strings.Builder, cell document.OutputCell, cfg document.Config) {
	percent := cell.WidthUnits * 100 / cfg.MaxRowUnits
	if cell.FullWidth {
		percent = 100
	}

	classes := make([]string, 0, len(cell.Semantics))
	for _, s := range cell.Semantics {
		classes = append(classes, string(s))
	}
	classAttr := ""
	if len(classes) > 0 {
		classAttr = fmt.Sprintf(" class=%q", strings.Join(classes, " "))
	}

	fmt.Fprintf(b, "<td style=\"width: %d%%\"%s>", percent, classAttr)
	if cell.Label != "" {
		fmt.Fprintf(b, "<span class=\"cell-label\">%s</span>", html.EscapeString(cell.Label))
	}
	b.WriteString(strings.Join(cell.Lines, "<br>"))

	if len(cell.Rows) > 0 {
		b.WriteString("\n<table class=\"grid\">\n")
		for _, nested := range cell.Rows {
			writeRow(b, nested, cfg)
		}
		b.WriteString("</table>\n")
	}
	b.WriteString("</td>\n")
}
