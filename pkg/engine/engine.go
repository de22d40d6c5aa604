// Package engine composes the layout pipeline: pack elements into rows,
// render each element to a content block, wrap block text into display
// lines, and assemble the section tree. One call consumes one
// fully-resolved protocol and produces one document; the engine holds no
// state between calls, so unrelated invocations may run in parallel.
package engine

import (
	"protodoc/pkg/assemble"
	"protodoc/pkg/document"
	"protodoc/pkg/packer"
	"protodoc/pkg/render"
	"protodoc/pkg/wrap"
)

// Render lays out one protocol document. Degenerate inputs degrade, they
// never fail: an empty element sequence yields an empty document, widths
// are clamped, unknown element types render generically, and missing
// values render as empty text.
func Render(p document.Protocol, cfg document.Config) document.Document {
	cfg = cfg.Normalize()
	doc := document.Document{Title: p.Title}
	if len(p.Elements) == 0 {
		return doc
	}

	pk := packer.New(cfg.MaxRowUnits)
	rows := pk.Pack(p.Elements)

	cells := make(map[string]document.OutputCell, len(p.Elements))
	for _, el := range p.Elements {
		block, ok := render.Element(el)
		if !ok {
			continue
		}
		units := document.ClampWidth(el.DeclaredWidth, cfg.MaxRowUnits)
		if block.FullWidth || pk.Forced[el.Type] {
			units = cfg.MaxRowUnits
		}
		cells[el.ID] = buildCell(block, units, cfg)
	}

	doc.Sections = assemble.Document(p.Title, rows, cells, cfg)
	return doc
}

// buildCell wraps a block's text for its cell width and converts nested
// child blocks (table rows, finding sub-blocks) into nested output rows.
// Table rows divide the parent width evenly among their cells.
func buildCell(block document.ContentBlock, units int, cfg document.Config) document.OutputCell {
	cell := document.OutputCell{
		ElementID:  block.ElementID,
		Label:      block.Label,
		WidthUnits: units,
		FullWidth:  block.FullWidth,
		Semantics:  block.Semantics,
		Lines:      wrap.Lines(block.Text, wrap.Budget(units, cfg)),
	}

	for _, child := range block.Children {
		if len(child.Children) > 0 {
			childUnits := units / len(child.Children)
			if childUnits < 1 {
				childUnits = 1
			}
			row := document.OutputRow{}
			for _, cc := range child.Children {
				row.Cells = append(row.Cells, buildCell(cc, childUnits, cfg))
			}
			cell.Rows = append(cell.Rows, row)
			continue
		}
		cell.Rows = append(cell.Rows, document.OutputRow{
			Cells: []document.OutputCell{buildCell(child, units, cfg)},
		})
	}
	return cell
}
