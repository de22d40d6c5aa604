// Package assemble combines packed rows and their wrapped cell content
// into the final ordered document: header, body rows, findings section,
// signature section. Rows and cells are consumed read-only; the assembler
// never re-packs or reorders anything.
package assemble

import "protodoc/pkg/document"

// Document assembles the output sections for one rendering pass.
//
// cells maps element id to its fully rendered cell (wrapped lines,
// semantics, nested rows). Elements absent from the map produced no
// content block (empty findings list, unsigned signature) and are
// dropped; a row whose elements were all dropped is dropped with them.
//
// Rows whose sole occupant is a FINDINGS_SECTION or SIGNATURE element are
// routed to their dedicated trailing sections, which are omitted entirely
// when no such content exists. Section and subsection header rows are
// inserted immediately before the first body row of each logical grouping;
// they are presentation only and play no part in packing.
func Document(title string, rows []document.Row, cells map[string]document.OutputCell, cfg document.Config) []document.OutputSection {
	cfg = cfg.Normalize()

	sections := []document.OutputSection{
		{Kind: document.SectionHeader, Title: title},
	}

	body := document.OutputSection{Kind: document.SectionBody}
	findings := document.OutputSection{Kind: document.SectionFindings, Title: "Findings"}
	signature := document.OutputSection{Kind: document.SectionSignature, Title: "Signatures"}

	lastSection := ""
	lastSubsection := ""

	for _, row := range rows {
		outRow := document.OutputRow{}
		for _, el := range row.Elements {
			cell, ok := cells[el.ID]
			if !ok {
				continue
			}
			outRow.Cells = append(outRow.Cells, cell)
		}
		if len(outRow.Cells) == 0 {
			continue
		}

		first := row.Elements[0]
		switch first.Type {
		case document.TypeFindingsSection:
			findings.Rows = append(findings.Rows, outRow)
		case document.TypeSignature:
			signature.Rows = append(signature.Rows, outRow)
		default:
			if first.Section != "" && first.Section != lastSection {
				body.Rows = append(body.Rows, document.OutputRow{
					HeaderText:  first.Section,
					HeaderStyle: cfg.SectionHeaderStyle,
				})
				lastSection = first.Section
				lastSubsection = ""
			}
			if first.Subsection != "" && first.Subsection != lastSubsection {
				body.Rows = append(body.Rows, document.OutputRow{
					HeaderText:  first.Subsection,
					HeaderStyle: cfg.SubsectionHeaderStyle,
				})
				lastSubsection = first.Subsection
			}
			body.Rows = append(body.Rows, outRow)
		}
	}

	sections = append(sections, body)
	if len(findings.Rows) > 0 {
		sections = append(sections, findings)
	}
	if len(signature.Rows) > 0 {
		sections = append(sections, signature)
	}
	return sections
}
