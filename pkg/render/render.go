// Package render turns one protocol element into a content block: escaped
// text with semantic tags, prior to line-wrapping. Rendering is a pure
// function of the element; no data access happens here.
package render

import (
	"fmt"
	"strings"

	"protodoc/pkg/document"
)

// Element renders one protocol element into a content block. The second
// return value is false when the element produces no output at all (an
// empty findings list, a signature without a signer); such elements are
// omitted from the document rather than rendered empty.
//
// Unknown element types never fail: they fall back to the element's label
// plus the escaped stringified payload.
func Element(el document.ProtocolElement) (document.ContentBlock, bool) {
	block := document.ContentBlock{
		ElementID: el.ID,
		Label:     el.Label,
	}

	switch el.Type {
	case document.TypeNumericValue:
		if p, ok := el.Payload.(document.NumericPayload); ok {
			block.Text = FormatNumber(p.Value)
		}

	case document.TypeFreeText:
		if p, ok := el.Payload.(document.TextPayload); ok {
			block.Text = hardBreaks(Escape(p.Value))
		}

	case document.TypeTextOnly:
		if p, ok := el.Payload.(document.TextPayload); ok {
			block.Text = hardBreaks(Escape(p.Value))
		}
		block.FullWidth = true

	case document.TypeMultiPicklist:
		if p, ok := el.Payload.(document.MultiPicklistPayload); ok {
			block.Text = Escape(strings.Join(p.Selected, ", "))
		}

	case document.TypeSinglePicklist:
		if p, ok := el.Payload.(document.ChoicePayload); ok {
			block.Text = Escape(p.Selected)
		}

	case document.TypeRadioVertical:
		if p, ok := el.Payload.(document.ChoicePayload); ok {
			block.Text = Escape(p.Selected)
		}
		block.Semantics = append(block.Semantics, document.SemVertical)

	case document.TypeRadioHorizontal:
		if p, ok := el.Payload.(document.ChoicePayload); ok {
			block.Text = Escape(p.Selected)
		}
		block.Semantics = append(block.Semantics, document.SemHorizontal)

	case document.TypeTestStep:
		if p, ok := el.Payload.(document.TestStepPayload); ok {
			block.Text = "Expected: " + Escape(p.Expected) +
				document.LineBreak +
				"Actual: " + Escape(p.Actual)
			block.Semantics = append(block.Semantics, passFail(p.Actual == p.Expected))
		}

	case document.TypeTrainingEffectiveness:
		if p, ok := el.Payload.(document.TrainingPayload); ok {
			passed := p.Score >= p.Threshold
			block.Text = "Score: " + FormatNumber(&p.Score) +
				document.LineBreak +
				"Threshold: " + FormatNumber(&p.Threshold) +
				document.LineBreak +
				banner(passed)
			block.Semantics = append(block.Semantics, passFail(passed))
		}
		block.FullWidth = true

	case document.TypeTable:
		p, ok := el.Payload.(document.TablePayload)
		if ok {
			block.Children = tableChildren(p)
		}
		block.FullWidth = true

	case document.TypeFindingsSection:
		p, ok := el.Payload.(document.FindingsPayload)
		if !ok || len(p.Findings) == 0 {
			return document.ContentBlock{}, false
		}
		for _, f := range p.Findings {
			block.Children = append(block.Children, findingBlock(f))
		}
		block.FullWidth = true

	case document.TypeSignature:
		p, ok := el.Payload.(document.SignaturePayload)
		if !ok || p.SignerName == "" {
			return document.ContentBlock{}, false
		}
		block.Text = Escape(p.SignerName)
		if ts := FormatDateTime(p.SignedAt, p.TZOffsetHours, p.ConvertTZ); ts != "" {
			block.Text += document.LineBreak + ts
		}
		block.FullWidth = true

	default:
		block.Text = fallbackText(el)
	}

	return block, true
}

// tableChildren renders a table payload's grid. Each child of the result
// is one table row whose own children are the rendered cells, recursing
// through Element for each cell.
func tableChildren(p document.TablePayload) []document.ContentBlock {
	rows := make([]document.ContentBlock, 0, len(p.Rows))
	for _, cells := range p.Rows {
		var row document.ContentBlock
		for _, cell := range cells {
			child, ok := Element(cell)
			if !ok {
				child = document.ContentBlock{ElementID: cell.ID, Label: cell.Label}
			}
			row.Children = append(row.Children, child)
		}
		rows = append(rows, row)
	}
	return rows
}

// findingBlock renders one resolved finding as a sub-block.
func findingBlock(f document.Finding) document.ContentBlock {
	text := Escape(f.Severity)
	if f.Description != "" {
		if text != "" {
			text += ": "
		}
		text += hardBreaks(Escape(f.Description))
	}
	if d := FormatDate(f.RecordedAt); d != "" {
		text += document.LineBreak + d
	}
	return document.ContentBlock{
		ElementID: f.ID,
		Label:     f.Title,
		Text:      text,
	}
}

// fallbackText renders an unrecognized element type: the raw label plus
// the escaped stringified payload.
func fallbackText(el document.ProtocolElement) string {
	text := Escape(el.Label)
	if el.Payload == nil {
		return text
	}
	payload := Escape(fmt.Sprintf("%v", el.Payload))
	if text == "" {
		return payload
	}
	return text + document.LineBreak + payload
}

func passFail(passed bool) document.Semantic {
	if passed {
		return document.SemPass
	}
	return document.SemFail
}

func banner(passed bool) string {
	if passed {
		return "PASS"
	}
	return "FAIL"
}
