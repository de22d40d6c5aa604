// Package source supplies fully-resolved protocols to the layout engine.
// It owns all data access: a SQLite-backed store with bulk fetch-then-map
// resolution of related records, and a YAML loader for file-based
// protocols. The engine itself never sees an unresolved identifier.
package source

import (
	"time"

	"github.com/google/uuid"

	"protodoc/pkg/document"
)

// protocolSpec is the serialized form of a protocol, shared by the YAML
// file format and the store's payload column.
type protocolSpec struct {
	ID       string        `yaml:"id" json:"id"`
	Title    string        `yaml:"title" json:"title"`
	Elements []elementSpec `yaml:"elements" json:"elements"`
}

// elementSpec is the serialized form of one element. Payload fields are a
// union: which ones are meaningful depends on the element type, and
// unrelated fields are simply ignored, mirroring the renderer's tolerance
// for malformed payloads.
type elementSpec struct {
	ID         string `yaml:"id,omitempty" json:"id,omitempty"`
	Type       string `yaml:"type" json:"type"`
	Label      string `yaml:"label,omitempty" json:"label,omitempty"`
	Width      int    `yaml:"width,omitempty" json:"width,omitempty"`
	Order      int    `yaml:"order,omitempty" json:"order,omitempty"`
	Section    string `yaml:"section,omitempty" json:"section,omitempty"`
	Subsection string `yaml:"subsection,omitempty" json:"subsection,omitempty"`

	Value     *float64        `yaml:"value,omitempty" json:"value,omitempty"`
	Text      string          `yaml:"text,omitempty" json:"text,omitempty"`
	Selected  []string        `yaml:"selected,omitempty" json:"selected,omitempty"`
	Choice    string          `yaml:"choice,omitempty" json:"choice,omitempty"`
	Expected  string          `yaml:"expected,omitempty" json:"expected,omitempty"`
	Actual    string          `yaml:"actual,omitempty" json:"actual,omitempty"`
	Score     float64         `yaml:"score,omitempty" json:"score,omitempty"`
	Threshold float64         `yaml:"threshold,omitempty" json:"threshold,omitempty"`
	Rows      [][]elementSpec `yaml:"rows,omitempty" json:"rows,omitempty"`
	Findings  []findingSpec   `yaml:"findings,omitempty" json:"findings,omitempty"`

	Signer    string     `yaml:"signer,omitempty" json:"signer,omitempty"`
	SignedAt  *time.Time `yaml:"signed_at,omitempty" json:"signed_at,omitempty"`
	TZOffset  int        `yaml:"tz_offset,omitempty" json:"tz_offset,omitempty"`
	ConvertTZ bool       `yaml:"convert_tz,omitempty" json:"convert_tz,omitempty"`
}

// findingSpec is the serialized form of one finding record.
type findingSpec struct {
	ID          string     `yaml:"id,omitempty" json:"id,omitempty"`
	Title       string     `yaml:"title,omitempty" json:"title,omitempty"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
	Severity    string     `yaml:"severity,omitempty" json:"severity,omitempty"`
	RecordedAt  *time.Time `yaml:"recorded_at,omitempty" json:"recorded_at,omitempty"`
}

// toElement converts a spec into a protocol element, generating an id
// when the spec carries none.
func (s elementSpec) toElement() document.ProtocolElement {
	id := s.ID
	if id == "" {
		id = uuid.NewString()
	}
	return document.ProtocolElement{
		ID:            id,
		Type:          document.ElementType(s.Type),
		Label:         s.Label,
		DeclaredWidth: s.Width,
		Order:         s.Order,
		Section:       s.Section,
		Subsection:    s.Subsection,
		Payload:       s.toPayload(),
	}
}

// toPayload builds the typed payload for the spec's element type.
// Unknown types yield a text payload of whatever free text was given, so
// the renderer's generic fallback still has something to show.
func (s elementSpec) toPayload() document.Payload {
	switch document.ElementType(s.Type) {
	case document.TypeNumericValue:
		return document.NumericPayload{Value: s.Value}
	case document.TypeFreeText, document.TypeTextOnly:
		return document.TextPayload{Value: s.Text}
	case document.TypeMultiPicklist:
		return document.MultiPicklistPayload{Selected: s.Selected}
	case document.TypeSinglePicklist, document.TypeRadioVertical, document.TypeRadioHorizontal:
		return document.ChoicePayload{Selected: s.Choice}
	case document.TypeTestStep:
		return document.TestStepPayload{Expected: s.Expected, Actual: s.Actual}
	case document.TypeTrainingEffectiveness:
		return document.TrainingPayload{Score: s.Score, Threshold: s.Threshold}
	case document.TypeTable:
		rows := make([][]document.ProtocolElement, 0, len(s.Rows))
		for _, specRow := range s.Rows {
			row := make([]document.ProtocolElement, 0, len(specRow))
			for _, cell := range specRow {
				row = append(row, cell.toElement())
			}
			rows = append(rows, row)
		}
		return document.TablePayload{Rows: rows}
	case document.TypeFindingsSection:
		findings := make([]document.Finding, 0, len(s.Findings))
		for _, f := range s.Findings {
			findings = append(findings, document.Finding(f))
		}
		return document.FindingsPayload{Findings: findings}
	case document.TypeSignature:
		return document.SignaturePayload{
			SignerName:    s.Signer,
			SignedAt:      s.SignedAt,
			TZOffsetHours: s.TZOffset,
			ConvertTZ:     s.ConvertTZ,
		}
	default:
		if s.Text != "" {
			return document.TextPayload{Value: s.Text}
		}
		return nil
	}
}

// specFromElement is the inverse of toElement, used when persisting a
// protocol. Findings and signatures are included; the store strips them
// into their own tables on save.
func specFromElement(el document.ProtocolElement) elementSpec {
	s := elementSpec{
		ID:         el.ID,
		Type:       string(el.Type),
		Label:      el.Label,
		Width:      el.DeclaredWidth,
		Order:      el.Order,
		Section:    el.Section,
		Subsection: el.Subsection,
	}
	switch p := el.Payload.(type) {
	case document.NumericPayload:
		s.Value = p.Value
	case document.TextPayload:
		s.Text = p.Value
	case document.MultiPicklistPayload:
		s.Selected = p.Selected
	case document.ChoicePayload:
		s.Choice = p.Selected
	case document.TestStepPayload:
		s.Expected = p.Expected
		s.Actual = p.Actual
	case document.TrainingPayload:
		s.Score = p.Score
		s.Threshold = p.Threshold
	case document.TablePayload:
		for _, row := range p.Rows {
			specRow := make([]elementSpec, 0, len(row))
			for _, cell := range row {
				specRow = append(specRow, specFromElement(cell))
			}
			s.Rows = append(s.Rows, specRow)
		}
	case document.FindingsPayload:
		for _, f := range p.Findings {
			s.Findings = append(s.Findings, findingSpec(f))
		}
	case document.SignaturePayload:
		s.Signer = p.SignerName
		s.SignedAt = p.SignedAt
		s.TZOffset = p.TZOffsetHours
		s.ConvertTZ = p.ConvertTZ
	}
	return s
}
