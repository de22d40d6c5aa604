// Package document defines the data model shared by the protodoc layout
// pipeline: protocol elements and their typed payloads on the input side,
// and the section/row/cell tree on the output side.
package document

import "time"

// MaxUnits is the conventional grid width of a document row.
const MaxUnits = 12

// LineBreak is the explicit hard line-break marker inserted by the renderer
// (e.g. for literal newlines in FREE_TEXT values). The wrapper terminates
// the current display line whenever it encounters this marker.
const LineBreak = "\u2028"

// ElementType identifies the kind of a protocol element. The renderer
// dispatches on this tag; unknown tags degrade to a generic text rendering.
type ElementType string

// Element type constants. TypeTable through TypeSignature form the closed
// set the renderer knows; anything else takes the generic fallback path.
const (
	TypeTable                 ElementType = "TABLE"
	TypeTestStep              ElementType = "TEST_STEP"
	TypeTextOnly              ElementType = "TEXT_ONLY"
	TypeMultiPicklist         ElementType = "MULTI_PICKLIST"
	TypeSinglePicklist        ElementType = "SINGLE_PICKLIST"
	TypeRadioVertical         ElementType = "RADIO_VERTICAL"
	TypeRadioHorizontal       ElementType = "RADIO_HORIZONTAL"
	TypeFreeText              ElementType = "FREE_TEXT"
	TypeNumericValue          ElementType = "NUMERIC_VALUE"
	TypeTrainingEffectiveness ElementType = "TRAINING_EFFECTIVENESS"
	TypeFindingsSection       ElementType = "FINDINGS_SECTION"
	TypeSignature             ElementType = "SIGNATURE"
)

// Protocol is one fully-resolved input document: an ordered list of
// elements with all related records (findings, signatures) already
// attached. The layout pipeline never performs data access of its own.
type Protocol struct {
	ID       string
	Title    string
	Elements []ProtocolElement
}

// ProtocolElement is one typed element of a protocol document.
// DeclaredWidth is in grid units and is clamped to [1, MaxRowUnits] before
// packing; Order is the sole ordering key and must never be violated by
// any pipeline stage. Section and Subsection are grouping labels used by
// the assembler to insert header rows; they play no part in packing.
type ProtocolElement struct {
	ID            string
	Type          ElementType
	Label         string
	DeclaredWidth int
	Order         int
	Section       string
	Subsection    string
	Payload       Payload
}

// Payload is the per-type content of a protocol element. Concrete payload
// types below form a closed set matching the element type constants.
type Payload interface {
	isPayload()
}

// NumericPayload carries a NUMERIC_VALUE element's value. A nil Value
// renders as the empty string, never "0" or "NaN".
type NumericPayload struct {
	Value *float64
}

// TextPayload carries FREE_TEXT and TEXT_ONLY content.
type TextPayload struct {
	Value string
}

// MultiPicklistPayload carries the ordered selection of a MULTI_PICKLIST
// element. Selection order is the payload's given order and is preserved.
type MultiPicklistPayload struct {
	Selected []string
}

// ChoicePayload carries the single selected value of SINGLE_PICKLIST,
// RADIO_VERTICAL, and RADIO_HORIZONTAL elements.
type ChoicePayload struct {
	Selected string
}

// TablePayload is an ordered grid of child elements. Each child cell is
// rendered recursively with the same per-type rules as a top-level element.
type TablePayload struct {
	Rows [][]ProtocolElement
}

// TestStepPayload carries a TEST_STEP element's expected and actual
// values. The pass/fail outcome is derived, not stored.
type TestStepPayload struct {
	Expected string
	Actual   string
}

// TrainingPayload carries a TRAINING_EFFECTIVENESS element's score and
// passing threshold. Passing is derived as Score >= Threshold.
type TrainingPayload struct {
	Score     float64
	Threshold float64
}

// Finding is one already-resolved finding record attached to a
// FINDINGS_SECTION element by the element source.
type Finding struct {
	ID          string
	Title       string
	Description string
	Severity    string
	RecordedAt  *time.Time
}

// FindingsPayload carries the resolved finding list of a FINDINGS_SECTION
// element. An empty list renders as no block at all.
type FindingsPayload struct {
	Findings []Finding
}

// SignaturePayload carries a SIGNATURE element's signer and timestamp.
// When ConvertTZ is set, SignedAt is shifted by TZOffsetHours before
// formatting. A missing signer renders as no block at all.
type SignaturePayload struct {
	SignerName    string
	SignedAt      *time.Time
	TZOffsetHours int
	ConvertTZ     bool
}

func (NumericPayload) isPayload()       {}
func (TextPayload) isPayload()          {}
func (MultiPicklistPayload) isPayload() {}
func (ChoicePayload) isPayload()        {}
func (TablePayload) isPayload()         {}
func (TestStepPayload) isPayload()      {}
func (TrainingPayload) isPayload()      {}
func (FindingsPayload) isPayload()      {}
func (SignaturePayload) isPayload()     {}

// Semantic is a presentation-independent tag attached to rendered content,
// e.g. a derived pass/fail outcome or a layout-orientation hint. Tags are
// carried alongside text, never embedded in it.
type Semantic string

// Semantic tag constants.
const (
	SemPass       Semantic = "pass"
	SemFail       Semantic = "fail"
	SemVertical   Semantic = "vertical"
	SemHorizontal Semantic = "horizontal"
)

// Row is one packed row of elements. The sum of the elements' clamped
// widths never exceeds the packer's max units, except for a lone element
// whose raw width exceeded the max, which is clamped and sits alone.
// Rows are produced once by the packer and consumed read-only.
type Row struct {
	Elements []ProtocolElement
	Width    int
}

// ContentBlock is the renderer's output for one element: escaped text
// (with LineBreak markers for hard breaks), semantic tags, and, for
// container types, child blocks. It is the wrapper's input.
type ContentBlock struct {
	ElementID string
	Label     string
	Text      string
	Semantics []Semantic
	FullWidth bool
	Children  []ContentBlock
}

// HasSemantic reports whether the block carries the given tag.
func (b ContentBlock) HasSemantic(s Semantic) bool {
	for _, tag := range b.Semantics {
		if tag == s {
			return true
		}
	}
	return false
}

// SectionKind identifies one of the fixed output document sections.
type SectionKind string

// Output section kinds, in emission order.
const (
	SectionHeader    SectionKind = "header"
	SectionBody      SectionKind = "body"
	SectionFindings  SectionKind = "findings"
	SectionSignature SectionKind = "signature"
)

// OutputSection is one section of the final document: an ordered list of
// rows. Sections appear in the fixed order header, body, findings,
// signature; findings and signature are omitted entirely when empty.
type OutputSection struct {
	Kind  SectionKind
	Title string
	Rows  []OutputRow
}

// OutputRow is either a header row (HeaderText non-empty, no cells)
// inserted before a logical grouping, or a content row of cells laid out
// left to right.
type OutputRow struct {
	HeaderText  string
	HeaderStyle string
	Cells       []OutputCell
}

// IsHeader reports whether the row is a section/subsection header row.
func (r OutputRow) IsHeader() bool {
	return r.HeaderText != ""
}

// OutputCell is one rendered cell: the element's wrapped display lines
// plus its width share of the row. Every line is guaranteed to fit the
// cell's character budget. Nested table content appears in Rows.
type OutputCell struct {
	ElementID  string
	Label      string
	WidthUnits int
	FullWidth  bool
	Lines      []string
	Semantics  []Semantic
	Rows       []OutputRow
}

// Document is the assembled output of one rendering pass.
type Document struct {
	Title    string
	Sections []OutputSection
}
