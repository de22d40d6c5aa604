package packer_test

import (
	"reflect"
	"testing"

	"protodoc/pkg/document"
	"protodoc/pkg/packer"
)

// el builds a packable test element with the given id and width.
func el(id string, width int) document.ProtocolElement {
	return document.ProtocolElement{
		ID:            id,
		Type:          document.TypeNumericValue,
		DeclaredWidth: width,
	}
}

// rowWidths extracts the per-row clamped width lists for comparison.
func rowWidths(rows []document.Row, maxUnits int) [][]int {
	out := make([][]int, 0, len(rows))
	for _, r := range rows {
		widths := make([]int, 0, len(r.Elements))
		for _, e := range r.Elements {
			widths = append(widths, document.ClampWidth(e.DeclaredWidth, maxUnits))
		}
		out = append(out, widths)
	}
	return out
}

func TestPackFirstFit(t *testing.T) {
	tests := []struct {
		name     string
		widths   []int
		maxUnits int
		want     [][]int
	}{
		{
			name:     "exact fit then overflow",
			widths:   []int{6, 6, 4},
			maxUnits: 12,
			want:     [][]int{{6, 6}, {4}},
		},
		{
			name:     "all on one row",
			widths:   []int{3, 3, 3, 3},
			maxUnits: 12,
			want:     [][]int{{3, 3, 3, 3}},
		},
		{
			name:     "each on its own row",
			widths:   []int{12, 12},
			maxUnits: 12,
			want:     [][]int{{12}, {12}},
		},
		{
			name:     "oversized element clamped to full row",
			widths:   []int{20, 4},
			maxUnits: 12,
			want:     [][]int{{12}, {4}},
		},
		{
			name:     "zero width clamped to one unit",
			widths:   []int{0, 11},
			maxUnits: 12,
			want:     [][]int{{1, 11}},
		},
		{
			name:     "negative width clamped to one unit",
			widths:   []int{-5, 12},
			maxUnits: 12,
			want:     [][]int{{1}, {12}},
		},
		{
			name:     "no reordering to fill gaps",
			widths:   []int{8, 8, 4},
			maxUnits: 12,
			want:     [][]int{{8}, {8, 4}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elements := make([]document.ProtocolElement, 0, len(tt.widths))
			for i, w := range tt.widths {
				elements = append(elements, el(string(rune('a'+i)), w))
			}

			rows := packer.Pack(elements, tt.maxUnits)

			got := rowWidths(rows, tt.maxUnits)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Pack() row widths = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPackForcedFullWidth(t *testing.T) {
	elements := []document.ProtocolElement{
		{ID: "a", Type: document.TypeTable, DeclaredWidth: 8},
		{ID: "b", Type: document.TypeNumericValue, DeclaredWidth: 4},
	}

	rows := packer.Pack(elements, 12)

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if len(rows[0].Elements) != 1 || rows[0].Elements[0].ID != "a" {
		t.Errorf("TABLE element must occupy its own row, got %+v", rows[0])
	}
	if rows[0].Width != 12 {
		t.Errorf("forced row width = %d, want 12", rows[0].Width)
	}
	if len(rows[1].Elements) != 1 || rows[1].Elements[0].ID != "b" {
		t.Errorf("second row should hold element b, got %+v", rows[1])
	}
}

func TestPackForcedFlushesAccumulator(t *testing.T) {
	elements := []document.ProtocolElement{
		el("a", 3),
		el("b", 3),
		{ID: "c", Type: document.TypeSignature, DeclaredWidth: 2},
		el("d", 3),
	}

	rows := packer.Pack(elements, 12)

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if len(rows[0].Elements) != 2 {
		t.Errorf("accumulator row should hold a and b, got %+v", rows[0])
	}
	if len(rows[1].Elements) != 1 || rows[1].Elements[0].Type != document.TypeSignature {
		t.Errorf("SIGNATURE must sit alone, got %+v", rows[1])
	}
	if len(rows[2].Elements) != 1 || rows[2].Elements[0].ID != "d" {
		t.Errorf("trailing element should start a fresh row, got %+v", rows[2])
	}
}

func TestPackForcedRowInvariant(t *testing.T) {
	forced := []document.ElementType{
		document.TypeTable,
		document.TypeTextOnly,
		document.TypeTrainingEffectiveness,
		document.TypeFindingsSection,
		document.TypeSignature,
	}

	for _, typ := range forced {
		t.Run(string(typ), func(t *testing.T) {
			elements := []document.ProtocolElement{
				el("a", 2),
				{ID: "f", Type: typ, DeclaredWidth: 2},
				el("b", 2),
			}

			rows := packer.Pack(elements, 12)

			for _, r := range rows {
				for _, e := range r.Elements {
					if e.Type == typ && len(r.Elements) != 1 {
						t.Errorf("%s must be sole occupant of its row, got %d elements", typ, len(r.Elements))
					}
				}
			}
		})
	}
}

func TestPackOrderPreserved(t *testing.T) {
	elements := []document.ProtocolElement{
		el("a", 5),
		{ID: "b", Type: document.TypeTextOnly, DeclaredWidth: 1},
		el("c", 9),
		el("d", 4),
		{ID: "e", Type: document.TypeTable, DeclaredWidth: 12},
		el("f", 1),
	}

	rows := packer.Pack(elements, 12)

	var got []string
	for _, r := range rows {
		for _, e := range r.Elements {
			got = append(got, e.ID)
		}
	}
	want := []string{"a", "b", "c", "d", "e", "f"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("flattened element order = %v, want %v", got, want)
	}
}

func TestPackRowWidthInvariant(t *testing.T) {
	elements := []document.ProtocolElement{
		el("a", 7), el("b", 7), el("c", 30), el("d", 1),
		el("e", 12), el("f", 6), el("g", 6), el("h", 1),
	}

	rows := packer.Pack(elements, 12)

	for i, r := range rows {
		total := 0
		for _, e := range r.Elements {
			total += document.ClampWidth(e.DeclaredWidth, 12)
		}
		if total > 12 {
			t.Errorf("row %d total clamped width %d exceeds 12", i, total)
		}
	}
}

func TestPackEmptyInput(t *testing.T) {
	if rows := packer.Pack(nil, 12); rows != nil {
		t.Errorf("Pack(nil) = %v, want nil", rows)
	}
	if rows := packer.Pack([]document.ProtocolElement{}, 12); rows != nil {
		t.Errorf("Pack(empty) = %v, want nil", rows)
	}
}

func TestPackIdempotent(t *testing.T) {
	elements := []document.ProtocolElement{
		el("a", 5), el("b", 8),
		{ID: "c", Type: document.TypeFindingsSection, DeclaredWidth: 3},
		el("d", 12),
	}

	first := packer.Pack(elements, 12)
	second := packer.Pack(elements, 12)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("packing is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestPackCustomForcedSet(t *testing.T) {
	p := packer.New(12)
	p.Forced = map[document.ElementType]bool{document.TypeFreeText: true}

	elements := []document.ProtocolElement{
		{ID: "a", Type: document.TypeTable, DeclaredWidth: 4},
		{ID: "b", Type: document.TypeFreeText, DeclaredWidth: 4},
		{ID: "c", Type: document.TypeNumericValue, DeclaredWidth: 4},
	}

	rows := p.Pack(elements)

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows (TABLE packs normally, FREE_TEXT forced), got %d", len(rows))
	}
	if rows[1].Elements[0].ID != "b" || len(rows[1].Elements) != 1 {
		t.Errorf("FREE_TEXT should be forced alone with custom set, got %+v", rows[1])
	}
}
