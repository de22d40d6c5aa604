package htmlout_test

import (
	"strings"
	"testing"

	"protodoc/pkg/document"
	"protodoc/pkg/engine"
	"protodoc/pkg/htmlout"
)

func floatPtr(v float64) *float64 { return &v }

func TestRenderEscapesTitleAndLabels(t *testing.T) {
	doc := document.Document{
		Title: `Proto <1> & "Co"`,
		Sections: []document.OutputSection{
			{Kind: document.SectionHeader, Title: `Proto <1> & "Co"`},
			{Kind: document.SectionBody, Rows: []document.OutputRow{
				{Cells: []document.OutputCell{
					{ElementID: "a", Label: "A <label>", WidthUnits: 12, Lines: []string{"text"}},
				}},
			}},
		},
	}

	out := htmlout.Render(doc, document.DefaultConfig())

	if strings.Contains(out, "<1>") || strings.Contains(out, "A <label>") {
		t.Errorf("raw title/label markup leaked into output:\n%s", out)
	}
	if !strings.Contains(out, "Proto &lt;1&gt;") {
		t.Errorf("escaped title missing from output:\n%s", out)
	}
	if !strings.Contains(out, "A &lt;label&gt;") {
		t.Errorf("escaped label missing from output:\n%s", out)
	}
}

func TestRenderWidthsAndSemantics(t *testing.T) {
	doc := document.Document{
		Title: "t",
		Sections: []document.OutputSection{
			{Kind: document.SectionBody, Rows: []document.OutputRow{
				{Cells: []document.OutputCell{
					{ElementID: "a", WidthUnits: 6, Lines: []string{"half"}},
					{ElementID: "b", WidthUnits: 6, Lines: []string{"ok"},
						Semantics: []document.Semantic{document.SemPass}},
				}},
			}},
		},
	}

	out := htmlout.Render(doc, document.DefaultConfig())

	if !strings.Contains(out, `width: 50%`) {
		t.Errorf("6 of 12 units should serialize as 50%% width:\n%s", out)
	}
	if !strings.Contains(out, `class="pass"`) {
		t.Errorf("pass semantic should become a CSS class:\n%s", out)
	}
}

func TestRenderHeaderRowUsesConfiguredStyle(t *testing.T) {
	cfg := document.DefaultConfig()
	cfg.SectionHeaderStyle = "my-section"

	doc := document.Document{
		Title: "t",
		Sections: []document.OutputSection{
			{Kind: document.SectionBody, Rows: []document.OutputRow{
				{HeaderText: "Setup", HeaderStyle: cfg.SectionHeaderStyle},
			}},
		},
	}

	out := htmlout.Render(doc, cfg)

	if !strings.Contains(out, `class="my-section"`) {
		t.Errorf("header row should carry the configured style class:\n%s", out)
	}
}

func TestRenderFontConfig(t *testing.T) {
	cfg := document.DefaultConfig()
	cfg.FontFamily = "Courier"
	cfg.FontSizePt = 11

	out := htmlout.Render(document.Document{Title: "t"}, cfg)

	if !strings.Contains(out, "font-family: Courier") {
		t.Errorf("configured font family missing:\n%s", out)
	}
	if !strings.Contains(out, "font-size: 11pt") {
		t.Errorf("configured font size missing:\n%s", out)
	}
}

func TestRenderEndToEnd(t *testing.T) {
	p := document.Protocol{
		Title: "Line Clearance",
		Elements: []document.ProtocolElement{
			{ID: "e1", Type: document.TypeNumericValue, Label: "Count", DeclaredWidth: 6,
				Payload: document.NumericPayload{Value: floatPtr(3)}},
			{ID: "e2", Type: document.TypeTestStep, Label: "Power", DeclaredWidth: 6,
				Payload: document.TestStepPayload{Expected: "On", Actual: "Off"}},
		},
	}

	out := htmlout.Render(engine.Render(p, document.DefaultConfig()), document.DefaultConfig())

	for _, want := range []string{"<h1>Line Clearance</h1>", "3.00", `class="fail"`, "Expected: On"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderNestedTable(t *testing.T) {
	doc := document.Document{
		Title: "t",
		Sections: []document.OutputSection{
			{Kind: document.SectionBody, Rows: []document.OutputRow{
				{Cells: []document.OutputCell{
					{ElementID: "tbl", WidthUnits: 12, FullWidth: true, Rows: []document.OutputRow{
						{Cells: []document.OutputCell{
							{ElementID: "c1", WidthUnits: 6, Lines: []string{"inner"}},
						}},
					}},
				}},
			}},
		},
	}

	out := htmlout.Render(doc, document.DefaultConfig())

	if strings.Count(out, `<table class="grid">`) != 2 {
		t.Errorf("expected outer and nested grid tables:\n%s", out)
	}
	if !strings.Contains(out, "inner") {
		t.Errorf("nested cell content missing:\n%s", out)
	}
}
