package document

// Config carries the rendering parameters the layout engine consumes.
// The engine never chooses concrete style values itself; callers supply
// them here and the serializer applies them.
type Config struct {
	FontFamily            string
	FontSizePt            float64
	MaxRowUnits           int
	UnitsToCharsRatio     float64
	SectionHeaderStyle    string
	SubsectionHeaderStyle string
}

// DefaultConfig returns the renderer defaults: a 12-unit grid at 10pt
// with roughly 8.5 characters per grid unit (derived from average glyph
// width at that size across a full-width document).
func DefaultConfig() Config {
	return Config{
		FontFamily:            "Helvetica",
		FontSizePt:            10,
		MaxRowUnits:           MaxUnits,
		UnitsToCharsRatio:     8.5,
		SectionHeaderStyle:    "section-header",
		SubsectionHeaderStyle: "subsection-header",
	}
}

// Normalize fills zero-valued fields from DefaultConfig so that a
// partially-populated Config never produces a degenerate layout.
func (c Config) Normalize() Config {
	def := DefaultConfig()
	if c.FontFamily == "" {
		c.FontFamily = def.FontFamily
	}
	if c.FontSizePt <= 0 {
		c.FontSizePt = def.FontSizePt
	}
	if c.MaxRowUnits <= 0 {
		c.MaxRowUnits = def.MaxRowUnits
	}
	if c.UnitsToCharsRatio <= 0 {
		c.UnitsToCharsRatio = def.UnitsToCharsRatio
	}
	if c.SectionHeaderStyle == "" {
		c.SectionHeaderStyle = def.SectionHeaderStyle
	}
	if c.SubsectionHeaderStyle == "" {
		c.SubsectionHeaderStyle = def.SubsectionHeaderStyle
	}
	return c
}

// ClampWidth corrects a declared element width to [1, maxUnits].
// Out-of-range widths are corrected, never rejected.
func ClampWidth(width, maxUnits int) int {
	if width < 1 {
		return 1
	}
	if width > maxUnits {
		return maxUnits
	}
	return width
}
