// Package packer groups an ordered sequence of protocol elements into
// rows of bounded width. Packing is sequential first-fit: it never
// reorders elements to reduce row count, because element order is a hard
// input invariant of the document.
package packer

import "protodoc/pkg/document"

// DefaultForcedTypes returns the element types that always occupy a full
// row alone, regardless of declared width.
func DefaultForcedTypes() map[document.ElementType]bool {
	return map[document.ElementType]bool{
		document.TypeTable:                 true,
		document.TypeTextOnly:              true,
		document.TypeTrainingEffectiveness: true,
		document.TypeFindingsSection:       true,
		document.TypeSignature:             true,
	}
}

// Packer packs elements into rows of at most MaxUnits grid units.
// Forced holds the full-width type set; types absent from the map pack
// normally, so newly-introduced element types default to packable.
type Packer struct {
	MaxUnits int
	Forced   map[document.ElementType]bool
}

// New returns a Packer with the default forced-full-width type set.
// maxUnits values below 1 fall back to document.MaxUnits.
func New(maxUnits int) *Packer {
	if maxUnits < 1 {
		maxUnits = document.MaxUnits
	}
	return &Packer{
		MaxUnits: maxUnits,
		Forced:   DefaultForcedTypes(),
	}
}

// Pack groups elements into rows. Within and across rows the input order
// is preserved exactly. Declared widths are clamped to [1, MaxUnits]
// before packing; an element whose raw width exceeds MaxUnits occupies
// its own row at the clamped width, never split across rows.
func (p *Packer) Pack(elements []document.ProtocolElement) []document.Row {
	if len(elements) == 0 {
		return nil
	}

	var rows []document.Row
	var current []document.ProtocolElement
	running := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		rows = append(rows, document.Row{Elements: current, Width: running})
		current = nil
		running = 0
	}

	for _, el := range elements {
		width := document.ClampWidth(el.DeclaredWidth, p.MaxUnits)

		if p.Forced[el.Type] {
			flush()
			rows = append(rows, document.Row{
				Elements: []document.ProtocolElement{el},
				Width:    p.MaxUnits,
			})
			continue
		}

		if running+width > p.MaxUnits {
			flush()
		}
		current = append(current, el)
		running += width
	}
	flush()

	return rows
}

// Pack packs elements with the default forced-type set at the given max
// row width. Convenience wrapper around New(maxUnits).Pack.
func Pack(elements []document.ProtocolElement, maxUnits int) []document.Row {
	return New(maxUnits).Pack(elements)
}
