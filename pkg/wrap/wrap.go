// Package wrap lays out a content block's text into display lines that fit
// a cell's character budget. The medium is non-reflowable print, so words
// longer than the budget are forcibly split rather than allowed to
// overflow. Splitting is lossless: the fragments of a split word
// concatenate back to the original word exactly, with no inserted hyphen.
package wrap

import (
	"strings"

	"protodoc/pkg/document"
)

// Budget converts a cell width in grid units to a character budget using
// the configured units-to-characters ratio. The budget is never below one
// character.
func Budget(cellUnits int, cfg document.Config) int {
	cfg = cfg.Normalize()
	if cellUnits < 1 {
		cellUnits = 1
	}
	budget := int(float64(cellUnits) * cfg.UnitsToCharsRatio)
	if budget < 1 {
		budget = 1
	}
	return budget
}

// Block wraps a content block's text for a cell of the given width.
func Block(b document.ContentBlock, cellUnits int, cfg document.Config) []string {
	return Lines(b.Text, Budget(cellUnits, cfg))
}

// Lines lays text out greedily into lines of at most budget characters.
// document.LineBreak markers are hard breaks: they always terminate the
// current line regardless of remaining budget. Lines are produced in
// reading order and are never merged, reordered, or dropped.
func Lines(text string, budget int) []string {
	if text == "" {
		return nil
	}
	if budget < 1 {
		budget = 1
	}

	var lines []string
	segments := strings.Split(text, document.LineBreak)
	for _, segment := range segments {
		lines = append(lines, fill(segment, budget)...)
	}
	return lines
}

// fill greedily packs one hard-break-free segment into lines. An empty
// segment still yields one empty line, so consecutive hard breaks show up
// as blank lines in the output.
func fill(segment string, budget int) []string {
	tokens := strings.Fields(segment)
	if len(tokens) == 0 {
		return []string{""}
	}

	var lines []string
	current := ""
	for _, token := range tokens {
		runes := []rune(token)

		// A token that cannot fit any line alone is split at the budget
		// offset, repeatedly, with no characters added or dropped.
		if len(runes) > budget {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			for len(runes) > budget {
				lines = append(lines, string(runes[:budget]))
				runes = runes[budget:]
			}
			current = string(runes)
			continue
		}

		switch {
		case current == "":
			current = token
		case len([]rune(current))+1+len(runes) <= budget:
			current += " " + token
		default:
			lines = append(lines, current)
			current = token
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
