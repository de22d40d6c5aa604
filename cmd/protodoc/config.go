package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"protodoc/pkg/document"
)

// defaultConfigFile is looked up in the working directory when no --config
// flag is given.
const defaultConfigFile = "protodoc.toml"

// fileConfig is the TOML shape of a protodoc configuration file. All
// fields are optional; unset fields keep the renderer defaults.
type fileConfig struct {
	FontFamily            string  `toml:"font_family"`
	FontSizePt            float64 `toml:"font_size_pt"`
	MaxRowUnits           int     `toml:"max_row_units"`
	UnitsToCharsRatio     float64 `toml:"units_to_chars_ratio"`
	SectionHeaderStyle    string  `toml:"section_header_style"`
	SubsectionHeaderStyle string  `toml:"subsection_header_style"`
}

// loadConfig returns the render configuration, applying overrides from a
// TOML file when one exists. A missing default config file is not an
// error; an explicitly named file must exist.
func loadConfig(path string) (document.Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return document.DefaultConfig(), nil
		}
		return document.Config{}, fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return document.Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg := document.Config{
		FontFamily:            fc.FontFamily,
		FontSizePt:            fc.FontSizePt,
		MaxRowUnits:           fc.MaxRowUnits,
		UnitsToCharsRatio:     fc.UnitsToCharsRatio,
		SectionHeaderStyle:    fc.SectionHeaderStyle,
		SubsectionHeaderStyle: fc.SubsectionHeaderStyle,
	}
	return cfg.Normalize(), nil
}
