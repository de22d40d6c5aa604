package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"protodoc/pkg/engine"
	"protodoc/pkg/termout"
)

// previewConfig holds configuration for the preview command.
type previewConfig struct {
	width      int
	configPath string
	dbPath     string
	protocolID string
	noColor    bool
}

// newPreviewCmd creates the "protodoc preview" subcommand.
func newPreviewCmd() *cobra.Command {
	var cfg previewConfig

	cmd := &cobra.Command{
		Use:   "preview [protocol.yaml]",
		Short: "Render a protocol document to the terminal",
		Long:  "Lays out a protocol document and prints a terminal preview.\nColor is disabled automatically when stdout is not a terminal.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProtocol(cmd, args, cfg.dbPath, cfg.protocolID)
			if err != nil {
				return err
			}

			renderCfg, err := loadConfig(cfg.configPath)
			if err != nil {
				return err
			}

			color := !cfg.noColor && isatty.IsTerminal(os.Stdout.Fd())
			out := termout.Render(engine.Render(p, renderCfg), termout.Options{
				Width:       cfg.width,
				MaxRowUnits: renderCfg.MaxRowUnits,
				Color:       color,
			})
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().IntVarP(&cfg.width, "width", "w", 80, "preview width in columns")
	cmd.Flags().StringVar(&cfg.configPath, "config", "", "TOML config file (default protodoc.toml if present)")
	cmd.Flags().StringVar(&cfg.dbPath, "db", "", "SQLite protocol store to read from")
	cmd.Flags().StringVar(&cfg.protocolID, "protocol", "", "protocol id to load from the store")
	cmd.Flags().BoolVar(&cfg.noColor, "no-color", false, "disable colored output")

	return cmd
}
