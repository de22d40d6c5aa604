package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"protodoc/pkg/document"
	"protodoc/pkg/engine"
	"protodoc/pkg/htmlout"
	"protodoc/pkg/source"
)

// renderConfig holds configuration for the render command.
type renderConfig struct {
	out        string
	configPath string
	dbPath     string
	protocolID string
}

// newRenderCmd creates the "protodoc render" subcommand.
func newRenderCmd() *cobra.Command {
	var cfg renderConfig

	cmd := &cobra.Command{
		Use:   "render [protocol.yaml]",
		Short: "Render a protocol document to HTML",
		Long:  "Lays out a protocol document and emits HTML.\nReads a YAML file, or a stored protocol with --db and --protocol.",
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

			html := htmlout.Render(engine.Render(p, renderCfg), renderCfg)

			if cfg.out == "" || cfg.out == "-" {
				fmt.Fprint(cmd.OutOrStdout(), html)
				return nil
			}
			if err := os.WriteFile(cfg.out, []byte(html), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", cfg.out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&cfg.out, "out", "o", "-", "output file, or - for stdout")
	cmd.Flags().StringVar(&cfg.configPath, "config", "", "TOML config file (default protodoc.toml if present)")
	cmd.Flags().StringVar(&cfg.dbPath, "db", "", "SQLite protocol store to read from")
	cmd.Flags().StringVar(&cfg.protocolID, "protocol", "", "protocol id to load from the store")

	return cmd
}

// loadProtocol resolves the input protocol from either a YAML file
// argument or the --db/--protocol store flags.
func loadProtocol(cmd *cobra.Command, args []string, dbPath, protocolID string) (document.Protocol, error) {
	if dbPath != "" {
		if protocolID == "" {
			return document.Protocol{}, fmt.Errorf("--db requires --protocol")
		}
		store, err := source.Open(dbPath)
		if err != nil {
			return document.Protocol{}, err
		}
		defer store.Close()
		return store.Load(cmd.Context(), protocolID)
	}

	if len(args) != 1 {
		return document.Protocol{}, fmt.Errorf("a protocol YAML file or --db/--protocol is required")
	}
	return source.LoadFile(args[0])
}
