package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"protodoc/internal/appversion"
)

// newRootCmd creates the root protodoc command with all subcommands
// attached.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "protodoc",
		Short:         "Protocol document layout engine",
		Long:          "protodoc lays out executed protocol documents into fixed-width\nrows of cells and renders them to HTML or the terminal.",
		Version:       fmt.Sprintf("protodoc %s", appversion.String()),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.AddCommand(
		newRenderCmd(),
		newPreviewCmd(),
		newSeedCmd(),
	)

	return cmd
}
