package main

import (
	"fmt"
	"strings"

	"github.com/oukeidos/glosst/internal/filetrans"
	"github.com/oukeidos/glosst/internal/pipeline"
	"github.com/oukeidos/glosst/internal/version"
	"github.com/spf13/cobra"
)

func newAboutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "about",
		Short: "Show version, supported formats and backends",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, version.Info())
			fmt.Fprintln(out, "Glossary-aware spreadsheet and text translator")
			fmt.Fprintf(out, "Formats:  %s\n", strings.Join(filetrans.SupportedExtensions(), ", "))
			fmt.Fprintf(out, "Backends: %s\n", strings.Join(pipeline.BackendNames(), ", "))
			fmt.Fprintln(out, "https://github.com/oukeidos/glosst")
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}
