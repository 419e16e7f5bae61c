package main

import (
	"fmt"

	"github.com/oukeidos/glosst/internal/filetrans"
	"github.com/oukeidos/glosst/internal/language"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List supported languages and file types",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Supported Languages:")
			for _, l := range language.GetSupportedLanguages() {
				fmt.Fprintf(out, "  %-24s [%s]\n", l.Name, l.Code)
			}
			fmt.Fprintln(out, "Supported File Types:")
			for _, ext := range filetrans.SupportedExtensions() {
				fmt.Fprintf(out, "  .%s\n", ext)
			}
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}
