package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/oukeidos/glosst/internal/config"
	"github.com/spf13/cobra"
)

func newGlossariesCmd(global *globalOptions) *cobra.Command {
	var showSource bool
	cmd := &cobra.Command{
		Use:   "glossaries",
		Short: "List glossaries available to the cloud backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := config.Load(global.configPath, nil)
			if err != nil {
				return err
			}
			catalog, err := s.Catalog()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, e := range catalog.Entries() {
				if showSource {
					fmt.Fprintf(w, "  %s\t%s\t%s\n", e.Name, e.ID, e.SourceURI)
				} else {
					fmt.Fprintf(w, "  %s\t%s\n", e.Name, e.ID)
				}
			}
			return w.Flush()
		},
		SilenceUsage: true,
	}
	cmd.Flags().BoolVar(&showSource, "source-uri", false, "Also show the CSV each glossary was built from")
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}
