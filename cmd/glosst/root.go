package main

import (
	"fmt"
	"os"

	"github.com/oukeidos/glosst/internal/cleanup"
	"github.com/oukeidos/glosst/internal/version"
	"github.com/spf13/cobra"
)

func execute() {
	cmd := newRootCmd()
	err := cmd.Execute()
	if cleanupErr := cleanup.RunAll(); cleanupErr != nil {
		fmt.Fprintln(os.Stderr, cleanupErr)
		if err == nil {
			err = cleanupErr
		}
	}
	if err != nil {
		os.Exit(1)
	}
}

type globalOptions struct {
	configPath  string
	logFilePath string
	debug       bool
}

func newRootCmd() *cobra.Command {
	global := &globalOptions{}
	translateOpts := translateOptions{runOptions: runOptions{global: global}}

	cmd := &cobra.Command{
		Use:   "glosst",
		Short: "Glossary-aware spreadsheet and text translator",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case len(args) > 0:
				return runTranslate(cmd, args, &translateOpts)
			case cmd.Flags().NFlag() > 0:
				_ = cmd.Usage()
				return fmt.Errorf("at least one input file is required")
			default:
				return cmd.Help()
			}
		},
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
	}

	cmd.Version = version.Info()
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.SetUsageTemplate(rootUsageTemplate)

	cmd.PersistentFlags().StringVar(&global.configPath, "config", "", "Config file (default $HOME/.glosst.yaml or ./.glosst.yaml)")
	cmd.PersistentFlags().StringVar(&global.logFilePath, "log-file", "", "Path to save machine-readable JSONL logs")
	cmd.PersistentFlags().BoolVar(&global.debug, "debug", false, "Enable debug logging")
	addTranslateFlags(cmd, &translateOpts)

	cmd.AddCommand(
		newAboutCmd(),
		newTranslateCmd(global),
		newTextCmd(global),
		newGlossariesCmd(global),
		newListCmd(),
		newEnvCmd(),
	)

	cmd.InitDefaultCompletionCmd()
	if completion, _, err := cmd.Find([]string{"completion"}); err == nil && completion != cmd {
		completion.Short = "Generate shell completion scripts"
		completion.SetUsageTemplate(subcommandUsageTemplate)
	}

	return cmd
}
