package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/oukeidos/glosst/internal/batcher"
	"github.com/oukeidos/glosst/internal/logger"
	"github.com/oukeidos/glosst/internal/pipeline"
	"github.com/spf13/cobra"
)

type textOptions struct {
	runOptions
	stats bool
}

func newTextCmd(global *globalOptions) *cobra.Command {
	opts := textOptions{runOptions: runOptions{global: global}}
	cmd := &cobra.Command{
		Use:   "text [text...]",
		Short: "Translate text from arguments or stdin, one line per unit",
		Long: "Translate free text. Arguments are joined with newlines; with no\n" +
			"arguments the text is read from stdin. Empty lines are dropped.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runText(cmd, args, &opts)
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	addRunFlags(cmd, &opts.runOptions)
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "Print execution stats to stderr")
	return cmd
}

func runText(cmd *cobra.Command, args []string, opts *textOptions) error {
	if err := setupLogging(opts.global); err != nil {
		return err
	}
	input := strings.Join(args, "\n")
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		input = strings.ReplaceAll(string(data), "\r\n", "\n")
	}
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("no text to translate")
	}

	cfg, err := buildConfig(cmd, &opts.runOptions)
	if err != nil {
		return err
	}
	ctx, stop := signalContext()
	defer stop()

	startTime := time.Now()
	session, err := pipeline.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Warn("Failed to close translation backend", "error", err)
		}
	}()

	out, err := session.TranslateText(ctx, input, batcher.Progress{})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	if opts.stats {
		printUsageStats(cmd.ErrOrStderr(), session.Usage(), time.Since(startTime), session.Config())
	}
	return nil
}
