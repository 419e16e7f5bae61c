package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oukeidos/glosst/internal/apperrors"
	"github.com/oukeidos/glosst/internal/logger"
	"github.com/oukeidos/glosst/internal/pipeline"
	"github.com/oukeidos/glosst/internal/progress"
	"github.com/oukeidos/glosst/internal/prompt"
	"github.com/oukeidos/glosst/internal/worker"
	"github.com/spf13/cobra"
)

type translateOptions struct {
	runOptions
	yes bool
}

func newTranslateCmd(global *globalOptions) *cobra.Command {
	opts := translateOptions{runOptions: runOptions{global: global}}
	cmd := &cobra.Command{
		Use:   "translate <file>...",
		Short: "Translate xlsx, csv, tsv and txt files",
		Long: "Translate each file into a sibling named <name>_translated.<ext>.\n" +
			"Files are processed one at a time in the order given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Usage()
				return fmt.Errorf("at least one input file is required")
			}
			return runTranslate(cmd, args, &opts)
		},
		SilenceUsage: true,
	}

	cmd.SetUsageTemplate(subcommandUsageTemplate)
	addTranslateFlags(cmd, &opts)
	return cmd
}

func addTranslateFlags(cmd *cobra.Command, opts *translateOptions) {
	addRunFlags(cmd, &opts.runOptions)
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Overwrite existing translated files without asking")
}

func runTranslate(cmd *cobra.Command, args []string, opts *translateOptions) error {
	if err := setupLogging(opts.global); err != nil {
		return err
	}
	cfg, err := buildConfig(cmd, &opts.runOptions)
	if err != nil {
		return err
	}
	confirmer := newConfirmer()
	cfg.Overwrite = opts.yes
	cfg.OnConfirmOverwrite = func(path string) (bool, error) {
		return confirmer.ConfirmOverwrite(path, opts.yes)
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

	results := runFiles(ctx, session, args)

	out := cmd.OutOrStdout()
	failed := 0
	for _, r := range results {
		switch r.result.Status {
		case pipeline.TranslationStatusSuccess:
			fmt.Fprintf(out, "OK    %s -> %s (%d units, %d batches)\n", r.path, r.result.OutputPath, r.result.Units, r.result.Batches)
		case pipeline.TranslationStatusSkipped:
			fmt.Fprintf(out, "SKIP  %s (%s exists: %s)\n", r.path, r.result.OutputPath, r.result.Reason)
		default:
			failed++
			fmt.Fprintf(out, "FAIL  %s: %s\n", r.path, apperrors.PublicMessage(r.err))
		}
	}
	printUsageStats(out, session.Usage(), time.Since(startTime), session.Config())

	if ctx.Err() != nil {
		logger.Warn("Translation canceled")
		return nil
	}
	return translationStatusError(failed, len(args))
}

var newConfirmer = prompt.DefaultConfirmer

type fileResult struct {
	path   string
	result pipeline.TranslationResult
	err    error
}

// runFiles drives a worker job and renders its events until the job ends.
func runFiles(ctx context.Context, session *pipeline.Session, paths []string) []fileResult {
	runner := worker.NewRunner(session, 16)
	if _, err := runner.Start(ctx, paths); err != nil {
		return []fileResult{{path: paths[0], err: err}}
	}

	bar := progress.New(os.Stderr)
	var results []fileResult
	for ev := range runner.Events() {
		switch ev.Kind {
		case worker.FileStarted:
			bar.Start(filepath.Base(ev.File))
		case worker.Total:
			bar.SetTotal(ev.Value)
		case worker.Progress:
			bar.Set(ev.Value)
		case worker.FileFinished:
			if ev.Err == nil {
				bar.Finish()
			} else {
				bar.Abort()
			}
			results = append(results, fileResult{path: ev.File, result: ev.Result, err: ev.Err})
		case worker.ControlsEnabled:
			return results
		}
	}
	return results
}

func translationStatusError(failed, total int) error {
	if failed == 0 {
		return nil
	}
	return fmt.Errorf("translation failed for %d of %d files", failed, total)
}
