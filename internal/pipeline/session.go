// Package pipeline opens a translation backend once and runs files and free
// text through it.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oukeidos/glosst/internal/batcher"
	"github.com/oukeidos/glosst/internal/document"
	"github.com/oukeidos/glosst/internal/files"
	"github.com/oukeidos/glosst/internal/filetrans"
	"github.com/oukeidos/glosst/internal/gemini"
	"github.com/oukeidos/glosst/internal/language"
	"github.com/oukeidos/glosst/internal/logger"
	"github.com/oukeidos/glosst/internal/prompt"
	"github.com/oukeidos/glosst/internal/provider"
)

// Session owns one backend for a run over any number of files.
type Session struct {
	cfg     Config
	src     language.Language
	tgt     language.Language
	backend backend
	meter   *provider.Meter
	breaker *provider.Breaker
	chain   provider.Provider
}

// Usage totals what a session sent to its backend.
type Usage struct {
	provider.Usage
	// Tokens is only populated by the gemini backend.
	Tokens gemini.UsageMetadata
}

// Open normalizes and validates cfg and starts its backend.
func Open(ctx context.Context, cfg Config) (*Session, error) {
	cfg, notes := cfg.Normalize()
	for _, note := range notes {
		logger.Warn("Config normalized", "detail", note)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	src, _ := language.GetLanguage(cfg.SourceLang)
	tgt, _ := language.GetLanguage(cfg.TargetLang)

	b, err := openBackend(ctx, cfg, src, tgt)
	if err != nil {
		return nil, err
	}
	s := &Session{cfg: cfg, src: src, tgt: tgt, backend: b}
	s.meter = provider.NewMeter(b.provider)
	s.breaker = provider.NewBreaker(string(cfg.Backend), s.meter, cfg.BreakerFailures, cfg.BreakerCooldown)
	s.chain = s.breaker
	logger.Info("Translation session ready", "backend", string(cfg.Backend), "source", src.Code, "target", tgt.Code, "batch_size", cfg.BatchSize)
	return s, nil
}

// Config returns the normalized configuration.
func (s *Session) Config() Config { return s.cfg }

// BreakerState reports the backend breaker state.
func (s *Session) BreakerState() string { return s.breaker.State() }

// TranslateFile translates path into its _translated sibling. A skipped
// file returns a nil error with status Skipped.
func (s *Session) TranslateFile(ctx context.Context, path string, progress batcher.Progress) (TranslationResult, error) {
	result := TranslationResult{Status: TranslationStatusFailure, SourcePath: path}

	ft, err := filetrans.ForExtension(filepath.Ext(path))
	if err != nil {
		return result, err
	}
	dest := document.TranslatedPath(path)
	if err := files.RejectLinks(dest); err != nil {
		return result, err
	}
	if skip, reason, err := s.checkOverwrite(dest); err != nil {
		return result, err
	} else if skip {
		logger.Info("Output file exists, skipping", "dest", dest, "reason", reason)
		result.Status = TranslationStatusSkipped
		result.OutputPath = dest
		result.Reason = reason
		return result, nil
	}

	out, err := ft.Translate(ctx, path, s.chain, filetrans.Options{
		BatchSize: s.cfg.BatchSize,
		Progress:  progress,
	})
	if err != nil {
		logger.Error("File translation failed", "path", path, "error", err)
		return result, err
	}
	result.Status = TranslationStatusSuccess
	result.OutputPath = out.OutputPath
	result.Units = out.Units
	result.Batches = out.Batches
	return result, nil
}

func (s *Session) checkOverwrite(dest string) (bool, string, error) {
	if _, err := os.Stat(dest); err != nil {
		if os.IsNotExist(err) {
			return false, "", nil
		}
		return false, "", fmt.Errorf("failed to stat output path: %w", err)
	}
	if s.cfg.Overwrite || s.cfg.OnConfirmOverwrite == nil {
		logger.Info("Overwriting output file", "dest", dest)
		return false, "", nil
	}
	ok, err := s.cfg.OnConfirmOverwrite(dest)
	switch {
	case errors.Is(err, prompt.ErrNonInteractive):
		return true, "non-interactive; use --yes to overwrite", nil
	case err != nil:
		return false, "", fmt.Errorf("overwrite confirmation failed: %w", err)
	case !ok:
		return true, "declined", nil
	}
	return false, "", nil
}

// TranslateText splits input on "\n", drops empty lines, translates the
// rest and joins the results with "\n".
func (s *Session) TranslateText(ctx context.Context, input string, progress batcher.Progress) (string, error) {
	var lines []string
	for _, line := range strings.Split(input, "\n") {
		if len(line) > 0 {
			lines = append(lines, line)
		}
	}
	out, err := batcher.Run(ctx, lines, s.cfg.BatchSize, s.chain, progress)
	if err != nil {
		return "", err
	}
	return strings.Join(out, "\n"), nil
}

// Usage returns the totals so far.
func (s *Session) Usage() Usage {
	u := Usage{Usage: s.meter.Usage()}
	if s.backend.gemini != nil {
		u.Tokens = s.backend.gemini.Usage()
	}
	return u
}

// Close releases the backend.
func (s *Session) Close() error {
	if s.backend.close == nil {
		return nil
	}
	return s.backend.close()
}
