package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/oukeidos/glosst/internal/auth"
	"github.com/oukeidos/glosst/internal/cleanup"
	"github.com/oukeidos/glosst/internal/config"
	"github.com/oukeidos/glosst/internal/files"
	"github.com/oukeidos/glosst/internal/logger"
	"github.com/oukeidos/glosst/internal/metadata"
	"github.com/oukeidos/glosst/internal/pipeline"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	getEnvKey    = auth.GetEnvKey
	getStatus    = auth.GetStatus
	promptForKey = auth.PromptForAPIKey
)

// keyResolver finds the Gemini API key. Each lookup is a field so tests can
// replace the keychain, the environment and the terminal.
type keyResolver struct {
	keychain    func() string
	env         func() (string, bool)
	prompt      func(label string) (string, error)
	interactive func() bool
}

var newKeyResolver = func() keyResolver {
	return keyResolver{
		keychain: func() string {
			key, _ := auth.GetKey(false)
			return key
		},
		env:         getEnvKey,
		prompt:      promptForKey,
		interactive: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
	}
}

// runOptions are the flags shared by every command that translates.
type runOptions struct {
	global *globalOptions

	backend      string
	source       string
	target       string
	batchSize    int
	glossary     string
	project      string
	credentials  string
	localCommand []string
	model        string
	maxFailures  int
	allowEnv     bool
	envOnly      bool
}

// addRunFlags registers flags whose names match config.FlagKeys so they
// override the config file when set.
func addRunFlags(cmd *cobra.Command, opts *runOptions) {
	cmd.Flags().StringVarP(&opts.backend, "backend", "b", "cloud", "Translation backend (cloud, local, gemini, identity)")
	cmd.Flags().StringVar(&opts.source, "source", "zh-CN", "Source language code")
	cmd.Flags().StringVar(&opts.target, "target", "ko", "Target language code")
	cmd.Flags().IntVar(&opts.batchSize, "batch-size", 200, "Number of text units per backend request (1-1024)")
	cmd.Flags().StringVarP(&opts.glossary, "glossary", "g", "", "Glossary name or ID (cloud backend only)")
	cmd.Flags().StringVar(&opts.project, "project", "longtukoreatranslator", "Google Cloud project ID")
	cmd.Flags().StringVar(&opts.credentials, "credentials", "", "Service account key file (default: Application Default Credentials)")
	cmd.Flags().StringSliceVar(&opts.localCommand, "local-command", nil, "Command that serves the local model, comma separated")
	cmd.Flags().StringVar(&opts.model, "model", metadata.DefaultGeminiModel, "Gemini model name")
	cmd.Flags().IntVar(&opts.maxFailures, "max-failures", 3, "Consecutive backend failures before remaining work fails fast")
	cmd.Flags().BoolVar(&opts.allowEnv, "allow-env", false, "Allow reading the Gemini API key from environment variables")
	cmd.Flags().BoolVar(&opts.envOnly, "env-only", false, "Use only environment variables for the Gemini API key")
}

func setupLogging(g *globalOptions) error {
	level := logger.LevelInfo
	if g.debug {
		level = logger.LevelDebug
	}
	var logFileW io.Writer
	if g.logFilePath != "" {
		if err := files.RejectLinks(g.logFilePath); err != nil {
			return err
		}
		f, err := os.OpenFile(g.logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		cleanup.Register(f.Close)
		logFileW = f
	}
	logger.Init(level, logFileW)
	return nil
}

// buildConfig layers the config file, environment and flags into a
// pipeline configuration.
func buildConfig(cmd *cobra.Command, opts *runOptions) (pipeline.Config, error) {
	s, err := config.Load(opts.global.configPath, cmd.Flags())
	if err != nil {
		return pipeline.Config{}, err
	}
	if s.File != "" {
		logger.Info("Using config file", "path", s.File)
	}
	catalog, err := s.Catalog()
	if err != nil {
		return pipeline.Config{}, err
	}
	credentials, credSource := auth.CloudCredentials(s.Cloud.CredentialsFile)
	cfg := pipeline.Config{
		Backend:    pipeline.Backend(s.Backend),
		SourceLang: s.Source,
		TargetLang: s.Target,
		Glossary:   s.Glossary,
		BatchSize:  s.BatchSize,
		Cloud: pipeline.CloudConfig{
			ProjectID:        s.Cloud.ProjectID,
			Location:         s.Cloud.Location,
			GlossaryLocation: s.Cloud.GlossaryLocation,
			CredentialsFile:  credentials,
			Endpoint:         s.Cloud.Endpoint,
			Timeout:          s.Cloud.Timeout,
		},
		Local:           pipeline.LocalConfig{Command: s.Local.Command},
		Gemini:          pipeline.GeminiConfig{Model: s.Gemini.Model, Timeout: s.Gemini.Timeout},
		BreakerFailures: s.Breaker.Failures,
		BreakerCooldown: s.Breaker.Cooldown,
		Catalog:         &catalog,
	}
	if cfg.Backend == pipeline.BackendCloud && credSource != "" {
		logger.Debug("Using Cloud credentials file", "source", credSource)
	}
	if strings.EqualFold(s.Backend, string(pipeline.BackendGemini)) {
		key, source, err := newKeyResolver().resolve(opts.allowEnv, opts.envOnly)
		if err != nil {
			return pipeline.Config{}, err
		}
		logger.Info("Using API Key", "service", "gemini", "source", source)
		cfg.Gemini.APIKey = key
	}
	return cfg, nil
}

const sourcePrompt = "Terminal Prompt"

// resolve checks, in order: the environment when envOnly is set, then the
// keychain, the environment when allowEnv is set, and an interactive prompt.
func (r keyResolver) resolve(allowEnv, envOnly bool) (key, source string, err error) {
	if envOnly {
		if key, ok := r.env(); ok {
			return key, auth.SourceEnv, nil
		}
		return "", "", fmt.Errorf("--env-only set but %s is not set", auth.EnvVarName)
	}
	if key := r.keychain(); key != "" {
		return key, auth.SourceKeychain, nil
	}
	if allowEnv {
		if key, ok := r.env(); ok {
			return key, auth.SourceEnv, nil
		}
	}
	if !r.interactive() {
		return "", "", fmt.Errorf("no API key available (non-interactive shell); run \"glosst env setup\" or use --allow-env")
	}
	typed, err := r.prompt("Gemini API Key (press Enter to skip): ")
	if err != nil {
		return "", "", fmt.Errorf("read API key: %w", err)
	}
	if typed = strings.TrimSpace(typed); typed != "" {
		return typed, sourcePrompt, nil
	}
	if allowEnv {
		return "", "", fmt.Errorf("API key is required; not found in keychain or environment")
	}
	return "", "", fmt.Errorf("API key is required; not found in keychain (use --allow-env to read %s)", auth.EnvVarName)
}

func printUsageStats(w io.Writer, usage pipeline.Usage, duration time.Duration, cfg pipeline.Config) {
	fmt.Fprintln(w, "\n--- Execution Stats ---")
	fmt.Fprintf(w, "Time: %s\n", duration.Round(time.Millisecond))
	fmt.Fprintf(w, "Backend: %s\n", cfg.Backend)
	fmt.Fprintf(w, "Requests: %d, Units: %d, Characters: %d\n", usage.Calls, usage.Units, usage.Characters)
	switch cfg.Backend {
	case pipeline.BackendCloud:
		fmt.Fprintf(w, "Estimated Cost: $%.4f\n", metadata.CloudCost(usage.Characters))
	case pipeline.BackendGemini:
		t := usage.Tokens
		if t.TotalTokenCount == 0 {
			return
		}
		fmt.Fprintf(w, "Model: %s\n", cfg.Gemini.Model)
		fmt.Fprintf(w, "Tokens: In=%d, Out=%d, Total=%d\n", t.PromptTokenCount, t.CandidatesTokenCount, t.TotalTokenCount)
		// Reasoning tokens are billed as output tokens.
		reasoning := t.TotalTokenCount - (t.PromptTokenCount + t.CandidatesTokenCount)
		if reasoning < 0 {
			reasoning = 0
		}
		cost := metadata.GeminiCost(cfg.Gemini.Model, t.PromptTokenCount, t.CandidatesTokenCount+reasoning)
		fmt.Fprintf(w, "Estimated Cost: $%.5f (Reasoning Tokens: %d)\n", cost, reasoning)
	}
}

func signalContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Warn("Cancellation requested")
			cancel()
		case <-ctx.Done():
		}
	}()
	stop := func() {
		signal.Stop(sigCh)
		cancel()
	}
	return ctx, stop
}
