package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/oukeidos/glosst/internal/batcher"
	"github.com/oukeidos/glosst/internal/glossary"
	"github.com/oukeidos/glosst/internal/language"
	"github.com/oukeidos/glosst/internal/provider"
)

// Backend names a translation provider implementation.
type Backend string

const (
	BackendCloud    Backend = "cloud"
	BackendLocal    Backend = "local"
	BackendGemini   Backend = "gemini"
	BackendIdentity Backend = "identity"
)

// Backends lists the accepted backend names.
var Backends = []Backend{BackendCloud, BackendLocal, BackendGemini, BackendIdentity}

type CloudConfig struct {
	ProjectID        string
	Location         string
	GlossaryLocation string
	CredentialsFile  string
	Endpoint         string
	Timeout          time.Duration
}

type LocalConfig struct {
	// Command starts the model server; argv form.
	Command []string
	Env     []string
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Config holds everything needed to open a translation session.
type Config struct {
	Backend    Backend
	SourceLang string
	TargetLang string
	// Glossary is a catalog display name or glossary ID. Cloud only.
	Glossary  string
	BatchSize int

	Cloud  CloudConfig
	Local  LocalConfig
	Gemini GeminiConfig

	// BreakerFailures is the number of consecutive provider failures that
	// disables the backend for BreakerCooldown.
	BreakerFailures int
	BreakerCooldown time.Duration

	// Catalog resolves Glossary. Nil uses the built-in catalog.
	Catalog *glossary.Catalog

	// Overwrite replaces existing translated outputs without asking.
	Overwrite bool
	// OnConfirmOverwrite is asked when an output exists and Overwrite is
	// false. Nil means overwrite.
	OnConfirmOverwrite func(path string) (bool, error)

	// Provider replaces the configured backend when set.
	Provider provider.Provider
}

const (
	MinBatchSize           = 1
	MaxBatchSize           = 1024
	DefaultBreakerCooldown = 30 * time.Second
)

func ClampBatchSize(value int) (int, bool) {
	if value < MinBatchSize {
		return batcher.DefaultSize, true
	}
	if value > MaxBatchSize {
		return MaxBatchSize, true
	}
	return value, false
}

// Normalize applies safe bounds and defaults and returns any adjustments.
func (c Config) Normalize() (Config, []string) {
	var notes []string
	c.Backend = Backend(strings.ToLower(strings.TrimSpace(string(c.Backend))))
	if c.Backend == "" {
		c.Backend = BackendCloud
	}
	c.Glossary = strings.TrimSpace(c.Glossary)
	if clamped, changed := ClampBatchSize(c.BatchSize); changed {
		if c.BatchSize != 0 {
			notes = append(notes, fmt.Sprintf("batch-size adjusted from %d to %d (range %d-%d)", c.BatchSize, clamped, MinBatchSize, MaxBatchSize))
		}
		c.BatchSize = clamped
	}
	if c.BreakerFailures <= 0 {
		c.BreakerFailures = provider.DefaultBreakerFailures
	}
	if c.BreakerCooldown <= 0 {
		c.BreakerCooldown = DefaultBreakerCooldown
	}
	if c.Catalog == nil {
		def := glossary.Default()
		c.Catalog = &def
	}
	return c, notes
}

// Validate checks a normalized configuration.
func (c Config) Validate() error {
	if !c.Backend.valid() {
		return fmt.Errorf("unknown backend %q (supported: %s)", c.Backend, strings.Join(BackendNames(), ", "))
	}
	src, ok := language.GetLanguage(c.SourceLang)
	if !ok {
		return fmt.Errorf("unsupported source language: %s", c.SourceLang)
	}
	tgt, ok := language.GetLanguage(c.TargetLang)
	if !ok {
		return fmt.Errorf("unsupported target language: %s", c.TargetLang)
	}
	if src.Code == tgt.Code {
		return fmt.Errorf("source and target languages must be different (%s)", src.Code)
	}
	if c.BatchSize < MinBatchSize {
		return fmt.Errorf("batch size must be greater than 0, got %d", c.BatchSize)
	}
	if c.Glossary != "" {
		if c.Backend != BackendCloud {
			return fmt.Errorf("glossary is not supported by the %s backend", c.Backend)
		}
		if c.Catalog != nil {
			if _, ok := c.Catalog.Resolve(c.Glossary); !ok {
				return fmt.Errorf("unknown glossary %q", c.Glossary)
			}
		}
	}
	if c.Provider != nil {
		return nil
	}
	switch c.Backend {
	case BackendCloud:
		if strings.TrimSpace(c.Cloud.ProjectID) == "" {
			return fmt.Errorf("cloud project id is required")
		}
	case BackendLocal:
		if len(c.Local.Command) == 0 || strings.TrimSpace(c.Local.Command[0]) == "" {
			return fmt.Errorf("local backend requires a model command")
		}
	case BackendGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("API key is required")
		}
	}
	return nil
}

func (b Backend) valid() bool {
	for _, known := range Backends {
		if b == known {
			return true
		}
	}
	return false
}

// BackendNames returns Backends as plain strings.
func BackendNames() []string {
	names := make([]string, len(Backends))
	for i, b := range Backends {
		names[i] = string(b)
	}
	return names
}
