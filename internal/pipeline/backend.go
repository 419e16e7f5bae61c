package pipeline

import (
	"context"
	"fmt"

	"github.com/oukeidos/glosst/internal/cloud"
	"github.com/oukeidos/glosst/internal/gemini"
	"github.com/oukeidos/glosst/internal/language"
	"github.com/oukeidos/glosst/internal/logger"
	"github.com/oukeidos/glosst/internal/provider"
	"github.com/oukeidos/glosst/internal/seq2seq"
)

// backend is a constructed provider plus whatever must be released with it.
type backend struct {
	provider provider.Provider
	close    func() error
	gemini   *gemini.Provider
}

func openBackend(ctx context.Context, cfg Config, src, tgt language.Language) (backend, error) {
	if cfg.Provider != nil {
		return backend{provider: cfg.Provider}, nil
	}
	switch cfg.Backend {
	case BackendIdentity:
		return backend{provider: provider.Identity{}}, nil

	case BackendCloud:
		cc := cloud.Config{
			ProjectID:        cfg.Cloud.ProjectID,
			Location:         cfg.Cloud.Location,
			GlossaryLocation: cfg.Cloud.GlossaryLocation,
			SourceLang:       src.CloudCode,
			TargetLang:       tgt.CloudCode,
			CredentialsFile:  cfg.Cloud.CredentialsFile,
			Endpoint:         cfg.Cloud.Endpoint,
			Timeout:          cfg.Cloud.Timeout,
		}
		if cfg.Glossary != "" {
			entry, _ := cfg.Catalog.Resolve(cfg.Glossary)
			cc.GlossaryID = entry.ID
		}
		client, err := cloud.NewClient(ctx, cc)
		if err != nil {
			return backend{}, err
		}
		logger.Info("Using Cloud Translation", "project", cc.ProjectID, "glossary", client.GlossaryResource())
		return backend{provider: client}, nil

	case BackendLocal:
		model, err := seq2seq.StartProcess(cfg.Local.Command, cfg.Local.Env)
		if err != nil {
			return backend{}, err
		}
		p, err := seq2seq.NewProvider(model, src, tgt)
		if err != nil {
			_ = model.Close()
			return backend{}, err
		}
		return backend{provider: p, close: model.Close}, nil

	case BackendGemini:
		client, err := gemini.NewClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Timeout)
		if err != nil {
			return backend{}, err
		}
		p, err := gemini.NewProvider(client, src, tgt)
		if err != nil {
			_ = client.Close()
			return backend{}, err
		}
		logger.Info("Using Gemini", "model", cfg.Gemini.Model)
		return backend{provider: p, close: client.Close, gemini: p}, nil
	}
	return backend{}, fmt.Errorf("unknown backend %q", cfg.Backend)
}
