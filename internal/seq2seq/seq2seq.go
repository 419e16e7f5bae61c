// Package seq2seq runs a locally hosted sequence-to-sequence model. The model
// translates one string per call; batches are unrolled into sequential calls.
package seq2seq

import (
	"context"
	"fmt"

	"github.com/oukeidos/glosst/internal/apperrors"
	"github.com/oukeidos/glosst/internal/language"
)

// Model generates a translation for a single input.
type Model interface {
	Generate(ctx context.Context, text, srcLang, tgtLang string) (string, error)
}

// Provider adapts a Model to the batch interface for a fixed language pair.
// Glossaries are not supported.
type Provider struct {
	model  Model
	source string
	target string
}

// NewProvider binds model to the language pair, using the languages' model
// codes (e.g. zho_Hans, kor_Hang).
func NewProvider(model Model, source, target language.Language) (*Provider, error) {
	if model == nil {
		return nil, fmt.Errorf("model is nil")
	}
	if source.ModelCode == "" || target.ModelCode == "" {
		return nil, fmt.Errorf("no local model code for %s -> %s", source.Code, target.Code)
	}
	return &Provider{model: model, source: source.ModelCode, target: target.ModelCode}, nil
}

func (p *Provider) Translate(ctx context.Context, texts []string) ([]string, error) {
	out := make([]string, 0, len(texts))
	for i, text := range texts {
		translated, err := p.model.Generate(ctx, text, p.source, p.target)
		if err != nil {
			if _, ok := apperrors.KindOf(err); !ok {
				err = apperrors.New(apperrors.KindProvider, "Local model failed to translate.", fmt.Errorf("input %d: %w", i, err))
			}
			return nil, err
		}
		out = append(out, translated)
	}
	return out, nil
}
