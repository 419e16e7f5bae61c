package gemini

import (
	"context"
	"fmt"
	"sync"

	"github.com/oukeidos/glosst/internal/language"
)

// Provider translates batches through a Generator for a fixed language pair.
// The result count is checked by the caller.
type Provider struct {
	gen    Generator
	source string
	target string

	mu    sync.Mutex
	usage UsageMetadata
}

func NewProvider(gen Generator, source, target language.Language) (*Provider, error) {
	if gen == nil {
		return nil, fmt.Errorf("gemini generator is nil")
	}
	return &Provider{gen: gen, source: source.Name, target: target.Name}, nil
}

func (p *Provider) Translate(ctx context.Context, texts []string) ([]string, error) {
	if len(texts) == 0 {
		return []string{}, nil
	}
	resp, err := p.gen.Generate(ctx, RequestData{
		SourceLanguage: p.source,
		TargetLanguage: p.target,
		Texts:          texts,
	})
	if err != nil {
		return nil, err
	}
	p.mu.Lock()
	p.usage.add(resp.Usage)
	p.mu.Unlock()
	return resp.Translations, nil
}

// Usage returns the accumulated token counts.
func (p *Provider) Usage() UsageMetadata {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.usage
}
