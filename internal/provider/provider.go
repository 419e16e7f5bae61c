// Package provider defines the translation capability shared by every backend.
package provider

import (
	"context"
	"sync"
	"unicode/utf8"
)

// Provider translates an ordered batch of strings. Implementations must return
// exactly one result per input, in input order.
type Provider interface {
	Translate(ctx context.Context, texts []string) ([]string, error)
}

// Func adapts a plain function to Provider.
type Func func(ctx context.Context, texts []string) ([]string, error)

func (f Func) Translate(ctx context.Context, texts []string) ([]string, error) {
	return f(ctx, texts)
}

// Identity returns every batch unchanged. It drives the structural round trip
// without a backend.
type Identity struct{}

func (Identity) Translate(_ context.Context, texts []string) ([]string, error) {
	out := make([]string, len(texts))
	copy(out, texts)
	return out, nil
}

// Usage is the running total observed by a Meter.
type Usage struct {
	Calls      int
	Units      int
	Characters int
}

// Meter counts calls and characters sent to the wrapped provider.
type Meter struct {
	next Provider

	mu    sync.Mutex
	usage Usage
}

func NewMeter(next Provider) *Meter {
	return &Meter{next: next}
}

func (m *Meter) Translate(ctx context.Context, texts []string) ([]string, error) {
	chars := 0
	for _, t := range texts {
		chars += utf8.RuneCountInString(t)
	}
	m.mu.Lock()
	m.usage.Calls++
	m.usage.Units += len(texts)
	m.usage.Characters += chars
	m.mu.Unlock()
	return m.next.Translate(ctx, texts)
}

// Usage returns a snapshot of the counters.
func (m *Meter) Usage() Usage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.usage
}
