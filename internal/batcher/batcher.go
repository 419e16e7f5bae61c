// Package batcher drives a provider over contiguous fixed-size windows.
package batcher

import (
	"context"
	"fmt"

	"github.com/oukeidos/glosst/internal/apperrors"
	"github.com/oukeidos/glosst/internal/logger"
	"github.com/oukeidos/glosst/internal/provider"
)

// DefaultSize is the batch size used when none is configured.
const DefaultSize = 200

// Progress receives run notifications. Either hook may be nil.
type Progress struct {
	// OnTotal is called once with the number of strings before any dispatch.
	OnTotal func(total int)
	// OnProgress is called before each dispatch with the window's start index.
	OnProgress func(dispatched int)
}

// Window is a half-open index range [Start, End).
type Window struct {
	Start int
	End   int
}

func (w Window) Len() int { return w.End - w.Start }

// Windows partitions [0, n) into contiguous windows of at most size elements.
func Windows(n, size int) []Window {
	if n <= 0 {
		return nil
	}
	if size <= 0 {
		size = DefaultSize
	}
	windows := make([]Window, 0, (n+size-1)/size)
	for i := 0; i < n; i += size {
		end := i + size
		if end > n {
			end = n
		}
		windows = append(windows, Window{Start: i, End: end})
	}
	return windows
}

// Run translates texts window by window, strictly in order. The first failing
// window aborts the run and nothing is returned for the windows already done.
func Run(ctx context.Context, texts []string, size int, p provider.Provider, progress Progress) ([]string, error) {
	if p == nil {
		return nil, fmt.Errorf("provider is nil")
	}
	if progress.OnTotal != nil {
		progress.OnTotal(len(texts))
	}

	out := make([]string, 0, len(texts))
	for _, w := range Windows(len(texts), size) {
		if progress.OnProgress != nil {
			progress.OnProgress(w.Start)
		}
		logger.Debug("Dispatching batch", "start", w.Start, "size", w.Len())

		batch := texts[w.Start:w.End]
		result, err := p.Translate(ctx, batch)
		if err != nil {
			if _, ok := apperrors.KindOf(err); !ok && ctx.Err() == nil {
				err = apperrors.Provider(err)
			}
			return nil, fmt.Errorf("batch %d-%d: %w", w.Start, w.End, err)
		}
		if len(result) != len(batch) {
			return nil, fmt.Errorf("batch %d-%d: %w", w.Start, w.End,
				apperrors.Contract(fmt.Sprintf("Translation backend returned %d results for %d inputs.", len(result), len(batch))))
		}
		out = append(out, result...)
	}
	return out, nil
}
