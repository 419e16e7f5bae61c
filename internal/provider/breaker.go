package provider

import (
	"context"
	"errors"
	"time"

	"github.com/oukeidos/glosst/internal/apperrors"
	"github.com/oukeidos/glosst/internal/logger"
	"github.com/sony/gobreaker"
)

const DefaultBreakerFailures = 3

// Breaker stops calling the wrapped provider after a run of consecutive
// failures, so the remaining files of a multi-file run fail fast.
type Breaker struct {
	next Provider
	cb   *gobreaker.CircuitBreaker
}

// NewBreaker wraps next. failures <= 0 selects DefaultBreakerFailures.
// cooldown is how long the breaker stays open before probing again.
func NewBreaker(name string, next Provider, failures int, cooldown time.Duration) *Breaker {
	if failures <= 0 {
		failures = DefaultBreakerFailures
	}
	limit := uint32(failures)
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= limit
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Translation backend breaker changed state", "backend", name, "from", from.String(), "to", to.String())
		},
		IsSuccessful: func(err error) bool {
			// Cancellation says nothing about backend health.
			return err == nil || errors.Is(err, context.Canceled)
		},
	}
	return &Breaker{next: next, cb: gobreaker.NewCircuitBreaker(settings)}
}

func (b *Breaker) Translate(ctx context.Context, texts []string) ([]string, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Translate(ctx, texts)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, apperrors.New(apperrors.KindProvider, "Translation backend disabled after repeated failures.", err)
		}
		return nil, err
	}
	translated, _ := out.([]string)
	return translated, nil
}

// State reports the breaker state by name (closed, half-open, open).
func (b *Breaker) State() string {
	return b.cb.State().String()
}
