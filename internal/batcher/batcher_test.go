package batcher

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/oukeidos/glosst/internal/apperrors"
	"github.com/oukeidos/glosst/internal/provider"
)

type recordingProvider struct {
	sizes []int
	fail  map[int]error
	trim  int
}

func (r *recordingProvider) Translate(_ context.Context, texts []string) ([]string, error) {
	call := len(r.sizes)
	r.sizes = append(r.sizes, len(texts))
	if err := r.fail[call]; err != nil {
		return nil, err
	}
	out := append([]string(nil), texts...)
	if r.trim > 0 && len(out) >= r.trim {
		out = out[:len(out)-r.trim]
	}
	return out, nil
}

func synthetic(n int) []string {
	texts := make([]string, n)
	for i := range texts {
		texts[i] = fmt.Sprintf("line-%d", i)
	}
	return texts
}

func TestRunPreservesOrderAndPartitions(t *testing.T) {
	tests := []struct {
		n, size int
	}{
		{0, 200},
		{1, 200},
		{199, 200},
		{200, 200},
		{201, 200},
		{1000, 200},
		{7, 3},
		{10, 1},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("n=%d/b=%d", tt.n, tt.size), func(t *testing.T) {
			p := &recordingProvider{}
			texts := synthetic(tt.n)
			out, err := Run(context.Background(), texts, tt.size, p, Progress{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(out) != tt.n {
				t.Fatalf("len(out) = %d, want %d", len(out), tt.n)
			}
			for i := range out {
				if out[i] != texts[i] {
					t.Fatalf("out[%d] = %q, want %q", i, out[i], texts[i])
				}
			}
			wantCalls := (tt.n + tt.size - 1) / tt.size
			if len(p.sizes) != wantCalls {
				t.Fatalf("calls = %d, want %d", len(p.sizes), wantCalls)
			}
			for i, s := range p.sizes {
				if s > tt.size || s == 0 {
					t.Fatalf("call %d had size %d (max %d)", i, s, tt.size)
				}
			}
		})
	}
}

func TestRunProgressCallbacks(t *testing.T) {
	var totals []int
	var starts []int
	progress := Progress{
		OnTotal:    func(n int) { totals = append(totals, n) },
		OnProgress: func(i int) { starts = append(starts, i) },
	}
	if _, err := Run(context.Background(), synthetic(450), 200, provider.Identity{}, progress); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(totals) != 1 || totals[0] != 450 {
		t.Fatalf("OnTotal calls = %v, want [450]", totals)
	}
	want := []int{0, 200, 400}
	if fmt.Sprint(starts) != fmt.Sprint(want) {
		t.Fatalf("OnProgress calls = %v, want %v", starts, want)
	}
}

func TestRunTotalFiresBeforeDispatch(t *testing.T) {
	var events []string
	p := provider.Func(func(_ context.Context, texts []string) ([]string, error) {
		events = append(events, "call")
		return texts, nil
	})
	progress := Progress{
		OnTotal:    func(int) { events = append(events, "total") },
		OnProgress: func(int) { events = append(events, "progress") },
	}
	if _, err := Run(context.Background(), synthetic(3), 2, p, progress); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "[total progress call progress call]"
	if fmt.Sprint(events) != want {
		t.Fatalf("events = %v, want %s", events, want)
	}
}

func TestRunProviderFailureAborts(t *testing.T) {
	p := &recordingProvider{fail: map[int]error{1: errors.New("quota exceeded")}}
	out, err := Run(context.Background(), synthetic(500), 200, p, Progress{})
	if err == nil {
		t.Fatalf("expected error")
	}
	if out != nil {
		t.Fatalf("expected no output on failure, got %d items", len(out))
	}
	if len(p.sizes) != 2 {
		t.Fatalf("calls = %d, want 2 (remaining windows must not run)", len(p.sizes))
	}
	if !apperrors.IsProviderFailure(err) {
		t.Fatalf("expected provider failure, got %v", err)
	}
}

func TestRunKeepsClassifiedKind(t *testing.T) {
	p := &recordingProvider{fail: map[int]error{0: apperrors.RateLimit(errors.New("429"))}}
	_, err := Run(context.Background(), synthetic(3), 200, p, Progress{})
	if !apperrors.Is(err, apperrors.KindRateLimit) {
		t.Fatalf("expected rate limit kind to survive, got %v", err)
	}
}

func TestRunLengthMismatchIsContractViolation(t *testing.T) {
	tests := []struct {
		name string
		p    provider.Provider
	}{
		{"shorter", &recordingProvider{trim: 1}},
		{"longer", provider.Func(func(_ context.Context, texts []string) ([]string, error) {
			return append(append([]string(nil), texts...), "extra"), nil
		})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(context.Background(), synthetic(5), 2, tt.p, Progress{})
			if !apperrors.Is(err, apperrors.KindContract) {
				t.Fatalf("expected contract violation, got %v", err)
			}
		})
	}
}

func TestWindows(t *testing.T) {
	got := Windows(5, 2)
	want := []Window{{0, 2}, {2, 4}, {4, 5}}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("Windows(5,2) = %v, want %v", got, want)
	}
	if Windows(0, 2) != nil {
		t.Fatalf("Windows(0,2) should be empty")
	}
}
