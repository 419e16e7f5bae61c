package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestPublicMessage_UsesSafeMessage(t *testing.T) {
	sentinel := errors.New("SECRET_VALUE")
	err := New(KindAuth, "safe auth error", sentinel)
	if got := PublicMessage(err); got != "safe auth error" {
		t.Fatalf("PublicMessage() = %q, want %q", got, "safe auth error")
	}
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped cause to be retained for internal matching")
	}
}

func TestPublicMessage_NonAppError(t *testing.T) {
	err := errors.New("plain")
	if got := PublicMessage(err); got != "plain" {
		t.Fatalf("PublicMessage() = %q, want %q", got, "plain")
	}
}

func TestKindOfThroughWrapping(t *testing.T) {
	err := fmt.Errorf("batch 0-200: %w", Contract("got 3 results for 4 inputs"))
	kind, ok := KindOf(err)
	if !ok || kind != KindContract {
		t.Fatalf("KindOf() = (%q, %v), want (%q, true)", kind, ok, KindContract)
	}
	if IsProviderFailure(err) {
		t.Fatalf("contract violation must not count as provider failure")
	}
}

func TestIsProviderFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"unclassified provider", Provider(errors.New("model crashed")), true},
		{"rate limit", RateLimit(errors.New("429")), true},
		{"auth", Auth(errors.New("403")), true},
		{"transient", Transient(errors.New("503")), true},
		{"unsupported format", UnsupportedFormat(`unsupported file type "docx"`), false},
		{"io", IO("", errors.New("permission denied")), false},
		{"plain", errors.New("plain"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsProviderFailure(tt.err); got != tt.want {
				t.Fatalf("IsProviderFailure() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsThroughWrapping(t *testing.T) {
	if Is(BadRequest(errors.New("boom")), KindRateLimit) {
		t.Fatalf("bad_request is not a rate limit")
	}
	if !Is(fmt.Errorf("wrapped: %w", RateLimit(nil)), KindRateLimit) {
		t.Fatalf("expected wrapped rate limit to be detected")
	}
}

func TestDefaultSafeMessage(t *testing.T) {
	err := New(KindIO, "  ", errors.New("disk full"))
	if got := err.Error(); got != "File could not be read or written." {
		t.Fatalf("Error() = %q", got)
	}
}
