package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oukeidos/glosst/internal/apperrors"
	"github.com/oukeidos/glosst/internal/batcher"
	"github.com/oukeidos/glosst/internal/prompt"
	"github.com/oukeidos/glosst/internal/provider"
)

func upper() provider.Provider {
	return provider.Func(func(_ context.Context, texts []string) ([]string, error) {
		out := make([]string, len(texts))
		for i, t := range texts {
			out[i] = strings.ToUpper(t)
		}
		return out, nil
	})
}

func baseConfig(p provider.Provider) Config {
	return Config{
		Backend:    BackendIdentity,
		SourceLang: "zh-CN",
		TargetLang: "ko",
		Provider:   p,
	}
}

func openSession(t *testing.T, cfg Config) *Session {
	t.Helper()
	s, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown backend", func(c *Config) { c.Backend = "deepl" }, "unknown backend"},
		{"bad source", func(c *Config) { c.SourceLang = "xx" }, "unsupported source language"},
		{"bad target", func(c *Config) { c.TargetLang = "" }, "unsupported target language"},
		{"same languages", func(c *Config) { c.TargetLang = "zh" }, "must be different"},
		{"glossary on local", func(c *Config) { c.Backend = BackendLocal; c.Glossary = "glossary_all" }, "not supported by the local backend"},
		{"unknown glossary", func(c *Config) { c.Backend = BackendCloud; c.Cloud.ProjectID = "p"; c.Glossary = "nope" }, "unknown glossary"},
		{"local without command", func(c *Config) { c.Backend = BackendLocal }, "requires a model command"},
		{"gemini without key", func(c *Config) { c.Backend = BackendGemini }, "API key is required"},
		{"cloud without project", func(c *Config) { c.Backend = BackendCloud }, "project id is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig(nil)
			tt.mutate(&cfg)
			cfg, _ = cfg.Normalize()
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfigValidateAcceptsCloudGlossaryByName(t *testing.T) {
	cfg := Config{Backend: "Cloud", SourceLang: "zh-CN", TargetLang: "ko", Glossary: " 루나 ", Cloud: CloudConfig{ProjectID: "p"}}
	cfg, _ = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Backend != BackendCloud || cfg.Glossary != "루나" {
		t.Fatalf("normalized = %q %q", cfg.Backend, cfg.Glossary)
	}
}

func TestNormalizeBatchSize(t *testing.T) {
	tests := []struct {
		in, want int
		noted    bool
	}{
		{0, 200, false},
		{-5, 200, true},
		{1, 1, false},
		{5000, MaxBatchSize, true},
	}
	for _, tt := range tests {
		cfg, notes := Config{BatchSize: tt.in}.Normalize()
		if cfg.BatchSize != tt.want || (len(notes) > 0) != tt.noted {
			t.Errorf("Normalize(%d) = %d, notes %v", tt.in, cfg.BatchSize, notes)
		}
	}
}

func TestTranslateFileWritesSibling(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "dialogue.txt", "hello\n\nworld\n")
	s := openSession(t, baseConfig(upper()))

	var total int
	res, err := s.TranslateFile(context.Background(), src, batcher.Progress{OnTotal: func(n int) { total = n }})
	if err != nil {
		t.Fatalf("TranslateFile: %v", err)
	}
	if res.Status != TranslationStatusSuccess || res.Units != 3 || res.Batches != 1 || total != 3 {
		t.Fatalf("result = %+v total=%d", res, total)
	}
	got, err := os.ReadFile(filepath.Join(dir, "dialogue_translated.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "HELLO\n\nWORLD\n" {
		t.Fatalf("output = %q", got)
	}
	if u := s.Usage(); u.Calls != 1 || u.Units != 3 || u.Characters != 13 {
		t.Fatalf("usage = %+v", u)
	}
}

func TestTranslateFileUnsupported(t *testing.T) {
	s := openSession(t, baseConfig(nil))
	res, err := s.TranslateFile(context.Background(), "notes.docx", batcher.Progress{})
	if !apperrors.Is(err, apperrors.KindUnsupportedFormat) || !strings.Contains(err.Error(), `"docx"`) {
		t.Fatalf("err = %v", err)
	}
	if res.Status != TranslationStatusFailure {
		t.Fatalf("status = %s", res.Status)
	}
}

func TestTranslateFileOverwritePolicy(t *testing.T) {
	tests := []struct {
		name       string
		overwrite  bool
		confirm    func(string) (bool, error)
		wantStatus TranslationStatus
		wantErr    bool
	}{
		{"force", true, func(string) (bool, error) { return false, nil }, TranslationStatusSuccess, false},
		{"no confirmer", false, nil, TranslationStatusSuccess, false},
		{"confirmed", false, func(string) (bool, error) { return true, nil }, TranslationStatusSuccess, false},
		{"declined", false, func(string) (bool, error) { return false, nil }, TranslationStatusSkipped, false},
		{"non-interactive", false, func(string) (bool, error) { return false, prompt.ErrNonInteractive }, TranslationStatusSkipped, false},
		{"prompt error", false, func(string) (bool, error) { return false, errors.New("tty gone") }, TranslationStatusFailure, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			src := writeFile(t, dir, "a.csv", "id,text\n1,hi\n")
			dest := writeFile(t, dir, "a_translated.csv", "old")

			cfg := baseConfig(upper())
			cfg.Overwrite = tt.overwrite
			cfg.OnConfirmOverwrite = tt.confirm
			s := openSession(t, cfg)

			res, err := s.TranslateFile(context.Background(), src, batcher.Progress{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if res.Status != tt.wantStatus {
				t.Fatalf("status = %s, want %s", res.Status, tt.wantStatus)
			}
			got, _ := os.ReadFile(dest)
			replaced := string(got) != "old"
			if replaced != (tt.wantStatus == TranslationStatusSuccess) {
				t.Fatalf("dest replaced = %v, content %q", replaced, got)
			}
		})
	}
}

func TestBreakerFailsRemainingFilesFast(t *testing.T) {
	dir := t.TempDir()
	calls := 0
	failing := provider.Func(func(context.Context, []string) ([]string, error) {
		calls++
		return nil, apperrors.Transient(errors.New("503"))
	})
	cfg := baseConfig(failing)
	cfg.BreakerFailures = 2
	s := openSession(t, cfg)

	for i, name := range []string{"a.txt", "b.txt", "c.txt", "d.txt"} {
		src := writeFile(t, dir, name, "line\n")
		_, err := s.TranslateFile(context.Background(), src, batcher.Progress{})
		if !apperrors.IsProviderFailure(err) {
			t.Fatalf("file %d: err = %v, want provider failure", i, err)
		}
	}
	if calls != 2 {
		t.Fatalf("backend called %d times, want 2", calls)
	}
	if s.BreakerState() != "open" {
		t.Fatalf("breaker state = %s", s.BreakerState())
	}
	if _, err := os.Stat(filepath.Join(dir, "a_translated.txt")); !os.IsNotExist(err) {
		t.Fatalf("failed run must not write output")
	}
}

func TestTranslateTextDropsEmptyLines(t *testing.T) {
	var seen []string
	p := provider.Func(func(_ context.Context, texts []string) ([]string, error) {
		seen = append(seen, texts...)
		return upper().Translate(context.Background(), texts)
	})
	s := openSession(t, baseConfig(p))
	out, err := s.TranslateText(context.Background(), "你好\n\n再见\n", batcher.Progress{})
	if err != nil {
		t.Fatalf("TranslateText: %v", err)
	}
	if len(seen) != 2 || seen[0] != "你好" || seen[1] != "再见" {
		t.Fatalf("provider saw %q", seen)
	}
	if out != "你好\n再见" {
		t.Fatalf("out = %q", out)
	}
}

func TestOpenIdentityBackend(t *testing.T) {
	s := openSession(t, Config{Backend: BackendIdentity, SourceLang: "ko", TargetLang: "en", BatchSize: 2})
	out, err := s.TranslateText(context.Background(), "a\nb\nc", batcher.Progress{})
	if err != nil || out != "a\nb\nc" {
		t.Fatalf("TranslateText = %q, %v", out, err)
	}
	if u := s.Usage(); u.Calls != 2 {
		t.Fatalf("calls = %d, want 2", u.Calls)
	}
}
