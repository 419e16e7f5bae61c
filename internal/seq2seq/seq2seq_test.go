package seq2seq

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/oukeidos/glosst/internal/apperrors"
	"github.com/oukeidos/glosst/internal/language"
)

// TestHelperProcess is not a real test. It is the fake model server started
// by the tests below.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	in := bufio.NewScanner(os.Stdin)
	out := json.NewEncoder(os.Stdout)
	for in.Scan() {
		var req request
		if err := json.Unmarshal(in.Bytes(), &req); err != nil {
			_ = out.Encode(response{Error: err.Error()})
			continue
		}
		switch req.Text {
		case "FAIL":
			_ = out.Encode(response{Error: "CUDA out of memory"})
		case "HANG":
			time.Sleep(time.Minute)
		default:
			_ = out.Encode(response{TranslationText: fmt.Sprintf("%s>%s:%s", req.SrcLang, req.TgtLang, strings.ToUpper(req.Text))})
		}
	}
	os.Exit(0)
}

func startHelper(t *testing.T) *ProcessModel {
	t.Helper()
	m, err := StartProcess([]string{os.Args[0], "-test.run=TestHelperProcess"}, []string{"GO_WANT_HELPER_PROCESS=1"})
	if err != nil {
		t.Fatalf("StartProcess: %v", err)
	}
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func pair(t *testing.T) (language.Language, language.Language) {
	t.Helper()
	src, _ := language.GetLanguage("zh-CN")
	tgt, _ := language.GetLanguage("ko")
	return src, tgt
}

func TestProviderOneCallPerInput(t *testing.T) {
	m := startHelper(t)
	src, tgt := pair(t)
	p, err := NewProvider(m, src, tgt)
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	out, err := p.Translate(context.Background(), []string{"a", "b\n", ""})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	want := []string{"zho_Hans>kor_Hang:A", "zho_Hans>kor_Hang:B\n", "zho_Hans>kor_Hang:"}
	if len(out) != len(want) {
		t.Fatalf("out = %v", out)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("out[%d] = %q, want %q", i, out[i], want[i])
		}
	}
}

func TestProviderModelError(t *testing.T) {
	m := startHelper(t)
	src, tgt := pair(t)
	p, _ := NewProvider(m, src, tgt)
	_, err := p.Translate(context.Background(), []string{"ok", "FAIL", "never"})
	if !apperrors.IsProviderFailure(err) {
		t.Fatalf("expected provider failure, got %v", err)
	}
	if !strings.Contains(fmt.Sprint(errors.Unwrap(err)), "out of memory") {
		t.Fatalf("cause not retained: %v", errors.Unwrap(err))
	}
	// The process stays usable after a model-level error.
	if _, err := m.Generate(context.Background(), "again", "zho_Hans", "kor_Hang"); err != nil {
		t.Fatalf("Generate after error: %v", err)
	}
}

func TestGenerateCancelKillsProcess(t *testing.T) {
	m := startHelper(t)
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	_, err := m.Generate(ctx, "HANG", "zho_Hans", "kor_Hang")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if _, err := m.Generate(context.Background(), "a", "zho_Hans", "kor_Hang"); err == nil {
		t.Fatalf("expected closed model error after cancellation")
	}
}

type stubModel struct{ calls int }

func (s *stubModel) Generate(_ context.Context, text, _, _ string) (string, error) {
	s.calls++
	return text, nil
}

func TestNewProviderValidation(t *testing.T) {
	src, tgt := pair(t)
	if _, err := NewProvider(nil, src, tgt); err == nil {
		t.Fatalf("expected nil model error")
	}
	if _, err := NewProvider(&stubModel{}, language.Language{Code: "xx"}, tgt); err == nil {
		t.Fatalf("expected missing model code error")
	}
	s := &stubModel{}
	p, err := NewProvider(s, src, tgt)
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	if _, err := p.Translate(context.Background(), []string{"a", "b", "c"}); err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if s.calls != 3 {
		t.Fatalf("calls = %d, want 3", s.calls)
	}
}

func TestStartProcessEmptyCommand(t *testing.T) {
	if _, err := StartProcess(nil, nil); err == nil {
		t.Fatalf("expected error")
	}
}
