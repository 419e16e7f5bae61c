package progress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rivo/uniseg"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name        string
		done, total int
		wantFilled  int
		wantCounter string
	}{
		{"unknown total", 0, 0, 0, " ..."},
		{"empty", 0, 400, 0, " 0/400"},
		{"half", 200, 400, 10, " 200/400"},
		{"full", 400, 400, 20, " 400/400"},
		{"overshoot clamps", 500, 400, 20, " 500/400"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			width := len("a.csv") + 3 + 20 + len(tt.wantCounter)
			line := Render("a.csv", tt.done, tt.total, width)
			if !strings.HasSuffix(line, tt.wantCounter) {
				t.Fatalf("line %q lacks counter %q", line, tt.wantCounter)
			}
			if got := strings.Count(line, "="); got != tt.wantFilled {
				t.Fatalf("filled = %d, want %d (%q)", got, tt.wantFilled, line)
			}
			if uniseg.StringWidth(line) != width {
				t.Fatalf("width = %d, want %d", uniseg.StringWidth(line), width)
			}
		})
	}
}

func TestTruncateWideRunes(t *testing.T) {
	name := "任务对话_第一章_最终版本_修订稿.xlsx"
	got := Truncate(name, 12)
	if w := uniseg.StringWidth(got); w > 12 {
		t.Fatalf("Truncate width = %d, want <= 12 (%q)", w, got)
	}
	if !strings.HasSuffix(got, "…") || !strings.HasPrefix(got, "任务") {
		t.Fatalf("Truncate = %q", got)
	}
	if Truncate("short.txt", 12) != "short.txt" {
		t.Fatalf("short label must be unchanged")
	}
}

func TestBarSilentOnNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	b := New(&buf)
	b.Start("a.txt")
	b.SetTotal(3)
	b.Set(2)
	b.Finish()
	if buf.Len() != 0 {
		t.Fatalf("expected no output on non-terminal writer, got %q", buf.String())
	}
}
