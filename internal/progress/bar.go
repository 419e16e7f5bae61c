// Package progress draws a single-line progress bar on a terminal.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rivo/uniseg"
	"golang.org/x/term"
)

const (
	defaultWidth = 80
	minBarWidth  = 10
	maxLabel     = 32
)

// Bar renders progress for one file at a time. When the writer is not a
// terminal it prints nothing and the log carries the progress instead.
type Bar struct {
	mu      sync.Mutex
	out     io.Writer
	width   int
	enabled bool

	label string
	total int
	done  int
	drawn bool
}

// New returns a bar writing to out.
func New(out io.Writer) *Bar {
	b := &Bar{out: out, width: defaultWidth}
	if f, ok := out.(*os.File); ok {
		fd := int(f.Fd())
		b.enabled = term.IsTerminal(fd)
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			b.width = w
		}
	}
	return b
}

// Start begins a new bar for label with an unknown total.
func (b *Bar) Start(label string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.label, b.total, b.done = label, 0, 0
	b.draw()
}

func (b *Bar) SetTotal(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.total = n
	b.draw()
}

func (b *Bar) Set(done int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.done = done
	b.draw()
}

// Finish fills the bar and ends the line.
func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.done = b.total
	b.draw()
	if b.enabled && b.drawn {
		fmt.Fprintln(b.out)
	}
	b.drawn = false
}

// Abort ends the line, leaving the bar where it stopped.
func (b *Bar) Abort() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.enabled && b.drawn {
		fmt.Fprintln(b.out)
	}
	b.drawn = false
}

func (b *Bar) draw() {
	if !b.enabled {
		return
	}
	fmt.Fprint(b.out, "\r"+Render(b.label, b.done, b.total, b.width))
	b.drawn = true
}

// Render formats one bar line fitting in width display columns.
func Render(label string, done, total, width int) string {
	label = Truncate(label, maxLabel)
	counter := fmt.Sprintf(" %d/%d", done, total)
	if total <= 0 {
		counter = " ..."
	}
	barWidth := width - uniseg.StringWidth(label) - len(counter) - 3
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}
	filled := 0
	if total > 0 {
		if done > total {
			done = total
		}
		filled = barWidth * done / total
	}
	return label + " [" + strings.Repeat("=", filled) + strings.Repeat(" ", barWidth-filled) + "]" + counter
}

// Truncate shortens s to at most width display columns without splitting
// grapheme clusters, marking the cut with "…".
func Truncate(s string, width int) string {
	if uniseg.StringWidth(s) <= width {
		return s
	}
	var sb strings.Builder
	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if used+w > width-1 {
			break
		}
		sb.WriteString(g.Str())
		used += w
	}
	sb.WriteString("…")
	return sb.String()
}
