package document

import (
	"strconv"
	"strings"
)

// LinePos is a 1-based line number.
type LinePos struct {
	Line int
}

func (p LinePos) String() string {
	return "line " + strconv.Itoa(p.Line)
}

// Text is a plain-text file where every line, blank or not, is a unit.
// Units keep their line terminator; CRLF and CR are read as LF.
type Text struct {
	bom   bool
	units []Unit
}

func ParseText(data []byte) (*Text, error) {
	text, bom, err := decodeText(data)
	if err != nil {
		return nil, err
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	t := &Text{bom: bom}
	for i, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			// SplitAfter yields a trailing empty element after a final newline.
			continue
		}
		t.units = append(t.units, Unit{Pos: LinePos{Line: i + 1}, Text: line})
	}
	return t, nil
}

func (t *Text) Units() []Unit { return t.units }

func (t *Text) Apply(translated []string) error {
	if err := checkApply(t.units, translated); err != nil {
		return err
	}
	for i := range t.units {
		t.units[i].Text = translated[i]
	}
	return nil
}

// Encode writes each unit followed by exactly one newline.
func (t *Text) Encode() ([]byte, error) {
	var b strings.Builder
	for _, u := range t.units {
		b.WriteString(strings.TrimRight(u.Text, "\r\n"))
		b.WriteByte('\n')
	}
	return encodeText(b.String(), t.bom)
}
