package document

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/oukeidos/glosst/internal/apperrors"
)

// FieldPos addresses a data cell by 0-based row index and column label.
type FieldPos struct {
	Row         int
	Column      string
	ColumnIndex int
}

func (p FieldPos) String() string {
	return fmt.Sprintf("row %d, column %q", p.Row, p.Column)
}

// missingValues are the spellings read as "no value". Matching cells are
// never translated and are written back as they were.
var missingValues = map[string]bool{
	"":          true,
	"#N/A":      true,
	"#N/A N/A":  true,
	"#NA":       true,
	"-1.#IND":   true,
	"-1.#QNAN":  true,
	"-NaN":      true,
	"-nan":      true,
	"1.#IND":    true,
	"1.#QNAN":   true,
	"<NA>":      true,
	"N/A":       true,
	"NA":        true,
	"NULL":      true,
	"NaN":       true,
	"None":      true,
	"n/a":       true,
	"nan":       true,
	"null":      true,
}

// IsMissing reports whether a field value is a missing sentinel.
func IsMissing(value string) bool {
	return missingValues[value]
}

// Table is a delimited file with a header record. Every non-missing data
// field is a unit; the header supplies column labels and is never translated.
type Table struct {
	comma   rune
	bom     bool
	header  []string
	records [][]string
	units   []Unit
}

// ParseTable reads delimited data separated by comma.
func ParseTable(data []byte, comma rune) (*Table, error) {
	text, bom, err := decodeText(data)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = comma
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperrors.IO("Delimited file is empty.", err)
	}
	if err != nil {
		return nil, parseError(err)
	}

	t := &Table{comma: comma, bom: bom, header: header}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, parseError(err)
		}
		t.records = append(t.records, rec)
	}

	for row, rec := range t.records {
		for col, value := range rec {
			if IsMissing(value) {
				continue
			}
			t.units = append(t.units, Unit{
				Pos:  FieldPos{Row: row, Column: t.label(col), ColumnIndex: col},
				Text: value,
			})
		}
	}
	return t, nil
}

// parseError reports malformed quoting with its line. Quotes are strict: a
// field either has no quotes or is fully quoted with inner quotes doubled, so
// an unbalanced quote can never absorb the records after it.
func parseError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return apperrors.IO(fmt.Sprintf("Malformed delimited file at line %d, column %d: %v.", pe.Line, pe.Column, pe.Err), err)
	}
	return apperrors.IO("Failed to parse delimited file.", err)
}

func (t *Table) label(col int) string {
	if col < len(t.header) && t.header[col] != "" {
		return t.header[col]
	}
	return fmt.Sprintf("Unnamed: %d", col)
}

func (t *Table) Units() []Unit { return t.units }

func (t *Table) Apply(translated []string) error {
	if err := checkApply(t.units, translated); err != nil {
		return err
	}
	for i, u := range t.units {
		pos := u.Pos.(FieldPos)
		t.records[pos.Row][pos.ColumnIndex] = translated[i]
		t.units[i].Text = translated[i]
	}
	return nil
}

func (t *Table) Encode() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = t.comma
	if err := w.Write(t.header); err != nil {
		return nil, apperrors.IO("Failed to encode delimited file.", err)
	}
	if err := w.WriteAll(t.records); err != nil {
		return nil, apperrors.IO("Failed to encode delimited file.", err)
	}
	return encodeText(buf.String(), t.bom)
}
