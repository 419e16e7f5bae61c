package document

import (
	"fmt"
	"unicode/utf8"

	"github.com/oukeidos/glosst/internal/apperrors"
	"github.com/xuri/excelize/v2"
)

// CellPos is a 1-based cell coordinate within a named sheet.
type CellPos struct {
	Sheet      string
	SheetIndex int
	Row        int
	Col        int
}

// Cell returns the A1-style reference, e.g. "B3".
func (p CellPos) Cell() string {
	name, err := excelize.CoordinatesToCellName(p.Col, p.Row)
	if err != nil {
		return fmt.Sprintf("R%dC%d", p.Row, p.Col)
	}
	return name
}

func (p CellPos) String() string {
	return p.Sheet + "!" + p.Cell()
}

// Spreadsheet is a workbook whose textual cells are the units. Every non-empty
// cell is collected in sheet then row-major order; only cells holding a
// literal string become units. Numbers, booleans, dates, errors and formula
// cells pass through untouched.
type Spreadsheet struct {
	file      *excelize.File
	collected []CellPos
	units     []Unit
}

// OpenSpreadsheet loads a workbook from disk.
func OpenSpreadsheet(path string) (*Spreadsheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.IO("Failed to open spreadsheet.", fmt.Errorf("open %s: %w", path, err))
	}
	return newSpreadsheet(f)
}

func newSpreadsheet(f *excelize.File) (*Spreadsheet, error) {
	s := &Spreadsheet{file: f}
	if err := s.extract(); err != nil {
		f.Close()
		return nil, err
	}
	return s, nil
}

func (s *Spreadsheet) extract() error {
	for sheetIdx, sheet := range s.file.GetSheetList() {
		rows, err := s.file.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return apperrors.IO("Failed to read spreadsheet rows.", fmt.Errorf("sheet %q: %w", sheet, err))
		}
		for r, row := range rows {
			for c, value := range row {
				if value == "" {
					continue
				}
				pos := CellPos{Sheet: sheet, SheetIndex: sheetIdx + 1, Row: r + 1, Col: c + 1}
				s.collected = append(s.collected, pos)

				textual, err := s.isTextual(pos)
				if err != nil {
					return err
				}
				if textual {
					s.units = append(s.units, Unit{Pos: pos, Text: value})
				}
			}
		}
	}
	return nil
}

func (s *Spreadsheet) isTextual(pos CellPos) (bool, error) {
	cell := pos.Cell()
	typ, err := s.file.GetCellType(pos.Sheet, cell)
	if err != nil {
		return false, apperrors.IO("Failed to inspect spreadsheet cell.", fmt.Errorf("%s: %w", pos, err))
	}
	if typ != excelize.CellTypeSharedString && typ != excelize.CellTypeInlineString {
		return false, nil
	}
	formula, err := s.file.GetCellFormula(pos.Sheet, cell)
	if err != nil {
		return false, apperrors.IO("Failed to inspect spreadsheet cell.", fmt.Errorf("%s: %w", pos, err))
	}
	return formula == "", nil
}

func (s *Spreadsheet) Units() []Unit { return s.units }

// Collected returns every non-empty cell seen during extraction, textual or not.
func (s *Spreadsheet) Collected() []CellPos { return s.collected }

func (s *Spreadsheet) Apply(translated []string) error {
	if err := checkApply(s.units, translated); err != nil {
		return err
	}
	// A cell holds at most TotalCellChars characters; longer text would be cut.
	for i, u := range s.units {
		if n := utf8.RuneCountInString(translated[i]); n > excelize.TotalCellChars {
			return apperrors.IO(fmt.Sprintf("Translation for %s is %d characters; a cell holds at most %d.", u.Pos, n, excelize.TotalCellChars), nil)
		}
	}
	for i, u := range s.units {
		pos := u.Pos.(CellPos)
		if err := s.file.SetCellStr(pos.Sheet, pos.Cell(), translated[i]); err != nil {
			return apperrors.IO("Failed to write spreadsheet cell.", fmt.Errorf("%s: %w", pos, err))
		}
		s.units[i].Text = translated[i]
	}
	return nil
}

func (s *Spreadsheet) Encode() ([]byte, error) {
	buf, err := s.file.WriteToBuffer()
	if err != nil {
		return nil, apperrors.IO("Failed to encode spreadsheet.", err)
	}
	return buf.Bytes(), nil
}

// Close releases the workbook's temporary resources.
func (s *Spreadsheet) Close() error {
	return s.file.Close()
}
