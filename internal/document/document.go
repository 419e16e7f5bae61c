// Package document converts structured files into position-tagged text units
// and writes translated units back into the same structure.
package document

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/oukeidos/glosst/internal/apperrors"
)

// Position locates a unit inside the Document it was extracted from.
type Position interface {
	fmt.Stringer
}

// Unit is one translatable value and where it came from.
type Unit struct {
	Pos  Position
	Text string
}

// Document is the in-memory form of one source file.
type Document interface {
	// Units returns the translatable units in extraction order.
	Units() []Unit
	// Apply replaces the units' values, matched by index. len(translated)
	// must equal len(Units()).
	Apply(translated []string) error
	// Encode serializes the document in its source format.
	Encode() ([]byte, error)
}

// Texts returns the unit values of doc in extraction order.
func Texts(doc Document) []string {
	units := doc.Units()
	out := make([]string, len(units))
	for i, u := range units {
		out[i] = u.Text
	}
	return out
}

// TranslatedSuffix is inserted before the extension of every output path.
const TranslatedSuffix = "_translated"

// TranslatedPath returns the sibling output path for src, e.g.
// "dir/items.xlsx" -> "dir/items_translated.xlsx".
func TranslatedPath(src string) string {
	ext := filepath.Ext(src)
	return strings.TrimSuffix(src, ext) + TranslatedSuffix + ext
}

func checkApply(units []Unit, translated []string) error {
	if len(translated) != len(units) {
		return apperrors.Contract(fmt.Sprintf("Got %d translated values for %d units.", len(translated), len(units)))
	}
	return nil
}
