package document

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/oukeidos/glosst/internal/apperrors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decodeText returns data as UTF-8 without a byte order mark. UTF-16 input is
// accepted when it starts with a BOM. bom reports whether any BOM was present.
func decodeText(data []byte) (text string, bom bool, err error) {
	var dec *encoding.Decoder
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		data = data[len(bomUTF8):]
		bom = true
	case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		dec = unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
		bom = true
	}
	if dec != nil {
		data, err = dec.Bytes(data)
		if err != nil {
			return "", false, apperrors.IO("File is not valid UTF-16 text.", err)
		}
	}
	if !utf8.Valid(data) {
		return "", false, apperrors.IO("File is not valid UTF-8 text.", fmt.Errorf("invalid UTF-8 sequence"))
	}
	return string(data), bom, nil
}

// encodeText renders text as UTF-8, prefixed with a BOM when bom is set.
func encodeText(text string, bom bool) ([]byte, error) {
	if !bom {
		return []byte(text), nil
	}
	return unicode.UTF8BOM.NewEncoder().Bytes([]byte(text))
}
