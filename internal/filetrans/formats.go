package filetrans

import (
	"context"
	"fmt"

	"github.com/oukeidos/glosst/internal/document"
	"github.com/oukeidos/glosst/internal/provider"
)

type SpreadsheetTranslator struct{}

func (SpreadsheetTranslator) Extension() string { return "xlsx" }

func (SpreadsheetTranslator) LoadFile(path string) (document.Document, error) {
	return document.OpenSpreadsheet(path)
}

func (SpreadsheetTranslator) SaveFile(doc document.Document, sourcePath string) (string, error) {
	if _, ok := doc.(*document.Spreadsheet); !ok {
		return "", fmt.Errorf("spreadsheet translator cannot save %T", doc)
	}
	return encodeAndSave(doc, sourcePath)
}

func (t SpreadsheetTranslator) Translate(ctx context.Context, path string, p provider.Provider, opts Options) (Outcome, error) {
	return run(ctx, t, path, p, opts)
}

// CSVTranslator handles comma-separated files.
type CSVTranslator struct{}

func (CSVTranslator) Extension() string { return "csv" }

func (CSVTranslator) LoadFile(path string) (document.Document, error) {
	return loadTable(path, ',')
}

func (CSVTranslator) SaveFile(doc document.Document, sourcePath string) (string, error) {
	return saveTable(doc, sourcePath)
}

func (t CSVTranslator) Translate(ctx context.Context, path string, p provider.Provider, opts Options) (Outcome, error) {
	return run(ctx, t, path, p, opts)
}

// TSVTranslator handles tab-separated files.
type TSVTranslator struct{}

func (TSVTranslator) Extension() string { return "tsv" }

func (TSVTranslator) LoadFile(path string) (document.Document, error) {
	return loadTable(path, '\t')
}

func (TSVTranslator) SaveFile(doc document.Document, sourcePath string) (string, error) {
	return saveTable(doc, sourcePath)
}

func (t TSVTranslator) Translate(ctx context.Context, path string, p provider.Provider, opts Options) (Outcome, error) {
	return run(ctx, t, path, p, opts)
}

type TextTranslator struct{}

func (TextTranslator) Extension() string { return "txt" }

func (TextTranslator) LoadFile(path string) (document.Document, error) {
	data, err := readSource(path)
	if err != nil {
		return nil, err
	}
	return document.ParseText(data)
}

func (TextTranslator) SaveFile(doc document.Document, sourcePath string) (string, error) {
	if _, ok := doc.(*document.Text); !ok {
		return "", fmt.Errorf("text translator cannot save %T", doc)
	}
	return encodeAndSave(doc, sourcePath)
}

func (t TextTranslator) Translate(ctx context.Context, path string, p provider.Provider, opts Options) (Outcome, error) {
	return run(ctx, t, path, p, opts)
}

func loadTable(path string, comma rune) (document.Document, error) {
	data, err := readSource(path)
	if err != nil {
		return nil, err
	}
	return document.ParseTable(data, comma)
}

func saveTable(doc document.Document, sourcePath string) (string, error) {
	if _, ok := doc.(*document.Table); !ok {
		return "", fmt.Errorf("table translator cannot save %T", doc)
	}
	return encodeAndSave(doc, sourcePath)
}
