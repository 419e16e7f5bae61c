// Package filetrans runs one file through load, batched translation and save.
package filetrans

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/oukeidos/glosst/internal/apperrors"
	"github.com/oukeidos/glosst/internal/batcher"
	"github.com/oukeidos/glosst/internal/document"
	"github.com/oukeidos/glosst/internal/files"
	"github.com/oukeidos/glosst/internal/logger"
	"github.com/oukeidos/glosst/internal/provider"
)

// Options tunes a single file run.
type Options struct {
	BatchSize int
	Progress  batcher.Progress
}

// Outcome describes a finished run.
type Outcome struct {
	OutputPath string
	Units      int
	Batches    int
}

// FileTranslator handles one file format.
type FileTranslator interface {
	// Extension is the dispatch key, lower case without the dot.
	Extension() string
	// LoadFile reads path into a Document.
	LoadFile(path string) (document.Document, error)
	// SaveFile writes doc next to sourcePath and returns the output path.
	SaveFile(doc document.Document, sourcePath string) (string, error)
	// Translate runs the whole pipeline for the file at path.
	Translate(ctx context.Context, path string, p provider.Provider, opts Options) (Outcome, error)
}

var registry = map[string]FileTranslator{
	"xlsx": SpreadsheetTranslator{},
	"csv":  CSVTranslator{},
	"tsv":  TSVTranslator{},
	"txt":  TextTranslator{},
}

// ForExtension returns the translator registered for ext. A leading dot and
// letter case are ignored.
func ForExtension(ext string) (FileTranslator, error) {
	key := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	if t, ok := registry[key]; ok {
		return t, nil
	}
	return nil, apperrors.UnsupportedFormat(
		fmt.Sprintf("unsupported file type %q (supported: %s)", key, strings.Join(SupportedExtensions(), ", ")))
}

// SupportedExtensions lists the registered extensions in a stable order.
func SupportedExtensions() []string {
	order := map[string]int{"xlsx": 0, "csv": 1, "tsv": 2, "txt": 3}
	exts := make([]string, 0, len(registry))
	for ext := range registry {
		exts = append(exts, ext)
	}
	sort.Slice(exts, func(i, j int) bool { return order[exts[i]] < order[exts[j]] })
	return exts
}

// run is the shared load, translate, apply, save sequence. Nothing is
// written unless every batch succeeds.
func run(ctx context.Context, t FileTranslator, path string, p provider.Provider, opts Options) (Outcome, error) {
	doc, err := t.LoadFile(path)
	if err != nil {
		return Outcome{}, err
	}
	if c, ok := doc.(interface{ Close() error }); ok {
		defer c.Close()
	}

	texts := document.Texts(doc)
	logger.Info("Loaded document", "path", path, "format", t.Extension(), "units", len(texts))

	translated, err := batcher.Run(ctx, texts, opts.BatchSize, p, opts.Progress)
	if err != nil {
		return Outcome{}, err
	}
	if err := doc.Apply(translated); err != nil {
		return Outcome{}, err
	}
	dest, err := t.SaveFile(doc, path)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{
		OutputPath: dest,
		Units:      len(texts),
		Batches:    len(batcher.Windows(len(texts), opts.BatchSize)),
	}, nil
}

func readSource(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.IO("Failed to read source file.", err)
	}
	return data, nil
}

// save writes data to the translated sibling of sourcePath, keeping the
// source file's permission bits.
func save(data []byte, sourcePath string) (string, error) {
	dest := document.TranslatedPath(sourcePath)
	perm := os.FileMode(0644)
	if info, err := os.Stat(sourcePath); err == nil {
		perm = info.Mode().Perm()
	}
	if err := files.WriteFile(dest, data, perm); err != nil {
		return "", apperrors.IO("Failed to write translated file.", err)
	}
	logger.Info("Saved translated document", "dest", dest)
	return dest, nil
}

func encodeAndSave(doc document.Document, sourcePath string) (string, error) {
	data, err := doc.Encode()
	if err != nil {
		return "", err
	}
	return save(data, sourcePath)
}
