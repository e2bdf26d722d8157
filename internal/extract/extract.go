// Package extract pulls plain text out of uploaded documents. PDF text
// layers are read directly; image formats fall back to an OCR binary when
// one is installed.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

// Result is the outcome of text extraction for a single document.
type Result struct {
	Text   string
	Pages  int
	Method string
}

// Extraction methods reported in Result.Method.
const (
	MethodPDFText = "pdf_text"
	MethodOCR     = "ocr"
)

// Extensions accepted for upload. DOCX is accepted but has no local
// converter, so extraction reports a collaborator failure for it.
var supportedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tiff": true,
	".bmp":  true,
}

// Supported reports whether the file extension is a processable format.
func Supported(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

// TextExtractor extracts plain text from a document on disk.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (*Result, error)
}

type extractor struct {
	ocr    OCRRunner
	logger *slog.Logger
}

// New returns a TextExtractor that reads PDF text layers and delegates
// image formats (and text-free PDFs) to ocr.
func New(ocr OCRRunner, logger *slog.Logger) TextExtractor {
	return &extractor{
		ocr:    ocr,
		logger: logger.With("system", "extract"),
	}
}

func (e *extractor) Extract(ctx context.Context, path string) (*Result, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		return e.extractPDF(ctx, path)
	case ".png", ".jpg", ".jpeg", ".tiff", ".bmp":
		return e.extractImage(ctx, path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

func (e *extractor) extractPDF(ctx context.Context, path string) (*Result, error) {
	text, pages, err := readPDFText(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	cleaned := cleanText(text)
	if cleaned != "" {
		e.logger.Info("extracted pdf text layer", "path", path, "pages", pages, "chars", len(cleaned))
		return &Result{Text: cleaned, Pages: pages, Method: MethodPDFText}, nil
	}

	// Scanned PDFs carry no text layer.
	e.logger.Info("pdf has no text layer, falling back to ocr", "path", path)
	ocrText, err := e.ocr.Run(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoText, err)
	}
	cleaned = cleanText(ocrText)
	if cleaned == "" {
		return nil, ErrNoText
	}
	return &Result{Text: cleaned, Pages: pages, Method: MethodOCR}, nil
}

func (e *extractor) extractImage(ctx context.Context, path string) (*Result, error) {
	text, err := e.ocr.Run(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	cleaned := cleanText(text)
	if cleaned == "" {
		return nil, ErrNoText
	}
	e.logger.Info("extracted image text via ocr", "path", path, "chars", len(cleaned))
	return &Result{Text: cleaned, Pages: 1, Method: MethodOCR}, nil
}
