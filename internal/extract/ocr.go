package extract

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// OCRRunner produces plain text from a document image.
type OCRRunner interface {
	Run(ctx context.Context, path string) (string, error)
}

// TesseractOCR shells out to the tesseract binary. Output goes to stdout
// ("-" output base) so no temp files are needed.
type TesseractOCR struct {
	// Binary overrides the executable name, default "tesseract".
	Binary string
	// Language is the tesseract language pack, default "eng".
	Language string
}

func (t *TesseractOCR) Run(ctx context.Context, path string) (string, error) {
	binary := t.Binary
	if binary == "" {
		binary = "tesseract"
	}
	language := t.Language
	if language == "" {
		language = "eng"
	}

	if _, err := exec.LookPath(binary); err != nil {
		return "", fmt.Errorf("ocr binary not installed: %w", err)
	}

	cmd := exec.CommandContext(ctx, binary, path, "-", "-l", language)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return "", fmt.Errorf("ocr failed: %s: %w", detail, err)
		}
		return "", fmt.Errorf("ocr failed: %w", err)
	}

	return stdout.String(), nil
}
