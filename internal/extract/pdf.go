package extract

import (
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	blankRuns   = regexp.MustCompile(`\n\s*\n`)
	spaceRuns   = regexp.MustCompile(`[ \t]+`)
	pageFooters = regexp.MustCompile(`(?i)Page \d+ of \d+`)
)

// readPDFText reads the text layer of every page. Pages that fail to
// decode are skipped rather than failing the whole document.
func readPDFText(path string) (string, int, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	totalPages := r.NumPage()
	var builder strings.Builder

	for i := 1; i <= totalPages; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}

	return builder.String(), totalPages, nil
}

// cleanText normalizes whitespace and strips page footers so downstream
// extraction sees compact prose.
func cleanText(text string) string {
	cleaned := pageFooters.ReplaceAllString(text, "")
	cleaned = blankRuns.ReplaceAllString(cleaned, "\n\n")
	cleaned = spaceRuns.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}
