package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"mcq-service/config"
	"mcq-service/pkg/logger"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"
)

// ExtractPDFTextPages returns the plain text of each page, skipping empty pages.
func ExtractPDFTextPages(localPath string) ([]string, error) {
	f, r, err := pdf.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		if strings.TrimSpace(text) != "" {
			pages = append(pages, text)
		}
	}
	return pages, nil
}

// ExtractText reads a local .pdf (or any other file as plain UTF-8 text) and returns
// cleaned text. ErrNoText is returned when nothing readable is left.
func ExtractText(localPath string) (string, error) {
	var raw string
	if strings.EqualFold(filepath.Ext(localPath), ".pdf") {
		pages, err := ExtractPDFTextPages(localPath)
		if err != nil {
			return "", err
		}
		raw = strings.Join(pages, "\n")
	} else {
		b, err := os.ReadFile(localPath)
		if err != nil {
			return "", err
		}
		raw = string(b)
	}

	text := sanitizeUTF8Printable(norm.NFKC.String(raw))
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

// Load fetches filePath (local or s3://) and extracts its text.
func Load(ctx context.Context, filePath string) (string, error) {
	tmpPath, cleanup, err := FetchToLocalTemp(ctx, filePath)
	if err != nil {
		return "", err
	}
	defer cleanup()

	text, err := ExtractText(tmpPath)
	if err != nil {
		logger.Error(err, "%v: extract text failed for %s", config.ModuleDocument, filePath)
		return "", err
	}
	logger.WithFields(map[string]interface{}{
		"path":  filePath,
		"chars": len(text),
	}).Info("document: text extracted")
	return text, nil
}

// sanitizeUTF8Printable removes BOM and non-printable runes, keeping common whitespace.
func sanitizeUTF8Printable(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\uFEFF' || r == unicode.ReplacementChar {
			continue
		}
		if r != '\n' && r != '\t' && r != '\r' && !unicode.IsPrint(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
