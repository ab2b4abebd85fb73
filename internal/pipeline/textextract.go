package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// TextExtractor turns a document payload into raw text. Decoding of
// richer formats (PDF OCR and the like) lives behind this interface
// in an external service; the pipeline only requires that a failed or
// empty extraction degrade to empty text, never crash the run.
type TextExtractor interface {
	Extract(ctx context.Context, payload []byte, contentType string) (string, error)
}

// DefaultTextExtractor handles the payload kinds the tool reads
// directly: plain text, and HTML exports from insurer portals.
type DefaultTextExtractor struct{}

// NewTextExtractor creates the default extractor
func NewTextExtractor() *DefaultTextExtractor {
	return &DefaultTextExtractor{}
}

// Extract returns the text content of the payload. HTML payloads are
// reduced to their visible text; anything else is passed through as
// UTF-8 text. Extraction is best-effort and may be lossy: the
// normalizer downstream repairs what it can.
func (e *DefaultTextExtractor) Extract(ctx context.Context, payload []byte, contentType string) (string, error) {
	if len(payload) == 0 {
		return "", nil
	}

	if strings.Contains(contentType, "html") {
		return extractVisibleText(string(payload))
	}

	return string(payload), nil
}

// extractVisibleText walks an HTML tree collecting text nodes,
// skipping script/style content.
func extractVisibleText(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return buf.String(), nil
}

// RawDocuments holds the raw extracted text of the three source
// documents, by role. Empty strings are valid: the pipeline degrades
// to empty record sets rather than failing.
type RawDocuments struct {
	Benefits string
	Clinical string
	Denial   string
}

// LoadDocuments reads and extracts the three documents from disk.
// A missing file is fatal (the run cannot mean anything without its
// documents); a file that extracts to nothing is not.
func LoadDocuments(ctx context.Context, extractor TextExtractor, benefitsPath, clinicalPath, denialPath string) (RawDocuments, error) {
	var docs RawDocuments
	var err error

	if docs.Benefits, err = loadOne(ctx, extractor, benefitsPath); err != nil {
		return docs, fmt.Errorf("benefits document: %w", err)
	}
	if docs.Clinical, err = loadOne(ctx, extractor, clinicalPath); err != nil {
		return docs, fmt.Errorf("clinical document: %w", err)
	}
	if docs.Denial, err = loadOne(ctx, extractor, denialPath); err != nil {
		return docs, fmt.Errorf("denial document: %w", err)
	}

	return docs, nil
}

func loadOne(ctx context.Context, extractor TextExtractor, path string) (string, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read: %w", err)
	}

	text, err := extractor.Extract(ctx, payload, contentTypeForPath(path))
	if err != nil {
		// Extraction failure is recoverable: the document contributes
		// no text and downstream stages see empty record sets.
		fmt.Fprintf(os.Stderr, "Warning: text extraction failed for %s: %v\n", path, err)
		return "", nil
	}

	return text, nil
}

func contentTypeForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return "text/html"
	default:
		return "text/plain"
	}
}
