// Package export writes finished documents to disk as plain text or
// sanitized HTML.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

const timestampLayout = "20060102_150405"

// Text writes the document to <dir>/<name>_<timestamp>.txt and returns the
// path written.
func Text(dir, name, content string) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", name, time.Now().Format(timestampLayout)))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// HTML renders the document's markdown to sanitized HTML and writes it to
// <dir>/<name>_<timestamp>.html.
func HTML(dir, name, content string) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.html", name, time.Now().Format(timestampLayout)))
	if err := os.WriteFile(path, Render(content), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// Render converts markdown to HTML and strips any markup outside the
// sanitizer's allow list. Model output is untrusted input.
func Render(content string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.NoEmptyLineBeforeBlock)
	doc := p.Parse([]byte(content))

	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	raw := markdown.Render(doc, renderer)

	return bluemonday.UGCPolicy().SanitizeBytes(raw)
}
