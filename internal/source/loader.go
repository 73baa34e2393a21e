package source

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Source describes where a job description or resume text comes from.
type Source struct {
	// Name is used in error messages to give more context about the text.
	Name string
	// Value is inline text provided via configuration or flags.
	Value string
	// File points to a file with the text. When set it takes precedence over
	// Value. HTML files are reduced to their visible text.
	File string
}

// Load resolves the text for src. A file wins over inline text, even when the
// file turns out to be blank, so a --job-file flag always overrides a config
// value. The result is trimmed and never empty.
func Load(src Source) (string, error) {
	label := strings.TrimSpace(src.Name)
	if label == "" {
		label = "text"
	}

	path := strings.TrimSpace(src.File)
	if path == "" {
		if text := strings.TrimSpace(src.Value); text != "" {
			return text, nil
		}
		return "", fmt.Errorf("%s is not configured", label)
	}

	raw, err := ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s from file %q: %w", label, path, err)
	}

	text := strings.TrimSpace(raw)
	if text == "" {
		return "", fmt.Errorf("%s file %q is empty", label, path)
	}

	return text, nil
}

// ReadFile returns the text content of path, converting HTML by extension.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	if IsHTML(path) {
		return HTMLText(data)
	}

	return string(data), nil
}

func IsHTML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}

const blockElements = "p, div, li, br, h1, h2, h3, h4, h5, h6, tr, section, article, header, title"

// HTMLText extracts visible text from an HTML document. Block elements end
// with a line break so that line-oriented features still see one heading or
// paragraph per line.
func HTMLText(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("parsing html: %w", err)
	}

	doc.Find("script, style, noscript, template").Remove()

	var b strings.Builder
	writeText(&b, doc.Selection)

	var lines []string
	for _, line := range strings.Split(b.String(), "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}

	return strings.Join(lines, "\n"), nil
}

func writeText(b *strings.Builder, s *goquery.Selection) {
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "#text" {
			b.WriteString(c.Text())
			return
		}

		writeText(b, c)
		if c.Is(blockElements) {
			b.WriteString("\n")
		}
	})
}
