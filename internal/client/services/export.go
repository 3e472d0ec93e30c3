package services

import (
	"fmt"
	"html"
	"strings"

	"draftpad/internal/client/models"
	"draftpad/internal/common"
)

// Download formats.
const (
	FormatHTML     = "html"
	FormatMarkdown = "md"
	FormatText     = "txt"
)

// renderDocument serializes a document for download. Content is stored as
// HTML markup, so html passes it through wrapped in a minimal page, while
// md and txt strip the markup.
func renderDocument(d *models.Document, format string) ([]byte, string, error) {
	switch format {
	case FormatHTML:
		page := fmt.Sprintf("<!DOCTYPE html>\n<html>\n<head><title>%s</title></head>\n<body>\n%s\n</body>\n</html>\n",
			html.EscapeString(d.Title), d.Content)
		return []byte(page), d.Title + ".html", nil
	case FormatMarkdown:
		body := "# " + d.Title + "\n\n" + stripMarkup(d.Content) + "\n"
		return []byte(body), d.Title + ".md", nil
	case FormatText:
		body := d.Title + "\n\n" + stripMarkup(d.Content) + "\n"
		return []byte(body), d.Title + ".txt", nil
	default:
		return nil, "", fmt.Errorf("%w: unknown format %q", common.ErrValidation, format)
	}
}

// stripMarkup removes tags from stored rich-text markup, turning block and
// line-break tags into newlines and unescaping entities.
func stripMarkup(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inTag := false
	var tag strings.Builder
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
			tag.Reset()
		case r == '>' && inTag:
			inTag = false
			switch strings.ToLower(strings.TrimPrefix(tag.String(), "/")) {
			case "p", "div", "br", "br/", "li", "h1", "h2", "h3", "h4", "h5", "h6":
				b.WriteByte('\n')
			}
		case inTag:
			tag.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}

	out := html.UnescapeString(b.String())
	// collapse runs of blank lines left by paired block tags
	for strings.Contains(out, "\n\n\n") {
		out = strings.ReplaceAll(out, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(out)
}
