package format

import (
	"mime"
	"net/http"
	"strings"

	"github.com/go-xmlfmt/xmlfmt"
	"github.com/yosssi/gohtml"
)

// Category is a broad body classification used for display
type Category string

const (
	JSON Category = "json"
	HTML Category = "html"
	XML  Category = "xml"
	Text Category = "text"
)

// Classify returns the category for a MIME type, sniffing content when the
// MIME type is missing or generic
func Classify(mimeType, content string) Category {
	if mimeType != "" {
		mediaType, _, err := mime.ParseMediaType(mimeType)
		if err != nil {
			mediaType = strings.ToLower(strings.TrimSpace(mimeType))
		}
		switch {
		case strings.Contains(mediaType, "json"):
			return JSON
		case mediaType == "text/html" || mediaType == "application/xhtml+xml":
			return HTML
		case strings.Contains(mediaType, "xml"):
			return XML
		case mediaType != "text/plain" && mediaType != "application/octet-stream":
			return Text
		}
	}

	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return Text
	}
	if _, err := Indent(trimmed); err == nil {
		return JSON
	}
	detected := http.DetectContentType([]byte(trimmed))
	switch {
	case strings.HasPrefix(detected, "text/html"):
		return HTML
	case strings.HasPrefix(detected, "text/xml"), strings.HasPrefix(trimmed, "<?xml"):
		return XML
	}
	return Text
}

// Reindent lays out HTML and XML bodies for reading. JSON and everything else
// come back untouched; JSON is already handled by Body.
func Reindent(content, mimeType string) string {
	if strings.TrimSpace(content) == "" {
		return content
	}
	switch Classify(mimeType, content) {
	case HTML:
		return gohtml.Format(content)
	case XML:
		formatted := xmlfmt.FormatXML(content, "", "  ")
		formatted = strings.ReplaceAll(formatted, "\r\n", "\n")
		return strings.TrimLeft(formatted, "\n")
	default:
		return content
	}
}
