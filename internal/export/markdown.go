package export

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/cnharrison/har-formatter/internal/format"
	"github.com/cnharrison/har-formatter/internal/har"
	"github.com/cnharrison/har-formatter/internal/render"
)

const (
	maxRequestBody       = 500
	maxResponseBody      = 800
	maxErrorResponseBody = 1500
)

var (
	sensitiveHeaders = []string{"authorization", "cookie", "auth", "token", "csrf", "xsrf", "secret", "session", "api-key", "apikey"}
	responseHeaders  = []string{"content-type", "content-length", "cache-control", "location", "server", "x-"}
)

// GenerateMarkdownSummary generates a markdown report of one entry for
// support and debugging
func GenerateMarkdownSummary(s har.EntrySummary) string {
	var summary strings.Builder

	host := s.URL
	if u, err := url.Parse(s.URL); err == nil && u.Host != "" {
		host = u.Host
	}
	summary.WriteString(fmt.Sprintf("# %s %s %d - %s\n\n", statusEmoji(s.Status), s.Method, s.Status, host))

	summary.WriteString("## Overview\n\n")
	summary.WriteString(fmt.Sprintf("- **Start Time:** %s\n", s.StartTime))
	summary.WriteString(fmt.Sprintf("- **Status:** %d %s\n", s.Status, s.StatusText))
	summary.WriteString(fmt.Sprintf("- **Duration:** %sms", render.FormatDuration(s.Time)))
	if s.Time > 5000 {
		summary.WriteString(" ⚠️ SLOW")
	} else if s.Time > 2000 {
		summary.WriteString(" 🐌 Sluggish")
	}
	summary.WriteString("\n")
	summary.WriteString(fmt.Sprintf("- **URL:** `%s`\n\n", s.URL))

	if headers := s.Request.Headers.Pairs(); len(headers) > 0 {
		summary.WriteString("## Request Headers\n\n")
		for _, header := range headers {
			summary.WriteString(fmt.Sprintf("- **%s:** `%s`\n", header.Name, redact(header)))
		}
		summary.WriteString("\n")
	}

	if params := s.Request.QueryString.Pairs(); len(params) > 0 {
		summary.WriteString("## Query String\n\n")
		for _, param := range params {
			summary.WriteString(fmt.Sprintf("- **%s:** `%s`\n", param.Name, param.Value))
		}
		summary.WriteString("\n")
	}

	if mimeType, text := s.Request.PostDataText(); text != "" {
		summary.WriteString("## Request Body\n\n")
		writeFence(&summary, format.Body(text), mimeType, maxRequestBody)
	}

	summary.WriteString("## Response\n\n")
	var keyHeaders []har.NameValue
	for _, header := range s.Response.Headers.Pairs() {
		if containsAny(strings.ToLower(header.Name), responseHeaders) {
			keyHeaders = append(keyHeaders, header)
		}
	}
	if len(keyHeaders) > 0 {
		summary.WriteString("**Key Headers:**\n")
		for _, header := range keyHeaders {
			summary.WriteString(fmt.Sprintf("- **%s:** `%s`\n", header.Name, redact(header)))
		}
		summary.WriteString("\n")
	}

	content := s.Response.Content
	if text := content.Text(); text != "" {
		body := har.DecodeBase64(text, content.Encoding())
		maxLen := maxResponseBody
		if s.Status >= 400 {
			summary.WriteString("**Error Response:**\n")
			maxLen = maxErrorResponseBody
		} else {
			summary.WriteString("**Response Body:**\n")
		}
		writeFence(&summary, body, content.MimeType(), maxLen)
	}

	if hints := troubleshootingHints(s.Status); hints != "" {
		summary.WriteString("## Quick Troubleshooting\n\n")
		summary.WriteString(hints)
		summary.WriteString("\n")
	}

	summary.WriteString("---\n*Generated by har-formatter*")
	return summary.String()
}

func statusEmoji(status int) string {
	switch {
	case status >= 500 || status == 0:
		return "🔥"
	case status >= 400:
		return "⚠️"
	case status >= 300:
		return "↩️"
	}
	return "✅"
}

// redact hides credentials so reports can be shared. Long values keep their
// last four characters to tell tokens apart.
func redact(header har.NameValue) string {
	if !containsAny(strings.ToLower(header.Name), sensitiveHeaders) {
		return header.Value
	}
	runes := []rune(header.Value)
	if len(runes) <= 16 {
		return "(redacted)"
	}
	return "..." + string(runes[len(runes)-4:]) + " (redacted)"
}

func writeFence(b *strings.Builder, body, mimeType string, maxLen int) {
	lang := string(format.Classify(mimeType, body))
	runes := []rune(body)
	if len(runes) > maxLen {
		b.WriteString(fmt.Sprintf("```%s\n%s\n... (showing first %d chars of %d total)\n```\n\n", lang, string(runes[:maxLen]), maxLen, len(runes)))
		return
	}
	b.WriteString(fmt.Sprintf("```%s\n%s\n```\n\n", lang, body))
}

func troubleshootingHints(status int) string {
	switch {
	case status == 0:
		return "- No response was recorded\n- The request may have been blocked or cancelled\n"
	case status == 401:
		return "- Check authentication headers/tokens\n- Verify API keys are valid\n- Check token expiration\n"
	case status == 403:
		return "- Check user permissions\n- Verify resource access rights\n"
	case status == 404:
		return "- Verify URL path is correct\n- Check if resource exists\n"
	case status == 429:
		return "- Rate limiting active\n- Check retry-after header\n"
	case status >= 500:
		return "- Server-side issue\n- Check server logs\n"
	case status >= 400:
		return "- Check the request parameters and body\n"
	}
	return ""
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
