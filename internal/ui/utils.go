package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"github.com/cnharrison/har-formatter/internal/format"
	"github.com/cnharrison/har-formatter/internal/har"
	"github.com/cnharrison/har-formatter/internal/render"
)

// statusColor picks the list/detail color for a status code
func statusColor(status int) string {
	switch {
	case status >= statusCodeClientError, status == 0:
		return "red"
	case status >= statusCodeRedirect:
		return "yellow"
	case status >= statusCodeSuccess:
		return "green"
	}
	return "white"
}

// entryLabel is the list row for a summary: METHOD STATUS URL DURATION
func entryLabel(s har.EntrySummary) string {
	u := s.URL
	if runes := []rune(u); len(runes) > maxURLDisplayLength {
		u = string(runes[:maxURLDisplayLength-urlTruncateOffset]) + "..."
	}
	return fmt.Sprintf("[cyan]%-6s[white] [%s]%3d[white] [blue]%s[white] [yellow]%sms[white]",
		tview.Escape(s.Method), statusColor(s.Status), s.Status, tview.Escape(u), render.FormatDuration(s.Time))
}

// overviewText mirrors the card heading: title, status, start time, duration
func overviewText(s har.EntrySummary) string {
	return fmt.Sprintf(
		"[::b]%s[::-]\n[yellow]Status:[white] [%s]%d %s[white]\n[yellow]Start Time:[white] %s\n[yellow]Duration:[white] %sms",
		tview.Escape(render.Title(s)),
		statusColor(s.Status), s.Status, tview.Escape(s.StatusText),
		tview.Escape(s.StartTime),
		render.FormatDuration(s.Time),
	)
}

func requestText(s har.EntrySummary) string {
	return sectionsText([][2]string{
		{"Request Headers:", render.RawBlock(s.Request.Headers)},
		{"Query String:", render.RawBlock(s.Request.QueryString)},
		{"Post Data:", render.RawBlock(s.Request.PostData)},
	})
}

func responseText(s har.EntrySummary) string {
	content := s.Response.Content
	details := fmt.Sprintf("Content Type: %s\nSize: %d bytes", content.MimeType(), content.Size())
	return sectionsText([][2]string{
		{"Response Headers:", render.RawBlock(s.Response.Headers)},
		{"Content:", details},
	})
}

func contentText(s har.EntrySummary, opts render.Options) string {
	content := s.Response.Content
	text := content.Text()
	if text == "" {
		return "[dim]No content[white]"
	}
	if opts.Markup {
		text = format.Reindent(text, content.MimeType())
	}
	return tview.Escape(text)
}

func rawText(s har.EntrySummary) string {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(s); err != nil {
		return fmt.Sprintf("[red]Error formatting JSON: %s[white]", tview.Escape(err.Error()))
	}
	return tview.Escape(strings.TrimRight(buf.String(), "\n"))
}

// sectionsText renders headed blocks; empty blocks show None
func sectionsText(sections [][2]string) string {
	var b strings.Builder
	for i, section := range sections {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("[yellow]" + section[0] + "[white]\n")
		if section[1] == "" {
			b.WriteString("[dim]None[white]")
			continue
		}
		b.WriteString(tview.Escape(section[1]))
	}
	return b.String()
}
