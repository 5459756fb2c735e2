// Package render writes entry summaries for people (text cards) and for
// other programs (JSON, YAML).
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"gopkg.in/yaml.v3"

	"github.com/cnharrison/har-formatter/internal/format"
	"github.com/cnharrison/har-formatter/internal/har"
)

// Output modes accepted by NewPrinter
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

const (
	chromaFormatter = "terminal256"
	chromaStyle     = "monokai"
)

// Options adjust the text cards
type Options struct {
	// Markup reindents HTML and XML bodies
	Markup bool
	// Color highlights JSON blocks with ANSI escapes
	Color bool
}

// Printer writes summaries in one output mode
type Printer struct {
	mode   string
	opts   Options
	writer io.Writer
}

// NewPrinter returns a printer for mode, or an error for an unknown mode
func NewPrinter(w io.Writer, mode string, opts Options) (*Printer, error) {
	if mode == "" {
		mode = OutputText
	}
	switch mode {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return nil, fmt.Errorf("unknown output format %q (want text, json or yaml)", mode)
	}
	return &Printer{mode: mode, opts: opts, writer: w}, nil
}

// Print writes all summaries
func (p *Printer) Print(summaries []har.EntrySummary) error {
	switch p.mode {
	case OutputJSON:
		return p.printJSON(summaries)
	case OutputYAML:
		return p.printYAML(summaries)
	default:
		return p.printText(summaries)
	}
}

func (p *Printer) printJSON(summaries []har.EntrySummary) error {
	if summaries == nil {
		summaries = []har.EntrySummary{}
	}
	encoder := json.NewEncoder(p.writer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	return encoder.Encode(summaries)
}

func (p *Printer) printYAML(summaries []har.EntrySummary) error {
	if summaries == nil {
		summaries = []har.EntrySummary{}
	}
	encoder := yaml.NewEncoder(p.writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(summaries); err != nil {
		return err
	}
	return encoder.Close()
}

func (p *Printer) printText(summaries []har.EntrySummary) error {
	for i, summary := range summaries {
		if i > 0 {
			if _, err := io.WriteString(p.writer, "\n"); err != nil {
				return err
			}
		}
		if err := p.writeCard(summary); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) writeCard(s har.EntrySummary) error {
	var card strings.Builder
	card.WriteString(Title(s) + "\n")
	card.WriteString(fmt.Sprintf("Status: %d %s\n", s.Status, s.StatusText))
	card.WriteString(fmt.Sprintf("Start Time: %s\n", s.StartTime))
	card.WriteString(fmt.Sprintf("Duration: %sms\n", FormatDuration(s.Time)))
	if _, err := io.WriteString(p.writer, card.String()); err != nil {
		return err
	}

	sections := []struct {
		heading string
		body    string
		json    bool
	}{
		{"Request Headers:", RawBlock(s.Request.Headers), true},
		{"Response Headers:", RawBlock(s.Response.Headers), true},
		{"Response Content:", p.contentBody(s.Response.Content), false},
	}
	for _, section := range sections {
		if _, err := fmt.Fprintf(p.writer, "\n%s\n", section.heading); err != nil {
			return err
		}
		if err := p.writeBlock(section.body, section.json); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) contentBody(content har.Content) string {
	text := content.Text()
	if p.opts.Markup {
		text = format.Reindent(text, content.MimeType())
	}
	return text
}

func (p *Printer) writeBlock(body string, isJSON bool) error {
	if body == "" {
		return nil
	}
	if p.opts.Color && (isJSON || format.Classify("", body) == format.JSON) {
		if err := quick.Highlight(p.writer, body, "json", chromaFormatter, chromaStyle); err == nil {
			_, err = io.WriteString(p.writer, "\n")
			return err
		}
	}
	_, err := io.WriteString(p.writer, body+"\n")
	return err
}

// Title is the card heading, "METHOD URL"
func Title(s har.EntrySummary) string {
	return strings.TrimSpace(s.Method + " " + s.URL)
}

// FormatDuration prints milliseconds the shortest way, 12 or 12.5
func FormatDuration(ms float64) string {
	return strconv.FormatFloat(ms, 'f', -1, 64)
}

// RawBlock pretty-prints a passed-through member; absent members render empty
func RawBlock(raw har.RawValue) string {
	if len(raw) == 0 {
		return ""
	}
	return format.Body(string(raw))
}
