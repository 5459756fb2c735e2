package har

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cnharrison/har-formatter/internal/format"
)

// InvalidFormatMessage is the only failure text shown to users
const InvalidFormatMessage = "Invalid HAR format. Please check your input."

var (
	// ErrInvalidFormat is wrapped by every parse failure
	ErrInvalidFormat = errors.New("invalid HAR format")
	// ErrMalformedJSON means the input is not JSON at all
	ErrMalformedJSON = fmt.Errorf("%w: malformed JSON", ErrInvalidFormat)
	// ErrInvalidShape means the input is JSON but lacks a usable log.entries array
	ErrInvalidShape = fmt.Errorf("%w: missing log.entries", ErrInvalidFormat)
)

// Formatter turns HAR text into entry summaries
type Formatter struct {
	startTime *StartTimeFormatter
	body      func(string) string
}

// Option configures a Formatter
type Option func(*Formatter)

// WithStartTimeFormatter sets how startedDateTime is rendered
func WithStartTimeFormatter(stf *StartTimeFormatter) Option {
	return func(f *Formatter) {
		f.startTime = stf
	}
}

// NewFormatter creates a formatter using en-US dates in local time unless
// overridden
func NewFormatter(opts ...Option) *Formatter {
	f := &Formatter{
		startTime: NewStartTimeFormatter(DefaultLocale, nil),
		body:      format.Body,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format parses text as a HAR document and summarizes every entry in order.
// Either all entries are returned or an error wrapping ErrInvalidFormat.
func (f *Formatter) Format(text string) ([]EntrySummary, error) {
	entries, err := Decode([]byte(text))
	if err != nil {
		return nil, err
	}

	summaries := make([]EntrySummary, 0, len(entries))
	for _, entry := range entries {
		summaries = append(summaries, f.Summarize(entry))
	}
	return summaries, nil
}

// Summarize projects one entry. The result shares no memory with entry.
func (f *Formatter) Summarize(entry Entry) EntrySummary {
	content := entry.Response.Content
	return EntrySummary{
		URL:        entry.Request.URL,
		Method:     entry.Request.Method,
		Status:     entry.Response.Status,
		StatusText: entry.Response.StatusText,
		StartTime:  f.startTime.Format(entry.StartedDateTime),
		Time:       entry.Time,
		Request: RequestSummary{
			Headers:     entry.Request.Headers.Clone(),
			QueryString: entry.Request.QueryString.Clone(),
			PostData:    entry.Request.PostData.Clone(),
		},
		Response: ResponseSummary{
			Headers: entry.Response.Headers.Clone(),
			Content: content.WithText(f.body(content.Text())),
		},
	}
}

// Decode validates the document shape and decodes log.entries
func Decode(data []byte) ([]Entry, error) {
	if !json.Valid(data) {
		return nil, ErrMalformedJSON
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShape, err)
	}
	if doc.Log == nil {
		return nil, fmt.Errorf("%w: no log object", ErrInvalidShape)
	}
	if firstByte(doc.Log.Entries) != '[' {
		return nil, fmt.Errorf("%w: log.entries is not an array", ErrInvalidShape)
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(doc.Log.Entries, &raws); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShape, err)
	}

	entries := make([]Entry, len(raws))
	for i, raw := range raws {
		if firstByte(raw) != '{' {
			return nil, fmt.Errorf("%w: entry %d is not an object", ErrInvalidShape, i)
		}
		if err := json.Unmarshal(raw, &entries[i]); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidShape, i, err)
		}
	}
	return entries, nil
}

// Format summarizes text with the default formatter
func Format(text string) ([]EntrySummary, error) {
	return NewFormatter().Format(text)
}

func firstByte(data []byte) byte {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
