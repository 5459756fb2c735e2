package har

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/tidwall/pretty"
	"gopkg.in/yaml.v3"
)

// RawValue holds the verbatim JSON text of a HAR member that is passed
// through without interpretation. An absent member is empty; an explicit
// null is the four bytes "null".
type RawValue []byte

// MarshalJSON returns the held JSON text, or null when empty
func (r RawValue) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return r, nil
}

// UnmarshalJSON copies the member's JSON text
func (r *RawValue) UnmarshalJSON(data []byte) error {
	*r = append((*r)[:0], data...)
	return nil
}

// MarshalYAML converts the JSON text into a YAML node so member order survives
func (r RawValue) MarshalYAML() (interface{}, error) {
	if len(r) == 0 {
		return nil, nil
	}
	if !json.Valid(r) {
		return nil, errors.New("raw value is not valid JSON")
	}
	// JSON is valid YAML once tabs are gone and every colon is followed by a space
	var doc yaml.Node
	if err := yaml.Unmarshal(pretty.Pretty(r), &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	node := doc.Content[0]
	plainStyle(node)
	return node, nil
}

// IsNull reports whether the member was absent or explicitly null
func (r RawValue) IsNull() bool {
	trimmed := bytes.TrimSpace(r)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// Clone returns a copy that does not share memory with r
func (r RawValue) Clone() RawValue {
	if r == nil {
		return nil
	}
	return append(RawValue(nil), r...)
}

// NameValue is one element of a HAR headers or queryString list
type NameValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Pairs decodes a HAR name/value list. Anything else yields nil.
func (r RawValue) Pairs() []NameValue {
	if r.IsNull() {
		return nil
	}
	var pairs []NameValue
	if err := json.Unmarshal(r, &pairs); err != nil {
		return nil
	}
	return pairs
}

// plainStyle drops the JSON layout from a node tree: collections become block
// style and strings lose their quotes. The encoder re-quotes strings that
// would otherwise read back as another type.
func plainStyle(n *yaml.Node) {
	n.Style &^= yaml.FlowStyle
	if n.Kind == yaml.ScalarNode && n.Tag == "!!str" {
		n.Style &^= yaml.DoubleQuotedStyle
	}
	for _, child := range n.Content {
		plainStyle(child)
	}
}

// Request is the subset of a HAR request consumed by the formatter
type Request struct {
	Method      string   `json:"method"`
	URL         string   `json:"url"`
	Headers     RawValue `json:"headers"`
	QueryString RawValue `json:"queryString"`
	PostData    RawValue `json:"postData"`
}

// Response is the subset of a HAR response consumed by the formatter
type Response struct {
	Status     int      `json:"status"`
	StatusText string   `json:"statusText"`
	Headers    RawValue `json:"headers"`
	Content    Content  `json:"content"`
}

// Entry represents a single HTTP transaction in a HAR file. Members that are
// missing from the document keep their zero value.
type Entry struct {
	StartedDateTime string   `json:"startedDateTime"`
	Time            float64  `json:"time"`
	Request         Request  `json:"request"`
	Response        Response `json:"response"`
}

// document mirrors only the path down to log.entries; everything else is ignored
type document struct {
	Log *logObject `json:"log"`
}

type logObject struct {
	Entries RawValue `json:"entries"`
}

// RequestSummary carries the request members through unchanged
type RequestSummary struct {
	Headers     RawValue `json:"headers,omitempty" yaml:"headers,omitempty"`
	QueryString RawValue `json:"queryString,omitempty" yaml:"queryString,omitempty"`
	PostData    RawValue `json:"postData,omitempty" yaml:"postData,omitempty"`
}

// PostDataText returns postData.mimeType and postData.text, empty when absent
func (r RequestSummary) PostDataText() (mimeType, text string) {
	if r.PostData.IsNull() {
		return "", ""
	}
	var postData struct {
		MimeType string `json:"mimeType"`
		Text     string `json:"text"`
	}
	if err := json.Unmarshal(r.PostData, &postData); err != nil {
		return "", ""
	}
	return postData.MimeType, postData.Text
}

// ResponseSummary carries the response headers through and holds the
// content object with its text pretty-printed
type ResponseSummary struct {
	Headers RawValue `json:"headers,omitempty" yaml:"headers,omitempty"`
	Content Content  `json:"content" yaml:"content"`
}

// EntrySummary is the display-ready projection of one HAR entry
type EntrySummary struct {
	URL        string          `json:"url" yaml:"url"`
	Method     string          `json:"method" yaml:"method"`
	Status     int             `json:"status" yaml:"status"`
	StatusText string          `json:"statusText" yaml:"statusText"`
	StartTime  string          `json:"startTime" yaml:"startTime"`
	Time       float64         `json:"time" yaml:"time"`
	Request    RequestSummary  `json:"request" yaml:"request"`
	Response   ResponseSummary `json:"response" yaml:"response"`
}
