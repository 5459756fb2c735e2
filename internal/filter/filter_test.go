package filter

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cnharrison/har-formatter/internal/har"
)

func createTestSummary(method, url string, status int, mimeType string) har.EntrySummary {
	summary := har.EntrySummary{
		Method: method,
		URL:    url,
		Status: status,
		Time:   100.0,
	}
	if mimeType != "" {
		summary.Response.Headers = har.RawValue(fmt.Sprintf(`[{"name":"Content-Type","value":%q}]`, mimeType))
		summary.Response.Content = har.NewContent(har.Member{Name: "mimeType", Value: har.RawValue(fmt.Sprintf("%q", mimeType))})
	}
	return summary
}

func TestState_Apply(t *testing.T) {
	summaries := []har.EntrySummary{
		createTestSummary("GET", "https://api.example.com/users", 200, "application/json"),
		createTestSummary("POST", "https://api.example.com/posts", 201, "application/json"),
		createTestSummary("GET", "https://cdn.example.com/image.jpg", 200, "image/jpeg"),
		createTestSummary("GET", "https://api.example.com/error", 500, "text/html"),
		createTestSummary("PUT", "https://other.com/update", 204, ""),
	}

	tests := []struct {
		name     string
		setup    func(*State)
		expected []int
	}{
		{
			name:     "no filters",
			setup:    func(*State) {},
			expected: []int{0, 1, 2, 3, 4},
		},
		{
			name: "text filter by host",
			setup: func(fs *State) {
				fs.SetTextFilter("api.example.com")
			},
			expected: []int{0, 1, 3},
		},
		{
			name: "text filter by path",
			setup: func(fs *State) {
				fs.SetTextFilter("users")
			},
			expected: []int{0},
		},
		{
			name: "method is case insensitive",
			setup: func(fs *State) {
				fs.SetTextFilter("put")
			},
			expected: []int{4},
		},
		{
			name: "mime type",
			setup: func(fs *State) {
				fs.SetTextFilter("JPEG")
			},
			expected: []int{2},
		},
		{
			name: "status code",
			setup: func(fs *State) {
				fs.SetTextFilter("500")
			},
			expected: []int{3},
		},
		{
			name: "header name",
			setup: func(fs *State) {
				fs.SetTextFilter("content-type")
			},
			expected: []int{0, 1, 2, 3},
		},
		{
			name: "errors only",
			setup: func(fs *State) {
				fs.ToggleErrorsOnly()
			},
			expected: []int{3},
		},
		{
			name: "errors only combined with text",
			setup: func(fs *State) {
				fs.ToggleErrorsOnly()
				fs.SetTextFilter("users")
			},
			expected: []int{},
		},
		{
			name: "no match",
			setup: func(fs *State) {
				fs.SetTextFilter("nomatch")
			},
			expected: []int{},
		},
		{
			name: "reset clears everything",
			setup: func(fs *State) {
				fs.ToggleErrorsOnly()
				fs.SetTextFilter("nomatch")
				fs.Reset()
			},
			expected: []int{0, 1, 2, 3, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := NewState()
			tt.setup(fs)
			assert.Equal(t, tt.expected, fs.Apply(summaries))
		})
	}
}

func TestState_ApplyEmpty(t *testing.T) {
	got := NewState().Apply(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMatches(t *testing.T) {
	encoded := createTestSummary("GET", "https://example.com/", 200, "text/plain")
	encoded.Response.Content = encoded.Response.Content.
		WithText("aGVsbG8gd29ybGQ=")
	encoded.Response.Content = har.NewContent(append(encoded.Response.Content.Members(),
		har.Member{Name: "encoding", Value: har.RawValue(`"base64"`)})...)

	large := createTestSummary("GET", "https://example.com/", 200, "text/plain")
	large.Response.Content = large.Response.Content.WithText(strings.Repeat("a", 10001) + "needle")

	query := createTestSummary("GET", "https://example.com/search", 200, "")
	query.Request.QueryString = har.RawValue(`[{"name":"term","value":"widgets"}]`)

	badURL := createTestSummary("GET", "http://[::1", 0, "")

	tests := []struct {
		name     string
		summary  har.EntrySummary
		search   string
		expected bool
	}{
		{"decoded base64 body", encoded, "world", true},
		{"oversized body skipped", large, "needle", false},
		{"query string value", query, "widgets", true},
		{"query string name", query, "term", true},
		{"unparsable url searched raw", badURL, "[::1", true},
		{"status text", har.EntrySummary{StatusText: "Not Modified"}, "modified", true},
		{"headers that are not a list", har.EntrySummary{Request: har.RequestSummary{Headers: har.RawValue(`{"x":"y"}`)}}, "x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Matches(tt.summary, tt.search))
		})
	}
}

func TestIsError(t *testing.T) {
	tests := []struct {
		status   int
		expected bool
	}{
		{0, true},
		{200, false},
		{304, false},
		{399, false},
		{400, true},
		{503, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.expected, IsError(tt.status))
		})
	}
}
