package har

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const singleEntryHAR = `{"log":{"entries":[{"request":{"url":"http://a.test","method":"GET"},"response":{"status":200,"statusText":"OK","content":{"text":"{\"a\":1}"}},"startedDateTime":"2024-01-01T00:00:00Z","time":12}]}}`

func utcFormatter() *Formatter {
	return NewFormatter(WithStartTimeFormatter(NewStartTimeFormatter("en-US", time.UTC)))
}

func TestFormatter_Format_SingleEntry(t *testing.T) {
	summaries, err := utcFormatter().Format(singleEntryHAR)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, "http://a.test", s.URL)
	assert.Equal(t, "GET", s.Method)
	assert.Equal(t, 200, s.Status)
	assert.Equal(t, "OK", s.StatusText)
	assert.Equal(t, 12.0, s.Time)
	assert.Equal(t, "1/1/2024, 12:00:00 AM", s.StartTime)
	assert.Equal(t, "{\n  \"a\": 1\n}", s.Response.Content.Text())
}

func TestFormatter_Format_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"bare words", `not json`, ErrMalformedJSON},
		{"empty input", ``, ErrMalformedJSON},
		{"truncated document", `{"log":{"entries":[`, ErrMalformedJSON},
		{"json string", `"not json"`, ErrInvalidShape},
		{"json number", `42`, ErrInvalidShape},
		{"json null", `null`, ErrInvalidShape},
		{"top-level array", `[]`, ErrInvalidShape},
		{"no entries", `{"log":{}}`, ErrInvalidShape},
		{"no log", `{"entries":[]}`, ErrInvalidShape},
		{"log is null", `{"log":null}`, ErrInvalidShape},
		{"log is a string", `{"log":"x"}`, ErrInvalidShape},
		{"entries is null", `{"log":{"entries":null}}`, ErrInvalidShape},
		{"entries is an object", `{"log":{"entries":{}}}`, ErrInvalidShape},
		{"entry is null", `{"log":{"entries":[null]}}`, ErrInvalidShape},
		{"entry is a number", `{"log":{"entries":[{}, 3]}}`, ErrInvalidShape},
		{"status is a string", `{"log":{"entries":[{"response":{"status":"200"}}]}}`, ErrInvalidShape},
		{"content is a string", `{"log":{"entries":[{"response":{"content":"abc"}}]}}`, ErrInvalidShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summaries, err := Format(tt.input)
			require.Error(t, err)
			assert.Nil(t, summaries)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrInvalidFormat)
		})
	}
}

func TestFormatter_Format_PreservesLengthAndOrder(t *testing.T) {
	var entries []string
	for i := 0; i < 25; i++ {
		entries = append(entries, fmt.Sprintf(`{"request":{"url":"http://a.test/%d","method":"GET"}}`, i))
	}
	// duplicates must survive as well
	entries = append(entries, entries[0])
	input := `{"log":{"version":"1.2","entries":[` + strings.Join(entries, ",") + `]}}`

	summaries, err := Format(input)
	require.NoError(t, err)
	require.Len(t, summaries, 26)
	for i := 0; i < 25; i++ {
		assert.Equal(t, fmt.Sprintf("http://a.test/%d", i), summaries[i].URL)
	}
	assert.Equal(t, "http://a.test/0", summaries[25].URL)
}

func TestFormatter_Format_EmptyEntries(t *testing.T) {
	summaries, err := Format(`{"log":{"entries":[]}}`)
	require.NoError(t, err)
	assert.NotNil(t, summaries)
	assert.Empty(t, summaries)
}

func TestFormatter_Format_MissingMembersDefault(t *testing.T) {
	summaries, err := utcFormatter().Format(`{"log":{"entries":[{}]}}`)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Empty(t, s.URL)
	assert.Empty(t, s.Method)
	assert.Zero(t, s.Status)
	assert.Zero(t, s.Time)
	assert.Equal(t, InvalidDate, s.StartTime)
	assert.Empty(t, s.Request.Headers)
	assert.Empty(t, s.Response.Headers)
	assert.Equal(t, "", s.Response.Content.Text())

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"headers"`)
	assert.Contains(t, string(data), `"content":{"text":""}`)
}

func TestFormatter_Format_PassThroughMembers(t *testing.T) {
	input := `{"log":{"entries":[{
		"request":{"method":"POST","url":"http://a.test/api?q=1",
			"headers":[{"name":"Accept","value":"*/*"}],
			"queryString":[{"name":"q","value":"1"}],
			"postData":{"mimeType":"application/json","text":"{\"x\":true}"}},
		"response":{"status":201,"statusText":"Created",
			"headers":[{"name":"Content-Type","value":"text/html"}],
			"content":{"size":17,"mimeType":"text/html","text":"<p>not json</p>","compression":0}}
	}]}}`

	summaries, err := Format(input)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	s := summaries[0]

	assert.JSONEq(t, `[{"name":"Accept","value":"*/*"}]`, string(s.Request.Headers))
	assert.JSONEq(t, `[{"name":"q","value":"1"}]`, string(s.Request.QueryString))
	assert.JSONEq(t, `{"mimeType":"application/json","text":"{\"x\":true}"}`, string(s.Request.PostData))
	assert.JSONEq(t, `[{"name":"Content-Type","value":"text/html"}]`, string(s.Response.Headers))

	// non-JSON body is untouched and other members keep their order
	assert.Equal(t, "<p>not json</p>", s.Response.Content.Text())
	content, err := s.Response.Content.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"size":17,"mimeType":"text/html","text":"<p>not json</p>","compression":0}`, string(content))
	assert.Equal(t, "text/html", s.Response.Content.MimeType())
	assert.Equal(t, int64(17), s.Response.Content.Size())
}

func TestFormatter_Format_ExplicitNullsAreKept(t *testing.T) {
	summaries, err := Format(`{"log":{"entries":[{"request":{"headers":null},"response":{"content":{"text":null}}}]}}`)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	assert.Equal(t, "null", string(summaries[0].Request.Headers))
	assert.Equal(t, "", summaries[0].Response.Content.Text())
}

func TestFormatter_Summarize_DoesNotAlias(t *testing.T) {
	entries, err := Decode([]byte(`{"log":{"entries":[{"request":{"headers":[{"name":"a","value":"b"}]},"response":{"content":{"mimeType":"x","text":"t"}}}]}}`))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	summary := utcFormatter().Summarize(entries[0])

	// scribble over the decoded entry
	for i := range entries[0].Request.Headers {
		entries[0].Request.Headers[i] = ' '
	}
	entries[0].Response.Content = NewContent(Member{Name: "mimeType", Value: RawValue(`"changed"`)})

	assert.JSONEq(t, `[{"name":"a","value":"b"}]`, string(summary.Request.Headers))
	assert.Equal(t, "x", summary.Response.Content.MimeType())
	assert.Equal(t, "t", summary.Response.Content.Text())
}

func TestFormatter_Format_Idempotent(t *testing.T) {
	first, err := Format(singleEntryHAR)
	require.NoError(t, err)
	second, err := Format(singleEntryHAR)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
