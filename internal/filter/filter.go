package filter

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/cnharrison/har-formatter/internal/har"
)

// maxBodySearchBytes bounds how much body text a search scans
const maxBodySearchBytes = 10000

// State holds the current filtering state
type State struct {
	FilterText     string
	ShowErrorsOnly bool
}

// NewState creates a filter state that matches everything
func NewState() *State {
	return &State{}
}

// Apply returns the indices of the summaries that pass the filter, in order
func (f *State) Apply(summaries []har.EntrySummary) []int {
	result := make([]int, 0, len(summaries))
	searchText := strings.ToLower(f.FilterText)

	for i, s := range summaries {
		if f.ShowErrorsOnly && !IsError(s.Status) {
			continue
		}
		if searchText != "" && !Matches(s, searchText) {
			continue
		}
		result = append(result, i)
	}
	return result
}

// Reset resets all filters to their default state
func (f *State) Reset() {
	f.FilterText = ""
	f.ShowErrorsOnly = false
}

// ToggleErrorsOnly toggles the errors-only filter
func (f *State) ToggleErrorsOnly() {
	f.ShowErrorsOnly = !f.ShowErrorsOnly
}

// SetTextFilter sets the text filter
func (f *State) SetTextFilter(text string) {
	f.FilterText = text
}

// IsError reports whether a status counts as failed; 0 means no response
func IsError(status int) bool {
	return status >= 400 || status == 0
}

// Matches reports whether a lower-cased search text occurs in the summary
func Matches(s har.EntrySummary, searchText string) bool {
	if u, err := url.Parse(s.URL); err == nil {
		if strings.Contains(strings.ToLower(u.Host), searchText) ||
			strings.Contains(strings.ToLower(u.Path), searchText) ||
			strings.Contains(strings.ToLower(u.RawQuery), searchText) {
			return true
		}
	} else if strings.Contains(strings.ToLower(s.URL), searchText) {
		return true
	}

	if strings.Contains(strings.ToLower(s.Method), searchText) ||
		strings.Contains(strings.ToLower(s.StatusText), searchText) ||
		strings.Contains(strconv.Itoa(s.Status), searchText) {
		return true
	}

	for _, raw := range []har.RawValue{s.Request.Headers, s.Response.Headers, s.Request.QueryString} {
		for _, pair := range raw.Pairs() {
			if strings.Contains(strings.ToLower(pair.Name), searchText) ||
				strings.Contains(strings.ToLower(pair.Value), searchText) {
				return true
			}
		}
	}

	content := s.Response.Content
	if strings.Contains(strings.ToLower(content.MimeType()), searchText) {
		return true
	}
	body := har.DecodeBase64(content.Text(), content.Encoding())
	if len(body) <= maxBodySearchBytes && strings.Contains(strings.ToLower(body), searchText) {
		return true
	}

	return false
}
