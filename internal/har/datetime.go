package har

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// InvalidDate is shown when startedDateTime cannot be parsed
const InvalidDate = "Invalid Date"

// DefaultLocale is used when no locale is configured or it cannot be parsed
const DefaultLocale = "en-US"

// Supported time formats for HAR datetime parsing, in order of preference
var supportedTimeFormats = []string{
	"2006-01-02T15:04:05.000Z",      // HAR standard format with milliseconds
	time.RFC3339Nano,                // RFC3339 with nanoseconds
	time.RFC3339,                    // RFC3339 standard
	"2006-01-02T15:04:05Z",          // HAR format without milliseconds
	"2006-01-02T15:04:05.000-07:00", // HAR with timezone offset
	"2006-01-02T15:04:05-07:00",     // RFC3339 with timezone offset
	"2006-01-02 15:04:05Z07:00",     // space separator with zone
	"2006-01-02",                    // date only, midnight UTC
}

// Timestamps without a zone are wall-clock times in the display location
var localTimeFormats = []string{
	"2006-01-02T15:04:05", // fractional seconds are accepted too
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// ParseHARDateTime robustly parses HAR datetime strings with multiple format support
func ParseHARDateTime(dateTime string) (time.Time, error) {
	for _, format := range supportedTimeFormats {
		if t, err := time.Parse(format, dateTime); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse datetime: %s", dateTime)
}

// ParseHARDateTimeIn parses like ParseHARDateTime and also accepts timestamps
// without a zone, reading them as wall-clock times in loc
func ParseHARDateTimeIn(dateTime string, loc *time.Location) (time.Time, error) {
	if t, err := ParseHARDateTime(dateTime); err == nil {
		return t, nil
	}
	for _, format := range localTimeFormats {
		if t, err := time.ParseInLocation(format, dateTime, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse datetime: %s", dateTime)
}

// localeLayouts pairs the supported locales with their date/time layouts.
// The first entry is the fallback for unmatched tags.
var localeLayouts = []struct {
	tag    language.Tag
	layout string
}{
	{language.AmericanEnglish, "1/2/2006, 3:04:05 PM"},
	{language.BritishEnglish, "02/01/2006, 15:04:05"},
	{language.German, "2.1.2006, 15:04:05"},
	{language.French, "02/01/2006 15:04:05"},
	{language.Spanish, "2/1/2006, 15:04:05"},
	{language.Japanese, "2006/1/2 15:04:05"},
	{language.Chinese, "2006/1/2 15:04:05"},
	{language.Und, "2006-01-02 15:04:05"},
}

var localeMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(localeLayouts))
	for i, l := range localeLayouts {
		tags[i] = l.tag
	}
	return language.NewMatcher(tags)
}()

// StartTimeFormatter renders startedDateTime values for display
type StartTimeFormatter struct {
	layout   string
	location *time.Location
}

// NewStartTimeFormatter picks the layout closest to locale. A nil location
// means local time.
func NewStartTimeFormatter(locale string, location *time.Location) *StartTimeFormatter {
	if location == nil {
		location = time.Local
	}
	return &StartTimeFormatter{
		layout:   LayoutForLocale(locale),
		location: location,
	}
}

// LayoutForLocale returns the time layout used for a BCP 47 locale tag
func LayoutForLocale(locale string) string {
	if strings.TrimSpace(locale) == "" {
		return localeLayouts[0].layout
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return localeLayouts[0].layout
	}
	_, index, confidence := localeMatcher.Match(tag)
	if confidence == language.No {
		return localeLayouts[0].layout
	}
	return localeLayouts[index].layout
}

// Format converts a HAR timestamp, returning InvalidDate when it does not parse
func (s *StartTimeFormatter) Format(dateTime string) string {
	t, err := ParseHARDateTimeIn(dateTime, s.location)
	if err != nil {
		return InvalidDate
	}
	return t.In(s.location).Format(s.layout)
}
