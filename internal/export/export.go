// Package export turns one entry into text meant to leave the viewer: a curl
// command that replays the request and a markdown report for support tickets.
package export

import (
	"fmt"
	"strings"

	"github.com/cnharrison/har-formatter/internal/har"
)

// GenerateCurlCommand generates a curl command from an entry summary
func GenerateCurlCommand(s har.EntrySummary) string {
	method := s.Method
	if method == "" {
		method = "GET"
	}

	var cmd strings.Builder
	cmd.WriteString(fmt.Sprintf("curl -X %s %s", method, shellQuote(s.URL)))

	for _, header := range s.Request.Headers.Pairs() {
		// curl derives Host itself; HTTP/2 pseudo headers cannot be sent
		if strings.EqualFold(header.Name, "host") || strings.HasPrefix(header.Name, ":") {
			continue
		}
		cmd.WriteString(" -H " + shellQuote(header.Name+": "+header.Value))
	}

	if _, text := s.Request.PostDataText(); text != "" {
		cmd.WriteString(" -d " + shellQuote(text))
	}

	return cmd.String()
}

// shellQuote wraps s in single quotes for POSIX shells
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
