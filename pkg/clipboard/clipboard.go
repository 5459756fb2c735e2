// Package clipboard copies text to the system clipboard through whichever
// command-line utility is installed.
package clipboard

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrUnavailable is returned when no clipboard utility accepted the text
var ErrUnavailable = errors.New("no clipboard utility found")

// Commands are tried in order until one succeeds
var Commands = [][]string{
	{"xclip", "-selection", "clipboard"},
	{"xsel", "--clipboard", "--input"},
	{"wl-copy"},
	{"pbcopy"}, // macOS
	{"clip"},   // Windows
}

// CopyToClipboard copies text to the system clipboard
func CopyToClipboard(text string) error {
	var tried []string
	for _, cmdArgs := range Commands {
		if len(cmdArgs) == 0 {
			continue
		}
		cmd := exec.Command(cmdArgs[0], cmdArgs[1:]...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			return nil
		}
		tried = append(tried, cmdArgs[0])
	}
	return fmt.Errorf("%w (tried %s)", ErrUnavailable, strings.Join(tried, ", "))
}
