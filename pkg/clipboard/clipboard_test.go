package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withCommands(t *testing.T, commands [][]string) {
	t.Helper()
	saved := Commands
	Commands = commands
	t.Cleanup(func() { Commands = saved })
}

func TestCopyToClipboard(t *testing.T) {
	tests := []struct {
		name     string
		commands [][]string
		wantErr  bool
	}{
		{"first command succeeds", [][]string{{"true"}}, false},
		{"falls through to a working command", [][]string{{"false"}, {"true"}}, false},
		{"missing binaries", [][]string{{"definitely-not-a-clipboard-tool"}}, true},
		{"no commands", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withCommands(t, tt.commands)
			err := CopyToClipboard("hello")
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnavailable)
				return
			}
			assert.NoError(t, err)
		})
	}
}
