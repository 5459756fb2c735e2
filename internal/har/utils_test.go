package har

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestReadInput(t *testing.T) {
	dir := t.TempDir()
	harFile := filepath.Join(dir, "capture.har")
	require.NoError(t, os.WriteFile(harFile, []byte(`{"log":{"entries":[]}}`), 0o600))
	jsonFile := filepath.Join(dir, "capture.json")
	require.NoError(t, os.WriteFile(jsonFile, append([]byte{0xEF, 0xBB, 0xBF}, `{"log":{}}`...), 0o600))

	tests := []struct {
		name     string
		path     string
		stdin    string
		expected string
		wantErr  string
	}{
		{name: "har file", path: harFile, expected: `{"log":{"entries":[]}}`},
		{name: "other extension with byte order mark", path: jsonFile, expected: `{"log":{}}`},
		{name: "stdin when path is empty", stdin: "piped", expected: "piped"},
		{name: "stdin when path is dash", path: "-", stdin: "\xEF\xBB\xBFdashed", expected: "dashed"},
		{name: "missing file", path: filepath.Join(dir, "missing.har"), wantErr: "missing.har"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := ReadInput(tt.path, strings.NewReader(tt.stdin))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.ErrorIs(t, err, os.ErrNotExist)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, text)
		})
	}
}

func TestReadInput_StdinError(t *testing.T) {
	_, err := ReadInput("", failingReader{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading stdin")
}

func TestDecodeBase64(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		encoding string
		expected string
	}{
		{"base64 encoded", "aGVsbG8=", "base64", "hello"},
		{"not encoded", "aGVsbG8=", "", "aGVsbG8="},
		{"invalid base64 left alone", "%%%", "base64", "%%%"},
		{"empty", "", "base64", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DecodeBase64(tt.text, tt.encoding))
		})
	}
}
