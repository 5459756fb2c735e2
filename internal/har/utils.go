package har

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Extension is the file extension HAR exports normally carry
const Extension = ".har"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadInput reads HAR text from filePath, or from stdin when filePath is ""
// or "-". The extension is advisory: any file is accepted.
func ReadInput(filePath string, stdin io.Reader) (string, error) {
	var data []byte
	var err error

	if filePath == "" || filePath == "-" {
		data, err = io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
	} else {
		if !strings.EqualFold(filepath.Ext(filePath), Extension) {
			logrus.WithField("file", filePath).Debug("input does not have a .har extension")
		}
		data, err = os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", filePath, err)
		}
	}

	return string(bytes.TrimPrefix(data, utf8BOM)), nil
}

// DecodeBase64 decodes base64 content if encoded
func DecodeBase64(text, encoding string) string {
	if encoding == "base64" && text != "" {
		if decoded, err := base64.StdEncoding.DecodeString(text); err == nil {
			return string(decoded)
		}
	}
	return text
}
