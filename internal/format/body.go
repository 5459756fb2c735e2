package format

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrNotJSON is returned by Indent for text that does not decode as JSON
var ErrNotJSON = errors.New("text is not JSON")

const indentUnit = "  "

// Indent decodes JSON text and writes the decoded value back with two-space
// indentation. Object members keep the order of their first appearance; a
// repeated member takes the last value. Number literals are kept as written.
func Indent(text string) (string, error) {
	data := bytes.TrimSpace([]byte(text))
	if !gjson.ValidBytes(data) {
		return "", ErrNotJSON
	}
	var b strings.Builder
	writeValue(&b, gjson.ParseBytes(data), 0)
	return b.String(), nil
}

// Body pretty-prints a response body when it is JSON and otherwise returns
// it unchanged. Bodies are often HTML or plain text, which is not an error.
func Body(text string) string {
	formatted, err := Indent(text)
	if err != nil {
		return text
	}
	return formatted
}

type member struct {
	key   string
	value gjson.Result
}

func writeValue(b *strings.Builder, r gjson.Result, depth int) {
	switch {
	case r.IsObject():
		writeObject(b, r, depth)
	case r.IsArray():
		writeArray(b, r, depth)
	case r.Type == gjson.String:
		b.WriteString(quote(r.String()))
	default:
		b.WriteString(r.Raw)
	}
}

func writeObject(b *strings.Builder, r gjson.Result, depth int) {
	var members []member
	positions := make(map[string]int)
	r.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if i, ok := positions[name]; ok {
			members[i].value = value
			return true
		}
		positions[name] = len(members)
		members = append(members, member{key: name, value: value})
		return true
	})

	if len(members) == 0 {
		b.WriteString("{}")
		return
	}
	b.WriteString("{\n")
	for i, m := range members {
		b.WriteString(strings.Repeat(indentUnit, depth+1))
		b.WriteString(quote(m.key))
		b.WriteString(": ")
		writeValue(b, m.value, depth+1)
		if i < len(members)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat(indentUnit, depth) + "}")
}

func writeArray(b *strings.Builder, r gjson.Result, depth int) {
	elements := r.Array()
	if len(elements) == 0 {
		b.WriteString("[]")
		return
	}
	b.WriteString("[\n")
	for i, element := range elements {
		b.WriteString(strings.Repeat(indentUnit, depth+1))
		writeValue(b, element, depth+1)
		if i < len(elements)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat(indentUnit, depth) + "]")
}

// quote encodes s as a JSON string, leaving <, > and & readable
func quote(s string) string {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(s); err != nil {
		return `""`
	}
	return strings.TrimRight(buf.String(), "\n")
}
