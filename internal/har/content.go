package har

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

const textMember = "text"

// Member is one name/value pair of a JSON object, value kept verbatim
type Member struct {
	Name  string
	Value RawValue
}

// Content is the HAR response content object. Members are kept in document
// order so that everything besides the body text is reproduced exactly.
type Content struct {
	members []Member
}

// NewContent builds a content object from members in the given order. Later
// duplicates replace the value of the first occurrence.
func NewContent(members ...Member) Content {
	var c Content
	for _, m := range members {
		c.set(m.Name, m.Value.Clone())
	}
	return c
}

// UnmarshalJSON walks the object token by token to keep member order
func (c *Content) UnmarshalJSON(data []byte) error {
	c.members = nil
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	token, err := decoder.Token()
	if err != nil {
		return err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected opening brace for content object")
	}

	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return err
		}
		key, ok := token.(string)
		if !ok {
			return fmt.Errorf("expected member name in content object")
		}
		var value json.RawMessage
		if err := decoder.Decode(&value); err != nil {
			return err
		}
		c.set(key, RawValue(value).Clone())
	}
	return nil
}

// MarshalJSON writes the members in order
func (c Content) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range c.members {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(m.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		value, err := m.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML produces a block mapping in member order
func (c Content) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, m := range c.members {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Name}
		value, err := m.Value.MarshalYAML()
		if err != nil {
			return nil, err
		}
		valueNode, ok := value.(*yaml.Node)
		if !ok {
			valueNode = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
		}
		// multi-line bodies read better as literal blocks
		if m.Name == textMember && valueNode.Kind == yaml.ScalarNode && bytes.ContainsRune([]byte(valueNode.Value), '\n') {
			valueNode.Style = yaml.LiteralStyle
		}
		node.Content = append(node.Content, key, valueNode)
	}
	return node, nil
}

// Members returns a copy of the members in document order
func (c Content) Members() []Member {
	out := make([]Member, len(c.members))
	for i, m := range c.members {
		out[i] = Member{Name: m.Name, Value: m.Value.Clone()}
	}
	return out
}

// Get returns the raw value of a member
func (c Content) Get(name string) (RawValue, bool) {
	for _, m := range c.members {
		if m.Name == name {
			return m.Value, true
		}
	}
	return nil, false
}

// Text returns the body text. An absent or null member is the empty string;
// a value that is not a string is returned as its JSON text.
func (c Content) Text() string {
	raw, ok := c.Get(textMember)
	if !ok || raw.IsNull() {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}

// MimeType returns content.mimeType, or "" when absent or not a string
func (c Content) MimeType() string {
	return c.stringMember("mimeType")
}

// Encoding returns content.encoding, e.g. "base64"
func (c Content) Encoding() string {
	return c.stringMember("encoding")
}

// Size returns content.size, or 0 when absent or not a number
func (c Content) Size() int64 {
	raw, ok := c.Get("size")
	if !ok {
		return 0
	}
	size, err := strconv.ParseFloat(string(bytes.TrimSpace(raw)), 64)
	if err != nil {
		return 0
	}
	return int64(size)
}

// WithText returns a new content object with the text member replaced, or
// appended when the original had none. c is left untouched.
func (c Content) WithText(text string) Content {
	out := Content{members: c.Members()}
	out.set(textMember, quoteString(text))
	return out
}

// quoteString encodes s as a JSON string without escaping <, > and &
func quoteString(s string) RawValue {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(s); err != nil {
		return RawValue(`""`)
	}
	return RawValue(bytes.TrimRight(buf.Bytes(), "\n"))
}

func (c Content) stringMember(name string) string {
	raw, ok := c.Get(name)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func (c *Content) set(name string, value RawValue) {
	for i := range c.members {
		if c.members[i].Name == name {
			c.members[i].Value = value
			return
		}
	}
	c.members = append(c.members, Member{Name: name, Value: value})
}
