package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ImageList holds a product's images. Datasets encode the field either as a
// single URL string or as an ordered array of URLs; both decode to a list
// with the first element as the canonical thumbnail.
type ImageList []string

// UnmarshalJSON accepts a JSON string or an array of strings.
func (l *ImageList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*l = nil
		return nil
	}

	if trimmed[0] == '"' {
		var single string
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return err
		}
		*l = ImageList{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(trimmed, &many); err != nil {
		return err
	}
	*l = ImageList(many)
	return nil
}

// MarshalJSON emits a bare string for single-image lists to round-trip the
// dataset encoding.
func (l ImageList) MarshalJSON() ([]byte, error) {
	if len(l) == 1 {
		return json.Marshal(l[0])
	}
	return json.Marshal([]string(l))
}

// SpecValue is a single spec attribute value. String values are kept as-is
// (possibly multi-line); non-string values pass through as their raw JSON
// text, rendered unformatted.
type SpecValue struct {
	text string
	raw  bool
}

// StringSpec wraps a plain string value.
func StringSpec(s string) SpecValue {
	return SpecValue{text: s}
}

// UnmarshalJSON keeps strings decoded and everything else verbatim.
func (v *SpecValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = SpecValue{text: s}
		return nil
	}
	*v = SpecValue{text: string(trimmed), raw: true}
	return nil
}

// MarshalJSON re-emits raw values verbatim and strings quoted.
func (v SpecValue) MarshalJSON() ([]byte, error) {
	if v.raw {
		return []byte(v.text), nil
	}
	return json.Marshal(v.text)
}

// String returns the display text of the value.
func (v SpecValue) String() string { return v.text }

// Lines splits a multi-line string value into display lines. Raw values are
// a single line.
func (v SpecValue) Lines() []string {
	if v.raw || !strings.Contains(v.text, "\n") {
		return []string{v.text}
	}
	return strings.Split(v.text, "\n")
}

// Specs is an ordered label-to-value mapping. JSON key order is preserved on
// decode; comparison diff rows and spec-value search both depend on it.
type Specs struct {
	keys   []string
	values map[string]SpecValue
}

// NewSpecs builds an ordered spec mapping from alternating key/value pairs.
func NewSpecs(pairs ...any) Specs {
	if len(pairs)%2 != 0 {
		panic("domain.NewSpecs: odd number of arguments")
	}
	var s Specs
	for i := 0; i < len(pairs); i += 2 {
		key := pairs[i].(string)
		switch v := pairs[i+1].(type) {
		case string:
			s.Set(key, StringSpec(v))
		case SpecValue:
			s.Set(key, v)
		default:
			s.Set(key, SpecValue{text: fmt.Sprint(v), raw: true})
		}
	}
	return s
}

// Len returns the number of spec entries.
func (s Specs) Len() int { return len(s.keys) }

// Keys returns the labels in insertion order. The returned slice is shared;
// callers must not mutate it.
func (s Specs) Keys() []string { return s.keys }

// Get returns the value for a label.
func (s Specs) Get(key string) (SpecValue, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Set inserts or replaces a value, appending new labels at the end.
func (s *Specs) Set(key string, value SpecValue) {
	if s.values == nil {
		s.values = make(map[string]SpecValue)
	}
	if _, exists := s.values[key]; !exists {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// UnmarshalJSON decodes an object while recording key order via the token
// stream; map decoding would lose it.
func (s *Specs) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if string(trimmed) == "null" {
		*s = Specs{}
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("specs: expected object, got %v", tok)
	}

	out := Specs{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("specs: non-string key %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		var value SpecValue
		if err := value.UnmarshalJSON(raw); err != nil {
			return err
		}
		out.Set(key, value)
	}

	if _, err := dec.Token(); err != nil { // closing brace
		return err
	}

	*s = out
	return nil
}

// MarshalJSON emits the entries in insertion order.
func (s Specs) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		valueJSON, err := s.values[key].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(valueJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
