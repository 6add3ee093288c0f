package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Record is one extracted listing: field name to value, in the order the
// fields were first set. Values are string, json.Number, bool, nil or
// json.RawMessage (nested object/array).
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord creates an empty record
func NewRecord() Record {
	return Record{values: make(map[string]any)}
}

// RecordOf builds a record from alternating key/value pairs; handy in tests and fixtures
func RecordOf(pairs ...any) Record {
	r := NewRecord()
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Set(fmt.Sprint(pairs[i]), pairs[i+1])
	}
	return r
}

// RecordFromJSON converts a parsed JSON object into a record, keeping key order.
// ok is false when the value is not an object.
func RecordFromJSON(obj gjson.Result) (Record, bool) {
	if !obj.IsObject() {
		return Record{}, false
	}

	r := NewRecord()
	obj.ForEach(func(key, value gjson.Result) bool {
		r.Set(key.String(), valueFromJSON(value))
		return true
	})
	return r, true
}

func valueFromJSON(v gjson.Result) any {
	switch v.Type {
	case gjson.String:
		return v.String()
	case gjson.Number:
		return json.Number(v.Raw)
	case gjson.True:
		return true
	case gjson.False:
		return false
	case gjson.Null:
		return nil
	default:
		return json.RawMessage(v.Raw)
	}
}

// Set assigns a value, appending the key if it is new
func (r *Record) Set(key string, value any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value stored under key
func (r Record) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Has reports whether the record carries key
func (r Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Keys returns field names in insertion order
func (r Record) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Len returns the number of fields
func (r Record) Len() int {
	return len(r.keys)
}

// Text renders a field as plain text for tabular exports. Missing and null
// values render as the empty string.
func (r Record) Text(key string) string {
	return ValueText(r.values[key])
}

// ValueText renders a record value as plain text
func ValueText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		// spreadsheet tools read these as booleans
		if val {
			return "True"
		}
		return "False"
	case json.RawMessage:
		var buf bytes.Buffer
		if err := json.Compact(&buf, val); err != nil {
			return string(val)
		}
		return buf.String()
	default:
		return fmt.Sprint(val)
	}
}

// Map returns an unordered copy of the record
func (r Record) Map() map[string]any {
	m := make(map[string]any, len(r.keys))
	for _, k := range r.keys {
		m[k] = r.values[k]
	}
	return m
}

// MarshalJSON writes the record as an object with keys in insertion order
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := marshalNoEscape(r.values[k])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		buf.Write(val)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object, keeping its key order
func (r *Record) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid record JSON")
	}

	rec, ok := RecordFromJSON(gjson.ParseBytes(data))
	if !ok {
		return fmt.Errorf("record JSON must be an object")
	}
	*r = rec
	return nil
}

// marshalNoEscape marshals without HTML escaping so "<", ">" and "&" survive exports
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
