package canvas

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TableRow is one row of a table node. Rows are flexible key→string
// maps rather than a fixed schema, and remember the order keys appeared
// in the stored JSON so exported tables keep the author's column order.
type TableRow struct {
	keys   []string
	values map[string]string
}

// Row builds a TableRow from alternating key, value arguments.
func Row(pairs ...string) TableRow {
	var r TableRow
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Set(pairs[i], pairs[i+1])
	}
	return r
}

// Set adds or replaces a cell. New keys append to the column order.
func (r *TableRow) Set(key, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the cell value for key, or "" when absent.
func (r TableRow) Get(key string) string { return r.values[key] }

// Keys returns the column keys in authored order.
func (r TableRow) Keys() []string { return r.keys }

// Len returns the number of cells in the row.
func (r TableRow) Len() int { return len(r.keys) }

// UnmarshalJSON decodes an object while preserving its key order.
// Non-string values are kept as their raw JSON text.
func (r *TableRow) UnmarshalJSON(data []byte) error {
	*r = TableRow{}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("table row must be a JSON object")
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("table row key must be a string")
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			s = string(raw)
		}
		r.Set(key, s)
	}
	_, err = dec.Token()
	return err
}

// MarshalJSON encodes cells with keys in authored order.
func (r TableRow) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		b.Write(kb)
		b.WriteByte(':')
		vb, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		b.Write(vb)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}
