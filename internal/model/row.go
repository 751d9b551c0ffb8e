package model

import (
	"bytes"
	"encoding/json"
	"errors"
)

var ErrRowNotObject = errors.New("row payload must be a JSON object")

// Field is one column/value pair of a RowPayload.
type Field struct {
	Key   string
	Value any
}

// RowPayload is a JSON object decoded with its key order intact.
// Keys and values are paired positionally with SQL placeholders, so the
// order produced by Keys and Values must always agree.
type RowPayload []Field

func (p *RowPayload) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*p = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return ErrRowNotObject
	}

	fields := RowPayload{}
	index := map[string]int{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		value, err := decodeValue(raw)
		if err != nil {
			return err
		}

		// a repeated key keeps its first position and its last value
		if i, seen := index[key]; seen {
			fields[i].Value = value
			continue
		}
		index[key] = len(fields)
		fields = append(fields, Field{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*p = fields
	return nil
}

func (p RowPayload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (p RowPayload) Keys() []string {
	keys := make([]string, len(p))
	for i, f := range p {
		keys[i] = f.Key
	}
	return keys
}

func (p RowPayload) Values() []any {
	values := make([]any, len(p))
	for i, f := range p {
		values[i] = f.Value
	}
	return values
}

// decodeValue turns one JSON value into something database/sql can bind.
// Numbers that fit int64 become int64; any other number is bound as its
// literal text so the database parses it exactly. Nested objects or
// arrays are passed through as compact JSON text.
func decodeValue(raw json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n, nil
		}
		return x.String(), nil
	case map[string]any, []any:
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return nil, err
		}
		return buf.String(), nil
	default:
		return v, nil
	}
}
