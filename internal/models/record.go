package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Record is a single extracted BOM line item: a flat mapping of field name
// to scalar value. Field order is preserved from the source document so the
// rendered column layout matches what the extraction produced. Standard Go
// maps do not keep insertion order, hence the explicit field slice.
type Record struct {
	fields []Field
	index  map[string]int
}

// Field is one key/value pair within a Record.
type Field struct {
	Key   string
	Value any
}

// NewRecord builds a record from fields in order. Duplicate keys keep the
// last value but the original position.
func NewRecord(fields ...Field) Record {
	var r Record
	for _, f := range fields {
		r.Set(f.Key, f.Value)
	}
	return r
}

// Set adds or replaces a field. New keys are appended at the end.
func (r *Record) Set(key string, value any) {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if i, ok := r.index[key]; ok {
		r.fields[i].Value = value
		return
	}
	r.index[key] = len(r.fields)
	r.fields = append(r.fields, Field{Key: key, Value: value})
}

// Get returns the value for key and whether the key is present.
func (r *Record) Get(key string) (any, bool) {
	if r.index == nil {
		return nil, false
	}
	i, ok := r.index[key]
	if !ok {
		return nil, false
	}
	return r.fields[i].Value, true
}

// Keys returns the field names in insertion order.
func (r *Record) Keys() []string {
	keys := make([]string, len(r.fields))
	for i, f := range r.fields {
		keys[i] = f.Key
	}
	return keys
}

// Fields returns the ordered key/value pairs.
func (r *Record) Fields() []Field {
	return r.fields
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.fields)
}

// MarshalJSON writes the record as a JSON object with fields in order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("marshaling field %q: %w", f.Key, err)
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, preserving the key order in which the
// fields appear on the wire.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("record must be a JSON object, got %v", tok)
	}

	r.fields = nil
	r.index = nil
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected key token %v", keyTok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("decoding field %q: %w", key, err)
		}
		r.Set(key, normalizeJSONValue(value))
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// EncodeMsgpack implements msgpack.CustomEncoder. The record is written as a
// map with entries in field order.
func (r Record) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeMapLen(len(r.fields)); err != nil {
		return err
	}
	for _, f := range r.fields {
		if err := enc.EncodeString(f.Key); err != nil {
			return err
		}
		if err := enc.Encode(f.Value); err != nil {
			return fmt.Errorf("encoding field %q: %w", f.Key, err)
		}
	}
	return nil
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (r *Record) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeMapLen()
	if err != nil {
		return err
	}
	r.fields = nil
	r.index = nil
	for i := 0; i < n; i++ {
		key, err := dec.DecodeString()
		if err != nil {
			return err
		}
		value, err := dec.DecodeInterface()
		if err != nil {
			return fmt.Errorf("decoding field %q: %w", key, err)
		}
		r.Set(key, value)
	}
	return nil
}

// normalizeJSONValue converts json.Number tokens into int64 or float64 so
// downstream formatting does not need to special-case the decoder type.
func normalizeJSONValue(v any) any {
	num, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := num.Int64(); err == nil {
		return i
	}
	if f, err := num.Float64(); err == nil {
		return f
	}
	return num.String()
}
