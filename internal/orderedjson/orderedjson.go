// Package orderedjson parses and prints JSON while preserving the order of
// object members. Blueprint consumers treat member order as meaningful, so
// the usual map-backed decoding is not an option here.
//
// Parsed values are one of:
//
//	Object       — JSON object, members in source order
//	[]any        — JSON array
//	string       — JSON string
//	json.Number  — JSON number, source text kept verbatim
//	bool         — JSON true/false
//	nil          — JSON null
package orderedjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrTrailingData indicates extra content after the first JSON value.
var ErrTrailingData = errors.New("orderedjson: trailing data after JSON value")

// Member is a single key/value pair of an Object.
type Member struct {
	Key   string
	Value any
}

// Object is a JSON object with members in source order.
type Object []Member

// Get returns the value for key and whether it is present.
func (o Object) Get(key string) (any, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Parse decodes a single JSON value from data.
// Duplicate object keys keep the position of the first occurrence and the
// value of the last, matching ordered-map semantics.
func Parse(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := parseValue(dec)
	if err != nil {
		return nil, fmt.Errorf("orderedjson: %w", err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}
	return v, nil
}

func parseValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return parseToken(dec, tok)
}

func parseToken(dec *json.Decoder, tok json.Token) (any, error) {
	if d, ok := tok.(json.Delim); ok {
		switch d {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		}
		// ']' and '}' cannot appear here; the decoder rejects them first.
		return nil, fmt.Errorf("unexpected delimiter %q", d)
	}
	// string, json.Number, bool or nil.
	return tok, nil
}

func parseObject(dec *json.Decoder) (Object, error) {
	obj := Object{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is %T, want string", keyTok)
		}

		val, err := parseValue(dec)
		if err != nil {
			return nil, err
		}

		replaced := false
		for i := range obj {
			if obj[i].Key == key {
				obj[i].Value = val
				replaced = true
				break
			}
		}
		if !replaced {
			obj = append(obj, Member{Key: key, Value: val})
		}
	}

	// Consume the closing '}'.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func parseArray(dec *json.Decoder) ([]any, error) {
	arr := []any{}
	for dec.More() {
		val, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}

	// Consume the closing ']'.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

// MarshalCompact prints v with no insignificant whitespace.
// Non-ASCII characters are emitted literally, not escaped.
func MarshalCompact(v any) ([]byte, error) {
	return appendValue(nil, v, 0, false)
}

// MarshalIndent prints v with one-space indentation and compact separators:
// a newline plus depth spaces before each element, no space after ':'.
func MarshalIndent(v any) ([]byte, error) {
	return appendValue(nil, v, 0, true)
}

func appendValue(dst []byte, v any, depth int, pretty bool) ([]byte, error) {
	switch t := v.(type) {
	case nil:
		return append(dst, "null"...), nil
	case bool:
		if t {
			return append(dst, "true"...), nil
		}
		return append(dst, "false"...), nil
	case string:
		return appendString(dst, t), nil
	case json.Number:
		return append(dst, t.String()...), nil
	case Object:
		return appendObject(dst, t, depth, pretty)
	case []any:
		return appendArray(dst, t, depth, pretty)
	default:
		return nil, fmt.Errorf("orderedjson: cannot marshal %T", v)
	}
}

func appendObject(dst []byte, obj Object, depth int, pretty bool) ([]byte, error) {
	if len(obj) == 0 {
		return append(dst, "{}"...), nil
	}

	dst = append(dst, '{')
	for i, m := range obj {
		if i > 0 {
			dst = append(dst, ',')
		}
		if pretty {
			dst = appendNewline(dst, depth+1)
		}
		dst = appendString(dst, m.Key)
		dst = append(dst, ':')

		var err error
		dst, err = appendValue(dst, m.Value, depth+1, pretty)
		if err != nil {
			return nil, err
		}
	}
	if pretty {
		dst = appendNewline(dst, depth)
	}
	return append(dst, '}'), nil
}

func appendArray(dst []byte, arr []any, depth int, pretty bool) ([]byte, error) {
	if len(arr) == 0 {
		return append(dst, "[]"...), nil
	}

	dst = append(dst, '[')
	for i, v := range arr {
		if i > 0 {
			dst = append(dst, ',')
		}
		if pretty {
			dst = appendNewline(dst, depth+1)
		}

		var err error
		dst, err = appendValue(dst, v, depth+1, pretty)
		if err != nil {
			return nil, err
		}
	}
	if pretty {
		dst = appendNewline(dst, depth)
	}
	return append(dst, ']'), nil
}

func appendNewline(dst []byte, depth int) []byte {
	dst = append(dst, '\n')
	for i := 0; i < depth; i++ {
		dst = append(dst, ' ')
	}
	return dst
}

const hexDigits = "0123456789abcdef"

// appendString quotes s with the minimal JSON escapes: quote, backslash and
// control characters. Everything else, including non-ASCII, passes through
// verbatim.
func appendString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch b {
		case '"':
			dst = append(dst, '\\', '"')
		case '\\':
			dst = append(dst, '\\', '\\')
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		case '\b':
			dst = append(dst, '\\', 'b')
		case '\f':
			dst = append(dst, '\\', 'f')
		default:
			if b < 0x20 {
				dst = append(dst, '\\', 'u', '0', '0', hexDigits[b>>4], hexDigits[b&0xf])
			} else {
				dst = append(dst, b)
			}
		}
	}
	return append(dst, '"')
}
