package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// DecodeObject reads one JSON object from r. Key order is preserved as it
// appeared on the wire, which map-based decoding would throw away.
func DecodeObject(r io.Reader) (*Object, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if v.Kind() != KindObject {
		return nil, fmt.Errorf("expected JSON object, got %s", v.Kind())
	}
	return v.Obj(), nil
}

// ParseObject is DecodeObject over an in-memory payload.
func ParseObject(data []byte) (*Object, error) {
	return DecodeObject(bytes.NewReader(data))
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return NullValue(), err
	}
	return valueFromToken(dec, tok)
}

func valueFromToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return NullValue(), err
				}
				key, ok := keyTok.(string)
				if !ok {
					return NullValue(), fmt.Errorf("expected object key, got %v", keyTok)
				}
				v, err := decodeValue(dec)
				if err != nil {
					return NullValue(), err
				}
				obj.Set(key, v)
			}
			if _, err := dec.Token(); err != nil { // closing brace
				return NullValue(), err
			}
			return ObjectValue(obj), nil
		case '[':
			var items []Value
			for dec.More() {
				v, err := decodeValue(dec)
				if err != nil {
					return NullValue(), err
				}
				items = append(items, v)
			}
			if _, err := dec.Token(); err != nil { // closing bracket
				return NullValue(), err
			}
			return ArrayValue(items), nil
		}
		return NullValue(), fmt.Errorf("unexpected delimiter %v", t)
	case bool:
		return BoolValue(t), nil
	case json.Number:
		return NumberValue(string(t)), nil
	case string:
		return StringValue(t), nil
	case nil:
		return NullValue(), nil
	default:
		return NullValue(), fmt.Errorf("unexpected token %v", tok)
	}
}
