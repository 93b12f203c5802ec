package record

import (
	"encoding/json"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Value is a single decoded JSON value. The zero value is null, so a missing
// lookup can be returned directly without a pointer.
type Value struct {
	kind Kind
	b    bool
	num  string // number literal exactly as it appeared on the wire
	str  string
	obj  *Object
	arr  []Value
}

func NullValue() Value             { return Value{} }
func BoolValue(b bool) Value       { return Value{kind: KindBool, b: b} }
func StringValue(s string) Value   { return Value{kind: KindString, str: s} }
func ObjectValue(o *Object) Value  { return Value{kind: KindObject, obj: o} }
func ArrayValue(vs []Value) Value  { return Value{kind: KindArray, arr: vs} }

// NumberValue keeps the literal instead of a float64 so values like
// "1.50" or ids beyond 2^53 survive a round trip unchanged.
func NumberValue(literal string) Value { return Value{kind: KindNumber, num: literal} }

func (v Value) Kind() Kind            { return v.kind }
func (v Value) Bool() bool            { return v.b }
func (v Value) Str() string           { return v.str }
func (v Value) NumberLiteral() string { return v.num }
func (v Value) Obj() *Object          { return v.obj }
func (v Value) Arr() []Value          { return v.arr }

// Text renders the value as plain text: strings verbatim, numbers by their
// literal, containers as JSON. Null renders empty.
func (v Value) Text() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindNumber:
		return v.num
	case KindString:
		return v.str
	default:
		return v.JSON()
	}
}

// JSON serializes the value compactly. Object keys keep their stored order,
// so the output is deterministic and loses nothing from the original payload.
func (v Value) JSON() string {
	var b strings.Builder
	v.appendJSON(&b)
	return b.String()
}

func (v Value) appendJSON(b *strings.Builder) {
	switch v.kind {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		if v.b {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case KindNumber:
		b.WriteString(v.num)
	case KindString:
		writeJSONString(b, v.str)
	case KindObject:
		b.WriteByte('{')
		for i, k := range v.obj.keys {
			if i > 0 {
				b.WriteByte(',')
			}
			writeJSONString(b, k)
			b.WriteByte(':')
			v.obj.fields[k].appendJSON(b)
		}
		b.WriteByte('}')
	case KindArray:
		b.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				b.WriteByte(',')
			}
			item.appendJSON(b)
		}
		b.WriteByte(']')
	}
}

func writeJSONString(b *strings.Builder, s string) {
	// encoding/json handles the escaping rules
	enc, err := json.Marshal(s)
	if err != nil {
		b.WriteString(`""`)
		return
	}
	b.Write(enc)
}

// Object is a JSON object that remembers the order its keys appeared in.
type Object struct {
	keys   []string
	fields map[string]Value
}

func NewObject() *Object {
	return &Object{fields: make(map[string]Value)}
}

// Set stores a value under key. A new key is appended to the order; an
// existing key keeps its original position.
func (o *Object) Set(key string, v Value) {
	if _, exists := o.fields[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.fields[key] = v
}

func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return NullValue(), false
	}
	v, ok := o.fields[key]
	return v, ok
}

// Keys returns the keys in insertion order. The slice is shared; callers
// must not modify it.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return o.keys
}

func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}
