package schema

import (
	"bytes"
	"errors"
)

var ErrKindMismatch = errors.New("schema: value kind mismatch")

// Value is one scalar, decoded or to-be-encoded. Only the field
// selected by Kind is meaningful; Null marks the absent case of an
// optional argument.
type Value struct {
	Kind  Kind
	Null  bool
	Str   string
	Int   int64
	Uint  uint64
	Bool  bool
	Char  rune
	Bytes []byte
	Float float64
	Map   map[string]Value
}

func NewString(v string) Value { return Value{Kind: KindString, Str: v} }
func NewInt(v int64) Value     { return Value{Kind: KindInt, Int: v} }
func NewUint(v uint64) Value   { return Value{Kind: KindUint, Uint: v} }
func NewBool(v bool) Value     { return Value{Kind: KindBool, Bool: v} }
func NewChar(v rune) Value     { return Value{Kind: KindChar, Char: v} }

func NewBytes(v []byte) Value {
	buf := make([]byte, len(v))
	copy(buf, v)
	return Value{Kind: KindBytes, Bytes: buf}
}

func NewFloat(v float64) Value { return Value{Kind: KindFloat, Float: v} }

func NewMap(v map[string]Value) Value { return Value{Kind: KindMap, Map: v} }

// Null returns the absent value of an optional argument of kind k.
func Null(k Kind) Value { return Value{Kind: k, Null: true} }

// IsNull reports whether the value is the absent case.
func (v Value) IsNull() bool { return v.Null }

// AsString returns the value as a string.
func (v Value) AsString() (string, error) {
	if v.Kind != KindString {
		return "", ErrKindMismatch
	}
	return v.Str, nil
}

// AsInt returns the value as a signed integer.
func (v Value) AsInt() (int64, error) {
	if v.Kind != KindInt {
		return 0, ErrKindMismatch
	}
	return v.Int, nil
}

// AsUint returns the value as an unsigned integer.
func (v Value) AsUint() (uint64, error) {
	if v.Kind != KindUint {
		return 0, ErrKindMismatch
	}
	return v.Uint, nil
}

// AsBool returns the value as a bool.
func (v Value) AsBool() (bool, error) {
	if v.Kind != KindBool {
		return false, ErrKindMismatch
	}
	return v.Bool, nil
}

// AsChar returns the value as a single rune.
func (v Value) AsChar() (rune, error) {
	if v.Kind != KindChar {
		return 0, ErrKindMismatch
	}
	return v.Char, nil
}

// AsBytes returns a copy of the value's byte payload.
func (v Value) AsBytes() ([]byte, error) {
	if v.Kind != KindBytes {
		return nil, ErrKindMismatch
	}
	buf := make([]byte, len(v.Bytes))
	copy(buf, v.Bytes)
	return buf, nil
}

// Equal reports structural equality.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind || v.Null != o.Null {
		return false
	}
	if v.Null {
		return true
	}
	switch v.Kind {
	case KindString:
		return v.Str == o.Str
	case KindInt:
		return v.Int == o.Int
	case KindUint:
		return v.Uint == o.Uint
	case KindBool:
		return v.Bool == o.Bool
	case KindChar:
		return v.Char == o.Char
	case KindBytes:
		return bytes.Equal(v.Bytes, o.Bytes)
	case KindFloat:
		return v.Float == o.Float
	case KindMap:
		if len(v.Map) != len(o.Map) {
			return false
		}
		for k, vv := range v.Map {
			ov, ok := o.Map[k]
			if !ok || !vv.Equal(ov) {
				return false
			}
		}
		return true
	}
	return false
}
