// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package xdr

import (
	"fmt"
)

// Kind identifies one of the wire type shapes
type Kind int

const (
	KindUint32 Kind = iota
	KindInt32
	KindUint64
	KindInt64
	KindBool
	KindFixedOpaque
	KindVarOpaque
	KindString
	KindFixedArray
	KindVarArray
	KindOptional
	KindStruct
	KindUnion
)

func (k Kind) String() string {
	switch k {
	case KindUint32:
		return "uint32"
	case KindInt32:
		return "int32"
	case KindUint64:
		return "uint64"
	case KindInt64:
		return "int64"
	case KindBool:
		return "bool"
	case KindFixedOpaque:
		return "fixed opaque"
	case KindVarOpaque:
		return "variable opaque"
	case KindString:
		return "string"
	case KindFixedArray:
		return "fixed array"
	case KindVarArray:
		return "variable array"
	case KindOptional:
		return "optional"
	case KindStruct:
		return "struct"
	case KindUnion:
		return "union"
	}
	return fmt.Sprintf("unknown kind %d", int(k))
}

// Shape describes the expected wire layout for shape-directed decoding.
// Concrete protocol types implement Marshaler/Unmarshaler directly; Shape
// exists for tooling that must decode without a concrete Go type.
type Shape struct {
	Kind   Kind
	Size   int    // fixed opaque/array element count
	Max    uint32 // variable opaque/string/array maximum (0 = unbounded)
	Elem   *Shape // array element or optional payload
	Fields []ShapeField
	Name   string           // union name, used in error messages
	Arms   map[uint32]*Shape // union arms by discriminant; nil shape = void arm
}

// ShapeField is one named member of a struct shape
type ShapeField struct {
	Name  string
	Shape *Shape
}

// Value is the tagged union over decoded wire values. Exactly the fields
// relevant to Kind are populated.
type Value struct {
	Kind         Kind
	U32          uint32
	I32          int32
	U64          uint64
	I64          int64
	Flag         bool
	Bytes        []byte
	Str          string
	Elems        []Value // array elements or struct members
	Elem         *Value  // optional payload or union arm (nil when absent/void)
	Discriminant uint32
	FixedSize    int // fixed opaque/array size, needed to re-encode
}

// DecodeValue decodes a single top-level value of the given shape, rejecting
// trailing bytes
func DecodeValue(data []byte, shape *Shape) (*Value, error) {
	d := NewDecoder(data)
	v, err := shape.Decode(d)
	if err != nil {
		return nil, err
	}
	if d.Remaining() > 0 {
		return nil, TrailingBytesError{Count: d.Remaining()}
	}
	return v, nil
}

// Decode reads one value of this shape from the decoder
func (s *Shape) Decode(d *Decoder) (*Value, error) {
	v := &Value{Kind: s.Kind}
	switch s.Kind {
	case KindUint32:
		tmp, err := d.Uint32()
		if err != nil {
			return nil, err
		}
		v.U32 = tmp
	case KindInt32:
		tmp, err := d.Int32()
		if err != nil {
			return nil, err
		}
		v.I32 = tmp
	case KindUint64:
		tmp, err := d.Uint64()
		if err != nil {
			return nil, err
		}
		v.U64 = tmp
	case KindInt64:
		tmp, err := d.Int64()
		if err != nil {
			return nil, err
		}
		v.I64 = tmp
	case KindBool:
		tmp, err := d.Bool()
		if err != nil {
			return nil, err
		}
		v.Flag = tmp
	case KindFixedOpaque:
		tmp, err := d.FixedOpaque(s.Size)
		if err != nil {
			return nil, err
		}
		v.Bytes = tmp
		v.FixedSize = s.Size
	case KindVarOpaque:
		tmp, err := d.Opaque(s.Max)
		if err != nil {
			return nil, err
		}
		v.Bytes = tmp
	case KindString:
		tmp, err := d.String(s.Max)
		if err != nil {
			return nil, err
		}
		v.Str = tmp
	case KindFixedArray:
		v.FixedSize = s.Size
		for i := 0; i < s.Size; i++ {
			elem, err := s.Elem.Decode(d)
			if err != nil {
				return nil, err
			}
			v.Elems = append(v.Elems, *elem)
		}
	case KindVarArray:
		count, err := d.ArrayLen(s.Max)
		if err != nil {
			return nil, err
		}
		for i := 0; i < count; i++ {
			elem, err := s.Elem.Decode(d)
			if err != nil {
				return nil, err
			}
			v.Elems = append(v.Elems, *elem)
		}
	case KindOptional:
		present, err := d.Bool()
		if err != nil {
			if flagErr, ok := err.(BadFlagError); ok {
				return nil, BadFlagError{
					Context: "optional presence",
					Value:   flagErr.Value,
				}
			}
			return nil, err
		}
		v.Flag = present
		if present {
			elem, err := s.Elem.Decode(d)
			if err != nil {
				return nil, err
			}
			v.Elem = elem
		}
	case KindStruct:
		for _, field := range s.Fields {
			elem, err := field.Shape.Decode(d)
			if err != nil {
				return nil, err
			}
			v.Elems = append(v.Elems, *elem)
		}
	case KindUnion:
		disc, err := d.Uint32()
		if err != nil {
			return nil, err
		}
		arm, ok := s.Arms[disc]
		if !ok {
			return nil, UnknownDiscriminantError{
				Union:        s.Name,
				Discriminant: disc,
			}
		}
		v.Discriminant = disc
		if arm != nil {
			elem, err := arm.Decode(d)
			if err != nil {
				return nil, err
			}
			v.Elem = elem
		}
	default:
		return nil, fmt.Errorf("unsupported shape kind %d", int(s.Kind))
	}
	return v, nil
}

// Encode writes the value back to its wire representation
func (v *Value) Encode(e *Encoder) error {
	switch v.Kind {
	case KindUint32:
		return e.Uint32(v.U32)
	case KindInt32:
		return e.Int32(v.I32)
	case KindUint64:
		return e.Uint64(v.U64)
	case KindInt64:
		return e.Int64(v.I64)
	case KindBool:
		return e.Bool(v.Flag)
	case KindFixedOpaque:
		return e.FixedOpaque(v.Bytes)
	case KindVarOpaque:
		return e.Opaque(v.Bytes, 0)
	case KindString:
		return e.String(v.Str, 0)
	case KindFixedArray:
		for i := range v.Elems {
			if err := v.Elems[i].Encode(e); err != nil {
				return err
			}
		}
		return nil
	case KindVarArray:
		if err := e.ArrayLen(len(v.Elems), 0); err != nil {
			return err
		}
		for i := range v.Elems {
			if err := v.Elems[i].Encode(e); err != nil {
				return err
			}
		}
		return nil
	case KindOptional:
		if err := e.Bool(v.Flag); err != nil {
			return err
		}
		if v.Flag {
			return v.Elem.Encode(e)
		}
		return nil
	case KindStruct:
		for i := range v.Elems {
			if err := v.Elems[i].Encode(e); err != nil {
				return err
			}
		}
		return nil
	case KindUnion:
		if err := e.Uint32(v.Discriminant); err != nil {
			return err
		}
		if v.Elem != nil {
			return v.Elem.Encode(e)
		}
		return nil
	default:
		return fmt.Errorf("unsupported value kind %d", int(v.Kind))
	}
}

// MarshalXDR allows a Value to be used with the top-level Marshal helper
func (v *Value) MarshalXDR(e *Encoder) error {
	return v.Encode(e)
}
