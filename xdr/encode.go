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
	"bytes"
	"encoding/binary"
	"math"
)

// Marshaler is implemented by types that can encode themselves to XDR
type Marshaler interface {
	MarshalXDR(e *Encoder) error
}

// Encoder writes XDR primitives to an in-memory buffer. All multi-byte
// integers are big-endian and every item is padded to a 4-byte boundary.
type Encoder struct {
	buf bytes.Buffer
}

// NewEncoder returns a new Encoder with an empty buffer
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Bytes returns the encoded output accumulated so far
func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of bytes encoded so far
func (e *Encoder) Len() int {
	return e.buf.Len()
}

// Marshal encodes a value to its XDR representation
func Marshal(v Marshaler) ([]byte, error) {
	e := NewEncoder()
	if err := v.MarshalXDR(e); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// Uint32 writes an unsigned 32-bit integer
func (e *Encoder) Uint32(v uint32) error {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	_, err := e.buf.Write(tmp[:])
	return err
}

// Int32 writes a signed 32-bit integer
func (e *Encoder) Int32(v int32) error {
	return e.Uint32(uint32(v))
}

// Uint64 writes an unsigned 64-bit integer
func (e *Encoder) Uint64(v uint64) error {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	_, err := e.buf.Write(tmp[:])
	return err
}

// Int64 writes a signed 64-bit integer
func (e *Encoder) Int64(v int64) error {
	return e.Uint64(uint64(v))
}

// Bool writes a boolean as a 4-byte 0/1 integer
func (e *Encoder) Bool(v bool) error {
	if v {
		return e.Uint32(1)
	}
	return e.Uint32(0)
}

// FixedOpaque writes fixed-length opaque data with implicit length,
// zero-padded to the next 4-byte boundary
func (e *Encoder) FixedOpaque(data []byte) error {
	if _, err := e.buf.Write(data); err != nil {
		return err
	}
	return e.pad(len(data))
}

// Opaque writes variable-length opaque data with a 4-byte length prefix,
// zero-padded to the next 4-byte boundary. A max of 0 means unbounded.
func (e *Encoder) Opaque(data []byte, max uint32) error {
	if len(data) > math.MaxUint32 {
		return LengthError{Length: math.MaxUint32, Max: max}
	}
	dataLen := uint32(len(data))
	if max > 0 && dataLen > max {
		return LengthError{Length: dataLen, Max: max}
	}
	if err := e.Uint32(dataLen); err != nil {
		return err
	}
	return e.FixedOpaque(data)
}

// String writes a UTF-8 string encoded like variable-length opaque data
func (e *Encoder) String(s string, max uint32) error {
	return e.Opaque([]byte(s), max)
}

// ArrayLen writes the element count prefix for a variable-length array.
// A max of 0 means unbounded.
func (e *Encoder) ArrayLen(length int, max uint32) error {
	if length < 0 || length > math.MaxUint32 {
		return LengthError{Length: math.MaxUint32, Max: max}
	}
	if max > 0 && uint32(length) > max {
		return LengthError{Length: uint32(length), Max: max}
	}
	return e.Uint32(uint32(length))
}

// pad writes zero bytes to align an item of the given size to 4 bytes
func (e *Encoder) pad(size int) error {
	for i := 0; i < (4-size%4)%4; i++ {
		if err := e.buf.WriteByte(0); err != nil {
			return err
		}
	}
	return nil
}
