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
	"encoding/binary"
	"math"
)

// Unmarshaler is implemented by types that can decode themselves from XDR
type Unmarshaler interface {
	UnmarshalXDR(d *Decoder) error
}

// Decoder reads XDR primitives from a byte slice. Every read is bounds-checked
// against the underlying buffer; reading past the end is a TruncatedError.
type Decoder struct {
	data []byte
	pos  int
}

// NewDecoder returns a Decoder over the provided buffer
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// Consumed returns the number of bytes read so far
func (d *Decoder) Consumed() int {
	return d.pos
}

// Remaining returns the number of unread bytes
func (d *Decoder) Remaining() int {
	return len(d.data) - d.pos
}

// Unmarshal decodes a value from the provided buffer and returns the number
// of bytes consumed
func Unmarshal(data []byte, dest Unmarshaler) (int, error) {
	d := NewDecoder(data)
	if err := dest.UnmarshalXDR(d); err != nil {
		return d.pos, err
	}
	return d.pos, nil
}

// UnmarshalFull decodes a single top-level value and rejects any trailing
// unconsumed bytes
func UnmarshalFull(data []byte, dest Unmarshaler) error {
	d := NewDecoder(data)
	if err := dest.UnmarshalXDR(d); err != nil {
		return err
	}
	if d.Remaining() > 0 {
		return TrailingBytesError{Count: d.Remaining()}
	}
	return nil
}

// take consumes n bytes from the buffer, failing on truncation
func (d *Decoder) take(n int) ([]byte, error) {
	if n < 0 || n > len(d.data)-d.pos {
		return nil, TruncatedError{Need: n, Have: len(d.data) - d.pos}
	}
	ret := d.data[d.pos : d.pos+n]
	d.pos += n
	return ret, nil
}

// Uint32 reads an unsigned 32-bit integer
func (d *Decoder) Uint32() (uint32, error) {
	tmp, err := d.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(tmp), nil
}

// Int32 reads a signed 32-bit integer
func (d *Decoder) Int32() (int32, error) {
	v, err := d.Uint32()
	return int32(v), err
}

// Uint64 reads an unsigned 64-bit integer
func (d *Decoder) Uint64() (uint64, error) {
	tmp, err := d.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(tmp), nil
}

// Int64 reads a signed 64-bit integer
func (d *Decoder) Int64() (int64, error) {
	v, err := d.Uint64()
	return int64(v), err
}

// Bool reads a 4-byte boolean, rejecting values other than 0 and 1
func (d *Decoder) Bool() (bool, error) {
	v, err := d.Uint32()
	if err != nil {
		return false, err
	}
	if v > 1 {
		return false, BadFlagError{Context: "bool", Value: v}
	}
	return v == 1, nil
}

// FixedOpaque reads fixed-length opaque data and its alignment padding,
// returning a copy of the data
func (d *Decoder) FixedOpaque(size int) ([]byte, error) {
	tmp, err := d.take(size)
	if err != nil {
		return nil, err
	}
	if err := d.skipPad(size); err != nil {
		return nil, err
	}
	ret := make([]byte, size)
	copy(ret, tmp)
	return ret, nil
}

// Opaque reads variable-length opaque data with a 4-byte length prefix.
// A max of 0 means unbounded (limited only by the buffer).
func (d *Decoder) Opaque(max uint32) ([]byte, error) {
	dataLen, err := d.Uint32()
	if err != nil {
		return nil, err
	}
	if max > 0 && dataLen > max {
		return nil, LengthError{Length: dataLen, Max: max}
	}
	if dataLen > math.MaxInt32 {
		return nil, TruncatedError{Need: math.MaxInt32, Have: d.Remaining()}
	}
	return d.FixedOpaque(int(dataLen))
}

// String reads a UTF-8 string encoded like variable-length opaque data
func (d *Decoder) String(max uint32) (string, error) {
	tmp, err := d.Opaque(max)
	if err != nil {
		return "", err
	}
	return string(tmp), nil
}

// ArrayLen reads the element count prefix for a variable-length array
func (d *Decoder) ArrayLen(max uint32) (int, error) {
	length, err := d.Uint32()
	if err != nil {
		return 0, err
	}
	if max > 0 && length > max {
		return 0, LengthError{Length: length, Max: max}
	}
	// An element occupies at least 4 bytes, so this also caps absurd counts
	// in truncated input before any allocation happens
	if int64(length)*4 > int64(d.Remaining()) {
		return 0, TruncatedError{Need: int(length) * 4, Have: d.Remaining()}
	}
	return int(length), nil
}

// skipPad consumes the alignment padding for an item of the given size,
// rejecting nonzero pad bytes
func (d *Decoder) skipPad(size int) error {
	padLen := (4 - size%4) % 4
	pad, err := d.take(padLen)
	if err != nil {
		return err
	}
	for _, b := range pad {
		if b != 0 {
			return PaddingError{}
		}
	}
	return nil
}
