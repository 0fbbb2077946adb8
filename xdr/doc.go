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

// Package xdr implements the XDR binary encoding used on the Stellar network.
//
// All integers are big-endian and fixed-width, every item is padded to a
// 4-byte boundary, variable-length data carries a 4-byte length prefix, and
// unions carry a 4-byte discriminant selecting the arm that follows.
//
// Concrete wire types implement the Marshaler/Unmarshaler interfaces:
//
//	func (t *MyType) MarshalXDR(e *xdr.Encoder) error
//	func (t *MyType) UnmarshalXDR(d *xdr.Decoder) error
//
// and are encoded/decoded via Marshal, Unmarshal, and UnmarshalFull. The
// latter rejects trailing bytes and is the form used for top-level envelope
// decoding.
//
// Decoding is strict: truncated buffers, nonzero alignment padding, boolean
// or presence flags other than 0/1, lengths over a declared maximum, and
// unknown union discriminants are all errors. The decoder never guesses at a
// payload shape.
//
// The Shape/Value pair provides shape-directed decoding for tooling that has
// no concrete Go type for the data it is inspecting.
package xdr
