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
	"errors"
	"fmt"
)

// ErrCodec is the sentinel for all codec failures so callers can use errors.Is
// without caring which specific decode rule was violated
var ErrCodec = errors.New("xdr codec error")

// TruncatedError indicates a read past the end of the input buffer
type TruncatedError struct {
	Need int
	Have int
}

func (e TruncatedError) Error() string {
	return fmt.Sprintf(
		"truncated buffer: need %d bytes, have %d",
		e.Need,
		e.Have,
	)
}

func (TruncatedError) Is(target error) bool { return target == ErrCodec }

// TrailingBytesError indicates unconsumed bytes after decoding a top-level value
type TrailingBytesError struct {
	Count int
}

func (e TrailingBytesError) Error() string {
	return fmt.Sprintf("%d trailing bytes after top-level value", e.Count)
}

func (TrailingBytesError) Is(target error) bool { return target == ErrCodec }

// PaddingError indicates nonzero bytes in the alignment padding of an opaque or string
type PaddingError struct{}

func (PaddingError) Error() string {
	return "nonzero bytes in alignment padding"
}

func (PaddingError) Is(target error) bool { return target == ErrCodec }

// LengthError indicates a variable-length item exceeding its declared maximum
type LengthError struct {
	Length uint32
	Max    uint32
}

func (e LengthError) Error() string {
	return fmt.Sprintf(
		"length %d exceeds maximum %d",
		e.Length,
		e.Max,
	)
}

func (LengthError) Is(target error) bool { return target == ErrCodec }

// UnknownDiscriminantError indicates a union discriminant with no defined arm.
// The decoder must fail rather than guess at the payload shape.
type UnknownDiscriminantError struct {
	Union        string
	Discriminant uint32
}

func (e UnknownDiscriminantError) Error() string {
	return fmt.Sprintf(
		"unknown discriminant %d for union %s",
		e.Discriminant,
		e.Union,
	)
}

func (UnknownDiscriminantError) Is(target error) bool { return target == ErrCodec }

// BadFlagError indicates a boolean or optional-presence word that was not 0 or 1
type BadFlagError struct {
	Context string
	Value   uint32
}

func (e BadFlagError) Error() string {
	return fmt.Sprintf(
		"invalid %s flag value %d: must be 0 or 1",
		e.Context,
		e.Value,
	)
}

func (BadFlagError) Is(target error) bool { return target == ErrCodec }
