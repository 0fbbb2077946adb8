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

package txnbuild

import (
	"errors"
	"fmt"
)

// ErrNoOperations indicates a transaction with an empty operation list
var ErrNoOperations = errors.New("transaction has no operations")

// ErrNoOperationBody indicates an Operation with a nil body variant
var ErrNoOperationBody = errors.New("operation has no body")

// TooManyOperationsError indicates an operation count over the protocol limit
type TooManyOperationsError struct {
	Count int
}

func (e TooManyOperationsError) Error() string {
	return fmt.Sprintf(
		"transaction has %d operations, limit is %d",
		e.Count,
		MaxOperations,
	)
}

// TooManySignaturesError indicates a signature count over the envelope limit
type TooManySignaturesError struct {
	Count int
}

func (e TooManySignaturesError) Error() string {
	return fmt.Sprintf(
		"envelope would have %d signatures, limit is %d",
		e.Count,
		MaxSignatures,
	)
}

// MemoTextLengthError indicates a text memo over the 28-byte limit
type MemoTextLengthError struct {
	Length int
}

func (e MemoTextLengthError) Error() string {
	return fmt.Sprintf(
		"text memo is %d bytes, limit is %d",
		e.Length,
		MemoTextMaxBytes,
	)
}

// AssetCodeLengthError indicates an asset code that is empty or over 12 bytes
type AssetCodeLengthError struct {
	Code string
}

func (e AssetCodeLengthError) Error() string {
	return fmt.Sprintf(
		"asset code %q must be 1-12 characters",
		e.Code,
	)
}

// EnvelopeBase64Error indicates envelope text that is not valid base64
type EnvelopeBase64Error struct {
	Err error
}

func (e EnvelopeBase64Error) Error() string {
	return fmt.Sprintf("invalid base64 envelope: %v", e.Err)
}

func (e EnvelopeBase64Error) Unwrap() error { return e.Err }
