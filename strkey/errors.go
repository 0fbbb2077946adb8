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

package strkey

import (
	"errors"
	"fmt"
)

// ErrIdentifier is the sentinel matched by every strkey failure
var ErrIdentifier = errors.New("invalid strkey")

// ErrInvalidEncoding indicates text that is not canonical unpadded base-32
// or is too short to carry a version byte and checksum
var ErrInvalidEncoding = fmt.Errorf("%w: invalid base-32 encoding", ErrIdentifier)

// ErrChecksumMismatch indicates a failed CRC-16 verification
var ErrChecksumMismatch = fmt.Errorf("%w: checksum mismatch", ErrIdentifier)

// InvalidVersionByteError indicates an unknown version byte, or a known one
// that does not match the kind the caller expected
type InvalidVersionByteError struct {
	Version  byte
	Expected VersionByte
	Mismatch bool
}

func (e InvalidVersionByteError) Error() string {
	if e.Mismatch {
		return fmt.Sprintf(
			"invalid strkey: version byte 0x%02x is not %s",
			e.Version,
			e.Expected,
		)
	}
	return fmt.Sprintf("invalid strkey: unknown version byte 0x%02x", e.Version)
}

func (InvalidVersionByteError) Is(target error) bool {
	return target == ErrIdentifier
}

// InvalidPayloadError indicates a payload length that is not valid for the
// identifier kind
type InvalidPayloadError struct {
	Version VersionByte
	Length  int
}

func (e InvalidPayloadError) Error() string {
	return fmt.Sprintf(
		"invalid strkey: payload length %d not valid for %s",
		e.Length,
		e.Version,
	)
}

func (InvalidPayloadError) Is(target error) bool {
	return target == ErrIdentifier
}
