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

// Package strkey implements the typed, checksummed base-32 text encoding for
// Stellar key and hash material. A strkey is a version byte identifying the
// semantic kind, the raw payload, and a little-endian CRC-16/XModem checksum
// over version byte and payload, base-32 encoded without padding.
package strkey

import (
	"encoding/base32"
	"encoding/binary"

	"github.com/sigurn/crc16"
)

// VersionByte identifies the semantic kind of a strkey
type VersionByte byte

const (
	// VersionByteAccountID is an ed25519 public key ("G...")
	VersionByteAccountID VersionByte = 6 << 3
	// VersionByteSeed is an ed25519 private seed ("S...")
	VersionByteSeed VersionByte = 18 << 3
	// VersionByteMuxedAccount is an ed25519 public key plus a 64-bit id ("M...")
	VersionByteMuxedAccount VersionByte = 12 << 3
	// VersionBytePreAuthTx is a pre-authorized transaction hash ("T...")
	VersionBytePreAuthTx VersionByte = 19 << 3
	// VersionByteHashX is a hash(x) signer lock ("X...")
	VersionByteHashX VersionByte = 23 << 3
	// VersionByteSignedPayload is an ed25519 public key plus a payload ("P...")
	VersionByteSignedPayload VersionByte = 15 << 3
	// VersionByteContract is a contract id ("C...")
	VersionByteContract VersionByte = 2 << 3
)

func (v VersionByte) String() string {
	switch v {
	case VersionByteAccountID:
		return "account"
	case VersionByteSeed:
		return "seed"
	case VersionByteMuxedAccount:
		return "muxed account"
	case VersionBytePreAuthTx:
		return "pre-auth tx hash"
	case VersionByteHashX:
		return "hashx"
	case VersionByteSignedPayload:
		return "signed payload"
	case VersionByteContract:
		return "contract"
	}
	return "unknown"
}

// Encoding without padding; strkeys are always unpadded uppercase base-32
var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

var checksumTable = crc16.MakeTable(crc16.CRC16_XMODEM)

// payloadSize returns the expected payload length for a kind, or -1 when the
// kind allows a range (signed payloads carry 32 key bytes plus a 4..68 byte
// length-prefixed padded payload)
func payloadSize(version VersionByte) int {
	switch version {
	case VersionByteAccountID,
		VersionByteSeed,
		VersionBytePreAuthTx,
		VersionByteHashX,
		VersionByteContract:
		return 32
	case VersionByteMuxedAccount:
		return 40
	case VersionByteSignedPayload:
		return -1
	}
	return 0
}

// isKnownVersion reports whether the byte is one of the defined kinds
func isKnownVersion(version VersionByte) bool {
	switch version {
	case VersionByteAccountID,
		VersionByteSeed,
		VersionByteMuxedAccount,
		VersionBytePreAuthTx,
		VersionByteHashX,
		VersionByteSignedPayload,
		VersionByteContract:
		return true
	}
	return false
}

// validPayloadLen checks the payload length against the kind
func validPayloadLen(version VersionByte, length int) bool {
	expected := payloadSize(version)
	if expected >= 0 {
		return length == expected
	}
	// Signed payload: 32 key bytes + 4 length bytes + 4..64 padded payload bytes
	return length >= 36 && length <= 100 && length%4 == 0
}

// Encode returns the strkey text for the given kind and raw payload
func Encode(version VersionByte, payload []byte) (string, error) {
	if !isKnownVersion(version) {
		return "", InvalidVersionByteError{Version: byte(version)}
	}
	if !validPayloadLen(version, len(payload)) {
		return "", InvalidPayloadError{
			Version: version,
			Length:  len(payload),
		}
	}
	raw := make([]byte, 0, len(payload)+3)
	raw = append(raw, byte(version))
	raw = append(raw, payload...)
	var checksum [2]byte
	binary.LittleEndian.PutUint16(
		checksum[:],
		crc16.Checksum(raw, checksumTable),
	)
	raw = append(raw, checksum[:]...)
	return encoding.EncodeToString(raw), nil
}

// MustEncode is like Encode but panics on error. Useful for fixed inputs
// whose lengths are known at the call site.
func MustEncode(version VersionByte, payload []byte) string {
	ret, err := Encode(version, payload)
	if err != nil {
		panic(err)
	}
	return ret
}

// DecodeAny decodes a strkey of any kind, returning its version byte and
// raw payload
func DecodeAny(s string) (VersionByte, []byte, error) {
	raw, err := encoding.DecodeString(s)
	if err != nil {
		return 0, nil, ErrInvalidEncoding
	}
	// Reject non-canonical encodings that decode to the same bytes
	if encoding.EncodeToString(raw) != s {
		return 0, nil, ErrInvalidEncoding
	}
	if len(raw) < 3 {
		return 0, nil, ErrInvalidEncoding
	}
	body := raw[:len(raw)-2]
	expected := binary.LittleEndian.Uint16(raw[len(raw)-2:])
	if crc16.Checksum(body, checksumTable) != expected {
		return 0, nil, ErrChecksumMismatch
	}
	version := VersionByte(body[0])
	payload := body[1:]
	if !isKnownVersion(version) {
		return 0, nil, InvalidVersionByteError{Version: body[0]}
	}
	if !validPayloadLen(version, len(payload)) {
		return 0, nil, InvalidPayloadError{
			Version: version,
			Length:  len(payload),
		}
	}
	return version, payload, nil
}

// Decode decodes a strkey and verifies it is of the expected kind
func Decode(expected VersionByte, s string) ([]byte, error) {
	version, payload, err := DecodeAny(s)
	if err != nil {
		return nil, err
	}
	if version != expected {
		return nil, InvalidVersionByteError{
			Version:  byte(version),
			Expected: expected,
			Mismatch: true,
		}
	}
	return payload, nil
}

// IsValid reports whether the string is a well-formed strkey of the
// expected kind
func IsValid(expected VersionByte, s string) bool {
	_, err := Decode(expected, s)
	return err == nil
}
