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
	"encoding/binary"

	"github.com/blinklabs-io/gostellar/strkey"
	"github.com/blinklabs-io/gostellar/xdr"
)

// Envelope type discriminants
const (
	EnvelopeTypeTxV0      uint32 = 0
	EnvelopeTypeScp       uint32 = 1
	EnvelopeTypeTx        uint32 = 2
	EnvelopeTypeAuth      uint32 = 3
	EnvelopeTypeTxFeeBump uint32 = 5
)

// Account key type discriminants
const (
	keyTypeEd25519      uint32 = 0
	keyTypeMuxedEd25519 uint32 = 0x100
)

// accountAddress is a strkey account ("G...") or muxed account ("M...")
// in its wire form
type accountAddress struct {
	ed25519 [32]byte
	muxed   bool
	muxedID uint64
}

// parseAccountAddress accepts a G or M strkey. When muxedOk is false only
// plain accounts are accepted.
func parseAccountAddress(address string, muxedOk bool) (accountAddress, error) {
	version, payload, err := strkey.DecodeAny(address)
	if err != nil {
		return accountAddress{}, err
	}
	var ret accountAddress
	switch version {
	case strkey.VersionByteAccountID:
		copy(ret.ed25519[:], payload)
	case strkey.VersionByteMuxedAccount:
		if !muxedOk {
			return accountAddress{}, strkey.InvalidVersionByteError{
				Version:  byte(version),
				Expected: strkey.VersionByteAccountID,
				Mismatch: true,
			}
		}
		ret.muxed = true
		copy(ret.ed25519[:], payload[:32])
		ret.muxedID = binary.BigEndian.Uint64(payload[32:])
	default:
		return accountAddress{}, strkey.InvalidVersionByteError{
			Version:  byte(version),
			Expected: strkey.VersionByteAccountID,
			Mismatch: true,
		}
	}
	return ret, nil
}

func (a accountAddress) String() string {
	if a.muxed {
		payload := make([]byte, 40)
		copy(payload, a.ed25519[:])
		binary.BigEndian.PutUint64(payload[32:], a.muxedID)
		return strkey.MustEncode(strkey.VersionByteMuxedAccount, payload)
	}
	return strkey.MustEncode(strkey.VersionByteAccountID, a.ed25519[:])
}

// marshalMuxed writes the MuxedAccount wire union. Note the muxed arm
// carries the id before the key bytes, the reverse of the strkey layout.
func (a accountAddress) marshalMuxed(e *xdr.Encoder) error {
	if a.muxed {
		if err := e.Uint32(keyTypeMuxedEd25519); err != nil {
			return err
		}
		if err := e.Uint64(a.muxedID); err != nil {
			return err
		}
		return e.FixedOpaque(a.ed25519[:])
	}
	if err := e.Uint32(keyTypeEd25519); err != nil {
		return err
	}
	return e.FixedOpaque(a.ed25519[:])
}

func unmarshalMuxed(d *xdr.Decoder) (accountAddress, error) {
	keyType, err := d.Uint32()
	if err != nil {
		return accountAddress{}, err
	}
	var ret accountAddress
	switch keyType {
	case keyTypeEd25519:
	case keyTypeMuxedEd25519:
		ret.muxed = true
		if ret.muxedID, err = d.Uint64(); err != nil {
			return accountAddress{}, err
		}
	default:
		return accountAddress{}, xdr.UnknownDiscriminantError{
			Union:        "MuxedAccount",
			Discriminant: keyType,
		}
	}
	tmp, err := d.FixedOpaque(32)
	if err != nil {
		return accountAddress{}, err
	}
	copy(ret.ed25519[:], tmp)
	return ret, nil
}

// marshalAccountID writes the plain AccountID wire union (PublicKey)
func (a accountAddress) marshalAccountID(e *xdr.Encoder) error {
	if err := e.Uint32(keyTypeEd25519); err != nil {
		return err
	}
	return e.FixedOpaque(a.ed25519[:])
}

func unmarshalAccountID(d *xdr.Decoder) (accountAddress, error) {
	keyType, err := d.Uint32()
	if err != nil {
		return accountAddress{}, err
	}
	if keyType != keyTypeEd25519 {
		return accountAddress{}, xdr.UnknownDiscriminantError{
			Union:        "PublicKey",
			Discriminant: keyType,
		}
	}
	var ret accountAddress
	tmp, err := d.FixedOpaque(32)
	if err != nil {
		return accountAddress{}, err
	}
	copy(ret.ed25519[:], tmp)
	return ret, nil
}

// Asset type discriminants
const (
	assetTypeNative     uint32 = 0
	assetTypeAlphanum4  uint32 = 1
	assetTypeAlphanum12 uint32 = 2
)

// Asset identifies the native asset (zero value) or an issued asset by
// code and issuer account
type Asset struct {
	Code   string
	Issuer string
}

// NativeAsset returns the native asset
func NativeAsset() Asset {
	return Asset{}
}

// IsNative reports whether this is the native asset
func (a Asset) IsNative() bool {
	return a.Code == "" && a.Issuer == ""
}

func (a Asset) MarshalXDR(e *xdr.Encoder) error {
	if a.IsNative() {
		return e.Uint32(assetTypeNative)
	}
	if len(a.Code) == 0 || len(a.Code) > 12 {
		return AssetCodeLengthError{Code: a.Code}
	}
	issuer, err := parseAccountAddress(a.Issuer, false)
	if err != nil {
		return err
	}
	codeSize := 4
	assetType := assetTypeAlphanum4
	if len(a.Code) > 4 {
		codeSize = 12
		assetType = assetTypeAlphanum12
	}
	if err := e.Uint32(assetType); err != nil {
		return err
	}
	code := make([]byte, codeSize)
	copy(code, a.Code)
	if err := e.FixedOpaque(code); err != nil {
		return err
	}
	return issuer.marshalAccountID(e)
}

func (a *Asset) UnmarshalXDR(d *xdr.Decoder) error {
	assetType, err := d.Uint32()
	if err != nil {
		return err
	}
	var codeSize int
	switch assetType {
	case assetTypeNative:
		*a = Asset{}
		return nil
	case assetTypeAlphanum4:
		codeSize = 4
	case assetTypeAlphanum12:
		codeSize = 12
	default:
		return xdr.UnknownDiscriminantError{
			Union:        "Asset",
			Discriminant: assetType,
		}
	}
	code, err := d.FixedOpaque(codeSize)
	if err != nil {
		return err
	}
	issuer, err := unmarshalAccountID(d)
	if err != nil {
		return err
	}
	// Trim trailing NUL padding from the code
	end := len(code)
	for end > 0 && code[end-1] == 0 {
		end--
	}
	a.Code = string(code[:end])
	a.Issuer = issuer.String()
	return nil
}

// Memo type discriminants
const (
	MemoTypeNone   uint32 = 0
	MemoTypeText   uint32 = 1
	MemoTypeID     uint32 = 2
	MemoTypeHash   uint32 = 3
	MemoTypeReturn uint32 = 4
)

// MemoTextMaxBytes is the maximum encoded size of a text memo
const MemoTextMaxBytes = 28

// Memo is the transaction memo variant. The zero value is the none memo.
type Memo struct {
	Type uint32
	Text string
	ID   uint64
	Hash [32]byte
}

// MemoText returns a text memo
func MemoText(text string) Memo {
	return Memo{Type: MemoTypeText, Text: text}
}

// MemoID returns an id memo
func MemoID(id uint64) Memo {
	return Memo{Type: MemoTypeID, ID: id}
}

// MemoHash returns a hash memo
func MemoHash(hash [32]byte) Memo {
	return Memo{Type: MemoTypeHash, Hash: hash}
}

// MemoReturn returns a return-hash memo
func MemoReturn(hash [32]byte) Memo {
	return Memo{Type: MemoTypeReturn, Hash: hash}
}

func (m Memo) MarshalXDR(e *xdr.Encoder) error {
	if err := e.Uint32(m.Type); err != nil {
		return err
	}
	switch m.Type {
	case MemoTypeNone:
		return nil
	case MemoTypeText:
		if len(m.Text) > MemoTextMaxBytes {
			return MemoTextLengthError{Length: len(m.Text)}
		}
		return e.String(m.Text, MemoTextMaxBytes)
	case MemoTypeID:
		return e.Uint64(m.ID)
	case MemoTypeHash, MemoTypeReturn:
		return e.FixedOpaque(m.Hash[:])
	}
	return xdr.UnknownDiscriminantError{
		Union:        "Memo",
		Discriminant: m.Type,
	}
}

func (m *Memo) UnmarshalXDR(d *xdr.Decoder) error {
	memoType, err := d.Uint32()
	if err != nil {
		return err
	}
	*m = Memo{Type: memoType}
	switch memoType {
	case MemoTypeNone:
		return nil
	case MemoTypeText:
		m.Text, err = d.String(MemoTextMaxBytes)
		return err
	case MemoTypeID:
		m.ID, err = d.Uint64()
		return err
	case MemoTypeHash, MemoTypeReturn:
		tmp, err := d.FixedOpaque(32)
		if err != nil {
			return err
		}
		copy(m.Hash[:], tmp)
		return nil
	}
	return xdr.UnknownDiscriminantError{
		Union:        "Memo",
		Discriminant: memoType,
	}
}

// TimeBounds is the validity window for a transaction, in Unix seconds.
// A MaxTime of 0 means no upper bound.
type TimeBounds struct {
	MinTime uint64
	MaxTime uint64
}

func (t TimeBounds) MarshalXDR(e *xdr.Encoder) error {
	if err := e.Uint64(t.MinTime); err != nil {
		return err
	}
	return e.Uint64(t.MaxTime)
}

func (t *TimeBounds) UnmarshalXDR(d *xdr.Decoder) error {
	var err error
	if t.MinTime, err = d.Uint64(); err != nil {
		return err
	}
	t.MaxTime, err = d.Uint64()
	return err
}

// Precondition discriminants
const (
	precondNone uint32 = 0
	precondTime uint32 = 1
)

// DecoratedSignature pairs a signature with the last 4 bytes of the signing
// public key, letting verifiers locate the likely signer without trying
// every key
type DecoratedSignature struct {
	Hint      [4]byte
	Signature []byte
}

func (s DecoratedSignature) MarshalXDR(e *xdr.Encoder) error {
	if err := e.FixedOpaque(s.Hint[:]); err != nil {
		return err
	}
	return e.Opaque(s.Signature, 64)
}

func (s *DecoratedSignature) UnmarshalXDR(d *xdr.Decoder) error {
	hint, err := d.FixedOpaque(4)
	if err != nil {
		return err
	}
	copy(s.Hint[:], hint)
	s.Signature, err = d.Opaque(64)
	return err
}
