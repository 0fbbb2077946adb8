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
	"crypto/sha256"

	"github.com/blinklabs-io/gostellar/xdr"
)

// MaxOperations is the maximum number of operations in a transaction
const MaxOperations = 100

// Transaction ext discriminants
const (
	txExtV0 uint32 = 0
	txExtV1 uint32 = 1
)

// Transaction is a built transaction. Sequence numbers are caller-supplied;
// nothing here increments them.
type Transaction struct {
	SourceAccount  string // G or M strkey
	Fee            uint32
	SequenceNumber int64
	TimeBounds     *TimeBounds // nil means no validity window
	Memo           Memo
	Operations     []Operation
	// SorobanData carries the pre-encoded soroban resource footprint for
	// contract transactions; nil for classic transactions
	SorobanData []byte
}

func (t *Transaction) MarshalXDR(e *xdr.Encoder) error {
	source, err := parseAccountAddress(t.SourceAccount, true)
	if err != nil {
		return err
	}
	if err := source.marshalMuxed(e); err != nil {
		return err
	}
	if err := e.Uint32(t.Fee); err != nil {
		return err
	}
	if err := e.Int64(t.SequenceNumber); err != nil {
		return err
	}
	if t.TimeBounds == nil {
		if err := e.Uint32(precondNone); err != nil {
			return err
		}
	} else {
		if err := e.Uint32(precondTime); err != nil {
			return err
		}
		if err := t.TimeBounds.MarshalXDR(e); err != nil {
			return err
		}
	}
	if err := t.Memo.MarshalXDR(e); err != nil {
		return err
	}
	if len(t.Operations) == 0 {
		return ErrNoOperations
	}
	if len(t.Operations) > MaxOperations {
		return TooManyOperationsError{Count: len(t.Operations)}
	}
	if err := e.ArrayLen(len(t.Operations), MaxOperations); err != nil {
		return err
	}
	for i := range t.Operations {
		if err := t.Operations[i].MarshalXDR(e); err != nil {
			return err
		}
	}
	// An empty footprint is a classic transaction regardless of nil-ness
	if len(t.SorobanData) == 0 {
		return e.Uint32(txExtV0)
	}
	if err := e.Uint32(txExtV1); err != nil {
		return err
	}
	return e.Opaque(t.SorobanData, 0)
}

func (t *Transaction) UnmarshalXDR(d *xdr.Decoder) error {
	source, err := unmarshalMuxed(d)
	if err != nil {
		return err
	}
	t.SourceAccount = source.String()
	if t.Fee, err = d.Uint32(); err != nil {
		return err
	}
	if t.SequenceNumber, err = d.Int64(); err != nil {
		return err
	}
	cond, err := d.Uint32()
	if err != nil {
		return err
	}
	switch cond {
	case precondNone:
		t.TimeBounds = nil
	case precondTime:
		t.TimeBounds = &TimeBounds{}
		if err := t.TimeBounds.UnmarshalXDR(d); err != nil {
			return err
		}
	default:
		return xdr.UnknownDiscriminantError{
			Union:        "Preconditions",
			Discriminant: cond,
		}
	}
	if err := t.Memo.UnmarshalXDR(d); err != nil {
		return err
	}
	opCount, err := d.ArrayLen(MaxOperations)
	if err != nil {
		return err
	}
	if opCount == 0 {
		return ErrNoOperations
	}
	t.Operations = make([]Operation, opCount)
	for i := range t.Operations {
		if err := t.Operations[i].UnmarshalXDR(d); err != nil {
			return err
		}
	}
	ext, err := d.Uint32()
	if err != nil {
		return err
	}
	switch ext {
	case txExtV0:
		t.SorobanData = nil
	case txExtV1:
		if t.SorobanData, err = d.Opaque(0); err != nil {
			return err
		}
	default:
		return xdr.UnknownDiscriminantError{
			Union:        "TransactionExt",
			Discriminant: ext,
		}
	}
	return nil
}

// SignatureBase returns the value whose SHA-256 digest is signed:
// networkID, then the tx envelope type discriminant, then the transaction
func (t *Transaction) SignatureBase(networkID [32]byte) ([]byte, error) {
	e := xdr.NewEncoder()
	if err := e.FixedOpaque(networkID[:]); err != nil {
		return nil, err
	}
	if err := e.Uint32(EnvelopeTypeTx); err != nil {
		return nil, err
	}
	if err := t.MarshalXDR(e); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// Hash returns the network-scoped signing hash of the transaction. The
// network id is an explicit parameter; a transaction hash never depends on
// ambient state.
func (t *Transaction) Hash(networkID [32]byte) ([32]byte, error) {
	base, err := t.SignatureBase(networkID)
	if err != nil {
		return [32]byte{}, err
	}
	return sha256.Sum256(base), nil
}
