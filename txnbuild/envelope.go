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
	"encoding/base64"

	"github.com/blinklabs-io/gostellar/keypair"
	"github.com/blinklabs-io/gostellar/xdr"
)

// MaxSignatures is the maximum number of decorated signatures on an envelope
const MaxSignatures = 20

// Envelope is a transaction together with the signatures accumulated over
// it. Signatures are kept in the order they were added; re-signing appends
// rather than replaces.
type Envelope struct {
	Transaction Transaction
	Signatures  []DecoratedSignature
}

func (env *Envelope) MarshalXDR(e *xdr.Encoder) error {
	if err := e.Uint32(EnvelopeTypeTx); err != nil {
		return err
	}
	if err := env.Transaction.MarshalXDR(e); err != nil {
		return err
	}
	if err := e.ArrayLen(len(env.Signatures), MaxSignatures); err != nil {
		return err
	}
	for i := range env.Signatures {
		if err := env.Signatures[i].MarshalXDR(e); err != nil {
			return err
		}
	}
	return nil
}

func (env *Envelope) UnmarshalXDR(d *xdr.Decoder) error {
	envType, err := d.Uint32()
	if err != nil {
		return err
	}
	// Only v1 transaction envelopes are supported. The legacy v0 and
	// fee-bump forms fail decode rather than being partially parsed.
	if envType != EnvelopeTypeTx {
		return xdr.UnknownDiscriminantError{
			Union:        "TransactionEnvelope",
			Discriminant: envType,
		}
	}
	if err := env.Transaction.UnmarshalXDR(d); err != nil {
		return err
	}
	sigCount, err := d.ArrayLen(MaxSignatures)
	if err != nil {
		return err
	}
	env.Signatures = make([]DecoratedSignature, sigCount)
	for i := range env.Signatures {
		if err := env.Signatures[i].UnmarshalXDR(d); err != nil {
			return err
		}
	}
	return nil
}

// ParseEnvelope decodes a base64 transaction envelope, rejecting trailing
// bytes after the envelope
func ParseEnvelope(envelopeB64 string) (*Envelope, error) {
	raw, err := base64.StdEncoding.DecodeString(envelopeB64)
	if err != nil {
		return nil, EnvelopeBase64Error{Err: err}
	}
	var env Envelope
	if err := xdr.UnmarshalFull(raw, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// Base64 returns the envelope in its base64-wrapped wire form, the shape
// submission endpoints expect
func (env *Envelope) Base64() (string, error) {
	raw, err := xdr.Marshal(env)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Hash returns the network-scoped signing hash of the enclosed transaction
func (env *Envelope) Hash(networkID [32]byte) ([32]byte, error) {
	return env.Transaction.Hash(networkID)
}

// Sign computes the signing hash for the given network and appends one
// decorated signature per signer, in the order the signers are supplied
func (env *Envelope) Sign(networkID [32]byte, signers ...keypair.Signer) error {
	hash, err := env.Hash(networkID)
	if err != nil {
		return err
	}
	for _, signer := range signers {
		hint, sig, err := signer.SignDecorated(hash[:])
		if err != nil {
			return err
		}
		if len(env.Signatures) >= MaxSignatures {
			return TooManySignaturesError{Count: len(env.Signatures) + 1}
		}
		env.Signatures = append(env.Signatures, DecoratedSignature{
			Hint:      hint,
			Signature: sig,
		})
	}
	return nil
}
