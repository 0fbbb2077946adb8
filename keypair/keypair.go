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

// Package keypair provides ed25519 signing key pairs for Stellar accounts.
//
// A KeyPair owns its private key material exclusively: the private scalar
// lives in an unexported field, String/GoString render only the public
// address, and the seed leaves the type through the explicit Seed accessor
// alone. Signing is deterministic (RFC 8032) and safe for concurrent use.
package keypair

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"github.com/blinklabs-io/gostellar/strkey"

	"filippo.io/edwards25519"
)

const (
	// SeedSize is the size of an ed25519 private seed
	SeedSize = 32

	// PublicKeySize is the size of an ed25519 public key
	PublicKeySize = ed25519.PublicKeySize

	// SignatureSize is the size of an ed25519 signature
	SignatureSize = ed25519.SignatureSize
)

// Signer is the capability required to sign transaction hashes. KeyPair
// implements it; callers may supply their own implementations backed by
// HSMs or remote signing services.
type Signer interface {
	Address() string
	Hint() [4]byte
	Sign(message []byte) ([]byte, error)
	SignDecorated(message []byte) ([4]byte, []byte, error)
}

// KeyPair is an ed25519 signing key pair. The zero value is not usable;
// construct via Random, FromRawSeed, ParseSeed, or FromMnemonic.
type KeyPair struct {
	pub   ed25519.PublicKey
	priv  ed25519.PrivateKey
	wiped bool
}

// Random generates a new key pair from the operating system's entropy source
func Random() (*KeyPair, error) {
	var seed [SeedSize]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return nil, fmt.Errorf("reading entropy: %w", err)
	}
	return FromRawSeed(seed)
}

// FromRawSeed builds a key pair from a raw 32-byte seed
func FromRawSeed(seed [SeedSize]byte) (*KeyPair, error) {
	priv := ed25519.NewKeyFromSeed(seed[:])
	pub := make(ed25519.PublicKey, PublicKeySize)
	copy(pub, priv[SeedSize:])
	return &KeyPair{
		pub:  pub,
		priv: priv,
	}, nil
}

// ParseSeed builds a key pair from a strkey seed string ("S...")
func ParseSeed(seed string) (*KeyPair, error) {
	raw, err := strkey.Decode(strkey.VersionByteSeed, seed)
	if err != nil {
		return nil, err
	}
	var tmp [SeedSize]byte
	copy(tmp[:], raw)
	return FromRawSeed(tmp)
}

// Address returns the public key as a strkey account address ("G...")
func (k *KeyPair) Address() string {
	return strkey.MustEncode(strkey.VersionByteAccountID, k.pub)
}

// Seed exports the private seed as a strkey seed string ("S..."). This is
// the only way key material leaves the pair.
func (k *KeyPair) Seed() (string, error) {
	if k.wiped {
		return "", ErrKeyWiped
	}
	return strkey.MustEncode(strkey.VersionByteSeed, k.priv.Seed()), nil
}

// Hint returns the last 4 bytes of the public key, used as the signature hint
// in decorated signatures
func (k *KeyPair) Hint() [4]byte {
	var hint [4]byte
	copy(hint[:], k.pub[PublicKeySize-4:])
	return hint
}

// PublicKeyBytes returns a copy of the raw public key
func (k *KeyPair) PublicKeyBytes() []byte {
	ret := make([]byte, PublicKeySize)
	copy(ret, k.pub)
	return ret
}

// Sign produces a 64-byte deterministic ed25519 signature over the message
func (k *KeyPair) Sign(message []byte) ([]byte, error) {
	if k.wiped {
		return nil, ErrKeyWiped
	}
	return ed25519.Sign(k.priv, message), nil
}

// SignDecorated signs the message and returns the signature together with
// the hint that decorates it on the wire
func (k *KeyPair) SignDecorated(message []byte) ([4]byte, []byte, error) {
	signature, err := k.Sign(message)
	if err != nil {
		return [4]byte{}, nil, err
	}
	return k.Hint(), signature, nil
}

// Verify reports whether the signature is valid over the message under this
// pair's public key. Malformed signatures verify false, never panic.
func (k *KeyPair) Verify(message []byte, signature []byte) bool {
	if len(signature) != SignatureSize {
		return false
	}
	return ed25519.Verify(k.pub, message, signature)
}

// Verifier returns the public-only half of the pair
func (k *KeyPair) Verifier() *Verifier {
	pub := make(ed25519.PublicKey, PublicKeySize)
	copy(pub, k.pub)
	return &Verifier{pub: pub}
}

// Wipe zeroizes the private key material. The pair can still verify and
// report its address, but signing and seed export fail afterward.
func (k *KeyPair) Wipe() {
	for i := range k.priv {
		k.priv[i] = 0
	}
	k.wiped = true
}

// String renders the public address only
func (k *KeyPair) String() string {
	return k.Address()
}

// GoString renders the public address only, so %#v cannot leak the seed
func (k *KeyPair) GoString() string {
	return fmt.Sprintf("keypair.KeyPair{%s}", k.Address())
}

// Verifier is the public-only form of a key pair, built from an account
// address. It can verify signatures but not produce them.
type Verifier struct {
	pub ed25519.PublicKey
}

// ParseAddress builds a Verifier from a strkey account address ("G...")
func ParseAddress(address string) (*Verifier, error) {
	raw, err := strkey.Decode(strkey.VersionByteAccountID, address)
	if err != nil {
		return nil, err
	}
	if err := validatePublicKey(raw); err != nil {
		return nil, err
	}
	return &Verifier{pub: raw}, nil
}

// FromPublicKey builds a Verifier from raw public key bytes
func FromPublicKey(pub []byte) (*Verifier, error) {
	if err := validatePublicKey(pub); err != nil {
		return nil, err
	}
	tmp := make(ed25519.PublicKey, PublicKeySize)
	copy(tmp, pub)
	return &Verifier{pub: tmp}, nil
}

// Address returns the strkey account address
func (v *Verifier) Address() string {
	return strkey.MustEncode(strkey.VersionByteAccountID, v.pub)
}

// Hint returns the last 4 bytes of the public key
func (v *Verifier) Hint() [4]byte {
	var hint [4]byte
	copy(hint[:], v.pub[PublicKeySize-4:])
	return hint
}

// PublicKeyBytes returns a copy of the raw public key
func (v *Verifier) PublicKeyBytes() []byte {
	ret := make([]byte, PublicKeySize)
	copy(ret, v.pub)
	return ret
}

// Verify reports whether the signature is valid over the message
func (v *Verifier) Verify(message []byte, signature []byte) bool {
	if len(signature) != SignatureSize {
		return false
	}
	return ed25519.Verify(v.pub, message, signature)
}

func (v *Verifier) String() string {
	return v.Address()
}

// Verify reports whether a signature is valid over a message under the given
// raw public key. A wrong-length or non-canonical public key is an error
// (hard precondition); a malformed signature simply verifies false.
func Verify(pub []byte, message []byte, signature []byte) (bool, error) {
	if err := validatePublicKey(pub); err != nil {
		return false, err
	}
	if len(signature) != SignatureSize {
		return false, nil
	}
	return ed25519.Verify(ed25519.PublicKey(pub), message, signature), nil
}

// validatePublicKey checks length and that the bytes decode to a canonical
// point on the ed25519 curve
func validatePublicKey(pub []byte) error {
	if len(pub) != PublicKeySize {
		return WrongKeyLengthError{Length: len(pub)}
	}
	point, err := new(edwards25519.Point).SetBytes(pub)
	if err != nil {
		return ErrInvalidPublicKey
	}
	// SetBytes accepts some non-canonical encodings; require that the
	// decoded point re-encodes to the same bytes
	if !bytes.Equal(point.Bytes(), pub) {
		return ErrInvalidPublicKey
	}
	return nil
}
