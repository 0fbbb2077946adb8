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

package keypair

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"fmt"

	"github.com/tyler-smith/go-bip39"
)

// SEP-5 derivation path: m/44'/148'/index'
const (
	derivePurpose  uint32 = 44
	deriveCoinType uint32 = 148
)

var slip10MasterKey = []byte("ed25519 seed")

// FromMnemonic derives a key pair from a BIP-39 mnemonic using the standard
// Stellar account derivation path m/44'/148'/index' (SEP-5). The passphrase
// is the optional BIP-39 "25th word"; pass an empty string when unused.
func FromMnemonic(mnemonic string, passphrase string, index uint32) (*KeyPair, error) {
	bipSeed, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return nil, fmt.Errorf("invalid mnemonic: %w", err)
	}
	key, chainCode := slip10Master(bipSeed)
	for _, childIndex := range []uint32{derivePurpose, deriveCoinType, index} {
		key, chainCode = slip10Child(key, chainCode, childIndex)
	}
	var seed [SeedSize]byte
	copy(seed[:], key)
	return FromRawSeed(seed)
}

// NewMnemonic generates a fresh 24-word BIP-39 mnemonic
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(entropy)
}

// slip10Master computes the SLIP-10 ed25519 master key and chain code from a
// BIP-39 seed
func slip10Master(seed []byte) ([]byte, []byte) {
	mac := hmac.New(sha512.New, slip10MasterKey)
	mac.Write(seed)
	sum := mac.Sum(nil)
	return sum[:32], sum[32:]
}

// slip10Child derives the hardened child at the given index. SLIP-10 ed25519
// derivation only defines hardened children.
func slip10Child(key []byte, chainCode []byte, index uint32) ([]byte, []byte) {
	var data [37]byte
	copy(data[1:], key)
	binary.BigEndian.PutUint32(data[33:], index|0x80000000)
	mac := hmac.New(sha512.New, chainCode)
	mac.Write(data[:])
	sum := mac.Sum(nil)
	return sum[:32], sum[32:]
}
